// Package driver orchestrates the pipeline described across spec §4:
// first round over every file, a cross-file inheritance cycle check,
// Freeze, then per file the second round of semantic rewrites, the
// warning passes, and emission.
//
// Grounded on the teacher's pipeline.go, which runs Parse -> Analyze ->
// Transform -> Generate over a project's files in one fixed sequence;
// this package keeps that same fixed sequence but splits "Analyze" into
// internal/recording's nine named passes, "Transform" into
// internal/rewrite's and internal/warn's named passes, and "Generate"
// into internal/emit, with an inheritance-cycle check (internal/filegraph)
// inserted between the first and second round the teacher's linear
// pipeline never needed.
package driver

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/emit"
	"github.com/vela-lang/vela/internal/filegraph"
	"github.com/vela-lang/vela/internal/frontend"
	"github.com/vela-lang/vela/internal/recording"
	"github.com/vela-lang/vela/internal/rewrite"
	"github.com/vela-lang/vela/internal/runlog"
	"github.com/vela-lang/vela/internal/warn"
)

// Output is one source file's emitted result, alongside a per-file error
// when that file's second round aborted (§7's "must abort" scope is the
// one file, never the whole run).
type Output struct {
	Path    string
	Text    string
	LineMap []string
	Err     error
}

// Run executes the full pipeline over every decoded fixture file and
// returns one Output per input, in the same order, plus the run's
// accumulated diagnostic sink. A cross-file inheritance cycle aborts the
// entire run before any second-round work starts, since every later pass
// assumes Context.AllInheritance is acyclic. logger may be nil; every
// call is logged through it so a nil logger just means silent progress.
func Run(cfg config.Config, decoded []frontend.Decoded, logger *runlog.Logger) ([]Output, *diag.Sink, error) {
	ctx := context.New(cfg)

	files := make([]*ast.File, len(decoded))
	for i, d := range decoded {
		files[i] = &ast.File{Path: d.Path, Declarations: d.Declarations}
	}

	logger.Infof("first round: recording %d file(s)", len(files))
	recording.Run(ctx, files)

	g := filegraph.New(ctx.AllInheritance())
	if err := g.DetectCycles(); err != nil {
		logger.Errorf("inheritance cycle detected: %v", err)
		return nil, ctx.Diagnostics(), err
	}

	ctx.Freeze()

	outputs := make([]Output, len(files))
	for i, f := range files {
		ctx.SetOracle(decoded[i].Oracle)
		logger.Infof("second round: %s", f.Path)
		text, lineMap, err := runSecondRound(ctx, f)
		if err != nil {
			logger.Errorf("%s: %v", f.Path, err)
		}
		outputs[i] = Output{Path: f.Path, Text: text, LineMap: lineMap, Err: err}
	}
	logger.Infof("done: %d diagnostic(s)", len(ctx.Diagnostics().All()))
	return outputs, ctx.Diagnostics(), nil
}

// runSecondRound applies rewrite, warn, and emit to one file, converting
// a KindFatal-style panic from a dispatch table's default case into an
// error scoped to this file instead of crashing the run.
func runSecondRound(ctx *context.Context, f *ast.File) (text string, lineMap []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &diag.FatalError{Pass: "driver", Message: fmt.Sprint(r)}
		}
	}()
	rewrite.Run(ctx, f)
	warn.Run(ctx, f)
	text, lineMap = emit.File(ctx, f)
	return text, lineMap, nil
}
