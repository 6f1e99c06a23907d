// Package recording implements the nine first-round passes from spec
// §4.4. Each pass runs over every file before the next one starts, so
// that a later pass can rely on an earlier one having seen the whole
// program rather than just the file currently open — the same
// first-round/second-round split context.Context's Freeze enforces.
//
// Grounded on the teacher's analyzer package, which performs one
// full-program walk gathering RichAST's Types/Functions/Packages tables
// before generation ever starts; this package splits that single walk
// into the nine independently named passes spec §4.4 enumerates, each
// its own function instead of one monolithic analyzer.
package recording

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// Run executes all nine recording passes, pass-major across every
// file: every file finishes pass N before pass N+1 starts on any file,
// matching §4.4's "run on all files before any rewriting" framing and
// letting e.g. Clean Inheritances see every protocol Protocols ever
// recorded, not just the ones declared earlier in file iteration order.
func Run(ctx *context.Context, files []*ast.File) {
	for _, f := range files {
		InitializerReturnTypes(ctx, f)
	}
	for _, f := range files {
		Templates(ctx, f)
	}
	for _, f := range files {
		Protocols(ctx, f)
	}
	for _, f := range files {
		InitializerRecording(ctx, f)
	}
	for _, f := range files {
		InheritanceRecording(ctx, f)
	}
	for _, f := range files {
		ImplicitRawValues(ctx, f)
	}
	CleanInheritances(ctx)
	for _, f := range files {
		EnumRecording(ctx, f)
	}
	for _, f := range files {
		FunctionRecording(ctx, f)
	}
}

// fqName joins the visitor's current enclosing-type chain with name,
// the same convention every Context registry keys on.
func fqName(v *pass.Visitor, name string) string {
	outer := v.GetFullType()
	if outer == "" {
		return name
	}
	return outer + "." + name
}

// walkTypes runs fn over every Class/Struct/Enum/Protocol declaration
// in f, handled=false so the tree is never restructured — every
// recording pass observes or annotates in place, it never replaces.
func walkTypes(f *ast.File, fn func(v *pass.Visitor, s ast.Statement)) {
	stmtFn, _ := pass.Walk(func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		fn(v, s)
		return nil, false
	}, nil)
	pass.Run(stmtFn, f.Declarations)
}

// mutateTypes runs fn over every statement, replacing it with fn's
// result; used by passes that fill in a field the frontend leaves
// unset (e.g. an initializer's return type).
func mutateTypes(f *ast.File, fn func(v *pass.Visitor, s ast.Statement) ast.Statement) {
	stmtFn, _ := pass.Walk(func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		return []ast.Statement{fn(v, s)}, true
	}, nil)
	f.Declarations = pass.Run(stmtFn, f.Declarations)
}
