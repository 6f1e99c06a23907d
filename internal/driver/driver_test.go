package driver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/driver"
	"github.com/vela-lang/vela/internal/frontend"
	"github.com/vela-lang/vela/internal/position"
)

func sp(line int) position.Span {
	return position.Span{Start: position.Position{Line: line, Column: 1}, End: position.Position{Line: line, Column: 2}}
}

func TestRunEmitsOnePerInputFileInOrder(t *testing.T) {
	a := ast.NewStructDeclaration(sp(1))
	a.Name = "A"
	b := ast.NewStructDeclaration(sp(1))
	b.Name = "B"

	outputs, sink, err := driver.Run(config.Default(), []frontend.Decoded{
		{Path: "a.swift", Declarations: []ast.Statement{a}},
		{Path: "b.swift", Declarations: []ast.Statement{b}},
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, sink)
	require.Len(t, outputs, 2)
	require.Equal(t, "a.swift", outputs[0].Path)
	require.Equal(t, "b.swift", outputs[1].Path)
	require.NoError(t, outputs[0].Err)
	require.Contains(t, outputs[0].Text, "data class A")
	require.Contains(t, outputs[1].Text, "data class B")
}

func TestRunDetectsInheritanceCyclesAcrossFiles(t *testing.T) {
	a := ast.NewClassDeclaration(sp(1))
	a.Name = "A"
	a.Inherits = []string{"B"}
	b := ast.NewClassDeclaration(sp(1))
	b.Name = "B"
	b.Inherits = []string{"A"}

	outputs, _, err := driver.Run(config.Default(), []frontend.Decoded{
		{Path: "cycle.swift", Declarations: []ast.Statement{a, b}},
	}, nil)

	require.Error(t, err)
	require.Nil(t, outputs)
}

// TestRunReportsAPerFileFatalWithoutLosingOtherOutputs exercises the
// recover() boundary around one file's second round: an IfStatement
// whose sole IfCondition sets neither Expr nor Decl is a shape no
// frontend should ever produce, and the emitter has no fallback for it
// (§7's Fatal is scoped to the one file, never the whole run).
func TestRunReportsAPerFileFatalWithoutLosingOtherOutputs(t *testing.T) {
	bad := ast.NewIfStatement(sp(1))
	bad.Conditions = []ast.IfCondition{{}}
	bad.Then = []ast.Statement{}
	good := ast.NewStructDeclaration(sp(1))
	good.Name = "Good"

	outputs, _, err := driver.Run(config.Default(), []frontend.Decoded{
		{Path: "bad.swift", Declarations: []ast.Statement{bad}},
		{Path: "good.swift", Declarations: []ast.Statement{good}},
	}, nil)

	require.NoError(t, err)
	require.Len(t, outputs, 2)
	require.Error(t, outputs[0].Err)
	require.Empty(t, outputs[0].Text)
	require.NoError(t, outputs[1].Err)
	require.Contains(t, outputs[1].Text, "data class Good")
}
