package match_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/frontend"
	"github.com/vela-lang/vela/internal/match"
	"github.com/vela-lang/vela/internal/position"
)

func sp(line int) position.Span {
	return position.Span{Start: position.Position{Line: line, Column: 1}, End: position.Position{Line: line, Column: 2}}
}

func newCtxWithFunc(name string, params ...ast.FunctionParameter) *context.Context {
	ctx := context.New(config.Default())
	ctx.RecordFunctionTranslation(context.FunctionTranslation{Name: name, Type: "", Parameters: params})
	return ctx
}

func TestReordersCallToDeclaredLabelOrder(t *testing.T) {
	params := []ast.FunctionParameter{
		ast.NewFunctionParameter(sp(1), "x", "x", ast.NewTypeReference(sp(1), "Int")),
		ast.NewFunctionParameter(sp(1), "y", "y", ast.NewTypeReference(sp(1), "Int")),
	}
	ctx := newCtxWithFunc("move", params...)

	call := ast.NewCallExpression(sp(2))
	call.Function = ast.NewDeclRefExpression(sp(2), "move")
	call.Arguments = []ast.LabeledExpression{
		{Label: "y", Expression: ast.NewIntLiteral(sp(2), "2", 10)},
		{Label: "x", Expression: ast.NewIntLiteral(sp(2), "1", 10)},
	}
	stmt := ast.NewExpressionStatement(sp(2))
	stmt.Expression = call

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{stmt}}
	match.MatchCallsToDeclarations(ctx, f)

	got := f.Declarations[0].(ast.ExpressionStatement).Expression.(ast.CallExpression)
	require.Len(t, got.Arguments, 2)
	require.Equal(t, "x", got.Arguments[0].Label)
	require.Equal(t, "1", got.Arguments[0].Expression.(ast.IntLiteral).Value)
	require.Equal(t, "y", got.Arguments[1].Label)
}

func TestDefaultedParameterMayReceiveNoArgument(t *testing.T) {
	def := ast.NewIntLiteral(sp(1), "0", 10)
	params := []ast.FunctionParameter{
		ast.NewFunctionParameter(sp(1), "x", "x", ast.NewTypeReference(sp(1), "Int")),
		ast.NewFunctionParameter(sp(1), "y", "y", ast.NewTypeReference(sp(1), "Int")),
	}
	params[1].Default = def
	ctx := newCtxWithFunc("move", params...)

	call := ast.NewCallExpression(sp(2))
	call.Function = ast.NewDeclRefExpression(sp(2), "move")
	call.Arguments = []ast.LabeledExpression{
		{Label: "x", Expression: ast.NewIntLiteral(sp(2), "1", 10)},
	}
	stmt := ast.NewExpressionStatement(sp(2))
	stmt.Expression = call

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{stmt}}
	match.MatchCallsToDeclarations(ctx, f)

	got := f.Declarations[0].(ast.ExpressionStatement).Expression.(ast.CallExpression)
	require.Len(t, got.Arguments, 1)
	require.Equal(t, "x", got.Arguments[0].Label)
}

func TestMatchFailureStripsLabelsAndReportsDiagnostic(t *testing.T) {
	params := []ast.FunctionParameter{
		ast.NewFunctionParameter(sp(1), "x", "x", ast.NewTypeReference(sp(1), "Int")),
	}
	ctx := newCtxWithFunc("move", params...)

	call := ast.NewCallExpression(sp(2))
	call.Function = ast.NewDeclRefExpression(sp(2), "move")
	call.Arguments = []ast.LabeledExpression{
		{Label: "x", Expression: ast.NewIntLiteral(sp(2), "1", 10)},
		{Label: "z", Expression: ast.NewIntLiteral(sp(2), "2", 10)},
	}
	stmt := ast.NewExpressionStatement(sp(2))
	stmt.Expression = call

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{stmt}}
	match.MatchCallsToDeclarations(ctx, f)

	got := f.Declarations[0].(ast.ExpressionStatement).Expression.(ast.CallExpression)
	for _, a := range got.Arguments {
		require.Equal(t, "", a.Label)
	}
	warnings, errors := ctx.Diagnostics().Counts()
	require.Equal(t, 0, warnings)
	require.Equal(t, 1, errors)
}

// TestReceiverTypeFallsBackToIndexOracleForChainedDotExpression covers
// §4.6's get_parent_type(expression) fallback: a chained dot-expression
// receiver (`a.b`) carries no Recording-resolved Type, so the callee's
// declared type must come from the fixture's index-oracle instead.
func TestReceiverTypeFallsBackToIndexOracleForChainedDotExpression(t *testing.T) {
	raw := []json.RawMessage{
		mustJSON(t, `{
			"kind": "expressionStatement",
			"expression": {
				"kind": "call",
				"function": {
					"kind": "dot", "member": "greet",
					"receiver": {
						"kind": "dot", "member": "owner", "handle": "h1",
						"span": {"startLine": 2, "startCol": 1, "endLine": 2, "endCol": 2},
						"receiver": {"kind": "declRef", "name": "app"}
					}
				},
				"arguments": []
			}
		}`),
	}
	decoded, err := frontend.Decode(frontend.File{Path: "t.swift", AST: raw, IndexOracle: map[string]string{"h1": "Person"}})
	require.NoError(t, err)

	ctx := context.New(config.Default())
	ctx.RecordFunctionTranslation(context.FunctionTranslation{Name: "greet", Type: "Person"})
	ctx.Freeze()
	ctx.SetOracle(decoded.Oracle)

	f := &ast.File{Path: "t.swift", Declarations: decoded.Declarations}
	match.MatchCallsToDeclarations(ctx, f)

	warnings, errors := ctx.Diagnostics().Counts()
	require.Equal(t, 0, warnings+errors, "the Person-typed callee must resolve via the index-oracle, not report a match failure")
}

func mustJSON(t *testing.T, s string) json.RawMessage {
	t.Helper()
	var raw json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestVariadicParameterConsumesConsecutiveMatchingLabels(t *testing.T) {
	params := []ast.FunctionParameter{
		ast.NewFunctionParameter(sp(1), "", "", ast.NewTypeReference(sp(1), "Int")),
	}
	params[0].IsVariadic = true
	ctx := newCtxWithFunc("sum", params...)

	call := ast.NewCallExpression(sp(2))
	call.Function = ast.NewDeclRefExpression(sp(2), "sum")
	call.Arguments = []ast.LabeledExpression{
		{Expression: ast.NewIntLiteral(sp(2), "1", 10)},
		{Expression: ast.NewIntLiteral(sp(2), "2", 10)},
		{Expression: ast.NewIntLiteral(sp(2), "3", 10)},
	}
	stmt := ast.NewExpressionStatement(sp(2))
	stmt.Expression = call

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{stmt}}
	match.MatchCallsToDeclarations(ctx, f)

	got := f.Declarations[0].(ast.ExpressionStatement).Expression.(ast.CallExpression)
	require.Len(t, got.Arguments, 3)
}
