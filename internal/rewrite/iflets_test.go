package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/emit"
	"github.com/vela-lang/vela/internal/rewrite"
)

// ifLetChain builds `if let x = foo(), let y = x.bar() { use(x, y) }`.
func ifLetChain() ast.IfStatement {
	xDecl := ast.NewVariableDeclaration(sp(1))
	xDecl.Name, xDecl.IsVal = "x", true
	fooCall := ast.NewCallExpression(sp(1))
	fooCall.Function = ast.NewDeclRefExpression(sp(1), "foo")
	xDecl.Initializer = fooCall

	yDecl := ast.NewVariableDeclaration(sp(1))
	yDecl.Name, yDecl.IsVal = "y", true
	barDot := ast.NewDotExpression(sp(1), "bar")
	barDot.Receiver = ast.NewDeclRefExpression(sp(1), "x")
	barCall := ast.NewCallExpression(sp(1))
	barCall.Function = barDot
	yDecl.Initializer = barCall

	useCall := ast.NewCallExpression(sp(1))
	useCall.Function = ast.NewDeclRefExpression(sp(1), "use")
	useCall.Arguments = []ast.LabeledExpression{
		{Expression: ast.NewDeclRefExpression(sp(1), "x")},
		{Expression: ast.NewDeclRefExpression(sp(1), "y")},
	}
	useStmt := ast.NewExpressionStatement(sp(1))
	useStmt.Expression = useCall

	ifs := ast.NewIfStatement(sp(1))
	ifs.Conditions = []ast.IfCondition{{Decl: &xDecl}, {Decl: &yDecl}}
	ifs.Then = []ast.Statement{useStmt}
	return ifs
}

// TestRearrangeIfLetsOptionalChainsSecondBindingOffFirst covers the
// reviewer-flagged gap: `y`'s initializer reads `x.bar()` off a binding
// hoisted earlier in the same chain, so once `x` is a plain (non-smart-cast)
// val it must be read through `x?.bar()` instead.
func TestRearrangeIfLetsOptionalChainsSecondBindingOffFirst(t *testing.T) {
	ctx := context.New(config.Default())
	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{ifLetChain()}}
	ctx.Freeze()

	rewrite.RearrangeIfLets(ctx, f)

	require.Len(t, f.Declarations, 3, "two hoisted vals plus the rewritten if")
	xVal := f.Declarations[0].(ast.VariableDeclaration)
	require.Equal(t, "x", xVal.Name)
	yVal := f.Declarations[1].(ast.VariableDeclaration)
	require.Equal(t, "y", yVal.Name)

	barCall := yVal.Initializer.(ast.CallExpression)
	barDot := barCall.Function.(ast.DotExpression)
	chain, ok := barDot.Receiver.(ast.OptionalChainExpression)
	require.True(t, ok, "x must be read through an optional chain in y's initializer")
	require.Equal(t, "x", chain.Inner.(ast.DeclRefExpression).Name)

	ifs := f.Declarations[2].(ast.IfStatement)
	require.Len(t, ifs.Conditions, 2)
	for _, c := range ifs.Conditions {
		require.False(t, c.IsBinding(), "every condition must have been rewritten to a not-null check")
	}
}

// TestRearrangeIfLetsLeavesFirstBindingAlone ensures a binding's own
// initializer is never optional-chained on behalf of its own freshly
// introduced name, only on behalf of names hoisted strictly earlier.
func TestRearrangeIfLetsLeavesFirstBindingAlone(t *testing.T) {
	ctx := context.New(config.Default())
	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{ifLetChain()}}
	ctx.Freeze()

	rewrite.RearrangeIfLets(ctx, f)

	xVal := f.Declarations[0].(ast.VariableDeclaration)
	call := xVal.Initializer.(ast.CallExpression)
	require.Equal(t, "foo", call.Function.(ast.DeclRefExpression).Name)
}

// TestIfLetHoistEmitsOptionalChainedSecondBinding runs the fix through
// emit, matching the hoisted-val(s)/rewritten-if shape scenario 2 names.
func TestIfLetHoistEmitsOptionalChainedSecondBinding(t *testing.T) {
	ctx := context.New(config.Default())
	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{ifLetChain()}}
	ctx.Freeze()

	rewrite.RearrangeIfLets(ctx, f)

	text, _ := emit.File(ctx, f)
	require.Contains(t, text, "val x = foo()")
	require.Contains(t, text, "val y = x?.bar()")
	require.Contains(t, text, "if (x != null && y != null)")
	require.Contains(t, text, "use(x, y)")
}

// TestRearrangeIfLetsPropagatesThroughElseIfChain covers an else-if chain
// that binds the same name twice: only the outer binding is hoisted in
// front of the chain, so x appears once among the top-level declarations.
func TestRearrangeIfLetsPropagatesThroughElseIfChain(t *testing.T) {
	ctx := context.New(config.Default())

	innerDecl := ast.NewVariableDeclaration(sp(2))
	innerDecl.Name, innerDecl.IsVal = "x", true
	innerDecl.Initializer = ast.NewDeclRefExpression(sp(2), "fallback")
	inner := ast.NewIfStatement(sp(2))
	inner.Conditions = []ast.IfCondition{{Decl: &innerDecl}}
	inner.Then = []ast.Statement{}

	outerDecl := ast.NewVariableDeclaration(sp(1))
	outerDecl.Name, outerDecl.IsVal = "x", true
	outerDecl.Initializer = ast.NewDeclRefExpression(sp(1), "foo")
	outer := ast.NewIfStatement(sp(1))
	outer.Conditions = []ast.IfCondition{{Decl: &outerDecl}}
	outer.Then = []ast.Statement{}
	outer.Else = []ast.Statement{inner}

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{outer}}
	ctx.Freeze()

	rewrite.RearrangeIfLets(ctx, f)

	hoistedCount := 0
	for _, d := range f.Declarations {
		if vd, ok := d.(ast.VariableDeclaration); ok && vd.Name == "x" {
			hoistedCount++
		}
	}
	require.Equal(t, 1, hoistedCount, "x is hoisted once even though it's bound again in the else-if branch")
}
