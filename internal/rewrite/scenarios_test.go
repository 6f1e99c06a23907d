package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/emit"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/recording"
	"github.com/vela-lang/vela/internal/rewrite"
	"github.com/vela-lang/vela/internal/warn"
)

// runFull drives a file through the full two-round pipeline: first-round
// recording, then every ordered rewrite step, then the warning passes,
// then emit, in the order the driver runs them. Each scenario
// below builds the minimal AST a frontend decode of the matching §8
// source would produce and checks the rendered text end to end.
func runFull(t *testing.T, f *ast.File) string {
	t.Helper()
	ctx := context.New(config.Default())
	recording.Run(ctx, []*ast.File{f})
	ctx.Freeze()
	rewrite.Run(ctx, f)
	warn.Run(ctx, f)
	text, _ := emit.File(ctx, f)
	return text
}

// TestScenarioSealedEnumSwitchBecomesWhenWithIsArms covers §8 scenario 1:
// a sealed-class enum switched over becomes a `when` with `is` arms
// naming the generated subclasses, not the lowercase source spelling.
func TestScenarioSealedEnumSwitchBecomesWhenWithIsArms(t *testing.T) {
	enum := ast.NewEnumDeclaration(sp(1))
	enum.Name = "Direction"
	north := ast.NewEnumElement(sp(1), "north")
	south := ast.NewEnumElement(sp(1), "south")
	south.AssociatedValues = []ast.LabeledType{{Label: "distance", Type: ast.NewTypeReference(sp(1), "Int")}}
	enum.Elements = []ast.EnumElement{north, south}
	enum.Inherits = []string{"Equatable"}

	subject := ast.NewDeclRefExpression(sp(2), "d")
	subject.Type = ast.NewTypeReference(sp(2), "Direction")
	sw := ast.NewSwitchStatement(sp(2))
	sw.Subject = subject
	sw.Cases = []ast.SwitchCase{
		ast.NewSwitchCase(sp(2), []ast.Expression{ast.NewDotExpression(sp(2), "north")}, []ast.Statement{
			printCall(sp(2), "north"),
		}),
		ast.NewSwitchCase(sp(3), []ast.Expression{ast.NewDotExpression(sp(3), "south")}, []ast.Statement{
			printCall(sp(3), "south"),
		}),
	}

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{enum, sw}}
	text := runFull(t, f)

	require.Contains(t, text, "when (d) {")
	require.Contains(t, text, "is Direction.North ->")
	require.Contains(t, text, "is Direction.South ->")
}

// TestScenarioIfLetChainHoistsAndOptionalChains covers §8 scenario 2:
// chained if-let bindings hoist to vals preceding the if, and a later
// binding reading off an earlier one switches to optional-chained access.
func TestScenarioIfLetChainHoistsAndOptionalChains(t *testing.T) {
	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{ifLetChain()}}
	text := runFull(t, f)

	require.Contains(t, text, "val x = foo()")
	require.Contains(t, text, "val y = x?.bar()")
	require.Contains(t, text, "if (x != null && y != null)")
	require.Contains(t, text, "use(x, y)")
}

// TestScenarioDescriptionPropertyBecomesToString covers §8 scenario 3: a
// `description: String` property on a struct becomes an overridden
// `toString`. The test leaves CustomStringConvertible off Inherits since
// Description To To String keys only on the property's name, not on the
// inheritance list Clean Inheritances strips elsewhere.
func TestScenarioDescriptionPropertyBecomesToString(t *testing.T) {
	desc := ast.NewVariableDeclaration(sp(1))
	desc.Name, desc.IsVal = "description", true
	desc.Type = ast.NewTypeReference(sp(1), "String")
	desc.Initializer = ast.NewStringLiteral(sp(1), "s")

	st := ast.NewStructDeclaration(sp(1))
	st.Name = "S"
	st.Members = []ast.Statement{desc}

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{st}}
	text := runFull(t, f)

	require.Contains(t, text, "override fun toString(): String {")
	require.Contains(t, text, "return \"s\"")
	require.NotContains(t, text, "description")
}

// TestScenarioCovariantCollectionInitBecomesConversionCall covers §8
// scenario 4: initializing a MutableList from a Sequence-typed value
// becomes a `toMutableList()` call rather than a constructor call.
func TestScenarioCovariantCollectionInitBecomesConversionCall(t *testing.T) {
	xs := ast.NewVariableDeclaration(sp(1))
	xs.Name, xs.IsVal = "xs", true
	mlType := ast.NewTypeReference(sp(1), "MutableList")
	mlType.Args = []ast.Expression{ast.NewTypeReference(sp(1), "Int")}
	xs.Type = mlType

	initType := ast.NewTypeReference(sp(1), "MutableList")
	initType.Args = []ast.Expression{ast.NewTypeReference(sp(1), "Int")}
	initCall := ast.NewCallExpression(sp(1))
	initCall.Function = initType
	initCall.Arguments = []ast.LabeledExpression{{Expression: ast.NewDeclRefExpression(sp(1), "seq")}}
	xs.Initializer = initCall

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{xs}}
	text := runFull(t, f)

	require.Contains(t, text, "val xs: MutableList<Int> = seq.toMutableList()")
}

// TestScenarioSwitchAssigningSameTargetFoldsIntoWhenExpression covers §8
// scenario 5: a variable declared just before a switch that assigns it in
// every case folds into one declaration initialized by a `when`
// expression. The variable is built without its own initializer, since
// Switches To Expressions only merges into a declaration that has none;
// it stays a `var` since the fold never revisits IsVal.
func TestScenarioSwitchAssigningSameTargetFoldsIntoWhenExpression(t *testing.T) {
	r := ast.NewVariableDeclaration(sp(2))
	r.Name, r.IsVal = "r", false
	r.Type = ast.NewTypeReference(sp(2), "Int")

	subject := ast.NewDeclRefExpression(sp(3), "k")
	sw := ast.NewSwitchStatement(sp(3))
	sw.Subject = subject
	sw.Cases = []ast.SwitchCase{
		assignCase(sp(4), ast.NewIntLiteral(sp(4), "1", 10), "r", ast.NewIntLiteral(sp(4), "10", 10)),
		assignCase(sp(5), ast.NewIntLiteral(sp(5), "2", 10), "r", ast.NewIntLiteral(sp(5), "20", 10)),
		defaultAssignCase(sp(6), "r", ast.NewIntLiteral(sp(6), "0", 10)),
	}

	ret := ast.NewReturnStatement(sp(7))
	ret.Value = ast.NewDeclRefExpression(sp(7), "r")

	fn := ast.NewFunctionDeclaration(sp(1))
	fn.Name = "classify"
	fn.Parameters = []ast.FunctionParameter{ast.NewFunctionParameter(sp(1), "k", "k", ast.NewTypeReference(sp(1), "Int"))}
	fn.ReturnType = ast.NewTypeReference(sp(1), "Int")
	fn.Body = []ast.Statement{r, sw, ret}

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{fn}}
	text := runFull(t, f)

	require.Contains(t, text, "var r: Int = when (k) {")
	require.Contains(t, text, "1 -> 10")
	require.Contains(t, text, "2 -> 20")
	require.Contains(t, text, "else -> 0")
	require.Contains(t, text, "return r")
}

// TestScenarioNullCoalescingChainRenamesOperatorKeepingAssociativity
// covers §8 scenario 6: `??` becomes `?:` at every level of a chain
// without disturbing the chain's right-associative shape.
func TestScenarioNullCoalescingChainRenamesOperatorKeepingAssociativity(t *testing.T) {
	inner := ast.NewBinaryExpression(sp(1), "??")
	inner.Left = ast.NewDeclRefExpression(sp(1), "b")
	inner.Right = ast.NewIntLiteral(sp(1), "2", 10)

	outer := ast.NewBinaryExpression(sp(1), "??")
	outer.Left = ast.NewDeclRefExpression(sp(1), "a")
	outer.Right = inner

	c := ast.NewVariableDeclaration(sp(1))
	c.Name, c.IsVal = "c", true
	c.Initializer = outer

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{c}}
	text := runFull(t, f)

	require.Contains(t, text, "val c = a ?: b ?: 2")
}

// assignCase builds a switch case matching matchExpr whose single
// statement assigns value to the variable named target.
func assignCase(span position.Span, matchExpr ast.Expression, target string, value ast.Expression) ast.SwitchCase {
	assign := ast.NewAssignmentStatement(span)
	assign.Target, assign.Operator, assign.Value = ast.NewDeclRefExpression(span, target), "=", value
	return ast.NewSwitchCase(span, []ast.Expression{matchExpr}, []ast.Statement{assign})
}

// defaultAssignCase builds the `default:` case of the same assignment shape.
func defaultAssignCase(span position.Span, target string, value ast.Expression) ast.SwitchCase {
	assign := ast.NewAssignmentStatement(span)
	assign.Target, assign.Operator, assign.Value = ast.NewDeclRefExpression(span, target), "=", value
	return ast.NewSwitchCase(span, nil, []ast.Statement{assign})
}
