package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/emit"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/rewrite"
)

func sp(line int) position.Span {
	return position.Span{Start: position.Position{Line: line, Column: 1}, End: position.Position{Line: line, Column: 2}}
}

// direction builds a sealed-class Direction enum (north, south(distance: Int))
// already recorded the way internal/recording's first round would leave it.
func direction(ctx *context.Context) ast.EnumDeclaration {
	n := ast.NewEnumDeclaration(sp(1))
	n.Name = "Direction"
	north := ast.NewEnumElement(sp(1), "north")
	south := ast.NewEnumElement(sp(1), "south")
	south.AssociatedValues = []ast.LabeledType{{Label: "distance", Type: ast.NewTypeReference(sp(1), "Int")}}
	n.Elements = []ast.EnumElement{north, south}
	ctx.RecordEnumKind("Direction", context.EnumKindSealedClass)
	ctx.RecordEnumDecl("Direction", n)
	return n
}

// TestSwitchOverTypedVariableConvertsDotCasesToIsArms covers the
// reviewer-flagged gap: dotEnumName must resolve the enum a switch subject
// belongs to from the subject's declared Type, not the subject's own
// variable name, since `ctx.EnumKind("d")` never matches an enum registered
// under its type's name ("Direction").
func TestSwitchOverTypedVariableConvertsDotCasesToIsArms(t *testing.T) {
	ctx := context.New(config.Default())
	direction(ctx)

	subject := ast.NewDeclRefExpression(sp(2), "d")
	subject.Type = ast.NewTypeReference(sp(2), "Direction")

	northDot := ast.NewDotExpression(sp(2), "north")
	northCase := ast.NewSwitchCase(sp(2), []ast.Expression{northDot}, []ast.Statement{
		printCall(sp(2), "north"),
	})
	southDot := ast.NewDotExpression(sp(3), "south")
	southLet := ast.NewVariableDeclaration(sp(3))
	southLet.Name, southLet.IsVal = "k", true
	southCase := ast.NewSwitchCase(sp(3), []ast.Expression{southDot}, []ast.Statement{southLet})

	sw := ast.NewSwitchStatement(sp(2))
	sw.Subject = subject
	sw.Cases = []ast.SwitchCase{northCase, southCase}

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{sw}}
	ctx.Freeze()

	rewrite.AnnotationsForCaseLet(ctx, f)
	rewrite.IsInSwitchesAndIfs(ctx, f)

	got := f.Declarations[0].(ast.SwitchStatement)
	require.IsType(t, ast.TypeReference{}, got.Cases[0].Expressions[0])
	require.Equal(t, "Direction.North", got.Cases[0].Expressions[0].(ast.TypeReference).Name)
	require.IsType(t, ast.TypeReference{}, got.Cases[1].Expressions[0])
	require.Equal(t, "Direction.South", got.Cases[1].Expressions[0].(ast.TypeReference).Name)

	annotated := got.Cases[1].Statements[0].(ast.VariableDeclaration)
	require.Equal(t, "Int", annotated.Type.(ast.TypeReference).Name)
}

// TestEqualityComparisonAgainstImplicitMemberBecomesIsCheck covers the
// second instance of the same resolution bug: `d == .north` carries the
// enum-typed variable on the comparison's left side, never on the
// dot-expression's receiver (which is nil for an implicit member).
func TestEqualityComparisonAgainstImplicitMemberBecomesIsCheck(t *testing.T) {
	ctx := context.New(config.Default())
	direction(ctx)

	subject := ast.NewDeclRefExpression(sp(2), "d")
	subject.Type = ast.NewTypeReference(sp(2), "Direction")

	cmp := ast.NewBinaryExpression(sp(2), "==")
	cmp.Left = subject
	cmp.Right = ast.NewDotExpression(sp(2), "north")
	stmt := ast.NewExpressionStatement(sp(2))
	stmt.Expression = cmp

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{stmt}}
	ctx.Freeze()

	rewrite.IsInSwitchesAndIfs(ctx, f)

	got := f.Declarations[0].(ast.ExpressionStatement).Expression.(ast.BinaryExpression)
	require.Equal(t, "is", got.Operator)
	require.Equal(t, "Direction.North", got.Right.(ast.TypeReference).Name)
}

// TestSwitchOverUnresolvedSubjectIsLeftUntouched guards against a
// regression back to matching on the subject's own spelling: a subject
// with no declared Type and no oracle entry must not coincidentally match
// an enum whose registered name happens to equal the variable's name.
func TestSwitchOverUnresolvedSubjectIsLeftUntouched(t *testing.T) {
	ctx := context.New(config.Default())
	ctx.RecordEnumKind("d", context.EnumKindSealedClass)

	sw := ast.NewSwitchStatement(sp(1))
	sw.Subject = ast.NewDeclRefExpression(sp(1), "d")
	sw.Cases = []ast.SwitchCase{
		ast.NewSwitchCase(sp(2), []ast.Expression{ast.NewDotExpression(sp(2), "north")}, []ast.Statement{
			printCall(sp(2), "north"),
		}),
	}
	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{sw}}
	ctx.Freeze()

	rewrite.IsInSwitchesAndIfs(ctx, f)

	got := f.Declarations[0].(ast.SwitchStatement)
	require.IsType(t, ast.DotExpression{}, got.Cases[0].Expressions[0])
}

// TestSealedSwitchEmitsWhenWithIsArms runs the fixed passes all the way
// through emit, proving the `is Direction.North` arm the emitter produces
// actually names the subclass Sealed Class declares, not the case's
// source-spelled (lowercase) member name.
func TestSealedSwitchEmitsWhenWithIsArms(t *testing.T) {
	ctx := context.New(config.Default())
	n := direction(ctx)

	subject := ast.NewDeclRefExpression(sp(2), "d")
	subject.Type = ast.NewTypeReference(sp(2), "Direction")
	sw := ast.NewSwitchStatement(sp(2))
	sw.Subject = subject
	sw.Cases = []ast.SwitchCase{
		ast.NewSwitchCase(sp(2), []ast.Expression{ast.NewDotExpression(sp(2), "north")}, []ast.Statement{
			printCall(sp(2), "north"),
		}),
	}

	f := &ast.File{Path: "t.swift", Declarations: []ast.Statement{n, sw}}
	ctx.Freeze()

	rewrite.AnnotationsForCaseLet(ctx, f)
	rewrite.CapitalizeEnums(ctx, f)
	rewrite.IsInSwitchesAndIfs(ctx, f)

	text, _ := emit.File(ctx, f)
	require.Contains(t, text, "when (d) {")
	require.Contains(t, text, "is Direction.North ->")
}

func printCall(span position.Span, arg string) ast.Statement {
	call := ast.NewCallExpression(span)
	call.Function = ast.NewDeclRefExpression(span, "print")
	call.Arguments = []ast.LabeledExpression{{Expression: ast.NewStringLiteral(span, arg)}}
	stmt := ast.NewExpressionStatement(span)
	stmt.Expression = call
	return stmt
}
