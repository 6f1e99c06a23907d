package emit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/emit"
	"github.com/vela-lang/vela/internal/position"
)

func sp(line int) position.Span {
	return position.Span{Start: position.Position{Line: line, Column: 1}, End: position.Position{Line: line, Column: 2}}
}

func newCtx() *context.Context {
	ctx := context.New(config.Default())
	ctx.Freeze()
	return ctx
}

func fileOf(decls ...ast.Statement) *ast.File {
	return &ast.File{Path: "t.swift", Declarations: decls}
}

func TestStructEmitsDataClassFromStoredProperties(t *testing.T) {
	s := ast.NewStructDeclaration(sp(1))
	s.Name = "Point"
	x := ast.NewVariableDeclaration(sp(1))
	x.Name = "x"
	x.IsVal = true
	x.Type = ast.NewTypeReference(sp(1), "Int")
	y := ast.NewVariableDeclaration(sp(1))
	y.Name = "y"
	y.IsVal = true
	y.Type = ast.NewTypeReference(sp(1), "Int")
	s.Members = []ast.Statement{x, y}

	text, _ := emit.File(newCtx(), fileOf(s))
	require.Contains(t, text, "data class Point(val x: Int, val y: Int)")
}

func TestSealedEnumRendersOneNestedClassPerCase(t *testing.T) {
	n := ast.NewEnumDeclaration(sp(1))
	n.Name = "Shape"
	circle := ast.NewEnumElement(sp(2), "Circle")
	circle.AssociatedValues = []ast.LabeledType{{Label: "radius", Type: ast.NewTypeReference(sp(2), "Double")}}
	square := ast.NewEnumElement(sp(3), "Square")
	n.Elements = []ast.EnumElement{circle, square}

	ctx := context.New(config.Default())
	ctx.RecordEnumKind("Shape", context.EnumKindSealedClass)
	ctx.Freeze()

	text, _ := emit.File(ctx, fileOf(n))
	require.Contains(t, text, "sealed class Shape {")
	require.Contains(t, text, "class Circle(val radius: Double) : Shape()")
	require.Contains(t, text, "class Square() : Shape()")
}

func TestEnumClassPromotesRawValueToPrimaryConstructor(t *testing.T) {
	n := ast.NewEnumDeclaration(sp(1))
	n.Name = "Direction"
	north := ast.NewEnumElement(sp(2), "NORTH")
	north.RawValue = ast.NewIntLiteral(sp(2), "0", 10)
	n.Elements = []ast.EnumElement{north}
	raw := ast.NewVariableDeclaration(sp(1))
	raw.Name = "rawValue"
	raw.IsVal = true
	raw.Type = ast.NewTypeReference(sp(1), "Int")
	n.Members = []ast.Statement{raw}

	ctx := context.New(config.Default())
	ctx.RecordEnumKind("Direction", context.EnumKindEnumClass)
	ctx.Freeze()

	text, _ := emit.File(ctx, fileOf(n))
	require.Contains(t, text, "enum class Direction(val rawValue: Int)")
	require.Contains(t, text, "NORTH(0)")
}

func TestFunctionWithSingleExpressionBodyUsesEqualsShorthand(t *testing.T) {
	fn := ast.NewFunctionDeclaration(sp(1))
	fn.Name = "double"
	fn.Parameters = []ast.FunctionParameter{
		ast.NewFunctionParameter(sp(1), "x", "x", ast.NewTypeReference(sp(1), "Int")),
	}
	fn.ReturnType = ast.NewTypeReference(sp(1), "Int")
	es := ast.NewExpressionStatement(sp(2))
	es.Expression = ast.NewBinaryExpression(sp(2), "*")
	bin := es.Expression.(ast.BinaryExpression)
	bin.Left = ast.NewDeclRefExpression(sp(2), "x")
	bin.Right = ast.NewIntLiteral(sp(2), "2", 10)
	es.Expression = bin
	fn.Body = []ast.Statement{es}

	text, _ := emit.File(newCtx(), fileOf(fn))
	require.Contains(t, text, "fun double(x: Int): Int = x * 2")
}

func TestVoidReturnTypeOmitsAnnotation(t *testing.T) {
	fn := ast.NewFunctionDeclaration(sp(1))
	fn.Name = "log"
	fn.Body = []ast.Statement{}

	text, _ := emit.File(newCtx(), fileOf(fn))
	require.Contains(t, text, "fun log()")
	require.NotContains(t, text, ": Unit")
}

func TestParamDeclaresImplementationLabelOnly(t *testing.T) {
	fn := ast.NewFunctionDeclaration(sp(1))
	fn.Name = "move"
	fn.Parameters = []ast.FunctionParameter{
		ast.NewFunctionParameter(sp(1), "to", "destination", ast.NewTypeReference(sp(1), "Point")),
	}
	fn.Body = []ast.Statement{}

	text, _ := emit.File(newCtx(), fileOf(fn))
	require.Contains(t, text, "fun move(destination: Point)")
	require.NotContains(t, text, "to destination")
}

func TestSwitchOnEnumCaseRendersIsArm(t *testing.T) {
	sw := ast.NewSwitchStatement(sp(1))
	sw.Subject = ast.NewDeclRefExpression(sp(1), "shape")
	caseStmt := ast.NewExpressionStatement(sp(2))
	caseStmt.Expression = ast.NewDeclRefExpression(sp(2), "x")
	sw.Cases = []ast.SwitchCase{
		ast.NewSwitchCase(sp(2), []ast.Expression{ast.NewTypeReference(sp(2), "Circle")}, []ast.Statement{caseStmt}),
		ast.NewSwitchCase(sp(3), nil, []ast.Statement{caseStmt}),
	}

	text, _ := emit.File(newCtx(), fileOf(sw))
	require.Contains(t, text, "when (shape) {")
	require.Contains(t, text, "is Circle ->")
	require.Contains(t, text, "else ->")
}

func TestArrayAndDictionaryLiteralsRenderAsNativeCollectionCalls(t *testing.T) {
	v := ast.NewVariableDeclaration(sp(1))
	v.Name = "nums"
	v.IsVal = true
	arr := ast.NewArrayExpression(sp(1))
	arr.Elements = []ast.Expression{ast.NewIntLiteral(sp(1), "1", 10), ast.NewIntLiteral(sp(1), "2", 10)}
	v.Initializer = arr

	d := ast.NewVariableDeclaration(sp(2))
	d.Name = "ages"
	d.IsVal = true
	dict := ast.NewDictionaryExpression(sp(2))
	dict.Keys = []ast.Expression{ast.NewStringLiteral(sp(2), "a")}
	dict.Values = []ast.Expression{ast.NewIntLiteral(sp(2), "1", 10)}
	d.Initializer = dict

	text, _ := emit.File(newCtx(), fileOf(v, d))
	require.Contains(t, text, "listOf(1, 2)")
	require.Contains(t, text, "mapOf(\"a\" to 1)")
}

func TestIntLiteralRadixIsPreserved(t *testing.T) {
	v := ast.NewVariableDeclaration(sp(1))
	v.Name = "mask"
	v.IsVal = true
	v.Initializer = ast.NewIntLiteral(sp(1), "255", 16)

	text, _ := emit.File(newCtx(), fileOf(v))
	require.Contains(t, text, "0xff")
}
