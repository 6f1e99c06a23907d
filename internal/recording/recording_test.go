package recording_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/recording"
)

func sp(line int) position.Span {
	return position.Span{Start: position.Position{Line: line, Column: 1}, End: position.Position{Line: line, Column: 2}}
}

func TestImplicitRawValuesIntegerSequence(t *testing.T) {
	enum := ast.NewEnumDeclaration(sp(1))
	enum.Name = "Direction"
	enum.Inherits = []string{"Int"}
	enum.Elements = []ast.EnumElement{
		ast.NewEnumElement(sp(2), "north"),
		ast.NewEnumElement(sp(3), "east"),
	}
	elWithValue := ast.NewEnumElement(sp(4), "south")
	elWithValue.RawValue = ast.NewIntLiteral(sp(4), "10", 10)
	enum.Elements = append(enum.Elements, elWithValue, ast.NewEnumElement(sp(5), "west"))

	f := &ast.File{Path: "d.swift", Declarations: []ast.Statement{enum}}
	ctx := context.New(config.Default())

	recording.Run(ctx, []*ast.File{f})

	got := f.Declarations[0].(ast.EnumDeclaration)
	require.Equal(t, "0", got.Elements[0].RawValue.(ast.IntLiteral).Value)
	require.Equal(t, "1", got.Elements[1].RawValue.(ast.IntLiteral).Value)
	require.Equal(t, "10", got.Elements[2].RawValue.(ast.IntLiteral).Value)
	require.Equal(t, "11", got.Elements[3].RawValue.(ast.IntLiteral).Value)
}

func TestCleanInheritancesDropsProtocolsAndRawTypes(t *testing.T) {
	proto := ast.NewProtocolDeclaration(sp(1))
	proto.Name = "Greetable"

	class := ast.NewClassDeclaration(sp(2))
	class.Name = "Person"
	class.Inherits = []string{"Greetable", "String", "Animal"}

	f := &ast.File{Path: "p.swift", Declarations: []ast.Statement{proto, class}}
	ctx := context.New(config.Default())

	recording.Run(ctx, []*ast.File{f})

	require.Equal(t, []string{"Animal"}, ctx.Inheritance("Person"))
}

func TestFunctionRecordingSynthesizesMemberwiseInit(t *testing.T) {
	str := ast.NewStructDeclaration(sp(1))
	str.Name = "Point"
	x := ast.NewVariableDeclaration(sp(2))
	x.Name, x.Type = "x", ast.NewTypeReference(sp(2), "Int")
	y := ast.NewVariableDeclaration(sp(3))
	y.Name, y.Type = "y", ast.NewTypeReference(sp(3), "Int")
	str.Members = []ast.Statement{x, y}

	f := &ast.File{Path: "pt.swift", Declarations: []ast.Statement{str}}
	ctx := context.New(config.Default())

	recording.Run(ctx, []*ast.File{f})

	got := f.Declarations[0].(ast.StructDeclaration)
	require.Len(t, got.Members, 3)
	init, ok := got.Members[2].(ast.InitializerDeclaration)
	require.True(t, ok)
	require.Len(t, init.Parameters, 2)
	require.Equal(t, "x", init.Parameters[0].Label)

	ft, ok := ctx.GetFunctionTranslation("init", "Point")
	require.True(t, ok)
	require.Len(t, ft.Parameters, 2)
}

func TestEnumRecordingClassifiesSealedBySealedCase(t *testing.T) {
	enum := ast.NewEnumDeclaration(sp(1))
	enum.Name = "Shape"
	el := ast.NewEnumElement(sp(2), "circle")
	el.AssociatedValues = []ast.LabeledType{{Label: "radius", Type: ast.NewTypeReference(sp(2), "Double")}}
	enum.Elements = []ast.EnumElement{el}

	f := &ast.File{Path: "s.swift", Declarations: []ast.Statement{enum}}
	ctx := context.New(config.Default())

	recording.Run(ctx, []*ast.File{f})

	require.Equal(t, context.EnumKindSealedClass, ctx.EnumKind("Shape"))
	ft, ok := ctx.GetFunctionTranslation("circle", "Shape")
	require.True(t, ok)
	require.Len(t, ft.Parameters, 1)
}
