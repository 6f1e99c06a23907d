package recording

import (
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// FunctionRecording registers every function's signature, synthesizes
// the memberwise initializer for a struct that declares none of its
// own, and registers a constructor-like function per element of a
// sealed-class enum (§4.4 pass 9). Must run after Enum Recording, since
// the sealed-class branch consults the kind it records.
//
// `@pure` is this repository's own annotation, not part of the
// distilled passes: a function carrying it seeds Context's purity set,
// consulted later by the side-effect warning pass.
func FunctionRecording(ctx *context.Context, f *ast.File) {
	mutateTypes(f, func(v *pass.Visitor, s ast.Statement) ast.Statement {
		switch n := s.(type) {
		case ast.FunctionDeclaration:
			fq := v.GetFullType()
			ctx.RecordFunctionTranslation(context.FunctionTranslation{
				Name: n.Name, Type: fq, Parameters: n.Parameters,
			})
			if hasAttribute(n.Attributes, "pure") {
				ctx.AddPureFunction(n.Name)
			}
			return n
		case ast.StructDeclaration:
			if hasExplicitInitializer(n.Members) {
				return n
			}
			init := synthesizeMemberwiseInit(n.Members)
			ctx.RecordFunctionTranslation(context.FunctionTranslation{
				Name: "init", Type: fqName(v, n.Name), Prefix: "init", Parameters: init.Parameters,
			})
			n.Members = append(n.Members, init)
			return n
		case ast.EnumDeclaration:
			fq := fqName(v, n.Name)
			if ctx.EnumKind(fq) != context.EnumKindSealedClass {
				return n
			}
			for _, el := range n.Elements {
				ctx.RecordFunctionTranslation(context.FunctionTranslation{
					Name: el.Name, Type: fq, Parameters: associatedValueParameters(el),
				})
			}
			return n
		default:
			return n
		}
	})
}

func hasAttribute(attrs []ast.Attribute, name string) bool {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

func hasExplicitInitializer(members []ast.Statement) bool {
	for _, m := range members {
		if _, ok := m.(ast.InitializerDeclaration); ok {
			return true
		}
	}
	return false
}

// synthesizeMemberwiseInit builds an initializer taking one parameter
// per stored (non-static, non-computed) property and assigning each to
// the matching `self` field, the target's equivalent of a struct's
// implicit memberwise initializer.
func synthesizeMemberwiseInit(members []ast.Statement) ast.InitializerDeclaration {
	init := ast.NewInitializerDeclaration(position.Span{})
	for _, m := range members {
		v, ok := m.(ast.VariableDeclaration)
		if !ok || v.IsStatic || v.HasAccessors {
			continue
		}
		param := ast.NewFunctionParameter(v.Span(), v.Name, v.Name, v.Type)
		param.Default = v.Initializer
		init.Parameters = append(init.Parameters, param)

		target := ast.NewDotExpression(v.Span(), v.Name)
		target.Receiver = ast.NewDeclRefExpression(v.Span(), "self")
		assign := ast.NewAssignmentStatement(v.Span())
		assign.Target, assign.Operator, assign.Value = target, "=", ast.NewDeclRefExpression(v.Span(), v.Name)
		init.Body = append(init.Body, assign)
	}
	return init
}

func associatedValueParameters(el ast.EnumElement) []ast.FunctionParameter {
	params := make([]ast.FunctionParameter, len(el.AssociatedValues))
	for i, av := range el.AssociatedValues {
		params[i] = ast.NewFunctionParameter(position.Span{}, av.Label, av.Label, av.Type)
	}
	return params
}
