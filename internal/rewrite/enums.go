package rewrite

import (
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// RawValuesMembers synthesizes, for any enum whose elements carry a raw
// value (filled in by the first-round Implicit Raw Values pass), a
// `rawValue` property and a failable `init?(rawValue:)` factory
// implemented as `values().firstOrNull { it.rawValue == rawValue }`. The
// factory is built as a real, still-failable InitializerDeclaration whose
// body assigns to `self` — later passes (Static Members, Optional Inits)
// turn the assignment into a return and the initializer into a
// companion-object factory, exactly the documented pass order.
func RawValuesMembers(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		enum, ok := s.(ast.EnumDeclaration)
		if !ok {
			return nil, false
		}
		rawType := rawValueType(enum.Elements)
		if rawType == "" {
			return nil, false
		}
		span := enum.Span()

		prop := ast.NewVariableDeclaration(span)
		prop.Name, prop.IsVal, prop.Type = "rawValue", true, ast.NewTypeReference(span, rawType)

		init := failableRawValueInit(span, rawType)

		enum.Members = append(enum.Members, prop, init)
		return []ast.Statement{enum}, true
	})
}

func rawValueType(elements []ast.EnumElement) string {
	for _, el := range elements {
		switch el.RawValue.(type) {
		case ast.IntLiteral:
			return "Int"
		case ast.StringLiteral:
			return "String"
		}
	}
	return ""
}

func failableRawValueInit(span position.Span, rawType string) ast.InitializerDeclaration {
	it := ast.NewDeclRefExpression(span, "it")
	itRawValue := ast.NewDotExpression(span, "rawValue")
	itRawValue.Receiver = it
	cmp := ast.NewBinaryExpression(span, "==")
	cmp.Left, cmp.Right = itRawValue, ast.NewDeclRefExpression(span, "rawValue")
	predicateStmt := ast.NewExpressionStatement(span)
	predicateStmt.Expression = cmp
	predicate := ast.NewClosureExpression(span)
	predicate.Body, predicate.IsTrailing = []ast.Statement{predicateStmt}, true

	values := ast.NewCallExpression(span)
	values.Function = ast.NewDeclRefExpression(span, "values")
	firstOrNull := ast.NewDotExpression(span, "firstOrNull")
	firstOrNull.Receiver = values
	lookup := ast.NewCallExpression(span)
	lookup.Function = firstOrNull
	lookup.Arguments = []ast.LabeledExpression{{Expression: predicate}}
	lookup.AllowsTrailingClosure = true

	assign := ast.NewAssignmentStatement(span)
	assign.Target = ast.NewDeclRefExpression(span, "self")
	assign.Operator = "="
	assign.Value = lookup

	init := ast.NewInitializerDeclaration(span)
	init.IsOptional = true
	init.Parameters = []ast.FunctionParameter{ast.NewFunctionParameter(span, "rawValue", "rawValue", ast.NewTypeReference(span, rawType))}
	init.Body = []ast.Statement{assign}
	return init
}

// CapitalizeEnums normalizes every reference to an enum case: sealed-class
// cases are capitalized (`circle` -> `Circle`), enum-class cases are
// upper-snake-cased (`north` -> `NORTH`), at both declaration sites and
// every dot/type-reference use site.
func CapitalizeEnums(ctx *context.Context, f *ast.File) {
	mutateBoth(f,
		func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
			enum, ok := s.(ast.EnumDeclaration)
			if !ok {
				return nil, false
			}
			kind := ctx.EnumKind(fqName(v, enum.Name))
			for i := range enum.Elements {
				enum.Elements[i].Name = caseName(kind, enum.Elements[i].Name)
			}
			return []ast.Statement{enum}, true
		},
		func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
			dot, ok := e.(ast.DotExpression)
			if !ok {
				return e, false
			}
			recv, ok := dot.Receiver.(ast.DeclRefExpression)
			if !ok {
				return e, false
			}
			kind := ctx.EnumKind(recv.Name)
			if kind == context.EnumKindUnknown {
				return e, false
			}
			dot.Member = caseName(kind, dot.Member)
			return dot, true
		},
	)
}

func caseName(kind context.EnumKind, name string) string {
	if kind == context.EnumKindEnumClass {
		return upperSnake(name)
	}
	return capitalize(name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func upperSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
