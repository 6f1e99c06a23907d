package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// SelfToThis renames the implicit receiver identifier `self` to the
// target's `this`, everywhere it appears as a bare reference or as the
// receiver of a dot chain.
func SelfToThis(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		ref, ok := e.(ast.DeclRefExpression)
		if !ok || ref.Name != "self" {
			return e, false
		}
		ref.Name = "this"
		return ref, true
	})
}

// ImplicitNullInOptionals gives an explicit `null` initializer to every
// variable declared with an optional type, no initializer, and no
// accessor bodies — the target has no implicit-optional-default rule.
func ImplicitNullInOptionals(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		vd, ok := s.(ast.VariableDeclaration)
		if !ok || vd.Initializer != nil || vd.HasAccessors {
			return nil, false
		}
		ref, ok := vd.Type.(ast.TypeReference)
		if !ok || !ref.Optional {
			return nil, false
		}
		vd.Initializer = ast.NewNilLiteral(vd.Span())
		return []ast.Statement{vd}, true
	})
}

// AnonymousParameterRename rewrites closure shorthand `$0` references to
// the target's `it`.
func AnonymousParameterRename(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		ref, ok := e.(ast.DeclRefExpression)
		if !ok || ref.Name != "$0" {
			return e, false
		}
		ref.Name = "it"
		return ref, true
	})
}

// InnerTypePrefixes shortens a reference to `A.B` into `B` while inside
// type `A`'s own body, maintaining a stack of enclosing type names so a
// doubly-nested reference is shortened against its nearest enclosing
// scope first.
func InnerTypePrefixes(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		dot, ok := e.(ast.DotExpression)
		if !ok {
			return e, false
		}
		return stripInnerPrefix(v, dot.Receiver, dot.Member, dot.Span())
	})
}

func stripInnerPrefix(v *pass.Visitor, receiver ast.Expression, member string, span position.Span) (ast.Expression, bool) {
	ref, ok := receiver.(ast.DeclRefExpression)
	if !ok {
		return nil, false
	}
	for _, enclosing := range enclosingTypeNames(v) {
		if ref.Name == enclosing {
			return ast.NewDeclRefExpression(span, member), true
		}
	}
	return nil, false
}

func enclosingTypeNames(v *pass.Visitor) []string {
	var names []string
	for _, p := range v.Parents() {
		switch n := p.(type) {
		case ast.ClassDeclaration:
			names = append(names, n.Name)
		case ast.StructDeclaration:
			names = append(names, n.Name)
		case ast.EnumDeclaration:
			names = append(names, n.Name)
		}
	}
	return names
}
