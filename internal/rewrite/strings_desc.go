package rewrite

import (
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// DescriptionToToString rewrites a `description: String` property into
// an `override fun toString(): String` function with the same body
// recast as a single return statement. Declaring the property is taken
// as the conformance signal — the property is the protocol's one
// requirement — and the type's inheritance list is not consulted.
func DescriptionToToString(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		switch n := s.(type) {
		case ast.ClassDeclaration:
			n.Members = rewriteDescriptionMembers(n.Members)
			return []ast.Statement{n}, true
		case ast.StructDeclaration:
			n.Members = rewriteDescriptionMembers(n.Members)
			return []ast.Statement{n}, true
		default:
			return nil, false
		}
	})
}

func rewriteDescriptionMembers(members []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(members))
	for _, m := range members {
		v, ok := m.(ast.VariableDeclaration)
		if !ok || v.Name != "description" {
			out = append(out, m)
			continue
		}
		fn := ast.NewFunctionDeclaration(v.Span())
		fn.Name = "toString"
		fn.ReturnType = ast.NewTypeReference(v.Span(), "String")
		fn.IsOverride = true
		if v.Initializer != nil {
			ret := ast.NewReturnStatement(v.Span())
			ret.Value = v.Initializer
			fn.Body = []ast.Statement{ret}
		}
		out = append(out, fn)
	}
	return out
}

// EscapeDollarAndQuote escapes `$` in string literal contents so the
// emitter never reads it as the start of an interpolation span.
// Character-literal quote escaping has no AST-level representation to
// mutate (CharLiteral carries a bare rune) and is handled by the emitter
// when it renders the literal.
func EscapeDollarAndQuote(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		n, ok := e.(ast.StringLiteral)
		if !ok {
			return e, false
		}
		escaped := strings.ReplaceAll(n.Value, "$", "\\$")
		if escaped == n.Value {
			return e, false
		}
		n.Value = escaped
		return n, true
	})
}
