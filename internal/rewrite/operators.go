package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// operatorRenames maps a source binary operator spelling to the target's.
var operatorRenames = map[string]string{
	"??": "?:",
	"<<": "shl",
	">>": "shr",
	"&":  "and",
	"|":  "or",
	"^":  "xor",
}

// RenameOperators rewrites binary operators with no direct spelling in the
// target, plus the compiler-synthesized enum equality call
// `__derived_enum_equals` into a plain `==`.
func RenameOperators(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		switch n := e.(type) {
		case ast.BinaryExpression:
			renamed, ok := operatorRenames[n.Operator]
			if !ok {
				return e, false
			}
			n.Operator = renamed
			return n, true
		case ast.CallExpression:
			ref, ok := n.Function.(ast.DeclRefExpression)
			if !ok || ref.Name != "__derived_enum_equals" || len(n.Arguments) != 2 {
				return e, false
			}
			eq := ast.NewBinaryExpression(n.Span(), "==")
			eq.Left = n.Arguments[0].Expression
			eq.Right = n.Arguments[1].Expression
			return eq, true
		default:
			return e, false
		}
	})
}

// OptionalsInConditionalCasts strips a redundant outer optional-chain
// wrapper from the left-hand side of an `as?` cast, since the cast
// already produces an optional result.
func OptionalsInConditionalCasts(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		bin, ok := e.(ast.BinaryExpression)
		if !ok || bin.Operator != "as?" {
			return e, false
		}
		chain, ok := bin.Left.(ast.OptionalChainExpression)
		if !ok {
			return e, false
		}
		bin.Left = chain.Inner
		return bin, true
	})
}

// DoubleNegativesInGuards converts a `guard` into a plain `if`, flipping
// an equality comparison at the top of its condition to avoid the double
// negative a naive translation would otherwise read: `guard a != b` →
// `if a == b`, `guard a == b` → `if a != b`. A condition that is already
// a negation (`guard !x`) is left exactly as written.
func DoubleNegativesInGuards(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ifs, ok := s.(ast.IfStatement)
		if !ok || !ifs.WasGuard {
			return nil, false
		}
		for i, cond := range ifs.Conditions {
			bin, ok := cond.Expr.(ast.BinaryExpression)
			if !ok {
				continue
			}
			switch bin.Operator {
			case "!=":
				bin.Operator = "=="
			case "==":
				bin.Operator = "!="
			default:
				continue
			}
			ifs.Conditions[i] = ast.IfCondition{Expr: bin}
		}
		ifs.WasGuard = false
		return []ast.Statement{ifs}, true
	})
}

// IfNullReturnToElvis collapses `if (x == null) { return }` down to the
// target's Elvis-operator idiom `x ?: return`.
func IfNullReturnToElvis(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ifs, ok := s.(ast.IfStatement)
		if !ok || len(ifs.Conditions) != 1 || len(ifs.Else) != 0 || len(ifs.Then) != 1 {
			return nil, false
		}
		ret, ok := ifs.Then[0].(ast.ReturnStatement)
		if !ok {
			return nil, false
		}
		cond := ifs.Conditions[0]
		if cond.IsBinding() {
			return nil, false
		}
		bin, ok := cond.Expr.(ast.BinaryExpression)
		if !ok || bin.Operator != "==" {
			return nil, false
		}
		var subject ast.Expression
		switch {
		case isNilLiteral(bin.Right):
			subject = bin.Left
		case isNilLiteral(bin.Left):
			subject = bin.Right
		default:
			return nil, false
		}
		elvisReturn := ast.NewReturnExpression(ret.Span())
		elvisReturn.Value = ret.Value
		elvis := ast.NewBinaryExpression(ifs.Span(), "?:")
		elvis.Left = subject
		elvis.Right = elvisReturn
		stmt := ast.NewExpressionStatement(ifs.Span())
		stmt.Expression = elvis
		return []ast.Statement{stmt}, true
	})
}

func isNilLiteral(e ast.Expression) bool {
	_, ok := e.(ast.NilLiteral)
	return ok
}
