package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// ShadowedIfLetToIs rewrites `if let x = x as? T { ... }` — a binding
// that shadows the identifier it casts — into `if (x is T) { ... }`,
// since the target narrows the type of a smart-cast identifier in place.
func ShadowedIfLetToIs(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ifs, ok := s.(ast.IfStatement)
		if !ok {
			return nil, false
		}
		changed := false
		for i, cond := range ifs.Conditions {
			if !cond.IsBinding() {
				continue
			}
			decl := cond.Decl
			cast, ok := decl.Initializer.(ast.BinaryExpression)
			if !ok || cast.Operator != "as?" {
				continue
			}
			ref, ok := cast.Left.(ast.DeclRefExpression)
			if !ok || ref.Name != decl.Name {
				continue
			}
			typeRef, ok := cast.Right.(ast.TypeReference)
			if !ok {
				continue
			}
			isExpr := ast.NewBinaryExpression(decl.Span(), "is")
			isExpr.Left, isExpr.Right = ref, typeRef
			ifs.Conditions[i] = ast.IfCondition{Expr: isExpr}
			changed = true
		}
		if !changed {
			return nil, false
		}
		return []ast.Statement{ifs}, true
	})
}

// SideEffectWarningsInIfLets walks every if-let condition after the
// first and warns on any impure call it contains, consulting the
// purity set recorded by the first round. Must run before Rearrange
// If-Lets, since rearranging destroys the "after the first" ordinal.
func SideEffectWarningsInIfLets(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ifs, ok := s.(ast.IfStatement)
		if !ok || len(ifs.Conditions) < 2 {
			return nil, false
		}
		for _, cond := range ifs.Conditions[1:] {
			warnImpureCalls(ctx, cond.Span(), conditionExpr(cond))
		}
		return nil, false
	})
}

func conditionExpr(c ast.IfCondition) ast.Expression {
	if c.Decl != nil {
		return c.Decl.Initializer
	}
	return c.Expr
}

func warnImpureCalls(ctx *context.Context, span position.Span, e ast.Expression) {
	if e == nil {
		return
	}
	_, exprFn := pass.Walk(nil, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok {
			return e, false
		}
		if ref, ok := call.Function.(ast.DeclRefExpression); ok && !ctx.IsPureFunction(ref.Name) {
			ctx.Diagnostics().Report(diag.Warningf(span, "call to %q in an if-let condition after the first may have a side effect", ref.Name))
		}
		return e, false
	})
	pass.RunExpr(exprFn, e)
}

// ParenthesizeOrInIf wraps any if-condition whose top operator is `||`
// in parentheses, once that condition sits alongside others joined by
// the target's `&&`.
func ParenthesizeOrInIf(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ifs, ok := s.(ast.IfStatement)
		if !ok || len(ifs.Conditions) < 2 {
			return nil, false
		}
		changed := false
		for i, cond := range ifs.Conditions {
			bin, ok := cond.Expr.(ast.BinaryExpression)
			if !ok || bin.Operator != "||" {
				continue
			}
			paren := ast.NewParenExpression(bin.Span())
			paren.Inner = bin
			ifs.Conditions[i] = ast.IfCondition{Expr: paren}
			changed = true
		}
		if !changed {
			return nil, false
		}
		return []ast.Statement{ifs}, true
	})
}

// RearrangeIfLets hoists every `if let` binding to a VariableDeclaration
// immediately preceding the `if`, and replaces the hoisted condition with
// a not-equal-null check against the bound identifier. Nested statements
// are rewritten before their parents, so an `else if` with bindings of
// its own has them hoisted into its else branch, just before it; the
// name-based deduplication therefore only applies among one `if`'s own
// conditions.
func RearrangeIfLets(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ifs, ok := s.(ast.IfStatement)
		if !ok {
			return nil, false
		}
		hoisted, seen := rearrangeChain(&ifs, map[string]bool{})
		_ = seen
		return append(hoisted, ifs), true
	})
}

func rearrangeChain(ifs *ast.IfStatement, seen map[string]bool) ([]ast.Statement, map[string]bool) {
	var hoisted []ast.Statement
	for i, cond := range ifs.Conditions {
		if !cond.IsBinding() {
			continue
		}
		decl := *cond.Decl
		decl.Initializer = optionalizeHoistedReferences(decl.Initializer, seen)
		if !seen[decl.Name] {
			hoisted = append(hoisted, decl)
			seen[decl.Name] = true
		}
		notNull := ast.NewBinaryExpression(decl.Span(), "!=")
		notNull.Left = ast.NewDeclRefExpression(decl.Span(), decl.Name)
		notNull.Right = ast.NewNilLiteral(decl.Span())
		ifs.Conditions[i] = ast.IfCondition{Expr: notNull}
	}
	if len(ifs.Else) == 1 {
		if nested, ok := ifs.Else[0].(ast.IfStatement); ok {
			more, _ := rearrangeChain(&nested, seen)
			hoisted = append(hoisted, more...)
			ifs.Else = []ast.Statement{nested}
		}
	}
	return hoisted, seen
}

// optionalizeHoistedReferences implements §4.5's "retroactively mark
// subsequent uses of each hoisted identifier as optional-chained": once an
// `if let` binding is hoisted to a plain (non-optional-smart-cast) val,
// every later binding's initializer that accesses a member or subscript
// directly off that identifier must read it through an optional chain
// instead. AddOptionalsInDotChains (a later pass) propagates the chain
// forward through any further links; this only needs to introduce the
// first one.
func optionalizeHoistedReferences(e ast.Expression, seen map[string]bool) ast.Expression {
	if e == nil || len(seen) == 0 {
		return e
	}
	_, exprFn := pass.Walk(nil, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		switch n := e.(type) {
		case ast.DotExpression:
			if wrapped, ok := optionalWrapIfHoisted(n.Receiver, seen); ok {
				n.Receiver = wrapped
				return n, true
			}
		case ast.SubscriptExpression:
			if wrapped, ok := optionalWrapIfHoisted(n.Subscripted, seen); ok {
				n.Subscripted = wrapped
				return n, true
			}
		}
		return e, false
	})
	return pass.RunExpr(exprFn, e)
}

func optionalWrapIfHoisted(recv ast.Expression, seen map[string]bool) (ast.Expression, bool) {
	ref, ok := recv.(ast.DeclRefExpression)
	if !ok || !seen[ref.Name] {
		return nil, false
	}
	wrapped := ast.NewOptionalChainExpression(ref.Span())
	wrapped.Inner = ref
	return wrapped, true
}
