package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// Autoclosures wraps the call-site argument bound to an `@autoclosure`
// parameter in a zero-parameter closure, so the argument's evaluation is
// deferred the way the source's autoclosure sugar implied.
func Autoclosures(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok {
			return e, false
		}
		ref, ok := call.Function.(ast.DeclRefExpression)
		if !ok {
			return e, false
		}
		ft, ok := lookupSignature(ctx, v, ref.Name)
		if !ok {
			return e, false
		}
		changed := false
		for i, param := range ft.Parameters {
			if !param.IsAutoclosure || i >= len(call.Arguments) {
				continue
			}
			arg := call.Arguments[i]
			if _, already := arg.Expression.(ast.ClosureExpression); already {
				continue
			}
			closure := ast.NewClosureExpression(arg.Expression.Span())
			stmt := ast.NewExpressionStatement(arg.Expression.Span())
			stmt.Expression = arg.Expression
			closure.Body = []ast.Statement{stmt}
			call.Arguments[i].Expression = closure
			changed = true
		}
		if !changed {
			return e, false
		}
		return call, true
	})
}

func lookupSignature(ctx *context.Context, v *pass.Visitor, name string) (context.FunctionTranslation, bool) {
	if ft, ok := ctx.GetFunctionTranslation(name, ""); ok {
		return ft, true
	}
	return ctx.GetFunctionTranslation(name, v.GetFullType())
}

// OptionalFunctionCalls rewrites `f?()` into `f?.invoke()`, the target's
// spelling for calling an optional function value.
func OptionalFunctionCalls(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok {
			return e, false
		}
		chain, ok := call.Function.(ast.OptionalChainExpression)
		if !ok {
			return e, false
		}
		invoke := ast.NewDotExpression(call.Span(), "invoke")
		invoke.Receiver = chain
		call.Function = invoke
		return call, true
	})
}

// ReturnsInLambdas elides `return` inside a single-statement closure body
// and, inside a multi-statement closure, labels every `return` with the
// enclosing function's name gathered via a label stack. If the single
// statement is a switch already converted into a return-expression by
// Switches to Expressions, the outer return is dropped entirely.
func ReturnsInLambdas(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		closure, ok := e.(ast.ClosureExpression)
		if !ok {
			return e, false
		}
		closure.Body = elideOrLabelReturns(closure.Body, enclosingFunctionName(v))
		return closure, true
	})
}

func labelReturns(body []ast.Statement, label string) []ast.Statement {
	if len(body) <= 1 {
		return body
	}
	out := make([]ast.Statement, len(body))
	for i, s := range body {
		ret, ok := s.(ast.ReturnStatement)
		if !ok {
			out[i] = s
			continue
		}
		ret.Label = label
		out[i] = ret
	}
	return out
}

func elideOrLabelReturns(body []ast.Statement, label string) []ast.Statement {
	if len(body) == 1 {
		ret, ok := body[0].(ast.ReturnStatement)
		if !ok {
			return body
		}
		if ret.Value == nil {
			return nil
		}
		stmt := ast.NewExpressionStatement(ret.Span())
		stmt.Expression = ret.Value
		return []ast.Statement{stmt}
	}
	return labelReturns(body, label)
}

func enclosingFunctionName(v *pass.Visitor) string {
	parents := v.Parents()
	for i := len(parents) - 1; i >= 0; i-- {
		if fn, ok := parents[i].(ast.FunctionDeclaration); ok {
			return fn.Name
		}
	}
	return ""
}
