package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// OptionalInits converts a failable initializer (IsOptional) into a
// static `invoke` operator returning an optional of the enclosing type;
// every assignment to `self` inside such an initializer's body becomes a
// `return` of the assigned value instead, since the factory has nothing
// left to assign into.
func OptionalInits(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		init, ok := s.(ast.InitializerDeclaration)
		if !ok || !init.IsOptional {
			return nil, false
		}
		span := init.Span()
		fn := ast.NewFunctionDeclaration(span)
		fn.Name = "invoke"
		fn.IsStatic = true
		fn.Parameters = init.Parameters
		fn.ReturnType = optionalOf(span, v.GetFullType())
		fn.Access = init.Access
		fn.Body = selfAssignmentsToReturns(init.Body)
		return []ast.Statement{fn}, true
	})
}

func optionalOf(span position.Span, typeName string) ast.Expression {
	ref := ast.NewTypeReference(span, typeName)
	ref.Optional = true
	return ref
}

// covariantCollectionInits are the source collection type-constructors
// rewritten into the target's fluent conversion calls.
var covariantCollectionInits = map[string]string{
	"MutableList": "toMutableList",
	"List":        "toList",
}

// CovariantInitToCastCall rewrites `MutableList<T>(seq)` into
// `seq.toMutableList()` (and the `List` equivalent), and `xs.as(T.self)`
// / `xs.forceCast(T.self)` into `xs.castOrNull()` / `xs.cast()`. The
// type arguments are not carried over to the rewritten call.
func CovariantInitToCastCall(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok {
			return e, false
		}
		if out, ok := rewriteCollectionInit(call); ok {
			return out, true
		}
		if out, ok := rewriteCastCall(call); ok {
			return out, true
		}
		return e, false
	})
}

func rewriteCollectionInit(call ast.CallExpression) (ast.Expression, bool) {
	ref, ok := call.Function.(ast.TypeReference)
	if !ok || len(call.Arguments) != 1 {
		return nil, false
	}
	method, ok := covariantCollectionInits[ref.Name]
	if !ok {
		return nil, false
	}
	dot := ast.NewDotExpression(call.Span(), method)
	dot.Receiver = call.Arguments[0].Expression
	out := ast.NewCallExpression(call.Span())
	out.Function = dot
	return out, true
}

func rewriteCastCall(call ast.CallExpression) (ast.Expression, bool) {
	dot, ok := call.Function.(ast.DotExpression)
	if !ok || len(call.Arguments) != 1 {
		return nil, false
	}
	var method string
	switch dot.Member {
	case "as":
		method = "castOrNull"
	case "forceCast":
		method = "cast"
	default:
		return nil, false
	}
	selfExpr, ok := call.Arguments[0].Expression.(ast.DotExpression)
	if !ok || selfExpr.Member != "self" {
		return nil, false
	}
	fn := ast.NewDotExpression(call.Span(), method)
	fn.Receiver = dot.Receiver
	out := ast.NewCallExpression(call.Span())
	out.Function = fn
	return out, true
}

// SuperCallsToHeaders extracts the single allowed top-level
// `super.init(...)` call from an initializer body into
// InitializerDeclaration.SuperCall, consumed directly by the emitter. A
// second super-call is left in the body and warned about instead of
// extracted, since only one can be hoisted into the header.
func SuperCallsToHeaders(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		init, ok := s.(ast.InitializerDeclaration)
		if !ok {
			return nil, false
		}
		var kept []ast.Statement
		found := false
		for _, stmt := range init.Body {
			call, isSuper := superInitCall(stmt)
			if isSuper && !found {
				init.SuperCall = &call
				found = true
				continue
			}
			if isSuper {
				ctx.Diagnostics().Report(diag.Warningf(stmt.Span(), "a second super.init(...) call cannot be hoisted into the header and is left in place"))
			}
			kept = append(kept, stmt)
		}
		init.Body = kept
		return []ast.Statement{init}, true
	})
}

func superInitCall(s ast.Statement) (ast.CallExpression, bool) {
	es, ok := s.(ast.ExpressionStatement)
	if !ok {
		return ast.CallExpression{}, false
	}
	call, ok := es.Expression.(ast.CallExpression)
	if !ok {
		return ast.CallExpression{}, false
	}
	dot, ok := call.Function.(ast.DotExpression)
	if !ok || dot.Member != "init" {
		return ast.CallExpression{}, false
	}
	ref, ok := dot.Receiver.(ast.DeclRefExpression)
	if !ok || ref.Name != "super" {
		return ast.CallExpression{}, false
	}
	return call, true
}

// RemoveOpenOnInitializers clears IsOpen on every initializer; the target
// never allows an initializer to be individually open.
func RemoveOpenOnInitializers(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		init, ok := s.(ast.InitializerDeclaration)
		if !ok || !init.IsOpen {
			return nil, false
		}
		init.IsOpen = false
		return []ast.Statement{init}, true
	})
}

// CatchVariableSynthesis gives every binding-less `catch` a synthetic
// `_error: Error` binding. The walk visits a DoStatement's Catches as
// children only, so the clauses are rewritten from their DoStatement.
func CatchVariableSynthesis(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		do, ok := s.(ast.DoStatement)
		if !ok {
			return nil, false
		}
		changed := false
		for i, catch := range do.Catches {
			if catch.Binding != "" {
				continue
			}
			catch.Binding = "_error"
			if catch.Type == nil {
				catch.Type = ast.NewTypeReference(catch.Span(), "Error")
			}
			do.Catches[i] = catch
			changed = true
		}
		if !changed {
			return nil, false
		}
		return []ast.Statement{do}, true
	})
}

func selfAssignmentsToReturns(body []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(body))
	for _, s := range body {
		assign, ok := s.(ast.AssignmentStatement)
		if !ok {
			out = append(out, s)
			continue
		}
		target, ok := assign.Target.(ast.DeclRefExpression)
		if !ok || target.Name != "self" {
			out = append(out, s)
			continue
		}
		ret := ast.NewReturnStatement(assign.Span())
		ret.Value = assign.Value
		out = append(out, ret)
	}
	return out
}
