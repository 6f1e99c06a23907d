package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// dataStructureFactories maps an empty source collection constructor to
// the target's builder function.
var dataStructureFactories = map[string]string{
	"MutableList": "mutableListOf",
	"List":        "listOf",
	"MutableMap":  "mutableMapOf",
	"Map":         "mapOf",
}

// DataStructureInitializers rewrites `MutableList<T>()` (and the List/
// MutableMap/Map equivalents) into the target's top-level builder call,
// e.g. `mutableListOf()`. The constructor's type arguments are not
// carried over to the builder call.
func DataStructureInitializers(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok || len(call.Arguments) != 0 {
			return e, false
		}
		ref, ok := call.Function.(ast.TypeReference)
		if !ok {
			return e, false
		}
		factory, ok := dataStructureFactories[ref.Name]
		if !ok {
			return e, false
		}
		fn := ast.NewDeclRefExpression(call.Span(), factory)
		call.Function = fn
		return call, true
	})
}

// TuplesToPairs rewrites a 2-tuple literal, outside call arguments and
// for-each bindings, into a `Pair(a, b)` constructor call; `.0`/`.1`
// member access becomes `.first`/`.second`. Key-value tuples from
// dictionary iteration are not told apart: they get `.first`/`.second`
// too, never `.key`/`.value`.
func TuplesToPairs(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		switch n := e.(type) {
		case ast.TupleExpression:
			if len(n.Elements) != 2 {
				return e, false
			}
			if _, inCallArgs := v.Parent().(ast.CallExpression); inCallArgs {
				return e, false
			}
			pair := ast.NewCallExpression(n.Span())
			pair.Function = ast.NewDeclRefExpression(n.Span(), "Pair")
			pair.Arguments = n.Elements
			return pair, true
		case ast.DotExpression:
			switch n.Member {
			case "0":
				n.Member = "first"
			case "1":
				n.Member = "second"
			default:
				return e, false
			}
			return n, true
		default:
			return e, false
		}
	})
}

// OptionalSubscriptRefactor rewrites `opt?[i]` into `opt?.get(i)`, since
// the target has no optional-chained subscript operator.
func OptionalSubscriptRefactor(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		sub, ok := e.(ast.SubscriptExpression)
		if !ok {
			return e, false
		}
		chain, ok := sub.Subscripted.(ast.OptionalChainExpression)
		if !ok {
			return e, false
		}
		get := ast.NewDotExpression(sub.Span(), "get")
		get.Receiver = chain
		call := ast.NewCallExpression(sub.Span())
		call.Function = get
		call.Arguments = sub.Index
		return call, true
	})
}

// AddOptionalsInDotChains walks a dot chain left to right and propagates
// optional-chaining: once any earlier link in the chain is wrapped in an
// OptionalChainExpression, every later link's receiver must become
// optional-chained too.
func AddOptionalsInDotChains(ctx *context.Context, f *ast.File) {
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		dot, ok := e.(ast.DotExpression)
		if !ok {
			return e, false
		}
		if chainHasOptional(dot.Receiver) {
			if _, already := dot.Receiver.(ast.OptionalChainExpression); already {
				return e, false
			}
			wrapped := ast.NewOptionalChainExpression(dot.Receiver.Span())
			wrapped.Inner = dot.Receiver
			dot.Receiver = wrapped
			return dot, true
		}
		return e, false
	})
}

func chainHasOptional(e ast.Expression) bool {
	switch n := e.(type) {
	case ast.OptionalChainExpression:
		return true
	case ast.DotExpression:
		return chainHasOptional(n.Receiver)
	case ast.CallExpression:
		return chainHasOptional(n.Function)
	default:
		return false
	}
}
