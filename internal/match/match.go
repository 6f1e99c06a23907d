// Package match implements the call-argument matcher from spec §4.6, the
// single hardest algorithm in the pipeline: it replays the source
// compiler's greedy forward-scan binding of call arguments to declared
// parameter slots, so that labels elided at the call site, reordered
// arguments, defaulted parameters, trailing closures and variadics all
// resolve the same way the source compiler would have resolved them.
//
// Grounded on the teacher's internal/transpiler/analyzer argument-binding
// helper used to line up a call's arguments against a resolved function
// signature before generation; this package keeps the same "declared
// parameter list, walk forward once, fail closed" shape but drives it off
// the Context's recorded FunctionTranslation instead of the teacher's
// resolved *types.Func.
package match

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/pass"
)

// MatchCallsToDeclarations is second-round pass 31 of §4.5: every call
// expression reachable in f is rewritten to use its declared parameters'
// implementation labels, in declared order. Calls whose callee cannot be
// resolved against Context (e.g. a call through a closure value) are left
// untouched — the matcher only ever acts on a statically known signature.
func MatchCallsToDeclarations(ctx *context.Context, f *ast.File) {
	stmtFn, _ := pass.Walk(nil, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok {
			return e, false
		}
		return rewriteCall(ctx, call), true
	})
	f.Declarations = pass.Run(stmtFn, f.Declarations)
}

func resolveCallee(ctx *context.Context, call ast.CallExpression) (context.FunctionTranslation, bool) {
	switch fn := call.Function.(type) {
	case ast.DeclRefExpression:
		if ft, ok := ctx.GetFunctionTranslation(fn.Name, ""); ok {
			return ft, true
		}
		// A bare capitalized reference called like a function is an
		// initializer call (`Point(x: 1, y: 2)`); the struct/class name
		// itself is the registered Type, "init" the registered Name.
		return ctx.GetFunctionTranslation("init", fn.Name)
	case ast.DotExpression:
		typeName := receiverTypeName(ctx, fn.Receiver)
		if typeName == "" {
			return context.FunctionTranslation{}, false
		}
		return ctx.GetFunctionTranslation(fn.Member, typeName)
	default:
		return context.FunctionTranslation{}, false
	}
}

// receiverTypeName extracts the spelled type of a dot-call's receiver.
// Recording's own Type annotations cover a plain identifier or call
// receiver directly; a chained dot expression (`a.b.c()`) carries no such
// annotation, so it falls back to the fixture's index-oracle per §4.6's
// get_parent_type(expression) — "" if neither source resolves it.
func receiverTypeName(ctx *context.Context, recv ast.Expression) string {
	var t ast.Expression
	switch r := recv.(type) {
	case ast.DeclRefExpression:
		t = r.Type
	case ast.CallExpression:
		t = r.Type
	}
	if ref, ok := t.(ast.TypeReference); ok {
		return ref.Name
	}
	if name, ok := ctx.Oracle().GetParentType(recv.Span()); ok {
		return name
	}
	return ""
}

func rewriteCall(ctx *context.Context, call ast.CallExpression) ast.Expression {
	ft, ok := resolveCallee(ctx, call)
	if !ok {
		return call
	}
	bindings, matched := bind(ft.Parameters, call.Arguments)
	if !matched {
		ctx.Diagnostics().Report(diag.Errorf(diag.KindMatchFailure, call.Span(),
			"could not match arguments to declared parameters of %s", ft.Name))
		call.Arguments = stripLabels(call.Arguments)
		return call
	}
	call.Arguments = reorder(ft.Parameters, call.Arguments, bindings)
	return call
}

func stripLabels(args []ast.LabeledExpression) []ast.LabeledExpression {
	out := make([]ast.LabeledExpression, len(args))
	for i, a := range args {
		out[i] = ast.LabeledExpression{Label: "", Expression: a.Expression}
	}
	return out
}

// bind replays the forward-scan binding algorithm of §4.6: each declared
// parameter, in order, consumes zero-or-more call arguments. A
// non-variadic parameter takes the first unused argument carrying its
// label, so labeled arguments written out of declared order still bind.
// It returns, per parameter, the call-argument indices bound to it.
func bind(params []ast.FunctionParameter, args []ast.LabeledExpression) ([][]int, bool) {
	bindings := make([][]int, len(params))
	used := make([]bool, len(args))

	trailingArg, trailingParam := trailingClosureBinding(params, args)
	if trailingParam >= 0 {
		bindings[trailingParam] = []int{trailingArg}
		used[trailingArg] = true
	}

	ai := 0
	for pi, p := range params {
		if pi == trailingParam {
			continue
		}
		for ai < len(args) && used[ai] {
			ai++
		}
		if p.IsVariadic {
			for ai < len(args) {
				if used[ai] {
					ai++
					continue
				}
				if args[ai].Label != p.Label {
					break
				}
				bindings[pi] = append(bindings[pi], ai)
				used[ai] = true
				ai++
			}
			continue
		}
		j := 0
		for j < len(args) && (used[j] || args[j].Label != p.Label) {
			j++
		}
		if j >= len(args) {
			if p.Default != nil {
				continue
			}
			return nil, false
		}
		bindings[pi] = []int{j}
		used[j] = true
	}

	for _, u := range used {
		if !u {
			return nil, false
		}
	}
	return bindings, true
}

// trailingClosureBinding implements the "unlabeled trailing closure binds
// to the last function-typed parameter" rule. Returns (-1, -1) if the call
// has no such argument.
func trailingClosureBinding(params []ast.FunctionParameter, args []ast.LabeledExpression) (argIdx, paramIdx int) {
	if len(args) == 0 {
		return -1, -1
	}
	last := args[len(args)-1]
	closure, ok := last.Expression.(ast.ClosureExpression)
	if !ok || !closure.IsTrailing || last.Label != "" {
		return -1, -1
	}
	for i := len(params) - 1; i >= 0; i-- {
		if isFunctionType(params[i].Type) {
			return len(args) - 1, i
		}
	}
	return -1, -1
}

func isFunctionType(t ast.Expression) bool {
	ref, ok := t.(ast.TypeReference)
	if !ok {
		return false
	}
	return containsArrow(ref.Name)
}

func containsArrow(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '-' && s[i+1] == '>' {
			return true
		}
	}
	return false
}

// reorder rebuilds the call's argument list in declared-parameter order,
// using each parameter's implementation label — except that parameters
// before the last variadic parameter receive no label at all, since the
// target disallows labelling ahead of a variadic slot.
func reorder(params []ast.FunctionParameter, args []ast.LabeledExpression, bindings [][]int) []ast.LabeledExpression {
	lastVariadic := -1
	for i, p := range params {
		if p.IsVariadic {
			lastVariadic = i
		}
	}
	out := make([]ast.LabeledExpression, 0, len(args))
	for pi, idxs := range bindings {
		label := params[pi].ImplementationLabel()
		if lastVariadic >= 0 && pi < lastVariadic {
			label = ""
		}
		for _, idx := range idxs {
			out = append(out, ast.LabeledExpression{Label: label, Expression: args[idx].Expression})
		}
	}
	return out
}
