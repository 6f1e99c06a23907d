package rewrite

import (
	"strconv"
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// ReplaceTemplates is the first second-round pass: every call shaped like
// a registered template's pattern is replaced by the template's snippet,
// with each pattern hole ($0, $1, ...) substituted by the matching
// argument expression. Runs before anything else so later passes never
// see the source-only call this template stands in for.
//
// Patterns and snippets stay opaque strings per the design note (§9); the
// only structure this pass imposes is "name(hole, hole, ...)" for a
// pattern and a literal/hole-interleaved snippet, which is why the
// substitution result is built as LiteralCodeExpression/ConcatExpression
// nodes rather than re-parsed target syntax.
func ReplaceTemplates(ctx *context.Context, f *ast.File) {
	templates := ctx.Templates()
	mutateExpressions(f, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		call, ok := e.(ast.CallExpression)
		if !ok {
			return e, false
		}
		for _, t := range templates {
			if out, matched := applyTemplate(t, call); matched {
				return out, true
			}
		}
		return e, false
	})
}

func applyTemplate(t context.Template, call ast.CallExpression) (ast.Expression, bool) {
	name, holes, ok := parsePattern(t.Pattern)
	if !ok {
		return nil, false
	}
	ref, ok := call.Function.(ast.DeclRefExpression)
	if !ok || ref.Name != name || holes != len(call.Arguments) {
		return nil, false
	}
	return buildSnippet(t.Snippet, call), true
}

// parsePattern splits "name($0, $1)" into ("name", 2). Any pattern not of
// this call shape is rejected rather than guessed at, since the pattern
// language is otherwise opaque.
func parsePattern(pattern string) (name string, holeCount int, ok bool) {
	open := strings.IndexByte(pattern, '(')
	if open == -1 || !strings.HasSuffix(pattern, ")") {
		return "", 0, false
	}
	name = strings.TrimSpace(pattern[:open])
	inner := strings.TrimSpace(pattern[open+1 : len(pattern)-1])
	if inner == "" {
		return name, 0, true
	}
	return name, len(strings.Split(inner, ",")), true
}

// buildSnippet interleaves the snippet's literal text with the call's
// argument expressions at each "$N" hole, producing a Concat/LiteralCode
// chain the emitter renders verbatim alongside the substituted arguments.
func buildSnippet(snippet string, call ast.CallExpression) ast.Expression {
	var parts []ast.Expression
	lit := strings.Builder{}

	flush := func() {
		if lit.Len() > 0 {
			lc := ast.NewLiteralCodeExpression(call.Span())
			lc.Code = lit.String()
			parts = append(parts, lc)
			lit.Reset()
		}
	}

	for i := 0; i < len(snippet); i++ {
		if snippet[i] == '$' && i+1 < len(snippet) && isDigit(snippet[i+1]) {
			j := i + 1
			for j < len(snippet) && isDigit(snippet[j]) {
				j++
			}
			idx, _ := strconv.Atoi(snippet[i+1 : j])
			if idx < len(call.Arguments) {
				flush()
				parts = append(parts, call.Arguments[idx].Expression)
			}
			i = j - 1
			continue
		}
		lit.WriteByte(snippet[i])
	}
	flush()

	if len(parts) == 0 {
		return ast.NewLiteralCodeExpression(call.Span())
	}
	out := parts[0]
	for _, p := range parts[1:] {
		c := ast.NewConcatExpression(call.Span())
		c.Left, c.Right = out, p
		out = c
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
