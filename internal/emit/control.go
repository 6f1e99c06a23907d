package emit

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/translation"
)

func (e *emitter) doStatement(t *translation.Translation, n ast.DoStatement) {
	t.AppendString("try ")
	t.AppendTranslation(e.block(n.Body))
	for _, c := range n.Catches {
		t.AppendString(" ")
		t.AppendTranslation(e.statement(c))
	}
}

func (e *emitter) catchClause(t *translation.Translation, n ast.CatchClause) {
	binding := n.Binding
	if binding == "" {
		binding = "_error"
	}
	t.AppendString("catch (" + binding + ": " + e.typeName(n.Type) + ") ")
	t.AppendTranslation(e.block(n.Body))
}

func (e *emitter) forEach(t *translation.Translation, n ast.ForEachStatement) {
	t.AppendString("for (" + forBindingText(n) + " in ")
	t.AppendTranslation(e.expr(n.Sequence))
	t.AppendString(") ")
	t.AppendTranslation(e.block(n.Body))
}

func forBindingText(n ast.ForEachStatement) string {
	if n.ValueOnly || n.SecondBinding == "" {
		return n.Binding
	}
	return "(" + n.Binding + ", " + n.SecondBinding + ")"
}

// ifStatement assumes Rearrange If-Lets has already hoisted every binding
// condition into a preceding val declaration, leaving only plain boolean
// Exprs behind (§4.5 pass 12, always run). A surviving Decl condition
// falls back to a bare null check rather than panicking the whole file.
func (e *emitter) ifStatement(t *translation.Translation, n ast.IfStatement) {
	t.AppendString("if (")
	for i, c := range n.Conditions {
		if i > 0 {
			t.AppendString(" && ")
		}
		t.AppendTranslation(e.ifCondition(c))
	}
	t.AppendString(") ")
	t.AppendTranslation(e.block(n.Then))
	if len(n.Else) == 0 {
		return
	}
	t.AppendString(" else ")
	if len(n.Else) == 1 {
		if nested, ok := n.Else[0].(ast.IfStatement); ok {
			t.AppendTranslation(e.statement(nested))
			return
		}
	}
	t.AppendTranslation(e.block(n.Else))
}

func (e *emitter) ifCondition(c ast.IfCondition) *translation.Translation {
	if !c.IsBinding() {
		return e.expr(c.Expr)
	}
	t := translation.New(c.Span())
	t.AppendString(c.Decl.Name + " != null")
	return t
}

// switchStatement renders `when (subject) { ... }`. A case expression
// that is itself an ast.TypeReference names an enum case rather than a
// value to equal, per Is In Switches and Ifs's rewrite, and becomes an
// `is Enum.Case` arm instead of a plain equality arm.
func (e *emitter) switchStatement(t *translation.Translation, n ast.SwitchStatement) {
	t.AppendString("when (")
	t.AppendTranslation(e.expr(n.Subject))
	t.AppendString(") {\n")
	e.depth++
	for _, c := range n.Cases {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.switchCase(c))
		t.AppendString("\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
}

func (e *emitter) switchExpr(n ast.SwitchExpression) *translation.Translation {
	t := translation.New(n.Span())
	t.AppendString("when (")
	t.AppendTranslation(e.expr(n.Subject))
	t.AppendString(") {\n")
	e.depth++
	for _, c := range n.Cases {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.switchCase(c))
		t.AppendString("\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
	return t
}

func (e *emitter) switchCase(c ast.SwitchCase) *translation.Translation {
	t := translation.New(c.Span())
	if c.IsDefault() {
		t.AppendString("else -> ")
	} else {
		for i, expr := range c.Expressions {
			if i > 0 {
				t.AppendString(", ")
			}
			t.AppendTranslation(e.caseExpr(expr))
		}
		t.AppendString(" -> ")
	}
	if len(c.Statements) == 1 {
		t.AppendTranslation(e.statement(c.Statements[0]))
		return t
	}
	t.AppendTranslation(e.block(c.Statements))
	return t
}

func (e *emitter) caseExpr(expr ast.Expression) *translation.Translation {
	if ref, ok := expr.(ast.TypeReference); ok {
		t := translation.New(ref.Span())
		t.AppendString("is " + ref.Name)
		return t
	}
	return e.expr(expr)
}

func (e *emitter) returnStatement(t *translation.Translation, n ast.ReturnStatement) {
	t.AppendString("return")
	if n.Label != "" {
		t.AppendString("@" + n.Label)
	}
	if n.Value != nil {
		t.AppendString(" ")
		t.AppendTranslation(e.expr(n.Value))
	}
}

// paramList renders a declared parameter list with the line-limit
// heuristic applied to the whole signature.
func (e *emitter) paramList(params []ast.FunctionParameter) *translation.Translation {
	parts := make([]*translation.Translation, len(params))
	for i, p := range params {
		parts[i] = e.paramText(p)
	}
	return e.delimitedList(parts, "(", ")")
}

// paramText declares a parameter by its implementation label only: the
// target has no analogue of a separate call-site label, and the call
// matcher (internal/match) already rewrites every call to use this same
// name.
func (e *emitter) paramText(p ast.FunctionParameter) *translation.Translation {
	t := translation.New(p.Span())
	name := p.ImplementationLabel()
	if name == "" {
		name = "arg"
	}
	t.AppendString(name + ": ")
	if p.IsVariadic {
		t.AppendString("vararg ")
	}
	t.AppendString(e.typeName(p.Type))
	if p.Default != nil {
		t.AppendString(" = ")
		t.AppendTranslation(e.expr(p.Default))
	}
	return t
}

// argsOnly renders the parenthesized argument list of a call expression
// without re-rendering its callee, used by super-call constructor headers.
func (e *emitter) argsOnly(call ast.CallExpression) *translation.Translation {
	parts := make([]*translation.Translation, len(call.Arguments))
	for i, a := range call.Arguments {
		parts[i] = e.labeledArg(a)
	}
	return e.delimitedList(parts, "(", ")")
}

func (e *emitter) labeledArg(a ast.LabeledExpression) *translation.Translation {
	t := translation.New(position.Span{})
	if a.Label != "" {
		t.AppendString(a.Label + " = ")
	}
	t.AppendTranslation(e.expr(a.Expression))
	return t
}
