package emit

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/translation"
)

// expr dispatches on e's concrete variant, returning a Translation tagged
// with e's own span so the line-map carries an entry for it.
func (e *emitter) expr(ex ast.Expression) *translation.Translation {
	t := translation.New(ex.Span())
	switch n := ex.(type) {
	case ast.LiteralCodeExpression:
		t.AppendString(n.Code)
	case ast.ConcatExpression:
		t.AppendTranslation(e.expr(n.Left))
		t.AppendTranslation(e.expr(n.Right))
	case ast.ParenExpression:
		t.AppendString("(")
		t.AppendTranslation(e.expr(n.Inner))
		t.AppendString(")")
	case ast.ForceUnwrapExpression:
		t.AppendTranslation(e.expr(n.Inner))
		t.AppendString("!!")
	case ast.SwitchExpression:
		t.AppendTranslation(e.switchExpr(n))
	case ast.OptionalChainExpression:
		t.AppendTranslation(e.expr(n.Inner))
		t.AppendString("?")
	case ast.DeclRefExpression:
		t.AppendString(n.Name)
	case ast.TypeReference:
		t.AppendString(e.typeName(n))
	case ast.SubscriptExpression:
		t.AppendTranslation(e.expr(n.Subscripted))
		t.AppendString("[")
		for i, idx := range n.Index {
			if i > 0 {
				t.AppendString(", ")
			}
			t.AppendTranslation(e.expr(idx.Expression))
		}
		t.AppendString("]")
	case ast.ArrayExpression:
		parts := make([]*translation.Translation, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = e.expr(el)
		}
		t.AppendString("listOf")
		t.AppendTranslation(e.delimitedList(parts, "(", ")"))
	case ast.DictionaryExpression:
		parts := make([]*translation.Translation, len(n.Keys))
		for i := range n.Keys {
			parts[i] = e.pairTo(n.Keys[i], n.Values[i])
		}
		t.AppendString("mapOf")
		t.AppendTranslation(e.delimitedList(parts, "(", ")"))
	case ast.ReturnExpression:
		t.AppendString("return ")
		t.AppendTranslation(e.expr(n.Value))
	case ast.DotExpression:
		t.AppendTranslation(e.expr(n.Receiver))
		t.AppendString("." + n.Member)
	case ast.BinaryExpression:
		t.AppendTranslation(e.expr(n.Left))
		t.AppendString(" " + n.Operator + " ")
		t.AppendTranslation(e.expr(n.Right))
	case ast.PrefixUnaryExpression:
		t.AppendString(n.Operator)
		t.AppendTranslation(e.expr(n.Operand))
	case ast.PostfixUnaryExpression:
		t.AppendTranslation(e.expr(n.Operand))
		t.AppendString(n.Operator)
	case ast.TernaryIfExpression:
		t.AppendString("if (")
		t.AppendTranslation(e.expr(n.Condition))
		t.AppendString(") ")
		t.AppendTranslation(e.expr(n.Then))
		t.AppendString(" else ")
		t.AppendTranslation(e.expr(n.Else))
	case ast.CallExpression:
		e.callExpr(t, n)
	case ast.ClosureExpression:
		e.closureExpr(t, n)
	case ast.IntLiteral:
		t.AppendString(intLiteralText(n))
	case ast.UIntLiteral:
		t.AppendString(uintLiteralText(n))
	case ast.DoubleLiteral:
		t.AppendString(n.Value)
	case ast.FloatLiteral:
		t.AppendString(n.Value + "f")
	case ast.BoolLiteral:
		if n.Value {
			t.AppendString("true")
		} else {
			t.AppendString("false")
		}
	case ast.StringLiteral:
		t.AppendString(stringLiteralText(n))
	case ast.CharLiteral:
		t.AppendString(charLiteralText(n))
	case ast.NilLiteral:
		t.AppendString("null")
	case ast.InterpolatedStringExpression:
		e.interpolatedString(t, n)
	case ast.TupleExpression:
		parts := make([]*translation.Translation, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = e.labeledArg(el)
		}
		t.AppendTranslation(e.delimitedList(parts, "(", ")"))
	case ast.ErrorExpression:
		t.AppendString(`TODO("` + escapeString(n.Message) + `")`)
	default:
		panic(fmt.Sprintf("emit: unhandled expression variant %T (fatal: emitter dispatch table is incomplete)", ex))
	}
	return t
}

func (e *emitter) pairTo(k, v ast.Expression) *translation.Translation {
	t := translation.New(position.Span{})
	t.AppendTranslation(e.expr(k))
	t.AppendString(" to ")
	t.AppendTranslation(e.expr(v))
	return t
}

func (e *emitter) callExpr(t *translation.Translation, n ast.CallExpression) {
	t.AppendTranslation(e.expr(n.Function))
	trailing := -1
	if n.AllowsTrailingClosure && len(n.Arguments) > 0 {
		if cl, ok := n.Arguments[len(n.Arguments)-1].Expression.(ast.ClosureExpression); ok && cl.IsTrailing {
			trailing = len(n.Arguments) - 1
		}
	}
	nonTrailing := n.Arguments
	if trailing >= 0 {
		nonTrailing = n.Arguments[:trailing]
	}
	if len(nonTrailing) > 0 || trailing < 0 {
		parts := make([]*translation.Translation, len(nonTrailing))
		for i, a := range nonTrailing {
			parts[i] = e.labeledArg(a)
		}
		t.AppendTranslation(e.delimitedList(parts, "(", ")"))
	}
	if trailing >= 0 {
		t.AppendString(" ")
		t.AppendTranslation(e.expr(n.Arguments[trailing].Expression))
	}
}

func (e *emitter) closureExpr(t *translation.Translation, n ast.ClosureExpression) {
	t.AppendString("{")
	if len(n.Parameters) > 0 {
		t.AppendString(" ")
		for i, p := range n.Parameters {
			if i > 0 {
				t.AppendString(", ")
			}
			t.AppendString(p.ImplementationLabel())
		}
		t.AppendString(" ->")
	}
	t.AppendString("\n")
	e.depth++
	for _, s := range n.Body {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.statement(s))
		t.AppendString("\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
}

func (e *emitter) interpolatedString(t *translation.Translation, n ast.InterpolatedStringExpression) {
	t.AppendString(`"`)
	for _, seg := range n.Segments {
		if lit, ok := seg.(ast.StringLiteral); ok {
			t.AppendString(lit.Value)
			continue
		}
		t.AppendString("${")
		t.AppendTranslation(e.expr(seg))
		t.AppendString("}")
	}
	t.AppendString(`"`)
}
