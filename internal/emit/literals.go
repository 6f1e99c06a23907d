package emit

import (
	"math/big"
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/typestr"
)

// typeName spells t in target syntax, first reconstructing the raw
// source spelling from the structured TypeReference and then handing it
// to typestr.MapType, which owns §4.7's entire translation table.
func (e *emitter) typeName(t ast.Expression) string {
	if t == nil {
		return "Unit"
	}
	return typestr.MapType(rawTypeSpelling(t))
}

func rawTypeSpelling(t ast.Expression) string {
	ref, ok := t.(ast.TypeReference)
	if !ok {
		return "Any"
	}
	s := ref.Name
	if len(ref.Args) > 0 {
		args := make([]string, len(ref.Args))
		for i, a := range ref.Args {
			args[i] = rawTypeSpelling(a)
		}
		s += "<" + strings.Join(args, ", ") + ">"
	}
	if ref.Optional {
		s += "?"
	}
	return s
}

// escapeString escapes backslashes and quotes in a synthesized diagnostic
// message destined for a TODO("...") sentinel call — never applied to a
// real source StringLiteral, whose Value already carries whatever
// escaping the source used.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func stringLiteralText(v ast.StringLiteral) string {
	if v.Multiline {
		return `"""` + v.Value + `"""`
	}
	return `"` + v.Value + `"`
}

// charLiteralText escapes the one rune that has no AST-level
// representation to mutate in advance (see EscapeDollarAndQuote's own
// doc comment).
func charLiteralText(v ast.CharLiteral) string {
	switch v.Value {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	default:
		return "'" + string(v.Value) + "'"
	}
}

func intLiteralText(v ast.IntLiteral) string {
	switch v.Radix {
	case 16:
		return radixText(v.Value, 16, "0x")
	case 2:
		return radixText(v.Value, 2, "0b")
	default:
		return v.Value
	}
}

func uintLiteralText(v ast.UIntLiteral) string {
	switch v.Radix {
	case 16:
		return radixText(v.Value, 16, "0x") + "u"
	case 2:
		return radixText(v.Value, 2, "0b") + "u"
	default:
		return v.Value + "u"
	}
}

// radixText re-renders a decimal-normalized integer string in base,
// preserving the source's chosen radix through the pipeline the way
// IntLiteral's own doc comment promises.
func radixText(decimal string, base int, prefix string) string {
	neg := strings.HasPrefix(decimal, "-")
	if neg {
		decimal = decimal[1:]
	}
	n := new(big.Int)
	if _, ok := n.SetString(decimal, 10); !ok {
		return decimal
	}
	s := prefix + n.Text(base)
	if neg {
		return "-" + s
	}
	return s
}
