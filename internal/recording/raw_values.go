package recording

import (
	"strconv"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/typestr"
)

// ImplicitRawValues fills missing raw values on enums inheriting from
// the integer or string family (§4.4 pass 6): string raw values default
// to the element's own name; integer raw values are sequential,
// previous-plus-one, seeded at -1 so the first unspecified case is 0,
// and an explicit integer raw value resets the sequence to continue
// from it.
func ImplicitRawValues(ctx *context.Context, f *ast.File) {
	mutateTypes(f, func(v *pass.Visitor, s ast.Statement) ast.Statement {
		n, ok := s.(ast.EnumDeclaration)
		if !ok {
			return s
		}
		switch {
		case hasFamily(n.Inherits, typestr.IsBuiltinIntegerFamily):
			fillIntegerRawValues(n.Elements)
		case hasFamily(n.Inherits, typestr.IsBuiltinStringFamily):
			fillStringRawValues(n.Elements)
		}
		return n
	})
}

func hasFamily(inherits []string, pred func(string) bool) bool {
	for _, name := range inherits {
		if pred(name) {
			return true
		}
	}
	return false
}

func fillStringRawValues(elements []ast.EnumElement) {
	for i := range elements {
		if elements[i].RawValue != nil {
			continue
		}
		elements[i].RawValue = ast.NewStringLiteral(elements[i].Span(), elements[i].Name)
	}
}

func fillIntegerRawValues(elements []ast.EnumElement) {
	seq := -1
	for i := range elements {
		el := elements[i]
		if el.RawValue != nil {
			if lit, ok := el.RawValue.(ast.IntLiteral); ok {
				if n, err := strconv.Atoi(lit.Value); err == nil {
					seq = n
				}
			}
			continue
		}
		seq++
		elements[i].RawValue = ast.NewIntLiteral(el.Span(), strconv.Itoa(seq), 10)
	}
}
