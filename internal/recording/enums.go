package recording

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// EnumRecording classifies every enum as enum-class (no associated
// values anywhere, no superclass) or sealed-class (otherwise), and
// stashes its declaration for later element-signature lookups (§4.4
// pass 8). Must run after Clean Inheritances so "no superclass" is
// judged against the cleaned list, not the source's raw protocol list.
func EnumRecording(ctx *context.Context, f *ast.File) {
	walkTypes(f, func(v *pass.Visitor, s ast.Statement) {
		n, ok := s.(ast.EnumDeclaration)
		if !ok {
			return
		}
		fq := fqName(v, n.Name)
		kind := context.EnumKindEnumClass
		if hasSealedCase(n.Elements) || len(ctx.Inheritance(fq)) > 0 {
			kind = context.EnumKindSealedClass
		}
		ctx.RecordEnumKind(fq, kind)
		ctx.RecordEnumDecl(fq, n)
	})
}

func hasSealedCase(elements []ast.EnumElement) bool {
	for _, e := range elements {
		if e.IsSealedCase() {
			return true
		}
	}
	return false
}
