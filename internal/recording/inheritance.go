package recording

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/typestr"
)

// InheritanceRecording records {fully_qualified_type -> inherited
// names} for every class, struct, and enum (§4.4 pass 5).
func InheritanceRecording(ctx *context.Context, f *ast.File) {
	walkTypes(f, func(v *pass.Visitor, s ast.Statement) {
		switch n := s.(type) {
		case ast.ClassDeclaration:
			ctx.RecordInheritance(fqName(v, n.Name), n.Inherits)
		case ast.StructDeclaration:
			ctx.RecordInheritance(fqName(v, n.Name), n.Inherits)
		case ast.EnumDeclaration:
			ctx.RecordInheritance(fqName(v, n.Name), n.Inherits)
		}
	})
}

// CleanInheritances removes source-only protocol names and
// raw-representable built-in types from every recorded inheritance
// list (§4.4 pass 7). Must run after every file's Protocols and
// InheritanceRecording have completed, and before Enum Recording
// consults the cleaned list to decide superclass presence.
func CleanInheritances(ctx *context.Context) {
	for fq, names := range ctx.AllInheritance() {
		kept := make([]string, 0, len(names))
		for _, n := range names {
			if ctx.IsProtocol(n) || isRawRepresentable(n) {
				continue
			}
			kept = append(kept, n)
		}
		ctx.SetInheritance(fq, kept)
	}
}

func isRawRepresentable(name string) bool {
	return typestr.IsBuiltinIntegerFamily(name) || typestr.IsBuiltinStringFamily(name)
}
