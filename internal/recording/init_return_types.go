package recording

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// InitializerReturnTypes fills in the enclosing-type name as every
// initializer's return type, a field the frontend never populates
// since the source language has no syntax for it (§4.4 pass 1).
func InitializerReturnTypes(ctx *context.Context, f *ast.File) {
	mutateTypes(f, func(v *pass.Visitor, s ast.Statement) ast.Statement {
		init, ok := s.(ast.InitializerDeclaration)
		if !ok {
			return s
		}
		init.ReturnType = v.GetFullType()
		return init
	})
}
