package recording

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// InitializerRecording registers the signature of every declared
// initializer under its enclosing type (§4.4 pass 4), so the call
// matcher and Optional Inits can later look up "init" by type.
func InitializerRecording(ctx *context.Context, f *ast.File) {
	walkTypes(f, func(v *pass.Visitor, s ast.Statement) {
		init, ok := s.(ast.InitializerDeclaration)
		if !ok {
			return
		}
		ctx.RecordFunctionTranslation(context.FunctionTranslation{
			Name:       "init",
			Type:       v.GetFullType(),
			Prefix:     "init",
			Parameters: init.Parameters,
		})
	})
}
