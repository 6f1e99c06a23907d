package recording

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// Protocols adds every declared protocol's bare name to the context
// (§4.4 pass 3). Inheritance lists name protocols by their bare
// identifier, never fully qualified, so the registry is keyed the same
// way Clean Inheritances will later look names up.
func Protocols(ctx *context.Context, f *ast.File) {
	walkTypes(f, func(v *pass.Visitor, s ast.Statement) {
		if p, ok := s.(ast.ProtocolDeclaration); ok {
			ctx.AddProtocol(p.Name)
		}
	})
}
