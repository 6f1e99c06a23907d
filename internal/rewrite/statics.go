package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// StaticMembers gathers every `static` member of a class/struct/enum into
// a single nested CompanionObjectDeclaration, the target's equivalent of
// static dispatch.
func StaticMembers(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		switch n := s.(type) {
		case ast.ClassDeclaration:
			n.Members = gatherStatics(n.Members, n.Span())
			return []ast.Statement{n}, true
		case ast.StructDeclaration:
			n.Members = gatherStatics(n.Members, n.Span())
			return []ast.Statement{n}, true
		case ast.EnumDeclaration:
			n.Members = gatherStatics(n.Members, n.Span())
			return []ast.Statement{n}, true
		default:
			return nil, false
		}
	})
}

func gatherStatics(members []ast.Statement, span position.Span) []ast.Statement {
	var rest, statics []ast.Statement
	for _, m := range members {
		if isStatic(m) {
			statics = append(statics, m)
			continue
		}
		rest = append(rest, m)
	}
	if len(statics) == 0 {
		return members
	}
	companion := ast.NewCompanionObjectDeclaration(span)
	companion.Members = statics
	return append(rest, companion)
}

func isStatic(m ast.Statement) bool {
	switch n := m.(type) {
	case ast.FunctionDeclaration:
		return n.IsStatic
	case ast.VariableDeclaration:
		return n.IsStatic
	default:
		return false
	}
}

// ProtocolContents clears statement bodies of protocol members, marking
// each as an interface-only declaration for the emitter.
func ProtocolContents(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		proto, ok := s.(ast.ProtocolDeclaration)
		if !ok {
			return nil, false
		}
		for i, m := range proto.Members {
			fn, ok := m.(ast.FunctionDeclaration)
			if !ok {
				continue
			}
			fn.Body = nil
			fn.IsJustProtocolInterface = true
			proto.Members[i] = fn
		}
		return []ast.Statement{proto}, true
	})
}

// RemoveExtensions inlines an extension's members into its extended type
// by tagging each function member with ExtendsType, then deletes the
// extension wrapper. Since the extended type's own declaration may live
// in a different statement (or a different file, out of scope for a
// per-file pass), the members take the extension's place as top-level
// declarations; only functions are tagged, which the emitter prints as
// `Type.name` extension functions.
func RemoveExtensions(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ext, ok := s.(ast.ExtensionDeclaration)
		if !ok {
			return nil, false
		}
		out := make([]ast.Statement, 0, len(ext.Members))
		for _, m := range ext.Members {
			fn, ok := m.(ast.FunctionDeclaration)
			if ok {
				fn.ExtendsType = ext.TypeName
				out = append(out, fn)
				continue
			}
			out = append(out, m)
		}
		return out, true
	})
}
