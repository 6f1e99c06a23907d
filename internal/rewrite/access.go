package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/pass"
)

// AccessModifiers translates source access levels to the target's,
// following §4.5's rules: inner declarations are constrained by their
// enclosing access; a top-level declaration defaults to public and is
// printed only when more restrictive; `fileprivate` has no target
// equivalent and is downgraded to `internal` with a warning; `protected`
// survives only when the source wrote it explicitly; a protocol member
// never carries an explicit modifier. An explicit annotation in the
// declaration's attribute list always wins over the inferred result.
func AccessModifiers(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		access, attrs, ok := accessAndAttributes(s)
		if !ok {
			return nil, false
		}
		if inProtocol(v) {
			return setAccess(s, ast.AccessDefault), true
		}
		resolved := access
		if explicit, ok := explicitAccessAttribute(attrs); ok {
			resolved = explicit
		}
		if resolved == ast.AccessFileprivate {
			ctx.Diagnostics().Report(diag.Warningf(s.Span(), "'fileprivate' has no target equivalent; downgraded to 'internal'"))
			resolved = ast.AccessInternal
		}
		if enclosing, ok := enclosingAccess(v); ok {
			resolved = constrainTo(resolved, enclosing)
		} else if resolved == ast.AccessDefault {
			resolved = ast.AccessPublic
		}
		return setAccess(s, resolved), true
	})
}

func inProtocol(v *pass.Visitor) bool {
	for _, p := range v.Parents() {
		if _, ok := p.(ast.ProtocolDeclaration); ok {
			return true
		}
	}
	return false
}

func enclosingAccess(v *pass.Visitor) (ast.AccessLevel, bool) {
	parent := v.Parent()
	stmt, ok := parent.(ast.Statement)
	if !ok {
		return ast.AccessDefault, false
	}
	access, _, ok := accessAndAttributes(stmt)
	if !ok || access == ast.AccessDefault {
		return ast.AccessDefault, false
	}
	return access, true
}

// constrainTo narrows resolved so it is never wider than enclosing.
func constrainTo(resolved, enclosing ast.AccessLevel) ast.AccessLevel {
	rank := map[ast.AccessLevel]int{
		ast.AccessPublic:   3,
		ast.AccessProtected: 2,
		ast.AccessInternal: 2,
		ast.AccessFileprivate: 1,
		ast.AccessPrivate:  0,
	}
	if resolved == ast.AccessDefault {
		return enclosing
	}
	if rank[resolved] > rank[enclosing] {
		return enclosing
	}
	return resolved
}

func explicitAccessAttribute(attrs []ast.Attribute) (ast.AccessLevel, bool) {
	for _, a := range attrs {
		switch ast.AccessLevel(a.Name) {
		case ast.AccessPublic, ast.AccessInternal, ast.AccessFileprivate, ast.AccessPrivate, ast.AccessProtected:
			return ast.AccessLevel(a.Name), true
		}
	}
	return ast.AccessDefault, false
}

func accessAndAttributes(s ast.Statement) (ast.AccessLevel, []ast.Attribute, bool) {
	switch n := s.(type) {
	case ast.ClassDeclaration:
		return n.Access, n.Attributes, true
	case ast.StructDeclaration:
		return n.Access, n.Attributes, true
	case ast.EnumDeclaration:
		return n.Access, nil, true
	case ast.ProtocolDeclaration:
		return n.Access, nil, true
	case ast.FunctionDeclaration:
		return n.Access, n.Attributes, true
	case ast.InitializerDeclaration:
		return n.Access, nil, true
	case ast.VariableDeclaration:
		return n.Access, nil, true
	default:
		return ast.AccessDefault, nil, false
	}
}

func setAccess(s ast.Statement, access ast.AccessLevel) []ast.Statement {
	switch n := s.(type) {
	case ast.ClassDeclaration:
		n.Access = access
		return []ast.Statement{n}
	case ast.StructDeclaration:
		n.Access = access
		return []ast.Statement{n}
	case ast.EnumDeclaration:
		n.Access = access
		return []ast.Statement{n}
	case ast.ProtocolDeclaration:
		n.Access = access
		return []ast.Statement{n}
	case ast.FunctionDeclaration:
		n.Access = access
		return []ast.Statement{n}
	case ast.InitializerDeclaration:
		n.Access = access
		return []ast.Statement{n}
	case ast.VariableDeclaration:
		n.Access = access
		return []ast.Statement{n}
	default:
		return []ast.Statement{s}
	}
}

// OpenDeclarations decides each class/function/initializer's is_open
// flag per §4.5's Open rules: a private declaration, a local variable,
// top-level variable, static member, or struct/enum member is never
// open; for anything else an explicit `open` or `final` attribute wins;
// otherwise the configured default (final-by-default unless
// DefaultsToFinal is false) applies.
func OpenDeclarations(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		switch n := s.(type) {
		case ast.ClassDeclaration:
			n.IsOpen = decideOpen(ctx, n.Access, n.Attributes)
			return []ast.Statement{n}, true
		case ast.FunctionDeclaration:
			if n.IsStatic || isMember(v) {
				n.IsOpen = false
				return []ast.Statement{n}, true
			}
			n.IsOpen = decideOpen(ctx, n.Access, n.Attributes)
			return []ast.Statement{n}, true
		case ast.InitializerDeclaration:
			if isMember(v) {
				n.IsOpen = false
				return []ast.Statement{n}, true
			}
			n.IsOpen = decideOpen(ctx, n.Access, nil)
			return []ast.Statement{n}, true
		case ast.VariableDeclaration:
			// never open: local, top-level, static, and struct/enum members all land here.
			return nil, false
		default:
			return nil, false
		}
	})
}

func isMember(v *pass.Visitor) bool {
	parent := v.Parent()
	switch parent.(type) {
	case ast.StructDeclaration, ast.EnumDeclaration:
		return true
	}
	return false
}

func decideOpen(ctx *context.Context, access ast.AccessLevel, attrs []ast.Attribute) bool {
	if access == ast.AccessPrivate {
		return false
	}
	for _, a := range attrs {
		switch a.Name {
		case "open":
			return true
		case "final":
			return false
		}
	}
	return !ctx.Config.DefaultsToFinal
}

// ProtocolExtensionGenerics strips the synthetic `Self: Protocol`
// constraint an extension-on-a-protocol carries, and propagates the
// extended type's own generic parameters onto every member function's
// signature, so the emitted extension function can reference them.
func ProtocolExtensionGenerics(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		ext, ok := s.(ast.ExtensionDeclaration)
		if !ok {
			return nil, false
		}
		for i, m := range ext.Members {
			fn, ok := m.(ast.FunctionDeclaration)
			if !ok {
				continue
			}
			fn.WherePredicates = stripSelfConstraint(fn.WherePredicates)
			fn.GenericParams = mergeGenericParams(fn.GenericParams, ext.GenericParams)
			ext.Members[i] = fn
		}
		return []ast.Statement{ext}, true
	})
}

func stripSelfConstraint(preds []ast.WherePredicate) []ast.WherePredicate {
	out := preds[:0]
	for _, p := range preds {
		if p.TypeName == "Self" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mergeGenericParams(existing, extra []string) []string {
	has := make(map[string]bool, len(existing))
	for _, g := range existing {
		has[g] = true
	}
	out := existing
	for _, g := range extra {
		if has[g] {
			continue
		}
		out = append(out, g)
		has[g] = true
	}
	return out
}

// RemoveOverrides drops `override` from a static member, since the
// target's companion objects do not participate in virtual dispatch.
// Initializers carry no override flag at all, so there is nothing for
// this pass to clear there; the rule is enforced structurally instead.
func RemoveOverrides(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		fn, ok := s.(ast.FunctionDeclaration)
		if !ok || !fn.IsStatic || !fn.IsOverride {
			return nil, false
		}
		fn.IsOverride = false
		return []ast.Statement{fn}, true
	})
}
