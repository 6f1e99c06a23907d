// Package warn implements the warning passes of §4.5's last five rules:
// read-only second-round passes that detect constructs with no exact
// target equivalent and report them through the Context's diagnostic
// sink rather than rewriting them away. The Struct Initializer Warning
// is the one exception carried over from the spec's own wording — it
// also deletes the unsupported initializer it warns about.
//
// Grounded on the teacher's internal/transpiler/warnings.go, which walks
// the resolved AST once collecting "feature not supported" diagnostics
// before code generation; this package keeps the same "detect, report,
// move on" shape but splits the checks into the five named rules and
// drives them off Context instead of the teacher's *types.Info.
package warn

import (
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/pass"
)

// Run applies every warning pass to f, in no particular dependency order
// since each only reads the AST and Context and reports independently
// (save Struct Initializer Warning's deletion, which cannot interact
// with the others' checks).
func Run(ctx *context.Context, f *ast.File) {
	passes := []func(*context.Context, *ast.File){
		StandardLibraryWarning,
		DoubleOptionalWarning,
		MutableValueTypeWarning,
		StructInitializerWarning,
		NativeCollectionWarning,
	}
	for _, p := range passes {
		p(ctx, f)
	}
}

// inspectExpressions walks every expression reachable from f without
// changing any of them, for a pass that only ever reports diagnostics.
func inspectExpressions(f *ast.File, visit func(v *pass.Visitor, e ast.Expression)) {
	stmtFn, _ := pass.Walk(nil, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		visit(v, e)
		return e, false
	})
	pass.Run(stmtFn, f.Declarations)
}

// inspectStatements walks every statement reachable from f without
// changing any of them.
func inspectStatements(f *ast.File, visit func(v *pass.Visitor, s ast.Statement)) {
	stmtFn, _ := pass.Walk(func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		visit(v, s)
		return nil, false
	}, nil)
	pass.Run(stmtFn, f.Declarations)
}

// StandardLibraryWarning reports every declaration-reference still
// flagged is_standard_library after template replacement — a standard
// library call the template table didn't know how to translate.
func StandardLibraryWarning(ctx *context.Context, f *ast.File) {
	inspectExpressions(f, func(v *pass.Visitor, e ast.Expression) {
		ref, ok := e.(ast.DeclRefExpression)
		if !ok || !ref.IsStandardLibrary {
			return
		}
		ctx.Diagnostics().Report(diag.Warningf(ref.Span(),
			"no translation for standard-library reference '%s'", ref.Name))
	})
}

// DoubleOptionalWarning reports any expression whose declared or
// resolved type spells a double optional.
func DoubleOptionalWarning(ctx *context.Context, f *ast.File) {
	inspectExpressions(f, func(v *pass.Visitor, e ast.Expression) {
		t := typeOf(e)
		if t == nil || !isDoubleOptional(t) {
			return
		}
		ctx.Diagnostics().Report(diag.Warningf(e.Span(), "double-optional type has no target equivalent"))
	})
}

func typeOf(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case ast.DeclRefExpression:
		return n.Type
	case ast.CallExpression:
		return n.Type
	case ast.ClosureExpression:
		return n.Type
	case ast.SubscriptExpression:
		return n.Type
	default:
		return nil
	}
}

func isDoubleOptional(t ast.Expression) bool {
	ref, ok := t.(ast.TypeReference)
	if !ok {
		return false
	}
	spelling := ref.Name
	if ref.Optional {
		spelling += "?"
	}
	return strings.HasSuffix(spelling, "??")
}

// MutableValueTypeWarning reports mutable stored properties and
// `mutating` methods declared directly on a struct or enum; the target
// has no in-place mutation of value-type receivers.
func MutableValueTypeWarning(ctx *context.Context, f *ast.File) {
	inspectStatements(f, func(v *pass.Visitor, s ast.Statement) {
		if !isValueTypeMember(v) {
			return
		}
		switch n := s.(type) {
		case ast.VariableDeclaration:
			if !n.IsVal && !n.IsStatic {
				ctx.Diagnostics().Report(diag.Warningf(n.Span(),
					"mutable stored property '%s' on a value type has no target equivalent", n.Name))
			}
		case ast.FunctionDeclaration:
			if hasAttribute(n.Attributes, "mutating") {
				ctx.Diagnostics().Report(diag.Warningf(n.Span(),
					"mutating method '%s' on a value type has no target equivalent", n.Name))
			}
		}
	})
}

func isValueTypeMember(v *pass.Visitor) bool {
	switch v.Parent().(type) {
	case ast.StructDeclaration, ast.EnumDeclaration:
		return true
	default:
		return false
	}
}

func hasAttribute(attrs []ast.Attribute, name string) bool {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// StructInitializerWarning reports and deletes every explicit
// initializer on a struct. The memberwise initializer Function Recording
// appends to a struct that declared none of its own carries a zero span;
// it is deleted without a warning, since the emitter builds the data
// class's primary constructor from the stored properties instead.
func StructInitializerWarning(ctx *context.Context, f *ast.File) {
	stmtFn, _ := pass.Walk(func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		st, ok := s.(ast.StructDeclaration)
		if !ok {
			return nil, false
		}
		out := st.Members[:0]
		for _, m := range st.Members {
			init, ok := m.(ast.InitializerDeclaration)
			if !ok {
				out = append(out, m)
				continue
			}
			if init.Span().Zero() {
				continue
			}
			ctx.Diagnostics().Report(diag.Warningf(init.Span(),
				"explicit struct initializer is unsupported and has been removed"))
		}
		st.Members = out
		return []ast.Statement{st}, true
	}, nil)
	f.Declarations = pass.Run(stmtFn, f.Declarations)
}

// NativeCollectionWarning reports any array- or dictionary-literal
// expression directly, recommending the target's list/map type instead
// of carrying the source's native collection syntax forward.
func NativeCollectionWarning(ctx *context.Context, f *ast.File) {
	inspectExpressions(f, func(v *pass.Visitor, e ast.Expression) {
		switch n := e.(type) {
		case ast.ArrayExpression:
			ctx.Diagnostics().Report(diag.Warningf(n.Span(), "native array literal; prefer the target's list type"))
		case ast.DictionaryExpression:
			ctx.Diagnostics().Report(diag.Warningf(n.Span(), "native dictionary literal; prefer the target's map type"))
		}
	})
}
