package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// CharactersInSwitches converts a string-literal case expression into a
// character literal when the switch's subject is itself a character: a
// character literal, or a reference whose declared type is `Character`.
func CharactersInSwitches(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		sw, ok := s.(ast.SwitchStatement)
		if !ok || !subjectIsCharacter(sw.Subject) {
			return nil, false
		}
		changed := false
		for ci, c := range sw.Cases {
			for ei, e := range c.Expressions {
				lit, ok := e.(ast.StringLiteral)
				if !ok || len(lit.Value) != 1 {
					continue
				}
				sw.Cases[ci].Expressions[ei] = ast.NewCharLiteral(lit.Span(), rune(lit.Value[0]))
				changed = true
			}
		}
		if !changed {
			return nil, false
		}
		return []ast.Statement{sw}, true
	})
}

func subjectIsCharacter(e ast.Expression) bool {
	switch n := e.(type) {
	case ast.CharLiteral:
		return true
	case ast.DeclRefExpression:
		ref, ok := n.Type.(ast.TypeReference)
		return ok && ref.Name == "Character"
	}
	return false
}

// AnnotationsForCaseLet propagates a sealed-case's associated-value
// types down onto the implicitly-declared bindings in its case body, so
// a later emitter pass can print them with a concrete type rather than
// inferring one.
func AnnotationsForCaseLet(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		sw, ok := s.(ast.SwitchStatement)
		if !ok {
			return nil, false
		}
		enumName := dotEnumName(ctx, sw.Subject)
		if enumName == "" || ctx.EnumKind(enumName) != context.EnumKindSealedClass {
			return nil, false
		}
		changed := false
		for ci, c := range sw.Cases {
			if len(c.Expressions) != 1 {
				continue
			}
			dot, ok := c.Expressions[0].(ast.DotExpression)
			if !ok {
				continue
			}
			decl, ok := ctx.EnumDecl(enumName)
			if !ok {
				continue
			}
			elem := findElement(decl.Elements, dot.Member)
			if elem == nil {
				continue
			}
			sw.Cases[ci].Statements = annotateBindings(c.Statements, elem.AssociatedValues)
			changed = true
		}
		if !changed {
			return nil, false
		}
		return []ast.Statement{sw}, true
	})
}

// dotEnumName resolves the enum type a switch subject (or an `== .case`
// comparison's receiver) switches over. The subject is a plain variable
// (`switch d` where `d: Direction`), so its *declared type*, not its own
// identifier, is what's registered in the enum-kind table — mirrors
// match.receiverTypeName's Type-annotation-then-oracle resolution from §4.6.
func dotEnumName(ctx *context.Context, subject ast.Expression) string {
	var t ast.Expression
	switch s := subject.(type) {
	case ast.DeclRefExpression:
		t = s.Type
	case ast.CallExpression:
		t = s.Type
	default:
		return ""
	}
	if ref, ok := t.(ast.TypeReference); ok {
		return ref.Name
	}
	if name, ok := ctx.Oracle().GetParentType(subject.Span()); ok {
		return name
	}
	return ""
}

func findElement(elements []ast.EnumElement, name string) *ast.EnumElement {
	for i := range elements {
		if elements[i].Name == name {
			return &elements[i]
		}
	}
	return nil
}

func annotateBindings(body []ast.Statement, values []ast.LabeledType) []ast.Statement {
	if len(values) == 0 {
		return body
	}
	out := make([]ast.Statement, len(body))
	i := 0
	for si, s := range body {
		vd, ok := s.(ast.VariableDeclaration)
		if !ok || vd.Type != nil || i >= len(values) {
			out[si] = s
			continue
		}
		vd.Type = values[i].Type
		i++
		out[si] = vd
	}
	return out
}

// IsInSwitchesAndIfs rewrites, for a sealed-class enum, each switch
// case's `EnumName.case` dot-expression into a type reference meant to
// be emitted as `is EnumName.Case`, and rewrites an `== .case` if
// comparison into an `is` test. For an enum-class subject the
// comparison keeps its `==` spelling.
func IsInSwitchesAndIfs(ctx *context.Context, f *ast.File) {
	mutateBoth(f,
		func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
			sw, ok := s.(ast.SwitchStatement)
			if !ok {
				return nil, false
			}
			enumName := dotEnumName(ctx, sw.Subject)
			if enumName == "" || ctx.EnumKind(enumName) != context.EnumKindSealedClass {
				return nil, false
			}
			changed := false
			for ci, c := range sw.Cases {
				for ei, e := range c.Expressions {
					dot, ok := e.(ast.DotExpression)
					if !ok {
						continue
					}
					sw.Cases[ci].Expressions[ei] = ast.TypeReference{Name: enumName + "." + sealedCaseName(ctx, enumName, dot.Member)}
					changed = true
				}
			}
			if !changed {
				return nil, false
			}
			return []ast.Statement{sw}, true
		},
		func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
			bin, ok := e.(ast.BinaryExpression)
			if !ok || bin.Operator != "==" {
				return e, false
			}
			dot, ok := bin.Right.(ast.DotExpression)
			if !ok {
				return e, false
			}
			enumName := dotEnumName(ctx, bin.Left)
			if enumName == "" || ctx.EnumKind(enumName) != context.EnumKindSealedClass {
				return e, false
			}
			isExpr := ast.NewBinaryExpression(bin.Span(), "is")
			isExpr.Left = bin.Left
			isExpr.Right = ast.TypeReference{Name: enumName + "." + sealedCaseName(ctx, enumName, dot.Member)}
			return isExpr, true
		},
	)
}

// sealedCaseName recovers the capitalized subclass name Capitalize Enums
// gives this case's declaration. That pass only capitalizes a dot
// expression's member when its receiver is itself a DeclRefExpression,
// which an implicit-member case pattern (`.north`) never is, so the
// source-spelled member surviving on a case expression still needs the
// same transformation applied here at the point it's read.
func sealedCaseName(ctx *context.Context, enumName, member string) string {
	decl, ok := ctx.EnumDecl(enumName)
	if !ok {
		return capitalize(member)
	}
	if elem := findElement(decl.Elements, member); elem != nil {
		return capitalize(elem.Name)
	}
	return capitalize(member)
}

// SwitchesToExpressions lifts a switch in which every case consists of a
// single `return expr` or a single assignment to the same lhs into a single expression-valued
// `when`, hoisting the outer return or assignment. A variable
// declaration immediately followed by a switch assigning to that
// variable is folded into one declaration whose initializer is the
// switch expression.
func SwitchesToExpressions(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		block, ok := bodyOf(s)
		if !ok {
			return nil, false
		}
		out, changed := foldSwitchSequence(block)
		if !changed {
			return nil, false
		}
		return setBody(s, out)
	})
}

// bodyOf/setBody expose the []Statement body of any statement kind that
// carries one, so foldSwitchSequence can run uniformly over a function,
// initializer, while-loop, or for-each body; if-branches and closure
// bodies are not covered.
func bodyOf(s ast.Statement) ([]ast.Statement, bool) {
	switch n := s.(type) {
	case ast.FunctionDeclaration:
		return n.Body, true
	case ast.InitializerDeclaration:
		return n.Body, true
	case ast.WhileStatement:
		return n.Body, true
	case ast.ForEachStatement:
		return n.Body, true
	default:
		return nil, false
	}
}

func setBody(s ast.Statement, body []ast.Statement) ([]ast.Statement, bool) {
	switch n := s.(type) {
	case ast.FunctionDeclaration:
		n.Body = body
		return []ast.Statement{n}, true
	case ast.InitializerDeclaration:
		n.Body = body
		return []ast.Statement{n}, true
	case ast.WhileStatement:
		n.Body = body
		return []ast.Statement{n}, true
	case ast.ForEachStatement:
		n.Body = body
		return []ast.Statement{n}, true
	default:
		return nil, false
	}
}

func foldSwitchSequence(body []ast.Statement) ([]ast.Statement, bool) {
	out := make([]ast.Statement, 0, len(body))
	changed := false
	for i := 0; i < len(body); i++ {
		sw, ok := body[i].(ast.SwitchStatement)
		if !ok {
			out = append(out, body[i])
			continue
		}
		if whenExpr, ok := switchReturnsExpression(sw); ok {
			ret := ast.NewReturnStatement(sw.Span())
			ret.Value = whenExpr
			out = append(out, ret)
			changed = true
			continue
		}
		if lhs, whenExpr, ok := switchAssignsExpression(sw); ok {
			if len(out) > 0 {
				if vd, ok := out[len(out)-1].(ast.VariableDeclaration); ok && vd.Initializer == nil {
					if ref, ok := lhs.(ast.DeclRefExpression); ok && ref.Name == vd.Name {
						vd.Initializer = whenExpr
						out[len(out)-1] = vd
						changed = true
						continue
					}
				}
			}
			assign := ast.NewAssignmentStatement(sw.Span())
			assign.Target, assign.Operator, assign.Value = lhs, "=", whenExpr
			out = append(out, assign)
			changed = true
			continue
		}
		out = append(out, sw)
	}
	return out, changed
}

func switchReturnsExpression(sw ast.SwitchStatement) (ast.Expression, bool) {
	arms := make([]ast.SwitchCase, 0, len(sw.Cases))
	for _, c := range sw.Cases {
		if len(c.Statements) != 1 {
			return nil, false
		}
		ret, ok := c.Statements[0].(ast.ReturnStatement)
		if !ok || ret.Value == nil {
			return nil, false
		}
		arms = append(arms, ast.NewSwitchCase(c.Span(), c.Expressions, []ast.Statement{
			exprStmt(ret.Value),
		}))
	}
	when := ast.NewSwitchExpression(sw.Span())
	when.Subject, when.Cases = sw.Subject, arms
	return when, true
}

func switchAssignsExpression(sw ast.SwitchStatement) (ast.Expression, ast.Expression, bool) {
	var lhs ast.Expression
	arms := make([]ast.SwitchCase, 0, len(sw.Cases))
	for _, c := range sw.Cases {
		if len(c.Statements) != 1 {
			return nil, nil, false
		}
		assign, ok := c.Statements[0].(ast.AssignmentStatement)
		if !ok || assign.Operator != "=" {
			return nil, nil, false
		}
		if lhs == nil {
			lhs = assign.Target
		} else if !sameTarget(lhs, assign.Target) {
			return nil, nil, false
		}
		arms = append(arms, ast.NewSwitchCase(c.Span(), c.Expressions, []ast.Statement{
			exprStmt(assign.Value),
		}))
	}
	if lhs == nil {
		return nil, nil, false
	}
	when := ast.NewSwitchExpression(sw.Span())
	when.Subject, when.Cases = sw.Subject, arms
	return lhs, when, true
}

func sameTarget(a, b ast.Expression) bool {
	ra, ok := a.(ast.DeclRefExpression)
	if !ok {
		return false
	}
	rb, ok := b.(ast.DeclRefExpression)
	return ok && ra.Name == rb.Name
}

func exprStmt(e ast.Expression) ast.Statement {
	s := ast.NewExpressionStatement(e.Span())
	s.Expression = e
	return s
}

// RemoveBreaksInSwitches drops any case whose only statement is a bare
// `break`, since the target's `when` has no fallthrough to guard
// against.
func RemoveBreaksInSwitches(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		sw, ok := s.(ast.SwitchStatement)
		if !ok {
			return nil, false
		}
		out := make([]ast.SwitchCase, 0, len(sw.Cases))
		changed := false
		for _, c := range sw.Cases {
			if len(c.Statements) == 1 {
				if _, ok := c.Statements[0].(ast.BreakStatement); ok {
					changed = true
					continue
				}
			}
			out = append(out, c)
		}
		if !changed {
			return nil, false
		}
		sw.Cases = out
		return []ast.Statement{sw}, true
	})
}
