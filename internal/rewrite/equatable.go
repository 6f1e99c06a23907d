package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
	"github.com/vela-lang/vela/internal/position"
)

// EquatableOperators rewrites a declared `==(a, b)` operator function into
// the target's `equals(other: Any?): Boolean`, guarded by a leading
// `is`-check against the enclosing type that returns false on mismatch
// before the original body (with its first parameter rebound to `this`)
// runs.
func EquatableOperators(ctx *context.Context, f *ast.File) {
	mutateStatements(f, func(v *pass.Visitor, s ast.Statement) ([]ast.Statement, bool) {
		fn, ok := s.(ast.FunctionDeclaration)
		if !ok || fn.Name != "==" || len(fn.Parameters) != 2 {
			return nil, false
		}
		typeName := v.GetFullType()
		if typeName == "" {
			return nil, false
		}
		span := fn.Span()
		lhs, rhs := fn.Parameters[0], fn.Parameters[1]

		other := ast.NewFunctionParameter(span, "other", "other", ast.NewTypeReference(span, "Any?"))

		isCheck := ast.NewBinaryExpression(span, "is")
		isCheck.Left = ast.NewDeclRefExpression(span, "other")
		isCheck.Right = ast.NewTypeReference(span, typeName)
		guardCond := ast.NewPrefixUnaryExpression(span, "!")
		guardCond.Operand = isCheck

		guard := ast.NewIfStatement(span)
		guard.Conditions = []ast.IfCondition{{Expr: guardCond}}
		guard.Then = []ast.Statement{returnBool(span, false)}

		cast := ast.NewVariableDeclaration(span)
		cast.Name, cast.IsVal = rhs.Label, true
		asExpr := ast.NewBinaryExpression(span, "as")
		asExpr.Left = ast.NewDeclRefExpression(span, "other")
		asExpr.Right = ast.NewTypeReference(span, typeName)
		cast.Initializer = asExpr

		fn.Name = "equals"
		fn.Parameters = []ast.FunctionParameter{other}
		fn.ReturnType = ast.NewTypeReference(span, "Boolean")
		fn.IsOverride = true
		fn.Body = append([]ast.Statement{guard, cast}, renameIdentifier(fn.Body, lhs.Label, "this")...)
		return []ast.Statement{fn}, true
	})
}

func returnBool(span position.Span, value bool) ast.Statement {
	ret := ast.NewReturnStatement(span)
	ret.Value = ast.NewBoolLiteral(span, value)
	return ret
}

// renameIdentifier rewrites every DeclRefExpression named from to to
// within body, used wherever a pass rebinds a parameter name (e.g.
// Equatable Operators' own-side operand becoming `this`).
func renameIdentifier(body []ast.Statement, from, to string) []ast.Statement {
	if from == "" || from == to {
		return body
	}
	stmtFn, _ := pass.Walk(nil, func(v *pass.Visitor, e ast.Expression) (ast.Expression, bool) {
		ref, ok := e.(ast.DeclRefExpression)
		if !ok || ref.Name != from {
			return e, false
		}
		ref.Name = to
		return ref, true
	})
	return pass.Run(stmtFn, body)
}
