package pass

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
)

// StmtFunc rewrites one statement into its replacement(s). A pass's own
// StmtFunc is expected to call WalkStatementChildren when it wants the
// default "recurse into every child, reassemble unchanged" behavior for
// node kinds it isn't specifically handling.
type StmtFunc func(v *Visitor, s ast.Statement) []ast.Statement

// ExprFunc rewrites one expression into its replacement.
type ExprFunc func(v *Visitor, e ast.Expression) ast.Expression

// Visitor tracks the parent chain during a single pass run, standing in
// for the cyclic parent pointers the source language bakes into every
// expression node (see the design note on cyclic parent pointers: the
// stack is authoritative for every query a back-reference would answer).
type Visitor struct {
	parents              []ast.Node
	isReplacingStatements bool
}

// NewVisitor creates a bare visitor with an empty parent chain.
func NewVisitor() *Visitor { return &Visitor{} }

func (v *Visitor) push(n ast.Node) { v.parents = append(v.parents, n) }
func (v *Visitor) pop()            { v.parents = v.parents[:len(v.parents)-1] }

// Parent returns the immediately enclosing node, or nil at the top level.
func (v *Visitor) Parent() ast.Node {
	if len(v.parents) == 0 {
		return nil
	}
	return v.parents[len(v.parents)-1]
}

// Parents returns the full enclosing chain, outermost first.
func (v *Visitor) Parents() []ast.Node {
	out := make([]ast.Node, len(v.parents))
	copy(out, v.parents)
	return out
}

// IsTopLevelNode reports whether the node currently being visited has no
// enclosing parent.
func (v *Visitor) IsTopLevelNode() bool { return len(v.parents) == 0 }

// IsReplacingStatements reports whether the visitor is currently walking
// nested statement lists (as opposed to the top-level declaration list),
// matching §4.3's run() contract.
func (v *Visitor) IsReplacingStatements() bool { return v.isReplacingStatements }

// GetFullType returns the dot-joined stack of enclosing
// class/struct/enum declaration names, used as the fully-qualified type
// key into the Context's registries.
func (v *Visitor) GetFullType() string {
	names := make([]string, 0, len(v.parents))
	for _, p := range v.parents {
		switch n := p.(type) {
		case ast.ClassDeclaration:
			names = append(names, n.Name)
		case ast.StructDeclaration:
			names = append(names, n.Name)
		case ast.EnumDeclaration:
			names = append(names, n.Name)
		}
	}
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "."
		}
		out += n
	}
	return out
}

// WalkStatements applies fn to every statement in stmts in source order,
// flattening the results (replace_X semantics: each statement may expand
// to 0, 1, or more replacements).
func WalkStatements(v *Visitor, stmts []ast.Statement, fn StmtFunc) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, fn(v, s)...)
	}
	return out
}

// WalkExpressions rewrites every expression in exprs in place via fn.
func WalkExpressions(v *Visitor, exprs []ast.Expression, fn ExprFunc) []ast.Expression {
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = fn(v, e)
	}
	return out
}

// WalkLabeled rewrites the Expression half of every LabeledExpression.
func WalkLabeled(v *Visitor, items []ast.LabeledExpression, fn ExprFunc) []ast.LabeledExpression {
	out := make([]ast.LabeledExpression, len(items))
	for i, it := range items {
		out[i] = ast.LabeledExpression{Label: it.Label, Expression: fn(v, it.Expression)}
	}
	return out
}

// WalkBody replays fn over body under IsReplacingStatements=true. The
// caller (a WalkStatementChildren or WalkExpressionChildren case, owner
// == the node that case already pushed) has already pushed owner onto
// the parent stack, so WalkBody itself must not push it again.
func WalkBody(v *Visitor, owner ast.Node, body []ast.Statement, fn StmtFunc) []ast.Statement {
	wasReplacing := v.isReplacingStatements
	v.isReplacingStatements = true
	out := WalkStatements(v, body, fn)
	v.isReplacingStatements = wasReplacing
	return out
}

func typeOrNil(v *Visitor, e ast.Expression, fn ExprFunc) ast.Expression {
	if e == nil {
		return nil
	}
	return fn(v, e)
}

// WalkStatementChildren performs exactly one level of default recursion
// over s: every nested statement list is replayed through stmtFn, every
// nested expression through exprFn, and the same node kind is
// reassembled with the rewritten children. Concrete passes call this
// directly when they want to fall through to default behavior for a
// node kind they don't special-case.
func WalkStatementChildren(v *Visitor, s ast.Statement, stmtFn StmtFunc, exprFn ExprFunc) ast.Statement {
	v.push(s)
	defer v.pop()

	switch n := s.(type) {
	case ast.Comment:
		return n
	case ast.ExpressionStatement:
		n.Expression = exprFn(v, n.Expression)
		return n
	case ast.TypealiasDeclaration:
		n.Type = typeOrNil(v, n.Type, exprFn)
		return n
	case ast.ImportDeclaration:
		return n
	case ast.ExtensionDeclaration:
		n.Members = WalkBody(v, n, n.Members, stmtFn)
		return n
	case ast.ClassDeclaration:
		n.Members = WalkBody(v, n, n.Members, stmtFn)
		return n
	case ast.CompanionObjectDeclaration:
		n.Members = WalkBody(v, n, n.Members, stmtFn)
		return n
	case ast.EnumDeclaration:
		for i := range n.Elements {
			for j := range n.Elements[i].AssociatedValues {
				n.Elements[i].AssociatedValues[j].Type = exprFn(v, n.Elements[i].AssociatedValues[j].Type)
			}
			n.Elements[i].RawValue = typeOrNil(v, n.Elements[i].RawValue, exprFn)
		}
		n.Members = WalkBody(v, n, n.Members, stmtFn)
		return n
	case ast.ProtocolDeclaration:
		n.Members = WalkBody(v, n, n.Members, stmtFn)
		return n
	case ast.StructDeclaration:
		n.Members = WalkBody(v, n, n.Members, stmtFn)
		return n
	case ast.FunctionDeclaration:
		for i := range n.Parameters {
			n.Parameters[i].Type = exprFn(v, n.Parameters[i].Type)
			n.Parameters[i].Default = typeOrNil(v, n.Parameters[i].Default, exprFn)
		}
		n.ReturnType = typeOrNil(v, n.ReturnType, exprFn)
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		return n
	case ast.InitializerDeclaration:
		for i := range n.Parameters {
			n.Parameters[i].Type = exprFn(v, n.Parameters[i].Type)
			n.Parameters[i].Default = typeOrNil(v, n.Parameters[i].Default, exprFn)
		}
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		if n.SuperCall != nil {
			rewritten := exprFn(v, *n.SuperCall)
			if call, ok := rewritten.(ast.CallExpression); ok {
				n.SuperCall = &call
			}
		}
		return n
	case ast.VariableDeclaration:
		n.Type = typeOrNil(v, n.Type, exprFn)
		n.Initializer = typeOrNil(v, n.Initializer, exprFn)
		return n
	case ast.DoStatement:
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		for i := range n.Catches {
			pushed := WalkStatementChildren(v, n.Catches[i], stmtFn, exprFn)
			n.Catches[i] = pushed.(ast.CatchClause)
		}
		return n
	case ast.CatchClause:
		n.Type = typeOrNil(v, n.Type, exprFn)
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		return n
	case ast.ForEachStatement:
		n.Sequence = exprFn(v, n.Sequence)
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		return n
	case ast.WhileStatement:
		n.Condition = exprFn(v, n.Condition)
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		return n
	case ast.IfStatement:
		for i := range n.Conditions {
			if n.Conditions[i].Decl != nil {
				rewritten := WalkStatementChildren(v, *n.Conditions[i].Decl, stmtFn, exprFn)
				vd := rewritten.(ast.VariableDeclaration)
				n.Conditions[i].Decl = &vd
			} else {
				n.Conditions[i].Expr = exprFn(v, n.Conditions[i].Expr)
			}
		}
		n.Then = WalkBody(v, n, n.Then, stmtFn)
		n.Else = WalkBody(v, n, n.Else, stmtFn)
		return n
	case ast.SwitchStatement:
		n.Subject = exprFn(v, n.Subject)
		for i := range n.Cases {
			n.Cases[i].Expressions = WalkExpressions(v, n.Cases[i].Expressions, exprFn)
			n.Cases[i].Statements = WalkBody(v, n, n.Cases[i].Statements, stmtFn)
		}
		return n
	case ast.DeferStatement:
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		return n
	case ast.ThrowStatement:
		n.Value = exprFn(v, n.Value)
		return n
	case ast.ReturnStatement:
		n.Value = typeOrNil(v, n.Value, exprFn)
		return n
	case ast.BreakStatement:
		return n
	case ast.ContinueStatement:
		return n
	case ast.AssignmentStatement:
		n.Target = exprFn(v, n.Target)
		n.Value = exprFn(v, n.Value)
		return n
	case ast.ErrorStatement:
		return n
	default:
		panic(fmt.Sprintf("pass: unhandled statement variant %T (fatal: framework dispatch table is incomplete)", s))
	}
}

// WalkExpressionChildren performs exactly one level of default recursion
// over e.
func WalkExpressionChildren(v *Visitor, e ast.Expression, exprFn ExprFunc, stmtFn StmtFunc) ast.Expression {
	if e == nil {
		return nil
	}
	v.push(e)
	defer v.pop()

	switch n := e.(type) {
	case ast.LiteralCodeExpression:
		n.Type = typeOrNil(v, n.Type, exprFn)
		return n
	case ast.ConcatExpression:
		n.Left = exprFn(v, n.Left)
		n.Right = exprFn(v, n.Right)
		return n
	case ast.ParenExpression:
		n.Inner = exprFn(v, n.Inner)
		return n
	case ast.ForceUnwrapExpression:
		n.Inner = exprFn(v, n.Inner)
		return n
	case ast.OptionalChainExpression:
		n.Inner = exprFn(v, n.Inner)
		return n
	case ast.DeclRefExpression:
		n.Type = typeOrNil(v, n.Type, exprFn)
		return n
	case ast.TypeReference:
		n.Args = WalkExpressions(v, n.Args, exprFn)
		return n
	case ast.SubscriptExpression:
		n.Subscripted = exprFn(v, n.Subscripted)
		n.Index = WalkLabeled(v, n.Index, exprFn)
		n.Type = typeOrNil(v, n.Type, exprFn)
		return n
	case ast.ArrayExpression:
		n.Elements = WalkExpressions(v, n.Elements, exprFn)
		return n
	case ast.DictionaryExpression:
		n.Keys = WalkExpressions(v, n.Keys, exprFn)
		n.Values = WalkExpressions(v, n.Values, exprFn)
		return n
	case ast.ReturnExpression:
		n.Value = exprFn(v, n.Value)
		return n
	case ast.DotExpression:
		n.Receiver = exprFn(v, n.Receiver)
		return n
	case ast.BinaryExpression:
		n.Left = exprFn(v, n.Left)
		n.Right = exprFn(v, n.Right)
		return n
	case ast.PrefixUnaryExpression:
		n.Operand = exprFn(v, n.Operand)
		return n
	case ast.PostfixUnaryExpression:
		n.Operand = exprFn(v, n.Operand)
		return n
	case ast.TernaryIfExpression:
		n.Condition = exprFn(v, n.Condition)
		n.Then = exprFn(v, n.Then)
		n.Else = exprFn(v, n.Else)
		return n
	case ast.CallExpression:
		n.Function = exprFn(v, n.Function)
		n.Arguments = WalkLabeled(v, n.Arguments, exprFn)
		n.Type = typeOrNil(v, n.Type, exprFn)
		return n
	case ast.ClosureExpression:
		for i := range n.Parameters {
			n.Parameters[i].Type = exprFn(v, n.Parameters[i].Type)
		}
		n.Type = typeOrNil(v, n.Type, exprFn)
		if stmtFn == nil {
			return n
		}
		n.Body = WalkBody(v, n, n.Body, stmtFn)
		return n
	case ast.IntLiteral:
		return n
	case ast.UIntLiteral:
		return n
	case ast.DoubleLiteral:
		return n
	case ast.FloatLiteral:
		return n
	case ast.BoolLiteral:
		return n
	case ast.StringLiteral:
		return n
	case ast.CharLiteral:
		return n
	case ast.NilLiteral:
		return n
	case ast.InterpolatedStringExpression:
		n.Segments = WalkExpressions(v, n.Segments, exprFn)
		return n
	case ast.TupleExpression:
		n.Elements = WalkLabeled(v, n.Elements, exprFn)
		return n
	case ast.ErrorExpression:
		return n
	case ast.SwitchExpression:
		n.Subject = exprFn(v, n.Subject)
		for i := range n.Cases {
			n.Cases[i].Expressions = WalkExpressions(v, n.Cases[i].Expressions, exprFn)
			if stmtFn != nil {
				n.Cases[i].Statements = WalkBody(v, n, n.Cases[i].Statements, stmtFn)
			}
		}
		return n
	default:
		panic(fmt.Sprintf("pass: unhandled expression variant %T (fatal: framework dispatch table is incomplete)", e))
	}
}
