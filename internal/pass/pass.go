// Package pass implements the compositional tree-rewrite framework
// described in spec §4.3. The default behavior for every node kind is to
// recurse into its children and reassemble it unchanged (WalkStatementChildren/
// WalkExpressionChildren in visitor.go); a concrete pass overrides only
// the node kinds it cares about by supplying StmtOverride/ExprOverride
// hooks to Walk, and falls through to the default for everything else by
// returning handled=false.
//
// Grounded on the teacher's transformer/scope.go (parent-stack scoping),
// generalized from one monolithic transformer into composable passes,
// each a Walk call wired into the ordered pipeline in internal/rewrite.
package pass

import "github.com/vela-lang/vela/internal/ast"

// StmtOverride rewrites a statement whose children have already been
// recursed into (children before parents, per §5's ordering guarantee
// for replace_X). Return handled=false to keep the default result.
type StmtOverride func(v *Visitor, s ast.Statement) (replacement []ast.Statement, handled bool)

// ExprOverride rewrites an expression whose children have already been
// recursed into. Return handled=false to keep the default result.
type ExprOverride func(v *Visitor, e ast.Expression) (replacement ast.Expression, handled bool)

// Walk builds a self-recursive (StmtFunc, ExprFunc) pair: every node is
// first rebuilt with its children rewritten by the same pair, then the
// matching override (if any) is given a chance to replace the rebuilt
// node. Either override may be nil.
func Walk(stmtOverride StmtOverride, exprOverride ExprOverride) (StmtFunc, ExprFunc) {
	var stmtFn StmtFunc
	var exprFn ExprFunc

	exprFn = func(v *Visitor, e ast.Expression) ast.Expression {
		rebuilt := WalkExpressionChildren(v, e, exprFn, stmtFn)
		if exprOverride != nil {
			if out, handled := exprOverride(v, rebuilt); handled {
				return out
			}
		}
		return rebuilt
	}

	stmtFn = func(v *Visitor, s ast.Statement) []ast.Statement {
		rebuilt := WalkStatementChildren(v, s, stmtFn, exprFn)
		if stmtOverride != nil {
			if out, handled := stmtOverride(v, rebuilt); handled {
				return out
			}
		}
		return []ast.Statement{rebuilt}
	}

	return stmtFn, exprFn
}

// Run applies a (StmtFunc) built by Walk to an entire file's top-level
// declarations, matching §4.3's run() contract: the same recursive
// function naturally reaches every nested statement list because
// WalkStatementChildren calls back into it for every body it owns.
func Run(stmtFn StmtFunc, stmts []ast.Statement) []ast.Statement {
	v := NewVisitor()
	return WalkStatements(v, stmts, stmtFn)
}

// RunExpr applies an (ExprFunc) built by Walk to a single expression,
// useful for passes that only ever rewrite expressions reachable from a
// caller-supplied entry point (e.g. tests, or a pass driven from within
// another pass).
func RunExpr(exprFn ExprFunc, e ast.Expression) ast.Expression {
	v := NewVisitor()
	return exprFn(v, e)
}
