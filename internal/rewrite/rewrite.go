// Package rewrite implements the second-round semantic-rewrite passes
// from spec §4.5, run per file against the frozen context built by
// internal/recording. Every pass is a pure function of (AST, Context):
// only the AST changes, the context is read-only (enforced by
// context.Context.Freeze before Run is ever called).
//
// Grounded on the teacher's internal/transpiler/transformer package,
// which performs the equivalent semantic lowering in one large
// recursive Transform method; this package keeps the same lowering
// rules (self→this, sealed-enum handling, tuple-to-Pair, optional
// rewrites) but splits them into the independently named, independently
// ordered passes spec §4.5 enumerates, each built on internal/pass's
// Walk instead of the teacher's single hand-rolled recursion.
package rewrite

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/match"
	"github.com/vela-lang/vela/internal/pass"
)

// Run applies every second-round pass to f's declarations, in the order
// spec §4.5 documents a dependency on (templates before anything else
// sees source-only forms; if-let side-effect warnings before rearrange;
// rearrange before self→this; rename-operators before super-calls; and
// so on down the list).
func Run(ctx *context.Context, f *ast.File) {
	steps := []func(*context.Context, *ast.File){
		ReplaceTemplates,
		EquatableOperators,
		RawValuesMembers,
		DescriptionToToString,
		OptionalInits,
		StaticMembers,
		ProtocolContents,
		RemoveExtensions,
		ShadowedIfLetToIs,
		SideEffectWarningsInIfLets,
		ParenthesizeOrInIf,
		RearrangeIfLets,
		SelfToThis,
		ImplicitNullInOptionals,
		AnonymousParameterRename,
		CovariantInitToCastCall,
		OptionalFunctionCalls,
		DataStructureInitializers,
		TuplesToPairs,
		Autoclosures,
		OptionalSubscriptRefactor,
		AddOptionalsInDotChains,
		RenameOperators,
		SuperCallsToHeaders,
		OptionalsInConditionalCasts,
		AccessModifiers,
		OpenDeclarations,
		ProtocolExtensionGenerics,
		RemoveOpenOnInitializers,
		CatchVariableSynthesis,
		match.MatchCallsToDeclarations,
		EscapeDollarAndQuote,
		RemoveOverrides,
		CharactersInSwitches,
		AnnotationsForCaseLet,
		CapitalizeEnums,
		IsInSwitchesAndIfs,
		SwitchesToExpressions,
		RemoveBreaksInSwitches,
		ReturnsInLambdas,
		InnerTypePrefixes,
		DoubleNegativesInGuards,
		IfNullReturnToElvis,
	}
	for _, step := range steps {
		step(ctx, f)
	}
}

// mutateStatements applies override across f's declarations via
// pass.Walk's default recursion, used by a pass that only ever rewrites
// statements (children-before-parents, per §5).
func mutateStatements(f *ast.File, override pass.StmtOverride) {
	stmtFn, _ := pass.Walk(override, nil)
	f.Declarations = pass.Run(stmtFn, f.Declarations)
}

// mutateExpressions applies override to every expression reachable from
// f's declarations.
func mutateExpressions(f *ast.File, override pass.ExprOverride) {
	stmtFn, _ := pass.Walk(nil, override)
	f.Declarations = pass.Run(stmtFn, f.Declarations)
}

// mutateBoth applies both overrides in a single walk, for a pass that
// needs to coordinate statement- and expression-level rewriting (e.g.
// hoisting a statement based on an expression it contains).
func mutateBoth(f *ast.File, stmtOverride pass.StmtOverride, exprOverride pass.ExprOverride) {
	stmtFn, _ := pass.Walk(stmtOverride, exprOverride)
	f.Declarations = pass.Run(stmtFn, f.Declarations)
}

// fqName joins the visitor's current enclosing-type chain with name, the
// same convention internal/recording uses as the Context registry key.
func fqName(v *pass.Visitor, name string) string {
	outer := v.GetFullType()
	if outer == "" {
		return name
	}
	return outer + "." + name
}
