package ast

func (LiteralCodeExpression) isExpression()  {}
func (ConcatExpression) isExpression()       {}
func (ParenExpression) isExpression()        {}
func (ForceUnwrapExpression) isExpression()  {}
func (OptionalChainExpression) isExpression() {}
func (DeclRefExpression) isExpression()      {}
func (TypeReference) isExpression()          {}
func (SubscriptExpression) isExpression()    {}
func (ArrayExpression) isExpression()        {}
func (DictionaryExpression) isExpression()   {}
func (ReturnExpression) isExpression()       {}
func (DotExpression) isExpression()          {}
func (BinaryExpression) isExpression()       {}
func (PrefixUnaryExpression) isExpression()  {}
func (PostfixUnaryExpression) isExpression() {}
func (TernaryIfExpression) isExpression()    {}
func (CallExpression) isExpression()         {}
func (ClosureExpression) isExpression()      {}
func (IntLiteral) isExpression()             {}
func (UIntLiteral) isExpression()            {}
func (DoubleLiteral) isExpression()          {}
func (FloatLiteral) isExpression()           {}
func (BoolLiteral) isExpression()            {}
func (StringLiteral) isExpression()          {}
func (CharLiteral) isExpression()            {}
func (NilLiteral) isExpression()             {}
func (InterpolatedStringExpression) isExpression() {}
func (TupleExpression) isExpression()        {}
func (ErrorExpression) isExpression()        {}
func (SwitchExpression) isExpression()       {}

// LiteralCodeExpression is an opaque target-language snippet emitted
// verbatim, used by template substitution and by synthesized calls the
// emitter doesn't need to re-derive (e.g. "values()" for enum factories).
type LiteralCodeExpression struct {
	base
	Code string
	Type Expression // optional declared type, nil if untyped
}

// ConcatExpression joins two expressions in the output with no separator.
type ConcatExpression struct {
	base
	Left, Right Expression
}

// ParenExpression is `(inner)`.
type ParenExpression struct {
	base
	Inner Expression
}

// ForceUnwrapExpression is `inner!`.
type ForceUnwrapExpression struct {
	base
	Inner Expression
}

// SwitchExpression is a switch lifted into expression position by
// Switches to Expressions: same subject/cases shape as SwitchStatement,
// but each case's single statement is the arm's value rather than a
// return or assignment.
type SwitchExpression struct {
	base
	Subject Expression
	Cases   []SwitchCase
}

// OptionalChainExpression is `inner?`, marking that subsequent links in a
// dot chain must themselves become optional-chained (see Add Optionals
// in Dot Chains).
type OptionalChainExpression struct {
	base
	Inner Expression
}

// DeclRefExpression is an identifier reference.
type DeclRefExpression struct {
	base
	Name             string
	Type             Expression // nil if not yet resolved
	IsStandardLibrary bool      // flagged by the frontend; cleared by template replacement
}

// TypeReference names a type, as either bare text (pre-resolution) or a
// structured reference built by a pass. Generic arguments are themselves
// TypeReferences nested in Args.
type TypeReference struct {
	base
	Name string
	Args []Expression
	// Optional marks a trailing `?`.
	Optional bool
}

// SubscriptExpression is `subscripted[index, ...]`.
type SubscriptExpression struct {
	base
	Subscripted Expression
	Index       []LabeledExpression
	Type        Expression // nil if unresolved
}

// ArrayExpression is a `[a, b, c]` literal.
type ArrayExpression struct {
	base
	Elements []Expression
}

// DictionaryExpression is a `[k: v, ...]` literal.
type DictionaryExpression struct {
	base
	Keys   []Expression
	Values []Expression
}

// ReturnExpression is a return used in expression position (the value of
// a switch-as-expression arm before Switches to Expressions lifts it).
type ReturnExpression struct {
	base
	Value Expression
}

// DotExpression is `receiver.member`.
type DotExpression struct {
	base
	Receiver Expression
	Member   string
}

// BinaryExpression is a binary operator application. Associativity is not
// encoded on the node; right-associated chains are represented by nesting
// Right recursively (`a ?? b ?? c` is `Binary(a, "??", Binary(b, "??", c))`).
type BinaryExpression struct {
	base
	Left     Expression
	Operator string
	Right    Expression
}

// PrefixUnaryExpression is `opexpr` (e.g. `!x`, `-x`).
type PrefixUnaryExpression struct {
	base
	Operator string
	Operand  Expression
}

// PostfixUnaryExpression is `expr op` (e.g. `x++`).
type PostfixUnaryExpression struct {
	base
	Operator string
	Operand  Expression
}

// TernaryIfExpression is `cond ? then : else`.
type TernaryIfExpression struct {
	base
	Condition, Then, Else Expression
}

// CallExpression is a function call. Purity is consulted by the side
// effect warning pass; AllowsTrailingClosure gates the call-argument
// matcher's trailing-closure binding rule.
type CallExpression struct {
	base
	Function              Expression
	Arguments              []LabeledExpression
	Type                   Expression // nil if unresolved
	AllowsTrailingClosure bool
	IsPure                 bool
}

// ClosureExpression is `{ params -> body }`.
type ClosureExpression struct {
	base
	Parameters    []FunctionParameter
	Body          []Statement
	Type          Expression // nil if unresolved
	IsTrailing    bool       // true when written as a trailing closure at a call site
}

// IntLiteral preserves the source radix (10, 16, or 2) for re-emission.
type IntLiteral struct {
	base
	Value string // decimal-normalized digits, sign included
	Radix int
}

// UIntLiteral is an unsigned integer literal; the emitter adds the `u`
// suffix.
type UIntLiteral struct {
	base
	Value string
	Radix int
}

// DoubleLiteral is a double-precision floating literal.
type DoubleLiteral struct {
	base
	Value string
}

// FloatLiteral is a single-precision floating literal; the emitter adds
// the `f` suffix.
type FloatLiteral struct {
	base
	Value string
}

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	base
	Value bool
}

// StringLiteral is a string literal; Multiline selects `"""..."""`
// emission.
type StringLiteral struct {
	base
	Value     string
	Multiline bool
}

// CharLiteral is a single-character literal.
type CharLiteral struct {
	base
	Value rune
}

// NilLiteral is `nil`/`null`.
type NilLiteral struct{ base }

// InterpolatedStringExpression mixes literal text spans with embedded
// expressions, each wrapped as `${...}` by the emitter.
type InterpolatedStringExpression struct {
	base
	// Segments holds the literal-text StringLiteral parts and the embedded
	// expression parts in source order.
	Segments []Expression
}

// TupleExpression is a (possibly labeled) tuple literal. 2-tuples are
// rewritten to Pair constructor calls by Tuples to Pairs outside call
// arguments and for-each bindings.
type TupleExpression struct {
	base
	Elements []LabeledExpression
}

// ErrorExpression is the sentinel produced when a pass encounters an AST
// shape it was specified to have already eliminated (§7).
type ErrorExpression struct {
	base
	Message string
}
