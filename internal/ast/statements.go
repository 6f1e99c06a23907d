package ast

func (Comment) isStatement()              {}
func (ExpressionStatement) isStatement()  {}
func (TypealiasDeclaration) isStatement() {}
func (ExtensionDeclaration) isStatement() {}
func (ImportDeclaration) isStatement()    {}
func (ClassDeclaration) isStatement()     {}
func (CompanionObjectDeclaration) isStatement() {}
func (EnumDeclaration) isStatement()       {}
func (ProtocolDeclaration) isStatement()   {}
func (StructDeclaration) isStatement()     {}
func (FunctionDeclaration) isStatement()   {}
func (InitializerDeclaration) isStatement() {}
func (VariableDeclaration) isStatement()   {}
func (DoStatement) isStatement()           {}
func (CatchClause) isStatement()           {}
func (ForEachStatement) isStatement()      {}
func (WhileStatement) isStatement()        {}
func (IfStatement) isStatement()           {}
func (SwitchStatement) isStatement()       {}
func (DeferStatement) isStatement()        {}
func (ThrowStatement) isStatement()        {}
func (ReturnStatement) isStatement()       {}
func (BreakStatement) isStatement()        {}
func (ContinueStatement) isStatement()     {}
func (AssignmentStatement) isStatement()   {}
func (ErrorStatement) isStatement()        {}

// Comment is a standalone // or /* */ comment preserved for layout.
type Comment struct {
	base
	Text    string
	IsBlock bool
}

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	base
	Expression Expression
}

// TypealiasDeclaration is `typealias Name = Type`.
type TypealiasDeclaration struct {
	base
	Name string
	Type Expression
}

// ImportDeclaration is a single import line.
type ImportDeclaration struct {
	base
	Path  string
	Alias string // "" if unaliased
	Dot   bool   // dot-import (members enter scope unqualified)
}

// ExtensionDeclaration extends an existing type with new members; the
// Remove Extensions pass deletes this node after inlining Members.
type ExtensionDeclaration struct {
	base
	TypeName       string
	GenericParams  []string
	ProtocolsAdded []string
	Members        []Statement
}

// ClassDeclaration is a class definition.
type ClassDeclaration struct {
	base
	Name          string
	GenericParams []string
	Inherits      []string
	Members       []Statement
	Access        AccessLevel
	IsOpen        bool // populated by the Open pass only; never read before it runs
	Attributes    []Attribute
}

// CompanionObjectDeclaration is the nested object gathering `static`
// members, synthesized by the Static Members pass.
type CompanionObjectDeclaration struct {
	base
	Members []Statement
}

// EnumDeclaration is a source enum; classified as enum-class or
// sealed-class by the Enum Recording pass (stored on Context, not here).
type EnumDeclaration struct {
	base
	Name          string
	GenericParams []string
	Inherits      []string
	Elements      []EnumElement
	Members       []Statement
	Access        AccessLevel
}

// ProtocolDeclaration is a protocol/interface definition. After the
// Protocol Contents pass, members have their bodies cleared and
// IsJustProtocolInterface set on each member function.
type ProtocolDeclaration struct {
	base
	Name          string
	GenericParams []string
	Inherits      []string
	Members       []Statement
	Access        AccessLevel
}

// StructDeclaration is a value-type struct definition.
type StructDeclaration struct {
	base
	Name          string
	GenericParams []string
	Inherits      []string
	Members       []Statement
	Access        AccessLevel
	Attributes    []Attribute
}

// FunctionDeclaration is a function or method definition.
type FunctionDeclaration struct {
	base
	Name                    string
	GenericParams           []string
	WherePredicates         []WherePredicate
	Parameters              []FunctionParameter
	ReturnType              Expression // nil means Void
	Body                    []Statement
	Attributes              []Attribute
	Access                  AccessLevel
	IsStatic                bool
	IsOpen                  bool // populated by the Open pass only
	IsOverride              bool
	ExtendsType             string // set by Remove Extensions when inlined
	IsJustProtocolInterface bool   // set by Protocol Contents
	ReturnLabel             string // not set by any pass; Returns in Lambdas labels ReturnStatement.Label
}

// WherePredicate is a generic constraint clause.
type WherePredicate struct {
	TypeName   string
	Constraint string
}

// InitializerDeclaration refines FunctionDeclaration with constructor-only
// fields. Prefix is conventionally "init" and ignored by equality.
type InitializerDeclaration struct {
	base
	Prefix       string
	Parameters   []FunctionParameter
	Body         []Statement
	Access       AccessLevel
	IsOpen       bool
	IsOptional   bool           // failable initializer; rewritten to a static invoke() by Optional Inits
	SuperCall    *CallExpression // extracted by Super-calls to Headers; nil if none
	ReturnType   string         // filled in by the Initializer Return Types pass
	ExtendsType  string
}

// VariableDeclaration is `let`/`var` (is_val distinguishes immutability).
type VariableDeclaration struct {
	base
	Name        string
	IsVal       bool // true for `let`/val, false for `var`
	Type        Expression // nil if inferred
	Initializer Expression // nil if uninitialized
	IsStatic    bool
	Access      AccessLevel
	HasAccessors bool // true if the declaration carries get/set bodies
}

// DoStatement is a `do { ... }` block, usually followed by CatchClauses.
type DoStatement struct {
	base
	Body     []Statement
	Catches  []CatchClause
}

// CatchClause is one `catch` arm of a DoStatement.
type CatchClause struct {
	base
	Binding string // synthesized as "_error" by Catch Variable Synthesis if absent
	Type    Expression
	Body    []Statement
}

// ForEachStatement is `for x in seq { ... }`.
type ForEachStatement struct {
	base
	Binding    string
	ValueOnly  bool // true when the binding is a plain value, false for tuple/key-value destructuring
	SecondBinding string // non-empty when iterating key/value or tuple pairs
	Sequence   Expression
	Body       []Statement
}

// WhileStatement is `while cond { ... }`.
type WhileStatement struct {
	base
	Condition Expression
	Body      []Statement
}

// IfStatement is `if cond1, cond2 { ... } else { ... }`. Conditions are
// evaluated left to right with short-circuit (§3 invariant).
type IfStatement struct {
	base
	Conditions []IfCondition
	Then       []Statement
	Else       []Statement // may itself be a single IfStatement wrapped in ExpressionStatement-free form
	WasGuard   bool        // true if this node originated from a `guard` before Double Negatives in Guards ran
}

// SwitchStatement is `switch subject { case ...: ... }`.
type SwitchStatement struct {
	base
	Subject Expression
	Cases   []SwitchCase
}

// DeferStatement is `defer { ... }`.
type DeferStatement struct {
	base
	Body []Statement
}

// ThrowStatement is `throw expr`.
type ThrowStatement struct {
	base
	Value Expression
}

// ReturnStatement is `return expr?`.
type ReturnStatement struct {
	base
	Value Expression // nil for a bare return
	Label string     // set by Returns in Lambdas for multi-statement closures
}

// BreakStatement is `break`.
type BreakStatement struct{ base }

// ContinueStatement is `continue`.
type ContinueStatement struct{ base }

// AssignmentStatement is `lhs = rhs` (or a compound operator folded into
// Operator, e.g. "+=").
type AssignmentStatement struct {
	base
	Target   Expression
	Operator string // "=" for plain assignment
	Value    Expression
}

// ErrorStatement is the sentinel produced when a pass encounters an AST
// shape it was specified to have already eliminated (§7).
type ErrorStatement struct {
	base
	Message string
}
