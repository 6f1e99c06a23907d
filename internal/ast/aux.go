package ast

import "github.com/vela-lang/vela/internal/position"

// AccessLevel is the source access modifier, translated by the Access
// Modifiers pass into the target's access model.
type AccessLevel string

const (
	AccessDefault    AccessLevel = "" // not yet decided by the Access Modifiers pass
	AccessPublic     AccessLevel = "public"
	AccessInternal   AccessLevel = "internal"
	AccessFileprivate AccessLevel = "fileprivate"
	AccessPrivate    AccessLevel = "private"
	AccessOpen       AccessLevel = "open"
	AccessProtected  AccessLevel = "protected"
)

// Attribute is a source annotation such as @pure or @autoclosure.
type Attribute struct {
	Name      string
	Arguments []LabeledExpression
	span      position.Span
}

func (a Attribute) Span() position.Span { return a.span }

// NewAttribute constructs an Attribute, the span being the one field a
// decoder outside this package cannot set directly.
func NewAttribute(span position.Span, name string, args []LabeledExpression) Attribute {
	return Attribute{Name: name, Arguments: args, span: span}
}

// FunctionParameter is a declared parameter of a function or initializer.
type FunctionParameter struct {
	Label       string // the call-site label; "" means unlabeled
	APILabel    string // the implementation-facing name; defaults to Label
	Type        Expression
	Default     Expression // nil if no default
	IsVariadic  bool
	IsAutoclosure bool
	span        position.Span
}

func (p FunctionParameter) Span() position.Span { return p.span }

// NewFunctionParameter constructs a FunctionParameter with its span set.
func NewFunctionParameter(span position.Span, label, apiLabel string, typ Expression) FunctionParameter {
	return FunctionParameter{Label: label, APILabel: apiLabel, Type: typ, span: span}
}

// ImplementationLabel returns the label passes should use when rewriting
// the declaration side, falling back to Label when APILabel is unset.
func (p FunctionParameter) ImplementationLabel() string {
	if p.APILabel != "" {
		return p.APILabel
	}
	return p.Label
}

// LabeledExpression is an argument or tuple element that may carry a
// source-level label (named argument / named tuple element).
type LabeledExpression struct {
	Label      string // "" if unlabeled
	Expression Expression
}

// LabeledType pairs a label with a type, used for enum associated values.
type LabeledType struct {
	Label string
	Type  Expression
}

// EnumElement is one case of an EnumDeclaration.
type EnumElement struct {
	Name             string
	AssociatedValues []LabeledType
	RawValue         Expression // nil until the Implicit Raw Values pass fills it in
	Annotations      []Attribute
	span             position.Span
}

func (e EnumElement) Span() position.Span { return e.span }

// NewEnumElement constructs an EnumElement with its span set.
func NewEnumElement(span position.Span, name string) EnumElement {
	return EnumElement{Name: name, span: span}
}

// IsSealedCase reports whether this element carries associated values,
// which forces its enclosing enum to compile as a sealed class (§4.3).
func (e EnumElement) IsSealedCase() bool { return len(e.AssociatedValues) > 0 }

// SwitchCase is one arm of a SwitchStatement. Per the invariant in §3,
// Statements is always non-empty for an accepted input.
type SwitchCase struct {
	Expressions []Expression // empty means "default"
	Statements  []Statement
	span        position.Span
}

func (c SwitchCase) Span() position.Span { return c.span }

// NewSwitchCase constructs a SwitchCase with its span set.
func NewSwitchCase(span position.Span, expressions []Expression, statements []Statement) SwitchCase {
	return SwitchCase{Expressions: expressions, Statements: statements, span: span}
}

// IsDefault reports whether this case has no match expressions.
func (c SwitchCase) IsDefault() bool { return len(c.Expressions) == 0 }

// IfCondition is either a plain boolean expression or an `if let`-style
// binding declaration.
type IfCondition struct {
	// Exactly one of Expr or Decl is non-nil.
	Expr Expression
	Decl *VariableDeclaration
}

// IsBinding reports whether this condition binds a new identifier.
func (c IfCondition) IsBinding() bool { return c.Decl != nil }

func (c IfCondition) Span() position.Span {
	if c.Decl != nil {
		return c.Decl.Span()
	}
	if c.Expr != nil {
		return c.Expr.Span()
	}
	return position.Span{}
}
