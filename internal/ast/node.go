// Package ast defines the canonical typed AST shared by the source and
// target languages. Every statement and expression is a tagged variant:
// a single interface with private marker methods, dispatched by a type
// switch rather than by a deep class hierarchy (see the "deep class
// hierarchy of node types" design note). Equality is structural over the
// payload only; the optional frontend syntax handle is never consulted by
// Equal, and is therefore kept out of the node structs entirely — it
// travels alongside a node only through the frontend package that needs
// it, never through the core.
package ast

import "github.com/vela-lang/vela/internal/position"

// Node is the minimum every statement or expression provides: a source
// range, possibly zero for synthesized nodes. Handle lookups against the
// index oracle go through the frontend package's side table, keyed by
// source span, never through a field on Node.
type Node interface {
	Span() position.Span
}

// Statement is any statement-variant node. The unexported marker method
// keeps Expression and Statement from satisfying each other's interface
// even though both embed Node.
type Statement interface {
	Node
	isStatement()
}

// Expression is any expression-variant node.
type Expression interface {
	Node
	isExpression()
}

// base carries the span every node has and centralizes the Span method.
type base struct {
	span position.Span
}

func (b base) Span() position.Span { return b.span }

// withSpan is a small helper for constructors that want to stay terse.
func withSpan(s position.Span) base { return base{span: s} }
