package ast

import "reflect"

// Equal implements the structural equality invariant from §3 and §8:
// reflexive, symmetric, transitive, and blind to the optional frontend
// handle (which isn't stored on these node types at all — see node.go).
// The one documented exception is InitializerDeclaration.Prefix, which is
// conventionally "init" and must not affect equality.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ai, aok := normalizeForEquality(a)
	bi, bok := normalizeForEquality(b)
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(ai, bi)
}

// normalizeForEquality strips fields that equality must ignore.
func normalizeForEquality(n Node) (Node, bool) {
	if init, ok := n.(InitializerDeclaration); ok {
		init.Prefix = ""
		return init, true
	}
	if init, ok := n.(*InitializerDeclaration); ok {
		cp := *init
		cp.Prefix = ""
		return cp, true
	}
	return n, true
}

// File is a single translation unit: the declarations produced by the
// frontend for one source file, plus any free-standing top-level comments.
type File struct {
	Path         string
	Declarations []Statement
	Comments     []Comment
}
