// Package frontend stands in for the real syntax/type-checker frontend
// spec §1 treats as an external collaborator. It reads a small JSON
// fixture format (one File per source file, plus that file's index-oracle
// responses) and decodes it into the canonical AST.
//
// Grounded on the teacher's transformer.go, which bridges an
// ANTLR-generated parse tree into the canonical AST through an explicit,
// string-keyed switch over node kind rather than reflection-driven
// decoding; this package keeps that same "explicit switch, never
// struct-tag polymorphism" shape, adapted from an ANTLR visitor to a
// json.RawMessage walk because there is no parse tree here to visit.
package frontend

import (
	"encoding/json"
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/position"
)

// File is one fixture's on-disk shape: a path, the file's declarations
// encoded as raw JSON nodes, and the oracle responses keyed by the
// opaque per-node handle every raw node may carry.
type File struct {
	Path         string            `json:"path"`
	AST          []json.RawMessage `json:"ast"`
	IndexOracle  map[string]string `json:"indexOracle"`
}

// Decoded is one file's decoded result: the canonical declarations plus
// an Oracle keyed by source span, since the AST package deliberately
// keeps the frontend's opaque handle out of every node struct (see
// internal/ast's node.go doc comment) — the handle only ever exists
// long enough for Decode to resolve it into a span-keyed lookup a pass
// can query without needing to thread handles through every rewrite.
type Decoded struct {
	Path         string
	Declarations []ast.Statement
	Oracle       *Oracle
}

// Decode parses f.AST into canonical statements and builds f's Oracle.
func Decode(f File) (Decoded, error) {
	d := &decoder{oracle: map[position.Span]string{}, responses: f.IndexOracle}
	decls := make([]ast.Statement, 0, len(f.AST))
	for _, raw := range f.AST {
		s, err := d.statement(raw)
		if err != nil {
			return Decoded{}, fmt.Errorf("frontend: decoding %s: %w", f.Path, err)
		}
		decls = append(decls, s)
	}
	return Decoded{Path: f.Path, Declarations: decls, Oracle: &Oracle{byRange: d.oracle}}, nil
}

// Oracle answers the index-oracle query the second round relies on:
// spec §4.6's get_parent_type(expression), keyed here by the
// expression's source span rather than by the frontend's opaque handle,
// since a span survives pass rewrites that copy a node's payload
// forward untouched.
type Oracle struct {
	byRange map[position.Span]string
}

// GetParentType returns the recorded enclosing-type name for the node
// occupying span, and whether the fixture supplied one.
func (o *Oracle) GetParentType(span position.Span) (string, bool) {
	if o == nil {
		return "", false
	}
	t, ok := o.byRange[span]
	return t, ok
}
