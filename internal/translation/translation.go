// Package translation implements the Translation buffer from spec §4.1:
// a lazy tree whose leaves are literal strings or nested Translations,
// each optionally carrying a source range. Resolving the tree walks it in
// order, accumulating output text while emitting a line-map entry
// whenever a ranged child is entered or exited.
//
// Grounded on the design note recommending an owned tree of
// Leaf(string, range?)/Node(children, range?) variants with
// non-destructive operations, applied directly since the teacher itself
// emits via a plain strings.Builder and has no analogous buffer to copy
// from — the structure comes straight from spec §4.1 and §9.
package translation

import (
	"strconv"

	"github.com/vela-lang/vela/internal/position"
)

// node is one leaf: a literal string, or a nested Translation in child.
type node struct {
	literal string
	child   *Translation
	rng     position.Span
	hasRng  bool
}

// Translation is a tree-structured string buffer. The zero value is an
// empty translation ready to Append to.
type Translation struct {
	nodes []node
	rng   position.Span
	hasRng bool
}

// New creates an empty Translation, optionally tagged with a source range
// covering everything appended to it.
func New(rng position.Span) *Translation {
	t := &Translation{}
	if !rng.Zero() {
		t.rng = rng
		t.hasRng = true
	}
	return t
}

// AppendString adds a literal string as the next leaf; an empty string
// is ignored.
func (t *Translation) AppendString(s string) {
	if s == "" {
		return
	}
	t.nodes = append(t.nodes, node{literal: s})
}

// AppendTranslation appends a child subtree.
func (t *Translation) AppendTranslation(child *Translation) {
	if child == nil {
		return
	}
	t.nodes = append(t.nodes, node{child: child})
}

// AppendRanged appends a literal string tagged with its own source range,
// distinct from the enclosing Translation's range.
func (t *Translation) AppendRanged(s string, rng position.Span) {
	if s == "" {
		return
	}
	t.nodes = append(t.nodes, node{literal: s, rng: rng, hasRng: !rng.Zero()})
}

// AppendTranslations appends every item in items, interleaving separator
// between consecutive items (but not before the first or after the last).
func (t *Translation) AppendTranslations(items []*Translation, separator string) {
	for i, it := range items {
		if i > 0 {
			t.AppendString(separator)
		}
		t.AppendTranslation(it)
	}
}

// DropLast removes a trailing literal string equal to s. It reports
// whether a matching trailing literal was found and removed; callers
// that require the removal to succeed should check the return value.
func (t *Translation) DropLast(s string) bool {
	if len(t.nodes) == 0 {
		return false
	}
	last := len(t.nodes) - 1
	n := t.nodes[last]
	if n.child != nil {
		return n.child.DropLast(s)
	}
	if n.literal != s {
		return false
	}
	t.nodes = t.nodes[:last]
	return true
}

// IsEmpty reports whether every leaf of the tree is the empty string.
func (t *Translation) IsEmpty() bool {
	for _, n := range t.nodes {
		if n.child != nil {
			if !n.child.IsEmpty() {
				return false
			}
			continue
		}
		if n.literal != "" {
			return false
		}
	}
	return true
}

// LineMapEntry is one line of the resolved line-map, in the format from
// spec §4.1: out_line:out_col:out_line_end:out_line_end_col:src_line:src_col:src_line_end:src_col_end.
type LineMapEntry struct {
	OutStart, OutEnd position.Position
	SrcStart, SrcEnd position.Position
}

// Resolve walks the tree and returns the accumulated text plus one
// LineMapEntry per ranged node entered/exited during the walk, in the
// order they were exited (start position recorded on entry, end
// position known on exit — the single entry is appended on exit, so a
// ranged Translation's entry follows the entries of its ranged children).
func (t *Translation) Resolve() (string, []LineMapEntry) {
	var out []byte
	var entries []LineMapEntry
	pos := position.Position{Line: 1, Column: 1}
	pos = t.resolveInto(&out, &entries, pos)
	return string(out), entries
}

func (t *Translation) resolveInto(out *[]byte, entries *[]LineMapEntry, pos position.Position) position.Position {
	outStart := pos
	srcStart := t.rng.Start

	for _, n := range t.nodes {
		switch {
		case n.child != nil:
			pos = n.child.resolveInto(out, entries, pos)
		case n.hasRng:
			before := pos
			*out = append(*out, n.literal...)
			pos = before.Advance(n.literal)
			*entries = append(*entries, LineMapEntry{
				OutStart: before, OutEnd: pos,
				SrcStart: n.rng.Start, SrcEnd: n.rng.End,
			})
		default:
			*out = append(*out, n.literal...)
			pos = pos.Advance(n.literal)
		}
	}

	if t.hasRng {
		*entries = append(*entries, LineMapEntry{
			OutStart: outStart, OutEnd: pos,
			SrcStart: srcStart, SrcEnd: t.rng.End,
		})
	}
	return pos
}

// Format renders one LineMapEntry in spec §4.1's colon-separated form.
func (e LineMapEntry) Format() string {
	return format(e.OutStart) + ":" + format(e.OutEnd) + ":" + format(e.SrcStart) + ":" + format(e.SrcEnd)
}

func format(p position.Position) string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
