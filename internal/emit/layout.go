package emit

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/translation"
)

// statementCategory classifies s for the blank-line rule; "" means s
// never suppresses a blank line against its neighbor.
func statementCategory(s ast.Statement) string {
	switch n := s.(type) {
	case ast.Comment:
		return "comment"
	case ast.VariableDeclaration:
		return "vardecl"
	case ast.AssignmentStatement:
		return "assign"
	case ast.TypealiasDeclaration:
		return "typealias"
	case ast.ExpressionStatement:
		switch n.Expression.(type) {
		case ast.CallExpression:
			return "callexpr"
		case ast.LiteralCodeExpression:
			return "litcode"
		}
	}
	return ""
}

// needsBlankLine implements §4.7's blank-line rule between adjacent
// declarations: suppressed when both fall in the same non-empty category,
// or for the (do, catch) and (catch, catch) pairs. DoStatement nests its
// own Catches rather than placing them loose in the surrounding list, so
// those two special cases are dead in practice under this AST shape; they
// are kept for a CatchClause that ever does appear as a bare sibling.
func needsBlankLine(prev, cur ast.Statement) bool {
	if _, ok := prev.(ast.DoStatement); ok {
		if _, ok2 := cur.(ast.CatchClause); ok2 {
			return false
		}
	}
	if _, ok := prev.(ast.CatchClause); ok {
		if _, ok2 := cur.(ast.CatchClause); ok2 {
			return false
		}
	}
	a, b := statementCategory(prev), statementCategory(cur)
	if a != "" && a == b {
		return false
	}
	return true
}

// delimitedList implements §4.7's line-limit heuristic as exactly two
// fixed steps: try the whole list flat, and if its rendered width alone
// would exceed lineLimit, break it out one part per indented line. Each
// part's flat width is measured through a throwaway Resolve call; the
// real output still appends the original Translation so provenance is
// preserved either way.
func (e *emitter) delimitedList(parts []*translation.Translation, open, close string) *translation.Translation {
	t := translation.New(position.Span{})
	if len(parts) == 0 {
		t.AppendString(open + close)
		return t
	}

	flatLen := len(open) + len(close)
	for i, p := range parts {
		s, _ := p.Resolve()
		flatLen += len(s)
		if i > 0 {
			flatLen += len(", ")
		}
	}

	if flatLen <= lineLimit {
		t.AppendString(open)
		t.AppendTranslations(parts, ", ")
		t.AppendString(close)
		return t
	}

	t.AppendString(open + "\n")
	e.depth++
	for _, p := range parts {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(p)
		t.AppendString(",\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + close)
	return t
}
