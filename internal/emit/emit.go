// Package emit implements the emitter of spec §4.7: the final pass over
// the rewritten AST that serializes it into target source text, a
// line-map, and nothing else — no diagnostics originate here, every
// warning was already reported by internal/warn.
//
// Grounded on internal/translation's Translation buffer (itself grounded
// on the design note in spec §4.1/§9, since the teacher emits Go source
// through go/format and has no comparable string-emission layer to
// copy): every statement and expression becomes one ranged child of the
// buffer, so the existing tree-resolve machinery produces the line-map
// for free. Type spelling is delegated to internal/typestr's MapType,
// which already implements §4.7's translation table in full.
package emit

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/translation"
)

// lineLimit is the ~100 character threshold of §4.7's line-limit
// heuristic for call and function-signature layout.
const lineLimit = 100

type emitter struct {
	ctx       *context.Context
	indent    string
	depth     int
	typeStack []string
}

// File renders every declaration in f and returns the target source text
// alongside its resolved line-map, one formatted entry per line per
// §4.1's colon-separated form.
func File(ctx *context.Context, f *ast.File) (string, []string) {
	e := &emitter{ctx: ctx, indent: ctx.Config.IndentationString}
	if e.indent == "" {
		e.indent = "    "
	}
	root := translation.New(position.Span{})
	var prev ast.Statement
	for _, s := range f.Declarations {
		if prev != nil && needsBlankLine(prev, s) {
			root.AppendString("\n")
		}
		root.AppendTranslation(e.statement(s))
		root.AppendString("\n")
		prev = s
	}
	text, entries := root.Resolve()
	lines := make([]string, len(entries))
	for i, en := range entries {
		lines[i] = en.Format()
	}
	return text, lines
}

func (e *emitter) pad(depth int) string {
	return strings.Repeat(e.indent, depth)
}

func (e *emitter) push(name string) { e.typeStack = append(e.typeStack, name) }
func (e *emitter) pop()             { e.typeStack = e.typeStack[:len(e.typeStack)-1] }

func (e *emitter) fqName(name string) string {
	if len(e.typeStack) == 0 {
		return name
	}
	return strings.Join(e.typeStack, ".") + "." + name
}

// statement dispatches on s's concrete variant, returning a Translation
// tagged with s's own span so the line-map carries an entry for it.
func (e *emitter) statement(s ast.Statement) *translation.Translation {
	t := translation.New(s.Span())
	switch n := s.(type) {
	case ast.Comment:
		t.AppendString(commentText(n))
	case ast.ExpressionStatement:
		t.AppendTranslation(e.expr(n.Expression))
	case ast.TypealiasDeclaration:
		t.AppendString("typealias " + n.Name + " = " + e.typeName(n.Type))
	case ast.ImportDeclaration:
		t.AppendString(importText(n))
	case ast.ExtensionDeclaration:
		panic(fmt.Sprintf("emit: unexpected Extension %q reached the emitter (fatal: Remove Extensions should have eliminated it)", n.TypeName))
	case ast.ClassDeclaration:
		e.classDecl(t, n)
	case ast.CompanionObjectDeclaration:
		e.companionObject(t, n)
	case ast.EnumDeclaration:
		e.enumDecl(t, n)
	case ast.ProtocolDeclaration:
		e.protocolDecl(t, n)
	case ast.StructDeclaration:
		e.structDecl(t, n)
	case ast.FunctionDeclaration:
		e.functionDecl(t, n)
	case ast.InitializerDeclaration:
		e.initializerDecl(t, n)
	case ast.VariableDeclaration:
		e.variableDecl(t, n)
	case ast.DoStatement:
		e.doStatement(t, n)
	case ast.CatchClause:
		e.catchClause(t, n)
	case ast.ForEachStatement:
		e.forEach(t, n)
	case ast.WhileStatement:
		t.AppendString("while (")
		t.AppendTranslation(e.expr(n.Condition))
		t.AppendString(") ")
		t.AppendTranslation(e.block(n.Body))
	case ast.IfStatement:
		e.ifStatement(t, n)
	case ast.SwitchStatement:
		e.switchStatement(t, n)
	case ast.DeferStatement:
		// No target-language equivalent for scope-exit actions; the
		// closest idiomatic shape is an empty try whose finally carries
		// the deferred body.
		t.AppendString("try {\n" + e.pad(e.depth+1) + "} finally ")
		t.AppendTranslation(e.block(n.Body))
	case ast.ThrowStatement:
		t.AppendString("throw ")
		t.AppendTranslation(e.expr(n.Value))
	case ast.ReturnStatement:
		e.returnStatement(t, n)
	case ast.BreakStatement:
		t.AppendString("break")
	case ast.ContinueStatement:
		t.AppendString("continue")
	case ast.AssignmentStatement:
		t.AppendTranslation(e.expr(n.Target))
		t.AppendString(" " + n.Operator + " ")
		t.AppendTranslation(e.expr(n.Value))
	case ast.ErrorStatement:
		t.AppendString(`TODO("` + escapeString(n.Message) + `")`)
	default:
		panic(fmt.Sprintf("emit: unhandled statement variant %T (fatal: emitter dispatch table is incomplete)", s))
	}
	return t
}

func commentText(c ast.Comment) string {
	if c.IsBlock {
		return "/* " + c.Text + " */"
	}
	return "// " + c.Text
}

func importText(n ast.ImportDeclaration) string {
	s := "import " + n.Path
	if n.Dot {
		return s + ".*"
	}
	if n.Alias != "" {
		s += " as " + n.Alias
	}
	return s
}

// block renders stmts as a brace-delimited, indented body.
func (e *emitter) block(stmts []ast.Statement) *translation.Translation {
	t := translation.New(position.Span{})
	t.AppendString("{\n")
	e.depth++
	for _, s := range stmts {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.statement(s))
		t.AppendString("\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
	return t
}

// memberBlock renders a declaration's members with §4.7's blank-line
// rule applied between them, the same as top-level declarations.
func (e *emitter) memberBlock(members []ast.Statement) *translation.Translation {
	t := translation.New(position.Span{})
	t.AppendString("{\n")
	e.depth++
	var prev ast.Statement
	for _, m := range members {
		if prev != nil && needsBlankLine(prev, m) {
			t.AppendString("\n")
		}
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.statement(m))
		t.AppendString("\n")
		prev = m
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
	return t
}

func genericParamsText(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func accessKeyword(a ast.AccessLevel) string {
	switch a {
	case ast.AccessPublic, ast.AccessDefault:
		return ""
	default:
		return string(a) + " "
	}
}

func inheritsText(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " : " + strings.Join(names, ", ")
}
