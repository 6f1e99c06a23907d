package recording

import (
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/pass"
)

// Templates registers every `@template("pattern", "snippet")`
// annotation found in f into the context (§4.4 pass 2). The pattern
// language itself is kept opaque per the design notes' Open Question;
// this pass only extracts the two string-literal arguments verbatim.
func Templates(ctx *context.Context, f *ast.File) {
	walkTypes(f, func(v *pass.Visitor, s ast.Statement) {
		for _, a := range attributesOf(s) {
			if !strings.EqualFold(a.Name, "template") || len(a.Arguments) != 2 {
				continue
			}
			pattern, ok1 := a.Arguments[0].Expression.(ast.StringLiteral)
			snippet, ok2 := a.Arguments[1].Expression.(ast.StringLiteral)
			if ok1 && ok2 {
				ctx.AddTemplate(context.Template{Pattern: pattern.Value, Snippet: snippet.Value})
			}
		}
	})
}

// attributesOf returns the Attributes list carried by the statement
// kinds that have one; every other kind carries none.
func attributesOf(s ast.Statement) []ast.Attribute {
	switch n := s.(type) {
	case ast.ClassDeclaration:
		return n.Attributes
	case ast.StructDeclaration:
		return n.Attributes
	case ast.FunctionDeclaration:
		return n.Attributes
	}
	return nil
}
