package emit

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/translation"
)

func (e *emitter) classDecl(t *translation.Translation, n ast.ClassDeclaration) {
	t.AppendString(accessKeyword(n.Access))
	if n.IsOpen {
		t.AppendString("open ")
	}
	t.AppendString("class " + n.Name + genericParamsText(n.GenericParams) + inheritsText(n.Inherits) + " ")
	e.push(n.Name)
	t.AppendTranslation(e.memberBlock(n.Members))
	e.pop()
}

func (e *emitter) companionObject(t *translation.Translation, n ast.CompanionObjectDeclaration) {
	t.AppendString("companion object ")
	t.AppendTranslation(e.memberBlock(n.Members))
}

// structDecl emits §8 scenario 1's `data class`: a source struct's stored
// properties become the primary constructor's parameters, in declared
// order, regardless of whether Function Recording's synthesized
// memberwise initializer survived to this point (the Struct Initializer
// Warning pass deletes every explicit one, leaving none at all for a
// struct that wrote its own).
func (e *emitter) structDecl(t *translation.Translation, n ast.StructDeclaration) {
	t.AppendString(accessKeyword(n.Access) + "data class " + n.Name + genericParamsText(n.GenericParams))
	ctorFields, body := splitStructMembers(n.Members)
	parts := make([]*translation.Translation, len(ctorFields))
	for i, v := range ctorFields {
		parts[i] = e.structProperty(v)
	}
	t.AppendTranslation(e.delimitedList(parts, "(", ")"))
	t.AppendString(inheritsText(n.Inherits))
	if len(body) > 0 {
		t.AppendString(" ")
		e.push(n.Name)
		t.AppendTranslation(e.memberBlock(body))
		e.pop()
	}
}

func splitStructMembers(members []ast.Statement) (ctor []ast.VariableDeclaration, body []ast.Statement) {
	for _, m := range members {
		if v, ok := m.(ast.VariableDeclaration); ok && !v.IsStatic && !v.HasAccessors {
			ctor = append(ctor, v)
			continue
		}
		body = append(body, m)
	}
	return
}

func (e *emitter) structProperty(v ast.VariableDeclaration) *translation.Translation {
	t := translation.New(v.Span())
	if v.IsVal {
		t.AppendString("val ")
	} else {
		t.AppendString("var ")
	}
	t.AppendString(v.Name + ": " + e.typeName(v.Type))
	if v.Initializer != nil {
		t.AppendString(" = ")
		t.AppendTranslation(e.expr(v.Initializer))
	}
	return t
}

func (e *emitter) protocolDecl(t *translation.Translation, n ast.ProtocolDeclaration) {
	t.AppendString(accessKeyword(n.Access) + "interface " + n.Name + genericParamsText(n.GenericParams) + inheritsText(n.Inherits) + " ")
	e.push(n.Name)
	t.AppendTranslation(e.memberBlock(n.Members))
	e.pop()
}

// enumDecl dispatches on the enum's recorded kind: an enum-class with a
// rawValue-carrying primary constructor, or a sealed-class with one
// nested subclass per element.
func (e *emitter) enumDecl(t *translation.Translation, n ast.EnumDeclaration) {
	fq := e.fqName(n.Name)
	kind := e.ctx.EnumKind(fq)
	e.push(n.Name)
	defer e.pop()
	if kind == context.EnumKindSealedClass {
		e.sealedClass(t, n)
		return
	}
	e.enumClass(t, n)
}

func (e *emitter) enumClass(t *translation.Translation, n ast.EnumDeclaration) {
	t.AppendString(accessKeyword(n.Access) + "enum class " + n.Name + genericParamsText(n.GenericParams))
	rawProp, body := extractRawValueProperty(n.Members)
	if rawProp != nil {
		pt := translation.New(rawProp.Span())
		pt.AppendString("val rawValue: " + e.typeName(rawProp.Type))
		t.AppendTranslation(e.delimitedList([]*translation.Translation{pt}, "(", ")"))
	}
	t.AppendString(inheritsText(n.Inherits))
	t.AppendString(" {\n")
	e.depth++
	for i, el := range n.Elements {
		t.AppendString(e.pad(e.depth) + el.Name)
		if rawProp != nil && el.RawValue != nil {
			t.AppendString("(")
			t.AppendTranslation(e.expr(el.RawValue))
			t.AppendString(")")
		}
		if i < len(n.Elements)-1 {
			t.AppendString(",\n")
		} else {
			t.AppendString(";\n")
		}
	}
	for _, m := range body {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.statement(m))
		t.AppendString("\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
}

func extractRawValueProperty(members []ast.Statement) (*ast.VariableDeclaration, []ast.Statement) {
	var raw *ast.VariableDeclaration
	body := make([]ast.Statement, 0, len(members))
	for _, m := range members {
		if v, ok := m.(ast.VariableDeclaration); ok && v.Name == "rawValue" && v.IsVal && raw == nil {
			cp := v
			raw = &cp
			continue
		}
		body = append(body, m)
	}
	return raw, body
}

func (e *emitter) sealedClass(t *translation.Translation, n ast.EnumDeclaration) {
	t.AppendString(accessKeyword(n.Access) + "sealed class " + n.Name + genericParamsText(n.GenericParams) + inheritsText(n.Inherits))
	t.AppendString(" {\n")
	e.depth++
	for _, el := range n.Elements {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.sealedCase(n.Name, el))
		t.AppendString("\n")
	}
	for _, m := range n.Members {
		t.AppendString(e.pad(e.depth))
		t.AppendTranslation(e.statement(m))
		t.AppendString("\n")
	}
	e.depth--
	t.AppendString(e.pad(e.depth) + "}")
}

func (e *emitter) sealedCase(enumName string, el ast.EnumElement) *translation.Translation {
	t := translation.New(el.Span())
	t.AppendString("class " + el.Name)
	parts := make([]*translation.Translation, len(el.AssociatedValues))
	for i, av := range el.AssociatedValues {
		label := av.Label
		if label == "" {
			label = fmt.Sprintf("value%d", i)
		}
		pt := translation.New(position.Span{})
		pt.AppendString("val " + label + ": " + e.typeName(av.Type))
		parts[i] = pt
	}
	t.AppendTranslation(e.delimitedList(parts, "(", ")"))
	t.AppendString(" : " + enumName + "()")
	return t
}

// functionDecl applies §4.7's single-expression shorthand when the body
// is exactly one expression statement (never for a protocol interface
// member, which carries no body at all).
func (e *emitter) functionDecl(t *translation.Translation, n ast.FunctionDeclaration) {
	t.AppendString(accessKeyword(n.Access))
	if n.IsOverride {
		t.AppendString("override ")
	}
	if n.IsOpen {
		t.AppendString("open ")
	}
	name := n.Name
	if n.ExtendsType != "" {
		name = n.ExtendsType + "." + n.Name
	}
	t.AppendString("fun " + genericPrefix(n.GenericParams) + name)
	t.AppendTranslation(e.paramList(n.Parameters))
	rt := returnTypeSuffix(e, n.ReturnType)
	t.AppendString(rt)
	where := wherePredicatesText(n.WherePredicates)

	if n.IsJustProtocolInterface {
		t.AppendString(where)
		return
	}
	if expr, ok := singleExprBody(n.Body); ok && rt != "" {
		t.AppendString(where + " = ")
		t.AppendTranslation(e.expr(expr))
		return
	}
	t.AppendString(where + " ")
	t.AppendTranslation(e.block(n.Body))
}

func genericPrefix(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return genericParamsText(params) + " "
}

func returnTypeSuffix(e *emitter, rt ast.Expression) string {
	if rt == nil {
		return ""
	}
	mapped := e.typeName(rt)
	if mapped == "Unit" {
		return ""
	}
	return ": " + mapped
}

func wherePredicatesText(preds []ast.WherePredicate) string {
	if len(preds) == 0 {
		return ""
	}
	s := " where "
	for i, p := range preds {
		if i > 0 {
			s += ", "
		}
		s += p.TypeName + " : " + p.Constraint
	}
	return s
}

// singleExprBody reports whether body is exactly one expression
// statement whose expression isn't literal code or a concat, per §4.7's
// carve-out for those two kinds.
func singleExprBody(body []ast.Statement) (ast.Expression, bool) {
	if len(body) != 1 {
		return nil, false
	}
	es, ok := body[0].(ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	switch es.Expression.(type) {
	case ast.LiteralCodeExpression, ast.ConcatExpression:
		return nil, false
	}
	return es.Expression, true
}

// initializerDecl emits a secondary constructor: by this point in the
// pipeline Optional Inits has already turned a failable initializer into
// a static factory, so a surviving InitializerDeclaration is always a
// plain constructor with IsOptional left false.
func (e *emitter) initializerDecl(t *translation.Translation, n ast.InitializerDeclaration) {
	t.AppendString(accessKeyword(n.Access))
	if n.IsOpen {
		t.AppendString("open ")
	}
	t.AppendString("constructor")
	t.AppendTranslation(e.paramList(n.Parameters))
	if n.SuperCall != nil {
		t.AppendString(" : super")
		t.AppendTranslation(e.argsOnly(*n.SuperCall))
	}
	t.AppendString(" ")
	t.AppendTranslation(e.block(n.Body))
}

func (e *emitter) variableDecl(t *translation.Translation, n ast.VariableDeclaration) {
	t.AppendString(accessKeyword(n.Access))
	if n.IsVal {
		t.AppendString("val ")
	} else {
		t.AppendString("var ")
	}
	t.AppendString(n.Name)
	if n.Type != nil {
		t.AppendString(": " + e.typeName(n.Type))
	}
	if n.Initializer != nil {
		t.AppendString(" = ")
		t.AppendTranslation(e.expr(n.Initializer))
	}
}
