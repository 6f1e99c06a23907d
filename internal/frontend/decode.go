package frontend

import (
	"encoding/json"
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/position"
)

// rawSpan is the fixture's source-range encoding.
type rawSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

func (s *rawSpan) toSpan() position.Span {
	if s == nil {
		return position.Span{}
	}
	return position.Span{
		Start: position.Position{Line: s.StartLine, Column: s.StartCol},
		End:   position.Position{Line: s.EndLine, Column: s.EndCol},
	}
}

type rawLabeled struct {
	Label      string
	Expression json.RawMessage
}

type rawAttribute struct {
	Name      string
	Arguments []rawLabeled
	Span      *rawSpan
}

type rawParameter struct {
	Label         string
	APILabel      string
	Type          json.RawMessage
	Default       json.RawMessage
	IsVariadic    bool
	IsAutoclosure bool
	Span          *rawSpan
}

type rawLabeledType struct {
	Label string
	Type  json.RawMessage
}

type rawEnumElement struct {
	Name             string
	AssociatedValues []rawLabeledType
	RawValue         json.RawMessage
	Annotations      []rawAttribute
	Span             *rawSpan
}

type rawSwitchCase struct {
	Expressions []json.RawMessage
	Statements  []json.RawMessage
	Span        *rawSpan
}

type rawIfCondition struct {
	Expr json.RawMessage
	Decl json.RawMessage
}

type rawWherePredicate struct {
	TypeName   string
	Constraint string
}

// rawNode is the single scratch shape every fixture node decodes
// through, discriminated by Kind. Field names are reused across
// unrelated Kinds (e.g. Value holds a ReturnStatement's operand and
// also a VariableDeclaration's initializer) since only one Kind's branch ever reads
// a given rawNode at a time — this mirrors the teacher's transformer.go
// switching on parse-tree rule name rather than decoding through a
// distinct Go type per grammar rule.
type rawNode struct {
	Kind   string
	Handle string
	Span   *rawSpan

	Text    string
	IsBlock bool

	Name  string
	Path  string
	Alias string
	Dot   bool

	TypeName       string
	GenericParams  []string
	Inherits       []string
	ProtocolsAdded []string
	Members        []json.RawMessage
	Access         string
	IsOpen         bool
	Attributes     []rawAttribute
	Elements       []rawEnumElement

	Parameters              []rawParameter
	WherePredicates         []rawWherePredicate
	Body                    []json.RawMessage
	ReturnType              json.RawMessage
	IsStatic                bool
	IsOverride              bool
	ExtendsType             string
	IsJustProtocolInterface bool
	ReturnLabel             string

	Prefix     string
	IsOptional bool
	SuperCall  json.RawMessage

	Catches       []json.RawMessage
	Binding       string
	ValueOnly     bool
	SecondBinding string
	Sequence      json.RawMessage

	Condition  json.RawMessage
	Conditions []rawIfCondition
	IfThen     []json.RawMessage
	IfElse     []json.RawMessage
	WasGuard   bool

	Subject json.RawMessage
	Cases   []rawSwitchCase

	Value    json.RawMessage
	Label    string
	Target   json.RawMessage
	Operator string
	Message  string
	IsVal    bool

	Expression json.RawMessage
	Type       json.RawMessage

	Code                  string
	Left, Right           json.RawMessage
	Inner                 json.RawMessage
	IsStandardLibrary     bool
	Args                  []json.RawMessage
	Optional              bool
	Subscripted           json.RawMessage
	Index                 []rawLabeled
	ArrayElements         []json.RawMessage
	Keys, Values          []json.RawMessage
	Receiver              json.RawMessage
	Member                string
	Operand               json.RawMessage
	TernaryThen           json.RawMessage
	TernaryElse           json.RawMessage
	Function              json.RawMessage
	Arguments             []rawLabeled
	AllowsTrailingClosure bool
	IsPure                bool
	IsTrailing            bool
	Radix                 int
	NumValue              string
	BoolValue             bool
	StrValue              string
	Multiline             bool
	Segments              []json.RawMessage
	LabeledElements       []rawLabeled
}

type decoder struct {
	oracle    map[position.Span]string
	responses map[string]string
}

// remember wires n's handle (if any) into the span-keyed oracle so
// later passes can query it by span instead of by handle.
func (d *decoder) remember(n rawNode, span position.Span) {
	if n.Handle == "" {
		return
	}
	if t, ok := d.responses[n.Handle]; ok {
		d.oracle[span] = t
	}
}

func (d *decoder) parse(raw json.RawMessage) (rawNode, error) {
	var n rawNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return rawNode{}, err
	}
	return n, nil
}

func (d *decoder) labeled(items []rawLabeled) ([]ast.LabeledExpression, error) {
	out := make([]ast.LabeledExpression, len(items))
	for i, it := range items {
		e, err := d.expr(it.Expression)
		if err != nil {
			return nil, err
		}
		out[i] = ast.LabeledExpression{Label: it.Label, Expression: e}
	}
	return out, nil
}

func (d *decoder) exprs(items []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(items))
	for i, it := range items {
		e, err := d.expr(it)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (d *decoder) stmts(items []json.RawMessage) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(items))
	for _, it := range items {
		s, err := d.statement(it)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) attributes(items []rawAttribute) ([]ast.Attribute, error) {
	out := make([]ast.Attribute, len(items))
	for i, a := range items {
		args, err := d.labeled(a.Arguments)
		if err != nil {
			return nil, err
		}
		out[i] = ast.NewAttribute(a.Span.toSpan(), a.Name, args)
	}
	return out, nil
}

func (d *decoder) parameters(items []rawParameter) ([]ast.FunctionParameter, error) {
	out := make([]ast.FunctionParameter, len(items))
	for i, p := range items {
		typ, err := d.expr(p.Type)
		if err != nil {
			return nil, err
		}
		def, err := d.expr(p.Default)
		if err != nil {
			return nil, err
		}
		fp := ast.NewFunctionParameter(p.Span.toSpan(), p.Label, p.APILabel, typ)
		fp.Default = def
		fp.IsVariadic = p.IsVariadic
		fp.IsAutoclosure = p.IsAutoclosure
		out[i] = fp
	}
	return out, nil
}

func (d *decoder) wherePredicates(items []rawWherePredicate) []ast.WherePredicate {
	out := make([]ast.WherePredicate, len(items))
	for i, w := range items {
		out[i] = ast.WherePredicate{TypeName: w.TypeName, Constraint: w.Constraint}
	}
	return out
}

func (d *decoder) enumElements(items []rawEnumElement) ([]ast.EnumElement, error) {
	out := make([]ast.EnumElement, len(items))
	for i, e := range items {
		avs := make([]ast.LabeledType, len(e.AssociatedValues))
		for j, av := range e.AssociatedValues {
			t, err := d.expr(av.Type)
			if err != nil {
				return nil, err
			}
			avs[j] = ast.LabeledType{Label: av.Label, Type: t}
		}
		raw, err := d.expr(e.RawValue)
		if err != nil {
			return nil, err
		}
		annotations, err := d.attributes(e.Annotations)
		if err != nil {
			return nil, err
		}
		el := ast.NewEnumElement(e.Span.toSpan(), e.Name)
		el.AssociatedValues = avs
		el.RawValue = raw
		el.Annotations = annotations
		out[i] = el
	}
	return out, nil
}

// statement decodes one statement-kind rawNode.
func (d *decoder) statement(raw json.RawMessage) (ast.Statement, error) {
	n, err := d.parse(raw)
	if err != nil {
		return nil, err
	}
	span := n.Span.toSpan()
	defer d.remember(n, span)

	switch n.Kind {
	case "comment":
		s := ast.NewComment(span)
		s.Text, s.IsBlock = n.Text, n.IsBlock
		return s, nil

	case "expressionStatement":
		e, err := d.expr(n.Expression)
		if err != nil {
			return nil, err
		}
		s := ast.NewExpressionStatement(span)
		s.Expression = e
		return s, nil

	case "typealias":
		t, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		s := ast.NewTypealiasDeclaration(span)
		s.Name, s.Type = n.Name, t
		return s, nil

	case "import":
		s := ast.NewImportDeclaration(span)
		s.Path, s.Alias, s.Dot = n.Path, n.Alias, n.Dot
		return s, nil

	case "extension":
		members, err := d.stmts(n.Members)
		if err != nil {
			return nil, err
		}
		s := ast.NewExtensionDeclaration(span)
		s.TypeName, s.GenericParams, s.ProtocolsAdded, s.Members = n.TypeName, n.GenericParams, n.ProtocolsAdded, members
		return s, nil

	case "class":
		members, err := d.stmts(n.Members)
		if err != nil {
			return nil, err
		}
		attrs, err := d.attributes(n.Attributes)
		if err != nil {
			return nil, err
		}
		s := ast.NewClassDeclaration(span)
		s.Name, s.GenericParams, s.Inherits, s.Members = n.Name, n.GenericParams, n.Inherits, members
		s.Access, s.Attributes = ast.AccessLevel(n.Access), attrs
		return s, nil

	case "companionObject":
		members, err := d.stmts(n.Members)
		if err != nil {
			return nil, err
		}
		s := ast.NewCompanionObjectDeclaration(span)
		s.Members = members
		return s, nil

	case "enum":
		members, err := d.stmts(n.Members)
		if err != nil {
			return nil, err
		}
		elements, err := d.enumElements(n.Elements)
		if err != nil {
			return nil, err
		}
		s := ast.NewEnumDeclaration(span)
		s.Name, s.GenericParams, s.Inherits = n.Name, n.GenericParams, n.Inherits
		s.Elements, s.Members, s.Access = elements, members, ast.AccessLevel(n.Access)
		return s, nil

	case "protocol":
		members, err := d.stmts(n.Members)
		if err != nil {
			return nil, err
		}
		s := ast.NewProtocolDeclaration(span)
		s.Name, s.GenericParams, s.Inherits, s.Members = n.Name, n.GenericParams, n.Inherits, members
		s.Access = ast.AccessLevel(n.Access)
		return s, nil

	case "struct":
		members, err := d.stmts(n.Members)
		if err != nil {
			return nil, err
		}
		attrs, err := d.attributes(n.Attributes)
		if err != nil {
			return nil, err
		}
		s := ast.NewStructDeclaration(span)
		s.Name, s.GenericParams, s.Inherits, s.Members = n.Name, n.GenericParams, n.Inherits, members
		s.Access, s.Attributes = ast.AccessLevel(n.Access), attrs
		return s, nil

	case "function":
		params, err := d.parameters(n.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := d.expr(n.ReturnType)
		if err != nil {
			return nil, err
		}
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		attrs, err := d.attributes(n.Attributes)
		if err != nil {
			return nil, err
		}
		s := ast.NewFunctionDeclaration(span)
		s.Name, s.GenericParams = n.Name, n.GenericParams
		s.WherePredicates, s.Parameters, s.ReturnType, s.Body = d.wherePredicates(n.WherePredicates), params, ret, body
		s.Attributes, s.Access = attrs, ast.AccessLevel(n.Access)
		s.IsStatic, s.IsOverride, s.ExtendsType = n.IsStatic, n.IsOverride, n.ExtendsType
		return s, nil

	case "initializer":
		params, err := d.parameters(n.Parameters)
		if err != nil {
			return nil, err
		}
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		var superCall *ast.CallExpression
		if len(n.SuperCall) > 0 {
			sc, err := d.expr(n.SuperCall)
			if err != nil {
				return nil, err
			}
			if call, ok := sc.(ast.CallExpression); ok {
				superCall = &call
			}
		}
		s := ast.NewInitializerDeclaration(span)
		s.Parameters, s.Body, s.Access = params, body, ast.AccessLevel(n.Access)
		s.IsOpen, s.IsOptional, s.SuperCall, s.ExtendsType = n.IsOpen, n.IsOptional, superCall, n.ExtendsType
		return s, nil

	case "variable":
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		init, err := d.expr(n.Value)
		if err != nil {
			return nil, err
		}
		s := ast.NewVariableDeclaration(span)
		s.Name, s.IsVal, s.Type, s.Initializer = n.Name, n.IsVal, typ, init
		s.IsStatic, s.Access = n.IsStatic, ast.AccessLevel(n.Access)
		return s, nil

	case "do":
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		catches := make([]ast.CatchClause, len(n.Catches))
		for i, c := range n.Catches {
			cs, err := d.statement(c)
			if err != nil {
				return nil, err
			}
			catches[i] = cs.(ast.CatchClause)
		}
		s := ast.NewDoStatement(span)
		s.Body, s.Catches = body, catches
		return s, nil

	case "catch":
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		s := ast.NewCatchClause(span)
		s.Binding, s.Type, s.Body = n.Binding, typ, body
		return s, nil

	case "forEach":
		seq, err := d.expr(n.Sequence)
		if err != nil {
			return nil, err
		}
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		s := ast.NewForEachStatement(span)
		s.Binding, s.ValueOnly, s.SecondBinding, s.Sequence, s.Body = n.Binding, n.ValueOnly, n.SecondBinding, seq, body
		return s, nil

	case "while":
		cond, err := d.expr(n.Condition)
		if err != nil {
			return nil, err
		}
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		s := ast.NewWhileStatement(span)
		s.Condition, s.Body = cond, body
		return s, nil

	case "if":
		conds := make([]ast.IfCondition, len(n.Conditions))
		for i, c := range n.Conditions {
			if len(c.Decl) > 0 {
				ds, err := d.statement(c.Decl)
				if err != nil {
					return nil, err
				}
				vd := ds.(ast.VariableDeclaration)
				conds[i] = ast.IfCondition{Decl: &vd}
				continue
			}
			e, err := d.expr(c.Expr)
			if err != nil {
				return nil, err
			}
			conds[i] = ast.IfCondition{Expr: e}
		}
		then, err := d.stmts(n.IfThen)
		if err != nil {
			return nil, err
		}
		els, err := d.stmts(n.IfElse)
		if err != nil {
			return nil, err
		}
		s := ast.NewIfStatement(span)
		s.Conditions, s.Then, s.Else, s.WasGuard = conds, then, els, n.WasGuard
		return s, nil

	case "switch":
		subj, err := d.expr(n.Subject)
		if err != nil {
			return nil, err
		}
		cases := make([]ast.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			exprs, err := d.exprs(c.Expressions)
			if err != nil {
				return nil, err
			}
			body, err := d.stmts(c.Statements)
			if err != nil {
				return nil, err
			}
			cases[i] = ast.NewSwitchCase(c.Span.toSpan(), exprs, body)
		}
		s := ast.NewSwitchStatement(span)
		s.Subject, s.Cases = subj, cases
		return s, nil

	case "defer":
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		s := ast.NewDeferStatement(span)
		s.Body = body
		return s, nil

	case "throw":
		v, err := d.expr(n.Value)
		if err != nil {
			return nil, err
		}
		s := ast.NewThrowStatement(span)
		s.Value = v
		return s, nil

	case "return":
		v, err := d.expr(n.Value)
		if err != nil {
			return nil, err
		}
		s := ast.NewReturnStatement(span)
		s.Value, s.Label = v, n.Label
		return s, nil

	case "break":
		return ast.NewBreakStatement(span), nil

	case "continue":
		return ast.NewContinueStatement(span), nil

	case "assignment":
		target, err := d.expr(n.Target)
		if err != nil {
			return nil, err
		}
		v, err := d.expr(n.Value)
		if err != nil {
			return nil, err
		}
		s := ast.NewAssignmentStatement(span)
		s.Target, s.Operator, s.Value = target, n.Operator, v
		return s, nil

	default:
		return nil, fmt.Errorf("frontend: unknown statement kind %q", n.Kind)
	}
}

// expr decodes one expression-kind rawNode.
func (d *decoder) expr(raw json.RawMessage) (ast.Expression, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	n, err := d.parse(raw)
	if err != nil {
		return nil, err
	}
	span := n.Span.toSpan()
	defer d.remember(n, span)

	switch n.Kind {
	case "literalCode":
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		e := ast.NewLiteralCodeExpression(span)
		e.Code, e.Type = n.Code, typ
		return e, nil

	case "concat":
		left, err := d.expr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.expr(n.Right)
		if err != nil {
			return nil, err
		}
		e := ast.NewConcatExpression(span)
		e.Left, e.Right = left, right
		return e, nil

	case "paren":
		inner, err := d.expr(n.Inner)
		if err != nil {
			return nil, err
		}
		e := ast.NewParenExpression(span)
		e.Inner = inner
		return e, nil

	case "forceUnwrap":
		inner, err := d.expr(n.Inner)
		if err != nil {
			return nil, err
		}
		e := ast.NewForceUnwrapExpression(span)
		e.Inner = inner
		return e, nil

	case "optionalChain":
		inner, err := d.expr(n.Inner)
		if err != nil {
			return nil, err
		}
		e := ast.NewOptionalChainExpression(span)
		e.Inner = inner
		return e, nil

	case "declRef":
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		e := ast.NewDeclRefExpression(span, n.Name)
		e.Type, e.IsStandardLibrary = typ, n.IsStandardLibrary
		return e, nil

	case "typeReference":
		args, err := d.exprs(n.Args)
		if err != nil {
			return nil, err
		}
		e := ast.NewTypeReference(span, n.Name)
		e.Args, e.Optional = args, n.Optional
		return e, nil

	case "subscript":
		subj, err := d.expr(n.Subscripted)
		if err != nil {
			return nil, err
		}
		idx, err := d.labeled(n.Index)
		if err != nil {
			return nil, err
		}
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		e := ast.NewSubscriptExpression(span)
		e.Subscripted, e.Index, e.Type = subj, idx, typ
		return e, nil

	case "array":
		elems, err := d.exprs(n.ArrayElements)
		if err != nil {
			return nil, err
		}
		e := ast.NewArrayExpression(span)
		e.Elements = elems
		return e, nil

	case "dictionary":
		keys, err := d.exprs(n.Keys)
		if err != nil {
			return nil, err
		}
		values, err := d.exprs(n.Values)
		if err != nil {
			return nil, err
		}
		e := ast.NewDictionaryExpression(span)
		e.Keys, e.Values = keys, values
		return e, nil

	case "returnExpr":
		v, err := d.expr(n.Value)
		if err != nil {
			return nil, err
		}
		e := ast.NewReturnExpression(span)
		e.Value = v
		return e, nil

	case "dot":
		recv, err := d.expr(n.Receiver)
		if err != nil {
			return nil, err
		}
		e := ast.NewDotExpression(span, n.Member)
		e.Receiver = recv
		return e, nil

	case "binary":
		left, err := d.expr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.expr(n.Right)
		if err != nil {
			return nil, err
		}
		e := ast.NewBinaryExpression(span, n.Operator)
		e.Left, e.Right = left, right
		return e, nil

	case "prefixUnary":
		operand, err := d.expr(n.Operand)
		if err != nil {
			return nil, err
		}
		e := ast.NewPrefixUnaryExpression(span, n.Operator)
		e.Operand = operand
		return e, nil

	case "postfixUnary":
		operand, err := d.expr(n.Operand)
		if err != nil {
			return nil, err
		}
		e := ast.NewPostfixUnaryExpression(span, n.Operator)
		e.Operand = operand
		return e, nil

	case "ternaryIf":
		cond, err := d.expr(n.Condition)
		if err != nil {
			return nil, err
		}
		then, err := d.expr(n.TernaryThen)
		if err != nil {
			return nil, err
		}
		els, err := d.expr(n.TernaryElse)
		if err != nil {
			return nil, err
		}
		e := ast.NewTernaryIfExpression(span)
		e.Condition, e.Then, e.Else = cond, then, els
		return e, nil

	case "call":
		fn, err := d.expr(n.Function)
		if err != nil {
			return nil, err
		}
		args, err := d.labeled(n.Arguments)
		if err != nil {
			return nil, err
		}
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		e := ast.NewCallExpression(span)
		e.Function, e.Arguments, e.Type = fn, args, typ
		e.AllowsTrailingClosure, e.IsPure = n.AllowsTrailingClosure, n.IsPure
		return e, nil

	case "closure":
		params, err := d.parameters(n.Parameters)
		if err != nil {
			return nil, err
		}
		body, err := d.stmts(n.Body)
		if err != nil {
			return nil, err
		}
		typ, err := d.expr(n.Type)
		if err != nil {
			return nil, err
		}
		e := ast.NewClosureExpression(span)
		e.Parameters, e.Body, e.Type, e.IsTrailing = params, body, typ, n.IsTrailing
		return e, nil

	case "int":
		return ast.NewIntLiteral(span, n.NumValue, n.Radix), nil
	case "uint":
		return ast.NewUIntLiteral(span, n.NumValue, n.Radix), nil
	case "double":
		return ast.NewDoubleLiteral(span, n.NumValue), nil
	case "float":
		return ast.NewFloatLiteral(span, n.NumValue), nil
	case "bool":
		return ast.NewBoolLiteral(span, n.BoolValue), nil
	case "string":
		e := ast.NewStringLiteral(span, n.StrValue)
		e.Multiline = n.Multiline
		return e, nil
	case "char":
		r := []rune(n.StrValue)
		if len(r) == 0 {
			return nil, fmt.Errorf("frontend: empty char literal")
		}
		return ast.NewCharLiteral(span, r[0]), nil
	case "nil":
		return ast.NewNilLiteral(span), nil

	case "interpolatedString":
		segs, err := d.exprs(n.Segments)
		if err != nil {
			return nil, err
		}
		e := ast.NewInterpolatedStringExpression(span)
		e.Segments = segs
		return e, nil

	case "tuple":
		elems, err := d.labeled(n.LabeledElements)
		if err != nil {
			return nil, err
		}
		e := ast.NewTupleExpression(span)
		e.Elements = elems
		return e, nil

	default:
		return nil, fmt.Errorf("frontend: unknown expression kind %q", n.Kind)
	}
}
