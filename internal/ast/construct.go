package ast

import "github.com/vela-lang/vela/internal/position"

// Constructors below are the "explicit constructors" the frontend
// package decodes through (see its doc comment): each sets the span —
// the one field every node carries that external packages cannot set
// directly, since base is unexported — and returns the rest zeroed for
// the caller to fill in by assigning the struct's exported fields.
// A pass calls these only to synthesize a node that was not in the
// source (e.g. the Static Members pass's CompanionObjectDeclaration); to
// change an existing node it copies and mutates the one it holds.

func NewComment(span position.Span) Comment                         { return Comment{base: withSpan(span)} }
func NewExpressionStatement(span position.Span) ExpressionStatement { return ExpressionStatement{base: withSpan(span)} }
func NewTypealiasDeclaration(span position.Span) TypealiasDeclaration { return TypealiasDeclaration{base: withSpan(span)} }
func NewImportDeclaration(span position.Span) ImportDeclaration     { return ImportDeclaration{base: withSpan(span)} }
func NewExtensionDeclaration(span position.Span) ExtensionDeclaration { return ExtensionDeclaration{base: withSpan(span)} }
func NewClassDeclaration(span position.Span) ClassDeclaration       { return ClassDeclaration{base: withSpan(span)} }
func NewCompanionObjectDeclaration(span position.Span) CompanionObjectDeclaration {
	return CompanionObjectDeclaration{base: withSpan(span)}
}
func NewEnumDeclaration(span position.Span) EnumDeclaration         { return EnumDeclaration{base: withSpan(span)} }
func NewProtocolDeclaration(span position.Span) ProtocolDeclaration { return ProtocolDeclaration{base: withSpan(span)} }
func NewStructDeclaration(span position.Span) StructDeclaration     { return StructDeclaration{base: withSpan(span)} }
func NewFunctionDeclaration(span position.Span) FunctionDeclaration { return FunctionDeclaration{base: withSpan(span)} }
func NewInitializerDeclaration(span position.Span) InitializerDeclaration {
	return InitializerDeclaration{base: withSpan(span), Prefix: "init"}
}
func NewVariableDeclaration(span position.Span) VariableDeclaration { return VariableDeclaration{base: withSpan(span)} }
func NewDoStatement(span position.Span) DoStatement                 { return DoStatement{base: withSpan(span)} }
func NewCatchClause(span position.Span) CatchClause                 { return CatchClause{base: withSpan(span)} }
func NewForEachStatement(span position.Span) ForEachStatement       { return ForEachStatement{base: withSpan(span)} }
func NewWhileStatement(span position.Span) WhileStatement           { return WhileStatement{base: withSpan(span)} }
func NewIfStatement(span position.Span) IfStatement                 { return IfStatement{base: withSpan(span)} }
func NewSwitchStatement(span position.Span) SwitchStatement         { return SwitchStatement{base: withSpan(span)} }
func NewDeferStatement(span position.Span) DeferStatement           { return DeferStatement{base: withSpan(span)} }
func NewThrowStatement(span position.Span) ThrowStatement           { return ThrowStatement{base: withSpan(span)} }
func NewReturnStatement(span position.Span) ReturnStatement         { return ReturnStatement{base: withSpan(span)} }
func NewBreakStatement(span position.Span) BreakStatement           { return BreakStatement{base: withSpan(span)} }
func NewContinueStatement(span position.Span) ContinueStatement     { return ContinueStatement{base: withSpan(span)} }
func NewAssignmentStatement(span position.Span) AssignmentStatement { return AssignmentStatement{base: withSpan(span)} }
func NewErrorStatement(span position.Span, message string) ErrorStatement {
	return ErrorStatement{base: withSpan(span), Message: message}
}

func NewLiteralCodeExpression(span position.Span) LiteralCodeExpression {
	return LiteralCodeExpression{base: withSpan(span)}
}
func NewConcatExpression(span position.Span) ConcatExpression             { return ConcatExpression{base: withSpan(span)} }
func NewParenExpression(span position.Span) ParenExpression               { return ParenExpression{base: withSpan(span)} }
func NewForceUnwrapExpression(span position.Span) ForceUnwrapExpression   { return ForceUnwrapExpression{base: withSpan(span)} }
func NewSwitchExpression(span position.Span) SwitchExpression             { return SwitchExpression{base: withSpan(span)} }
func NewOptionalChainExpression(span position.Span) OptionalChainExpression {
	return OptionalChainExpression{base: withSpan(span)}
}
func NewDeclRefExpression(span position.Span, name string) DeclRefExpression {
	return DeclRefExpression{base: withSpan(span), Name: name}
}
func NewTypeReference(span position.Span, name string) TypeReference {
	return TypeReference{base: withSpan(span), Name: name}
}
func NewSubscriptExpression(span position.Span) SubscriptExpression       { return SubscriptExpression{base: withSpan(span)} }
func NewArrayExpression(span position.Span) ArrayExpression               { return ArrayExpression{base: withSpan(span)} }
func NewDictionaryExpression(span position.Span) DictionaryExpression     { return DictionaryExpression{base: withSpan(span)} }
func NewReturnExpression(span position.Span) ReturnExpression             { return ReturnExpression{base: withSpan(span)} }
func NewDotExpression(span position.Span, member string) DotExpression {
	return DotExpression{base: withSpan(span), Member: member}
}
func NewBinaryExpression(span position.Span, op string) BinaryExpression {
	return BinaryExpression{base: withSpan(span), Operator: op}
}
func NewPrefixUnaryExpression(span position.Span, op string) PrefixUnaryExpression {
	return PrefixUnaryExpression{base: withSpan(span), Operator: op}
}
func NewPostfixUnaryExpression(span position.Span, op string) PostfixUnaryExpression {
	return PostfixUnaryExpression{base: withSpan(span), Operator: op}
}
func NewTernaryIfExpression(span position.Span) TernaryIfExpression       { return TernaryIfExpression{base: withSpan(span)} }
func NewCallExpression(span position.Span) CallExpression                 { return CallExpression{base: withSpan(span)} }
func NewClosureExpression(span position.Span) ClosureExpression           { return ClosureExpression{base: withSpan(span)} }
func NewIntLiteral(span position.Span, value string, radix int) IntLiteral {
	return IntLiteral{base: withSpan(span), Value: value, Radix: radix}
}
func NewUIntLiteral(span position.Span, value string, radix int) UIntLiteral {
	return UIntLiteral{base: withSpan(span), Value: value, Radix: radix}
}
func NewDoubleLiteral(span position.Span, value string) DoubleLiteral { return DoubleLiteral{base: withSpan(span), Value: value} }
func NewFloatLiteral(span position.Span, value string) FloatLiteral   { return FloatLiteral{base: withSpan(span), Value: value} }
func NewBoolLiteral(span position.Span, value bool) BoolLiteral       { return BoolLiteral{base: withSpan(span), Value: value} }
func NewStringLiteral(span position.Span, value string) StringLiteral { return StringLiteral{base: withSpan(span), Value: value} }
func NewCharLiteral(span position.Span, value rune) CharLiteral       { return CharLiteral{base: withSpan(span), Value: value} }
func NewNilLiteral(span position.Span) NilLiteral                     { return NilLiteral{base: withSpan(span)} }
func NewInterpolatedStringExpression(span position.Span) InterpolatedStringExpression {
	return InterpolatedStringExpression{base: withSpan(span)}
}
func NewTupleExpression(span position.Span) TupleExpression { return TupleExpression{base: withSpan(span)} }
func NewErrorExpression(span position.Span, message string) ErrorExpression {
	return ErrorExpression{base: withSpan(span), Message: message}
}
