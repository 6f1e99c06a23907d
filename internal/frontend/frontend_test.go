package frontend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
)

func parseAST(t *testing.T, s string) []json.RawMessage {
	t.Helper()
	var out []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func TestDecodeFunctionWithReturn(t *testing.T) {
	f := File{
		Path: "Greeter.swift",
		AST: parseAST(t, `[{
			"kind": "function",
			"name": "greet",
			"parameters": [{"label": "name", "type": {"kind": "typeReference", "name": "String"}}],
			"returnType": {"kind": "typeReference", "name": "String"},
			"body": [{
				"kind": "return",
				"value": {
					"kind": "binary", "operator": "+",
					"left": {"kind": "string", "strValue": "Hello, "},
					"right": {"kind": "declRef", "name": "name"}
				}
			}]
		}]`),
		IndexOracle: map[string]string{},
	}

	decoded, err := Decode(f)
	require.NoError(t, err)
	require.Len(t, decoded.Declarations, 1)

	fn, ok := decoded.Declarations[0].(ast.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "greet", fn.Name)
	require.Len(t, fn.Parameters, 1)
	require.Equal(t, "name", fn.Parameters[0].Label)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(ast.ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Value.(ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "+", bin.Operator)
}

func TestDecodeOracleKeyedBySpan(t *testing.T) {
	f := File{
		Path: "A.swift",
		AST: parseAST(t, `[{
			"kind": "expressionStatement",
			"expression": {
				"kind": "declRef", "name": "x", "handle": "h1",
				"span": {"startLine": 1, "startCol": 1, "endLine": 1, "endCol": 2}
			}
		}]`),
		IndexOracle: map[string]string{"h1": "Widget"},
	}

	decoded, err := Decode(f)
	require.NoError(t, err)

	stmt := decoded.Declarations[0].(ast.ExpressionStatement)
	ref := stmt.Expression.(ast.DeclRefExpression)
	typ, ok := decoded.Oracle.GetParentType(ref.Span())
	require.True(t, ok)
	require.Equal(t, "Widget", typ)
}
