package context_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/context"
	"github.com/vela-lang/vela/internal/frontend"
	"github.com/vela-lang/vela/internal/position"
)

func sp(line int) position.Span {
	return position.Span{Start: position.Position{Line: line, Column: 1}, End: position.Position{Line: line, Column: 2}}
}

func TestOracleIsNilBeforeSetOracle(t *testing.T) {
	ctx := context.New(config.Default())
	require.Nil(t, ctx.Oracle())
}

func TestSetOracleIsReadableAfterFreeze(t *testing.T) {
	ctx := context.New(config.Default())
	ctx.Freeze()

	recv := ast.NewDeclRefExpression(sp(1), "a")
	d, err := frontend.Decode(frontend.File{Path: "t.swift"})
	require.NoError(t, err)

	ctx.SetOracle(d.Oracle)
	name, ok := ctx.Oracle().GetParentType(recv.Span())
	require.False(t, ok)
	require.Equal(t, "", name)
}
