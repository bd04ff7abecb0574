package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// === Unit Tests: DotGraph ===

func TestDotGraph_RendersNodesAndEdges(t *testing.T) {
	root := newNamed(t, "root")
	a := newNamed(t, "a")
	b := newNamed(t, "b")
	require.NoError(t, AddSubComponent(root, a))
	require.NoError(t, AddSubComponent(root, b))

	dot := DotGraph(root)

	require.True(t, strings.HasPrefix(dot, "digraph membrane {"))
	require.Contains(t, dot, `label="root"`)
	require.Contains(t, dot, `label="a"`)
	require.Contains(t, dot, `label="b"`)
	require.Contains(t, dot, root.ID().String())
	require.Equal(t, 2, strings.Count(dot, "->"))
}

func TestDotGraph_SharedChildRendersOnce(t *testing.T) {
	root := newNamed(t, "root")
	mid1 := newNamed(t, "mid1")
	mid2 := newNamed(t, "mid2")
	shared := newNamed(t, "shared")

	require.NoError(t, AddSubComponent(root, mid1))
	require.NoError(t, AddSubComponent(root, mid2))
	require.NoError(t, AddSubComponent(mid1, shared))
	require.NoError(t, AddSubComponent(mid2, shared))

	dot := DotGraph(root)

	require.Equal(t, 1, strings.Count(dot, `label="shared"`))
	// Both containment edges still render.
	require.Equal(t, 4, strings.Count(dot, "->"))
}

func TestDotGraph_LeafWithoutScope(t *testing.T) {
	c := newNamed(t, "solo")
	dot := DotGraph(c)
	require.Contains(t, dot, `label="solo"`)
	require.NotContains(t, dot, "->")
}
