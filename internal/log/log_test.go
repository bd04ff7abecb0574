package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// === Unit Tests: formatting ===

func TestLog_WritesLevelCategoryAndFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer SetEnabled(false)
	SetMinLevel(LevelDebug)

	Debug(CatScope, "child added", "parent", "root", "child", "svc")

	out := buf.String()
	require.Contains(t, out, "[DEBUG]")
	require.Contains(t, out, "[scope]")
	require.Contains(t, out, "child added")
	require.Contains(t, out, "parent=root")
	require.Contains(t, out, "child=svc")
}

func TestLog_MinLevelFiltersLowerLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer SetEnabled(false)
	SetMinLevel(LevelWarn)

	Debug(CatLife, "suppressed")
	Warn(CatLife, "emitted")

	out := buf.String()
	require.NotContains(t, out, "suppressed")
	require.Contains(t, out, "emitted")
}

func TestLog_DisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	SetEnabled(false)

	Error(CatBinding, "dropped")
	require.Empty(t, buf.String())
}

func TestLog_OddFieldCountAppendsOrphanKey(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer SetEnabled(false)
	SetMinLevel(LevelDebug)

	Info(CatName, "renamed", "orphan")
	require.Contains(t, buf.String(), "orphan=")
}
