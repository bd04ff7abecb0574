package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/membrane/component"
)

// === Unit Tests: Name / SetName ===

func TestNameController_NameNeverFails(t *testing.T) {
	c := component.New()
	nc := NewName(c, "svc")
	require.Equal(t, "svc", nc.Name())
}

func TestNameController_SetName_SameNameIsNoop(t *testing.T) {
	c := component.New()
	nc := NewName(c, "svc")

	require.NoError(t, nc.SetName("svc"))
	require.Equal(t, "svc", nc.Name())
}

func TestNameController_SetName_NoScopeAlwaysSucceeds(t *testing.T) {
	// Without a ScopeController there are no siblings to conflict with.
	c := component.New()
	nc := NewName(c, "old")

	require.NoError(t, nc.SetName("new"))
	require.Equal(t, "new", nc.Name())
}

func TestNameController_SetName_ConflictWithSiblingFails(t *testing.T) {
	parent := newNamed(t, "root")
	a := newNamed(t, "x")
	b := newNamed(t, "y")
	require.NoError(t, AddSubComponent(parent, a))
	require.NoError(t, AddSubComponent(parent, b))

	err := SetName(b, "x")
	require.ErrorIs(t, err, component.ErrNameConflict)

	// Transactional: the old name is retained.
	name, nameErr := Name(b)
	require.NoError(t, nameErr)
	require.Equal(t, "y", name)
}

func TestNameController_SetName_NonConflictingRenameSucceeds(t *testing.T) {
	parent := newNamed(t, "root")
	a := newNamed(t, "x")
	b := newNamed(t, "y")
	require.NoError(t, AddSubComponent(parent, a))
	require.NoError(t, AddSubComponent(parent, b))

	require.NoError(t, SetName(b, "z"))
	name, err := Name(b)
	require.NoError(t, err)
	require.Equal(t, "z", name)
}

func TestNameController_SetName_ChecksAllParentScopes(t *testing.T) {
	// A component registered under multiple parents must be conflict-free
	// in every one of them.
	parent1 := newNamed(t, "p1")
	parent2 := newNamed(t, "p2")
	shared := newNamed(t, "shared")
	sibling1 := newNamed(t, "a")
	sibling2 := newNamed(t, "b")

	require.NoError(t, AddSubComponent(parent1, shared))
	require.NoError(t, AddSubComponent(parent1, sibling1))
	require.NoError(t, AddSubComponent(parent2, shared))
	require.NoError(t, AddSubComponent(parent2, sibling2))

	// Conflicts with a sibling in parent2 only; still blocked.
	err := SetName(shared, "b")
	require.ErrorIs(t, err, component.ErrNameConflict)

	name, nameErr := Name(shared)
	require.NoError(t, nameErr)
	require.Equal(t, "shared", name)

	// A name free in both scopes commits.
	require.NoError(t, SetName(shared, "c"))
}

func TestNameController_SetName_IgnoresUnnamedSiblings(t *testing.T) {
	parent := newNamed(t, "root")
	named := newNamed(t, "x")
	unnamed := component.New()
	NewScope(unnamed)

	require.NoError(t, AddSubComponent(parent, unnamed))
	require.NoError(t, AddSubComponent(parent, named))

	require.NoError(t, SetName(named, "y"))
}

// === Unit Tests: free functions ===

func TestName_NoControllerReturnsNoSuchController(t *testing.T) {
	c := component.New()

	_, err := Name(c)
	require.ErrorIs(t, err, component.ErrNoSuchController)

	err = SetName(c, "x")
	require.ErrorIs(t, err, component.ErrNoSuchController)
}
