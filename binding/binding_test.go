package binding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/membrane/component"
)

// === Unit Tests: Interface ===

func TestInterface_KindAccessors(t *testing.T) {
	svc := NewInterface("api", KindService)
	require.Equal(t, "api", svc.Name())
	require.Equal(t, KindService, svc.Kind())
	require.True(t, svc.IsService())

	ref := NewInterface("db", KindReference)
	require.False(t, ref.IsService())
}

func TestInterface_AddBinding_ThenLookup(t *testing.T) {
	iface := NewInterface("api", KindService)
	b := NewBinding(iface, "local")

	prev := iface.AddBinding(b)
	require.Nil(t, prev)

	got, err := iface.Binding("local")
	require.NoError(t, err)
	require.Same(t, b, got)
	require.Same(t, iface, got.Interface())
}

func TestInterface_AddBinding_ReplaceReturnsPrevious(t *testing.T) {
	iface := NewInterface("api", KindService)
	first := NewBinding(iface, "local")
	second := NewBinding(iface, "local")

	iface.AddBinding(first)
	prev := iface.AddBinding(second)
	require.Same(t, first, prev)
	require.Equal(t, 1, iface.Len())
}

func TestInterface_Binding_MissingReturnsNotFound(t *testing.T) {
	iface := NewInterface("api", KindService)

	_, err := iface.Binding("absent")
	require.ErrorIs(t, err, component.ErrNotFound)
}

func TestInterface_RemoveBinding(t *testing.T) {
	iface := NewInterface("api", KindService)
	b := NewBinding(iface, "local")
	iface.AddBinding(b)

	got, err := iface.RemoveBinding("local")
	require.NoError(t, err)
	require.Same(t, b, got)
	require.Equal(t, 0, iface.Len())

	_, err = iface.RemoveBinding("local")
	require.ErrorIs(t, err, component.ErrNotFound)
}

func TestInterface_Bindings_InsertionOrder(t *testing.T) {
	iface := NewInterface("api", KindService)
	iface.AddBinding(NewBinding(iface, "a"))
	iface.AddBinding(NewBinding(iface, "b"))
	iface.AddBinding(NewBinding(iface, "c"))

	var names []string
	for _, b := range iface.Bindings() {
		names = append(names, b.Name())
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}

// === Unit Tests: lifecycle cascade ===

func TestInterface_Start_CascadesToAllBindings(t *testing.T) {
	iface := NewInterface("api", KindService)

	started := 0
	for _, name := range []string{"a", "b"} {
		iface.AddBinding(NewBinding(iface, name, OnStart(func(context.Context) error {
			started++
			return nil
		})))
	}

	require.NoError(t, iface.Start(context.Background()))
	require.Equal(t, 2, started)
}

func TestInterface_Start_AbortsOnFirstError(t *testing.T) {
	iface := NewInterface("api", KindService)
	boom := errors.New("boom")

	iface.AddBinding(NewBinding(iface, "a", OnStart(func(context.Context) error {
		return boom
	})))
	laterStarted := false
	iface.AddBinding(NewBinding(iface, "b", OnStart(func(context.Context) error {
		laterStarted = true
		return nil
	})))

	require.ErrorIs(t, iface.Start(context.Background()), boom)
	require.False(t, laterStarted)
}

func TestInterface_Stop_CascadesToAllBindings(t *testing.T) {
	iface := NewInterface("api", KindService)

	stopped := 0
	iface.AddBinding(NewBinding(iface, "a", OnStop(func(context.Context) error {
		stopped++
		return nil
	})))

	require.NoError(t, iface.Stop(context.Background()))
	require.Equal(t, 1, stopped)
}

func TestBinding_StartStop_NoHooksIsNoop(t *testing.T) {
	iface := NewInterface("api", KindService)
	b := NewBinding(iface, "local")

	require.NoError(t, b.Start(context.Background()))
	require.NoError(t, b.Stop(context.Background()))
}
