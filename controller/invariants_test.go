package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/membrane/component"
)

// assertUniqueSiblingNames fails when any parent holds two named children
// with the same name.
func assertUniqueSiblingNames(t *rapid.T, parents []*component.Component) {
	for _, parent := range parents {
		subs, err := SubComponents(parent)
		if err != nil {
			continue
		}
		seen := make(map[string]bool)
		for _, sub := range subs {
			name, err := Name(sub)
			if err != nil {
				continue
			}
			if seen[name] {
				t.Fatalf("parent %s has two children named %q", parent.ID(), name)
			}
			seen[name] = true
		}
	}
}

// TestTreeInvariants_UniqueSiblingNames drives random add/rename sequences
// against a small forest and checks that sibling name uniqueness holds no
// matter which operations were rejected.
func TestTreeInvariants_UniqueSiblingNames(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numParents := rapid.IntRange(1, 3).Draw(t, "numParents")
		parents := make([]*component.Component, numParents)
		for i := range parents {
			parents[i] = component.New()
			NewName(parents[i], rapid.StringMatching(`p[0-9]`).Draw(t, "parentName"))
			NewScope(parents[i])
		}

		var children []*component.Component

		numOps := rapid.IntRange(1, 60).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			op := rapid.IntRange(0, 2).Draw(t, "op")
			switch op {
			case 0: // create and attach a child
				child := component.New()
				NewName(child, rapid.StringMatching(`[a-c]`).Draw(t, "childName"))
				NewScope(child)
				parent := parents[rapid.IntRange(0, numParents-1).Draw(t, "parent")]
				err := AddSubComponent(parent, child)
				if err != nil {
					// Only a name conflict is acceptable here.
					if !errors.Is(err, component.ErrNameConflict) {
						t.Fatalf("unexpected add error: %v", err)
					}
					continue
				}
				children = append(children, child)
			case 1: // attach an existing child to another parent
				if len(children) == 0 {
					continue
				}
				child := children[rapid.IntRange(0, len(children)-1).Draw(t, "child")]
				parent := parents[rapid.IntRange(0, numParents-1).Draw(t, "parent")]
				if err := AddSubComponent(parent, child); err != nil && !errors.Is(err, component.ErrNameConflict) {
					t.Fatalf("unexpected add error: %v", err)
				}
			case 2: // rename an existing child
				if len(children) == 0 {
					continue
				}
				child := children[rapid.IntRange(0, len(children)-1).Draw(t, "child")]
				newName := rapid.StringMatching(`[a-c]`).Draw(t, "newName")
				if err := SetName(child, newName); err != nil && !errors.Is(err, component.ErrNameConflict) {
					t.Fatalf("unexpected rename error: %v", err)
				}
			}

			assertUniqueSiblingNames(t, parents)
		}
	})
}

// TestTreeInvariants_LifecycleConvergence checks that any sequence of
// start/stop calls over a random tree is error-free and leaves every
// lifecycle-capable component in the state of the last operation applied to
// its root.
func TestTreeInvariants_LifecycleConvergence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := component.New()
		NewName(root, "root")
		NewScope(root)
		NewLifecycle(root)

		all := []*component.Component{root}
		numChildren := rapid.IntRange(0, 6).Draw(t, "numChildren")
		for i := 0; i < numChildren; i++ {
			child := component.New()
			NewName(child, rapid.StringMatching(`c[0-9]{2}`).Draw(t, "name"))
			NewScope(child)
			NewLifecycle(child)

			// Attach under a random existing node to get varying depth.
			parent := all[rapid.IntRange(0, len(all)-1).Draw(t, "parent")]
			if err := AddSubComponent(parent, child); err != nil {
				continue
			}
			all = append(all, child)
		}

		want := StatusStopped
		numOps := rapid.IntRange(1, 8).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			if rapid.Bool().Draw(t, "start") {
				require.NoError(t, Start(context.Background(), root))
				want = StatusStarted
			} else {
				require.NoError(t, Stop(context.Background(), root))
				want = StatusStopped
			}
		}

		for _, c := range all {
			status, err := StatusOf(c)
			require.NoError(t, err)
			require.Equal(t, want, status)
		}
	})
}
