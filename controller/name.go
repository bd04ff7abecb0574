package controller

import (
	"fmt"
	"sync"

	"github.com/zjrosen/membrane/component"
	"github.com/zjrosen/membrane/internal/log"
)

// NameController owns a component's display name and enforces that no two
// sibling components (sub-components of the same parent) share a name.
type NameController struct {
	base

	mu   sync.RWMutex
	name string
}

// NewName attaches a NameController with the given initial name to owner,
// registering it under TagName. The initial name is not conflict-checked;
// conflicts are enforced when the component enters a scope (AddSubComponent)
// and on renames (SetName).
func NewName(owner *component.Component, name string) *NameController {
	ctl := &NameController{base: base{owner: owner}, name: name}
	owner.AddInterface(component.TagName.String(), ctl)
	return ctl
}

// Tag returns TagName.
func (n *NameController) Tag() component.Tag {
	return component.TagName
}

// Name returns the current name. Never fails.
func (n *NameController) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

// SetName renames the component. A no-op when name equals the current name.
//
// The rename is transactional (check-then-commit): every sibling reachable
// through every super-component's scope is consulted first, and on any
// conflict the old name is retained and ErrNameConflict returned. A
// component registered under multiple parents must be conflict-free in all
// of them. Without a ScopeController there are no siblings to conflict
// with, so the rename commits immediately.
func (n *NameController) SetName(name string) error {
	if n.Name() == name {
		return nil
	}

	scope, err := Resolve[*ScopeController](n.owner, component.TagScope)
	if err == nil {
		for _, super := range scope.SuperComponents() {
			superScope, err := Resolve[*ScopeController](super, component.TagScope)
			if err != nil {
				continue
			}
			for _, sibling := range superScope.SubComponents() {
				if sibling == n.owner {
					continue
				}
				siblingName, err := Resolve[*NameController](sibling, component.TagName)
				if err != nil {
					continue
				}
				if siblingName.Name() == name {
					return fmt.Errorf("renaming %q to %q: sibling %s already has that name: %w",
						n.Name(), name, sibling.ID(), component.ErrNameConflict)
				}
			}
		}
	}

	n.mu.Lock()
	old := n.name
	n.name = name
	n.mu.Unlock()

	log.Debug(log.CatName, "component renamed", "component", n.owner.ID(), "from", old, "to", name)
	return nil
}
