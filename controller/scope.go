package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zjrosen/membrane/component"
	"github.com/zjrosen/membrane/internal/log"
)

// ScopeController owns a component's containment relationships: the ordered
// list of sub-components it contains and the super-components it has been
// registered under. A component may appear in multiple containment trees;
// both lists hold non-owning references.
type ScopeController struct {
	base

	mu     sync.RWMutex
	subs   []*component.Component
	supers []*component.Component
}

// NewScope attaches a ScopeController to owner, registering it under
// TagScope.
func NewScope(owner *component.Component) *ScopeController {
	ctl := &ScopeController{base: base{owner: owner}}
	owner.AddInterface(component.TagScope.String(), ctl)
	return ctl
}

// Tag returns TagScope.
func (s *ScopeController) Tag() component.Tag {
	return component.TagScope
}

// SubComponents returns a snapshot of the current sub-components in
// insertion order. The backing list is mutable; callers must not assume the
// snapshot stays current across calls.
func (s *ScopeController) SubComponents() []*component.Component {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*component.Component, len(s.subs))
	copy(out, s.subs)
	return out
}

// SuperComponents returns a snapshot of the parents this component is
// registered under.
func (s *ScopeController) SuperComponents() []*component.Component {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*component.Component, len(s.supers))
	copy(out, s.supers)
	return out
}

// AddSubComponent registers child as a sub-component. Before appending, the
// child's name (via its NameController, when present) is checked against
// every current sibling; on a collision ErrNameConflict is returned and the
// tree is left unmodified. Children without a NameController skip the check
// entirely: naming is an optional policy, not mandatory.
//
// Registration is bidirectional: the owning component is appended to the
// child's super-components when the child carries a ScopeController of its
// own. A child without one cannot track parents (and its renames cannot be
// validated), which is the same optionality as naming.
func (s *ScopeController) AddSubComponent(child *component.Component) error {
	childName, err := Resolve[*NameController](child, component.TagName)
	hasName := err == nil

	s.mu.Lock()
	if hasName {
		name := childName.Name()
		for _, sibling := range s.subs {
			siblingName, err := Resolve[*NameController](sibling, component.TagName)
			if err != nil {
				continue
			}
			if siblingName.Name() == name {
				s.mu.Unlock()
				return fmt.Errorf("adding sub-component to %s: sibling %s already named %q: %w",
					s.owner.ID(), sibling.ID(), name, component.ErrNameConflict)
			}
		}
	}
	s.subs = append(s.subs, child)
	s.mu.Unlock()

	if childScope, err := Resolve[*ScopeController](child, component.TagScope); err == nil {
		childScope.addSuper(s.owner)
	}

	log.Debug(log.CatScope, "sub-component added", "parent", s.owner.ID(), "child", child.ID())
	return nil
}

// RemoveSubComponent removes the first matching entry from the sub-component
// list. Returns ErrNotFound when child is not a current sub-component.
//
// The child's reverse super-component link is left in place; detachment is
// explicit and symmetric via Detach, issued by the caller.
func (s *ScopeController) RemoveSubComponent(child *component.Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub == child {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			log.Debug(log.CatScope, "sub-component removed", "parent", s.owner.ID(), "child", child.ID())
			return nil
		}
	}
	return fmt.Errorf("component %s has no sub-component %s: %w",
		s.owner.ID(), child.ID(), component.ErrNotFound)
}

// addSuper records parent as a super-component of the owning component.
func (s *ScopeController) addSuper(parent *component.Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supers = append(s.supers, parent)
}

// removeSuper drops the first matching parent from the super-component
// list. A no-op when parent is not recorded.
func (s *ScopeController) removeSuper(parent *component.Component) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, super := range s.supers {
		if super == parent {
			s.supers = append(s.supers[:i], s.supers[i+1:]...)
			return
		}
	}
}

// Start cascades a start to every sub-component carrying a
// LifecycleController. Children without one are silently skipped: scope
// cascades are best-effort with respect to lifecycle. Any other child error
// aborts the remainder of the cascade and propagates.
func (s *ScopeController) Start(ctx context.Context) error {
	for _, sub := range s.SubComponents() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("start cascade from %s interrupted: %w", s.owner.ID(), err)
		}
		if err := Start(ctx, sub); err != nil {
			if errors.Is(err, component.ErrNoSuchController) {
				continue
			}
			return fmt.Errorf("starting sub-component %s of %s: %w", sub.ID(), s.owner.ID(), err)
		}
	}
	return nil
}

// Stop cascades a stop to every sub-component carrying a
// LifecycleController, with the same skip and abort semantics as Start.
func (s *ScopeController) Stop(ctx context.Context) error {
	for _, sub := range s.SubComponents() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stop cascade from %s interrupted: %w", s.owner.ID(), err)
		}
		if err := Stop(ctx, sub); err != nil {
			if errors.Is(err, component.ErrNoSuchController) {
				continue
			}
			return fmt.Errorf("stopping sub-component %s of %s: %w", sub.ID(), s.owner.ID(), err)
		}
	}
	return nil
}
