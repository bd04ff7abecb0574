// Package controller implements the cross-cutting controllers that govern a
// component: naming, scope (containment), lifecycle, bindings, and
// parameters, together with the discovery protocol used to locate them.
//
// Controllers never import each other's concrete presence on a component:
// they discover collaborators by capability tag and only act when the tag is
// present, which keeps heterogeneous trees composable (some components are
// lifecycle-aware, some are not).
package controller

import (
	"fmt"

	"github.com/zjrosen/membrane/component"
)

// Controller is implemented by every controller attached to a component.
// A controller is attached to exactly one owning component for its whole
// lifetime and holds a non-owning back-reference to it.
type Controller interface {
	// Tag returns the capability tag this controller registers under.
	Tag() component.Tag

	// Component returns the owning component.
	Component() *component.Component
}

// base carries the non-owning back-reference every controller holds.
type base struct {
	owner *component.Component
}

// Component returns the owning component.
func (b *base) Component() *component.Component {
	return b.owner
}

// Resolve finds the controller of type T registered on c under tag.
// Returns ErrNoSuchController when no interface is registered under the tag,
// or when the registered value is not a T. Absence of a controller is a
// meaningful, commonly-caught condition ("feature not enabled"), distinct
// from a generic ErrNotFound.
func Resolve[T any](c *component.Component, tag component.Tag) (T, error) {
	var zero T

	value, err := c.GetInterface(tag.String())
	if err != nil {
		return zero, fmt.Errorf("component %s has no %s: %w", c.ID(), tag, component.ErrNoSuchController)
	}

	ctl, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("component %s: interface %q is a %T, not a %s: %w",
			c.ID(), tag.String(), value, tag, component.ErrNoSuchController)
	}
	return ctl, nil
}
