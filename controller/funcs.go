package controller

import (
	"context"
	"fmt"

	"github.com/zjrosen/membrane/binding"
	"github.com/zjrosen/membrane/component"
)

// Free convenience functions over the discovery protocol. Each resolves the
// relevant controller on the given component and propagates
// ErrNoSuchController when it is absent. They take the component explicitly;
// there is no global registry.

// Name returns the component's name via its NameController.
func Name(c *component.Component) (string, error) {
	nc, err := Resolve[*NameController](c, component.TagName)
	if err != nil {
		return "", err
	}
	return nc.Name(), nil
}

// SetName renames the component via its NameController.
func SetName(c *component.Component, name string) error {
	nc, err := Resolve[*NameController](c, component.TagName)
	if err != nil {
		return err
	}
	return nc.SetName(name)
}

// SubComponents returns the component's sub-components via its
// ScopeController.
func SubComponents(c *component.Component) ([]*component.Component, error) {
	sc, err := Resolve[*ScopeController](c, component.TagScope)
	if err != nil {
		return nil, err
	}
	return sc.SubComponents(), nil
}

// SuperComponents returns the parents the component is registered under.
func SuperComponents(c *component.Component) ([]*component.Component, error) {
	sc, err := Resolve[*ScopeController](c, component.TagScope)
	if err != nil {
		return nil, err
	}
	return sc.SuperComponents(), nil
}

// AddSubComponent registers child as a sub-component of parent.
func AddSubComponent(parent, child *component.Component) error {
	sc, err := Resolve[*ScopeController](parent, component.TagScope)
	if err != nil {
		return err
	}
	return sc.AddSubComponent(child)
}

// RemoveSubComponent removes child from parent's sub-components. The
// child's reverse link is kept; use Detach for a symmetric unlink.
func RemoveSubComponent(parent, child *component.Component) error {
	sc, err := Resolve[*ScopeController](parent, component.TagScope)
	if err != nil {
		return err
	}
	return sc.RemoveSubComponent(child)
}

// Detach removes child from parent's sub-components and parent from
// child's super-components in one operation. When child is not a current
// sub-component the error propagates and neither side mutates.
func Detach(parent, child *component.Component) error {
	parentScope, err := Resolve[*ScopeController](parent, component.TagScope)
	if err != nil {
		return err
	}

	if err := parentScope.RemoveSubComponent(child); err != nil {
		return err
	}
	if childScope, err := Resolve[*ScopeController](child, component.TagScope); err == nil {
		childScope.removeSuper(parent)
	}
	return nil
}

// Start starts the component via its LifecycleController.
func Start(ctx context.Context, c *component.Component) error {
	lc, err := Resolve[*LifecycleController](c, component.TagLifecycle)
	if err != nil {
		return err
	}
	return lc.Start(ctx)
}

// Stop stops the component via its LifecycleController.
func Stop(ctx context.Context, c *component.Component) error {
	lc, err := Resolve[*LifecycleController](c, component.TagLifecycle)
	if err != nil {
		return err
	}
	return lc.Stop(ctx)
}

// StatusOf returns the component's lifecycle state.
func StatusOf(c *component.Component) (Status, error) {
	lc, err := Resolve[*LifecycleController](c, component.TagLifecycle)
	if err != nil {
		return "", err
	}
	return lc.Status(), nil
}

// Watch subscribes to the component's lifecycle transitions.
func Watch(ctx context.Context, c *component.Component) (<-chan StatusChange, error) {
	lc, err := Resolve[*LifecycleController](c, component.TagLifecycle)
	if err != nil {
		return nil, err
	}
	return lc.Watch(ctx), nil
}

// Bind registers a binding built by factory on the component's named
// interface via its BindingController.
func Bind(c *component.Component, interfaceName string, factory binding.Factory) (*binding.Binding, error) {
	bc, err := Resolve[*BindingController](c, component.TagBinding)
	if err != nil {
		return nil, err
	}
	return bc.Bind(interfaceName, factory)
}

// Unbind removes the named binding from the component's named interface.
func Unbind(c *component.Component, interfaceName, bindingName string) error {
	bc, err := Resolve[*BindingController](c, component.TagBinding)
	if err != nil {
		return err
	}
	return bc.Unbind(interfaceName, bindingName)
}

// Parameter returns the component's named parameter.
func Parameter(c *component.Component, name string) (any, error) {
	pc, err := Resolve[*ParameterController](c, component.TagParameter)
	if err != nil {
		return nil, err
	}
	return pc.Parameter(name)
}

// SetParameter sets the component's named parameter.
func SetParameter(c *component.Component, name string, value any) error {
	pc, err := Resolve[*ParameterController](c, component.TagParameter)
	if err != nil {
		return err
	}
	pc.SetParameter(name, value)
	return nil
}

// ParameterNames returns the component's parameter names.
func ParameterNames(c *component.Component) ([]string, error) {
	pc, err := Resolve[*ParameterController](c, component.TagParameter)
	if err != nil {
		return nil, err
	}
	return pc.ParameterNames(), nil
}

// DisplayName returns the component's name when it has one, falling back to
// a short form of its ID.
func DisplayName(c *component.Component) string {
	if name, err := Name(c); err == nil && name != "" {
		return name
	}
	id := c.ID().String()
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("component-%s", id)
}
