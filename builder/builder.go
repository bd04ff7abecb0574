// Package builder wires business objects into fully controlled components.
// It replaces annotation-driven controller attachment with an explicit
// builder: callers pass the business value and the list of controllers the
// component should carry, and get back a wired Component.
package builder

import (
	"fmt"
	"sort"

	"github.com/zjrosen/membrane/binding"
	"github.com/zjrosen/membrane/component"
	"github.com/zjrosen/membrane/controller"
	"github.com/zjrosen/membrane/internal/log"
)

// BusinessName is the interface name the business value is registered under.
const BusinessName = "business"

// Option attaches one controller or interface to the component under
// construction. Options are applied in the order given.
type Option func(*component.Component) error

// Build creates a component, registers business under BusinessName (unless
// nil), and applies the options in order. The first failing option aborts
// the build.
func Build(business any, opts ...Option) (*component.Component, error) {
	c := component.New()
	if business != nil {
		c.AddInterface(BusinessName, business)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("building component %s: %w", c.ID(), err)
		}
	}

	log.Debug(log.CatBuilder, "component built", "component", c.ID(), "interfaces", c.Len())
	return c, nil
}

// WithName attaches a NameController with the given initial name.
func WithName(name string) Option {
	return func(c *component.Component) error {
		controller.NewName(c, name)
		return nil
	}
}

// WithScope attaches a ScopeController.
func WithScope() Option {
	return func(c *component.Component) error {
		controller.NewScope(c)
		return nil
	}
}

// WithLifecycle attaches a LifecycleController.
func WithLifecycle() Option {
	return func(c *component.Component) error {
		controller.NewLifecycle(c)
		return nil
	}
}

// WithBindings attaches a BindingController.
func WithBindings() Option {
	return func(c *component.Component) error {
		controller.NewBindingController(c)
		return nil
	}
}

// WithParameters attaches a ParameterController seeded with params.
// Parameters are registered in sorted key order for determinism.
func WithParameters(params map[string]any) Option {
	return func(c *component.Component) error {
		pc := controller.NewParameter(c)
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pc.SetParameter(k, params[k])
		}
		return nil
	}
}

// WithInterface registers an arbitrary interface value under name.
func WithInterface(name string, value any) Option {
	return func(c *component.Component) error {
		c.AddInterface(name, value)
		return nil
	}
}

// WithService registers a service-kind binding Interface under name.
func WithService(name string) Option {
	return WithInterface(name, binding.NewInterface(name, binding.KindService))
}

// WithReference registers a reference-kind binding Interface under name.
func WithReference(name string) Option {
	return WithInterface(name, binding.NewInterface(name, binding.KindReference))
}

// WithSubComponents registers children under the component being built.
// Requires a prior WithScope; insertion runs the usual sibling name check,
// so a name conflict aborts the build.
func WithSubComponents(children ...*component.Component) Option {
	return func(c *component.Component) error {
		for _, child := range children {
			if err := controller.AddSubComponent(c, child); err != nil {
				return err
			}
		}
		return nil
	}
}
