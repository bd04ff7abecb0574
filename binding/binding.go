// Package binding defines the binding registration contract: Interfaces are
// named, typed slots on a component that act as services (exposing
// functionality) or references (consuming it), and Bindings are concrete
// connection instances attached to an Interface. Transport behavior is out
// of scope here; the embedding layer supplies it through binding hooks.
package binding

import (
	"context"
	"fmt"
	"sync"

	"github.com/zjrosen/membrane/component"
)

// Kind distinguishes service interfaces from reference (client) interfaces.
type Kind string

const (
	// KindService marks an interface that exposes functionality.
	KindService Kind = "service"
	// KindReference marks an interface that consumes functionality.
	KindReference Kind = "reference"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Factory constructs a Binding bound to the given Interface. It receives
// the resolved Interface so the binding can hold its non-owning
// back-reference.
type Factory func(*Interface) (*Binding, error)

// Interface is a named slot on a component, either a service or a
// reference, holding an ordered mapping of binding-name to Binding.
// An Interface belongs to exactly one component; its bindings are destroyed
// with it (cascading ownership, not reference-counted sharing).
type Interface struct {
	name string
	kind Kind

	mu       sync.RWMutex
	order    []string
	bindings map[string]*Binding
}

// NewInterface creates an Interface with the given name and kind.
func NewInterface(name string, kind Kind) *Interface {
	return &Interface{
		name:     name,
		kind:     kind,
		bindings: make(map[string]*Binding),
	}
}

// Name returns the interface name.
func (i *Interface) Name() string {
	return i.name
}

// Kind returns whether this interface is a service or a reference.
func (i *Interface) Kind() Kind {
	return i.kind
}

// IsService reports whether this interface exposes functionality.
func (i *Interface) IsService() bool {
	return i.kind == KindService
}

// AddBinding registers b under its name, replacing any previous binding
// with the same name. Returns the previous binding, if any.
func (i *Interface) AddBinding(b *Binding) (prev *Binding) {
	i.mu.Lock()
	defer i.mu.Unlock()

	prev, exists := i.bindings[b.name]
	if !exists {
		i.order = append(i.order, b.name)
	}
	i.bindings[b.name] = b
	return prev
}

// Binding returns the binding registered under name.
// Returns ErrNotFound if no binding is registered under name.
func (i *Interface) Binding(name string) (*Binding, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	b, ok := i.bindings[name]
	if !ok {
		return nil, fmt.Errorf("interface %q has no binding %q: %w", i.name, name, component.ErrNotFound)
	}
	return b, nil
}

// RemoveBinding removes the binding registered under name and returns it.
// Returns ErrNotFound if no binding is registered under name.
func (i *Interface) RemoveBinding(name string) (*Binding, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	b, ok := i.bindings[name]
	if !ok {
		return nil, fmt.Errorf("interface %q has no binding %q: %w", i.name, name, component.ErrNotFound)
	}

	delete(i.bindings, name)
	for idx, n := range i.order {
		if n == name {
			i.order = append(i.order[:idx], i.order[idx+1:]...)
			break
		}
	}
	return b, nil
}

// Bindings returns a snapshot of the registered bindings in insertion order.
func (i *Interface) Bindings() []*Binding {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]*Binding, 0, len(i.order))
	for _, name := range i.order {
		out = append(out, i.bindings[name])
	}
	return out
}

// Len returns the number of registered bindings.
func (i *Interface) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.bindings)
}

// Start starts every registered binding. Bindings are assumed independent;
// the first failure aborts the remainder and propagates.
func (i *Interface) Start(ctx context.Context) error {
	for _, b := range i.Bindings() {
		if err := b.Start(ctx); err != nil {
			return fmt.Errorf("starting binding %q on interface %q: %w", b.Name(), i.name, err)
		}
	}
	return nil
}

// Stop stops every registered binding. The first failure aborts the
// remainder and propagates.
func (i *Interface) Stop(ctx context.Context) error {
	for _, b := range i.Bindings() {
		if err := b.Stop(ctx); err != nil {
			return fmt.Errorf("stopping binding %q on interface %q: %w", b.Name(), i.name, err)
		}
	}
	return nil
}

// Binding is a concrete connection instance attached to an Interface.
// A Binding belongs to exactly one Interface and holds a non-owning
// back-reference to it. Transport-specific behavior is injected through the
// OnStart/OnStop hooks.
type Binding struct {
	name  string
	iface *Interface

	onStart func(context.Context) error
	onStop  func(context.Context) error
}

// Option configures a Binding.
type Option func(*Binding)

// OnStart sets the hook invoked when the binding starts.
func OnStart(fn func(context.Context) error) Option {
	return func(b *Binding) { b.onStart = fn }
}

// OnStop sets the hook invoked when the binding stops.
func OnStop(fn func(context.Context) error) Option {
	return func(b *Binding) { b.onStop = fn }
}

// NewBinding creates a binding named name attached to iface.
func NewBinding(iface *Interface, name string, opts ...Option) *Binding {
	b := &Binding{name: name, iface: iface}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the binding name, unique within its interface.
func (b *Binding) Name() string {
	return b.name
}

// Interface returns the interface this binding is attached to.
func (b *Binding) Interface() *Interface {
	return b.iface
}

// Start invokes the binding's start hook, if any.
func (b *Binding) Start(ctx context.Context) error {
	if b.onStart == nil {
		return nil
	}
	return b.onStart(ctx)
}

// Stop invokes the binding's stop hook, if any.
func (b *Binding) Stop(ctx context.Context) error {
	if b.onStop == nil {
		return nil
	}
	return b.onStop(ctx)
}
