// Package component defines the Component entity: an identity-bearing,
// ordered mapping from interface name to interface value. An interface value
// is either a business-facing service handle or a controller registered under
// its capability tag. The component itself knows nothing about naming, scope,
// or lifecycle; those are add-on controllers discovered by tag.
package component

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/membrane/internal/log"
)

// ID uniquely identifies a component instance.
// It is a string-based type using UUID format for global uniqueness.
type ID string

// NewID generates a new unique component ID using UUID v4.
func NewID() ID {
	return ID(uuid.New().String())
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// IsValid returns true if the ID is a valid UUID.
func (id ID) IsValid() bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(string(id))
	return err == nil
}

// Runnable is implemented by interface values that participate in lifecycle
// cascades. Starting a component invokes Start on every Runnable interface
// value it holds; values that are not Runnable are skipped.
type Runnable interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Component is the composable unit: an ordered map of named interfaces.
//
// The interface map is exclusively owned by the component and guarded by a
// single RWMutex. Compound operations spanning several components (rename
// validation, sub-component insertion, subtree cascades) are serialized by
// the controllers that perform them, not here.
type Component struct {
	id ID

	mu     sync.RWMutex
	order  []string
	values map[string]any
}

// New creates an empty component.
func New() *Component {
	return &Component{
		id:     NewID(),
		values: make(map[string]any),
	}
}

// ID returns the component's unique identity.
func (c *Component) ID() ID {
	return c.id
}

// AddInterface registers value under name, replacing any previous value
// registered under the same name (last registration wins). It returns the
// previous value, if any. An empty name is replaced by a generated one; the
// generated name is returned through GetInterface lookups via Interfaces.
func (c *Component) AddInterface(name string, value any) (prev any) {
	if name == "" {
		name = GenerateInterfaceName(value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, exists := c.values[name]
	if !exists {
		c.order = append(c.order, name)
	}
	c.values[name] = value

	log.Debug(log.CatComponent, "interface registered",
		"component", c.id, "interface", name, "replaced", exists)
	return prev
}

// GetInterface returns the value registered under name.
// Returns ErrNotFound if no interface is registered under name.
func (c *Component) GetInterface(name string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("component %s has no interface %q: %w", c.id, name, ErrNotFound)
	}
	return value, nil
}

// HasInterface reports whether an interface is registered under name.
func (c *Component) HasInterface(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.values[name]
	return ok
}

// RemoveInterface removes the interface registered under name and returns it.
// Returns ErrNotFound if no interface is registered under name.
func (c *Component) RemoveInterface(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("component %s has no interface %q: %w", c.id, name, ErrNotFound)
	}

	delete(c.values, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	log.Debug(log.CatComponent, "interface removed", "component", c.id, "interface", name)
	return value, nil
}

// Interfaces returns a restartable sequence of (name, value) pairs in
// insertion order. The sequence is a snapshot taken when Interfaces is
// called; mutating the component during iteration does not affect it.
func (c *Component) Interfaces() iter.Seq2[string, any] {
	c.mu.RLock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	values := make([]any, len(names))
	for i, name := range names {
		values[i] = c.values[name]
	}
	c.mu.RUnlock()

	return func(yield func(string, any) bool) {
		for i, name := range names {
			if !yield(name, values[i]) {
				return
			}
		}
	}
}

// Len returns the number of registered interfaces.
func (c *Component) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Start delegates to the component's lifecycle controller, if one is
// attached and Runnable. Components without a lifecycle controller start as
// a no-op, which lets heterogeneous values nest inside lifecycle cascades.
func (c *Component) Start(ctx context.Context) error {
	value, err := c.GetInterface(TagLifecycle.String())
	if err != nil {
		return nil
	}
	if r, ok := value.(Runnable); ok {
		return r.Start(ctx)
	}
	return nil
}

// Stop delegates to the component's lifecycle controller, if one is attached
// and Runnable. A no-op otherwise.
func (c *Component) Stop(ctx context.Context) error {
	value, err := c.GetInterface(TagLifecycle.String())
	if err != nil {
		return nil
	}
	if r, ok := value.(Runnable); ok {
		return r.Stop(ctx)
	}
	return nil
}

// GenerateInterfaceName builds a unique interface name for an unnamed
// registration from the value's dynamic type and a fresh UUID.
func GenerateInterfaceName(value any) string {
	return fmt.Sprintf("%T_%s", value, uuid.New())
}
