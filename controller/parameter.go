package controller

import (
	"fmt"
	"sync"

	"github.com/zjrosen/membrane/component"
)

// ParameterController holds a component's named parameters: arbitrary
// configuration values the business implementation is constructed from.
type ParameterController struct {
	base

	mu     sync.RWMutex
	order  []string
	params map[string]any
}

// NewParameter attaches a ParameterController to owner, registering it
// under TagParameter.
func NewParameter(owner *component.Component) *ParameterController {
	ctl := &ParameterController{
		base:   base{owner: owner},
		params: make(map[string]any),
	}
	owner.AddInterface(component.TagParameter.String(), ctl)
	return ctl
}

// Tag returns TagParameter.
func (p *ParameterController) Tag() component.Tag {
	return component.TagParameter
}

// ParameterNames returns the parameter names in insertion order.
func (p *ParameterController) ParameterNames() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Parameter returns the parameter registered under name.
// Returns ErrNotFound if the parameter does not exist.
func (p *ParameterController) Parameter(name string) (any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.params[name]
	if !ok {
		return nil, fmt.Errorf("component %s has no parameter %q: %w", p.owner.ID(), name, component.ErrNotFound)
	}
	return value, nil
}

// SetParameter registers value under name, replacing any previous value.
func (p *ParameterController) SetParameter(name string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.params[name]; !exists {
		p.order = append(p.order, name)
	}
	p.params[name] = value
}
