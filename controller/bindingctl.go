package controller

import (
	"fmt"

	"github.com/zjrosen/membrane/binding"
	"github.com/zjrosen/membrane/component"
	"github.com/zjrosen/membrane/internal/log"
)

// BindingController manages the bindings attached to the named interfaces
// of its owning component. It only covers registration; transports live in
// the embedding layer and reach the runtime through binding factories.
type BindingController struct {
	base
}

// NewBindingController attaches a BindingController to owner, registering
// it under TagBinding.
func NewBindingController(owner *component.Component) *BindingController {
	ctl := &BindingController{base: base{owner: owner}}
	owner.AddInterface(component.TagBinding.String(), ctl)
	return ctl
}

// Tag returns TagBinding.
func (b *BindingController) Tag() component.Tag {
	return component.TagBinding
}

// Bind resolves the named interface on the owning component, constructs a
// Binding through factory, and registers it on the interface. Returns
// ErrNotFound when no interface is registered under interfaceName and
// ErrWrongInterfaceKind when the registered value is not a binding-capable
// Interface.
func (b *BindingController) Bind(interfaceName string, factory binding.Factory) (*binding.Binding, error) {
	iface, err := b.resolveInterface(interfaceName)
	if err != nil {
		return nil, err
	}

	bnd, err := factory(iface)
	if err != nil {
		return nil, fmt.Errorf("constructing binding for interface %q: %w", interfaceName, err)
	}

	iface.AddBinding(bnd)
	log.Debug(log.CatBinding, "binding registered",
		"component", b.owner.ID(), "interface", interfaceName, "binding", bnd.Name())
	return bnd, nil
}

// Unbind removes the named binding from the named interface. Returns
// ErrNotFound when either the interface or the binding does not exist, and
// ErrWrongInterfaceKind when the interface value is not binding-capable.
func (b *BindingController) Unbind(interfaceName, bindingName string) error {
	iface, err := b.resolveInterface(interfaceName)
	if err != nil {
		return err
	}

	if _, err := iface.RemoveBinding(bindingName); err != nil {
		return err
	}
	log.Debug(log.CatBinding, "binding removed",
		"component", b.owner.ID(), "interface", interfaceName, "binding", bindingName)
	return nil
}

// resolveInterface looks up interfaceName on the owning component and
// asserts it is a binding-capable Interface.
func (b *BindingController) resolveInterface(name string) (*binding.Interface, error) {
	value, err := b.owner.GetInterface(name)
	if err != nil {
		return nil, err
	}

	iface, ok := value.(*binding.Interface)
	if !ok {
		return nil, fmt.Errorf("interface %q of %s is a %T, not binding-capable: %w",
			name, b.owner.ID(), value, component.ErrWrongInterfaceKind)
	}
	return iface, nil
}
