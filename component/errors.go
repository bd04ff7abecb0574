package component

import "errors"

var (
	// ErrNotFound is returned when a requested interface, sub-component,
	// binding, or parameter does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSuchController is returned by controller discovery when no
	// interface is registered under the requested capability tag. Callers
	// frequently treat it as "feature not enabled" rather than fatal.
	ErrNoSuchController = errors.New("no such controller")

	// ErrNameConflict is returned when a rename or sub-component insertion
	// would leave two siblings with the same name. The operation aborts
	// with no partial mutation.
	ErrNameConflict = errors.New("name conflict")

	// ErrWrongInterfaceKind is returned when a binding operation targets an
	// interface value that is not binding-capable.
	ErrWrongInterfaceKind = errors.New("wrong interface kind")
)
