package component

// Tag is the well-known capability name a controller is registered under.
// Controllers are identified by tag, not by instance identity; the tag is
// the only sanctioned way other code locates a controller on a component.
type Tag string

// Capability tags for the built-in controllers.
const (
	TagName      Tag = "name-controller"
	TagScope     Tag = "scope-controller"
	TagLifecycle Tag = "lifecycle-controller"
	TagBinding   Tag = "binding-controller"
	TagParameter Tag = "parameter-controller"
)

// String returns the string representation of the Tag.
func (t Tag) String() string {
	return string(t)
}
