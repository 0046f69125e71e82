package model

// Attributes is the attribute bag passed to construction and merge
// operations.
type Attributes map[string]any

// Clone returns a shallow copy of the bag. A nil receiver yields an empty,
// writable bag.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Without returns a shallow copy of the bag with the named attributes
// removed.
func (a Attributes) Without(names ...string) Attributes {
	out := a.Clone()
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// Merge returns a copy of the bag with overlay values layered on top.
func (a Attributes) Merge(overlay Attributes) Attributes {
	out := a.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Instance is the attribute surface the identity map consumes. Attribute
// storage and validation belong to the implementing model framework.
type Instance interface {
	// Attribute returns the named attribute value, or nil when absent.
	Attribute(name string) any

	// SetAttributes applies the bag through the model's normal update path,
	// firing whatever change signals the model supports.
	SetAttributes(attrs Attributes)
}

// Notifier is the change-notification capability the key tracker subscribes
// to. Both subscription methods return a cancel function; cancel must be safe
// to call more than once.
type Notifier interface {
	// OnAttributeChange registers fn for changes to the named attribute.
	OnAttributeChange(name string, fn func(old, new any)) (cancel func())

	// OnRemove registers fn for the instance's removed/destroyed signal.
	OnRemove(fn func()) (cancel func())
}

// Model is the full collaborator contract a cached type requires of its
// instances.
type Model interface {
	Instance
	Notifier
}

// WipeBinder is implemented by instances that support an instance-scoped
// wipe. The identity map binds a release closure at registration time; the
// instance invokes it from its own Wipe method without naming the type.
type WipeBinder interface {
	BindWipe(fn func())
}
