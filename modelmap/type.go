package modelmap

import (
	"errors"

	"github.com/goliatone/go-identity-map/identity"
	"github.com/goliatone/go-identity-map/model"
)

// DefaultIDAttribute is the identifying attribute consulted when a type does
// not configure its own.
const DefaultIDAttribute = "id"

// ConstructorFunc performs normal instance construction for a type. It is
// only invoked on cache misses; callers obtain instances exclusively through
// Type.Create so get-or-create is always an explicit operation.
type ConstructorFunc[T model.Model] func(attrs model.Attributes) T

// typeOptions collects type definition options. Use the Option helpers rather
// than building this struct directly.
type typeOptions struct {
	name        string
	idAttribute string
	defaults    model.Attributes
	storeConfig identity.Config
	obs         *ObservabilityConfig
}

// Option customizes a generated type.
type Option func(*typeOptions)

// WithName sets the type name used for metric attributes. Defaults to the
// snake_cased instance type name.
func WithName(name string) Option {
	return func(o *typeOptions) { o.name = name }
}

// WithIDAttribute sets the identifying attribute name. Defaults to "id".
func WithIDAttribute(name string) Option {
	return func(o *typeOptions) {
		if name != "" {
			o.idAttribute = name
		}
	}
}

// WithDefaults layers attribute defaults onto the type. Construction
// attributes override defaults; extension merges child defaults over the
// parent's.
func WithDefaults(defaults model.Attributes) Option {
	return func(o *typeOptions) { o.defaults = o.defaults.Merge(defaults) }
}

// WithStoreConfig sets the identity store configuration for the type.
func WithStoreConfig(cfg identity.Config) Option {
	return func(o *typeOptions) { o.storeConfig = cfg }
}

// WithObservability sets the OpenTelemetry configuration for the type.
func WithObservability(cfg *ObservabilityConfig) Option {
	return func(o *typeOptions) { o.obs = cfg }
}

// Type is a generated constructor descriptor. It owns exactly one identity
// store; types produced through Extend get their own, even when base and
// derived instances share id values. All store mutations flow through Create,
// the key-tracking binding, and Wipe.
type Type[T model.Model] struct {
	name        string
	idAttribute string
	defaults    model.Attributes
	base        ConstructorFunc[T]
	storeConfig identity.Config
	store       identity.Store[*binding[T]]
	instruments *instruments
}

// New produces a type with a fresh, private identity store wired to the
// construction interceptor.
func New[T model.Model](base ConstructorFunc[T], opts ...Option) (*Type[T], error) {
	if base == nil {
		return nil, errors.New("modelmap: base constructor must not be nil")
	}

	o := typeOptions{
		idAttribute: DefaultIDAttribute,
		storeConfig: identity.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = toSnake(typeName[T]())
	}

	store, err := identity.NewStore[*binding[T]](o.storeConfig)
	if err != nil {
		return nil, err
	}

	t := &Type[T]{
		name:        o.name,
		idAttribute: o.idAttribute,
		defaults:    o.defaults.Clone(),
		base:        base,
		storeConfig: o.storeConfig,
		store:       store,
	}
	t.instruments = newInstruments(o.obs, t.name, func() int { return store.Len() })

	return t, nil
}

// Extend derives a new type from t. The child inherits the base constructor,
// identifying attribute, store configuration, and defaults (overridable per
// option), but always starts with an empty, independent store.
func (t *Type[T]) Extend(opts ...Option) (*Type[T], error) {
	inherited := []Option{
		WithName(t.name),
		WithIDAttribute(t.idAttribute),
		WithDefaults(t.defaults),
		WithStoreConfig(t.storeConfig),
	}
	return New(t.base, append(inherited, opts...)...)
}

// Name returns the type name used for metric attributes.
func (t *Type[T]) Name() string {
	return t.name
}

// IDAttribute returns the identifying attribute name.
func (t *Type[T]) IDAttribute() string {
	return t.idAttribute
}

// Create is the create-or-fetch operation. When the attributes carry an id
// already registered in the type's store, the cached instance is returned and
// the remaining attributes are applied through its normal update path, so a
// repeated construction behaves like an update instead of being dropped.
// Otherwise a new instance is constructed, tracked, and, when it carries a
// defined id, registered.
//
// An absent id is not an error: the instance simply stays unregistered (and
// undeduplicated) until an id is assigned, at which point the tracking
// binding registers it.
func (t *Type[T]) Create(attrs model.Attributes) T {
	merged := t.defaults.Merge(attrs)

	if key, ok := identity.NormalizeKey(merged[t.idAttribute]); ok {
		if b, hit := t.store.Load(key); hit {
			t.instruments.hit()
			t.mergeInto(b.inst, attrs)
			return b.inst
		}
	}

	t.instruments.miss()
	inst := t.base(merged)
	b := t.track(inst)

	if key, ok := identity.NormalizeKey(inst.Attribute(t.idAttribute)); ok {
		if occupant, loaded := t.store.LoadOrStore(key, b); loaded {
			// Lost a race for the key: the occupant wins and absorbs the
			// construction attributes, the fresh instance is discarded.
			b.release()
			t.mergeInto(occupant.inst, attrs)
			return occupant.inst
		}
		b.setKey(key)
		t.instruments.registered()
	}

	return inst
}

// Cached returns the instance registered under the given id, when present.
// Exposed for introspection; treat the result as read-only cache state.
func (t *Type[T]) Cached(id any) (T, bool) {
	var zero T
	key, ok := identity.NormalizeKey(id)
	if !ok {
		return zero, false
	}
	b, ok := t.store.Load(key)
	if !ok {
		return zero, false
	}
	return b.inst, true
}

// Len returns the number of registered instances.
func (t *Type[T]) Len() int {
	return t.store.Len()
}

// Snapshot returns a copy of the current id -> instance mapping. Intended for
// verifying cache size and contents in tests.
func (t *Type[T]) Snapshot() map[string]T {
	out := make(map[string]T, t.store.Len())
	t.store.Range(func(key string, b *binding[T]) bool {
		out[key] = b.inst
		return true
	})
	return out
}

// Reset releases every entry and its tracking binding. Intended for explicit
// teardown in test setup/teardown; production code evicts through Wipe.
func (t *Type[T]) Reset() {
	t.store.Range(func(_ string, b *binding[T]) bool {
		b.release()
		return true
	})
	t.store.Clear()
}

// mergeInto applies the non-id construction attributes to an existing
// instance. The id is stripped so a hit never re-triggers the tracking
// binding's own change handling from inside Create.
func (t *Type[T]) mergeInto(inst T, attrs model.Attributes) {
	rest := attrs.Without(t.idAttribute)
	if len(rest) > 0 {
		inst.SetAttributes(rest)
	}
}
