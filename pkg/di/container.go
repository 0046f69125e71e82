package di

import (
	"sync"

	"github.com/goliatone/go-identity-map/identity"
	"github.com/goliatone/go-identity-map/model"
	"github.com/goliatone/go-identity-map/modelmap"
)

// Container provides dependency injection for identity-map components. It
// holds the shared store configuration, hands it to every type produced
// through it, and remembers those types so tests can reset all caches in one
// call instead of relying on ambient global state.
type Container struct {
	storeConfig identity.Config

	mu       sync.Mutex
	resetFns []func()
}

// NewContainer creates a new DI container with the provided store
// configuration. The configuration is validated once, up front.
func NewContainer(config identity.Config) (*Container, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Container{storeConfig: config}, nil
}

// NewContainerWithDefaults creates a new DI container using default
// configuration. This is a convenience constructor for typical use cases
// where custom configuration is not required.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(identity.DefaultConfig())
}

// NewContainerFromEnv creates a new DI container configured from
// IDENTITY_MAP_* environment variables.
func NewContainerFromEnv() (*Container, error) {
	cfg, err := identity.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewContainer(cfg)
}

// StoreConfig returns a copy of the store configuration used by this
// container. This is useful for debugging and monitoring purposes.
func (c *Container) StoreConfig() identity.Config {
	return c.storeConfig
}

// Reset tears down every type produced through this container: all caches
// are emptied and all tracking bindings released. Intended for test
// setup/teardown.
func (c *Container) Reset() {
	c.mu.Lock()
	fns := append([]func(){}, c.resetFns...)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (c *Container) register(reset func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetFns = append(c.resetFns, reset)
}

// NewType produces a cached type wired to the container's store
// configuration. Options are applied on top, so callers may still override
// per type.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function. Example: NewType[*User](container, newUser)
func NewType[T model.Model](container *Container, base modelmap.ConstructorFunc[T], opts ...modelmap.Option) (*modelmap.Type[T], error) {
	merged := append([]modelmap.Option{modelmap.WithStoreConfig(container.storeConfig)}, opts...)

	t, err := modelmap.New(base, merged...)
	if err != nil {
		return nil, err
	}

	container.register(t.Reset)
	return t, nil
}
