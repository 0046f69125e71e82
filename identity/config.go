package identity

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-identity-map/internal/identitymap"
)

// CollisionPolicy decides what happens when an id change would register an
// instance under a key a different instance already occupies.
type CollisionPolicy string

const (
	// CollisionKeepExisting leaves the cached occupant in place and the
	// incoming instance unregistered. This is the default: last writer does
	// not silently win over deduplication.
	CollisionKeepExisting CollisionPolicy = "keep-existing"

	// CollisionReplace displaces the cached occupant with the incoming
	// instance.
	CollisionReplace CollisionPolicy = "replace"
)

// Config exposes identity store configuration for consumers of the package.
type Config struct {
	// InitialCapacity presizes the store. Zero means the backend default.
	InitialCapacity int `env:"INITIAL_CAPACITY"`

	// CollisionPolicy applies to re-key collisions. Empty means
	// CollisionKeepExisting.
	CollisionPolicy CollisionPolicy `env:"COLLISION_POLICY"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(identitymap.DefaultConfig())
}

// ConfigFromEnv builds a Config from IDENTITY_MAP_* environment variables,
// starting from the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "IDENTITY_MAP_"}); err != nil {
		return Config{}, fmt.Errorf("identity: parse env config: %w", err)
	}
	return cfg, nil
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewStore constructs the default store implementation for the provided
// configuration.
func NewStore[V comparable](cfg Config) (Store[V], error) {
	return identitymap.NewXSyncStore[V](cfg.toInternal())
}

func (c Config) toInternal() identitymap.Config {
	return identitymap.Config{
		InitialCapacity: c.InitialCapacity,
		CollisionPolicy: identitymap.CollisionPolicy(c.CollisionPolicy),
	}
}

func convertFromInternal(cfg identitymap.Config) Config {
	return Config{
		InitialCapacity: cfg.InitialCapacity,
		CollisionPolicy: CollisionPolicy(cfg.CollisionPolicy),
	}
}
