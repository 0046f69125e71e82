package identitymap

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/puzpuzpuz/xsync/v3"
)

// CollisionPolicy mirrors the public identity.CollisionPolicy values.
type CollisionPolicy string

const (
	// CollisionKeepExisting preserves the cached occupant on a re-key
	// collision.
	CollisionKeepExisting CollisionPolicy = "keep-existing"

	// CollisionReplace displaces the cached occupant on a re-key collision.
	CollisionReplace CollisionPolicy = "replace"
)

// Config holds the configuration for the xsync-backed identity store.
type Config struct {
	// InitialCapacity presizes the underlying map. Zero uses the xsync
	// default; negative values are invalid.
	InitialCapacity int

	// CollisionPolicy applies when Rekey targets an occupied key. Empty
	// defaults to CollisionKeepExisting.
	CollisionPolicy CollisionPolicy
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 0, // Use xsync default
		CollisionPolicy: CollisionKeepExisting,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.InitialCapacity, validation.Min(0)),
		validation.Field(&c.CollisionPolicy, validation.In(
			CollisionPolicy(""),
			CollisionKeepExisting,
			CollisionReplace,
		)),
	)
	if err != nil {
		return fmt.Errorf("identitymap: invalid config: %w", err)
	}
	return nil
}

// xsyncStore implements the identity store on top of xsync.MapOf.
//
// Every compound transition (register-if-absent, conditional removal, re-key
// registration) is single-key atomic through MapOf's Compute, which is what
// keeps the one-value-per-key invariant under concurrent callers.
type xsyncStore[V comparable] struct {
	entries *xsync.MapOf[string, V]
	policy  CollisionPolicy
}

// NewXSyncStore creates a new identity store backed by xsync.MapOf.
// It validates the configuration before allocating the map.
func NewXSyncStore[V comparable](cfg Config) (*xsyncStore[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy := cfg.CollisionPolicy
	if policy == "" {
		policy = CollisionKeepExisting
	}

	var opts []func(*xsync.MapConfig)
	if cfg.InitialCapacity > 0 {
		opts = append(opts, xsync.WithPresize(cfg.InitialCapacity))
	}

	return &xsyncStore[V]{
		entries: xsync.NewMapOf[string, V](opts...),
		policy:  policy,
	}, nil
}

// Load returns the value registered under key.
func (s *xsyncStore[V]) Load(key string) (V, bool) {
	return s.entries.Load(key)
}

// LoadOrStore registers value under key if vacant, returning the occupant and
// whether it was already present.
func (s *xsyncStore[V]) LoadOrStore(key string, value V) (V, bool) {
	return s.entries.LoadOrStore(key, value)
}

// Delete removes the entry for key, if any.
func (s *xsyncStore[V]) Delete(key string) {
	s.entries.Delete(key)
}

// CompareAndDelete removes the entry for key only when it currently holds
// value.
func (s *xsyncStore[V]) CompareAndDelete(key string, value V) bool {
	removed := false
	s.entries.Compute(key, func(old V, loaded bool) (V, bool) {
		if loaded && old == value {
			removed = true
			return old, true // delete
		}
		return old, !loaded
	})
	return removed
}

// Rekey moves value from oldKey to newKey, honoring the collision policy for
// the destination. It reports whether value now occupies newKey.
func (s *xsyncStore[V]) Rekey(oldKey, newKey string, value V) bool {
	if oldKey != "" {
		s.CompareAndDelete(oldKey, value)
	}
	if newKey == "" {
		return false
	}

	stored := false
	s.entries.Compute(newKey, func(old V, loaded bool) (V, bool) {
		switch {
		case !loaded, old == value:
			stored = true
			return value, false
		case s.policy == CollisionReplace:
			stored = true
			return value, false
		default:
			// Occupant wins; the incoming value stays unregistered.
			return old, false
		}
	})
	return stored
}

// Range iterates over the current entries.
func (s *xsyncStore[V]) Range(fn func(key string, value V) bool) {
	s.entries.Range(fn)
}

// Len returns the number of registered entries.
func (s *xsyncStore[V]) Len() int {
	return s.entries.Size()
}

// Clear removes every entry.
func (s *xsyncStore[V]) Clear() {
	s.entries.Clear()
}

// Snapshot returns a copy of the current mapping.
func (s *xsyncStore[V]) Snapshot() map[string]V {
	out := make(map[string]V, s.entries.Size())
	s.entries.Range(func(key string, value V) bool {
		out[key] = value
		return true
	})
	return out
}
