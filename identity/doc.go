// Package identity provides the per-type identity cache used to deduplicate
// data-model instances.
//
// # Overview
//
// This package exports the Store interface and its configuration:
//
//   - Store: a key -> instance mapping with conditional removal and re-keying
//   - NormalizeKey: converts primitive id values into stable string cache keys
//   - Config: store sizing and collision policy, with env-variable loading
//
// A Store belongs to exactly one generated type; types produced by extension
// never share a store, even when their instances share id values. The store
// holds at most one live value per key and never evicts implicitly; entries
// leave only through explicit removal.
//
// # Basic Usage
//
// The simplest way to obtain a store is with the default configuration:
//
//	store, err := identity.NewStore[*User](identity.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	key, ok := identity.NormalizeKey(42) // "42"
//	if ok {
//		existing, loaded := store.LoadOrStore(key, user)
//		...
//	}
//
// Most callers do not use a Store directly; the modelmap package wires one
// into every generated type and routes all mutations through its
// create-or-fetch and wipe operations. External code must treat the mapping
// as read-only.
//
// # Key Normalization
//
// Ids are primitive values (strings or numbers) by contract. NormalizeKey
// maps integral floats onto the same key as their integer counterparts so
// that ids decoded from JSON collide with their in-memory equivalents, and
// reports absence for nil, empty strings, and composite values.
//
// # Collision Policy
//
// When an id change would register an instance under a key that a different
// instance already occupies, the configured CollisionPolicy decides the
// outcome. The default, CollisionKeepExisting, preserves the cached occupant
// and leaves the incoming instance unregistered.
//
// # See Also
//
// For the construction-interception protocol built on top of this package,
// see the modelmap package.
package identity
