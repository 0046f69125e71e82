// Package modelmap generates data-model types whose construction is
// intercepted by a per-type identity cache: constructing twice with the same
// id returns the same in-memory instance instead of a duplicate.
//
// # Overview
//
// A Type is produced by the New factory from a base constructor and type
// options. Each Type owns one private identity store and three operations:
//
//   - Create: the create-or-fetch interceptor (cache hit returns the cached
//     instance and applies the remaining attributes as an update)
//   - a key-tracking binding attached to every constructed instance, keeping
//     the store consistent when an id is assigned late, changed, or the
//     instance is removed from the application's main store
//   - Wipe: explicit, cache-only eviction by instance, id, slice, or sequence
//
// # Basic Usage
//
//	users, err := modelmap.New(func(attrs model.Attributes) *model.Base {
//		return model.NewBase(attrs)
//	})
//	if err != nil {
//		return err
//	}
//
//	u1 := users.Create(model.Attributes{"id": 1, "name": "ann"})
//	u2 := users.Create(model.Attributes{"id": 1})
//	// u1 == u2: same instance
//
//	_ = users.Wipe(1) // evict; next Create with id 1 builds fresh
//
// # Extension
//
// Extend derives a new Type that inherits the base constructor, identifying
// attribute, and merged defaults, but never the cache: base and derived types
// deduplicate independently even when their instances share id values.
//
//	admins, err := users.Extend(
//		modelmap.WithName("admin"),
//		modelmap.WithDefaults(model.Attributes{"role": "admin"}),
//	)
//
// # Instances Without Ids
//
// Constructing without an id is supported: the instance is returned untracked
// by the store but still carries the tracking binding, so assigning an id
// later registers it and subsequent Create calls with that id return it.
//
// # Id Collisions
//
// When an id change would register an instance under a key a different
// instance already occupies, the incoming instance does not overwrite the
// cached occupant under the default collision policy. This preserves the
// one-instance-per-id invariant; the conflicting instance is simply left
// unregistered. Configure identity.CollisionReplace to displace instead.
//
// # Error Handling
//
// The cache favors silent no-ops over errors: absent ids, wipes of
// unregistered targets, and id collisions never fail. Only a malformed wipe
// target (neither instance, id, slice, nor sequence) surfaces an error, since
// it indicates a programmer mistake rather than cache state.
//
// # Caveats
//
// Wiping removes cache entries only; it neither destroys instances nor
// invalidates external references to them. Traversal or serialization built
// atop cached instances must track visited identities itself: relationship
// graphs between deduplicated instances are naturally cyclic, and nothing in
// this package guards a traversal against that.
package modelmap
