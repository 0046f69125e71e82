package identity

// Store is the per-type identity cache: a mapping from a normalized id key to
// the single live value registered under it. Implementations must keep every
// entry until it is explicitly removed; implicit eviction would allow two live
// values for the same key to coexist.
//
// V is typically a pointer to a model instance, and must be comparable so the
// store can implement conditional removal and re-keying.
type Store[V comparable] interface {
	// Load returns the value registered under key.
	Load(key string) (V, bool)

	// LoadOrStore registers value under key if the key is vacant. It returns
	// the value that ended up in the store and whether it was already present.
	LoadOrStore(key string, value V) (V, bool)

	// Delete removes the entry for key, if any.
	Delete(key string)

	// CompareAndDelete removes the entry for key only when it currently holds
	// value. It reports whether an entry was removed.
	CompareAndDelete(key string, value V) bool

	// Rekey moves value from oldKey to newKey. The oldKey entry is removed
	// only if value occupies it. Registration under newKey follows the
	// store's collision policy; Rekey reports whether value now occupies
	// newKey.
	Rekey(oldKey, newKey string, value V) bool

	// Range iterates over the current entries until fn returns false.
	Range(fn func(key string, value V) bool)

	// Len returns the number of registered entries.
	Len() int

	// Clear removes every entry. Intended for explicit teardown.
	Clear()

	// Snapshot returns a copy of the current mapping. It exists for
	// introspection in tests and diagnostics, not for general use.
	Snapshot() map[string]V
}
