package modelmap

import (
	"fmt"
	"iter"

	"github.com/goliatone/go-identity-map/identity"
)

// WipeTargetError reports a malformed target passed to Type.Wipe. It is the
// only misuse the wipe surface reports; everything else is a silent no-op
// because the cache is an optimization layer, not a source of truth.
type WipeTargetError struct {
	Target any
}

// Error implements the error interface.
func (e *WipeTargetError) Error() string {
	return fmt.Sprintf("modelmap: invalid wipe target %T: want instance, id, slice, or sequence", e.Target)
}

// Wipe evicts entries from the type's store. The target may be a single
// instance, a primitive id, a slice of instances, a mixed []any of instances
// and ids, or an iter.Seq of instances. Targets not present in the store are
// no-ops; only a target of an unsupported type is an error.
//
// Wiping is strictly cache-side: the instance is neither mutated nor
// destroyed, and external references to it remain valid. The wiped instance's
// tracking is detached, so constructing with its id afterwards yields a fresh
// instance.
func (t *Type[T]) Wipe(target any) error {
	switch v := target.(type) {
	case T:
		t.wipeInstance(v)
	case []T:
		for _, inst := range v {
			t.wipeInstance(inst)
		}
	case iter.Seq[T]:
		for inst := range v {
			t.wipeInstance(inst)
		}
	case []any:
		for _, elem := range v {
			if err := t.Wipe(elem); err != nil {
				return err
			}
		}
	default:
		key, ok := identity.NormalizeKey(target)
		if !ok {
			return &WipeTargetError{Target: target}
		}
		t.wipeKey(key)
	}
	return nil
}

func (t *Type[T]) wipeKey(key string) {
	if b, ok := t.store.Load(key); ok {
		b.release()
		t.instruments.wiped()
	}
}

func (t *Type[T]) wipeInstance(inst T) {
	var found *binding[T]
	t.store.Range(func(_ string, b *binding[T]) bool {
		if any(b.inst) == any(inst) {
			found = b
			return false
		}
		return true
	})
	if found != nil {
		found.release()
		t.instruments.wiped()
	}
}
