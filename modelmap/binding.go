package modelmap

import (
	"sync"

	"github.com/goliatone/go-identity-map/identity"
	"github.com/goliatone/go-identity-map/model"
)

// binding is the key-tracking hook attached to every constructed instance.
// It keeps the type's store consistent with the instance's id over its
// lifetime: id assignments and changes re-key the entry, the removed signal
// and wipes release it. A binding releases exactly once; afterwards the
// instance's id changes no longer touch the store.
type binding[T model.Model] struct {
	owner *Type[T]
	inst  T

	mu       sync.Mutex
	key      string // current registered key, empty while unregistered
	cancels  []func()
	released bool
}

// track subscribes inst to its id-changed and removed signals and, when the
// instance supports it, binds the instance-scoped wipe. Instances without an
// id are tracked too, so a later id assignment registers them.
func (t *Type[T]) track(inst T) *binding[T] {
	b := &binding[T]{owner: t, inst: inst}

	cancelID := inst.OnAttributeChange(t.idAttribute, b.idChanged)
	cancelRemove := inst.OnRemove(b.release)
	b.cancels = []func(){cancelID, cancelRemove}

	if w, ok := any(inst).(model.WipeBinder); ok {
		w.BindWipe(b.release)
	}

	return b
}

// setKey records the key the binding was registered under by Create.
func (b *binding[T]) setKey(key string) {
	b.mu.Lock()
	b.key = key
	b.mu.Unlock()
}

// idChanged re-keys the store entry after an id change. When the new id is
// already held by a different instance, the store's collision policy decides;
// under the default policy the occupant wins and this instance stays
// unregistered.
func (b *binding[T]) idChanged(_, newValue any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}

	oldKey := b.key
	newKey, ok := identity.NormalizeKey(newValue)
	if !ok {
		newKey = ""
	}

	if b.owner.store.Rekey(oldKey, newKey, b) {
		b.key = newKey
		if oldKey == "" {
			b.owner.instruments.registered()
		}
		return
	}

	b.key = ""
	if newKey != "" {
		b.owner.instruments.collision()
	}
}

// release removes the binding's entry from the store, if any, and detaches
// both subscriptions. It is idempotent and safe to call from the removed
// signal, from wipes, and from Create when a construction race is lost.
func (b *binding[T]) release() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	b.released = true
	key := b.key
	b.key = ""
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	if key != "" {
		b.owner.store.CompareAndDelete(key, b)
	}
	for _, cancel := range cancels {
		cancel()
	}
}
