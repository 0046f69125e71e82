package model

import (
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Base is the default Model implementation: a mutex-guarded attribute bag
// with per-attribute change subscriptions, a removed signal, and a client id
// assigned at construction so instances stay distinguishable before they
// carry a real id.
//
// Change and remove callbacks fire synchronously, in registration order,
// after the internal lock is released, so a callback may safely call back
// into the instance.
type Base struct {
	mu         sync.Mutex
	cid        string
	attrs      Attributes
	nextSub    int
	attrSubs   map[string]map[int]func(old, new any)
	removeSubs map[int]func()
	removed    bool
	wipe       func()
}

// NewBase constructs a Base holding a copy of the provided attributes.
func NewBase(attrs Attributes) *Base {
	return &Base{
		cid:        uuid.New().String(),
		attrs:      attrs.Clone(),
		attrSubs:   make(map[string]map[int]func(old, new any)),
		removeSubs: make(map[int]func()),
	}
}

// CID returns the client id assigned at construction. It never changes and is
// unrelated to the identifying attribute.
func (b *Base) CID() string {
	return b.cid
}

// Attribute returns the named attribute value, or nil when absent.
func (b *Base) Attribute(name string) any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attrs[name]
}

// Attributes returns a copy of the current attribute bag.
func (b *Base) Attributes() Attributes {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attrs.Clone()
}

// Set assigns a single attribute through the normal update path.
func (b *Base) Set(name string, value any) {
	b.SetAttributes(Attributes{name: value})
}

// SetAttributes applies the bag, firing change callbacks for every attribute
// whose value actually changed.
func (b *Base) SetAttributes(attrs Attributes) {
	type firing struct {
		fn       func(old, new any)
		old, new any
	}
	var fire []firing

	b.mu.Lock()
	for name, value := range attrs {
		old, had := b.attrs[name]
		if had && equalAttr(old, value) {
			continue
		}
		b.attrs[name] = value
		for _, id := range sortedSubIDs(b.attrSubs[name]) {
			fire = append(fire, firing{fn: b.attrSubs[name][id], old: old, new: value})
		}
	}
	b.mu.Unlock()

	for _, f := range fire {
		f.fn(f.old, f.new)
	}
}

// OnAttributeChange registers fn for changes to the named attribute and
// returns a cancel function safe to call repeatedly.
func (b *Base) OnAttributeChange(name string, fn func(old, new any)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	if b.attrSubs[name] == nil {
		b.attrSubs[name] = make(map[int]func(old, new any))
	}
	b.attrSubs[name][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.attrSubs[name], id)
	}
}

// OnRemove registers fn for the removed signal and returns a cancel function
// safe to call repeatedly.
func (b *Base) OnRemove(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	b.removeSubs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.removeSubs, id)
	}
}

// Remove fires the removed signal once. Later calls are no-ops. The instance
// itself stays usable; Remove only tells subscribers it left the main store.
func (b *Base) Remove() {
	b.mu.Lock()
	if b.removed {
		b.mu.Unlock()
		return
	}
	b.removed = true
	var fire []func()
	for _, id := range sortedSubIDs(b.removeSubs) {
		fire = append(fire, b.removeSubs[id])
	}
	b.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}

// BindWipe installs the release closure the identity map uses to implement
// the instance-scoped wipe.
func (b *Base) BindWipe(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wipe = fn
}

// Wipe removes the instance from whichever cache it is registered in. It is a
// no-op for instances no cache has claimed.
func (b *Base) Wipe() {
	b.mu.Lock()
	fn := b.wipe
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// equalAttr compares attribute values without panicking on uncomparable
// types; those always count as changed.
func equalAttr(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// sortedSubIDs returns subscription ids in registration order, which is the
// delivery order callers observe.
func sortedSubIDs[F any](subs map[int]F) []int {
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
