package modelmap

import (
	"errors"
	"iter"
	"testing"

	"github.com/goliatone/go-identity-map/model"
)

func TestWipe_SingleInstance(t *testing.T) {
	users := newUserType(t)

	u := users.Create(model.Attributes{"id": 1})
	c := users.Create(model.Attributes{"id": 3})

	if err := users.Wipe(u); err != nil {
		t.Fatalf("Wipe(instance) error: %v", err)
	}
	if _, ok := users.Cached(1); ok {
		t.Error("wiped instance still cached")
	}
	if got, _ := users.Cached(3); got != c {
		t.Error("untouched instance should remain cached")
	}
}

func TestWipe_ByID(t *testing.T) {
	users := newUserType(t)
	users.Create(model.Attributes{"id": "u-1"})

	if err := users.Wipe("u-1"); err != nil {
		t.Fatalf("Wipe(id) error: %v", err)
	}
	if users.Len() != 0 {
		t.Errorf("Len() = %d after id wipe, want 0", users.Len())
	}
}

func TestWipe_Slice(t *testing.T) {
	users := newUserType(t)

	a := users.Create(model.Attributes{"id": 1})
	b := users.Create(model.Attributes{"id": 2})
	c := users.Create(model.Attributes{"id": 3})

	if err := users.Wipe([]*model.Base{a, b}); err != nil {
		t.Fatalf("Wipe(slice) error: %v", err)
	}
	if _, ok := users.Cached(1); ok {
		t.Error("a still cached")
	}
	if _, ok := users.Cached(2); ok {
		t.Error("b still cached")
	}
	if got, _ := users.Cached(3); got != c {
		t.Error("c should remain cached")
	}
}

func TestWipe_MixedSlice(t *testing.T) {
	users := newUserType(t)

	a := users.Create(model.Attributes{"id": 1})
	users.Create(model.Attributes{"id": 2})

	if err := users.Wipe([]any{a, 2}); err != nil {
		t.Fatalf("Wipe(mixed) error: %v", err)
	}
	if users.Len() != 0 {
		t.Errorf("Len() = %d, want 0", users.Len())
	}
}

func TestWipe_Sequence(t *testing.T) {
	users := newUserType(t)

	a := users.Create(model.Attributes{"id": 1})
	b := users.Create(model.Attributes{"id": 2})

	seq := iter.Seq[*model.Base](func(yield func(*model.Base) bool) {
		if !yield(a) {
			return
		}
		yield(b)
	})

	if err := users.Wipe(seq); err != nil {
		t.Fatalf("Wipe(seq) error: %v", err)
	}
	if users.Len() != 0 {
		t.Errorf("Len() = %d, want 0", users.Len())
	}
}

func TestWipe_CacheOnly(t *testing.T) {
	users := newUserType(t)

	u := users.Create(model.Attributes{"id": 1, "name": "Ann"})
	if err := users.Wipe(u); err != nil {
		t.Fatalf("Wipe() error: %v", err)
	}

	// The external reference stays valid and usable.
	if got := u.Attribute("name"); got != "Ann" {
		t.Errorf("wiped instance lost attributes: name = %v", got)
	}
	u.Set("name", "Annette")
	if got := u.Attribute("name"); got != "Annette" {
		t.Error("wiped instance should remain mutable")
	}
}

func TestWipe_Idempotent(t *testing.T) {
	users := newUserType(t)

	u := users.Create(model.Attributes{"id": 1})
	other := users.Create(model.Attributes{"id": 2})

	if err := users.Wipe(u); err != nil {
		t.Fatalf("first Wipe() error: %v", err)
	}
	if err := users.Wipe(u); err != nil {
		t.Errorf("second Wipe() error: %v", err)
	}

	never := model.NewBase(model.Attributes{"id": 99})
	if err := users.Wipe(never); err != nil {
		t.Errorf("Wipe(never-cached) error: %v", err)
	}
	if err := users.Wipe("missing-id"); err != nil {
		t.Errorf("Wipe(missing id) error: %v", err)
	}

	if users.Len() != 1 {
		t.Errorf("Len() = %d, want the untouched entry to survive", users.Len())
	}
	if got, _ := users.Cached(2); got != other {
		t.Error("untouched entry changed")
	}
}

func TestWipe_InstanceScoped(t *testing.T) {
	users := newUserType(t)

	u := users.Create(model.Attributes{"id": 1})
	u.Wipe()

	if users.Len() != 0 {
		t.Errorf("Len() = %d after instance wipe, want 0", users.Len())
	}
	u.Wipe() // idempotent
}

func TestWipe_MalformedTarget(t *testing.T) {
	users := newUserType(t)

	err := users.Wipe(struct{ X int }{1})
	var wipeErr *WipeTargetError
	if !errors.As(err, &wipeErr) {
		t.Fatalf("Wipe(struct) error = %v, want *WipeTargetError", err)
	}

	if err := users.Wipe(nil); err == nil {
		t.Error("Wipe(nil) should report a malformed target")
	}
}
