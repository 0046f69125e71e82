package identity

import "testing"

func TestNormalizeKey_Primitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{name: "string", in: "user-1", want: "user-1", ok: true},
		{name: "int", in: 42, want: "42", ok: true},
		{name: "int64", in: int64(-7), want: "-7", ok: true},
		{name: "uint", in: uint(9), want: "9", ok: true},
		{name: "bool", in: true, want: "true", ok: true},
		{name: "fractional float", in: 1.5, want: "1.5", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeKey(tt.in)
			if ok != tt.ok {
				t.Fatalf("NormalizeKey(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("NormalizeKey(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey_IntegralFloatMatchesInt(t *testing.T) {
	// JSON decodes numeric ids as float64; both spellings must share a key.
	fromInt, ok := NormalizeKey(3)
	if !ok {
		t.Fatal("expected int id to normalize")
	}
	fromFloat, ok := NormalizeKey(float64(3))
	if !ok {
		t.Fatal("expected float id to normalize")
	}
	if fromInt != fromFloat {
		t.Errorf("int key %q and float key %q diverge", fromInt, fromFloat)
	}
}

func TestNormalizeKey_Pointers(t *testing.T) {
	n := 5
	got, ok := NormalizeKey(&n)
	if !ok || got != "5" {
		t.Errorf("NormalizeKey(&5) = %q, %v; want \"5\", true", got, ok)
	}

	var nilPtr *int
	if _, ok := NormalizeKey(nilPtr); ok {
		t.Error("expected nil pointer to report absent id")
	}
}

func TestNormalizeKey_Absent(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{name: "nil", in: nil},
		{name: "empty string", in: ""},
		{name: "slice", in: []int{1}},
		{name: "map", in: map[string]int{"a": 1}},
		{name: "struct", in: struct{ X int }{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := NormalizeKey(tt.in); ok {
				t.Errorf("NormalizeKey(%v) = %q, want absent", tt.in, got)
			}
		})
	}
}
