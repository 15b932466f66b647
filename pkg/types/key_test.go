// pkg/types/key_test.go
package types

import "testing"

func TestKeyCompareLexicographic(t *testing.T) {
	tests := []struct {
		a, b Key
		want int
	}{
		{Key{NewInt64(1)}, Key{NewInt64(2)}, -1},
		{Key{NewInt64(2)}, Key{NewInt64(2)}, 0},
		{Key{NewInt64(1), NewText("b")}, Key{NewInt64(1), NewText("c")}, -1},
		{Key{NewInt64(2), NewText("a")}, Key{NewInt64(1), NewText("z")}, 1},
		{Key{NewText("x"), NewInt64(5)}, Key{NewText("x"), NewInt64(5)}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if tt.want < 0 && !tt.a.Less(tt.b) {
			t.Errorf("Less(%v, %v) should hold", tt.a, tt.b)
		}
	}
}

func TestKeyEqual(t *testing.T) {
	a := Key{NewInt64(1), NewText("x")}
	b := Key{NewInt64(1), NewText("x")}
	if !a.Equal(b) {
		t.Error("component-wise equal keys should be Equal")
	}
	if a.Equal(Key{NewInt64(1)}) {
		t.Error("keys of differing arity are never Equal")
	}
	if a.Equal(Key{NewInt64(1), NewText("y")}) {
		t.Error("differing components should not be Equal")
	}
}

func TestKeyHash(t *testing.T) {
	a := Key{NewInt64(1), NewText("x")}
	b := Key{NewInt64(1), NewText("x")}
	if a.Hash() != b.Hash() {
		t.Error("equal keys must hash equal")
	}
	if a.Hash() == (Key{}).Hash() {
		t.Error("empty key should not collide with a populated one")
	}
}

func TestTupleEqualAndConcat(t *testing.T) {
	a := Tuple{NewInt64(1), NewText("A")}
	b := Tuple{NewInt64(1), NewText("A")}
	if !a.Equal(b) {
		t.Error("position-wise equal tuples should be Equal")
	}
	if a.Equal(Tuple{NewInt64(1)}) {
		t.Error("tuples of differing arity are never Equal")
	}

	c := a.Concat(Tuple{NewInt64(2)})
	if len(c) != 3 || c[2].Int64() != 2 {
		t.Errorf("Concat built %v", c)
	}
	// concat copies; the source is untouched
	if len(a) != 2 {
		t.Error("Concat must not modify the receiver")
	}
}
