// pkg/bptree/bptree_test.go
package bptree

import (
	"errors"
	"testing"

	"minirel/pkg/types"
)

func intKey(i int64) types.Key {
	return types.Key{types.NewInt64(i)}
}

func intTuple(vals ...int64) types.Tuple {
	tu := make(types.Tuple, len(vals))
	for i, v := range vals {
		tu[i] = types.NewInt64(v)
	}
	return tu
}

// squares builds the i -> i*i tree used across these tests.
func squares(t *testing.T, n int64) *Tree {
	t.Helper()
	tr := New()
	for i := int64(1); i <= n; i++ {
		if err := tr.Put(intKey(i), intTuple(i*i)); err != nil {
			t.Fatalf("put %d failed: %v", i, err)
		}
	}
	return tr
}

func TestPutAndGet(t *testing.T) {
	tr := New()
	if err := tr.Put(intKey(42), intTuple(1764)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	tu, ok := tr.Get(intKey(42))
	if !ok {
		t.Fatal("get missed an inserted key")
	}
	if tu[0].Int64() != 1764 {
		t.Errorf("expected 1764, got %d", tu[0].Int64())
	}
	if _, ok := tr.Get(intKey(7)); ok {
		t.Error("get found a key that was never inserted")
	}
}

func TestGrowthToThirteen(t *testing.T) {
	tr := New()
	for i := int64(1); i <= 4; i++ {
		if err := tr.Put(intKey(i), intTuple(i*i)); err != nil {
			t.Fatalf("put %d failed: %v", i, err)
		}
	}
	if d := tr.Depth(); d != 1 {
		t.Errorf("after 4 keys depth = %d, want 1", d)
	}

	// the fifth key splits the root leaf
	if err := tr.Put(intKey(5), intTuple(25)); err != nil {
		t.Fatalf("put 5 failed: %v", err)
	}
	if d := tr.Depth(); d != 2 {
		t.Errorf("after 5 keys depth = %d, want 2", d)
	}

	for i := int64(6); i <= 13; i++ {
		if err := tr.Put(intKey(i), intTuple(i*i)); err != nil {
			t.Fatalf("put %d failed: %v", i, err)
		}
	}

	first, err := tr.FirstKey()
	if err != nil {
		t.Fatalf("FirstKey failed: %v", err)
	}
	if first[0].Int64() != 1 {
		t.Errorf("FirstKey = %v, want 1", first)
	}
	last, err := tr.LastKey()
	if err != nil {
		t.Fatalf("LastKey failed: %v", err)
	}
	if last[0].Int64() != 13 {
		t.Errorf("LastKey = %v, want 13", last)
	}
	if s := tr.Size(); s != 13 {
		t.Errorf("Size = %d, want 13", s)
	}

	// the leaf chain enumerates the squares in key order
	entries := tr.Entries()
	if len(entries) != 13 {
		t.Fatalf("Entries returned %d pairs, want 13", len(entries))
	}
	for i, e := range entries {
		k := int64(i + 1)
		if e.Key[0].Int64() != k || e.Tuple[0].Int64() != k*k {
			t.Errorf("entry %d = %v -> %v, want %d -> %d", i, e.Key, e.Tuple, k, k*k)
		}
	}

	for i := int64(1); i <= 13; i++ {
		tu, ok := tr.Get(intKey(i))
		if !ok || tu[0].Int64() != i*i {
			t.Errorf("get %d after growth: ok=%v tuple=%v", i, ok, tu)
		}
	}
}

func TestSubMapRange(t *testing.T) {
	tr := squares(t, 13)
	entries := tr.SubMap(intKey(4), intKey(10))
	want := []int64{4, 5, 6, 7, 8, 9}
	if len(entries) != len(want) {
		t.Fatalf("SubMap(4,10) returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Key[0].Int64() != want[i] || e.Tuple[0].Int64() != want[i]*want[i] {
			t.Errorf("SubMap entry %d = %v -> %v, want %d -> %d",
				i, e.Key, e.Tuple, want[i], want[i]*want[i])
		}
	}
}

func TestHeadAndTailMap(t *testing.T) {
	tr := squares(t, 13)

	head := tr.HeadMap(intKey(4))
	if len(head) != 3 {
		t.Fatalf("HeadMap(4) returned %d entries, want 3", len(head))
	}
	if head[len(head)-1].Key[0].Int64() != 3 {
		t.Errorf("HeadMap(4) must be upper-exclusive, last key %v", head[len(head)-1].Key)
	}

	// tailMap is inclusive of the last key
	tail := tr.TailMap(intKey(10))
	if len(tail) != 4 {
		t.Fatalf("TailMap(10) returned %d entries, want 4", len(tail))
	}
	if tail[0].Key[0].Int64() != 10 || tail[len(tail)-1].Key[0].Int64() != 13 {
		t.Errorf("TailMap(10) spans %v..%v, want 10..13", tail[0].Key, tail[len(tail)-1].Key)
	}
}

func TestDuplicateRejected(t *testing.T) {
	tr := squares(t, 13)
	err := tr.Put(intKey(7), intTuple(999))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if s := tr.Size(); s != 13 {
		t.Errorf("Size after duplicate = %d, want 13", s)
	}
	tu, ok := tr.Get(intKey(7))
	if !ok || tu[0].Int64() != 49 {
		t.Errorf("duplicate put must not modify the stored tuple, got %v", tu)
	}
}

func TestEmptyTree(t *testing.T) {
	tr := New()
	if _, err := tr.FirstKey(); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("FirstKey on empty: %v, want ErrEmptyTree", err)
	}
	if _, err := tr.LastKey(); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("LastKey on empty: %v, want ErrEmptyTree", err)
	}
	if s := tr.Size(); s != 0 {
		t.Errorf("Size of empty = %d", s)
	}
	if e := tr.Entries(); len(e) != 0 {
		t.Errorf("Entries of empty = %v", e)
	}
}

func TestCompositeKeys(t *testing.T) {
	tr := New()
	names := []string{"b", "a", "c"}
	for i, n := range names {
		k := types.Key{types.NewInt64(1), types.NewText(n)}
		if err := tr.Put(k, intTuple(int64(i))); err != nil {
			t.Fatalf("put %v failed: %v", k, err)
		}
	}
	entries := tr.Entries()
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Key[1].Text()
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i] != want {
			t.Errorf("composite keys out of order: %v", got)
			break
		}
	}
}
