// pkg/exthash/exthash.go
// Package exthash implements an extendible-hashing map from composite
// keys to tuples. A power-of-two directory of bucket references grows by
// doubling; buckets split in place along the next hash bit as long as
// their local depth trails the global depth.
package exthash

import (
	"minirel/pkg/types"
)

// SlotsPerBucket is the fixed bucket capacity.
const SlotsPerBucket = 4

const initialGlobalDepth = 2 // directory starts at 2^2 entries

// Entry is one stored key/tuple pair.
type Entry struct {
	Key   types.Key
	Tuple types.Tuple
}

type bucket struct {
	depth  int // local depth: low hash bits all keys here agree on
	n      int
	keys   [SlotsPerBucket]types.Key
	tuples [SlotsPerBucket]types.Tuple
}

// Map is an extendible-hashing key/tuple map. Keys are unique; putting
// an equal key overwrites.
type Map struct {
	dir         []*bucket
	globalDepth int
	size        int
}

// New returns an empty map with a directory of four entries, each its
// own depth-2 bucket.
func New() *Map {
	m := &Map{globalDepth: initialGlobalDepth}
	m.dir = make([]*bucket, 1<<initialGlobalDepth)
	for i := range m.dir {
		m.dir[i] = &bucket{depth: initialGlobalDepth}
	}
	return m
}

// slot selects the directory slot for k: hash(k) mod 2^globalDepth.
func (m *Map) slot(k types.Key) int {
	return int(k.Hash() & uint64(len(m.dir)-1))
}

// Get returns the tuple stored under k.
func (m *Map) Get(k types.Key) (types.Tuple, bool) {
	b := m.dir[m.slot(k)]
	for i := 0; i < b.n; i++ {
		if b.keys[i].Equal(k) {
			return b.tuples[i], true
		}
	}
	return nil, false
}

// Put stores the pair, overwriting an equal key. A full bucket splits;
// if its local depth has reached the global depth, the directory doubles
// first.
func (m *Map) Put(k types.Key, t types.Tuple) error {
	for {
		b := m.dir[m.slot(k)]

		for i := 0; i < b.n; i++ {
			if b.keys[i].Equal(k) {
				b.tuples[i] = t
				return nil
			}
		}

		if b.n < SlotsPerBucket {
			b.keys[b.n] = k
			b.tuples[b.n] = t
			b.n++
			m.size++
			return nil
		}

		if b.depth == m.globalDepth {
			m.doubleDirectory()
		}
		m.splitBucket(b)
	}
}

// doubleDirectory doubles the directory, duplicating every entry. Local
// depths are untouched; the new upper half aliases the same buckets.
func (m *Map) doubleDirectory() {
	next := make([]*bucket, len(m.dir)*2)
	copy(next, m.dir)
	copy(next[len(m.dir):], m.dir)
	m.dir = next
	m.globalDepth++
}

// splitBucket splits b along hash bit b.depth, redistributing its entries
// between two depth+1 buckets, and rewires exactly the directory entries
// that referenced b.
func (m *Map) splitBucket(b *bucket) {
	bit := uint64(1) << uint(b.depth)
	lo := &bucket{depth: b.depth + 1}
	hi := &bucket{depth: b.depth + 1}

	for i := 0; i < b.n; i++ {
		dst := lo
		if b.keys[i].Hash()&bit != 0 {
			dst = hi
		}
		dst.keys[dst.n] = b.keys[i]
		dst.tuples[dst.n] = b.tuples[i]
		dst.n++
	}

	for i := range m.dir {
		if m.dir[i] != b {
			continue
		}
		if uint64(i)&bit != 0 {
			m.dir[i] = hi
		} else {
			m.dir[i] = lo
		}
	}
}

// Entries returns all stored pairs. Order is not meaningful.
func (m *Map) Entries() []Entry {
	var out []Entry
	seen := make(map[*bucket]bool)
	for _, b := range m.dir {
		if seen[b] {
			continue
		}
		seen[b] = true
		for i := 0; i < b.n; i++ {
			out = append(out, Entry{Key: b.keys[i], Tuple: b.tuples[i]})
		}
	}
	return out
}

// Size returns the number of stored keys.
func (m *Map) Size() int {
	return m.size
}

// GlobalDepth returns the number of hash bits indexing the directory.
func (m *Map) GlobalDepth() int {
	return m.globalDepth
}

// DirSize returns the directory length, 2^GlobalDepth.
func (m *Map) DirSize() int {
	return len(m.dir)
}

// LocalDepth returns the local depth of the bucket at directory slot i.
func (m *Map) LocalDepth(i int) int {
	return m.dir[i].depth
}
