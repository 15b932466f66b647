// pkg/linhash/linhash.go
// Package linhash implements a linear-hashing map from composite keys to
// tuples. Home buckets grow one at a time under a split pointer; a full
// home bucket spills into an overflow chain rather than splitting
// immediately. Every insert that leaves the load factor at or above one
// triggers a single controlled split. The factor is measured against the
// round size mod1, so within a round it can exceed one (by less than
// 1/SlotsPerBucket) until the split pointer wraps and the round doubles.
package linhash

import (
	"minirel/pkg/types"
)

// SlotsPerBucket is the fixed bucket capacity.
const SlotsPerBucket = 4

const initialBuckets = 4

// Entry is one stored key/tuple pair.
type Entry struct {
	Key   types.Key
	Tuple types.Tuple
}

type bucket struct {
	n      int
	keys   [SlotsPerBucket]types.Key
	tuples [SlotsPerBucket]types.Tuple
	next   *bucket // overflow chain
}

// Map is a linear-hashing key/tuple map. Keys are unique; putting an
// equal key overwrites.
type Map struct {
	mod1    int // home buckets in the current round
	mod2    int // 2*mod1, used below the split pointer
	split   int // next home bucket to split, in [0, mod1)
	buckets []*bucket
	size    int
}

// New returns an empty map with four home buckets.
func New() *Map {
	m := &Map{mod1: initialBuckets, mod2: 2 * initialBuckets}
	m.buckets = make([]*bucket, initialBuckets)
	for i := range m.buckets {
		m.buckets[i] = &bucket{}
	}
	return m
}

// home selects the home bucket index for k: h mod mod1, redirected
// through mod2 when the low index has already been split this round.
func (m *Map) home(k types.Key) int {
	h := k.Hash()
	i := int(h % uint64(m.mod1))
	if i < m.split {
		i = int(h % uint64(m.mod2))
	}
	return i
}

// Get walks the chain of k's home bucket.
func (m *Map) Get(k types.Key) (types.Tuple, bool) {
	for b := m.buckets[m.home(k)]; b != nil; b = b.next {
		for i := 0; i < b.n; i++ {
			if b.keys[i].Equal(k) {
				return b.tuples[i], true
			}
		}
	}
	return nil, false
}

// Put stores the pair, overwriting an equal key. When the load factor
// reaches one, the bucket under the split pointer is split and the
// pointer advances, doubling the round when it wraps.
func (m *Map) Put(k types.Key, t types.Tuple) error {
	b := m.buckets[m.home(k)]
	for {
		for i := 0; i < b.n; i++ {
			if b.keys[i].Equal(k) {
				b.tuples[i] = t
				return nil
			}
		}
		if b.next == nil {
			break
		}
		b = b.next
	}

	if b.n == SlotsPerBucket {
		b.next = &bucket{}
		b = b.next
	}
	b.keys[b.n] = k
	b.tuples[b.n] = t
	b.n++
	m.size++

	if m.loadFactor() >= 1.0 {
		m.splitNext()
	}
	return nil
}

// loadFactor is keys per home-bucket slot across the current round.
func (m *Map) loadFactor() float64 {
	return float64(m.size) / float64(SlotsPerBucket*m.mod1)
}

// splitNext allocates the home bucket at mod1+split, rehashes the chain
// at the split pointer under mod2, and advances the pointer.
func (m *Map) splitNext() {
	old := m.buckets[m.split]
	stay := &bucket{}
	moved := &bucket{}
	m.buckets[m.split] = stay
	m.buckets = append(m.buckets, moved)

	for b := old; b != nil; b = b.next {
		for i := 0; i < b.n; i++ {
			dst := stay
			if int(b.keys[i].Hash()%uint64(m.mod2)) != m.split {
				dst = moved
			}
			dst = lastWithRoom(dst)
			dst.keys[dst.n] = b.keys[i]
			dst.tuples[dst.n] = b.tuples[i]
			dst.n++
		}
	}

	m.split++
	if m.split == m.mod1 {
		m.split = 0
		m.mod1 *= 2
		m.mod2 = 2 * m.mod1
	}
}

// lastWithRoom walks b's chain to a bucket with a free slot, extending
// the chain if every bucket is full.
func lastWithRoom(b *bucket) *bucket {
	for {
		if b.n < SlotsPerBucket {
			return b
		}
		if b.next == nil {
			b.next = &bucket{}
		}
		b = b.next
	}
}

// Entries returns all stored pairs. Order is not meaningful.
func (m *Map) Entries() []Entry {
	var out []Entry
	for _, head := range m.buckets {
		for b := head; b != nil; b = b.next {
			for i := 0; i < b.n; i++ {
				out = append(out, Entry{Key: b.keys[i], Tuple: b.tuples[i]})
			}
		}
	}
	return out
}

// Size returns the number of stored keys.
func (m *Map) Size() int {
	return m.size
}

// Mod1 returns the current round size.
func (m *Map) Mod1() int { return m.mod1 }

// Split returns the split pointer position.
func (m *Map) Split() int { return m.split }

// BucketCount returns the number of home buckets allocated so far.
func (m *Map) BucketCount() int { return len(m.buckets) }
