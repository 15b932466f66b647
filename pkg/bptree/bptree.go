// pkg/bptree/bptree.go
// Package bptree implements an in-memory order-preserving B+-tree map
// from composite keys to tuples. All tuples live in the leaves; interior
// nodes carry separators only. Leaves are chained left to right, which is
// what the range and scan operations walk.
package bptree

import (
	"errors"
	"log"

	"minirel/pkg/types"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrEmptyTree    = errors.New("empty tree")
)

// Entry is one key/tuple pair in ascending-key enumeration order.
type Entry struct {
	Key   types.Key
	Tuple types.Tuple
}

// Tree is a B+-tree of branching factor Order.
type Tree struct {
	root *node
}

// New returns an empty tree whose root is a leaf.
func New() *Tree {
	return &Tree{root: &node{leaf: true}}
}

// Get returns the tuple stored under k.
func (t *Tree) Get(k types.Key) (types.Tuple, bool) {
	nd := t.root
	for !nd.leaf {
		nd = nd.children[nd.childIndex(k)]
	}
	for i := 0; i < nd.n; i++ {
		if k.Compare(nd.keys[i]) == 0 {
			return nd.tuples[i], true
		}
	}
	return nil, false
}

// Put inserts the pair. A key equal to one already present is rejected
// with ErrDuplicateKey; the tree is not modified.
func (t *Tree) Put(k types.Key, tuple types.Tuple) error {
	sr, err := t.insert(t.root, k, tuple)
	if err != nil {
		log.Printf("bptree: put %v rejected: %v", k, err)
		return err
	}
	if sr != nil {
		// root split: the tree grows one level
		root := &node{n: 1}
		root.keys[0] = sr.key
		root.children[0] = t.root
		root.children[1] = sr.right
		t.root = root
	}
	return nil
}

// insert descends to the target leaf, splitting on the way back up.
// Any key equality observed on the descent path is a duplicate.
func (t *Tree) insert(nd *node, k types.Key, tuple types.Tuple) (*splitResult, error) {
	pos := 0
	for pos < nd.n {
		c := k.Compare(nd.keys[pos])
		if c == 0 {
			return nil, ErrDuplicateKey
		}
		if c < 0 {
			break
		}
		pos++
	}

	if nd.leaf {
		if nd.n < maxKeys {
			nd.insertLeaf(pos, k, tuple)
			return nil, nil
		}
		return nd.splitLeaf(pos, k, tuple), nil
	}

	sr, err := t.insert(nd.children[pos], k, tuple)
	if err != nil || sr == nil {
		return nil, err
	}
	if nd.n < maxKeys {
		nd.insertChild(pos, sr.key, sr.right)
		return nil, nil
	}
	return nd.splitInternal(pos, sr.key, sr.right), nil
}

// firstLeaf follows the left spine down to the minimum leaf.
func (t *Tree) firstLeaf() *node {
	nd := t.root
	for !nd.leaf {
		nd = nd.children[0]
	}
	return nd
}

// FirstKey returns the minimum key.
func (t *Tree) FirstKey() (types.Key, error) {
	nd := t.firstLeaf()
	if nd.n == 0 {
		return nil, ErrEmptyTree
	}
	return nd.keys[0], nil
}

// LastKey returns the maximum key.
func (t *Tree) LastKey() (types.Key, error) {
	nd := t.root
	for !nd.leaf {
		nd = nd.children[nd.n]
	}
	if nd.n == 0 {
		return nil, ErrEmptyTree
	}
	return nd.keys[nd.n-1], nil
}

// Size returns the number of stored keys, computed by walking the leaf
// chain.
func (t *Tree) Size() int {
	total := 0
	for nd := t.firstLeaf(); nd != nil; nd = nd.next {
		total += nd.n
	}
	return total
}

// Depth returns the number of levels from the root to the leaves.
func (t *Tree) Depth() int {
	d := 1
	for nd := t.root; !nd.leaf; nd = nd.children[0] {
		d++
	}
	return d
}

// Entries returns every pair in ascending key order.
func (t *Tree) Entries() []Entry {
	var out []Entry
	for nd := t.firstLeaf(); nd != nil; nd = nd.next {
		for i := 0; i < nd.n; i++ {
			out = append(out, Entry{Key: nd.keys[i], Tuple: nd.tuples[i]})
		}
	}
	return out
}

// seek positions on the first entry whose key is >= k, returning its leaf
// and position, or (nil, 0) past the end.
func (t *Tree) seek(k types.Key) (*node, int) {
	nd := t.root
	for !nd.leaf {
		nd = nd.children[nd.childIndex(k)]
	}
	for i := 0; i < nd.n; i++ {
		if k.Compare(nd.keys[i]) <= 0 {
			return nd, i
		}
	}
	if nd.next != nil && nd.next.n > 0 {
		return nd.next, 0
	}
	return nil, 0
}

// HeadMap returns the entries with keys strictly below to, ascending.
func (t *Tree) HeadMap(to types.Key) []Entry {
	var out []Entry
	for nd := t.firstLeaf(); nd != nil; nd = nd.next {
		for i := 0; i < nd.n; i++ {
			if nd.keys[i].Compare(to) >= 0 {
				return out
			}
			out = append(out, Entry{Key: nd.keys[i], Tuple: nd.tuples[i]})
		}
	}
	return out
}

// TailMap returns the entries with keys in [from, lastKey], ascending.
func (t *Tree) TailMap(from types.Key) []Entry {
	var out []Entry
	nd, pos := t.seek(from)
	for ; nd != nil; nd = nd.next {
		for i := pos; i < nd.n; i++ {
			out = append(out, Entry{Key: nd.keys[i], Tuple: nd.tuples[i]})
		}
		pos = 0
	}
	return out
}

// SubMap returns the entries with keys in the half-open range [from, to),
// ascending.
func (t *Tree) SubMap(from, to types.Key) []Entry {
	var out []Entry
	nd, pos := t.seek(from)
	for ; nd != nil; nd = nd.next {
		for i := pos; i < nd.n; i++ {
			if nd.keys[i].Compare(to) >= 0 {
				return out
			}
			out = append(out, Entry{Key: nd.keys[i], Tuple: nd.tuples[i]})
		}
		pos = 0
	}
	return out
}
