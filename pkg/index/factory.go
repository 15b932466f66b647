// pkg/index/factory.go
package index

import (
	"fmt"

	"minirel/pkg/bptree"
	"minirel/pkg/exthash"
	"minirel/pkg/linhash"
	"minirel/pkg/types"
)

// Kind specifies which index structure to build.
type Kind int

const (
	// KindBPTree is the order-preserving B+-tree (the default).
	KindBPTree Kind = iota
	// KindExtHash is the extendible-hashing map.
	KindExtHash
	// KindLinHash is the linear-hashing map.
	KindLinHash
)

// String returns the name used for the kind in config and snapshots.
func (k Kind) String() string {
	switch k {
	case KindBPTree:
		return "bptree"
	case KindExtHash:
		return "exthash"
	case KindLinHash:
		return "linhash"
	default:
		return "unknown"
	}
}

// ParseKind resolves an index kind name.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "bptree":
		return KindBPTree, nil
	case "exthash":
		return KindExtHash, nil
	case "linhash":
		return KindLinHash, nil
	default:
		return 0, fmt.Errorf("unknown index kind %q", name)
	}
}

// New builds an empty index of the given kind.
func New(kind Kind) Map {
	switch kind {
	case KindExtHash:
		return &extHashAdapter{exthash.New()}
	case KindLinHash:
		return &linHashAdapter{linhash.New()}
	default:
		return &bptreeAdapter{bptree.New()}
	}
}

// KindOf reports which structure backs the map.
func KindOf(m Map) Kind {
	switch m.(type) {
	case *extHashAdapter:
		return KindExtHash
	case *linHashAdapter:
		return KindLinHash
	default:
		return KindBPTree
	}
}

// bptreeAdapter adapts bptree.Tree to the OrderedMap interface.
type bptreeAdapter struct {
	tree *bptree.Tree
}

func (a *bptreeAdapter) Get(k types.Key) (types.Tuple, bool) {
	return a.tree.Get(k)
}

func (a *bptreeAdapter) Put(k types.Key, t types.Tuple) error {
	return a.tree.Put(k, t)
}

func (a *bptreeAdapter) Entries() []Entry {
	return convertBP(a.tree.Entries())
}

func (a *bptreeAdapter) Size() int {
	return a.tree.Size()
}

func (a *bptreeAdapter) FirstKey() (types.Key, error) {
	return a.tree.FirstKey()
}

func (a *bptreeAdapter) LastKey() (types.Key, error) {
	return a.tree.LastKey()
}

func (a *bptreeAdapter) HeadMap(to types.Key) []Entry {
	return convertBP(a.tree.HeadMap(to))
}

func (a *bptreeAdapter) TailMap(from types.Key) []Entry {
	return convertBP(a.tree.TailMap(from))
}

func (a *bptreeAdapter) SubMap(from, to types.Key) []Entry {
	return convertBP(a.tree.SubMap(from, to))
}

func convertBP(in []bptree.Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Key: e.Key, Tuple: e.Tuple}
	}
	return out
}

// extHashAdapter adapts exthash.Map to the Map interface.
type extHashAdapter struct {
	m *exthash.Map
}

func (a *extHashAdapter) Get(k types.Key) (types.Tuple, bool) {
	return a.m.Get(k)
}

func (a *extHashAdapter) Put(k types.Key, t types.Tuple) error {
	return a.m.Put(k, t)
}

func (a *extHashAdapter) Entries() []Entry {
	in := a.m.Entries()
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Key: e.Key, Tuple: e.Tuple}
	}
	return out
}

func (a *extHashAdapter) Size() int {
	return a.m.Size()
}

// linHashAdapter adapts linhash.Map to the Map interface.
type linHashAdapter struct {
	m *linhash.Map
}

func (a *linHashAdapter) Get(k types.Key) (types.Tuple, bool) {
	return a.m.Get(k)
}

func (a *linHashAdapter) Put(k types.Key, t types.Tuple) error {
	return a.m.Put(k, t)
}

func (a *linHashAdapter) Entries() []Entry {
	in := a.m.Entries()
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Key: e.Key, Tuple: e.Tuple}
	}
	return out
}

func (a *linHashAdapter) Size() int {
	return a.m.Size()
}
