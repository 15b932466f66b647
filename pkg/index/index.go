// pkg/index/index.go
// Package index defines the mapping contract shared by the engine's
// associative index structures. This allows a table to use the B+-tree,
// the extendible-hashing map or the linear-hashing map as its primary-key
// index without caring which one it got.
package index

import (
	"minirel/pkg/types"
)

// Entry is one key/tuple pair stored in an index.
type Entry struct {
	Key   types.Key
	Tuple types.Tuple
}

// Map is the contract every index structure satisfies.
type Map interface {
	// Get retrieves the tuple stored under k.
	Get(k types.Key) (types.Tuple, bool)

	// Put stores t under k. The hashed maps overwrite an equal key;
	// the B+-tree rejects it with ErrDuplicateKey.
	Put(k types.Key, t types.Tuple) error

	// Entries returns all stored pairs. Ordered implementations return
	// them in ascending key order.
	Entries() []Entry

	// Size returns the number of stored keys.
	Size() int
}

// OrderedMap extends Map with the order-dependent operations only an
// order-preserving structure can offer. Range operators gate on this
// capability.
type OrderedMap interface {
	Map

	// FirstKey returns the minimum key. Errors on an empty map.
	FirstKey() (types.Key, error)

	// LastKey returns the maximum key. Errors on an empty map.
	LastKey() (types.Key, error)

	// HeadMap returns the entries with keys below to, ascending.
	HeadMap(to types.Key) []Entry

	// TailMap returns the entries with keys at or above from, up to and
	// including the last key, ascending.
	TailMap(from types.Key) []Entry

	// SubMap returns the entries with keys in [from, to), ascending.
	SubMap(from, to types.Key) []Entry
}

// AsOrdered returns the map as an OrderedMap, or nil if the
// implementation does not preserve key order.
func AsOrdered(m Map) OrderedMap {
	if om, ok := m.(OrderedMap); ok {
		return om
	}
	return nil
}
