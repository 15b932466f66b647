// pkg/schema/schema.go
// Package schema defines relation schemas: attribute names, their
// domains, and the primary-key attribute list, together with the
// column-resolution and type-checking logic the table layer builds on.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"minirel/pkg/types"
)

var (
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrColumnNotFound = errors.New("column not found")
	ErrTypeMismatch   = errors.New("type mismatch")
)

// Schema describes one relation: its name, ordered attribute names,
// their domains, and the primary-key attributes.
type Schema struct {
	Name    string
	Attrs   []string
	Domains []types.ValueType
	Key     []string

	keyPos []int // cached positions of Key within Attrs
}

// New validates and builds a schema. Attribute names must be unique and
// as numerous as the domains; the key must be a non-empty subset of the
// attributes.
func New(name string, attrs []string, domains []types.ValueType, key []string) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty relation name", ErrInvalidSchema)
	}
	if len(attrs) == 0 || len(attrs) != len(domains) {
		return nil, fmt.Errorf("%w: %d attributes, %d domains", ErrInvalidSchema, len(attrs), len(domains))
	}
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if a == "" {
			return nil, fmt.Errorf("%w: empty attribute name", ErrInvalidSchema)
		}
		if seen[a] {
			return nil, fmt.Errorf("%w: duplicate attribute %q", ErrInvalidSchema, a)
		}
		seen[a] = true
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty primary key", ErrInvalidSchema)
	}

	s := &Schema{Name: name, Attrs: attrs, Domains: domains, Key: key}
	pos, err := s.Match(key)
	if err != nil {
		return nil, fmt.Errorf("%w: key %v", ErrInvalidSchema, key)
	}
	s.keyPos = pos
	return s, nil
}

// Arity returns the number of attributes.
func (s *Schema) Arity() int {
	return len(s.Attrs)
}

// Column returns the position of the named attribute, or -1.
func (s *Schema) Column(name string) int {
	for i, a := range s.Attrs {
		if a == name {
			return i
		}
	}
	return -1
}

// Match resolves the named columns to their positions in the schema.
// An unmatched name is an error the caller must honor.
func (s *Schema) Match(cols []string) ([]int, error) {
	pos := make([]int, len(cols))
	for i, c := range cols {
		p := s.Column(c)
		if p < 0 {
			return nil, fmt.Errorf("%w: %q in relation %s", ErrColumnNotFound, c, s.Name)
		}
		pos[i] = p
	}
	return pos, nil
}

// Extract builds the projection of t onto the named columns by
// positional copy.
func (s *Schema) Extract(t types.Tuple, cols []string) (types.Tuple, error) {
	pos, err := s.Match(cols)
	if err != nil {
		return nil, err
	}
	out := make(types.Tuple, len(pos))
	for i, p := range pos {
		out[i] = t[p]
	}
	return out, nil
}

// TypeCheck confirms the tuple's arity and per-position domain
// membership. A matching tuple passes; any mismatch rejects.
func (s *Schema) TypeCheck(t types.Tuple) error {
	if len(t) != len(s.Domains) {
		return fmt.Errorf("%w: arity %d, want %d", ErrTypeMismatch, len(t), len(s.Domains))
	}
	for i, v := range t {
		if v.Type() != s.Domains[i] {
			return fmt.Errorf("%w: attribute %q is %s, got %s",
				ErrTypeMismatch, s.Attrs[i], s.Domains[i], v.Type())
		}
	}
	return nil
}

// Compatible reports whether the two schemas have equal arity and
// position-wise equal domains. Union and difference require it.
func (s *Schema) Compatible(o *Schema) bool {
	if len(s.Domains) != len(o.Domains) {
		return false
	}
	for i := range s.Domains {
		if s.Domains[i] != o.Domains[i] {
			return false
		}
	}
	return true
}

// KeyOf projects the primary key out of a schema-conforming tuple.
func (s *Schema) KeyOf(t types.Tuple) types.Key {
	k := make(types.Key, len(s.keyPos))
	for i, p := range s.keyPos {
		k[i] = t[p]
	}
	return k
}

// Project derives the schema of a projection onto attrs, named after the
// source relation. The primary key survives iff every key attribute is
// retained; otherwise the projected attributes become the key.
func (s *Schema) Project(name string, attrs []string) (*Schema, error) {
	pos, err := s.Match(attrs)
	if err != nil {
		return nil, err
	}
	domains := make([]types.ValueType, len(pos))
	for i, p := range pos {
		domains[i] = s.Domains[p]
	}

	key := s.Key
	if !containsAll(attrs, s.Key) {
		key = attrs
	}
	return New(name, attrs, domains, key)
}

// String renders the schema as name(attr:type, ...) key(a, b).
func (s *Schema) String() string {
	cols := make([]string, len(s.Attrs))
	for i, a := range s.Attrs {
		cols[i] = a + ":" + s.Domains[i].String()
	}
	return fmt.Sprintf("%s(%s) key(%s)", s.Name, strings.Join(cols, ", "), strings.Join(s.Key, ", "))
}

func containsAll(set, want []string) bool {
	for _, w := range want {
		found := false
		for _, a := range set {
			if a == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
