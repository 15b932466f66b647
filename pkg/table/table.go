// pkg/table/table.go
// Package table implements the relational store and the algebra over it:
// a schema-aware tuple list with a primary-key index, and the
// project/select/union/minus/join operators producing new tables.
package table

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"minirel/pkg/index"
	"minirel/pkg/schema"
	"minirel/pkg/types"
)

var (
	ErrSchemaMismatch = errors.New("incompatible schemas")
	ErrDuplicateKey   = errors.New("duplicate primary key")
	ErrNotPrimaryKey  = errors.New("attribute is not the relation's primary key")
)

// Table is one relation: a schema, the stored tuples in insertion order,
// and an index over the primary-key projections.
type Table struct {
	schema *schema.Schema
	tuples []types.Tuple
	index  index.Map
	kind   index.Kind
}

// New creates an empty table indexed by the given structure.
func New(s *schema.Schema, kind index.Kind) *Table {
	return &Table{
		schema: s,
		index:  index.New(kind),
		kind:   kind,
	}
}

// Schema returns the table's schema.
func (t *Table) Schema() *schema.Schema {
	return t.schema
}

// Tuples returns the stored tuples in insertion order. The slice is
// shared with the table and must not be modified.
func (t *Table) Tuples() []types.Tuple {
	return t.tuples
}

// Size returns the number of stored tuples.
func (t *Table) Size() int {
	return len(t.tuples)
}

// IndexKind reports which structure backs the primary-key index.
func (t *Table) IndexKind() index.Kind {
	return t.kind
}

// Insert validates the tuple against the schema, appends it and indexes
// it by its primary-key projection. Type mismatches and duplicate keys
// are rejected without side effects.
func (t *Table) Insert(tu types.Tuple) error {
	if err := t.schema.TypeCheck(tu); err != nil {
		return err
	}
	k := t.schema.KeyOf(tu)
	if _, ok := t.index.Get(k); ok {
		return fmt.Errorf("%w: %v in %s", ErrDuplicateKey, k, t.schema.Name)
	}
	tu = tu.Clone()
	t.tuples = append(t.tuples, tu)
	return t.index.Put(t.schema.KeyOf(tu), tu)
}

// appendDerived adds an operator-built tuple, indexing it only if its
// key is not yet present. Operators may legally produce key collisions
// (a projection that drops key attributes); the tuple list still records
// every row.
func (t *Table) appendDerived(tu types.Tuple) {
	k := t.schema.KeyOf(tu)
	if _, ok := t.index.Get(k); !ok {
		t.index.Put(k, tu)
	}
	t.tuples = append(t.tuples, tu)
}

// Project returns a new table holding the named attributes of every
// tuple, in the source's insertion order. The primary key survives iff
// fully retained; otherwise the projected attributes become the key.
func (t *Table) Project(attrs ...string) (*Table, error) {
	ps, err := t.schema.Project(t.schema.Name, attrs)
	if err != nil {
		return nil, err
	}
	out := New(ps, t.kind)
	for _, tu := range t.tuples {
		proj, err := t.schema.Extract(tu, attrs)
		if err != nil {
			return nil, err
		}
		out.appendDerived(proj)
	}
	return out, nil
}

// Select returns the tuples satisfying the predicate, preserving
// insertion order.
func (t *Table) Select(pred func(types.Tuple) bool) *Table {
	out := New(t.schema, t.kind)
	for _, tu := range t.tuples {
		if pred(tu) {
			out.appendDerived(tu)
		}
	}
	return out
}

// SelectKey looks the key up in the primary-key index. The result holds
// the unique matching tuple or is empty.
func (t *Table) SelectKey(k types.Key) *Table {
	out := New(t.schema, t.kind)
	if tu, ok := t.index.Get(k); ok {
		out.appendDerived(tu)
	}
	return out
}

// Lookup probes the primary-key index directly.
func (t *Table) Lookup(k types.Key) (types.Tuple, bool) {
	return t.index.Get(k)
}

// Fprint renders the table with a header row.
func (t *Table) Fprint(w io.Writer) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, t.schema.String())
	for _, a := range t.schema.Attrs {
		fmt.Fprintf(tw, "%s\t", a)
	}
	fmt.Fprintln(tw)
	for _, tu := range t.tuples {
		for _, v := range tu {
			fmt.Fprintf(tw, "%s\t", v.String())
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d rows)\n", len(t.tuples))
}
