// pkg/table/algebra.go
package table

import (
	"fmt"

	"minirel/pkg/schema"
	"minirel/pkg/types"
)

// Union returns this table's tuples followed by the other's tuples whose
// value is not already present: set union by tuple value equality.
func (t *Table) Union(o *Table) (*Table, error) {
	if !t.schema.Compatible(o.schema) {
		return nil, fmt.Errorf("%w: %s union %s", ErrSchemaMismatch, t.schema.Name, o.schema.Name)
	}
	out := New(t.schema, t.kind)
	for _, tu := range t.tuples {
		if !tupleIn(out.tuples, tu) {
			out.appendDerived(tu)
		}
	}
	for _, tu := range o.tuples {
		if !tupleIn(out.tuples, tu) {
			out.appendDerived(tu)
		}
	}
	return out, nil
}

// Minus returns this table's tuples whose value equals no tuple of the
// other table.
func (t *Table) Minus(o *Table) (*Table, error) {
	if !t.schema.Compatible(o.schema) {
		return nil, fmt.Errorf("%w: %s minus %s", ErrSchemaMismatch, t.schema.Name, o.schema.Name)
	}
	out := New(t.schema, t.kind)
	for _, tu := range t.tuples {
		if !tupleIn(o.tuples, tu) {
			out.appendDerived(tu)
		}
	}
	return out, nil
}

// Join equi-joins on the listed attribute pairs with a nested loop,
// outer over this table, preserving both insertion orders. The result
// schema concatenates the attribute lists, renaming right-side
// duplicates with a 2 suffix.
func (t *Table) Join(attrsL, attrsR []string, o *Table) (*Table, error) {
	if len(attrsL) != len(attrsR) {
		return nil, fmt.Errorf("%w: %d join attributes against %d",
			ErrSchemaMismatch, len(attrsL), len(attrsR))
	}
	posL, err := t.schema.Match(attrsL)
	if err != nil {
		return nil, err
	}
	posR, err := o.schema.Match(attrsR)
	if err != nil {
		return nil, err
	}

	js, err := joinSchema(t.schema, o.schema)
	if err != nil {
		return nil, err
	}
	out := New(js, t.kind)
	for _, l := range t.tuples {
		for _, r := range o.tuples {
			if joinMatch(l, r, posL, posR) {
				out.appendDerived(l.Concat(r))
			}
		}
	}
	return out, nil
}

// IndexJoin equi-joins by probing the other table's primary-key index
// with this table's value at attrL. attrR must be the other table's
// primary key.
func (t *Table) IndexJoin(attrL, attrR string, o *Table) (*Table, error) {
	if len(o.schema.Key) != 1 || o.schema.Key[0] != attrR {
		return nil, fmt.Errorf("%w: %q in %s", ErrNotPrimaryKey, attrR, o.schema.Name)
	}
	posL, err := t.schema.Match([]string{attrL})
	if err != nil {
		return nil, err
	}

	js, err := joinSchema(t.schema, o.schema)
	if err != nil {
		return nil, err
	}
	out := New(js, t.kind)
	for _, l := range t.tuples {
		if r, ok := o.index.Get(types.Key{l[posL[0]]}); ok {
			out.appendDerived(l.Concat(r))
		}
	}
	return out, nil
}

// joinSchema concatenates the two schemas. Right-side attribute names
// already taken by the left side gain a 2 suffix; the key is the
// concatenation of both keys under the same renaming.
func joinSchema(l, r *schema.Schema) (*schema.Schema, error) {
	attrs := make([]string, 0, len(l.Attrs)+len(r.Attrs))
	domains := make([]types.ValueType, 0, len(l.Domains)+len(r.Domains))
	attrs = append(attrs, l.Attrs...)
	domains = append(domains, l.Domains...)

	rename := make(map[string]string, len(r.Attrs))
	for i, a := range r.Attrs {
		name := a
		if l.Column(a) >= 0 {
			name = a + "2"
		}
		rename[a] = name
		attrs = append(attrs, name)
		domains = append(domains, r.Domains[i])
	}

	key := make([]string, 0, len(l.Key)+len(r.Key))
	key = append(key, l.Key...)
	for _, k := range r.Key {
		key = append(key, rename[k])
	}
	return schema.New(l.Name+"_"+r.Name, attrs, domains, key)
}

func joinMatch(l, r types.Tuple, posL, posR []int) bool {
	for i := range posL {
		if !l[posL[i]].Equal(r[posR[i]]) {
			return false
		}
	}
	return true
}

func tupleIn(set []types.Tuple, tu types.Tuple) bool {
	for _, s := range set {
		if s.Equal(tu) {
			return true
		}
	}
	return false
}
