// pkg/snapshot/snapshot.go
// Package snapshot persists a whole table as an opaque byte stream and
// loads it back. The format round-trips the table's observable state:
// schema, index kind, and tuples in insertion order.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"minirel/internal/encoding"
	"minirel/pkg/index"
	"minirel/pkg/schema"
	"minirel/pkg/table"
	"minirel/pkg/types"
)

// MagicString identifies a valid snapshot stream.
const MagicString = "MREL"

// Current supported format version.
const (
	CurrentFormatVersion = 1
	MaxSupportedVersion  = 1
)

var (
	ErrInvalidMagic       = errors.New("invalid magic string: not a minirel snapshot")
	ErrUnsupportedVersion = errors.New("unsupported snapshot format version")
	ErrCorrupt            = errors.New("corrupt snapshot")
)

/*
Stream layout, after the 4-byte magic and the version and index-kind
bytes, all integers varint-encoded:

	name
	attribute count, then per attribute: name, domain tag
	key attribute count, then the key attribute names
	tuple count, then per tuple one payload per attribute:
	  integer domains  zigzag varint
	  char             varint code point
	  float32/float64  IEEE-754 bits, little endian
	  text             length-prefixed bytes
*/

// Write serializes the table to w.
func Write(t *table.Table, w io.Writer) error {
	bw := bufio.NewWriter(w)
	s := t.Schema()

	if _, err := bw.WriteString(MagicString); err != nil {
		return err
	}
	bw.WriteByte(CurrentFormatVersion)
	bw.WriteByte(byte(t.IndexKind()))

	writeString(bw, s.Name)
	writeUvarint(bw, uint64(len(s.Attrs)))
	for i, a := range s.Attrs {
		writeString(bw, a)
		bw.WriteByte(byte(s.Domains[i]))
	}
	writeUvarint(bw, uint64(len(s.Key)))
	for _, k := range s.Key {
		writeString(bw, k)
	}

	writeUvarint(bw, uint64(t.Size()))
	for _, tu := range t.Tuples() {
		for i, v := range tu {
			if err := writeValue(bw, s.Domains[i], v); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Read deserializes a table from r. The tuples are re-inserted through
// the validated insert path, so a loaded table satisfies the same
// invariants as a built one.
func Read(r io.Reader) (*table.Table, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, corrupt(err)
	}
	if string(magic[:]) != MagicString {
		return nil, ErrInvalidMagic
	}
	version, err := br.ReadByte()
	if err != nil {
		return nil, corrupt(err)
	}
	if version == 0 || version > MaxSupportedVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	kindByte, err := br.ReadByte()
	if err != nil {
		return nil, corrupt(err)
	}
	kind := index.Kind(kindByte)
	if kind != index.KindBPTree && kind != index.KindExtHash && kind != index.KindLinHash {
		return nil, fmt.Errorf("%w: unknown index kind %d", ErrCorrupt, kindByte)
	}

	name, err := readString(br)
	if err != nil {
		return nil, corrupt(err)
	}
	nAttrs, err := encoding.ReadVarint(br)
	if err != nil {
		return nil, corrupt(err)
	}
	attrs := make([]string, nAttrs)
	domains := make([]types.ValueType, nAttrs)
	for i := range attrs {
		if attrs[i], err = readString(br); err != nil {
			return nil, corrupt(err)
		}
		d, err := br.ReadByte()
		if err != nil {
			return nil, corrupt(err)
		}
		if types.ValueType(d) < types.TypeInt8 || types.ValueType(d) > types.TypeText {
			return nil, fmt.Errorf("%w: unknown domain tag %d", ErrCorrupt, d)
		}
		domains[i] = types.ValueType(d)
	}
	nKey, err := encoding.ReadVarint(br)
	if err != nil {
		return nil, corrupt(err)
	}
	key := make([]string, nKey)
	for i := range key {
		if key[i], err = readString(br); err != nil {
			return nil, corrupt(err)
		}
	}

	s, err := schema.New(name, attrs, domains, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	t := table.New(s, kind)

	nTuples, err := encoding.ReadVarint(br)
	if err != nil {
		return nil, corrupt(err)
	}
	for i := uint64(0); i < nTuples; i++ {
		tu := make(types.Tuple, len(domains))
		for j, d := range domains {
			v, err := readValue(br, d)
			if err != nil {
				return nil, corrupt(err)
			}
			tu[j] = v
		}
		if err := t.Insert(tu); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	return t, nil
}

func corrupt(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated stream", ErrCorrupt)
	}
	return err
}

func writeUvarint(w *bufio.Writer, v uint64) {
	var buf [9]byte
	n := encoding.PutVarint(buf[:], v)
	w.Write(buf[:n])
}

func writeString(w *bufio.Writer, s string) {
	writeUvarint(w, uint64(len(s)))
	w.WriteString(s)
}

func readString(r *bufio.Reader) (string, error) {
	n, err := encoding.ReadVarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeValue(w *bufio.Writer, d types.ValueType, v types.Value) error {
	switch d {
	case types.TypeInt8:
		writeUvarint(w, encoding.Zigzag(int64(v.Int8())))
	case types.TypeInt16:
		writeUvarint(w, encoding.Zigzag(int64(v.Int16())))
	case types.TypeInt32:
		writeUvarint(w, encoding.Zigzag(int64(v.Int32())))
	case types.TypeInt64:
		writeUvarint(w, encoding.Zigzag(v.Int64()))
	case types.TypeChar:
		writeUvarint(w, uint64(v.Char()))
	case types.TypeFloat32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v.Float32()))
		w.Write(buf[:])
	case types.TypeFloat64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.Float64()))
		w.Write(buf[:])
	case types.TypeText:
		writeString(w, v.Text())
	default:
		return fmt.Errorf("unknown domain %d", d)
	}
	return nil
}

func readValue(r *bufio.Reader, d types.ValueType) (types.Value, error) {
	switch d {
	case types.TypeInt8, types.TypeInt16, types.TypeInt32, types.TypeInt64:
		u, err := encoding.ReadVarint(r)
		if err != nil {
			return types.Value{}, err
		}
		i := encoding.Unzigzag(u)
		switch d {
		case types.TypeInt8:
			return types.NewInt8(int8(i)), nil
		case types.TypeInt16:
			return types.NewInt16(int16(i)), nil
		case types.TypeInt32:
			return types.NewInt32(int32(i)), nil
		default:
			return types.NewInt64(i), nil
		}
	case types.TypeChar:
		u, err := encoding.ReadVarint(r)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewChar(rune(u)), nil
	case types.TypeFloat32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return types.Value{}, err
		}
		return types.NewFloat32(math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))), nil
	case types.TypeFloat64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return types.Value{}, err
		}
		return types.NewFloat64(math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))), nil
	case types.TypeText:
		s, err := readString(r)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewText(s), nil
	default:
		return types.Value{}, fmt.Errorf("unknown domain %d", d)
	}
}
