// pkg/types/value.go
package types

import (
	"fmt"
	"math"
	"strings"
)

// ValueType identifies the domain of a Value.
// The engine supports a closed set of scalar domains.
type ValueType int

const (
	TypeInt8 ValueType = iota
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeChar
	TypeText
)

// String returns the name used for the type in schemas and snapshots.
func (t ValueType) String() string {
	switch t {
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeChar:
		return "char"
	case TypeText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseType resolves a type name to a ValueType.
// Accepts the canonical names plus the aliases int, float, str and string.
func ParseType(name string) (ValueType, error) {
	switch strings.ToLower(name) {
	case "int8":
		return TypeInt8, nil
	case "int16":
		return TypeInt16, nil
	case "int32":
		return TypeInt32, nil
	case "int64", "int":
		return TypeInt64, nil
	case "float32":
		return TypeFloat32, nil
	case "float64", "float":
		return TypeFloat64, nil
	case "char":
		return TypeChar, nil
	case "text", "str", "string":
		return TypeText, nil
	default:
		return 0, fmt.Errorf("unknown type %q", name)
	}
}

// Value represents a single scalar attribute value.
// The integer widths and char share the intVal field; both float widths
// share floatVal. The tag decides which accessor is meaningful.
type Value struct {
	typ      ValueType
	intVal   int64
	floatVal float64
	textVal  string
}

func NewInt8(i int8) Value {
	return Value{typ: TypeInt8, intVal: int64(i)}
}

func NewInt16(i int16) Value {
	return Value{typ: TypeInt16, intVal: int64(i)}
}

func NewInt32(i int32) Value {
	return Value{typ: TypeInt32, intVal: int64(i)}
}

func NewInt64(i int64) Value {
	return Value{typ: TypeInt64, intVal: i}
}

func NewFloat32(f float32) Value {
	return Value{typ: TypeFloat32, floatVal: float64(f)}
}

func NewFloat64(f float64) Value {
	return Value{typ: TypeFloat64, floatVal: f}
}

func NewChar(c rune) Value {
	return Value{typ: TypeChar, intVal: int64(c)}
}

func NewText(s string) Value {
	return Value{typ: TypeText, textVal: s}
}

func (v Value) Type() ValueType  { return v.typ }
func (v Value) Int8() int8       { return int8(v.intVal) }
func (v Value) Int16() int16     { return int16(v.intVal) }
func (v Value) Int32() int32     { return int32(v.intVal) }
func (v Value) Int64() int64     { return v.intVal }
func (v Value) Float32() float32 { return float32(v.floatVal) }
func (v Value) Float64() float64 { return v.floatVal }
func (v Value) Char() rune       { return rune(v.intVal) }
func (v Value) Text() string     { return v.textVal }

func (v Value) isInteger() bool {
	return v.typ == TypeInt8 || v.typ == TypeInt16 || v.typ == TypeInt32 ||
		v.typ == TypeInt64 || v.typ == TypeChar
}

func (v Value) isFloat() bool {
	return v.typ == TypeFloat32 || v.typ == TypeFloat64
}

// Compare orders v against o: -1, 0 or +1.
// Values of the same domain compare by their natural order. Mixed numeric
// widths promote to the wider representation; a char compares with the
// numeric domains by its code point. Text against any other domain orders
// by type tag so the order stays total.
func (v Value) Compare(o Value) int {
	switch {
	case v.isInteger() && o.isInteger():
		return compareInt64(v.intVal, o.intVal)
	case v.isFloat() && o.isFloat():
		return compareFloat64(v.floatVal, o.floatVal)
	case v.isInteger() && o.isFloat():
		return compareFloat64(float64(v.intVal), o.floatVal)
	case v.isFloat() && o.isInteger():
		return compareFloat64(v.floatVal, float64(o.intVal))
	case v.typ == TypeText && o.typ == TypeText:
		return strings.Compare(v.textVal, o.textVal)
	default:
		return compareInt64(int64(v.typ), int64(o.typ))
	}
}

// Equal reports value equality: same domain and same payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch {
	case v.isInteger():
		return v.intVal == o.intVal
	case v.isFloat():
		return v.floatVal == o.floatVal
	default:
		return v.textVal == o.textVal
	}
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash returns an FNV-1a hash over the type tag and a canonical payload
// encoding. Equal values hash equal.
func (v Value) Hash() uint64 {
	h := uint64(fnvOffset64)
	h = fnvByte(h, byte(v.typ))
	switch {
	case v.isInteger():
		h = fnvUint64(h, uint64(v.intVal))
	case v.isFloat():
		h = fnvUint64(h, math.Float64bits(v.floatVal))
	default:
		for i := 0; i < len(v.textVal); i++ {
			h = fnvByte(h, v.textVal[i])
		}
	}
	return h
}

// String formats the value for table output.
func (v Value) String() string {
	switch v.typ {
	case TypeFloat32, TypeFloat64:
		return fmt.Sprintf("%g", v.floatVal)
	case TypeChar:
		return string(rune(v.intVal))
	case TypeText:
		return v.textVal
	default:
		return fmt.Sprintf("%d", v.intVal)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func fnvByte(h uint64, b byte) uint64 {
	return (h ^ uint64(b)) * fnvPrime64
}

func fnvUint64(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = fnvByte(h, byte(v>>(8*uint(i))))
	}
	return h
}
