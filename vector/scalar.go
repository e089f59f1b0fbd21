package vector

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the storage type of a Vector or Scalar.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "invalid"
}

func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// An Operand is either a Scalar, which is broadcast across the other side
// of an operation, or a *Vector of the same length.  No other type
// implements Operand.
type Operand interface {
	operand()
}

func (Scalar) operand()  {}
func (*Vector) operand() {}

// Scalar is a single typed value.  The zero Scalar is invalid.
type Scalar struct {
	kind Kind
	null bool
	i    int64
	f    float64
	s    string
	b    bool
}

func Int(v int64) Scalar     { return Scalar{kind: KindInt, i: v} }
func Float(v float64) Scalar { return Scalar{kind: KindFloat, f: v} }
func String(v string) Scalar { return Scalar{kind: KindString, s: v} }
func Bool(v bool) Scalar     { return Scalar{kind: KindBool, b: v} }

// Null returns a null Scalar of the given kind.
func Null(kind Kind) Scalar { return Scalar{kind: kind, null: true} }

func (s Scalar) Kind() Kind   { return s.kind }
func (s Scalar) IsNull() bool { return s.null }

// ScalarOf converts a plain Go value into a Scalar.  Sized integer and
// float types are widened to int64 and float64.
func ScalarOf(v any) (Scalar, error) {
	switch v := v.(type) {
	case Scalar:
		return v, nil
	case nil:
		return Scalar{}, fmt.Errorf("cannot infer the kind of a nil value")
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	}
	return Scalar{}, fmt.Errorf("unsupported scalar type %T", v)
}

// Any materializes the Scalar as int64, float64, string, bool, or nil.
func (s Scalar) Any() any {
	if s.null {
		return nil
	}
	switch s.kind {
	case KindInt:
		return s.i
	case KindFloat:
		return s.f
	case KindString:
		return s.s
	case KindBool:
		return s.b
	}
	return nil
}

// AsFloat returns the Scalar as a float64 if it is a non-null number or bool.
func (s Scalar) AsFloat() (float64, bool) {
	if s.null {
		return 0, false
	}
	switch s.kind {
	case KindInt:
		return float64(s.i), true
	case KindFloat:
		return s.f, true
	case KindBool:
		if s.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsInt returns the Scalar as an int64 if it is a non-null integer or bool.
func (s Scalar) AsInt() (int64, bool) {
	if s.null {
		return 0, false
	}
	switch s.kind {
	case KindInt:
		return s.i, true
	case KindBool:
		if s.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Text returns the value of a String Scalar.
func (s Scalar) Text() (string, bool) {
	return s.s, s.kind == KindString && !s.null
}

// Truth returns the value of a Bool Scalar.
func (s Scalar) Truth() (bool, bool) {
	return s.b, s.kind == KindBool && !s.null
}

func (s Scalar) String() string {
	if s.null {
		return "null"
	}
	switch s.kind {
	case KindInt:
		return strconv.FormatInt(s.i, 10)
	case KindFloat:
		return formatFloat(s.f)
	case KindString:
		return s.s
	case KindBool:
		return strconv.FormatBool(s.b)
	}
	return "invalid"
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
