// Package vector implements immutable, typed columns on top of Arrow arrays
// along with the elementwise algebra the query layer is built from.
//
// Every operation returns a new Vector.  Arrays are allocated with the Go
// allocator so a Vector never needs to be released.
package vector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/brimdata/tabq/tqe"
)

var (
	ErrLengthMismatch  = errors.New("vector length mismatch")
	ErrKindMismatch    = errors.New("vector kind mismatch")
	ErrUnsupportedType = errors.New("unsupported arrow type")
)

var alloc = memory.NewGoAllocator()

type Vector struct {
	kind Kind
	arr  arrow.Array
}

func NewInt(vals []int64) *Vector {
	return newInt(vals, nil)
}

func NewFloat(vals []float64) *Vector {
	return newFloat(vals, nil)
}

func NewString(vals []string) *Vector {
	return newString(vals, nil)
}

func NewBool(vals []bool) *Vector {
	return newBool(vals, nil)
}

// Zeros returns an Int vector of n zeros.
func Zeros(n int) *Vector {
	return NewInt(make([]int64, n))
}

// Broadcast returns a vector of length n with every slot set to s.
func Broadcast(s Scalar, n int) (*Vector, error) {
	b, err := NewBuilder(s.Kind(), n)
	if err != nil {
		return nil, err
	}
	for k := 0; k < n; k++ {
		b.Append(s)
	}
	return b.Build(), nil
}

// FromArrow wraps an Arrow array.  Sized integers and float32/float16 are
// widened; any other Arrow type is an error.
func FromArrow(arr arrow.Array) (*Vector, error) {
	switch arr.DataType().ID() {
	case arrow.INT64:
		arr.Retain()
		return &Vector{kind: KindInt, arr: arr}, nil
	case arrow.FLOAT64:
		arr.Retain()
		return &Vector{kind: KindFloat, arr: arr}, nil
	case arrow.STRING:
		arr.Retain()
		return &Vector{kind: KindString, arr: arr}, nil
	case arrow.BOOL:
		arr.Retain()
		return &Vector{kind: KindBool, arr: arr}, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return widenInt(arr), nil
	case arrow.FLOAT16, arrow.FLOAT32:
		return widenFloat(arr), nil
	}
	return nil, tqe.E(tqe.Schema, fmt.Errorf("%w: %s", ErrUnsupportedType, arr.DataType()))
}

// FromChunked concatenates the chunks of an Arrow column into one Vector.
func FromChunked(c *arrow.Chunked) (*Vector, error) {
	chunks := c.Chunks()
	switch len(chunks) {
	case 0:
		b, err := NewBuilder(kindOfArrow(c.DataType()), 0)
		if err != nil {
			return nil, err
		}
		return b.Build(), nil
	case 1:
		return FromArrow(chunks[0])
	}
	arr, err := array.Concatenate(chunks, alloc)
	if err != nil {
		return nil, err
	}
	defer arr.Release()
	return FromArrow(arr)
}

func kindOfArrow(dt arrow.DataType) Kind {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64, arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return KindInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return KindFloat
	case arrow.STRING:
		return KindString
	case arrow.BOOL:
		return KindBool
	}
	return KindInvalid
}

func widenInt(arr arrow.Array) *Vector {
	n := arr.Len()
	vals := make([]int64, n)
	for k := 0; k < n; k++ {
		if arr.IsNull(k) {
			continue
		}
		switch a := arr.(type) {
		case *array.Int8:
			vals[k] = int64(a.Value(k))
		case *array.Int16:
			vals[k] = int64(a.Value(k))
		case *array.Int32:
			vals[k] = int64(a.Value(k))
		case *array.Uint8:
			vals[k] = int64(a.Value(k))
		case *array.Uint16:
			vals[k] = int64(a.Value(k))
		case *array.Uint32:
			vals[k] = int64(a.Value(k))
		case *array.Uint64:
			vals[k] = int64(a.Value(k))
		}
	}
	return newInt(vals, validity(arr))
}

func widenFloat(arr arrow.Array) *Vector {
	n := arr.Len()
	vals := make([]float64, n)
	for k := 0; k < n; k++ {
		if arr.IsNull(k) {
			continue
		}
		switch a := arr.(type) {
		case *array.Float16:
			vals[k] = float64(a.Value(k).Float32())
		case *array.Float32:
			vals[k] = float64(a.Value(k))
		}
	}
	return newFloat(vals, validity(arr))
}

// validity returns nil when arr has no nulls.
func validity(arr arrow.Array) []bool {
	if arr.NullN() == 0 {
		return nil
	}
	valid := make([]bool, arr.Len())
	for k := range valid {
		valid[k] = arr.IsValid(k)
	}
	return valid
}

func (v *Vector) Kind() Kind {
	return v.kind
}

func (v *Vector) Len() int {
	return v.arr.Len()
}

// Nulls returns the number of null slots.
func (v *Vector) Nulls() int {
	return v.arr.NullN()
}

func (v *Vector) IsNull(i int) bool {
	return v.arr.IsNull(i)
}

// Arrow returns the underlying Arrow array.  Callers must not modify it.
func (v *Vector) Arrow() arrow.Array {
	return v.arr
}

// At returns the value at position i as a Scalar.
func (v *Vector) At(i int) Scalar {
	if v.arr.IsNull(i) {
		return Null(v.kind)
	}
	switch a := v.arr.(type) {
	case *array.Int64:
		return Int(a.Value(i))
	case *array.Float64:
		return Float(a.Value(i))
	case *array.String:
		return String(strings.Clone(a.Value(i)))
	case *array.Boolean:
		return Bool(a.Value(i))
	}
	panic(fmt.Sprintf("vector: unexpected array type %T", v.arr))
}

// Value returns the value at position i materialized as int64, float64,
// string, bool, or nil for a null slot.
func (v *Vector) Value(i int) any {
	return v.At(i).Any()
}

// Values materializes the whole vector in order.
func (v *Vector) Values() []any {
	out := make([]any, v.Len())
	for k := range out {
		out[k] = v.Value(k)
	}
	return out
}

// Take gathers the slots at the given positions into a new vector.
func (v *Vector) Take(rows []int) *Vector {
	b, _ := NewBuilder(v.kind, len(rows))
	for _, row := range rows {
		b.Append(v.At(row))
	}
	return b.Build()
}

// Copy returns a vector backed by newly allocated memory.
func (v *Vector) Copy() *Vector {
	rows := make([]int, v.Len())
	for k := range rows {
		rows[k] = k
	}
	return v.Take(rows)
}

// Equal reports whether a and b have the same kind, length, values and
// nulls.
func Equal(a, b *Vector) bool {
	return a.kind == b.kind && array.Equal(a.arr, b.arr)
}

func (v *Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for k := 0; k < v.Len(); k++ {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.At(k).String())
	}
	b.WriteByte(']')
	return b.String()
}

func lengthMismatch(a, b int) error {
	return tqe.E(tqe.Invalid, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a, b))
}

func kindMismatch(op string, a, b Kind) error {
	return tqe.E(tqe.Invalid, fmt.Errorf("%w: cannot %s %s and %s", ErrKindMismatch, op, a, b))
}
