package vector

import (
	"fmt"

	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/brimdata/tabq/tqe"
)

// Builder accumulates Scalars of one kind into a Vector.
type Builder struct {
	kind Kind
	b    array.Builder
}

func NewBuilder(kind Kind, capacity int) (*Builder, error) {
	var b array.Builder
	switch kind {
	case KindInt:
		b = array.NewInt64Builder(alloc)
	case KindFloat:
		b = array.NewFloat64Builder(alloc)
	case KindString:
		b = array.NewStringBuilder(alloc)
	case KindBool:
		b = array.NewBooleanBuilder(alloc)
	default:
		return nil, tqe.E(tqe.Invalid, "cannot build a vector of kind %s", kind)
	}
	b.Reserve(capacity)
	return &Builder{kind: kind, b: b}, nil
}

func (b *Builder) Kind() Kind {
	return b.kind
}

func (b *Builder) Len() int {
	return b.b.Len()
}

func (b *Builder) AppendNull() {
	b.b.AppendNull()
}

// Append adds s, converting between numeric kinds as needed.  A Scalar
// that cannot be represented in the builder's kind is appended as null.
func (b *Builder) Append(s Scalar) {
	if s.IsNull() {
		b.b.AppendNull()
		return
	}
	switch bb := b.b.(type) {
	case *array.Int64Builder:
		if s.Kind() == KindFloat {
			bb.Append(int64(s.f))
		} else if v, ok := s.AsInt(); ok {
			bb.Append(v)
		} else {
			bb.AppendNull()
		}
	case *array.Float64Builder:
		if v, ok := s.AsFloat(); ok {
			bb.Append(v)
		} else {
			bb.AppendNull()
		}
	case *array.StringBuilder:
		if s.Kind() == KindString {
			bb.Append(s.s)
		} else {
			bb.Append(s.String())
		}
	case *array.BooleanBuilder:
		if v, ok := s.Truth(); ok {
			bb.Append(v)
		} else {
			bb.AppendNull()
		}
	default:
		panic(fmt.Sprintf("vector: unexpected builder type %T", b.b))
	}
}

// Build returns the accumulated Vector and resets the Builder.
func (b *Builder) Build() *Vector {
	arr := b.b.NewArray()
	return &Vector{kind: b.kind, arr: arr}
}

func newInt(vals []int64, valid []bool) *Vector {
	b := array.NewInt64Builder(alloc)
	defer b.Release()
	b.AppendValues(vals, valid)
	return &Vector{kind: KindInt, arr: b.NewArray()}
}

func newFloat(vals []float64, valid []bool) *Vector {
	b := array.NewFloat64Builder(alloc)
	defer b.Release()
	b.AppendValues(vals, valid)
	return &Vector{kind: KindFloat, arr: b.NewArray()}
}

func newString(vals []string, valid []bool) *Vector {
	b := array.NewStringBuilder(alloc)
	defer b.Release()
	b.AppendValues(vals, valid)
	return &Vector{kind: KindString, arr: b.NewArray()}
}

func newBool(vals []bool, valid []bool) *Vector {
	b := array.NewBooleanBuilder(alloc)
	defer b.Release()
	b.AppendValues(vals, valid)
	return &Vector{kind: KindBool, arr: b.NewArray()}
}
