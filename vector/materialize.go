package vector

import (
	"fmt"

	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/brimdata/tabq/tqe"
	"golang.org/x/exp/slices"
)

// The kernels work on plain Go slices plus an optional validity slice
// (nil means no nulls).  These helpers move between the two forms.

func (v *Vector) int64s() ([]int64, []bool) {
	switch a := v.arr.(type) {
	case *array.Int64:
		return slices.Clone(a.Int64Values()), validity(a)
	case *array.Boolean:
		vals := make([]int64, a.Len())
		for k := range vals {
			if a.Value(k) {
				vals[k] = 1
			}
		}
		return vals, validity(a)
	}
	panic(fmt.Sprintf("vector: int64s on %s vector", v.kind))
}

func (v *Vector) float64s() ([]float64, []bool) {
	switch a := v.arr.(type) {
	case *array.Float64:
		return slices.Clone(a.Float64Values()), validity(a)
	case *array.Int64:
		vals := make([]float64, a.Len())
		for k, x := range a.Int64Values() {
			vals[k] = float64(x)
		}
		return vals, validity(a)
	case *array.Boolean:
		vals := make([]float64, a.Len())
		for k := range vals {
			if a.Value(k) {
				vals[k] = 1
			}
		}
		return vals, validity(a)
	}
	panic(fmt.Sprintf("vector: float64s on %s vector", v.kind))
}

func (v *Vector) strs() ([]string, []bool) {
	a, ok := v.arr.(*array.String)
	if !ok {
		panic(fmt.Sprintf("vector: strs on %s vector", v.kind))
	}
	vals := make([]string, a.Len())
	for k := range vals {
		if a.IsValid(k) {
			vals[k] = a.Value(k)
		}
	}
	return vals, validity(a)
}

func (v *Vector) bools() ([]bool, []bool) {
	a, ok := v.arr.(*array.Boolean)
	if !ok {
		panic(fmt.Sprintf("vector: bools on %s vector", v.kind))
	}
	vals := make([]bool, a.Len())
	for k := range vals {
		vals[k] = a.Value(k)
	}
	return vals, validity(a)
}

// operandKind returns the kind of o and checks a vector's length against n.
func operandKind(o Operand, n int) (Kind, error) {
	switch o := o.(type) {
	case Scalar:
		if o.kind == KindInvalid {
			return KindInvalid, tqe.E(tqe.Invalid, "invalid scalar operand")
		}
		return o.kind, nil
	case *Vector:
		if o == nil {
			return KindInvalid, tqe.E(tqe.Invalid, "nil vector operand")
		}
		if o.Len() != n {
			return KindInvalid, lengthMismatch(n, o.Len())
		}
		return o.kind, nil
	}
	return KindInvalid, tqe.E(tqe.Invalid, "nil operand")
}

func fill[T any](n int, x T, null bool) ([]T, []bool) {
	vals := make([]T, n)
	for k := range vals {
		vals[k] = x
	}
	if null {
		return vals, make([]bool, n)
	}
	return vals, nil
}

func expandInt64s(o Operand, n int) ([]int64, []bool) {
	if s, ok := o.(Scalar); ok {
		x, _ := s.AsInt()
		return fill(n, x, s.null)
	}
	return o.(*Vector).int64s()
}

func expandFloat64s(o Operand, n int) ([]float64, []bool) {
	if s, ok := o.(Scalar); ok {
		x, _ := s.AsFloat()
		return fill(n, x, s.null)
	}
	return o.(*Vector).float64s()
}

func expandStrs(o Operand, n int) ([]string, []bool) {
	if s, ok := o.(Scalar); ok {
		return fill(n, s.s, s.null)
	}
	return o.(*Vector).strs()
}

func expandBools(o Operand, n int) ([]bool, []bool) {
	if s, ok := o.(Scalar); ok {
		return fill(n, s.b, s.null)
	}
	return o.(*Vector).bools()
}

// bothValid merges two validity slices.
func bothValid(a, b []bool) []bool {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	out := make([]bool, len(a))
	for k := range out {
		out[k] = a[k] && b[k]
	}
	return out
}

func isValid(valid []bool, k int) bool {
	return valid == nil || valid[k]
}
