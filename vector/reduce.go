package vector

import (
	"github.com/brimdata/tabq/anymath"
	"github.com/brimdata/tabq/tqe"
)

// Sum returns the sum of the non-null values.  The sum of an empty vector
// is the additive identity of its kind.  Bool vectors sum to the number of
// true values.
func (v *Vector) Sum() (Scalar, error) {
	switch v.kind {
	case KindInt, KindBool:
		vals, valid := v.int64s()
		var sum int64
		for k, x := range vals {
			if isValid(valid, k) {
				sum += x
			}
		}
		return Int(sum), nil
	case KindFloat:
		vals, valid := v.float64s()
		var sum float64
		for k, x := range vals {
			if isValid(valid, k) {
				sum += x
			}
		}
		return Float(sum), nil
	}
	return Scalar{}, tqe.E(tqe.Invalid, "cannot sum %s vector", v.kind)
}

// Mean returns the arithmetic mean of the non-null values as a Float, or a
// null Float if there are none.
func (v *Vector) Mean() (Scalar, error) {
	if !v.kind.IsNumeric() && v.kind != KindBool {
		return Scalar{}, tqe.E(tqe.Invalid, "cannot average %s vector", v.kind)
	}
	vals, valid := v.float64s()
	var sum float64
	var count int
	for k, x := range vals {
		if isValid(valid, k) {
			sum += x
			count++
		}
	}
	if count == 0 {
		return Null(KindFloat), nil
	}
	return Float(sum / float64(count)), nil
}

// Count returns the number of non-null values.
func (v *Vector) Count() Scalar {
	return Int(int64(v.Len() - v.Nulls()))
}

func (v *Vector) Min() (Scalar, error) {
	return v.extreme(anymath.Min, func(a, b string) bool { return a < b })
}

func (v *Vector) Max() (Scalar, error) {
	return v.extreme(anymath.Max, func(a, b string) bool { return a > b })
}

// extreme returns a null Scalar when every value is null.
func (v *Vector) extreme(f *anymath.Function, better func(a, b string) bool) (Scalar, error) {
	var seen bool
	switch v.kind {
	case KindInt:
		vals, valid := v.int64s()
		acc := f.Init.Int64
		for k, x := range vals {
			if isValid(valid, k) {
				acc = f.Int64(acc, x)
				seen = true
			}
		}
		if seen {
			return Int(acc), nil
		}
	case KindFloat:
		vals, valid := v.float64s()
		acc := f.Init.Float64
		for k, x := range vals {
			if isValid(valid, k) {
				acc = f.Float64(acc, x)
				seen = true
			}
		}
		if seen {
			return Float(acc), nil
		}
	case KindString:
		vals, valid := v.strs()
		var acc string
		for k, x := range vals {
			if isValid(valid, k) && (!seen || better(x, acc)) {
				acc = x
				seen = true
			}
		}
		if seen {
			return String(acc), nil
		}
	default:
		return Scalar{}, tqe.E(tqe.Invalid, "cannot take extremes of %s vector", v.kind)
	}
	return Null(v.kind), nil
}
