package vector

import (
	"github.com/brimdata/tabq/anymath"
)

func (v *Vector) Add(o Operand) (*Vector, error) {
	return v.arith("add", anymath.Add, o)
}

func (v *Vector) Sub(o Operand) (*Vector, error) {
	return v.arith("subtract", anymath.Sub, o)
}

func (v *Vector) Mul(o Operand) (*Vector, error) {
	return v.arith("multiply", anymath.Mul, o)
}

// Div is true division and always returns a Float vector.  Division by
// zero yields ±Inf or NaN.
func (v *Vector) Div(o Operand) (*Vector, error) {
	return v.arith("divide", anymath.Div, o)
}

// ScalarSub computes s - v, for when the scalar is on the left.
func ScalarSub(s Scalar, v *Vector) (*Vector, error) {
	return arithKernel("subtract", anymath.Sub, s, v, v.Len())
}

// ScalarDiv computes s / v.
func ScalarDiv(s Scalar, v *Vector) (*Vector, error) {
	return arithKernel("divide", anymath.Div, s, v, v.Len())
}

func (v *Vector) arith(name string, f *anymath.Function, o Operand) (*Vector, error) {
	return arithKernel(name, f, v, o, v.Len())
}

func arithKernel(name string, f *anymath.Function, left, right Operand, n int) (*Vector, error) {
	lk, err := operandKind(left, n)
	if err != nil {
		return nil, err
	}
	rk, err := operandKind(right, n)
	if err != nil {
		return nil, err
	}
	if !lk.IsNumeric() || !rk.IsNumeric() {
		return nil, kindMismatch(name, lk, rk)
	}
	if f.Int64 != nil && lk == KindInt && rk == KindInt {
		a, av := expandInt64s(left, n)
		b, bv := expandInt64s(right, n)
		out := make([]int64, n)
		valid := bothValid(av, bv)
		for k := range out {
			if isValid(valid, k) {
				out[k] = f.Int64(a[k], b[k])
			}
		}
		return newInt(out, valid), nil
	}
	a, av := expandFloat64s(left, n)
	b, bv := expandFloat64s(right, n)
	out := make([]float64, n)
	valid := bothValid(av, bv)
	for k := range out {
		if isValid(valid, k) {
			out[k] = f.Float64(a[k], b[k])
		}
	}
	return newFloat(out, valid), nil
}
