package vector

import (
	"github.com/brimdata/tabq/anymath"
	"github.com/brimdata/tabq/tqe"
)

// ReplaceIf keeps the receiver's value wherever cond is false and takes
// the value from other wherever cond is true.  This is the reverse of the
// usual if-else argument order: the receiver is the default and other is
// the override.  A null condition keeps the receiver's value.
func (v *Vector) ReplaceIf(cond *Vector, other Operand) (*Vector, error) {
	n := v.Len()
	if cond == nil {
		return nil, tqe.E(tqe.Invalid, "nil condition")
	}
	if cond.kind != KindBool {
		return nil, tqe.E(tqe.Invalid, "condition must be a bool vector, not %s", cond.kind)
	}
	if cond.Len() != n {
		return nil, lengthMismatch(n, cond.Len())
	}
	ok, err := operandKind(other, n)
	if err != nil {
		return nil, err
	}
	c, cv := cond.bools()
	switch {
	case v.kind == KindInt && ok == KindInt:
		a, av := v.int64s()
		b, bv := expandInt64s(other, n)
		out, valid := choose(c, cv, a, av, b, bv)
		return newInt(out, valid), nil
	case v.kind.IsNumeric() && ok.IsNumeric():
		a, av := v.float64s()
		b, bv := expandFloat64s(other, n)
		out, valid := choose(c, cv, a, av, b, bv)
		return newFloat(out, valid), nil
	case v.kind == KindString && ok == KindString:
		a, av := v.strs()
		b, bv := expandStrs(other, n)
		out, valid := choose(c, cv, a, av, b, bv)
		return newString(out, valid), nil
	case v.kind == KindBool && ok == KindBool:
		a, av := v.bools()
		b, bv := expandBools(other, n)
		out, valid := choose(c, cv, a, av, b, bv)
		return newBool(out, valid), nil
	}
	return nil, kindMismatch("replace", v.kind, ok)
}

func choose[T any](cond, condValid []bool, a []T, av []bool, b []T, bv []bool) ([]T, []bool) {
	out := make([]T, len(a))
	var valid []bool
	if av != nil || bv != nil {
		valid = make([]bool, len(a))
	}
	for k := range out {
		if cond[k] && isValid(condValid, k) {
			out[k] = b[k]
			if valid != nil {
				valid[k] = isValid(bv, k)
			}
		} else {
			out[k] = a[k]
			if valid != nil {
				valid[k] = isValid(av, k)
			}
		}
	}
	return out, valid
}

// Clip raises values below lower to lower and lowers values above upper to
// upper.  Either bound may be nil to leave that side unbounded, a Scalar,
// or a vector of the same length for elementwise bounds.  With both bounds
// nil, Clip clamps negative values to zero.  A null bound slot leaves the
// value unchanged.
func (v *Vector) Clip(lower, upper Operand) (*Vector, error) {
	if lower == nil && upper == nil {
		lower = Int(0)
	}
	out := v
	var err error
	if lower != nil {
		if out, err = clip(out, lower, anymath.Max); err != nil {
			return nil, err
		}
	}
	if upper != nil {
		if out, err = clip(out, upper, anymath.Min); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func clip(v *Vector, bound Operand, f *anymath.Function) (*Vector, error) {
	n := v.Len()
	bk, err := operandKind(bound, n)
	if err != nil {
		return nil, err
	}
	if !v.kind.IsNumeric() || !bk.IsNumeric() {
		return nil, kindMismatch("clip", v.kind, bk)
	}
	if v.kind == KindInt && bk == KindInt {
		a, av := v.int64s()
		b, bv := expandInt64s(bound, n)
		for k := range a {
			if isValid(bv, k) {
				a[k] = f.Int64(a[k], b[k])
			}
		}
		return newInt(a, av), nil
	}
	a, av := v.float64s()
	b, bv := expandFloat64s(bound, n)
	for k := range a {
		if isValid(bv, k) {
			a[k] = f.Float64(a[k], b[k])
		}
	}
	return newFloat(a, av), nil
}
