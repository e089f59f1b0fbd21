package vector

import (
	"strings"

	"github.com/brimdata/tabq/tqe"
)

type cmpOp int

const (
	opGt cmpOp = iota
	opGe
	opLt
	opLe
	opEq
	opNe
)

var cmpNames = [...]string{"compare >", "compare >=", "compare <", "compare <=", "compare ==", "compare !="}

func (op cmpOp) test(c int) bool {
	switch op {
	case opGt:
		return c > 0
	case opGe:
		return c >= 0
	case opLt:
		return c < 0
	case opLe:
		return c <= 0
	case opEq:
		return c == 0
	}
	return c != 0
}

func (v *Vector) Gt(o Operand) (*Vector, error) { return compare(opGt, v, o) }
func (v *Vector) Ge(o Operand) (*Vector, error) { return compare(opGe, v, o) }
func (v *Vector) Lt(o Operand) (*Vector, error) { return compare(opLt, v, o) }
func (v *Vector) Le(o Operand) (*Vector, error) { return compare(opLe, v, o) }
func (v *Vector) Eq(o Operand) (*Vector, error) { return compare(opEq, v, o) }
func (v *Vector) Ne(o Operand) (*Vector, error) { return compare(opNe, v, o) }

func compare(op cmpOp, v *Vector, o Operand) (*Vector, error) {
	n := v.Len()
	ok, err := operandKind(o, n)
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	var valid []bool
	switch {
	case v.kind == KindInt && ok == KindInt:
		a, av := v.int64s()
		b, bv := expandInt64s(o, n)
		valid = bothValid(av, bv)
		for k := range out {
			out[k] = op.test(cmpInt(a[k], b[k]))
		}
	case v.kind.IsNumeric() && ok.IsNumeric():
		a, av := v.float64s()
		b, bv := expandFloat64s(o, n)
		valid = bothValid(av, bv)
		for k := range out {
			out[k] = cmpFloat(op, a[k], b[k])
		}
	case v.kind == KindString && ok == KindString:
		a, av := v.strs()
		b, bv := expandStrs(o, n)
		valid = bothValid(av, bv)
		for k := range out {
			out[k] = op.test(strings.Compare(a[k], b[k]))
		}
	case v.kind == KindBool && ok == KindBool && (op == opEq || op == opNe):
		a, av := v.bools()
		b, bv := expandBools(o, n)
		valid = bothValid(av, bv)
		for k := range out {
			out[k] = (a[k] == b[k]) == (op == opEq)
		}
	default:
		return nil, kindMismatch(cmpNames[op], v.kind, ok)
	}
	for k := range out {
		if !isValid(valid, k) {
			out[k] = false
		}
	}
	return newBool(out, valid), nil
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// cmpFloat keeps IEEE semantics: every comparison with NaN is false
// except !=.
func cmpFloat(op cmpOp, a, b float64) bool {
	switch op {
	case opGt:
		return a > b
	case opGe:
		return a >= b
	case opLt:
		return a < b
	case opLe:
		return a <= b
	case opEq:
		return a == b
	}
	return a != b
}

// And computes the elementwise logical AND.  If either side is null the
// result is null.
func (v *Vector) And(o Operand) (*Vector, error) {
	return logical("and", v, o, func(a, b bool) bool { return a && b })
}

// Or computes the elementwise logical OR.  If either side is null the
// result is null.
func (v *Vector) Or(o Operand) (*Vector, error) {
	return logical("or", v, o, func(a, b bool) bool { return a || b })
}

func (v *Vector) Not() (*Vector, error) {
	if v.kind != KindBool {
		return nil, tqe.E(tqe.Invalid, "cannot negate %s vector", v.kind)
	}
	vals, valid := v.bools()
	for k := range vals {
		vals[k] = !vals[k] && isValid(valid, k)
	}
	return newBool(vals, valid), nil
}

func logical(name string, v *Vector, o Operand, f func(bool, bool) bool) (*Vector, error) {
	n := v.Len()
	ok, err := operandKind(o, n)
	if err != nil {
		return nil, err
	}
	if v.kind != KindBool || ok != KindBool {
		return nil, kindMismatch(name, v.kind, ok)
	}
	a, av := v.bools()
	b, bv := expandBools(o, n)
	valid := bothValid(av, bv)
	out := make([]bool, n)
	for k := range out {
		out[k] = isValid(valid, k) && f(a[k], b[k])
	}
	return newBool(out, valid), nil
}
