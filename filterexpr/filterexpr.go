// Package filterexpr compiles small boolean expressions over the columns of
// a table, such as
//
//	c3 == "a" and (c1 > 2 or not flag)
//	entcari / npopuli * 1000000 > 5
//
// Identifiers name columns; a column name that is not a valid identifier
// can be written in backquotes.  Strings are double quoted.  Operators, from
// lowest to highest precedence, are or (||), and (&&), not (!), the
// comparisons == != < <= > >=, + and -, and * and /.  Evaluation uses the
// vector algebra, so typing and null handling match it exactly.
package filterexpr

import (
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
)

// Expr is a parsed expression.
type Expr struct {
	src  string
	root node
}

func Parse(src string) (*Expr, error) {
	root, err := newParser(src).parse()
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root}, nil
}

func (e *Expr) String() string {
	return e.src
}

// Eval evaluates e against t.  A constant result is broadcast to the
// table's row count.
func (e *Expr) Eval(t *table.Table) (*vector.Vector, error) {
	o, err := e.root.eval(t)
	if err != nil {
		return nil, err
	}
	return asVector(o, t.Len())
}

// Predicate returns e as a table predicate.  The predicate fails if e does
// not evaluate to a bool vector.
func (e *Expr) Predicate() table.Predicate {
	return func(t *table.Table) (*vector.Vector, error) {
		v, err := e.Eval(t)
		if err != nil {
			return nil, err
		}
		if v.Kind() != vector.KindBool {
			return nil, tqe.E(tqe.Invalid, "filter %q yields %s, not bool", e.src, v.Kind())
		}
		return v, nil
	}
}

// Compile parses src into a table predicate.
func Compile(src string) (table.Predicate, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.Predicate(), nil
}

type node interface {
	eval(*table.Table) (vector.Operand, error)
}

type ident string

func (i ident) eval(t *table.Table) (vector.Operand, error) {
	v, ok := t.Lookup(string(i))
	if !ok {
		return nil, t.Missing(string(i))
	}
	return v, nil
}

type literal struct {
	val vector.Scalar
}

func (l *literal) eval(*table.Table) (vector.Operand, error) {
	return l.val, nil
}

type unary struct {
	op string
	x  node
}

func (u *unary) eval(t *table.Table) (vector.Operand, error) {
	o, err := u.x.eval(t)
	if err != nil {
		return nil, err
	}
	v, err := asVector(o, t.Len())
	if err != nil {
		return nil, err
	}
	if u.op == "-" {
		return vector.ScalarSub(vector.Int(0), v)
	}
	return v.Not()
}

type binary struct {
	op       string
	lhs, rhs node
}

func (b *binary) eval(t *table.Table) (vector.Operand, error) {
	l, err := b.lhs.eval(t)
	if err != nil {
		return nil, err
	}
	r, err := b.rhs.eval(t)
	if err != nil {
		return nil, err
	}
	v, err := asVector(l, t.Len())
	if err != nil {
		return nil, err
	}
	switch b.op {
	case "+":
		return v.Add(r)
	case "-":
		return v.Sub(r)
	case "*":
		return v.Mul(r)
	case "/":
		return v.Div(r)
	case "==":
		return v.Eq(r)
	case "!=":
		return v.Ne(r)
	case "<":
		return v.Lt(r)
	case "<=":
		return v.Le(r)
	case ">":
		return v.Gt(r)
	case ">=":
		return v.Ge(r)
	case "and":
		return v.And(r)
	case "or":
		return v.Or(r)
	}
	return nil, tqe.E(tqe.Invalid, "unknown operator %q", b.op)
}

func asVector(o vector.Operand, n int) (*vector.Vector, error) {
	switch o := o.(type) {
	case *vector.Vector:
		return o, nil
	case vector.Scalar:
		return vector.Broadcast(o, n)
	}
	return nil, tqe.E(tqe.Invalid, "missing operand")
}
