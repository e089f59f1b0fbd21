package agg

import (
	"strings"

	"github.com/brimdata/tabq/anymath"
	"github.com/brimdata/tabq/vector"
)

// Function is a streaming reducer.  Null values are ignored.
type Function interface {
	Consume(vector.Scalar)
	Result() vector.Scalar
}

// NewFunction returns a reducer computing k over values of kind in.
func NewFunction(k Kind, in vector.Kind) (Function, error) {
	out, err := k.ResultKind(in)
	if err != nil {
		return nil, err
	}
	switch k {
	case Sum:
		return newMathReducer(anymath.Add, out), nil
	case Mean:
		return &Avg{}, nil
	case Min:
		if in == vector.KindString {
			return &stringReducer{less: func(a, b string) bool { return strings.Compare(a, b) < 0 }}, nil
		}
		return newMathReducer(anymath.Min, out), nil
	case Max:
		if in == vector.KindString {
			return &stringReducer{less: func(a, b string) bool { return strings.Compare(a, b) > 0 }}, nil
		}
		return newMathReducer(anymath.Max, out), nil
	}
	var c Counter
	return &c, nil
}

type consumer interface {
	result() vector.Scalar
	consume(vector.Scalar)
}

type mathReducer struct {
	function *anymath.Function
	kind     vector.Kind
	math     consumer
	seen     bool
}

var _ Function = (*mathReducer)(nil)

func newMathReducer(f *anymath.Function, kind vector.Kind) *mathReducer {
	m := &mathReducer{function: f, kind: kind}
	if kind == vector.KindInt {
		m.math = NewInt64(f)
	} else {
		m.math = NewFloat64(f)
	}
	return m
}

// Result returns the additive identity for a sum that saw no values and
// null for any other statistic.
func (m *mathReducer) Result() vector.Scalar {
	if !m.seen && m.function != anymath.Add {
		return vector.Null(m.kind)
	}
	return m.math.result()
}

func (m *mathReducer) Consume(val vector.Scalar) {
	if !val.IsNull() {
		m.seen = true
		m.math.consume(val)
	}
}

type Float64 struct {
	state    float64
	function anymath.Float64
}

func NewFloat64(f *anymath.Function) *Float64 {
	return &Float64{
		state:    f.Init.Float64,
		function: f.Float64,
	}
}

func (f *Float64) result() vector.Scalar {
	return vector.Float(f.state)
}

func (f *Float64) consume(val vector.Scalar) {
	if v, ok := val.AsFloat(); ok {
		f.state = f.function(f.state, v)
	}
}

type Int64 struct {
	state    int64
	function anymath.Int64
}

func NewInt64(f *anymath.Function) *Int64 {
	return &Int64{
		state:    f.Init.Int64,
		function: f.Int64,
	}
}

func (i *Int64) result() vector.Scalar {
	return vector.Int(i.state)
}

func (i *Int64) consume(val vector.Scalar) {
	if v, ok := val.AsInt(); ok {
		i.state = i.function(i.state, v)
	}
}

type stringReducer struct {
	less  func(a, b string) bool
	state string
	seen  bool
}

func (s *stringReducer) Consume(val vector.Scalar) {
	if v, ok := val.Text(); ok && (!s.seen || s.less(v, s.state)) {
		s.state = v
		s.seen = true
	}
}

func (s *stringReducer) Result() vector.Scalar {
	if !s.seen {
		return vector.Null(vector.KindString)
	}
	return vector.String(s.state)
}

type Avg struct {
	sum   float64
	count uint64
}

var _ Function = (*Avg)(nil)

func (a *Avg) Consume(val vector.Scalar) {
	if v, ok := val.AsFloat(); ok {
		a.sum += v
		a.count++
	}
}

func (a *Avg) Result() vector.Scalar {
	if a.count > 0 {
		return vector.Float(a.sum / float64(a.count))
	}
	return vector.Null(vector.KindFloat)
}

// Counter counts non-null values.
type Counter uint64

func (c *Counter) Consume(val vector.Scalar) {
	if !val.IsNull() {
		*c++
	}
}

func (c Counter) Result() vector.Scalar {
	return vector.Int(int64(c))
}
