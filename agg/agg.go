// Package agg implements the statistics a query can apply to a column,
// both over a whole column and per group of rows.
package agg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
)

var ErrInvalidAggregation = errors.New("invalid aggregation")

// Kind is a statistic.
type Kind int

const (
	Sum Kind = iota
	Mean
	Min
	Max
	Count
)

func (k Kind) String() string {
	switch k {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	case Min:
		return "min"
	case Max:
		return "max"
	case Count:
		return "count"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Parse maps an aggregation token to a Kind.  The empty token means Sum.
func Parse(token string) (Kind, error) {
	switch strings.ToLower(token) {
	case "", "sum":
		return Sum, nil
	case "mean", "avg", "average":
		return Mean, nil
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	case "count":
		return Count, nil
	}
	return 0, tqe.E(tqe.Invalid, fmt.Errorf("%w: %q", ErrInvalidAggregation, token))
}

// ResultKind returns the kind a statistic produces for an input kind.
func (k Kind) ResultKind(in vector.Kind) (vector.Kind, error) {
	switch k {
	case Sum:
		switch in {
		case vector.KindInt, vector.KindBool:
			return vector.KindInt, nil
		case vector.KindFloat:
			return vector.KindFloat, nil
		}
	case Mean:
		if in.IsNumeric() || in == vector.KindBool {
			return vector.KindFloat, nil
		}
	case Min, Max:
		if in.IsNumeric() || in == vector.KindString {
			return in, nil
		}
	case Count:
		return vector.KindInt, nil
	}
	return vector.KindInvalid, tqe.E(tqe.Invalid, "cannot compute %s of %s column", k, in)
}

// Reduce computes a statistic over every row of v.
func Reduce(v *vector.Vector, k Kind) (vector.Scalar, error) {
	switch k {
	case Sum:
		return v.Sum()
	case Mean:
		return v.Mean()
	case Min:
		return v.Min()
	case Max:
		return v.Max()
	case Count:
		return v.Count(), nil
	}
	return vector.Scalar{}, tqe.E(tqe.Invalid, "unknown statistic %s", k)
}

// Name returns the output column name for column col reduced by k.
func Name(col string, k Kind) string {
	return col + "_" + k.String()
}
