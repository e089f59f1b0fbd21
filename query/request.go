package query

import (
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/vector"
)

// Request describes one query.  The zero value selects every column of
// the input without filtering; use NewRequest to get the default weight
// normalization.
type Request struct {
	// Select names the value columns.  Empty means every column that is
	// not a group key, in table order.
	Select []string
	// Where is a row mask over the input table.  WhereFunc computes the
	// mask from the unfiltered input instead.  At most one may be set.
	Where     *vector.Vector
	WhereFunc table.Predicate
	// Aggregation is a statistic token understood by agg.Parse.  Empty
	// means no aggregation for an ungrouped query and sum for a grouped
	// one.
	Aggregation string
	GroupBy     []string
	// Weight names a column whose values scale each row's contribution.
	Weight string
	// WeightNormalize divides weighted contributions by the total weight.
	WeightNormalize bool
	// Report names a report to which the result is written when the
	// Engine has a Reporter.  Append adds to an existing report instead
	// of replacing it.
	Report string
	Append bool
}

func NewRequest() Request {
	return Request{WeightNormalize: true}
}
