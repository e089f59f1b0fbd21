package query

import (
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/vector"
)

// totalWeight returns the sum of the weight column when normalizing and 1
// otherwise.
func totalWeight(w *vector.Vector, normalize bool) (vector.Scalar, error) {
	if !normalize {
		return vector.Int(1), nil
	}
	return w.Sum()
}

// buildWeighted returns a table holding the grouping columns unchanged
// followed by weight*value/total for each column in what, under the
// original names.  Summing these contributions per group yields weighted
// means and, for an indicator column, weighted proportions.  A zero total
// produces Inf or NaN contributions.
func buildWeighted(t *table.Table, what, groupings []string, weight string, normalize bool) (*table.Table, error) {
	w, ok := t.Lookup(weight)
	if !ok {
		return nil, t.Missing(weight)
	}
	total, err := totalWeight(w, normalize)
	if err != nil {
		return nil, err
	}
	cols := make([]table.Column, 0, len(groupings)+len(what))
	for _, g := range groupings {
		v, ok := t.Lookup(g)
		if !ok {
			return nil, t.Missing(g)
		}
		cols = append(cols, table.Column{Name: g, Value: v})
	}
	for _, name := range what {
		v, ok := t.Lookup(name)
		if !ok {
			return nil, t.Missing(name)
		}
		wv, err := w.Mul(v)
		if err != nil {
			return nil, err
		}
		if wv, err = wv.Div(total); err != nil {
			return nil, err
		}
		cols = append(cols, table.Column{Name: name, Value: wv})
	}
	return table.FromColumns(cols...)
}
