// Package frame provides a display-oriented view of a query result in
// which the grouping columns become a row index.
package frame

import (
	"fmt"
	"math"

	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
	"golang.org/x/exp/slices"
)

type Frame struct {
	index   []string
	columns []string
	keys    [][]any
	rows    [][]any
}

// New materializes t, promoting the named columns to the row index.
func New(t *table.Table, index ...string) (*Frame, error) {
	var cols []string
	for _, name := range index {
		if _, ok := t.Lookup(name); !ok {
			return nil, t.Missing(name)
		}
	}
	for _, name := range t.Names() {
		if !slices.Contains(index, name) {
			cols = append(cols, name)
		}
	}
	f := &Frame{
		index:   slices.Clone(index),
		columns: cols,
		keys:    make([][]any, t.Len()),
		rows:    make([][]any, t.Len()),
	}
	idx := lookup(t, f.index)
	vals := lookup(t, f.columns)
	for i := 0; i < t.Len(); i++ {
		f.keys[i] = materialize(idx, i)
		f.rows[i] = materialize(vals, i)
	}
	return f, nil
}

func lookup(t *table.Table, names []string) []*vector.Vector {
	vecs := make([]*vector.Vector, 0, len(names))
	for _, name := range names {
		vecs = append(vecs, t.Get(name))
	}
	return vecs
}

func materialize(vecs []*vector.Vector, row int) []any {
	out := make([]any, len(vecs))
	for k, v := range vecs {
		out[k] = v.Value(row)
	}
	return out
}

func (f *Frame) Index() []string {
	return slices.Clone(f.index)
}

func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Key returns the index values of a row.  It is empty when the frame has
// no index.
func (f *Frame) Key(row int) []any {
	return slices.Clone(f.keys[row])
}

// Row returns the non-index values of a row.
func (f *Frame) Row(row int) []any {
	return slices.Clone(f.rows[row])
}

// At returns the value of column col in row position row.
func (f *Frame) At(row int, col string) (any, error) {
	if row < 0 || row >= len(f.rows) {
		return nil, tqe.E(tqe.Invalid, "row %d out of range", row)
	}
	k := slices.Index(f.columns, col)
	if k < 0 {
		return nil, table.NoSuchColumn(col)
	}
	return f.rows[row][k], nil
}

// Loc returns the value of column col in the row whose index equals key.
// Go integer and float key values match the index's int64 and float64
// values.
func (f *Frame) Loc(col string, key ...any) (any, error) {
	if len(key) != len(f.index) {
		return nil, tqe.E(tqe.Invalid, "need %d index values, got %d", len(f.index), len(key))
	}
	want := make([]any, len(key))
	for k, v := range key {
		s, err := vector.ScalarOf(v)
		if err != nil {
			return nil, tqe.E(tqe.Invalid, err)
		}
		want[k] = s.Any()
	}
	for row, have := range f.keys {
		if equal(have, want) {
			return f.At(row, col)
		}
	}
	return nil, tqe.E(tqe.NotFound, "no row with index %s", fmt.Sprint(key...))
}

// equal compares index keys.  NaN matches NaN since grouping puts all NaN
// keys in one group.
func equal(a, b []any) bool {
	for k := range a {
		if a[k] == b[k] {
			continue
		}
		x, ok1 := a[k].(float64)
		y, ok2 := b[k].(float64)
		if !ok1 || !ok2 || !math.IsNaN(x) || !math.IsNaN(y) {
			return false
		}
	}
	return true
}
