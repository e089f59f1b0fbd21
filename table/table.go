// Package table implements Table, an ordered set of equal-length named
// Vectors.
//
// Set mutates a Table in place.  Select and Filter always return a new
// Table backed by newly allocated column data, so a derived Table never
// observes later changes to its source.  A Table is not safe for
// concurrent mutation.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/agnivade/levenshtein"
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

var (
	ErrNoSuchColumn    = errors.New("no such column")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

type Table struct {
	names []string
	cols  []*vector.Vector
	rows  int
}

// Column pairs a name with a value for Set and FromColumns.  A Scalar
// value is broadcast to the table's row count.
type Column struct {
	Name  string
	Value vector.Operand
}

// Predicate computes a row mask from a Table.
type Predicate func(*Table) (*vector.Vector, error)

// New creates a Table from parallel name and vector slices.  Every schema
// problem is reported, not just the first.
func New(names []string, cols []*vector.Vector) (*Table, error) {
	if len(names) != len(cols) {
		return nil, tqe.E(tqe.Schema, "%d names for %d columns", len(names), len(cols))
	}
	var err error
	seen := make(map[string]bool)
	for k, name := range names {
		if seen[name] {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateColumn, name))
		}
		seen[name] = true
		if cols[k] == nil {
			err = multierr.Append(err, fmt.Errorf("column %q: nil vector", name))
			continue
		}
		if n := cols[0]; n != nil && cols[k].Len() != n.Len() {
			err = multierr.Append(err, fmt.Errorf("column %q: %w: %d != %d", name, vector.ErrLengthMismatch, cols[k].Len(), n.Len()))
		}
	}
	if err != nil {
		return nil, tqe.E(tqe.Schema, err)
	}
	t := &Table{names: slices.Clone(names), cols: slices.Clone(cols)}
	if len(cols) > 0 {
		t.rows = cols[0].Len()
	}
	return t, nil
}

// FromColumns creates a Table from named operands.  Scalars are broadcast
// to the length of the vectors, so at least one vector is required when
// any scalar is present.
func FromColumns(cols ...Column) (*Table, error) {
	rows := -1
	for _, c := range cols {
		if v, ok := c.Value.(*vector.Vector); ok && v != nil {
			rows = v.Len()
			break
		}
	}
	names := make([]string, 0, len(cols))
	vecs := make([]*vector.Vector, 0, len(cols))
	for _, c := range cols {
		v, err := resolve(c, rows)
		if err != nil {
			return nil, err
		}
		names = append(names, c.Name)
		vecs = append(vecs, v)
	}
	return New(names, vecs)
}

// FromRecord converts an Arrow record batch.
func FromRecord(rec arrow.Record) (*Table, error) {
	schema := rec.Schema()
	names := make([]string, 0, rec.NumCols())
	cols := make([]*vector.Vector, 0, rec.NumCols())
	for k, arr := range rec.Columns() {
		v, err := vector.FromArrow(arr)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", schema.Field(k).Name, err)
		}
		names = append(names, schema.Field(k).Name)
		cols = append(cols, v)
	}
	return New(names, cols)
}

// FromArrowTable converts an Arrow table, concatenating column chunks.
func FromArrowTable(at arrow.Table) (*Table, error) {
	schema := at.Schema()
	names := make([]string, 0, at.NumCols())
	cols := make([]*vector.Vector, 0, at.NumCols())
	for k := 0; k < int(at.NumCols()); k++ {
		name := schema.Field(k).Name
		v, err := vector.FromChunked(at.Column(k).Data())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		names = append(names, name)
		cols = append(cols, v)
	}
	return New(names, cols)
}

// Record exports the Table as an Arrow record batch.  The caller should
// Release it.
func (t *Table) Record() arrow.Record {
	fields := make([]arrow.Field, 0, len(t.cols))
	arrs := make([]arrow.Array, 0, len(t.cols))
	for k, v := range t.cols {
		fields = append(fields, arrow.Field{Name: t.names[k], Type: ArrowType(v.Kind()), Nullable: true})
		arrs = append(arrs, v.Arrow())
	}
	return array.NewRecord(arrow.NewSchema(fields, nil), arrs, int64(t.rows))
}

// ArrowType returns the Arrow data type used to store a vector kind.
func ArrowType(kind vector.Kind) arrow.DataType {
	switch kind {
	case vector.KindInt:
		return arrow.PrimitiveTypes.Int64
	case vector.KindFloat:
		return arrow.PrimitiveTypes.Float64
	case vector.KindString:
		return arrow.BinaryTypes.String
	case vector.KindBool:
		return arrow.FixedWidthTypes.Boolean
	}
	return arrow.Null
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.cols)
}

func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

func (t *Table) Columns() []*vector.Vector {
	return slices.Clone(t.cols)
}

// Get returns the named column or nil if there is no such column.
func (t *Table) Get(name string) *vector.Vector {
	v, _ := t.Lookup(name)
	return v
}

func (t *Table) Lookup(name string) (*vector.Vector, bool) {
	if k := slices.Index(t.names, name); k >= 0 {
		return t.cols[k], true
	}
	return nil, false
}

// Row materializes row i.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.cols))
	for k, v := range t.cols {
		row[k] = v.Value(i)
	}
	return row
}

// Select returns a new Table holding copies of the named columns in the
// given order.  With no names, every column is copied.
func (t *Table) Select(names ...string) (*Table, error) {
	if len(names) == 0 {
		names = t.names
	}
	cols := make([]*vector.Vector, 0, len(names))
	for _, name := range names {
		v, ok := t.Lookup(name)
		if !ok {
			return nil, t.Missing(name)
		}
		cols = append(cols, v.Copy())
	}
	return New(names, cols)
}

// Filter returns a new Table holding the rows where mask is true.  A null
// mask slot drops the row.
func (t *Table) Filter(mask *vector.Vector) (*Table, error) {
	rows, err := Selection(mask, t.rows)
	if err != nil {
		return nil, err
	}
	return t.Take(rows)
}

// FilterFunc evaluates p against the Table and filters by the result.
func (t *Table) FilterFunc(p Predicate) (*Table, error) {
	mask, err := p(t)
	if err != nil {
		return nil, err
	}
	return t.Filter(mask)
}

// Selection converts a boolean mask into the set of selected row numbers.
func Selection(mask *vector.Vector, rows int) (*roaring.Bitmap, error) {
	if mask == nil {
		return nil, tqe.E(tqe.Invalid, "nil filter mask")
	}
	if mask.Kind() != vector.KindBool {
		return nil, tqe.E(tqe.Invalid, "filter mask must be bool, not %s", mask.Kind())
	}
	if mask.Len() != rows {
		return nil, tqe.E(tqe.Invalid, fmt.Errorf("filter mask: %w: %d != %d", vector.ErrLengthMismatch, mask.Len(), rows))
	}
	bm := roaring.New()
	for k := 0; k < rows; k++ {
		if ok, _ := mask.At(k).Truth(); ok {
			bm.Add(uint32(k))
		}
	}
	return bm, nil
}

// Take returns a new Table holding the selected rows in ascending order.
func (t *Table) Take(rows *roaring.Bitmap) (*Table, error) {
	idx := make([]int, 0, rows.GetCardinality())
	it := rows.Iterator()
	for it.HasNext() {
		k := int(it.Next())
		if k >= t.rows {
			return nil, tqe.E(tqe.Invalid, "row %d out of range", k)
		}
		idx = append(idx, k)
	}
	cols := make([]*vector.Vector, 0, len(t.cols))
	for _, v := range t.cols {
		cols = append(cols, v.Take(idx))
	}
	out, err := New(t.names, cols)
	if err != nil {
		return nil, err
	}
	out.rows = len(idx)
	return out, nil
}

// Rename returns a Table sharing this Table's vectors under new names.
func (t *Table) Rename(names []string) (*Table, error) {
	return New(names, t.cols)
}

// Set replaces each named column in place, keeping its position, or
// appends it if the name is new.  Nothing is changed if any value is
// invalid.  Set returns the receiver.
func (t *Table) Set(cols ...Column) (*Table, error) {
	rows := t.rows
	if len(t.cols) == 0 {
		rows = -1
		for _, c := range cols {
			if v, ok := c.Value.(*vector.Vector); ok && v != nil {
				rows = v.Len()
				break
			}
		}
	}
	vecs := make([]*vector.Vector, 0, len(cols))
	for _, c := range cols {
		v, err := resolve(c, rows)
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, v)
	}
	for k, c := range cols {
		if at := slices.Index(t.names, c.Name); at >= 0 {
			t.cols[at] = vecs[k]
		} else {
			t.names = append(t.names, c.Name)
			t.cols = append(t.cols, vecs[k])
		}
	}
	if len(t.cols) > 0 {
		t.rows = t.cols[0].Len()
	}
	return t, nil
}

func resolve(c Column, rows int) (*vector.Vector, error) {
	if c.Name == "" {
		return nil, tqe.E(tqe.Invalid, "column name must not be empty")
	}
	switch v := c.Value.(type) {
	case vector.Scalar:
		if rows < 0 {
			return nil, tqe.E(tqe.Invalid, "column %q: cannot broadcast a scalar without a row count", c.Name)
		}
		return vector.Broadcast(v, rows)
	case *vector.Vector:
		if v == nil {
			return nil, tqe.E(tqe.Invalid, "column %q: nil vector", c.Name)
		}
		if rows >= 0 && v.Len() != rows {
			return nil, tqe.E(tqe.Schema, fmt.Errorf("column %q: %w: %d != %d", c.Name, vector.ErrLengthMismatch, v.Len(), rows))
		}
		return v, nil
	}
	return nil, tqe.E(tqe.Invalid, "column %q: missing value", c.Name)
}

// Zeros returns an Int vector of zeros with one slot per row.
func (t *Table) Zeros() *vector.Vector {
	return vector.Zeros(t.rows)
}

// Sum adds the named columns elementwise, left to right.
func (t *Table) Sum(names ...string) (*vector.Vector, error) {
	if len(names) == 0 {
		return nil, tqe.E(tqe.Invalid, "sum requires at least one column")
	}
	acc, ok := t.Lookup(names[0])
	if !ok {
		return nil, t.Missing(names[0])
	}
	for _, name := range names[1:] {
		v, ok := t.Lookup(name)
		if !ok {
			return nil, t.Missing(name)
		}
		var err error
		if acc, err = acc.Add(v); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.names, "\t"))
	b.WriteByte('\n')
	for i := 0; i < t.rows; i++ {
		for k, v := range t.cols {
			if k > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(v.At(i).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func noSuchColumn(name string) error {
	return tqe.E(tqe.Invalid, fmt.Errorf("%w: %q", ErrNoSuchColumn, name))
}

// NoSuchColumn returns the error used for a reference to a missing column.
func NoSuchColumn(name string) error {
	return noSuchColumn(name)
}

// Missing is like NoSuchColumn but suggests the column of t whose name is
// nearest to name when one is close enough to be a likely typo.
func (t *Table) Missing(name string) error {
	best, dist := "", len(name)/3+1
	for _, n := range t.names {
		if d := levenshtein.ComputeDistance(name, n); d <= dist && (best == "" || d < dist) {
			best, dist = n, d
		}
	}
	if best == "" {
		return noSuchColumn(name)
	}
	return tqe.E(tqe.Invalid, fmt.Errorf("%w: %q (did you mean %q?)", ErrNoSuchColumn, name, best))
}
