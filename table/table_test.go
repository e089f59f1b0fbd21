package table_test

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromColumns(
		table.Column{Name: "c1", Value: vector.NewInt([]int64{1, 2, 3, 4, 5})},
		table.Column{Name: "c2", Value: vector.NewInt([]int64{2, 4, 6, 8, 10})},
		table.Column{Name: "c3", Value: vector.NewString([]string{"a", "b", "a", "b", "e"})},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewSchemaFaults(t *testing.T) {
	_, err := table.New(
		[]string{"x", "x", "y"},
		[]*vector.Vector{vector.NewInt([]int64{1}), vector.NewInt([]int64{2}), vector.NewInt([]int64{1, 2})},
	)
	require.Error(t, err)
	require.True(t, tqe.IsSchema(err))
	require.ErrorIs(t, err, table.ErrDuplicateColumn)
	require.ErrorIs(t, err, vector.ErrLengthMismatch)
}

func TestSetReplacesAndAppends(t *testing.T) {
	tbl := sample(t)
	sum, err := tbl.Sum("c1", "c2")
	require.NoError(t, err)
	_, err = tbl.Set(
		table.Column{Name: "c4", Value: sum},
		table.Column{Name: "c1", Value: vector.Int(7)},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2", "c3", "c4"}, tbl.Names())
	require.Equal(t, []any{int64(7), int64(7), int64(7), int64(7), int64(7)}, tbl.Get("c1").Values())
	total, err := tbl.Get("c4").Sum()
	require.NoError(t, err)
	require.Equal(t, int64(45), total.Any())

	_, err = tbl.Set(
		table.Column{Name: "ok", Value: vector.Int(1)},
		table.Column{Name: "bad", Value: vector.NewInt([]int64{1})},
	)
	require.True(t, tqe.IsSchema(err))
	_, ok := tbl.Lookup("ok")
	require.False(t, ok)
}

func TestSelectCopies(t *testing.T) {
	tbl := sample(t)
	sel, err := tbl.Select("c3", "c1")
	require.NoError(t, err)
	require.Equal(t, []string{"c3", "c1"}, sel.Names())

	_, err = tbl.Set(table.Column{Name: "c1", Value: vector.Int(0)})
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2), int64(3), int64(4), int64(5)}, sel.Get("c1").Values())

	_, err = tbl.Select("nope")
	require.ErrorIs(t, err, table.ErrNoSuchColumn)
	require.True(t, tqe.IsInvalid(err))
	require.NotContains(t, err.Error(), "did you mean")

	_, err = tbl.Select("c4")
	require.ErrorIs(t, err, table.ErrNoSuchColumn)
	require.ErrorContains(t, err, `did you mean "c1"?`)
}

func TestFilter(t *testing.T) {
	tbl := sample(t)
	out, err := tbl.FilterFunc(func(t *table.Table) (*vector.Vector, error) {
		return t.Get("c3").Eq(vector.String("a"))
	})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	require.Equal(t, []any{int64(1), "a"}, []any{out.Row(0)[0], out.Row(0)[2]})
	require.Equal(t, []any{int64(3), int64(6), "a"}, out.Row(1))

	none, err := tbl.Filter(vector.NewBool([]bool{false, false, false, false, false}))
	require.NoError(t, err)
	require.Equal(t, 0, none.Len())
	require.Equal(t, 3, none.Width())

	_, err = tbl.Filter(tbl.Get("c1"))
	require.True(t, tqe.IsInvalid(err))
}

func TestSelection(t *testing.T) {
	b, err := vector.NewBuilder(vector.KindBool, 3)
	require.NoError(t, err)
	b.Append(vector.Bool(true))
	b.AppendNull()
	b.Append(vector.Bool(true))
	rows, err := table.Selection(b.Build(), 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 2}, rows.ToArray())
}

func TestRecordRoundTrip(t *testing.T) {
	tbl := sample(t)
	rec := tbl.Record()
	defer rec.Release()
	require.EqualValues(t, 5, rec.NumRows())
	back, err := table.FromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, tbl.Names(), back.Names())
	for _, name := range tbl.Names() {
		require.True(t, vector.Equal(tbl.Get(name), back.Get(name)), name)
	}

	at := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer at.Release()
	fromTable, err := table.FromArrowTable(at)
	require.NoError(t, err)
	require.Equal(t, 5, fromTable.Len())
}

func TestZerosAndString(t *testing.T) {
	tbl := sample(t)
	require.Equal(t, int64(0), mustSum(t, tbl.Zeros()))
	require.Equal(t, 5, tbl.Zeros().Len())
	require.Contains(t, tbl.String(), "c1\tc2\tc3\n1\t2\ta\n")
}

func mustSum(t *testing.T, v *vector.Vector) any {
	t.Helper()
	s, err := v.Sum()
	require.NoError(t, err)
	return s.Any()
}
