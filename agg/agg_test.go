package agg_test

import (
	"testing"

	"github.com/brimdata/tabq/agg"
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

func TestParse(t *testing.T) {
	cases := []struct {
		token string
		kind  agg.Kind
	}{
		{"", agg.Sum},
		{"sum", agg.Sum},
		{"mean", agg.Mean},
		{"avg", agg.Mean},
		{"average", agg.Mean},
		{"min", agg.Min},
		{"max", agg.Max},
		{"count", agg.Count},
	}
	for _, c := range cases {
		k, err := agg.Parse(c.token)
		require.NoError(t, err, c.token)
		require.Equal(t, c.kind, k, c.token)
	}
	_, err := agg.Parse("median")
	require.ErrorIs(t, err, agg.ErrInvalidAggregation)
	require.True(t, tqe.IsInvalid(err))
}

func TestReduce(t *testing.T) {
	c1 := vector.NewInt([]int64{1, 2, 3, 4, 5})
	for k, expected := range map[agg.Kind]any{
		agg.Sum:   int64(15),
		agg.Mean:  3.0,
		agg.Min:   int64(1),
		agg.Max:   int64(5),
		agg.Count: int64(5),
	} {
		s, err := agg.Reduce(c1, k)
		require.NoError(t, err)
		require.Equal(t, expected, s.Any(), k.String())
	}
}

func TestGroupBySum(t *testing.T) {
	out, err := agg.GroupBy(sample(t), []string{"c3"}, []string{"c1", "c2"}, agg.Sum)
	require.NoError(t, err)
	require.Equal(t, []string{"c3", "c1_sum", "c2_sum"}, out.Names())
	require.Equal(t, []any{"a", int64(4), int64(8)}, out.Row(0))
	require.Equal(t, []any{"b", int64(6), int64(12)}, out.Row(1))
	require.Equal(t, []any{"e", int64(5), int64(10)}, out.Row(2))
}

func TestGroupBySortsByFirstKey(t *testing.T) {
	tbl, err := table.FromColumns(
		table.Column{Name: "k", Value: vector.NewInt([]int64{3, 1, 2, 1, 3})},
		table.Column{Name: "x", Value: vector.NewFloat([]float64{1, 2, 3, 4, 5})},
	)
	require.NoError(t, err)
	out, err := agg.GroupBy(tbl, []string{"k"}, []string{"x"}, agg.Mean)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, out.Get("k").Values())
	require.Equal(t, []any{3.0, 3.0, 3.0}, out.Get("x_mean").Values())
}

func TestGroupByMultipleKeys(t *testing.T) {
	tbl, err := table.FromColumns(
		table.Column{Name: "a", Value: vector.NewString([]string{"x", "x", "y", "x"})},
		table.Column{Name: "b", Value: vector.NewBool([]bool{true, false, true, true})},
		table.Column{Name: "v", Value: vector.NewString([]string{"p", "q", "r", "s"})},
	)
	require.NoError(t, err)
	out, err := agg.GroupBy(tbl, []string{"a", "b"}, []string{"v"}, agg.Max)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	require.Equal(t, []any{"x", true, "s"}, out.Row(0))
	require.Equal(t, []any{"x", false, "q"}, out.Row(1))
	require.Equal(t, []any{"y", true, "r"}, out.Row(2))

	counts, err := agg.GroupBy(tbl, []string{"a"}, []string{"v"}, agg.Count)
	require.NoError(t, err)
	require.Equal(t, []any{int64(3), int64(1)}, counts.Get("v_count").Values())
}

func TestGroupByErrors(t *testing.T) {
	_, err := agg.GroupBy(sample(t), nil, []string{"c1"}, agg.Sum)
	require.True(t, tqe.IsInvalid(err))
	_, err = agg.GroupBy(sample(t), []string{"nope"}, []string{"c1"}, agg.Sum)
	require.ErrorIs(t, err, table.ErrNoSuchColumn)
	_, err = agg.GroupBy(sample(t), []string{"c1"}, []string{"c3"}, agg.Sum)
	require.True(t, tqe.IsInvalid(err))
}

func TestNullsInGroups(t *testing.T) {
	b, err := vector.NewBuilder(vector.KindInt, 3)
	require.NoError(t, err)
	b.AppendNull()
	b.Append(vector.Int(7))
	b.AppendNull()
	tbl, err := table.FromColumns(
		table.Column{Name: "k", Value: vector.NewString([]string{"a", "b", "b"})},
		table.Column{Name: "v", Value: b.Build()},
	)
	require.NoError(t, err)
	sums, err := agg.GroupBy(tbl, []string{"k"}, []string{"v"}, agg.Sum)
	require.NoError(t, err)
	require.Equal(t, []any{int64(0), int64(7)}, sums.Get("v_sum").Values())
	mins, err := agg.GroupBy(tbl, []string{"k"}, []string{"v"}, agg.Min)
	require.NoError(t, err)
	require.Equal(t, []any{nil, int64(7)}, mins.Get("v_min").Values())
}
