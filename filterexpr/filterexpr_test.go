package filterexpr_test

import (
	"testing"

	"github.com/brimdata/tabq/filterexpr"
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
		table.Column{Name: "odd name", Value: vector.NewFloat([]float64{0.5, 1, 1.5, 2, 2.5})},
	)
	require.NoError(t, err)
	return tbl
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		src      string
		expected []any
	}{
		{`c3 == "a"`, []any{true, false, true, false, false}},
		{`c1 > 2 and c3 != "e"`, []any{false, false, true, true, false}},
		{`c1 < 2 || c1 >= 5`, []any{true, false, false, false, true}},
		{`not (c1 <= 3)`, []any{false, false, false, true, true}},
		{`!(c3 == "b") && c2 / c1 == 2`, []any{true, false, true, false, true}},
		{`c1 + c2 > 9`, []any{false, false, false, true, true}},
		{"`odd name` * 2 == c1", []any{true, true, true, true, true}},
		{`-c1 < -3`, []any{false, false, false, true, true}},
		{`true`, []any{true, true, true, true, true}},
	}
	tbl := sample(t)
	for _, c := range cases {
		p, err := filterexpr.Compile(c.src)
		require.NoError(t, err, c.src)
		mask, err := p(tbl)
		require.NoError(t, err, c.src)
		require.Equal(t, c.expected, mask.Values(), c.src)
	}
}

func TestMatchesVectorAlgebra(t *testing.T) {
	tbl := sample(t)
	p, err := filterexpr.Compile(`c3 == "a"`)
	require.NoError(t, err)
	got, err := tbl.FilterFunc(p)
	require.NoError(t, err)
	mask, err := tbl.Get("c3").Eq(vector.String("a"))
	require.NoError(t, err)
	expected, err := tbl.Filter(mask)
	require.NoError(t, err)
	require.Equal(t, expected.String(), got.String())
}

func TestEval(t *testing.T) {
	e, err := filterexpr.Parse(`c2 - c1 * 2 + 1`)
	require.NoError(t, err)
	require.Equal(t, `c2 - c1 * 2 + 1`, e.String())
	v, err := e.Eval(sample(t))
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(1), int64(1), int64(1), int64(1)}, v.Values())
}

func TestErrors(t *testing.T) {
	for _, src := range []string{
		``,
		`c1 >`,
		`(c1 > 2`,
		`c1 > 2 c2`,
		`and c1`,
		`"unterminated`,
	} {
		_, err := filterexpr.Compile(src)
		require.Error(t, err, src)
		require.True(t, tqe.IsInvalid(err), src)
	}
	_, err := filterexpr.Parse(`c1 > 2 c2`)
	var serr *filterexpr.SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 7, serr.Offset)

	tbl := sample(t)
	p, err := filterexpr.Compile(`nope > 1`)
	require.NoError(t, err)
	_, err = p(tbl)
	require.ErrorIs(t, err, table.ErrNoSuchColumn)

	p, err = filterexpr.Compile(`c1 + 1`)
	require.NoError(t, err)
	_, err = p(tbl)
	require.True(t, tqe.IsInvalid(err))

	p, err = filterexpr.Compile(`c3 > 1`)
	require.NoError(t, err)
	_, err = p(tbl)
	require.ErrorIs(t, err, vector.ErrKindMismatch)
}
