package arrowio_test

import (
	"bytes"
	"testing"

	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/arrowio"
	"github.com/brimdata/tabq/vector"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	b, err := vector.NewBuilder(vector.KindFloat, 3)
	require.NoError(t, err)
	b.Append(vector.Float(1.5))
	b.AppendNull()
	b.Append(vector.Float(-2))
	tbl, err := table.FromColumns(
		table.Column{Name: "s", Value: vector.NewString([]string{"a", "b", "c"})},
		table.Column{Name: "i", Value: vector.NewInt([]int64{1, 2, 3})},
		table.Column{Name: "f", Value: b.Build()},
		table.Column{Name: "b", Value: vector.NewBool([]bool{true, false, true})},
	)
	require.NoError(t, err)
	return tbl
}

func TestRoundTrip(t *testing.T) {
	tbl := sample(t)
	var buf bytes.Buffer
	require.NoError(t, tabio.WriteAll(arrowio.NewWriter(tabio.NopCloser(&buf)), tbl, tbl))

	r := arrowio.NewReader(&buf)
	defer r.Close()
	back, err := tabio.ReadOne(r)
	require.NoError(t, err)
	require.Equal(t, tbl.Names(), back.Names())
	require.Equal(t, 6, back.Len())
	require.Equal(t, []any{1.5, nil, -2.0, 1.5, nil, -2.0}, back.Get("f").Values())

	next, err := r.Read()
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestSchemaChange(t *testing.T) {
	tbl := sample(t)
	sel, err := tbl.Select("s")
	require.NoError(t, err)
	var buf bytes.Buffer
	w := arrowio.NewWriter(tabio.NopCloser(&buf))
	require.NoError(t, w.Write(tbl))
	require.ErrorIs(t, w.Write(sel), arrowio.ErrSchemaChanged)
	require.NoError(t, w.Close())
}
