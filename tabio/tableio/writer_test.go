package tableio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brimdata/tabq/frame"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/tableio"
	"github.com/brimdata/tabq/vector"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	b, err := vector.NewBuilder(vector.KindFloat, 2)
	require.NoError(t, err)
	b.Append(vector.Float(1234.5))
	b.AppendNull()
	tbl, err := table.FromColumns(
		table.Column{Name: "name", Value: vector.NewString([]string{"a", "bb"})},
		table.Column{Name: "n", Value: vector.NewInt([]int64{1234567, 8})},
		table.Column{Name: "x", Value: b.Build()},
	)
	require.NoError(t, err)
	return tbl
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tabio.WriteAll(tableio.NewWriter(tabio.NopCloser(&buf), tableio.WriterOpts{}), sample(t)))
	expected := `
NAME N       X
a    1234567 1234.5
bb   8       -
`
	require.Equal(t, strings.TrimLeft(expected, "\n"), buf.String())
}

func TestGrouping(t *testing.T) {
	var buf bytes.Buffer
	w := tableio.NewWriter(tabio.NopCloser(&buf), tableio.WriterOpts{Grouping: true, Precision: 2})
	require.NoError(t, tabio.WriteAll(w, sample(t)))
	require.Contains(t, buf.String(), "1,234,567")
	require.Contains(t, buf.String(), "1,234.50")
}

func TestWriteFrame(t *testing.T) {
	f, err := frame.New(sample(t), "name")
	require.NoError(t, err)
	var buf bytes.Buffer
	w := tableio.NewWriter(tabio.NopCloser(&buf), tableio.WriterOpts{})
	require.NoError(t, w.WriteFrame(f))
	require.NoError(t, w.Close())
	require.True(t, strings.HasPrefix(buf.String(), "NAME N"))
	require.Equal(t, 3, strings.Count(buf.String(), "\n"))
}
