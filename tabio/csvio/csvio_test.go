package csvio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/csvio"
	"github.com/brimdata/tabq/vector"
	"github.com/stretchr/testify/require"
)

const psv = `country|entcari|npopuli|landlocked
France|299.5|67000000|false
Chad||16000000|true
Nauru|0.05|12000|false
`

func TestReadInfersKinds(t *testing.T) {
	tbl, err := tabio.ReadOne(csvio.NewReader(strings.NewReader(psv), csvio.ReaderOpts{Delimiter: '|'}))
	require.NoError(t, err)
	require.Equal(t, []string{"country", "entcari", "npopuli", "landlocked"}, tbl.Names())
	require.Equal(t, vector.KindString, tbl.Get("country").Kind())
	require.Equal(t, vector.KindFloat, tbl.Get("entcari").Kind())
	require.Equal(t, vector.KindInt, tbl.Get("npopuli").Kind())
	require.Equal(t, vector.KindBool, tbl.Get("landlocked").Kind())
	require.Equal(t, []any{299.5, nil, 0.05}, tbl.Get("entcari").Values())
}

func TestStringsOnly(t *testing.T) {
	tbl, err := tabio.ReadOne(csvio.NewReader(strings.NewReader("a,b\n1,x\n"), csvio.ReaderOpts{StringsOnly: true}))
	require.NoError(t, err)
	require.Equal(t, []any{"1"}, tbl.Get("a").Values())
}

func TestEmpty(t *testing.T) {
	_, err := csvio.NewReader(strings.NewReader(""), csvio.ReaderOpts{}).Read()
	require.ErrorIs(t, err, csvio.ErrEmpty)
}

func TestRoundTrip(t *testing.T) {
	tbl, err := tabio.ReadOne(csvio.NewReader(strings.NewReader(psv), csvio.ReaderOpts{Delimiter: '|'}))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tabio.WriteAll(csvio.NewWriter(tabio.NopCloser(&buf), csvio.WriterOpts{Delimiter: '|'}), tbl))
	require.Equal(t, psv, buf.String())

	sel, err := tbl.Select("country")
	require.NoError(t, err)
	w := csvio.NewWriter(tabio.NopCloser(&buf), csvio.WriterOpts{})
	require.NoError(t, w.Write(tbl))
	require.ErrorIs(t, w.Write(sel), csvio.ErrNotDataFrame)
}
