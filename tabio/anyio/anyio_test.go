package anyio_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/anyio"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	for path, format := range map[string]string{
		"world_data.psv":   "psv",
		"x.csv.gz":         "csv",
		"x.tsv.zst":        "tsv",
		"x.arrows.lz4":     "arrows",
		"x.PARQUET":        "parquet",
		"x.arrows":         "arrows",
		"report.html":      "html",
		"notes.md":         "",
		"dir.v2/no_suffix": "",
	} {
		require.Equal(t, format, anyio.FormatFromPath(path), path)
	}
}

func TestOpenGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("a|b\n1|x\n2|y\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	path := filepath.Join(t.TempDir(), "data.psv.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	r, err := anyio.Open(path, anyio.ReaderOpts{})
	require.NoError(t, err)
	defer r.Close()
	tbl, err := tabio.ReadOne(r)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2)}, tbl.Get("a").Values())
}

func TestDecompress(t *testing.T) {
	const data = "a|b\n1|x\n2|y\n"
	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var lbuf bytes.Buffer
	lw := lz4.NewWriter(&lbuf)
	_, err = lw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	for _, b := range [][]byte{[]byte(data), zbuf.Bytes(), lbuf.Bytes()} {
		r, err := anyio.Decompress(bytes.NewReader(b))
		require.NoError(t, err)
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.Equal(t, data, string(out))
	}
}

func TestWriterRoundTrip(t *testing.T) {
	src, err := anyio.NewReader(bytes.NewReader([]byte("a,b\n1,x\n")), anyio.ReaderOpts{Format: "csv"})
	require.NoError(t, err)
	tbl, err := tabio.ReadOne(src)
	require.NoError(t, err)
	for _, format := range []string{"arrows", "parquet", "tsv"} {
		var buf bytes.Buffer
		w, err := anyio.NewWriter(tabio.NopCloser(&buf), anyio.WriterOpts{Format: format})
		require.NoError(t, err)
		require.NoError(t, tabio.WriteAll(w, tbl))
		r, err := anyio.NewReader(bytes.NewReader(buf.Bytes()), anyio.ReaderOpts{Format: format})
		require.NoError(t, err, format)
		back, err := tabio.ReadOne(r)
		require.NoError(t, err, format)
		require.Equal(t, tbl.String(), back.String(), format)
	}
	_, err = anyio.NewWriter(tabio.NopCloser(&bytes.Buffer{}), anyio.WriterOpts{Format: "xml"})
	require.Error(t, err)
}
