// Package anyio selects a table reader or writer by format name or file
// extension.
package anyio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/arrowio"
	"github.com/brimdata/tabq/tabio/csvio"
	"github.com/brimdata/tabq/tabio/htmlio"
	"github.com/brimdata/tabq/tabio/parquetio"
	"github.com/brimdata/tabq/tabio/tableio"
	"go.uber.org/multierr"
)

type ReaderOpts struct {
	Format string
	CSV    csvio.ReaderOpts
}

type WriterOpts struct {
	Format  string
	CSV     csvio.WriterOpts
	Parquet parquetio.WriterOpts
	Table   tableio.WriterOpts
}

// FormatFromPath infers a format from a file extension, ignoring a
// trailing compression extension.  It returns "" if the extension is not
// recognized.
func FormatFromPath(path string) string {
	path = strings.ToLower(path)
	switch ext := filepath.Ext(path); ext {
	case ".gz", ".zst", ".lz4":
		path = strings.TrimSuffix(path, ext)
	}
	switch filepath.Ext(path) {
	case ".arrows", ".arrow":
		return "arrows"
	case ".csv":
		return "csv"
	case ".psv":
		return "psv"
	case ".tsv":
		return "tsv"
	case ".parquet":
		return "parquet"
	case ".tbl", ".txt":
		return "table"
	case ".html", ".htm":
		return "html"
	}
	return ""
}

func delimiter(format string, d rune) rune {
	if d != 0 {
		return d
	}
	switch format {
	case "psv":
		return '|'
	case "tsv":
		return '\t'
	}
	return ','
}

// NewReader returns a reader for r in the given format.  Parquet input
// must be seekable.
func NewReader(r io.Reader, opts ReaderOpts) (tabio.ReadCloser, error) {
	switch opts.Format {
	case "csv", "psv", "tsv":
		copts := opts.CSV
		copts.Delimiter = delimiter(opts.Format, copts.Delimiter)
		return tabio.NopReadCloser(csvio.NewReader(r, copts)), nil
	case "arrows":
		return arrowio.NewReader(r), nil
	case "parquet":
		pr, err := parquetio.NewReader(r)
		if err != nil {
			return nil, err
		}
		return tabio.NopReadCloser(pr), nil
	}
	return nil, fmt.Errorf("no such input format: %q", opts.Format)
}

// NewWriter returns a writer for w in the given format.
func NewWriter(w io.WriteCloser, opts WriterOpts) (tabio.WriteCloser, error) {
	switch opts.Format {
	case "csv", "psv", "tsv":
		copts := opts.CSV
		copts.Delimiter = delimiter(opts.Format, copts.Delimiter)
		return csvio.NewWriter(w, copts), nil
	case "arrows":
		return arrowio.NewWriter(w), nil
	case "parquet":
		return parquetio.NewWriter(w, opts.Parquet), nil
	case "table":
		return tableio.NewWriter(w, opts.Table), nil
	case "html":
		return htmlio.NewWriter(w), nil
	}
	return nil, fmt.Errorf("no such output format: %q", opts.Format)
}

type file struct {
	tabio.ReadCloser
	closers []io.Closer
}

func (f *file) Close() error {
	err := f.ReadCloser.Close()
	for _, c := range f.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Open opens path for reading.  An empty format is inferred from the
// file extension.  Compressed input is detected and decompressed except
// for Parquet, which must be read in place.
func Open(path string, opts ReaderOpts) (tabio.ReadCloser, error) {
	if opts.Format == "" || opts.Format == "auto" {
		opts.Format = FormatFromPath(path)
		if opts.Format == "" {
			return nil, fmt.Errorf("%s: cannot infer format from file name", path)
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = f
	closers := []io.Closer{f}
	if opts.Format != "parquet" {
		dr, err := Decompress(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		r = dr
		closers = []io.Closer{dr, f}
	}
	rc, err := NewReader(r, opts)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &file{ReadCloser: rc, closers: closers}, nil
}
