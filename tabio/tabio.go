// Package tabio defines the interfaces between tables and the byte
// streams they are read from and written to.  Format implementations live
// in subpackages.
package tabio

import (
	"io"

	"github.com/brimdata/tabq/table"
	"go.uber.org/multierr"
)

// Reader wraps the Read method.
//
// Read returns the next table and a nil error, a nil table and the next
// error, or a nil table and nil error to indicate that no tables remain.
// Most formats hold a single table.
type Reader interface {
	Read() (*table.Table, error)
}

type ReadCloser interface {
	Reader
	io.Closer
}

// Writer wraps the Write method.  A Writer writes each table it is given
// after the previous ones; formats with a fixed schema reject a table
// whose columns differ from the first.
type Writer interface {
	Write(*table.Table) error
}

type WriteCloser interface {
	Writer
	io.Closer
}

func Extension(format string) string {
	switch format {
	case "arrows":
		return ".arrows"
	case "csv":
		return ".csv"
	case "psv":
		return ".psv"
	case "tsv":
		return ".tsv"
	case "parquet":
		return ".parquet"
	case "table":
		return ".tbl"
	case "html":
		return ".html"
	default:
		return ""
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopReadCloser struct {
	Reader
}

func (nopReadCloser) Close() error { return nil }

func NopReadCloser(r Reader) ReadCloser {
	return nopReadCloser{r}
}

// ReadOne returns the first table from r.  It is an error for r to hold
// no tables.
func ReadOne(r Reader) (*table.Table, error) {
	t, err := r.Read()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return t, nil
}

// WriteAll writes each table to w and then closes it.
func WriteAll(w WriteCloser, tables ...*table.Table) error {
	var err error
	for _, t := range tables {
		if err = w.Write(t); err != nil {
			break
		}
	}
	return multierr.Append(err, w.Close())
}
