// Package arrowio reads and writes tables in the Arrow IPC stream format.
package arrowio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/brimdata/tabq/table"
	"go.uber.org/multierr"
)

var ErrSchemaChanged = errors.New("arrowio: table schema differs from the first table written")

// Reader reads an entire IPC stream as one table.
type Reader struct {
	r    io.Reader
	ipc  *ipc.Reader
	done bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read concatenates every record batch in the stream.
func (r *Reader) Read() (*table.Table, error) {
	if r.done {
		return nil, nil
	}
	r.done = true
	rr, err := ipc.NewReader(r.r, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("arrowio: %w", err)
	}
	r.ipc = rr
	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for rr.Next() {
		rec := rr.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := rr.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("arrowio: %w", err)
	}
	at := array.NewTableFromRecords(rr.Schema(), recs)
	defer at.Release()
	return table.FromArrowTable(at)
}

func (r *Reader) Close() error {
	if r.ipc != nil {
		r.ipc.Release()
		r.ipc = nil
	}
	return nil
}

// Writer writes each table as one record batch of a single IPC stream.
type Writer struct {
	w      io.WriteCloser
	writer *ipc.Writer
	schema *arrow.Schema
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(t *table.Table) error {
	rec := t.Record()
	defer rec.Release()
	if w.writer == nil {
		w.schema = rec.Schema()
		w.writer = ipc.NewWriter(w.w, ipc.WithSchema(w.schema), ipc.WithAllocator(memory.DefaultAllocator))
	} else if !w.schema.Equal(rec.Schema()) {
		return ErrSchemaChanged
	}
	return w.writer.Write(rec)
}

func (w *Writer) Close() error {
	var err error
	if w.writer != nil {
		err = w.writer.Close()
		w.writer = nil
	}
	return multierr.Append(err, w.w.Close())
}
