// Package parquetio reads and writes tables as Parquet files through the
// Arrow Parquet bridge.
package parquetio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/apache/arrow/go/v11/parquet"
	"github.com/apache/arrow/go/v11/parquet/compress"
	"github.com/apache/arrow/go/v11/parquet/pqarrow"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tabio"
	"go.uber.org/multierr"
)

var (
	ErrNotSeekable   = errors.New("parquetio: reader cannot seek")
	ErrSchemaChanged = errors.New("parquetio: table schema differs from the first table written")
)

type Reader struct {
	r    parquet.ReaderAtSeeker
	done bool
}

// NewReader returns a Reader for r, which must implement io.ReaderAt and
// io.Seeker since the Parquet footer is read first.
func NewReader(r io.Reader) (*Reader, error) {
	rs, ok := r.(parquet.ReaderAtSeeker)
	if !ok {
		return nil, ErrNotSeekable
	}
	return &Reader{r: rs}, nil
}

func (r *Reader) Read() (*table.Table, error) {
	if r.done {
		return nil, nil
	}
	r.done = true
	at, err := pqarrow.ReadTable(context.Background(), r.r, parquet.NewReaderProperties(memory.DefaultAllocator), pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("parquetio: %w", err)
	}
	defer at.Release()
	return table.FromArrowTable(at)
}

type WriterOpts struct {
	// Compression is one of "", "snappy", "gzip", or "zstd".
	Compression string
}

// Writer writes each table as a row group of one Parquet file.
type Writer struct {
	w      io.WriteCloser
	opts   WriterOpts
	fw     *pqarrow.FileWriter
	schema *arrow.Schema
}

func NewWriter(w io.WriteCloser, opts WriterOpts) *Writer {
	return &Writer{w: w, opts: opts}
}

func codec(name string) (compress.Compression, error) {
	switch name {
	case "", "none":
		return compress.Codecs.Uncompressed, nil
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	}
	return compress.Codecs.Uncompressed, fmt.Errorf("parquetio: unknown compression %q", name)
}

func (w *Writer) Write(t *table.Table) error {
	rec := t.Record()
	defer rec.Release()
	if w.fw == nil {
		c, err := codec(w.opts.Compression)
		if err != nil {
			return err
		}
		props := parquet.NewWriterProperties(parquet.WithCompression(c))
		// The file writer closes its sink, so hand it one that
		// leaves w.w open for Close.
		fw, err := pqarrow.NewFileWriter(rec.Schema(), tabio.NopCloser(w.w), props, pqarrow.DefaultWriterProps())
		if err != nil {
			return fmt.Errorf("parquetio: %w", err)
		}
		w.fw = fw
		w.schema = rec.Schema()
	} else if !w.schema.Equal(rec.Schema()) {
		return ErrSchemaChanged
	}
	return w.fw.Write(rec)
}

func (w *Writer) Close() error {
	var err error
	if w.fw != nil {
		err = w.fw.Close()
		w.fw = nil
	}
	return multierr.Append(err, w.w.Close())
}
