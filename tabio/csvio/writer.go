package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/vector"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

var ErrNotDataFrame = errors.New("CSV output requires every table to have the same columns")

type WriterOpts struct {
	Delimiter rune
}

type Writer struct {
	writer  io.WriteCloser
	encoder *csv.Writer
	hdr     []string
	strings []string
}

func NewWriter(w io.WriteCloser, opts WriterOpts) *Writer {
	encoder := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		encoder.Comma = opts.Delimiter
	}
	return &Writer{
		writer:  w,
		encoder: encoder,
	}
}

func (w *Writer) Close() error {
	return multierr.Append(w.Flush(), w.writer.Close())
}

func (w *Writer) Flush() error {
	w.encoder.Flush()
	return w.encoder.Error()
}

func (w *Writer) Write(t *table.Table) error {
	if w.hdr == nil {
		w.hdr = t.Names()
		if err := w.encoder.Write(w.hdr); err != nil {
			return err
		}
	} else if !slices.Equal(w.hdr, t.Names()) {
		return ErrNotDataFrame
	}
	cols := t.Columns()
	for i := 0; i < t.Len(); i++ {
		w.strings = w.strings[:0]
		for _, v := range cols {
			w.strings = append(w.strings, format(v.At(i)))
		}
		if err := w.encoder.Write(w.strings); err != nil {
			return err
		}
	}
	return nil
}

func format(s vector.Scalar) string {
	if s.IsNull() {
		return ""
	}
	if f, ok := s.AsFloat(); ok && s.Kind() == vector.KindFloat {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return s.String()
}
