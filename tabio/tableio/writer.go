// Package tableio writes tables and frames as aligned, human-readable text.
package tableio

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/brimdata/tabq/frame"
	"github.com/brimdata/tabq/table"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type WriterOpts struct {
	// Grouping inserts digit group separators into numbers.
	Grouping bool
	// Precision is the number of digits after the decimal point for
	// floats.  Zero means the shortest exact representation.
	Precision int
}

type Writer struct {
	writer  io.WriteCloser
	table   *tabwriter.Writer
	printer *message.Printer
	opts    WriterOpts
	limit   int
	nline   int
	hdr     []string
}

func NewWriter(w io.WriteCloser, opts WriterOpts) *Writer {
	return &Writer{
		writer:  w,
		table:   tabwriter.NewWriter(w, 0, 8, 1, ' ', 0),
		printer: message.NewPrinter(language.English),
		opts:    opts,
		limit:   1000,
	}
}

func (w *Writer) writeHeader(names []string) {
	upper := make([]string, 0, len(names))
	for _, name := range names {
		upper = append(upper, strings.ToUpper(name))
	}
	fmt.Fprintln(w.table, strings.Join(upper, "\t"))
}

// Write writes the rows of t under a header of its column names.
func (w *Writer) Write(t *table.Table) error {
	rows := make([][]any, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return w.write(t.Names(), rows)
}

// WriteFrame writes f with its index columns first.
func (w *Writer) WriteFrame(f *frame.Frame) error {
	rows := make([][]any, f.Len())
	for i := range rows {
		rows[i] = append(f.Key(i), f.Row(i)...)
	}
	return w.write(append(f.Index(), f.Columns()...), rows)
}

func (w *Writer) write(names []string, rows [][]any) error {
	if w.hdr == nil || !slices.Equal(w.hdr, names) {
		if w.hdr != nil {
			if err := w.flush(); err != nil {
				return err
			}
			w.nline = 0
		}
		w.writeHeader(names)
		w.hdr = names
	}
	for _, row := range rows {
		if w.nline >= w.limit {
			if err := w.flush(); err != nil {
				return err
			}
			w.writeHeader(w.hdr)
			w.nline = 0
		}
		ss := make([]string, 0, len(row))
		for _, v := range row {
			ss = append(ss, w.format(v))
		}
		w.nline++
		if _, err := fmt.Fprintf(w.table, "%s\n", strings.Join(ss, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) format(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case int64:
		if w.opts.Grouping {
			return w.printer.Sprintf("%d", v)
		}
		return fmt.Sprintf("%d", v)
	case float64:
		switch {
		case w.opts.Grouping && w.opts.Precision > 0:
			return w.printer.Sprintf("%.*f", w.opts.Precision, v)
		case w.opts.Grouping:
			return w.printer.Sprintf("%v", v)
		case w.opts.Precision > 0:
			return fmt.Sprintf("%.*f", w.opts.Precision, v)
		}
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprint(v)
}

func (w *Writer) flush() error {
	return w.table.Flush()
}

func (w *Writer) Close() error {
	return multierr.Append(w.flush(), w.writer.Close())
}
