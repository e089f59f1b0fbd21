// Package htmlio renders tables as HTML.  A table is first written as a
// GitHub-flavored Markdown table and then converted by goldmark.
package htmlio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brimdata/tabq/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/multierr"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Render writes t to w as an HTML table.
func Render(w io.Writer, t *table.Table) error {
	var b bytes.Buffer
	writeRow(&b, t.Names())
	b.WriteString("|")
	for range t.Names() {
		b.WriteString(" --- |")
	}
	b.WriteByte('\n')
	cols := t.Columns()
	cells := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for k, v := range cols {
			if s := v.At(i); s.IsNull() {
				cells[k] = ""
			} else {
				cells[k] = s.String()
			}
		}
		writeRow(&b, cells)
	}
	return md.Convert(b.Bytes(), w)
}

var escaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`, "\n", " ", "<", "&lt;", ">", "&gt;")

func writeRow(b *bytes.Buffer, cells []string) {
	b.WriteByte('|')
	for _, c := range cells {
		b.WriteByte(' ')
		b.WriteString(escaper.Replace(c))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}

// Writer renders each table it is given to the underlying writer.
type Writer struct {
	w io.WriteCloser
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(t *table.Table) error {
	return Render(w.w, t)
}

func (w *Writer) Close() error {
	return w.w.Close()
}

// Reporter writes named reports to HTML files in a directory.
type Reporter struct {
	Dir string
}

func NewReporter(dir string) *Reporter {
	return &Reporter{Dir: dir}
}

// Path returns the file holding the named report.
func (r *Reporter) Path(name string) string {
	return filepath.Join(r.Dir, name+".html")
}

// Report renders t to the named report, appending to the report file if
// append is true and replacing it otherwise.
func (r *Reporter) Report(name string, t *table.Table, appendMode bool) (err error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.Path(name), flags, 0644)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return Render(f, t)
}
