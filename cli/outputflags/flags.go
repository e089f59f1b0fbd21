package outputflags

import (
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/brimdata/tabq/pkg/terminal"
	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/anyio"
)

type Flags struct {
	anyio.WriterOpts
	outputFile string
	delim      string
}

func (f *Flags) Options() anyio.WriterOpts {
	return f.WriterOpts
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.Format, "f", "", "format for output data [arrows,csv,html,parquet,psv,table,tsv] (default table on a terminal, else csv)")
	fs.StringVar(&f.outputFile, "o", "", "write data to output file")
	fs.StringVar(&f.delim, "odelim", "", "field delimiter for delimited output (default by format)")
	fs.StringVar(&f.Parquet.Compression, "parquet.compression", "snappy", "Parquet column compression [none,snappy,gzip,zstd]")
	fs.BoolVar(&f.Table.Grouping, "grouping", false, "insert digit group separators in table output")
	fs.IntVar(&f.Table.Precision, "precision", 0, "digits after the decimal point in table output (0 for shortest)")
}

// Init is called after flags have been parsed.  An empty format is
// inferred from the output file name or, for standard output, from
// whether it is a terminal.
func (f *Flags) Init() error {
	if f.outputFile == "-" {
		f.outputFile = ""
	}
	if f.Format == "" && f.outputFile != "" {
		f.Format = anyio.FormatFromPath(f.outputFile)
	}
	if f.Format == "" {
		f.Format = "csv"
		if f.outputFile == "" && terminal.IsTerminalFile(os.Stdout) {
			f.Format = "table"
		}
	}
	if f.delim != "" {
		r, n := utf8.DecodeRuneInString(f.delim)
		if r == utf8.RuneError || n != len(f.delim) {
			return fmt.Errorf("-odelim must be a single character: %q", f.delim)
		}
		f.CSV.Delimiter = r
	}
	return nil
}

func (f *Flags) FileName() string {
	return f.outputFile
}

// Open returns a writer for the output file or, if none was given, for
// standard output.
func (f *Flags) Open() (tabio.WriteCloser, error) {
	if f.outputFile == "" {
		return anyio.NewWriter(tabio.NopCloser(os.Stdout), f.WriterOpts)
	}
	file, err := os.Create(f.outputFile)
	if err != nil {
		return nil, err
	}
	w, err := anyio.NewWriter(file, f.WriterOpts)
	if err != nil {
		file.Close()
		os.Remove(f.outputFile)
		return nil, err
	}
	return w, nil
}
