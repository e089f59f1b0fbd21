package inputflags

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/anyio"
	"go.uber.org/multierr"
)

type Flags struct {
	anyio.ReaderOpts
	delim string
}

func (f *Flags) Options() anyio.ReaderOpts {
	return f.ReaderOpts
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.Format, "i", "auto", "format of input data [auto,arrows,csv,parquet,psv,tsv]")
	fs.StringVar(&f.delim, "idelim", "", "field delimiter for delimited input (default by format)")
	fs.BoolVar(&f.CSV.StringsOnly, "strings", false, "read delimited input as strings without type inference")
}

// Init is called after flags have been parsed.
func (f *Flags) Init() error {
	if f.delim == "" {
		return nil
	}
	r, n := utf8.DecodeRuneInString(f.delim)
	if r == utf8.RuneError || n != len(f.delim) {
		return fmt.Errorf("-idelim must be a single character: %q", f.delim)
	}
	f.CSV.Delimiter = r
	return nil
}

// Open opens the input at path, where "-" means standard input.  The
// format of standard input must be given explicitly.
func (f *Flags) Open(path string) (tabio.ReadCloser, error) {
	if path != "-" {
		return anyio.Open(path, f.ReaderOpts)
	}
	if f.Format == "auto" || f.Format == "" {
		return nil, errors.New("-i is required when reading standard input")
	}
	r, err := anyio.Decompress(os.Stdin)
	if err != nil {
		return nil, err
	}
	rc, err := anyio.NewReader(r, f.ReaderOpts)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &stdin{ReadCloser: rc, decoder: r}, nil
}

type stdin struct {
	tabio.ReadCloser
	decoder io.Closer
}

func (s *stdin) Close() error {
	return multierr.Append(s.ReadCloser.Close(), s.decoder.Close())
}
