// Package csvio reads and writes delimited text with a header line.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/vector"
)

var ErrEmpty = errors.New("empty csv file")

type ReaderOpts struct {
	// Delimiter separates fields.  Zero means a comma.
	Delimiter rune
	// StringsOnly disables type inference.
	StringsOnly bool
}

// Reader reads the whole input as one table.  Each column takes the
// narrowest kind that parses every non-empty cell, trying int, then float,
// then bool, then falling back to string.  Empty cells are null.
type Reader struct {
	reader *csv.Reader
	opts   ReaderOpts
	done   bool
}

func NewReader(r io.Reader, opts ReaderOpts) *Reader {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	return &Reader{reader: reader, opts: opts}
}

func (r *Reader) Read() (*table.Table, error) {
	if r.done {
		return nil, nil
	}
	r.done = true
	hdr, err := r.reader.Read()
	if err != nil {
		if err == io.EOF {
			err = ErrEmpty
		}
		return nil, err
	}
	cells := make([][]string, len(hdr))
	for {
		rec, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for k, s := range rec {
			cells[k] = append(cells[k], s)
		}
	}
	cols := make([]*vector.Vector, 0, len(hdr))
	for _, col := range cells {
		kind := vector.KindString
		if !r.opts.StringsOnly {
			kind = infer(col)
		}
		v, err := convert(col, kind)
		if err != nil {
			return nil, err
		}
		cols = append(cols, v)
	}
	return table.New(hdr, cols)
}

func infer(col []string) vector.Kind {
	isInt, isFloat, isBool := true, true, true
	for _, s := range col {
		if s == "" {
			continue
		}
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(s); err != nil {
				isBool = false
			}
		}
	}
	switch {
	case isInt:
		return vector.KindInt
	case isFloat:
		return vector.KindFloat
	case isBool:
		return vector.KindBool
	}
	return vector.KindString
}

func convert(col []string, kind vector.Kind) (*vector.Vector, error) {
	b, err := vector.NewBuilder(kind, len(col))
	if err != nil {
		return nil, err
	}
	for _, s := range col {
		if s == "" {
			b.AppendNull()
			continue
		}
		switch kind {
		case vector.KindInt:
			v, _ := strconv.ParseInt(s, 10, 64)
			b.Append(vector.Int(v))
		case vector.KindFloat:
			v, _ := strconv.ParseFloat(s, 64)
			b.Append(vector.Float(v))
		case vector.KindBool:
			v, _ := strconv.ParseBool(s)
			b.Append(vector.Bool(v))
		default:
			b.Append(vector.String(s))
		}
	}
	return b.Build(), nil
}
