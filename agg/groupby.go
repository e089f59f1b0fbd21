package agg

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// GroupBy partitions t by the distinct values of the key columns and
// reduces each value column with k.  The result holds the key columns
// followed by one column per value column named by Name, with one row per
// group sorted ascending by the first key.  Nulls sort last.
func GroupBy(t *table.Table, keys, values []string, k Kind) (*table.Table, error) {
	if len(keys) == 0 {
		return nil, tqe.E(tqe.Invalid, "group by requires at least one key")
	}
	keyCols, err := lookup(t, keys)
	if err != nil {
		return nil, err
	}
	valCols, err := lookup(t, values)
	if err != nil {
		return nil, err
	}
	outKinds := make([]vector.Kind, len(valCols))
	for j, v := range valCols {
		if outKinds[j], err = k.ResultKind(v.Kind()); err != nil {
			return nil, tqe.E(tqe.Invalid, "column %q: %w", values[j], err)
		}
	}
	g := newGrouper(keyCols)
	var funcs [][]Function
	for row := 0; row < t.Len(); row++ {
		id := g.group(row)
		if id == len(funcs) {
			fs := make([]Function, len(valCols))
			for j, v := range valCols {
				if fs[j], err = NewFunction(k, v.Kind()); err != nil {
					return nil, err
				}
			}
			funcs = append(funcs, fs)
		}
		for j, v := range valCols {
			funcs[id][j].Consume(v.At(row))
		}
	}
	order := make([]int, len(funcs))
	for i := range order {
		order[i] = i
	}
	first := keyCols[0]
	slices.SortStableFunc(order, func(a, b int) bool {
		return Less(first.At(g.firsts[a]), first.At(g.firsts[b]))
	})
	rows := make([]int, len(order))
	for i, id := range order {
		rows[i] = g.firsts[id]
	}
	names := make([]string, 0, len(keys)+len(values))
	cols := make([]*vector.Vector, 0, len(keys)+len(values))
	for j, v := range keyCols {
		names = append(names, keys[j])
		cols = append(cols, v.Take(rows))
	}
	for j := range valCols {
		b, err := vector.NewBuilder(outKinds[j], len(order))
		if err != nil {
			return nil, err
		}
		for _, id := range order {
			b.Append(funcs[id][j].Result())
		}
		names = append(names, Name(values[j], k))
		cols = append(cols, b.Build())
	}
	return table.New(names, cols)
}

func lookup(t *table.Table, names []string) ([]*vector.Vector, error) {
	cols := make([]*vector.Vector, 0, len(names))
	for _, name := range names {
		v, ok := t.Lookup(name)
		if !ok {
			return nil, t.Missing(name)
		}
		cols = append(cols, v)
	}
	return cols, nil
}

// grouper assigns dense group numbers to rows in order of first
// appearance.  Keys are hashed with xxhash and compared byte for byte on a
// hash hit.
type grouper struct {
	keys   []*vector.Vector
	table  map[uint64][]int
	encs   [][]byte
	firsts []int
	buf    []byte
}

func newGrouper(keys []*vector.Vector) *grouper {
	return &grouper{
		keys:  keys,
		table: make(map[uint64][]int),
	}
}

func (g *grouper) group(row int) int {
	g.buf = g.buf[:0]
	for _, v := range g.keys {
		g.buf = appendKey(g.buf, v.At(row))
	}
	h := xxhash.Sum64(g.buf)
	for _, id := range g.table[h] {
		if bytes.Equal(g.encs[id], g.buf) {
			return id
		}
	}
	id := len(g.firsts)
	g.table[h] = append(g.table[h], id)
	g.encs = append(g.encs, slices.Clone(g.buf))
	g.firsts = append(g.firsts, row)
	return id
}

// appendKey writes a self-delimiting encoding of s.  Every NaN encodes
// identically so NaN keys form one group.
func appendKey(b []byte, s vector.Scalar) []byte {
	if s.IsNull() {
		return append(b, 0)
	}
	b = append(b, byte(s.Kind())+1)
	switch s.Kind() {
	case vector.KindInt:
		i, _ := s.AsInt()
		return binary.BigEndian.AppendUint64(b, uint64(i))
	case vector.KindFloat:
		f, _ := s.AsFloat()
		if math.IsNaN(f) {
			f = math.NaN()
		}
		return binary.BigEndian.AppendUint64(b, math.Float64bits(f))
	case vector.KindString:
		str, _ := s.Text()
		b = binary.AppendUvarint(b, uint64(len(str)))
		return append(b, str...)
	case vector.KindBool:
		if v, _ := s.Truth(); v {
			return append(b, 1)
		}
		return append(b, 0)
	}
	return b
}

// Less orders scalars for group output: numbers numerically, strings
// lexically, false before true, nulls last.
func Less(a, b vector.Scalar) bool {
	if a.IsNull() || b.IsNull() {
		return !a.IsNull() && b.IsNull()
	}
	if x, ok := a.AsInt(); ok && a.Kind() == vector.KindInt && b.Kind() == vector.KindInt {
		y, _ := b.AsInt()
		return x < y
	}
	if x, ok := a.Text(); ok {
		if y, ok := b.Text(); ok {
			return strings.Compare(x, y) < 0
		}
	}
	x, xok := a.AsFloat()
	y, yok := b.AsFloat()
	if xok && yok {
		return x < y || (!math.IsNaN(x) && math.IsNaN(y))
	}
	return a.Kind() < b.Kind()
}
