package frame_test

import (
	"math"
	"testing"

	"github.com/brimdata/tabq/frame"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	tbl, err := table.FromColumns(
		table.Column{Name: "c3", Value: vector.NewString([]string{"a", "b", "e"})},
		table.Column{Name: "c1", Value: vector.NewInt([]int64{4, 6, 5})},
		table.Column{Name: "c2", Value: vector.NewFloat([]float64{1.5, 2.5, 3.5})},
	)
	require.NoError(t, err)
	f, err := frame.New(tbl, "c3")
	require.NoError(t, err)
	require.Equal(t, []string{"c3"}, f.Index())
	require.Equal(t, []string{"c1", "c2"}, f.Columns())
	require.Equal(t, 3, f.Len())
	require.Equal(t, []any{"b"}, f.Key(1))

	v, err := f.Loc("c1", "a")
	require.NoError(t, err)
	require.Equal(t, int64(4), v)

	v, err = f.At(2, "c2")
	require.NoError(t, err)
	require.Equal(t, 3.5, v)

	_, err = f.Loc("c1", "z")
	require.True(t, tqe.IsNotFound(err))
	_, err = f.Loc("c9", "a")
	require.ErrorIs(t, err, table.ErrNoSuchColumn)
	_, err = f.At(3, "c1")
	require.True(t, tqe.IsInvalid(err))
}

func TestIntegerIndex(t *testing.T) {
	tbl, err := table.FromColumns(
		table.Column{Name: "year", Value: vector.NewInt([]int64{2019, 2020})},
		table.Column{Name: "n", Value: vector.NewInt([]int64{7, 9})},
	)
	require.NoError(t, err)
	f, err := frame.New(tbl, "year")
	require.NoError(t, err)
	v, err := f.Loc("n", 2020)
	require.NoError(t, err)
	require.Equal(t, int64(9), v)

	flat, err := frame.New(tbl)
	require.NoError(t, err)
	require.Empty(t, flat.Index())
	require.Equal(t, []any{int64(2019), int64(7)}, flat.Row(0))

	_, err = frame.New(tbl, "nope")
	require.Error(t, err)
}

func TestNaNIndex(t *testing.T) {
	tbl, err := table.FromColumns(
		table.Column{Name: "ratio", Value: vector.NewFloat([]float64{0.5, math.NaN()})},
		table.Column{Name: "n", Value: vector.NewInt([]int64{3, 4})},
	)
	require.NoError(t, err)
	f, err := frame.New(tbl, "ratio")
	require.NoError(t, err)
	v, err := f.Loc("n", math.NaN())
	require.NoError(t, err)
	require.Equal(t, int64(4), v)
	v, err = f.Loc("n", 0.5)
	require.NoError(t, err)
	require.Equal(t, int64(3), v)
}
