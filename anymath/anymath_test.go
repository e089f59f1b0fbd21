package anymath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentities(t *testing.T) {
	vals := []int64{4, -2, 9}
	min, max, sum := Min.Init.Int64, Max.Init.Int64, Add.Init.Int64
	for _, v := range vals {
		min = Min.Int64(min, v)
		max = Max.Int64(max, v)
		sum = Add.Int64(sum, v)
	}
	require.Equal(t, int64(-2), min)
	require.Equal(t, int64(9), max)
	require.Equal(t, int64(11), sum)
}

func TestDivPromotes(t *testing.T) {
	require.Nil(t, Div.Int64)
	require.True(t, math.IsInf(Div.Float64(1, 0), 1))
	require.True(t, math.IsNaN(Div.Float64(0, 0)))
}
