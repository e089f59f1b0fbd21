package queryflags

import (
	"flag"
	"testing"

	"github.com/brimdata/tabq/query"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/vector"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *table.Table {
	tbl, err := table.FromColumns(
		table.Column{Name: "region", Value: vector.NewString([]string{"a", "b", "a"})},
		table.Column{Name: "co2", Value: vector.NewFloat([]float64{10, 20, 30})},
		table.Column{Name: "pop", Value: vector.NewFloat([]float64{1, 2, 3})},
	)
	require.NoError(t, err)
	return tbl
}

func TestDerivations(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-set", "per_cap=co2/pop", "-set", "double=per_cap*2"}))
	tbl, err := f.Derive.Apply(sample(t))
	require.NoError(t, err)
	require.Equal(t, []any{20.0, 20.0, 20.0}, tbl.Get("double").Values())
	require.Equal(t, "reports", f.Reporter().Dir)

	var d Derivations
	require.Error(t, d.Set("noequals"))
	require.NoError(t, d.Set("x=co2 >"))
	_, err = d.Apply(sample(t))
	require.ErrorContains(t, err, "end of input")
}

func TestRequestFlags(t *testing.T) {
	var r RequestFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	r.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-select", "co2, pop", "-groupby", "region", "-agg", "mean", "-where", "pop > 1"}))
	req, err := r.Request()
	require.NoError(t, err)
	require.Equal(t, []string{"co2", "pop"}, req.Select)
	require.True(t, req.WeightNormalize)
	res, err := query.Q(sample(t), req)
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b"}, res.Table.Get("region").Values())
	require.Equal(t, []any{30.0, 20.0}, res.Table.Get("co2").Values())
}

func TestAppendNeedsReport(t *testing.T) {
	r := RequestFlags{Append: true}
	_, err := r.Request()
	require.Error(t, err)
}
