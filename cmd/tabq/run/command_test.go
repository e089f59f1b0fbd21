package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/tabq/cmd/tabq/root"
	"github.com/stretchr/testify/require"
)

const config = `
queries:
  - name: total
    select: [entcari]
    aggregation: sum
  - name: by_region
    group_by: [region]
    select: [entcari]
    weight: npopuli
    report: co2
`

func TestRunCommand(t *testing.T) {
	root.Tabq.Add(Cmd)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.psv")
	require.NoError(t, os.WriteFile(in, []byte("region|entcari|npopuli\na|1|2\nb|2|6\na|3|2\n"), 0644))
	conf := filepath.Join(dir, "queries.yaml")
	require.NoError(t, os.WriteFile(conf, []byte(config), 0644))
	out := filepath.Join(dir, "out.csv")
	metrics := filepath.Join(dir, "metrics.txt")
	err := root.Tabq.ExecRoot([]string{"-log.path", "/dev/null", "run",
		"-o", out, "-report.dir", dir, "-metrics", metrics, conf, in})
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "entcari\n6\n", string(b))
	html, err := os.ReadFile(filepath.Join(dir, "co2.html"))
	require.NoError(t, err)
	require.Contains(t, string(html), "<table>")
	text, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(text), `tabq_queries_total{branch="scalar"} 1`)
	require.Contains(t, string(text), `tabq_queries_total{branch="grouped"} 1`)
}

func TestRunCommandBadConfig(t *testing.T) {
	root.Tabq.Add(Cmd)
	dir := t.TempDir()
	conf := filepath.Join(dir, "queries.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("queries:\n  - nmae: typo\n"), 0644))
	err := root.Tabq.ExecRoot([]string{"-log.path", "/dev/null", "run", conf, "-"})
	require.Error(t, err)
}
