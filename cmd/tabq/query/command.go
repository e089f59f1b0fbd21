package query

import (
	"errors"
	"flag"

	"github.com/brimdata/tabq/cli/queryflags"
	"github.com/brimdata/tabq/cmd/tabq/root"
	"github.com/brimdata/tabq/pkg/charm"
	"github.com/brimdata/tabq/query"
	"github.com/brimdata/tabq/tabio"
	"github.com/brimdata/tabq/tabio/tableio"
	"github.com/pkg/browser"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var Cmd = &charm.Spec{
	Name:  "query",
	Usage: "query [options] file",
	Short: "run one query over a table",
	Long: `
"tabq query" reads the table in file ("-" for standard input, in which
case -i is required), optionally derives new columns with -set, and runs a
single query described by -select, -where, -groupby, -agg, and -weight.

Without -groupby or -agg the selected columns of the matching rows are
written as is.  With -agg alone each selected column is reduced to one
value.  With -groupby the rows are grouped by the key columns and each
selected column is reduced per group, with sum as the default statistic.
A -weight column scales each row's contribution, divided by the total
weight unless -normalize=false.

Where expressions compare columns and literals, for example

    -where 'npopuli > 0 and region != "oceania"'

and -set expressions use the same syntax with arithmetic, for example

    -set 'co2_per_cap = entcari / npopuli'

With -report the result is also written to an HTML file named after the
report in -report.dir.`,
	New: New,
}

type Command struct {
	*root.Command
	root.IOFlags
	requestFlags queryflags.RequestFlags
	open         bool
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	c.IOFlags.SetFlags(f)
	c.requestFlags.SetFlags(f)
	f.BoolVar(&c.open, "open", false, "open the -report file in a web browser")
	return c, nil
}

func (c *Command) Run(args []string) error {
	logger, cleanup, err := c.Init(c.Initializers()...)
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) != 1 {
		return errors.New("a single input file is required")
	}
	req, err := c.requestFlags.Request()
	if err != nil {
		return err
	}
	t, err := c.Load(args[0])
	if err != nil {
		return err
	}
	reporter := c.QueryFlags.Reporter()
	res, err := query.New(logger, reporter).Run(t, req)
	if err != nil {
		return err
	}
	if c.open && req.Report != "" {
		if err := browser.OpenFile(reporter.Path(req.Report)); err != nil {
			logger.Warn("Could not open report", zap.Error(err))
		}
	}
	w, err := c.OutputFlags.Open()
	if err != nil {
		return err
	}
	return multierr.Append(Write(w, res), w.Close())
}

// Write writes res to w, as a frame indexed by the group keys when w
// writes text tables.
func Write(w tabio.Writer, res *query.Result) error {
	tw, ok := w.(*tableio.Writer)
	if !ok || len(res.Index) == 0 {
		return w.Write(res.Table)
	}
	f, err := res.Frame()
	if err != nil {
		return err
	}
	return tw.WriteFrame(f)
}
