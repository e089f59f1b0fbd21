package root

import (
	"flag"

	"github.com/brimdata/tabq/cli"
	"github.com/brimdata/tabq/cli/inputflags"
	"github.com/brimdata/tabq/cli/logflags"
	"github.com/brimdata/tabq/cli/outputflags"
	"github.com/brimdata/tabq/cli/queryflags"
	"github.com/brimdata/tabq/pkg/charm"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tabio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var Tabq = &charm.Spec{
	Name:  "tabq",
	Usage: "tabq <command> [options] [arguments...]",
	Short: "filter, group, and aggregate tabular data",
	Long: `
tabq reads a table from a CSV, PSV, TSV, Arrow IPC, or Parquet file and
runs column selections, row filters, and weighted or unweighted
aggregations over it.  Results are written to standard output or a file
and may also be written to named HTML reports.`,
	HiddenFlags: "cpuprofile,memprofile",
	New:         New,
}

type Command struct {
	charm.Command
	cli.Flags
	LogFlags logflags.Flags
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.SetFlags(f)
	c.LogFlags.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	_, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) == 0 {
		return charm.NeedHelp
	}
	return charm.ErrNoRun
}

// Init initializes the root flags along with those in all and opens the
// logger.
func (c *Command) Init(all ...cli.Initializer) (*zap.Logger, func(), error) {
	_, cleanup, err := c.Flags.Init(append([]cli.Initializer{&c.LogFlags}, all...)...)
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.LogFlags.Open()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return logger, func() {
		logger.Sync()
		cleanup()
	}, nil
}

// IOFlags are the input, output, and derivation flags of the commands
// that read a table.
type IOFlags struct {
	InputFlags  inputflags.Flags
	OutputFlags outputflags.Flags
	QueryFlags  queryflags.Flags
}

func (c *IOFlags) SetFlags(f *flag.FlagSet) {
	c.InputFlags.SetFlags(f)
	c.OutputFlags.SetFlags(f)
	c.QueryFlags.SetFlags(f)
}

// Initializers returns the flag groups needing Init after parsing.
func (c *IOFlags) Initializers() []cli.Initializer {
	return []cli.Initializer{&c.InputFlags, &c.OutputFlags}
}

// Load reads the input table at path and applies the -set derivations.
func (c *IOFlags) Load(path string) (t *table.Table, err error) {
	r, err := c.InputFlags.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()
	t, err = tabio.ReadOne(r)
	if err != nil {
		return nil, err
	}
	return c.QueryFlags.Derive.Apply(t)
}
