package run

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/brimdata/tabq/cmd/tabq/query"
	"github.com/brimdata/tabq/cmd/tabq/root"
	"github.com/brimdata/tabq/filterexpr"
	"github.com/brimdata/tabq/pkg/charm"
	tabquery "github.com/brimdata/tabq/query"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tabio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/segmentio/ksuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var Cmd = &charm.Spec{
	Name:  "run",
	Usage: "run [options] config.yaml file",
	Short: "run a batch of named queries over a table",
	Long: `
"tabq run" reads the table in file once and runs each query listed in the
YAML file config.yaml against it, in order.  A query is a mapping with the
keys name, select, where, group_by, aggregation, weight, weight_normalize,
report, and append, for example

    queries:
      - name: co2_by_region
        select: [entcari]
        where: npopuli > 0
        group_by: [region]
        aggregation: sum
        weight: npopuli
        report: co2

Queries that name a report are written to that report in -report.dir.
The results of the other queries are written to the output in turn.`,
	New: New,
}

type Command struct {
	*root.Command
	root.IOFlags
	stopOnErr   bool
	metricsFile string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	c.IOFlags.SetFlags(f)
	f.BoolVar(&c.stopOnErr, "e", true, "stop at the first failing query")
	f.StringVar(&c.metricsFile, "metrics", "", "write query metrics in Prometheus text format to this file")
	return c, nil
}

func (c *Command) Run(args []string) (err error) {
	logger, cleanup, err := c.Init(c.Initializers()...)
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) != 2 {
		return errors.New("a config file and an input file are required")
	}
	conf, err := tabquery.LoadConfigFile(args[0])
	if err != nil {
		return err
	}
	t, err := c.Load(args[1])
	if err != nil {
		return err
	}
	w, err := c.OutputFlags.Open()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
	}()
	registry := prometheus.NewRegistry()
	cache, err := filterexpr.NewCache(64, registry)
	if err != nil {
		return err
	}
	if c.metricsFile != "" {
		defer func() {
			err = multierr.Append(err, writeMetrics(c.metricsFile, registry))
		}()
	}
	logger = logger.With(zap.Stringer("run", ksuid.New()))
	engine := tabquery.New(logger, c.QueryFlags.Reporter()).WithMetrics(tabquery.NewMetrics(registry))
	var errs error
	for _, q := range conf.Queries {
		logger := logger.With(zap.String("query", q.Name))
		if qerr := runOne(engine, cache, w, t, q); qerr != nil {
			qerr = fmt.Errorf("%s: %w", q.Name, qerr)
			if c.stopOnErr {
				return qerr
			}
			logger.Error("Query failed", zap.Error(qerr))
			errs = multierr.Append(errs, qerr)
			continue
		}
		logger.Info("Query complete", zap.String("report", q.Report))
	}
	return errs
}

func runOne(engine *tabquery.Engine, cache *filterexpr.Cache, w tabio.Writer, t *table.Table, q tabquery.NamedQuery) error {
	req, err := q.Request(cache)
	if err != nil {
		return err
	}
	res, err := engine.Run(t, req)
	if err != nil || req.Report != "" {
		return err
	}
	return query.Write(w, res)
}

func writeMetrics(path string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
