// Package queryflags binds the flags that describe a query and the
// derived columns computed before it runs.
package queryflags

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/brimdata/tabq/cli/clierrors"
	"github.com/brimdata/tabq/filterexpr"
	"github.com/brimdata/tabq/query"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tabio/htmlio"
)

// Derivations is a repeatable flag of name=expr assignments.
type Derivations []string

func (d Derivations) String() string {
	return strings.Join(d, ",")
}

func (d *Derivations) Set(s string) error {
	if name, _, ok := strings.Cut(s, "="); !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=expr: %q", s)
	}
	*d = append(*d, s)
	return nil
}

// Apply evaluates each assignment against t in order, so later
// expressions may refer to columns derived by earlier ones.
func (d Derivations) Apply(t *table.Table) (*table.Table, error) {
	for _, s := range d {
		name, src, _ := strings.Cut(s, "=")
		e, err := filterexpr.Parse(src)
		if err != nil {
			return nil, clierrors.Format(src, err)
		}
		v, err := e.Eval(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.TrimSpace(name), err)
		}
		if t, err = t.Set(table.Column{Name: strings.TrimSpace(name), Value: v}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// List is a comma-separated list flag.
type List []string

func (l List) String() string {
	return strings.Join(l, ",")
}

func (l *List) Set(s string) error {
	*l = nil
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

type Flags struct {
	Derive    Derivations
	ReportDir string
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.Var(&f.Derive, "set", "derive a column as name=expr before querying (may be repeated)")
	fs.StringVar(&f.ReportDir, "report.dir", "reports", "directory for HTML reports")
}

func (f *Flags) Reporter() *htmlio.Reporter {
	return htmlio.NewReporter(f.ReportDir)
}

// RequestFlags describes a single query on the command line.
type RequestFlags struct {
	Select      List
	GroupBy     List
	Where       string
	Aggregation string
	Weight      string
	Normalize   bool
	Report      string
	Append      bool
}

func (r *RequestFlags) SetFlags(fs *flag.FlagSet) {
	fs.Var(&r.Select, "select", "comma-separated value columns (default all but the group keys)")
	fs.Var(&r.GroupBy, "groupby", "comma-separated group key columns")
	fs.StringVar(&r.Where, "where", "", "filter expression selecting input rows")
	fs.StringVar(&r.Aggregation, "agg", "", "statistic [sum,mean,min,max,count]")
	fs.StringVar(&r.Weight, "weight", "", "column weighting each row")
	fs.BoolVar(&r.Normalize, "normalize", true, "divide weighted values by the total weight")
	fs.StringVar(&r.Report, "report", "", "also write the result to this named HTML report")
	fs.BoolVar(&r.Append, "append", false, "append to the report instead of replacing it")
}

func (r *RequestFlags) Request() (query.Request, error) {
	if r.Append && r.Report == "" {
		return query.Request{}, errors.New("-append requires -report")
	}
	req := query.NewRequest()
	req.Select = r.Select
	req.GroupBy = r.GroupBy
	req.Aggregation = r.Aggregation
	req.Weight = r.Weight
	req.WeightNormalize = r.Normalize
	req.Report = r.Report
	req.Append = r.Append
	if r.Where != "" {
		pred, err := filterexpr.Compile(r.Where)
		if err != nil {
			return query.Request{}, clierrors.Format(r.Where, err)
		}
		req.WhereFunc = pred
	}
	return req, nil
}
