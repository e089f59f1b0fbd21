// Package query runs declarative queries against a table: projection,
// filtering, grouping, and weighted or unweighted aggregation.
package query

import (
	"strings"

	"github.com/brimdata/tabq/agg"
	"github.com/brimdata/tabq/frame"
	"github.com/brimdata/tabq/table"
	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Reporter renders results to named reports.
type Reporter interface {
	Report(name string, t *table.Table, appendMode bool) error
}

type Engine struct {
	logger   *zap.Logger
	reporter Reporter
	metrics  *Metrics
}

// New returns an Engine.  A nil logger discards log output and a nil
// reporter ignores Request.Report.
func New(logger *zap.Logger, reporter Reporter) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, reporter: reporter}
}

// WithMetrics makes e record each query in m and returns e.
func (e *Engine) WithMetrics(m *Metrics) *Engine {
	e.metrics = m
	return e
}

// Result is the output of a query.
type Result struct {
	Table *table.Table
	// Index holds the group keys, which Frame promotes to the row index.
	Index []string
}

// Frame returns the result as a display structure indexed by the group
// keys.
func (r *Result) Frame() (*frame.Frame, error) {
	return frame.New(r.Table, r.Index...)
}

// Q runs req against t with a default Engine.
func Q(t *table.Table, req Request) (*Result, error) {
	return New(nil, nil).Run(t, req)
}

type branch int

const (
	weightedCount branch = iota + 1
	grouped
	scalar
	passthrough
)

func (b branch) String() string {
	switch b {
	case weightedCount:
		return "grouped weighted count"
	case grouped:
		return "grouped"
	case scalar:
		return "scalar"
	}
	return "passthrough"
}

// Run executes req against t.  The input table is never modified.
func (e *Engine) Run(t *table.Table, req Request) (*Result, error) {
	res, b, err := e.run(t, req)
	var rows int
	if res != nil {
		rows = res.Table.Len()
	}
	e.metrics.observe(b, rows, err)
	return res, err
}

func (e *Engine) run(t *table.Table, req Request) (*Result, branch, error) {
	var b branch
	groupBy := req.GroupBy
	sel := req.Select
	if len(sel) == 0 {
		for _, name := range t.Names() {
			if !slices.Contains(groupBy, name) {
				sel = append(sel, name)
			}
		}
	}
	if err := unique("select", sel); err != nil {
		return nil, b, err
	}
	if err := unique("group by", groupBy); err != nil {
		return nil, b, err
	}
	mask, err := resolveWhere(t, req)
	if err != nil {
		return nil, b, err
	}
	for _, names := range [][]string{sel, groupBy, {req.Weight}} {
		for _, name := range names {
			if name == "" {
				continue
			}
			if _, ok := t.Lookup(name); !ok {
				return nil, b, t.Missing(name)
			}
		}
	}
	kind, err := agg.Parse(req.Aggregation)
	if err != nil {
		return nil, b, err
	}
	proj, err := t.Select(projection(sel, groupBy, req.Weight)...)
	if err != nil {
		return nil, b, err
	}
	if mask != nil {
		if proj, err = proj.Filter(mask); err != nil {
			return nil, b, err
		}
	}
	var out *table.Table
	switch {
	case len(groupBy) > 0 && req.Weight != "" && kind == agg.Count:
		b = weightedCount
		out, err = e.groupedWeightedCount(proj, req)
	case len(groupBy) > 0:
		b = grouped
		out, err = e.grouped(proj, values(sel, groupBy), kind, req)
	case req.Aggregation != "":
		b = scalar
		out, err = e.scalar(proj, sel, kind, req)
	default:
		b = passthrough
		out = proj
	}
	if err != nil {
		return nil, b, err
	}
	if b != passthrough {
		if out, err = denormalize(out, len(groupBy)); err != nil {
			return nil, b, err
		}
	}
	e.logger.Debug("Query",
		zap.Stringer("branch", b),
		zap.Strings("select", sel),
		zap.Strings("group_by", groupBy),
		zap.String("aggregation", kind.String()),
		zap.String("weight", req.Weight),
		zap.Int("rows_in", t.Len()),
		zap.Int("rows_filtered", proj.Len()),
		zap.Int("rows_out", out.Len()),
	)
	if req.Report != "" && e.reporter != nil {
		if err := e.reporter.Report(req.Report, out, req.Append); err != nil {
			return nil, b, err
		}
		e.logger.Debug("Report written", zap.String("report", req.Report), zap.Bool("append", req.Append))
	}
	return &Result{Table: out, Index: slices.Clone(groupBy)}, b, nil
}

func unique(clause string, names []string) error {
	for k, name := range names {
		if slices.Contains(names[:k], name) {
			return tqe.E(tqe.Invalid, "%s: column %q listed more than once", clause, name)
		}
	}
	return nil
}

func resolveWhere(t *table.Table, req Request) (*vector.Vector, error) {
	if req.Where != nil && req.WhereFunc != nil {
		return nil, tqe.E(tqe.Invalid, "where and where function are mutually exclusive")
	}
	if req.WhereFunc != nil {
		return req.WhereFunc(t)
	}
	return req.Where, nil
}

// projection returns select, then group keys, then the weight column,
// each name once.
func projection(sel, groupBy []string, weight string) []string {
	var names []string
	add := func(name string) {
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, name := range sel {
		add(name)
	}
	for _, name := range groupBy {
		add(name)
	}
	add(weight)
	return names
}

// values drops group keys from the value columns of a grouped query since
// they are emitted as keys.
func values(sel, groupBy []string) []string {
	var out []string
	for _, name := range sel {
		if !slices.Contains(groupBy, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func (e *Engine) groupedWeightedCount(t *table.Table, req Request) (*table.Table, error) {
	total, err := totalWeight(t.Get(req.Weight), req.WeightNormalize)
	if err != nil {
		return nil, err
	}
	out, err := agg.GroupBy(t, req.GroupBy, []string{req.Weight}, agg.Sum)
	if err != nil {
		return nil, err
	}
	name := agg.Name(req.Weight, agg.Sum)
	share, err := out.Get(name).Div(total)
	if err != nil {
		return nil, err
	}
	return out.Set(table.Column{Name: name, Value: share})
}

func (e *Engine) grouped(t *table.Table, vals []string, kind agg.Kind, req Request) (*table.Table, error) {
	if req.Weight == "" {
		return agg.GroupBy(t, req.GroupBy, vals, kind)
	}
	wt, err := buildWeighted(t, vals, req.GroupBy, req.Weight, req.WeightNormalize)
	if err != nil {
		return nil, err
	}
	// Summing the contributions per group gives the weighted statistic
	// whatever kind was asked for.
	return agg.GroupBy(wt, req.GroupBy, vals, agg.Sum)
}

// scalar reduces each selected column to one value.  With a weight, every
// statistic but count reduces the weighted contributions w*x/total, and
// count is the total weight divided by the normalizing total.
func (e *Engine) scalar(t *table.Table, sel []string, kind agg.Kind, req Request) (*table.Table, error) {
	var w *vector.Vector
	src := t
	if req.Weight != "" {
		w = t.Get(req.Weight)
		if kind != agg.Count {
			var err error
			if src, err = buildWeighted(t, sel, nil, req.Weight, req.WeightNormalize); err != nil {
				return nil, err
			}
		}
	}
	names := make([]string, 0, len(sel))
	cols := make([]*vector.Vector, 0, len(sel))
	for _, name := range sel {
		var s vector.Scalar
		var err error
		switch {
		case kind == agg.Count && w == nil:
			s = vector.Int(int64(t.Len()))
		case kind == agg.Count:
			s, err = countWeight(w, req.WeightNormalize)
		default:
			s, err = agg.Reduce(src.Get(name), kind)
		}
		if err != nil {
			return nil, tqe.E(tqe.KindOf(err), "column %q: %w", name, err)
		}
		col, err := vector.Broadcast(s, 1)
		if err != nil {
			return nil, err
		}
		names = append(names, agg.Name(name, kind))
		cols = append(cols, col)
	}
	return table.New(names, cols)
}

func countWeight(w *vector.Vector, normalize bool) (vector.Scalar, error) {
	sum, err := w.Sum()
	if err != nil {
		return vector.Scalar{}, err
	}
	if !normalize {
		return sum, nil
	}
	x, _ := sum.AsFloat()
	return vector.Float(x / x), nil
}

// denormalize strips the statistic suffix from the aggregated columns,
// which follow the first nkeys group key columns.
func denormalize(t *table.Table, nkeys int) (*table.Table, error) {
	names := t.Names()
	for k := nkeys; k < len(names); k++ {
		names[k] = stripSuffix(names[k])
	}
	return t.Rename(names)
}

// stripSuffix drops the last underscore-delimited token of name when
// there is more than one token.
func stripSuffix(name string) string {
	if k := strings.LastIndexByte(name, '_'); k > 0 {
		return name[:k]
	}
	return name
}
