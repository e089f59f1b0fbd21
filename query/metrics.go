package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the queries run by an Engine.
type Metrics struct {
	queries  *prometheus.CounterVec
	failures prometheus.Counter
	rows     prometheus.Histogram
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(registerer)
	return &Metrics{
		queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabq_queries_total",
				Help: "Number of queries completed, by execution branch.",
			},
			[]string{"branch"},
		),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabq_query_failures_total",
			Help: "Number of queries that returned an error.",
		}),
		rows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabq_query_result_rows",
			Help:    "Number of rows in query results.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *Metrics) observe(b branch, rows int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.Inc()
		return
	}
	m.queries.WithLabelValues(b.String()).Inc()
	m.rows.Observe(float64(rows))
}
