package filterexpr

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache holds recently parsed expressions keyed by source text.  An Expr
// is immutable once parsed, so cached expressions may be shared.
type Cache struct {
	lru    *lru.Cache[string, *Expr]
	hits   prometheus.Counter
	misses prometheus.Counter
}

func NewCache(size int, registerer prometheus.Registerer) (*Cache, error) {
	c, err := lru.New[string, *Expr](size)
	if err != nil {
		return nil, err
	}
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(registerer)
	return &Cache{
		lru: c,
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "filterexpr_cache_hits_total",
			Help: "Number of expressions found in the parse cache.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "filterexpr_cache_misses_total",
			Help: "Number of expressions parsed on a cache miss.",
		}),
	}, nil
}

// Parse is like the package-level Parse but returns a cached Expr when src
// was parsed before.  A nil Cache parses every time.
func (c *Cache) Parse(src string) (*Expr, error) {
	if c == nil {
		return Parse(src)
	}
	if e, ok := c.lru.Get(src); ok {
		c.hits.Inc()
		return e, nil
	}
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c.lru.Add(src, e)
	c.misses.Inc()
	return e, nil
}
