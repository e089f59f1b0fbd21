package query

import (
	"fmt"
	"io"
	"os"

	"github.com/brimdata/tabq/filterexpr"
	"github.com/brimdata/tabq/tqe"
	"gopkg.in/yaml.v3"
)

// Config is a batch of named queries, typically loaded from YAML:
//
//	queries:
//	  - name: co2_by_region
//	    select: [entcari]
//	    where: npopuli > 0
//	    group_by: [region]
//	    aggregation: mean
//	    weight: npopuli
//	    report: co2
type Config struct {
	Queries []NamedQuery `yaml:"queries"`
}

// NamedQuery is the YAML form of a Request.  Where is a filterexpr
// expression and WeightNormalize defaults to true.
type NamedQuery struct {
	Name            string   `yaml:"name"`
	Select          []string `yaml:"select"`
	Where           string   `yaml:"where"`
	Aggregation     string   `yaml:"aggregation"`
	GroupBy         []string `yaml:"group_by"`
	Weight          string   `yaml:"weight"`
	WeightNormalize *bool    `yaml:"weight_normalize"`
	Report          string   `yaml:"report"`
	Append          bool     `yaml:"append"`
}

// LoadConfig decodes a Config, rejecting unknown fields.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, tqe.E(tqe.Invalid, "query config: %w", err)
	}
	for k, q := range c.Queries {
		if q.Name == "" {
			c.Queries[k].Name = fmt.Sprintf("query%d", k+1)
		}
	}
	return &c, nil
}

func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// Request converts q into a Request, parsing its where expression through
// cache, which may be nil.
func (q *NamedQuery) Request(cache *filterexpr.Cache) (Request, error) {
	req := NewRequest()
	req.Select = q.Select
	req.Aggregation = q.Aggregation
	req.GroupBy = q.GroupBy
	req.Weight = q.Weight
	if q.WeightNormalize != nil {
		req.WeightNormalize = *q.WeightNormalize
	}
	req.Report = q.Report
	req.Append = q.Append
	if q.Where != "" {
		e, err := cache.Parse(q.Where)
		if err != nil {
			return Request{}, fmt.Errorf("query %q: %w", q.Name, err)
		}
		req.WhereFunc = e.Predicate()
	}
	return req, nil
}
