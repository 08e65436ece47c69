// Package search holds the pure search, filter and sort transforms that turn a
// catalog and a query into the ordered result view.
package search

import (
	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/language"
)

var (
	pipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcatalog_pipeline_runs_total",
		Help: "The total number of result view computations",
	}, []string{"sort"})
)

// Pipeline composes Filter and Sort in a fixed order using a locale for
// alphabetical ordering.
type Pipeline struct {
	Language language.Tag
}

var DefaultPipeline = Pipeline{Language: language.English}

func NewPipeline(locale string) (Pipeline, error) {
	if locale == "" {
		return DefaultPipeline, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultPipeline, err
	}
	return Pipeline{Language: tag}, nil
}

// Compute filters the catalog then sorts the filtered set. The catalog is never modified.
func (p Pipeline) Compute(catalog types.Catalog, text, category string, key types.SortKey) []types.Product {
	label := string(key)
	if label == "" {
		label = "none"
	}
	pipelineRuns.WithLabelValues(label).Inc()
	return Sort(Filter(catalog, text, category), key, p.Language)
}

func (p Pipeline) ComputeQuery(catalog types.Catalog, q types.QueryState) []types.Product {
	return p.Compute(catalog, q.DebouncedSearchText, q.Category, q.Sort)
}

func Compute(catalog types.Catalog, text, category string, key types.SortKey) []types.Product {
	return DefaultPipeline.Compute(catalog, text, category, key)
}
