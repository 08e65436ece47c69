// Package catalog loads the product catalog from the remote endpoint, once per owner.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// FailureMessage is shown in place of the catalog when loading failed.
const FailureMessage = "Failed to load products. Please try again later."

var (
	fetchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_fetch_total",
		Help: "The total number of catalog requests",
	})
	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_fetch_failures_total",
		Help: "The total number of failed catalog requests",
	})
	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slaskcatalog_fetch_duration_seconds",
		Help:    "Catalog request duration",
		Buckets: prometheus.DefBuckets,
	})
	catalogItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskcatalog_catalog_items",
		Help: "The number of products in the last loaded catalog",
	})
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "idle"
}

type Result struct {
	State   State
	Catalog types.Catalog
	Err     error
}

// Loader issues the catalog request exactly once. Repeated Load calls wait for and
// return the first outcome.
type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger

	once   sync.Once
	mu     sync.RWMutex
	result Result
}

func NewLoader(fetcher Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

func (l *Loader) Load(ctx context.Context) Result {
	l.once.Do(func() {
		l.set(Result{State: StateLoading})
		l.set(l.fetch(ctx))
	})
	return l.Result()
}

func (l *Loader) fetch(ctx context.Context) Result {
	start := time.Now()
	fetchTotal.Inc()
	l.logger.Debug("fetching catalog")

	products, err := l.fetcher.Fetch(ctx)
	elapsed := time.Since(start)
	fetchDuration.Observe(elapsed.Seconds())
	if err != nil {
		fetchFailures.Inc()
		if !errors.Is(err, ErrNetworkFailure) {
			err = errors.Join(ErrNetworkFailure, err)
		}
		l.logger.Warn("catalog load failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return Result{State: StateFailed, Err: err}
	}

	catalogItems.Set(float64(len(products)))
	l.logger.Info("catalog loaded", zap.Int("items", len(products)), zap.Duration("elapsed", elapsed))
	return Result{State: StateLoaded, Catalog: products}
}

func (l *Loader) set(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = r
}

func (l *Loader) Result() Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.result
}

func (l *Loader) State() State {
	return l.Result().State
}
