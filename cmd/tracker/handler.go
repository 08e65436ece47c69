package main

import (
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	trackedSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcatalog_tracked_searches_total",
		Help: "The total number of search events received from sessions",
	}, []string{"country", "category"})
	emptySearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcatalog_tracked_empty_searches_total",
		Help: "The total number of search events without results",
	}, []string{"country"})
)

type app struct {
	logger *zap.Logger
}

func (a *app) handleSearchEvent(d amqp.Delivery) error {
	event, err := messaging.Decode[tracking.SearchEvent](d)
	if err != nil {
		return err
	}
	a.record(event)
	return nil
}

func (a *app) record(event tracking.SearchEvent) {
	category := event.Category
	if category == "" {
		category = "all"
	}
	trackedSearches.WithLabelValues(event.Country, category).Inc()
	if event.NumberOfResults == 0 {
		emptySearches.WithLabelValues(event.Country).Inc()
	}
	a.logger.Info("search",
		zap.String("session", event.SessionId),
		zap.String("query", event.Query),
		zap.String("category", event.Category),
		zap.String("sort", event.Sort),
		zap.Int("results", event.NumberOfResults),
		zap.Time("ts", event.Time))
}
