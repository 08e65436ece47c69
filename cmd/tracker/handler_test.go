package main

import (
	"testing"
	"time"

	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/tracking"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleSearchEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := &app{logger: zap.New(core)}

	msg, err := messaging.Encode(tracking.SearchEvent{
		SessionId: "s1",
		Country:   "se",
		Query:     "nothing",
		Category:  "",
		Time:      time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, a.handleSearchEvent(amqp.Delivery{Body: msg.Body}))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "nothing", fields["query"])
	assert.Equal(t, "s1", fields["session"])
	assert.Equal(t, int64(0), fields["results"])
}

func TestHandleSearchEventRejectsGarbage(t *testing.T) {
	a := &app{logger: zap.NewNop()}
	assert.Error(t, a.handleSearchEvent(amqp.Delivery{Body: []byte("not json")}))
}
