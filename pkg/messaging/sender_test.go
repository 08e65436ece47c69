package messaging

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetName(t *testing.T) {
	assert.Equal(t, "global_catalog_search", getName(GlobalPrefix, SearchTopic))
}

func TestEncode(t *testing.T) {
	msg, err := Encode(map[string]int{"noi": 3})
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.JSONEq(t, `{"noi":3}`, string(msg.Body))
}

func TestDecode(t *testing.T) {
	msg, err := Encode(map[string]int{"noi": 3})
	require.NoError(t, err)

	got, err := Decode[map[string]int](amqp.Delivery{Body: msg.Body})
	require.NoError(t, err)
	assert.Equal(t, 3, got["noi"])

	_, err = Decode[map[string]int](amqp.Delivery{Body: []byte("{")})
	assert.Error(t, err)
}
