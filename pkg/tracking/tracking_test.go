package tracking

import (
	"errors"
	"testing"
	"time"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingFunc(t *testing.T) {
	var got SearchEvent
	var trk Tracking = TrackingFunc(func(e SearchEvent) error {
		got = e
		return nil
	})
	require.NoError(t, trk.TrackSearch(SearchEvent{SessionId: "a", Query: "bag", NumberOfResults: 4}))
	assert.Equal(t, "bag", got.Query)
	assert.Equal(t, 4, got.NumberOfResults)

	failing := TrackingFunc(func(SearchEvent) error { return errors.New("closed") })
	assert.Error(t, failing.TrackSearch(SearchEvent{}))
}

func TestSearchEventJson(t *testing.T) {
	event := SearchEvent{
		SessionId:       "5f0c7b4e-6b1a-4c39-9a55-0a7e2d1c0f11",
		Country:         "se",
		Query:           "ring",
		Category:        "jewelery",
		NumberOfResults: 2,
		Page:            0,
		Time:            time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := jsoncompat.Marshal(event)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, jsoncompat.Unmarshal(data, &fields))
	assert.Equal(t, "ring", fields["query"])
	assert.Equal(t, float64(2), fields["noi"])
	assert.Equal(t, "2024-05-01T12:00:00Z", fields["ts"])
	assert.NotContains(t, fields, "sort")
}
