package tracking

import "time"

// Tracking receives search events from browsing sessions. Implementations must
// be safe for concurrent use.
type Tracking interface {
	TrackSearch(event SearchEvent) error
}

type SearchEvent struct {
	SessionId       string    `json:"session_id"`
	Country         string    `json:"country,omitempty"`
	Query           string    `json:"query"`
	Category        string    `json:"category,omitempty"`
	Sort            string    `json:"sort,omitempty"`
	NumberOfResults int       `json:"noi"`
	Page            int       `json:"page"`
	Time            time.Time `json:"ts"`
}

// TrackingFunc adapts a function to Tracking.
type TrackingFunc func(event SearchEvent) error

func (f TrackingFunc) TrackSearch(event SearchEvent) error {
	return f(event)
}
