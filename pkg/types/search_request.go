package types

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/schema"
)

const maxSearchTextLength = 256

// EventRequest carries the inbound event parameters of the HTTP boundary.
type EventRequest struct {
	Query    string `json:"q" schema:"q"`
	Category string `json:"category" schema:"category"`
	Sort     string `json:"sort" schema:"sort"`
	Session  string `json:"sid" schema:"sid"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Sanitize trims selector values. Search text is passed through as typed,
// only capped in length.
func (e *EventRequest) Sanitize() {
	e.Category = strings.TrimSpace(e.Category)
	e.Sort = strings.TrimSpace(e.Sort)
	e.Session = strings.TrimSpace(e.Session)
	if utf8.RuneCountInString(e.Query) > maxSearchTextLength {
		e.Query = string([]rune(e.Query)[:maxSearchTextLength])
	}
}

func (e *EventRequest) SortKey() (SortKey, error) {
	return ParseSortKey(e.Sort)
}

func GetEventFromRequest(r *http.Request) (*EventRequest, error) {
	er := &EventRequest{}
	values := r.URL.Query()
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if err := r.ParseForm(); err != nil {
			return er, err
		}
		values = r.Form
	}
	err := eventFromValues(values, er)
	er.Sanitize()
	return er, err
}

func eventFromValues(values url.Values, result *EventRequest) error {
	return decoder.Decode(result, values)
}
