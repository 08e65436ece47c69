package types

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseEventValues(t *testing.T) {
	query := url.Values{
		"q":        []string{"Backpack"},
		"category": []string{" jewelery "},
		"sort":     []string{"price_desc"},
		"sid":      []string{"abc"},
		"unknown":  []string{"ignored"},
	}
	er := &EventRequest{}
	if err := eventFromValues(query, er); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	er.Sanitize()
	if er.Query != "Backpack" {
		t.Errorf("Expected query to be Backpack, got %v", er.Query)
	}
	if er.Category != "jewelery" {
		t.Errorf("Expected category to be trimmed, got %q", er.Category)
	}
	key, err := er.SortKey()
	if err != nil || key != SortPriceDesc {
		t.Errorf("Expected price_desc, got %v %v", key, err)
	}
	if er.Session != "abc" {
		t.Errorf("Expected sid abc, got %v", er.Session)
	}
}

func TestSanitizeKeepsSpacesInQuery(t *testing.T) {
	er := &EventRequest{Query: " slim fit "}
	er.Sanitize()
	if er.Query != " slim fit " {
		t.Errorf("Expected query untouched, got %q", er.Query)
	}

	er = &EventRequest{Query: strings.Repeat("å", maxSearchTextLength+10)}
	er.Sanitize()
	if got := len([]rune(er.Query)); got != maxSearchTextLength {
		t.Errorf("Expected query capped at %d runes, got %d", maxSearchTextLength, got)
	}
}

func TestGetEventFromPostForm(t *testing.T) {
	body := strings.NewReader(url.Values{"q": []string{"ring"}}.Encode())
	r := httptest.NewRequest(http.MethodPost, "/api/search?category=jewelery", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	er, err := GetEventFromRequest(r)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if er.Query != "ring" || er.Category != "jewelery" {
		t.Errorf("Expected body and query values, got %+v", er)
	}
}
