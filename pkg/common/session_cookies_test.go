package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIdRoundTrip(t *testing.T) {
	id := GenerateSessionId()
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, httptest.NewRequest(http.MethodPost, "http://localhost:8080/api/session", nil), id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)

	r := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	r.AddCookie(cookies[0])
	got, ok := SessionIdFromRequest(r)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestSessionIdFromQuery(t *testing.T) {
	id := GenerateSessionId()
	got, ok := SessionIdFromRequest(httptest.NewRequest(http.MethodGet, "/api/view?sid="+id, nil))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestSessionIdRejectsGarbage(t *testing.T) {
	_, ok := SessionIdFromRequest(httptest.NewRequest(http.MethodGet, "/api/view?sid=12345", nil))
	assert.False(t, ok)

	_, ok = SessionIdFromRequest(httptest.NewRequest(http.MethodGet, "/api/view", nil))
	assert.False(t, ok)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	r.Header.Set("Origin", "http://shop.local")
	require.NoError(t, WriteError(rec, r, http.StatusNotFound, "session not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "http://shop.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"session not found"}`, rec.Body.String())
}
