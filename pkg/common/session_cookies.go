package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const SessionCookieName = "sid"

func GenerateSessionId() string {
	return uuid.NewString()
}

func SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(hostOnly(r.Host), "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   7200,
		Path:     "/",
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookieName,
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})
}

// SessionIdFromRequest reads the session id from the sid cookie, falling back
// to the sid query parameter. Values that are not uuids are ignored.
func SessionIdFromRequest(r *http.Request) (string, bool) {
	value := ""
	if c, err := r.Cookie(SessionCookieName); err == nil {
		value = c.Value
	}
	if value == "" {
		value = r.URL.Query().Get(SessionCookieName)
	}
	if value == "" {
		return "", false
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func hostOnly(host string) string {
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}
