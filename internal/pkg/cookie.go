package pkg

import (
	"net/http"
	"time"
)

// SessionCookieName carries the session id between visits, over HTTP and WebSocket alike.
const SessionCookieName = "user_session"

const sessionCookieLifetime = 30 * 24 * time.Hour

// NewSessionCookie - builds the session cookie for id.
func NewSessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieLifetime),
		MaxAge:   int(sessionCookieLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionIDFromCookie returns the id in the session cookie, if any.
func SessionIDFromCookie(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
