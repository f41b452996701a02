package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionCookie(t *testing.T) {
	// When: building the cookie
	cookie := NewSessionCookie("abc")

	// Then: it is scoped to the site, hidden from scripts and lasts thirty days
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "abc", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((30 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), cookie.Expires, time.Minute)
}

func TestSessionIDFromCookie(t *testing.T) {
	t.Run("Reads the id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(NewSessionCookie("abc"))

		id, ok := SessionIDFromCookie(req)

		require.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("Missing or empty cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, ok := SessionIDFromCookie(req)
		assert.False(t, ok)

		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: ""})

		_, ok = SessionIDFromCookie(req)
		assert.False(t, ok)
	})
}
