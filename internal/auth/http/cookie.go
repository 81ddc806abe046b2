package http

import (
	"net/http"
	"time"

	"github.com/lumichat/lumichat/pkg/httpx"
	"github.com/lumichat/lumichat/pkg/jwtx"
)

// SessionCookies issues and clears the session cookie. SameSite=None because
// the web client is served from a different origin; Secure is gated on the
// deployment environment so local dev over plain HTTP still works.
type SessionCookies struct {
	Secure bool
}

// Set writes the session cookie with the token's full validity window.
func (c SessionCookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(jwtx.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// Clear overwrites the cookie with an already-expired lifetime. This is a
// client-side effect only: a captured token stays cryptographically valid
// until its natural expiry.
func (c SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}
