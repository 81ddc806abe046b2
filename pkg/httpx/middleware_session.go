package httpx

import (
	"context"
	"net/http"

	"github.com/lumichat/lumichat/pkg/jwtx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

// SessionMiddleware gates protected endpoints on a valid session cookie.
// A missing cookie is 401, a cookie that fails verification is 403. On
// success the resolved user ID is attached to the request context and the
// request proceeds; the gate has no other side effects.
func SessionMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"message": "You are not authenticated!",
				})
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"message": "Token is not valid!",
				})
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
