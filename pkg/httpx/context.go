package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated user ID resolved by the session
// middleware. It lives on the request context only, never on shared state,
// so concurrent requests can't observe each other's identity.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromCtx returns the authenticated user ID, or "" when the request
// did not pass through the session middleware.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
