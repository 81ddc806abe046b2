package http

import (
	"net/http"

	"github.com/lumichat/lumichat/pkg/httpx"
)

type LogoutHandler struct {
	Cookies SessionCookies
}

// ServeHTTP clears the session cookie. There is no server-side session state
// to tear down; the token simply ages out of its validity window.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w)
	httpx.WriteText(w, http.StatusOK, "Logout Successful.")
}
