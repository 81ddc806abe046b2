package http

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/lumichat/lumichat/internal/auth/service"
	"github.com/lumichat/lumichat/internal/auth/store"
	"github.com/lumichat/lumichat/pkg/httpx"
	"github.com/lumichat/lumichat/pkg/jwtx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	cookies      SessionCookies
	uploadRoot   string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	UserService  *service.UserService
	ImageService *service.ProfileImageService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	secureCookies bool,
	uploadRoot, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		cookies:      SessionCookies{Secure: secureCookies},
		uploadRoot:   uploadRoot,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerUploads()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/auth/signup", &SignupHandler{
		Users:   r.UserService,
		Signer:  r.signer,
		Cookies: r.cookies,
	})
	r.Mux.Handle("POST /api/auth/login", &LoginHandler{
		Users:   r.UserService,
		Signer:  r.signer,
		Cookies: r.cookies,
	})
	r.Mux.Handle("POST /api/auth/logout", &LogoutHandler{Cookies: r.cookies})
}

func (r *Router) registerProfile() {
	gate := httpx.SessionMiddleware(r.verifier)

	r.Mux.Handle("GET /api/auth/user-info",
		httpx.Chain(&UserInfoHandler{Users: r.UserService}, gate))

	r.Mux.Handle("POST /api/auth/update-profile",
		httpx.Chain(&UpdateProfileHandler{Users: r.UserService}, gate))

	r.Mux.Handle("POST /api/auth/add-profile-image",
		httpx.Chain(&AddProfileImageHandler{Images: r.ImageService, Root: r.uploadRoot}, gate))

	r.Mux.Handle("DELETE /api/auth/remove-profile-image",
		httpx.Chain(&RemoveProfileImageHandler{Images: r.ImageService}, gate))
}

// registerUploads serves stored assets so image paths returned by the API
// resolve directly against this service.
func (r *Router) registerUploads() {
	profiles := http.FileServer(http.Dir(filepath.Join(r.uploadRoot, "uploads", "profiles")))
	files := http.FileServer(http.Dir(filepath.Join(r.uploadRoot, "uploads", "files")))

	r.Mux.Handle("GET /uploads/profiles/", http.StripPrefix("/uploads/profiles/", profiles))
	r.Mux.Handle("GET /uploads/files/", http.StripPrefix("/uploads/files/", files))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
