package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpapi "github.com/lumichat/lumichat/internal/auth/http"
	"github.com/lumichat/lumichat/internal/auth/service"
	"github.com/lumichat/lumichat/internal/auth/store"
	"github.com/lumichat/lumichat/internal/auth/store/drivers/sqlite"
	"github.com/lumichat/lumichat/pkg/jwtx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// uploadDirs are created idempotently before the service accepts traffic:
// profile images, general file attachments, and the multipart staging area.
var uploadDirs = []string{
	"uploads/profiles",
	"uploads/files",
	"uploads/tmp",
}

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HS256

	userService  *service.UserService
	imageService *service.ProfileImageService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET must be set")
	}
	tokens, err := jwtx.NewHS256(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session tokens: %w", err)
	}
	app.tokens = tokens

	if err := app.initUploadDirs(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initUploadDirs creates the asset directories under the upload root.
// Idempotent, so restarts are safe.
func (app *Application) initUploadDirs() error {
	for _, dir := range uploadDirs {
		path := filepath.Join(app.cfg.UploadRoot, filepath.FromSlash(dir))
		if err := os.MkdirAll(path, 0o750); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", path, err)
		}
	}
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
	app.imageService = &service.ProfileImageService{
		Store: app.db,
		Root:  app.cfg.UploadRoot,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		app.tokens,
		app.cfg.Env == "prod",
		app.cfg.UploadRoot,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.ImageService = app.imageService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
