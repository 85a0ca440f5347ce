package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/mercado-social/internal/config"
	"github.com/msomdec/mercado-social/internal/handler"
	"github.com/msomdec/mercado-social/internal/repository/localfs"
	"github.com/msomdec/mercado-social/internal/repository/sqlite"
	"github.com/msomdec/mercado-social/internal/service"
	"github.com/msomdec/mercado-social/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	level, err := cfg.Level()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	files, err := localfs.New(cfg.UploadDir)
	if err != nil {
		slog.Error("failed to prepare upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	validate := validation.New()
	media := service.NewMediaService(files)
	users := db.Users()

	svc := handler.Services{
		Auth:          service.NewAuthService(users, validate, cfg.JWTSecret, cfg.BcryptCost),
		Posts:         service.NewPostService(db.Posts(), users, media, validate),
		Follows:       service.NewFollowService(users, db.Follows()),
		Notifications: service.NewNotificationService(db.Notifications(), users),
		Profiles:      service.NewProfileService(users, db.Stores(), db.Products(), db.Posts(), media, validate),
		Catalog:       service.NewCatalogService(db.Stores(), db.Products(), db.Promotions(), media, validate),
		Search:        service.NewSearchService(users, db.Stores()),
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc, cfg.CookieSecure, files.Dir())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.RequestLogger(handler.OptionalAuth(svc.Auth, mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "uploads", files.Dir())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
