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

	"golang.org/x/sync/errgroup"

	"github.com/msomdec/userauth/internal/config"
	"github.com/msomdec/userauth/internal/domain"
	"github.com/msomdec/userauth/internal/handler"
	"github.com/msomdec/userauth/internal/repository/jsonfile"
	"github.com/msomdec/userauth/internal/repository/sqlite"
	"github.com/msomdec/userauth/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	users, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open user store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	authService := service.NewAuthService(users, service.NewBcryptHasher(cfg.BcryptCost))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, cfg.StaticDir)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Chain(mux, handler.RequestLogger, handler.CORS, handler.SecurityHeaders),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr, "url", "http://localhost"+srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		closeStore()
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore returns the configured user store and a function releasing it.
func openStore(cfg config.Config) (domain.UserStore, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("sqlite database opened", "path", cfg.DatabasePath)
		return db.Users(), func() { db.Close() }, nil
	default:
		store := jsonfile.New(cfg.DataFile)
		if _, err := store.Load(context.Background()); err != nil {
			return nil, nil, err
		}
		slog.Info("user file ready", "path", cfg.DataFile)
		return store, func() {}, nil
	}
}
