package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/gorm"

	"pecalc/internal/config"
	"pecalc/internal/db"
	"pecalc/internal/db/mock"
	applog "pecalc/internal/log"
	"pecalc/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

// Seams for the run loop, swapped out by tests.
var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "error", err, "level", cfg.Logging.Level)
		return 1
	}

	var database *gorm.DB
	switch {
	case cfg.Database.UseMock:
		database, err = newMockDatabaseFunc(ctx)
		if err != nil {
			applog.Error(ctx, "failed to initialise mock database", "error", err)
			return 1
		}
		applog.Info(ctx, "running with the seeded in-memory food catalog")
	case strings.TrimSpace(cfg.Database.URL) != "":
		database, err = configureDatabase(cfg.Database)
		if err != nil {
			applog.Error(ctx, "failed to configure database", "error", err)
			return 1
		}
		applog.Info(ctx, "food catalog database configured")
	default:
		applog.Warn(ctx, "no database configured; running without the food catalog")
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Workspace: server.WorkspaceConfig{Lifetime: cfg.Workspace.Lifetime},
		Database:  database,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	shutdownCh, stopListening := subscribeShutdownSig()
	defer stopListening()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
	case <-shutdownCh:
		applog.Info(ctx, "shutting down http server")
		if err := srv.Stop(); err != nil {
			applog.Error(ctx, "graceful shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}
