// @title Books API
// @version 1.0
// @description CRUD over a books catalogue behind a bearer token.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booksapi/db/migrations"
	"booksapi/internal/auth"
	"booksapi/internal/book"
	"booksapi/internal/config"
	"booksapi/internal/platform/database"

	"github.com/go-chi/httplog"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("booksapi", httplog.Options{
		JSON:    cfg.LogJSON,
		Concise: !cfg.LogJSON,
	})
	migrations.UseLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, db, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	credentials, err := adminCredentials(cfg)
	if err != nil {
		return fmt.Errorf("admin credentials: %w", err)
	}
	tokens := auth.NewTokens(cfg.JWTSecret, auth.TokenTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := newRouter(routerDeps{
		cfg:      cfg,
		logger:   logger,
		books:    book.NewHTTPHandler(book.NewService(repo), logger),
		login:    auth.NewHTTPHandler(auth.NewService(credentials, tokens), logger),
		verifier: tokens,
		db:       db,
		registry: registry,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errShutdown := make(chan error, 1)
	go shutdown(ctx, srv, errShutdown)

	logger.Info().Str("addr", cfg.Addr()).Str("store", cfg.StoreDriver).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	if err := <-errShutdown; err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func shutdown(ctx context.Context, srv *http.Server, errShutdown chan<- error) {
	<-ctx.Done()

	ctxTimeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxTimeout); err != nil {
		errShutdown <- fmt.Errorf("forcing server close: %w", err)
		return
	}
	errShutdown <- nil
}

// openStore connects the configured backend and returns its repository, a
// readiness pinger and a close func.
func openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (book.Repository, pinger, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return book.NewSQLiteRepo(db, cfg.DBTimeout), database.SQLPinger{DB: db}, func() { _ = db.Close() }, nil

	default:
		pool, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.MigrateOnStart {
			sqlDB := stdlib.OpenDBFromPool(pool)
			err := migrations.Up(ctx, sqlDB, migrations.DialectPostgres)
			_ = sqlDB.Close()
			if err != nil {
				pool.Close()
				return nil, nil, nil, err
			}
		}
		logger.Info().Str("dsn", database.RedactDSN(cfg.DatabaseURL)).Msg("database connection OK")
		return book.NewPostgresRepo(pool, cfg.DBTimeout), pool, pool.Close, nil
	}
}

// adminCredentials prefers a pre-computed hash over the plaintext password.
func adminCredentials(cfg config.Config) (auth.Credentials, error) {
	if cfg.AdminPasswordHash != "" {
		return auth.NewCredentials(cfg.AdminUsername, cfg.AdminPasswordHash)
	}
	return auth.CredentialsFromPassword(cfg.AdminUsername, cfg.AdminPassword)
}
