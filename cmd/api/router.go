package main

import (
	"context"
	"net/http"
	"time"

	_ "booksapi/docs"
	"booksapi/internal/auth"
	"booksapi/internal/book"
	"booksapi/internal/config"
	"booksapi/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const readyTimeout = 500 * time.Millisecond

// pinger is satisfied by *pgxpool.Pool and database.SQLPinger.
type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	cfg      config.Config
	logger   zerolog.Logger
	books    *book.HTTPHandler
	login    *auth.HTTPHandler
	verifier httpx.TokenVerifier
	db       pinger
	registry *prometheus.Registry
}

func newRouter(d routerDeps) http.Handler {
	metrics := httpx.NewMetrics(d.registry)

	r := chi.NewRouter()
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httplog.RequestLogger(d.logger))
	r.Use(metrics.Middleware)
	r.Use(httpx.RecoveryMiddleware(d.logger))
	r.Use(httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS))
	r.Use(httpx.CORSMiddleware(d.cfg.CORSAllowedOrigins))
	r.Use(httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Post("/login", d.login.Login)

	r.Group(func(r chi.Router) {
		r.Use(httpx.AuthMiddleware(d.verifier))
		r.Get("/books", d.books.Search)
		r.Post("/books", d.books.Create)
		r.Put("/books/{id}", d.books.Update)
		r.Delete("/books/{id}", d.books.Delete)
	})

	return r
}
