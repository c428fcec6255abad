package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backstage/internal/app/admins"
	"backstage/internal/app/artists"
	"backstage/internal/app/attendees"
	"backstage/internal/app/concerts"
	"backstage/internal/app/merchandise"
	"backstage/internal/app/reports"
	"backstage/internal/app/songs"
	"backstage/internal/app/sponsors"
	"backstage/internal/app/venues"
	"backstage/internal/auth"
	"backstage/internal/config"
	"backstage/internal/http/middleware"
	"backstage/internal/httpapi"
	"backstage/internal/logging"
	"backstage/internal/store"
)

// newHTTPHandler wires services, routes, metrics and middleware. The admin
// service is returned for start-up bootstrapping.
func newHTTPHandler(cfg *config.Config, db *sql.DB, dataStore *store.Store, logger *logging.Logger) (http.Handler, admins.Service) {
	tokens := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	adminSvc := admins.New(dataStore, tokens)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "backstage"),
	)

	api := httpapi.New(httpapi.Services{
		Artists:     artists.New(dataStore),
		Venues:      venues.New(dataStore),
		Sponsors:    sponsors.New(dataStore),
		Songs:       songs.New(dataStore),
		Concerts:    concerts.New(dataStore),
		Merchandise: merchandise.New(dataStore),
		Attendees:   attendees.New(dataStore),
		Admins:      adminSvc,
		Reports:     reports.New(dataStore),
		Health:      dataStore,
	},
		httpapi.WithLogger(logger),
		httpapi.WithMetrics(middleware.NewMetrics(registry)),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.Handle("/", api.Routes())

	return middleware.Wrap(mux, logger, cfg.CORS.AllowedOrigins), adminSvc
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
