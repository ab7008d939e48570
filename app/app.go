package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	playerimport "github.com/rosterhq/roster-import/app/modules/playerimport"
	importservice "github.com/rosterhq/roster-import/app/modules/playerimport/application"
	"github.com/rosterhq/roster-import/config"
	"github.com/rosterhq/roster-import/db/bundb"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

// App wires configuration, the database, observability, and the import module
// into one HTTP server.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Server *http.Server

	db           *bun.DB
	importModule *playerimport.Module
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := bundb.NewBunDB(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tracer := otel.Tracer("roster-import")

	limits := importservice.Limits{
		MaxRows:      cfg.Import.MaxRows,
		MaxFileBytes: cfg.Import.MaxFileBytes,
	}

	importModule, err := playerimport.NewModule(ctx, logger, tracer, registry, db, limits)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize player import module: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	importModule.RegisterRoutes(router)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Cfg:          cfg,
		Logger:       logger,
		Server:       server,
		db:           db,
		importModule: importModule,
	}, nil
}

// Run serves HTTP until the listener fails or Shutdown is called.
func (a *App) Run() error {
	a.Logger.Info("Starting HTTP server", slog.String("addr", a.Server.Addr))
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("Shutting down application")

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	a.Logger.Info("Application shut down gracefully")
	return nil
}
