package playerimport

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	importservice "github.com/rosterhq/roster-import/app/modules/playerimport/application"
	importhandlers "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/handlers"
	importmetrics "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/metrics"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// uploadRateLimit throttles uploads per client IP; parsing spreadsheets is
// the most expensive request this module serves.
const (
	uploadRateLimit = rate.Limit(1)
	uploadRateBurst = 5
)

// Module bundles the import service and its HTTP surface.
type Module struct {
	Service  importservice.Service
	Handlers importhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates and wires the player import module.
func NewModule(
	ctx context.Context,
	logger *slog.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	db *bun.DB,
	limits importservice.Limits,
) (*Module, error) {
	logger.InfoContext(ctx, "playerimport.NewModule initializing")

	repo := importdb.NewRepository(db)
	metrics := importmetrics.NewPrometheusMetrics(registerer)
	service := importservice.NewImportService(repo, logger, metrics, tracer, db, limits)
	handlers := importhandlers.NewImportHandlers(service, logger, tracer, limits)

	return &Module{
		Service:  service,
		Handlers: handlers,
		logger:   logger,
	}, nil
}

// RegisterRoutes mounts the module under /api/clubs/{clubID}/imports.
func (m *Module) RegisterRoutes(r chi.Router) {
	uploadLimiter := importhandlers.NewIPRateLimiter(uploadRateLimit, uploadRateBurst)

	r.Route("/api/clubs/{clubID}/imports", func(r chi.Router) {
		r.With(importhandlers.RateLimitMiddleware(uploadLimiter)).Post("/upload", m.Handlers.HandleUpload)
		r.Post("/revalidate", m.Handlers.HandleRevalidate)
		r.Post("/commit", m.Handlers.HandleCommit)
		r.Get("/template", m.Handlers.HandleTemplate)
		r.Get("/{importID}", m.Handlers.HandleGetImport)
	})
}
