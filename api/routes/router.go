package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tommy-vpr/sales-report/api/controllers"
	"github.com/tommy-vpr/sales-report/api/middleware"
	"github.com/tommy-vpr/sales-report/internal/comparison"
	"github.com/tommy-vpr/sales-report/internal/importer"
	"github.com/tommy-vpr/sales-report/internal/summary"
	"github.com/tommy-vpr/sales-report/pkg/config"
	"github.com/tommy-vpr/sales-report/pkg/logger"
)

// Deps carries everything the router wires into handlers. DB and Cache feed
// the readiness probe; Cache and Registry may be nil.
type Deps struct {
	Importer   importer.Service
	Summary    summary.Service
	Comparison comparison.Service

	DB       controllers.Pinger
	Cache    controllers.Pinger
	Registry prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Cache))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/import", controllers.ImportReport(deps.Importer, cfg.Import.MaxUploadBytes, logg))
		r.Get("/monthly-summary", controllers.MonthlySummary(deps.Summary, logg))
		r.Get("/compare", controllers.ComparePeriods(deps.Comparison, logg))
		r.Get("/periods", controllers.ReportPeriods(deps.Summary, logg))
	})

	return r
}
