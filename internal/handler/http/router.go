package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carmitra/carmitra/internal/service"
	"github.com/carmitra/carmitra/pkg/health"
	"github.com/carmitra/carmitra/pkg/httputil"
	"github.com/carmitra/carmitra/pkg/middleware"
)

// requestTimeout bounds every API request, store round trips included.
const requestTimeout = 30 * time.Second

// RouterConfig carries the router's process-level settings.
type RouterConfig struct {
	ServiceName        string
	CORSAllowedOrigins []string
	PprofAllowedCIDRs  []string
	ExposeErrorDetails bool

	// Metrics records per-route request metrics when set.
	Metrics *middleware.HTTPMetrics

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// Services groups the application services the routes call into.
type Services struct {
	Reviews     *service.ReviewService
	Guides      *service.GuideService
	Dealerships *service.DealershipService
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(cfg RouterConfig, svcs Services, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins}))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(chimw.Compress(5))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Envelope{Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.Envelope{Message: "method not allowed"})
	})

	// Health, metrics and profiling
	r.Get("/health", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	reviews := NewReviewHandler(svcs.Reviews, logger, cfg.ExposeErrorDetails)
	guides := NewGuideHandler(svcs.Guides, logger, cfg.ExposeErrorDetails)
	dealerships := NewDealershipHandler(svcs.Dealerships, logger, cfg.ExposeErrorDetails)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		r.Route("/cars", func(r chi.Router) {
			r.Get("/reviews", reviews.ListReviews)
			r.Post("/reviews", reviews.CreateReview)
			r.Get("/reviews/{id}", reviews.GetReview)
			r.Get("/search", reviews.SearchReviews)
		})

		r.Get("/dealerships", dealerships.ListDealerships)

		r.Route("/guides", func(r chi.Router) {
			r.Get("/", guides.ListGuides)
			r.Post("/", guides.CreateGuide)
			r.Get("/{uuid}", guides.GetGuide)
			r.Put("/{uuid}", guides.UpdateGuide)
			r.Delete("/{uuid}", guides.DeleteGuide)
		})
	})

	return r
}
