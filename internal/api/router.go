package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/arwebdeveloper/credit-risk-analytics-server/docs"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/handler"
	mw "github.com/arwebdeveloper/credit-risk-analytics-server/internal/api/middleware"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/config"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/alert"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func SetupRouter(
	rateLimiter *mw.RateLimiterMiddleware,
	customerService customer.CustomerService,
	alertService alert.AlertService,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, rateLimiter, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", handler.Health)
	setupAPIRoutes(router, customerService, alertService, logger)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(corsHandler(cfg.Server.CORS, logger))
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func corsHandler(cfg config.CORSConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	logger.Info("Configuring CORS", "allowed_origins", origins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAPIRoutes(router *chi.Mux, customerService customer.CustomerService, alertService alert.AlertService, logger *slog.Logger) {
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	alertHandler := handler.NewAlertHandler(alertService, logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/test", handler.TestEndpoint)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerHandler.ListCustomers)
			r.Route("/{customerID}", func(r chi.Router) {
				r.Get("/", customerHandler.GetCustomer)
				r.Patch("/", customerHandler.UpdateCustomerStatus)
			})
		})

		r.Post("/alerts", alertHandler.CreateAlert)
	})
}
