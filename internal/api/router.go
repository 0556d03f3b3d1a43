package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/themepulse/theme-returns-backend/internal/api/handlers"
	custommiddleware "github.com/themepulse/theme-returns-backend/internal/api/middleware"
	"github.com/themepulse/theme-returns-backend/internal/config"
	"github.com/themepulse/theme-returns-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	directoryService *service.DirectoryService,
	analyticsService *service.AnalyticsService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		stockHandler := handlers.NewStockHandler(directoryService)
		r.Get("/all-stocks", stockHandler.AllStocks)

		stockDataHandler := handlers.NewStockDataHandler(analyticsService)
		r.Post("/stock-data", stockDataHandler.StockData)
	})

	return r
}
