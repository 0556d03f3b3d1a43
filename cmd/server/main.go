package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/themepulse/theme-returns-backend/internal/api"
	"github.com/themepulse/theme-returns-backend/internal/config"
	"github.com/themepulse/theme-returns-backend/internal/database"
	"github.com/themepulse/theme-returns-backend/internal/listing"
	"github.com/themepulse/theme-returns-backend/internal/repository"
	"github.com/themepulse/theme-returns-backend/internal/service"
	"github.com/themepulse/theme-returns-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open symbol-cache database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create clients and repositories
	listingClient := listing.NewHTTPClient(cfg.Sources.NasdaqBaseURL, cfg.Sources.KRXBaseURL)
	yahooClient := yahoo.NewFinanceClient(cfg.Sources.YahooBaseURL)
	symbolRepo := repository.NewSymbolRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	directoryService := service.NewDirectoryService(
		listingClient,
		symbolRepo,
		cfg.Directory.Markets,
	)
	themeService := service.NewThemeService(
		directoryService,
		yahooClient,
		cfg.Fetch.Concurrency,
		cfg.Fetch.Timeout,
	)
	analyticsService := service.NewAnalyticsService(themeService)

	// Build the symbol directory before accepting requests
	log.Println("Loading symbol directory...")
	directoryService.Refresh(context.Background())

	// Optional scheduled directory refresh
	var scheduler *cron.Cron
	if cfg.Directory.RefreshSchedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Directory.RefreshSchedule, func() {
			directoryService.Refresh(context.Background())
		})
		if err != nil {
			log.Fatalf("Invalid directory refresh schedule: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Create router
	router := api.NewRouter(systemService, directoryService, analyticsService, cfg)

	// Create HTTP server. The stock-data endpoint fans out to per-symbol
	// price fetches and can legitimately run for minutes, hence the long
	// write timeout.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
