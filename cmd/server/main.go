package main

import (
	"fmt"
	"log"
	"os"

	"github.com/specwise/backend/config"
	httpDelivery "github.com/specwise/backend/internal/delivery/http"
	"github.com/specwise/backend/internal/domain"
	"github.com/specwise/backend/internal/infrastructure/cache"
	"github.com/specwise/backend/internal/infrastructure/summary"
	"github.com/specwise/backend/internal/infrastructure/wiki"
	"github.com/specwise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SpecWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Wiki API: %s (search limit %d)", cfg.Wiki.BaseURL, cfg.Wiki.SearchLimit)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	wikiClient := wiki.NewClient(cfg.Wiki.BaseURL, cfg.Wiki.UserAgent, cfg.Wiki.SearchLimit)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		wikiClient.SetDebug(true)
		log.Printf("Wiki client debug mode enabled")
	}

	var summarizer domain.Summarizer
	if cfg.Summary.Enabled {
		summarizer = summary.NewClient(cfg.Summary.Endpoint, cfg.Summary.Provider)
		log.Printf("Summary proxy configured: %s (provider: %s)", cfg.Summary.Endpoint, cfg.Summary.Provider)
	} else {
		log.Printf("Summary proxy disabled")
	}

	// Initialize usecase layer
	phoneService := usecase.NewPhoneService(
		memoryCache,
		wikiClient,
		usecase.PhoneServiceConfig{
			CacheTTL:    cfg.Cache.TTL,
			SearchLimit: cfg.Wiki.SearchLimit,
		},
	)

	session := usecase.NewSession(phoneService, usecase.SessionConfig{
		Debounce:     cfg.Session.Debounce,
		FetchTimeout: cfg.Session.FetchTimeout,
	})

	log.Printf("Session: debounce=%s, fetch timeout=%s", cfg.Session.Debounce, cfg.Session.FetchTimeout)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(phoneService, session, summarizer)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
