// Package main is the entry point for the annotation browser server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/mirbrowse/server/internal/api"
	"github.com/mirbrowse/server/internal/assets"
	"github.com/mirbrowse/server/internal/cache"
	"github.com/mirbrowse/server/internal/config"
	"github.com/mirbrowse/server/internal/data/annot"
	"github.com/mirbrowse/server/internal/middleware"
	"github.com/mirbrowse/server/internal/render"
	"github.com/mirbrowse/server/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.StringP("config", "c", "config/server.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting %s on port %d", cfg.Server.Title, cfg.Server.Port)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize cache manager (shared across all datasets)
	cacheManager, err := cache.NewManager(cache.Config{
		ResultCacheSizeMB: cfg.Cache.ResultSizeMB,
		ResultTTL:         time.Duration(cfg.Cache.ResultTTLMinutes) * time.Minute,
		QueryCacheSize:    cfg.Cache.QueryEntries,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer cacheManager.Close()

	// Initialize chart renderer (shared across all datasets)
	chartRenderer := render.NewChartRenderer(render.Config{
		Width:  cfg.Render.ChartWidth,
		Height: cfg.Render.ChartHeight,
	})

	// Initialize dataset registry
	datasetIDs := cfg.Data.DatasetIDs()
	registry := api.NewDatasetRegistry(cfg.Server.Title, cfg.Data.DefaultDataset)

	log.Printf("Initializing %d dataset(s), default: %s", len(datasetIDs), cfg.Data.DefaultDataset)

	for _, datasetID := range datasetIDs {
		dsCfg := cfg.Data.Datasets[datasetID]

		ds, err := annot.Load(dsCfg.TablePath, dsCfg.Schema())
		if err != nil {
			log.Fatalf("Failed to load annotation table for dataset %q: %v", datasetID, err)
		}
		log.Printf("  [%s] Loaded from: %s", datasetID, dsCfg.TablePath)

		icons, err := assets.LoadIcons(dsCfg.IconsDir)
		if err != nil {
			log.Printf("  [%s] Icons not loaded: %v", datasetID, err)
		}

		registry.Register(service.NewBrowserService(service.BrowserServiceConfig{
			DatasetID: datasetID,
			Title:     dsCfg.Title,
			Dataset:   ds,
			Icons:     icons,
			Cache:     cacheManager,
			Renderer:  chartRenderer,
		}))
	}

	// Set up HTTP router
	router := api.NewRouter(api.RouterConfig{
		Registry:    registry,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimit.RPS,
			Burst:             cfg.Server.RateLimit.Burst,
		},
		Context: ctx,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
