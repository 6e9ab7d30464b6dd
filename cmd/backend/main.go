// Package main provides the entry point for the Pulse analytics backend.
//
//	@title			Pulse Analytics Backend API
//	@version		1.0.0
//	@description	Web analytics ingestion backend: visitor tracking, pageviews, blog view analytics and statistics.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI Specification
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main

import (
	"Pulse-Backend/internal/config"
	"Pulse-Backend/internal/database"
	httpHandler "Pulse-Backend/internal/handler/http"
	"Pulse-Backend/internal/repository"
	"Pulse-Backend/internal/repository/hybrid"
	"Pulse-Backend/internal/repository/memory"
	"Pulse-Backend/internal/repository/postgres"
	"Pulse-Backend/internal/service"
	"Pulse-Backend/internal/stats"
	"Pulse-Backend/pkg/logger"
	"Pulse-Backend/pkg/useragent"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "Pulse-Backend/docs" // Import swagger docs
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting Pulse analytics backend", zap.String("env", cfg.Env))

	// Connect to the durable tier. Unlike a conventional service, a failed
	// connection is not fatal here: the hybrid adapters fall back to the
	// in-memory tier and the API keeps serving.
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Warn("durable tier unavailable, serving from memory", zap.Error(err))
		db = nil
	}
	if db != nil {
		defer func() {
			if err := database.Close(db, log); err != nil {
				log.Error("failed to close database connection", zap.Error(err))
			}
		}()

		if cfg.Database.AutoMigrate {
			log.Info("running database migrations (auto_migrate: true)")
			if err := database.AutoMigrate(db, log); err != nil {
				log.Fatal("failed to run database migrations", zap.Error(err))
			}
		} else {
			log.Info("skipping database migrations (auto_migrate: false)")
		}

		if cfg.Database.SeedData {
			log.Info("seeding database with initial data (seed_data: true)")
			if err := database.SeedData(db, log); err != nil {
				log.Fatal("failed to seed database", zap.Error(err))
			}
		}
	}

	// Initialize User-Agent parser
	if err := useragent.InitGlobalParser(cfg.Analytics.RegexesPath, log); err != nil {
		log.Warn("failed to initialize User-Agent parser, using fallback", zap.Error(err))
	}

	// Wire the storage tiers: one durable (postgres) and one memory store per
	// entity family, combined behind a hybrid adapter.
	var (
		durableVisitors  repository.VisitorStorage
		durablePageviews repository.PageviewStorage
		durableBlogViews repository.BlogViewStorage
	)
	if db != nil {
		durableVisitors = postgres.NewVisitorStore(db, log)
		durablePageviews = postgres.NewPageviewStore(db, log)
		durableBlogViews = postgres.NewBlogViewStore(db, log)
	}

	visitors := hybrid.NewVisitors(durableVisitors, memory.NewVisitorStore(), log)
	pageviews := hybrid.NewPageviews(durablePageviews, memory.NewPageviewStore(cfg.Analytics.PageviewCap), log)
	blogViews := hybrid.NewBlogViews(durableBlogViews, memory.NewBlogViewStore(), log)

	tiers := map[string]string{
		"visitors":   visitors.ActiveTier(),
		"pageviews":  pageviews.ActiveTier(),
		"blog_views": blogViews.ActiveTier(),
	}
	log.Info("storage tiers pinned",
		zap.String("visitors", tiers["visitors"]),
		zap.String("pageviews", tiers["pageviews"]),
		zap.String("blog_views", tiers["blog_views"]))

	// Initialize services
	tracker := service.NewTracker(visitors, pageviews, blogViews, log)
	statistics := stats.New(visitors, pageviews, blogViews, log)

	// Create HTTP server
	apiServer := httpHandler.NewServer(tracker, statistics, tiers, log)
	mux := apiServer.SetupRoutes()

	addr := fmt.Sprintf(":%d", cfg.HTTPServer.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  parseDuration(cfg.HTTPServer.ReadTimeout, 30*time.Second),
		WriteTimeout: parseDuration(cfg.HTTPServer.WriteTimeout, 30*time.Second),
		IdleTimeout:  parseDuration(cfg.HTTPServer.IdleTimeout, 60*time.Second),
	}

	log.Info("starting HTTP server", zap.String("address", addr))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down Pulse analytics backend...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}

// parseDuration parses a configured duration string, falling back to def.
func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
