package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devfolio/app/api"
	"devfolio/app/cfg"
	"devfolio/app/content"
	"devfolio/app/database"
	"devfolio/app/devto"
	"devfolio/app/tasks"
	"devfolio/app/videos"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting devfolio server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	postRepo := database.NewPostRepository(db)

	contentCache := content.NewCache(appCfg.ContentDir)
	if err := contentCache.Run(); err != nil {
		slog.Error("Failed to load site content", "dir", appCfg.ContentDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Site content loaded", "dir", appCfg.ContentDir, "sections", contentCache.GetSectionCount())

	devtoClient := devto.NewClient(appCfg.DevtoAPIURL, appCfg.UserAgent)
	videoFetcher := videos.NewFetcher(appCfg.UserAgent)

	scheduler := tasks.NewScheduler(devtoClient, postRepo)
	scheduler.Start()
	defer scheduler.Stop()
	if appCfg.DevtoUsername != "" {
		slog.Info("Background refresh enabled", "username", appCfg.DevtoUsername, "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)
	} else {
		slog.Info("Background refresh idle, no default author configured")
	}

	cacheTTL := time.Duration(appCfg.CacheTTL) * time.Second
	handler := api.NewHandler(devtoClient, postRepo, videoFetcher, contentCache,
		appCfg.DevtoUsername, appCfg.YoutubeChannelID, cacheTTL, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
