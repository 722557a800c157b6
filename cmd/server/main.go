package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/iconidentify/blogsmith/internal/api"
	"github.com/iconidentify/blogsmith/internal/api/handler"
	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/mcptools"
	"github.com/iconidentify/blogsmith/internal/normalize"
	"github.com/iconidentify/blogsmith/internal/provider"
	"github.com/iconidentify/blogsmith/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("blogsmith %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	logger := newLogger(*debug)
	slog.SetDefault(logger)

	logger.Info("starting blogsmith",
		"version", Version,
		"build_time", BuildTime,
	)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	eventSvc, err := service.NewEventService(service.EventServiceConfig{
		RingBufferSize: cfg.Events.BufferSize,
		SQLitePath:     cfg.Events.SQLitePath,
		RetentionDays:  cfg.Events.RetentionDays,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize event service", "error", err)
		os.Exit(1)
	}

	client, err := provider.New(context.Background(), cfg.LLM)
	if err != nil {
		logger.Error("failed to initialize model client", "provider", cfg.LLM.Provider, "error", err)
		os.Exit(1)
	}
	if client == nil {
		logger.Warn("model credential not configured; content and trending requests will fail until API_KEY is set")
		eventSvc.EmitWarning(domain.EventCategoryConfig, "startup", "model credential not configured", domain.EventMetadata{
			"provider": cfg.LLM.Provider,
		})
	} else if !provider.SupportsWebSearch(cfg.LLM.Provider) {
		logger.Warn("provider has no search grounding; trending topics will not include sources", "provider", client.Name())
	}

	contentSvc := service.NewContentService(
		client,
		normalize.New(cfg.Normalize.Limits()),
		service.ContentServiceConfig{
			Provider:      provider.DisplayName(cfg.LLM.Provider),
			ContentModel:  cfg.LLM.ContentModel,
			TrendingModel: cfg.LLM.TrendingModel,
			Timeout:       cfg.LLM.Timeout,
		},
		eventSvc,
		logger,
	)

	handlers := api.Handlers{
		Content: handler.NewContentHandler(contentSvc, logger),
		Events:  handler.NewEventHandler(eventSvc, logger),
		Health:  handler.NewHealthHandler(contentSvc, eventSvc),
		UI:      handler.NewUIHandler(),
	}
	if cfg.MCP.Enabled {
		handlers.MCP = mcptools.NewServer(contentSvc, Version, logger).Handler()
	}
	router := api.NewRouter(handlers, cfg.Server.AccessKey, logger)

	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	go runEventCleanup(cleanupCtx, eventSvc, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting HTTP server",
			"addr", srv.Addr,
			"provider", contentSvc.ProviderName(),
			"mcp", cfg.MCP.Enabled,
			"access_key", cfg.Server.AccessKey != "",
		)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	eventSvc.EmitInfo(domain.EventCategorySystem, "startup", "server started", domain.EventMetadata{
		"version": Version,
		"addr":    srv.Addr,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := eventSvc.Close(); err != nil {
		logger.Error("event service shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// newLogger logs text to an interactive terminal and JSON otherwise.
func newLogger(debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func runEventCleanup(ctx context.Context, eventSvc *service.EventService, logger *slog.Logger) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		if err := eventSvc.CleanupOldEvents(ctx); err != nil {
			logger.Warn("event cleanup failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
