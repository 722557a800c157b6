// blogsmith-tui is a terminal front-end for the blog content assistant. It
// calls the model provider directly with the same configuration as the
// server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/iconidentify/blogsmith/cmd/blogsmith-tui/internal/ui"
	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/internal/normalize"
	"github.com/iconidentify/blogsmith/internal/presenter"
	"github.com/iconidentify/blogsmith/internal/provider"
	"github.com/iconidentify/blogsmith/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logPath := flag.String("log", os.Getenv("BLOGSMITH_TUI_LOG"), "Write logs to this file (default: discard)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "blogsmith-tui needs an interactive terminal")
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs never go to stdout.
	logOut := io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	client, err := provider.New(context.Background(), cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing model client: %v\n", err)
		os.Exit(1)
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
		nil,
		logger,
	)

	app := ui.NewApp(presenter.New(contentSvc), contentSvc.ProviderName())
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
