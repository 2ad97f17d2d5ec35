package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"clipdeck/config"
	"clipdeck/systray"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath)

	// Create agent
	agent, err := NewAgent(cfg)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !cfg.Tray.Enabled {
		if err := agent.Run(ctx); err != nil {
			slog.Error("Agent error", "error", err)
			os.Exit(1)
		}
		slog.Info("ClipDeck stopped")
		return
	}

	webPort := 0
	if cfg.Web.Enabled {
		webPort = cfg.Web.Port
	}
	tray := systray.NewManager(webPort, nil)

	// The tray owns the main thread; the agent runs beside it and stops
	// it on exit.
	errCh := make(chan error, 1)
	go func() {
		errCh <- agent.Run(ctx)
		tray.Stop()
	}()
	go func() {
		<-tray.WaitForQuit()
		cancel()
	}()

	tray.Run()

	if err := <-errCh; err != nil {
		slog.Error("Agent error", "error", err)
		os.Exit(1)
	}
	slog.Info("ClipDeck stopped")
}
