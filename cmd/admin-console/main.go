package main

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/ui"
	"github.com/evlive/admin-console/pkg/config"
	"github.com/evlive/admin-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logs go to a file so they never tear the terminal UI.
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	client := api.NewClient(cfg.API.BaseURL,
		api.WithToken(cfg.API.Token),
		api.WithTimeouts(cfg.API.ReadTimeout, cfg.API.WriteTimeout),
		api.WithLogger(logr),
	)
	auth := api.NewAuthClient(client)
	if cfg.API.Token == "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.API.WriteTimeout)
		err := auth.Login(ctx, cfg.API.Email, cfg.API.Password)
		cancel()
		if err != nil {
			log.Fatalf("failed to sign in to %s: %v", cfg.API.BaseURL, err)
		}
	}
	if expiry := auth.TokenExpiry(); !expiry.IsZero() && time.Until(expiry) < time.Hour {
		logr.Sugar().Warnw("session expires soon", "expiry", expiry)
	}

	clients := ui.NewClients(client)

	app := ui.NewApp(cfg, clients, logr)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	logr.Sugar().Infow("console starting", "api", cfg.API.BaseURL)
	if _, err := program.Run(); err != nil {
		logr.Sugar().Fatalw("console failed", "error", err)
	}
}
