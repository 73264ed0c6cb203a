package main

import (
	"fmt"
	"log"

	"github.com/evlive/admin-console/internal/mockapi"
	"github.com/evlive/admin-console/pkg/config"
	"github.com/evlive/admin-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store := mockapi.NewSeededStore(cfg.MockAPI.Seed)
	router := mockapi.Router(store, cfg, logr)

	addr := fmt.Sprintf(":%d", cfg.MockAPI.Port)
	logr.Sugar().Infow("mock api starting", "addr", addr, "seed", cfg.MockAPI.Seed)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("mock api failed", "error", err)
	}
}
