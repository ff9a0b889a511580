package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"regguard/internal/allowlistmock"
	"regguard/internal/platform/config"
	"regguard/internal/platform/httpserver"
	"regguard/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("allowlist mock exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadMock()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	domains := allowlistmock.NewDomainSet(cfg.AllowedDomains)
	r := chi.NewRouter()
	allowlistmock.New(domains, log).Register(r)

	log.Info("starting allowlist mock", "addr", cfg.Addr, "allowed_domains", cfg.AllowedDomains)
	return httpserver.Run(ctx, httpserver.New(cfg.Addr, r), 5*time.Second)
}
