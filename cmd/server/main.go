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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"regguard/internal/allowlist"
	"regguard/internal/audit"
	"regguard/internal/platform/config"
	"regguard/internal/platform/httpserver"
	"regguard/internal/platform/logger"
	"regguard/internal/platform/metrics"
	redisclient "regguard/internal/platform/redis"
	"regguard/internal/registration/handler"
	"regguard/internal/registration/profile"
	"regguard/internal/registration/service"
	"regguard/internal/registration/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		slog.Error("regguard exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	directory, closeDirectory, err := openDirectory(ctx, cfg.Directory)
	if err != nil {
		return err
	}
	defer closeDirectory()

	profiles, err := profile.New(directory, profile.WithEmailAsUsername(cfg.Registration.EmailAsUsername))
	if err != nil {
		return err
	}

	if cfg.Allowlist.Endpoint == "" {
		log.Warn("MOCK_API_URL is not set, every registration will be rejected")
	}
	domains := allowlist.New(cfg.Allowlist.Endpoint,
		allowlist.WithLogger(log),
		allowlist.WithMetrics(m),
	)

	publisher, closeAudit, err := newPublisher(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithEventSink(publisher),
		service.WithMetrics(m),
		service.WithEmailAsUsername(cfg.Registration.EmailAsUsername),
	}
	if completer, ok := directory.(service.Completer); ok {
		opts = append(opts, service.WithCompleter(completer))
	}
	svc, err := service.New(profiles, domains, opts...)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log, cfg.Server.RequestTimeout).Register(r)

	srv := httpserver.New(cfg.Server.Addr, r)
	log.Info("starting regguard",
		"addr", cfg.Server.Addr,
		"directory_backend", cfg.Directory.Backend,
		"email_as_username", cfg.Registration.EmailAsUsername,
		"audit_kafka", cfg.Audit.KafkaEnabled(),
	)
	if err := httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("regguard stopped")
	return nil
}

func openDirectory(ctx context.Context, cfg config.Directory) (profile.UserDirectory, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return store.NewPostgresDirectory(pool), pool.Close, nil
	case config.BackendRedis:
		client, err := redisclient.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisDirectory(client), func() { _ = client.Close() }, nil
	default:
		return store.NewInMemoryDirectory(), func() {}, nil
	}
}

func newPublisher(ctx context.Context, cfg config.Audit, log *slog.Logger) (*audit.Publisher, func(), error) {
	opts := []audit.Option{
		audit.WithLogger(log),
		audit.WithSink(audit.NewLogSink(log)),
	}
	if !cfg.KafkaEnabled() {
		return audit.NewPublisher(opts...), func() {}, nil
	}

	client, err := kgo.NewClient(kgo.SeedBrokers(cfg.KafkaBrokers...))
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := audit.EnsureTopic(ctx, kadm.NewClient(client), cfg.KafkaTopic); err != nil {
		log.Warn("audit topic not verified", "topic", cfg.KafkaTopic, "error", err)
	}
	opts = append(opts, audit.WithSink(audit.NewKafkaSink(client, cfg.KafkaTopic, log)))

	closeFn := func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Flush(flushCtx); err != nil {
			log.Warn("flush audit events", "error", err)
		}
		client.Close()
	}
	return audit.NewPublisher(opts...), closeFn, nil
}
