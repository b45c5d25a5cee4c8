package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/carmitra/carmitra/internal/config"
	"github.com/carmitra/carmitra/internal/seed"
	"github.com/carmitra/carmitra/pkg/httpclient"
	"github.com/carmitra/carmitra/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadSeed()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("carmitra-seed", "development", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()

	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("carmitra-api"),
		httpclient.NewBreakerMetrics(prometheus.NewRegistry()),
		log,
	)

	log.Info("seeding sample data", slog.String("api_url", cfg.APIURL))

	res, err := seed.New(client, cfg.APIURL, log).Run(ctx, seed.Reviews(), seed.Guides())
	if err != nil {
		return err
	}

	log.Info("seeding finished",
		slog.Int("reviews", res.Reviews),
		slog.Int("guides", res.Guides),
		slog.Int("rejected", res.Rejected),
	)
	if res.Rejected > 0 {
		return fmt.Errorf("%d submissions rejected", res.Rejected)
	}
	return nil
}
