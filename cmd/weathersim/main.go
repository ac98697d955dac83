// Command weathersim serves synthetic Brandenburg weather over HTTP and
// periodically publishes snapshots for every city to the configured sinks
// (Kafka, SQLite).
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/brandenburg-weather-sim/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/brandenburg-weather-sim/internal/adapter/kafka"
	sqliteadapter "github.com/couchcryptid/brandenburg-weather-sim/internal/adapter/sqlite"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/config"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/observability"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/publisher"
	"github.com/joho/godotenv"
)

// alwaysReady satisfies readiness when no publish sinks are configured and
// the API alone constitutes the service.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(_ context.Context) error { return nil }

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var opts []domain.Option
	if cfg.SimSeedSet {
		opts = append(opts, domain.WithSeed(cfg.SimSeed))
		logger.Info("deterministic mode", "seed", cfg.SimSeed)
	}
	sim := domain.NewSimulator(domain.DefaultRegistry(), opts...)

	// Assemble publish sinks (feature-flagged via KAFKA_ENABLED / SQLITE_PATH).
	var sinks publisher.Fanout
	var closers []func() error

	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, writer)
		closers = append(closers, writer.Close)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}
	if cfg.SQLitePath != "" {
		archive, err := sqliteadapter.Open(cfg.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite archive", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, archive)
		closers = append(closers, archive.Close)
		logger.Info("sqlite archive enabled", "path", cfg.SQLitePath)
	}

	var ready httpadapter.ReadinessChecker = alwaysReady{}
	var pub *publisher.Publisher
	if len(sinks) > 0 {
		pub = publisher.New(sim, sinks, logger, metrics, cfg.PublishInterval)
		ready = pub
	} else {
		logger.Info("no publish sinks configured, serving API only")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, sim, ready, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if pub != nil {
		go func() {
			if err := pub.Run(ctx); err != nil {
				logger.Error("publisher error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("sink close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
