package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Snapshot publisher configuration.
	PublishInterval time.Duration
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaSinkTopic  string

	// Optional SQLite snapshot archive; empty path disables it.
	SQLitePath string

	// Optional fixed simulation seed for reproducible output.
	SimSeed    int64
	SimSeedSet bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	publishIntervalStr := sharedcfg.EnvOrDefault("PUBLISH_INTERVAL", "1m")
	publishInterval, err := time.ParseDuration(publishIntervalStr)
	if err != nil || publishInterval <= 0 {
		return nil, errors.New("invalid PUBLISH_INTERVAL")
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	simSeed, simSeedSet, err := parseSimSeed()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PublishInterval: publishInterval,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "weather-snapshots"),

		SQLitePath: os.Getenv("SQLITE_PATH"),

		SimSeed:    simSeed,
		SimSeedSet: simSeedSet,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
	}

	return cfg, nil
}

func parseSimSeed() (int64, bool, error) {
	s := os.Getenv("SIM_SEED")
	if s == "" {
		return 0, false, nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid SIM_SEED: %w", err)
	}
	return seed, true, nil
}
