// Package publisher periodically synthesizes weather for every registered
// city and pushes the batch to the configured sinks.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/observability"
)

// Synthesizer produces one snapshot per registered city for an instant.
type Synthesizer interface {
	AllCities(at time.Time) ([]domain.WeatherSnapshot, error)
}

// BatchLoader writes a batch of snapshots to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, snaps []domain.WeatherSnapshot) error
}

// Publisher runs the synthesize-and-publish loop.
type Publisher struct {
	synth    Synthesizer
	loader   BatchLoader
	logger   *slog.Logger
	metrics  *observability.Metrics
	interval time.Duration
	ready    atomic.Bool
}

// New creates a Publisher with the given stages and observability.
func New(synth Synthesizer, loader BatchLoader, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Publisher {
	return &Publisher{
		synth:    synth,
		loader:   loader,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
	}
}

// CheckReadiness returns nil once at least one publish cycle has succeeded,
// or an error describing why the service is not yet ready.
func (p *Publisher) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("publisher has not completed a cycle yet")
	}
	return nil
}

// Run publishes immediately, then on every interval tick, until the context
// is cancelled. Failed cycles are retried with exponential backoff instead of
// waiting out the full interval.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("publisher started", "interval", p.interval)
	p.metrics.PublisherRunning.Set(1)
	defer p.metrics.PublisherRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.publishCycle(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("publisher stopping", "reason", ctx.Err())
				return nil
			}
			p.logger.Error("publish cycle failed", "error", err)
			p.metrics.PublishErrors.Inc()
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond

		select {
		case <-ctx.Done():
			p.logger.Info("publisher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}

// publishCycle runs one synthesize-and-load pass over all cities.
func (p *Publisher) publishCycle(ctx context.Context) error {
	start := time.Now()
	p.metrics.PublishCycles.Inc()

	snaps, err := p.synth.AllCities(time.Time{})
	if err != nil {
		return err
	}

	if err := p.loader.LoadBatch(ctx, snaps); err != nil {
		return err
	}

	p.metrics.SnapshotsPublished.Add(float64(len(snaps)))
	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)

	p.logger.Debug("publish cycle complete", "snapshots", len(snaps))
	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
