package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/banho/internal/logger"
)

const DefaultProbeInterval = 20 * time.Second

// Refresher re-checks upstream availability.
type Refresher interface {
	Refresh(ctx context.Context) bool
}

// ProbeRefresher keeps the cached availability warm so request paths rarely
// wait on a health check.
type ProbeRefresher struct {
	probe    Refresher
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewProbeRefresher(probe Refresher, log logger.Logger, interval time.Duration) *ProbeRefresher {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &ProbeRefresher{
		probe:    probe,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start checks once, then on every tick.
func (pr *ProbeRefresher) Start(ctx context.Context) {
	up := pr.probe.Refresh(ctx)
	pr.logger.Info("upstream availability checked", logger.Bool("available", up))

	ticker := time.NewTicker(pr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pr.probe.Refresh(ctx)
			case <-pr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (pr *ProbeRefresher) Stop() {
	close(pr.stopCh)
}
