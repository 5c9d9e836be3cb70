package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/MrSnakeDoc/banho/internal/index"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/metrics"
	"github.com/MrSnakeDoc/banho/internal/static"
)

// DatasetReloader reloads the static dataset on a cron schedule and on
// manual triggers. A failed reload keeps the previous dataset in place.
type DatasetReloader struct {
	loader        *static.Loader
	index         *index.MemoryIndex
	logger        logger.Logger
	schedule      string
	cron          *cron.Cron
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewDatasetReloader creates a reloader. An empty schedule disables the
// periodic reload; manual triggers still work.
func NewDatasetReloader(
	loader *static.Loader,
	idx *index.MemoryIndex,
	log logger.Logger,
	schedule string,
	manualTrigger chan struct{},
) *DatasetReloader {
	return &DatasetReloader{
		loader:        loader,
		index:         idx,
		logger:        log,
		schedule:      schedule,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the dataset once, then keeps it fresh in the background.
func (dr *DatasetReloader) Start(ctx context.Context) error {
	if err := dr.Reload(ctx); err != nil {
		return fmt.Errorf("initial dataset load failed: %w", err)
	}

	if dr.schedule != "" {
		dr.cron = cron.New()
		_, err := dr.cron.AddFunc(dr.schedule, func() {
			if err := dr.Reload(ctx); err != nil {
				dr.logger.Error("scheduled dataset reload failed", logger.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("invalid reload schedule %q: %w", dr.schedule, err)
		}
		dr.cron.Start()
	}

	go func() {
		for {
			select {
			case <-dr.manualTrigger:
				dr.logger.Info("manual dataset reload triggered")
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload dataset", logger.Error(err))
				}
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the schedule and the trigger loop.
func (dr *DatasetReloader) Stop() {
	if dr.cron != nil {
		<-dr.cron.Stop().Done()
	}
	close(dr.stopCh)
}

// Reload reads the embedded dataset plus seed overrides and swaps the index.
func (dr *DatasetReloader) Reload(_ context.Context) error {
	ds, err := dr.loader.Load()
	metrics.ObserveReload(countOf(ds), err)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	dr.index.Replace(ds)
	dr.logger.Info("static dataset loaded",
		logger.Int("entities", ds.Count()),
		logger.Strings("overrides", ds.Overrides))
	return nil
}

func countOf(ds *static.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Count()
}
