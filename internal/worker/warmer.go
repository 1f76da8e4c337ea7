package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dice-stats/internal/clock"
	"github.com/dice-stats/internal/config"
	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/service"
)

// TableComputer computes a named statistics table
type TableComputer interface {
	Table(ctx context.Context, name string, scope domain.Scope, params service.TableParams) (any, error)
}

// WarmupWorker periodically recomputes the configured tables over the
// default range so their inputs stay in the cache
type WarmupWorker struct {
	stats   TableComputer
	config  *config.WarmupConfig
	days    int
	clock   clock.Clock
	logger  *slog.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewWarmupWorker creates a new warmup worker
func NewWarmupWorker(
	stats TableComputer,
	cfg *config.WarmupConfig,
	statsCfg *config.StatsConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *WarmupWorker {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	return &WarmupWorker{
		stats:  stats,
		config: cfg,
		days:   statsCfg.DefaultRangeDays,
		clock:  clk,
		logger: logger,
	}
}

// Start runs one cycle right away and then one per interval. A stopped
// worker can be started again.
func (w *WarmupWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info("warmup worker started", "interval", w.config.Interval, "tables", w.config.Tables)

	go w.run(ctx, stopCh, doneCh)
	return nil
}

// Stop stops the background warmup and waits for the current cycle
func (w *WarmupWorker) Stop() error {
	w.mu.Lock()
	if !w.running || w.stopCh == nil {
		w.mu.Unlock()
		return nil
	}
	stopCh, doneCh := w.stopCh, w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	close(stopCh)
	<-doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("warmup worker stopped")
	return nil
}

func (w *WarmupWorker) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce recomputes every configured table once and returns how many
// succeeded
func (w *WarmupWorker) RunOnce(ctx context.Context) int {
	startTime := time.Now()
	scope := domain.DefaultScope(w.clock.Now(), w.days)

	warmed := 0
	errorCount := 0
	for _, name := range w.config.Tables {
		if ctx.Err() != nil {
			break
		}
		if _, err := w.stats.Table(ctx, name, scope, service.TableParams{}); err != nil {
			w.logger.Error("failed to warm table", "table", name, "error", err)
			errorCount++
			continue
		}
		warmed++
	}

	w.logger.Info("warmup cycle completed",
		"duration", time.Since(startTime),
		"warmed", warmed,
		"errors", errorCount,
	)
	return warmed
}

// IsRunning returns whether the worker is currently running
func (w *WarmupWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
