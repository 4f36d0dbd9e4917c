// Package scheduler provides the recurring-task runner that drives background
// work such as the exchange rate refresh. It is owned by process lifecycle
// management; the tasks it runs know nothing about scheduling.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task is one unit of recurring work. Implementations must honour ctx
// cancellation on any I/O they perform.
type Task func(ctx context.Context)

// Run executes task immediately and then on every tick of interval until ctx
// is cancelled. It blocks, so callers normally run it in its own goroutine.
// A panicking task is recovered and logged rather than taking the process
// down; the next tick runs as usual.
func Run(ctx context.Context, interval time.Duration, task Task, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	runSafely(ctx, task, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			runSafely(ctx, task, logger)
		}
	}
}

func runSafely(ctx context.Context, task Task, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Scheduled task panicked", slog.Any("panic", r))
		}
	}()
	task(ctx)
}
