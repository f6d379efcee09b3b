// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scheduler runs periodic maintenance jobs on a cron schedule.

The only job today is the favorites reconciler, which prunes memberships whose
book was deleted while the favorites cleanup failed.
*/
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single reconciliation run.
const jobTimeout = 2 * time.Minute

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Pruner removes orphaned favorites and reports how many were deleted.
type Pruner interface {
	PruneOrphans(ctx context.Context) (int64, error)
}

// Reconciler periodically prunes orphaned favorites.
type Reconciler struct {
	pruner   Pruner
	schedule string
	logger   *slog.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewReconciler creates a reconciler. An empty schedule disables it.
func NewReconciler(pruner Pruner, schedule string, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		pruner:   pruner,
		schedule: schedule,
		logger:   logger.With(slog.String("job", "favorites_reconciler")),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// ValidateSchedule reports whether expr is a five-field cron expression or a descriptor such as @hourly.
func ValidateSchedule(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("scheduler: invalid cron schedule %q: %w", expr, err)
	}
	return nil
}

// Start registers the job and starts the cron loop. Calling it twice is a no-op.
func (reconciler *Reconciler) Start() error {
	reconciler.mu.Lock()
	defer reconciler.mu.Unlock()

	if reconciler.isRunning {
		return nil
	}

	if reconciler.schedule == "" {
		reconciler.logger.Info("scheduler_disabled")
		return nil
	}

	if err := ValidateSchedule(reconciler.schedule); err != nil {
		return err
	}

	entryID, err := reconciler.cron.AddFunc(reconciler.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, _ = reconciler.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: failed to schedule job: %w", err)
	}
	reconciler.entryID = entryID

	reconciler.cron.Start()
	reconciler.isRunning = true

	reconciler.logger.Info("scheduler_started",
		slog.String("schedule", reconciler.schedule),
		slog.Time("next_run", reconciler.cron.Entry(entryID).Next),
	)
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (reconciler *Reconciler) Stop() {
	reconciler.mu.Lock()
	defer reconciler.mu.Unlock()

	if !reconciler.isRunning {
		return
	}

	<-reconciler.cron.Stop().Done()
	reconciler.cron.Remove(reconciler.entryID)
	reconciler.isRunning = false

	reconciler.logger.Info("scheduler_stopped")
}

// IsRunning reports whether the cron loop is active.
func (reconciler *Reconciler) IsRunning() bool {
	reconciler.mu.RLock()
	defer reconciler.mu.RUnlock()
	return reconciler.isRunning
}

// NextRun returns when the job fires next, or nil when stopped.
func (reconciler *Reconciler) NextRun() *time.Time {
	reconciler.mu.RLock()
	defer reconciler.mu.RUnlock()

	if !reconciler.isRunning {
		return nil
	}

	next := reconciler.cron.Entry(reconciler.entryID).Next
	return &next
}

// RunNow performs one reconciliation pass synchronously.
func (reconciler *Reconciler) RunNow(ctx context.Context) (int64, error) {
	startTime := time.Now()

	pruned, err := reconciler.pruner.PruneOrphans(ctx)
	if err != nil {
		reconciler.logger.ErrorContext(ctx, "favorites_reconcile_failed", slog.Any("error", err))
		return 0, err
	}

	reconciler.logger.InfoContext(ctx, "favorites_reconciled",
		slog.Int64("pruned", pruned),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()),
	)
	return pruned, nil
}
