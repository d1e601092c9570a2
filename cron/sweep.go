package cron

import (
	"context"
	"errors"
	"time"

	"gigmatch/database/repository"
	"gigmatch/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of asynq.Client the sweeper needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Sweeper periodically schedules a recommendation refresh for every open event.
type Sweeper struct {
	Events   repository.EventReader
	Queue    Enqueuer
	Interval time.Duration
	Logger   *zap.Logger
	// Now is replaceable in tests.
	Now func() time.Time
}

// SweepResult summarises one sweep.
type SweepResult struct {
	Enqueued   int
	Duplicates int
	Failed     int
}

// RunOnce lists open events from today onward and enqueues one refresh task
// per event. Tasks already queued within the interval count as duplicates.
func (s *Sweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	events, err := s.Events.ListOpenEvents(ctx, now())
	if err != nil {
		return res, err
	}

	for _, ev := range events {
		task, opts, err := tasks.NewRefreshRecommendationsTask(ev.ID, s.Interval)
		if err != nil {
			logger.Warn("Skipping event without id")
			res.Failed++
			continue
		}
		if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
			if errors.Is(err, asynq.ErrDuplicateTask) {
				res.Duplicates++
				continue
			}
			logger.Error("Failed to enqueue refresh", zap.String("eventId", ev.ID), zap.Error(err))
			res.Failed++
			continue
		}
		res.Enqueued++
	}
	return res, nil
}

// Start runs a sweep immediately and then every Interval until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := s.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	sweep := func() {
		res, err := s.RunOnce(ctx)
		if err != nil {
			logger.Error("Recommendation sweep failed", zap.Error(err))
			return
		}
		logger.Info("Recommendation sweep done",
			zap.Int("enqueued", res.Enqueued),
			zap.Int("duplicates", res.Duplicates),
			zap.Int("failed", res.Failed))
	}

	go func() {
		sweep()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Recommendation sweep stopped")
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()
}
