package cron

import (
	"context"
	"fmt"

	"gigmatch/config"
	"gigmatch/models"
	"gigmatch/services/matching"
	"gigmatch/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Refresher recomputes and stores the recommendations for one event.
type Refresher interface {
	Refresh(ctx context.Context, eventID string) ([]models.MatchResult, error)
}

// RefreshObserver counts refresh task results.
type RefreshObserver interface {
	ObserveRefresh(result string)
}

// RedisOpt returns the asynq connection for the task queue DB.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewRefreshHandler handles recommendations:refresh tasks. Bad payloads and
// events that no longer exist are not retried.
func NewRefreshHandler(refresher Refresher, logger *zap.Logger, observer RefreshObserver) asynq.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	observe := func(result string) {
		if observer != nil {
			observer.ObserveRefresh(result)
		}
	}
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRefreshPayload(task)
		if err != nil {
			logger.Warn("Invalid refresh payload", zap.Error(err))
			observe("invalid")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		results, err := refresher.Refresh(ctx, p.EventID)
		switch {
		case err == nil:
			logger.Debug("Recommendations refreshed", zap.String("eventId", p.EventID), zap.Int("results", len(results)))
			observe("ok")
			return nil
		case matching.IsNotFoundError(err):
			logger.Info("Skipping refresh for missing event", zap.String("eventId", p.EventID))
			observe("skipped")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		default:
			logger.Error("Failed to refresh recommendations", zap.String("eventId", p.EventID), zap.Error(err))
			observe("error")
			return err
		}
	}
}

// Worker runs the asynq server that processes refresh tasks.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewWorker builds a worker on the queue DB.
func NewWorker(cfg config.Config, refresher Refresher, logger *zap.Logger, observer RefreshObserver) *Worker {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				tasks.QueueRefresh: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRefreshRecommendations, NewRefreshHandler(refresher, logger, observer))

	return &Worker{srv: srv, mux: mux, logger: logger}
}

// Start begins processing in the background.
func (w *Worker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("start refresh worker: %w", err)
	}
	w.logger.Info("Refresh worker started")
	return nil
}

// Shutdown waits for in-flight tasks and stops the server.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
	w.logger.Info("Refresh worker stopped")
}
