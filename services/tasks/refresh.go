package tasks

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gigmatch/models"

	"github.com/hibiken/asynq"
)

const TypeRefreshRecommendations = "recommendations:refresh"

// QueueRefresh is the asynq queue refresh tasks are enqueued on.
const QueueRefresh = "matching"

// NewRefreshRecommendationsTask builds a task that recomputes the cached
// recommendations for one event. uniqueFor, when positive, collapses
// duplicate enqueues for the same event within that window.
func NewRefreshRecommendationsTask(eventID string, uniqueFor time.Duration) (*asynq.Task, []asynq.Option, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, nil, errors.New("refresh task requires an event id")
	}
	b, err := json.Marshal(models.RefreshPayload{EventID: eventID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRefreshRecommendations, b)
	opts := []asynq.Option{
		asynq.Queue(QueueRefresh),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	}
	if uniqueFor > 0 {
		opts = append(opts, asynq.Unique(uniqueFor))
	}
	return task, opts, nil
}

// ParseRefreshPayload decodes and checks a refresh task payload.
func ParseRefreshPayload(task *asynq.Task) (models.RefreshPayload, error) {
	var p models.RefreshPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, err
	}
	if strings.TrimSpace(p.EventID) == "" {
		return p, errors.New("refresh payload has no event id")
	}
	return p, nil
}
