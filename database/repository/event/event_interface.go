package eventRepo

import (
	"context"
	"errors"
	"time"

	"gigmatch/models"
)

// ErrNotFound is wrapped when an event does not exist.
var ErrNotFound = errors.New("event not found")

// EventReader is the read side used by the matching engine.
type EventReader interface {
	// GetEventByID retrieves an event by ID. A missing event yields an error
	// wrapping ErrNotFound.
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	// ListOpenEvents returns events still waiting for a musician, dated on or after from.
	ListOpenEvents(ctx context.Context, from time.Time) ([]models.Event, error)
}

// EventRepository defines methods for event data access.
type EventRepository interface {
	EventReader
	// Create inserts a new event.
	Create(ctx context.Context, event *models.Event) error
	// EnsureIndexes creates the indexes the queries rely on.
	EnsureIndexes(ctx context.Context) error
}
