package musicianRepo

import (
	"context"

	"gigmatch/models"
)

// CandidateRepository is the read side used by the matching engine.
type CandidateRepository interface {
	// FindMusiciansByInstrument returns musicians playing the instrument
	// (case-insensitive), with their open commitments attached. When activeOnly
	// is set only profiles in the active status are returned.
	FindMusiciansByInstrument(ctx context.Context, instrument string, activeOnly bool) ([]models.MusicianProfile, error)
}

// MusicianRepository defines methods for musician profile data access.
type MusicianRepository interface {
	CandidateRepository
	// GetByID retrieves a musician profile by its unique ID.
	GetByID(ctx context.Context, id string) (*models.MusicianProfile, error)
	// Create inserts a new musician profile.
	Create(ctx context.Context, musician *models.MusicianProfile) error
	// EnsureIndexes creates the indexes the queries rely on.
	EnsureIndexes(ctx context.Context) error
}
