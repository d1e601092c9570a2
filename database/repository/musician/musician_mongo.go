package musicianRepo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gigmatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// CollectionName holds musician profiles.
	CollectionName = "musicians"
	// EventsCollectionName is joined to attach commitments.
	EventsCollectionName = "events"

	maxRating = 5.0
)

// ErrNotFound is wrapped when a musician does not exist.
var ErrNotFound = errors.New("musician not found")

// MongoMusicianRepo implements MusicianRepository using MongoDB.
type MongoMusicianRepo struct {
	coll *mongo.Collection
}

// NewMongoMusicianRepo creates a MusicianRepository backed by the given database.
func NewMongoMusicianRepo(db *mongo.Database) MusicianRepository {
	return &MongoMusicianRepo{coll: db.Collection(CollectionName)}
}

func (r *MongoMusicianRepo) GetByID(ctx context.Context, id string) (*models.MusicianProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var musician models.MusicianProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&musician); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("musician %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch musician with id %s: %w", id, err)
	}
	normalizeProfile(&musician)
	return &musician, nil
}

func (r *MongoMusicianRepo) Create(ctx context.Context, musician *models.MusicianProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	doc := *musician
	// Commitments are derived from the events collection, never stored here.
	doc.Commitments = nil
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create musician: %w", err)
	}
	return nil
}

// normalizeProfile coerces a decoded document into the shape scoring expects.
func normalizeProfile(m *models.MusicianProfile) {
	m.ID = strings.TrimSpace(m.ID)
	m.Email = strings.TrimSpace(m.Email)
	if m.ID == "" {
		m.ID = m.Email
	}

	instruments := make([]string, 0, len(m.Instruments))
	for _, inst := range m.Instruments {
		if inst = strings.TrimSpace(inst); inst != "" {
			instruments = append(instruments, inst)
		}
	}
	m.Instruments = instruments

	m.HourlyRate = nonNegative(m.HourlyRate)
	m.ExperienceYears = nonNegative(m.ExperienceYears)
	m.Rating = math.Min(nonNegative(m.Rating), maxRating)
	if m.Commitments == nil {
		m.Commitments = []models.Commitment{}
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
