package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"gigmatch/database/repository"
	"gigmatch/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers          = 8
	defaultRecommendedLimit = 10
)

// Search outcomes reported to the Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder receives per-search measurements. Implemented by the metrics package.
type Recorder interface {
	ObserveSearch(outcome string, candidates, returned int, elapsed time.Duration)
}

// MatchingService ranks musicians for events.
type MatchingService interface {
	SearchMusiciansForEvent(ctx context.Context, event models.Event, override *models.SearchCriteria) ([]models.MatchResult, error)
	SearchMusiciansForEventID(ctx context.Context, eventID string, override *models.SearchCriteria) ([]models.MatchResult, error)
	GetRecommendedMusicians(ctx context.Context, eventID string) ([]models.MatchResult, error)
}

// DefaultMatchingService implements MatchingService. It holds no per-call
// state; every search works on one repository snapshot.
type DefaultMatchingService struct {
	Candidates repository.CandidateRepository
	Events     repository.EventReader
	Scorer     *Scorer
	// Workers bounds concurrent candidate evaluations.
	Workers int
	// RecommendedLimit caps GetRecommendedMusicians. Zero uses the default.
	RecommendedLimit int
	Logger           *zap.Logger
	Metrics          Recorder
}

// NewMatchingService wires a DefaultMatchingService with defaults for unset fields.
func NewMatchingService(candidates repository.CandidateRepository, events repository.EventReader, scorer *Scorer, logger *zap.Logger) *DefaultMatchingService {
	return &DefaultMatchingService{
		Candidates: candidates,
		Events:     events,
		Scorer:     scorer,
		Logger:     logger,
	}
}

// SearchMusiciansForEvent ranks every candidate for the event. Override fields
// replace the event-derived criteria. Repository errors are returned as-is and
// never replaced by an empty ranking.
func (s *DefaultMatchingService) SearchMusiciansForEvent(ctx context.Context, event models.Event, override *models.SearchCriteria) ([]models.MatchResult, error) {
	start := time.Now()
	logger := s.logger().With(zap.String("eventId", event.ID))

	criteria := NormalizeCriteria(event, override)
	if err := ValidateCriteria(criteria); err != nil {
		s.observe(OutcomeInvalid, 0, 0, start)
		return nil, err
	}

	candidates, err := s.Candidates.FindMusiciansByInstrument(ctx, criteria.Instrument, true)
	if err != nil {
		logger.Error("candidate lookup failed", zap.String("instrument", criteria.Instrument), zap.Error(err))
		s.observe(OutcomeError, 0, 0, start)
		return nil, err
	}

	results, err := s.evaluate(criteria, candidates)
	if err != nil {
		logger.Error("candidate evaluation failed", zap.Error(err))
		s.observe(OutcomeError, len(candidates), 0, start)
		return nil, err
	}
	results = FilterByDistance(results, criteria.MaxDistance)
	Rank(results)

	logger.Debug("musician search completed",
		zap.String("instrument", criteria.Instrument),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	s.observe(OutcomeOK, len(candidates), len(results), start)
	return results, nil
}

// SearchMusiciansForEventID loads the event and searches for it.
func (s *DefaultMatchingService) SearchMusiciansForEventID(ctx context.Context, eventID string, override *models.SearchCriteria) ([]models.MatchResult, error) {
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.SearchMusiciansForEvent(ctx, *event, override)
}

// GetRecommendedMusicians returns the top of the ranking for a stored event.
// A missing event is a NotFound error, never an empty list.
func (s *DefaultMatchingService) GetRecommendedMusicians(ctx context.Context, eventID string) ([]models.MatchResult, error) {
	results, err := s.SearchMusiciansForEventID(ctx, eventID, nil)
	if err != nil {
		return nil, err
	}
	return TopK(results, s.recommendedLimit()), nil
}

func (s *DefaultMatchingService) loadEvent(ctx context.Context, eventID string) (*models.Event, error) {
	start := time.Now()
	if strings.TrimSpace(eventID) == "" {
		s.observe(OutcomeInvalid, 0, 0, start)
		return nil, NewValidationError("event id is required")
	}
	event, err := s.Events.GetEventByID(ctx, eventID)
	if errors.Is(err, repository.ErrEventNotFound) || (err == nil && event == nil) {
		s.observe(OutcomeNotFound, 0, 0, start)
		return nil, NewNotFoundError("event not found")
	}
	if err != nil {
		s.logger().Error("event lookup failed", zap.String("eventId", eventID), zap.Error(err))
		s.observe(OutcomeError, 0, 0, start)
		return nil, err
	}
	return event, nil
}

// evaluate scores every candidate on a bounded pool. Each result depends only
// on its own candidate and the shared read-only criteria, and is written to its
// own index, so ordering is applied only after Wait.
func (s *DefaultMatchingService) evaluate(criteria models.SearchCriteria, candidates []models.MusicianProfile) ([]models.MatchResult, error) {
	results := make([]models.MatchResult, len(candidates))
	target := TimeWindowFromCriteria(criteria)
	scorer := s.scorer()

	var g errgroup.Group
	g.SetLimit(s.workers())
	for i := range candidates {
		g.Go(func() error {
			results[i] = evaluateCandidate(scorer, candidates[i], criteria, target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateCandidate(scorer *Scorer, musician models.MusicianProfile, criteria models.SearchCriteria, target TimeWindow) models.MatchResult {
	availability := CheckAvailability(musician, target)
	distance := 0.0
	if criteria.Location != "" {
		distance = CalculateDistance(criteria.Location, musician.Location)
	}
	score := scorer.Score(musician, criteria, availability, distance)
	return models.MatchResult{
		Musician:     musician,
		Breakdown:    score.Breakdown,
		MatchScore:   score.MatchScore,
		Distance:     distance,
		Availability: availability,
	}
}

func (s *DefaultMatchingService) observe(outcome string, candidates, returned int, start time.Time) {
	if s.Metrics != nil {
		s.Metrics.ObserveSearch(outcome, candidates, returned, time.Since(start))
	}
}

func (s *DefaultMatchingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultMatchingService) scorer() *Scorer {
	if s.Scorer == nil {
		return NewScorer()
	}
	return s.Scorer
}

func (s *DefaultMatchingService) workers() int {
	if s.Workers <= 0 {
		return defaultWorkers
	}
	return s.Workers
}

func (s *DefaultMatchingService) recommendedLimit() int {
	if s.RecommendedLimit <= 0 {
		return defaultRecommendedLimit
	}
	return s.RecommendedLimit
}
