package matching

import (
	"fmt"
	"math"
	"strings"

	"gigmatch/models"
)

// Default scoring configuration constants.
const (
	defaultExperienceCeiling = 10.0
	maxSubScore              = 100.0
	ratingScale              = 20.0
	weightSumTolerance       = 1e-6
)

// Weights is the declarative weight table combining the sub-scores.
// Weights must be non-negative and sum to 1.0.
type Weights struct {
	Instrument   float64 `json:"instrument"`
	Availability float64 `json:"availability"`
	Experience   float64 `json:"experience"`
	Rating       float64 `json:"rating"`
	Budget       float64 `json:"budget"`
}

// DefaultWeights returns the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		Instrument:   0.30,
		Availability: 0.25,
		Experience:   0.15,
		Rating:       0.20,
		Budget:       0.10,
	}
}

// Validate checks that the weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	sum := 0.0
	for _, f := range w.table() {
		if f.weight < 0 || math.IsNaN(f.weight) {
			return fmt.Errorf("weight %q must be non-negative, got %v", f.name, f.weight)
		}
		sum += f.weight
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

type weightedFactor struct {
	name   string
	weight float64
	pick   func(models.ScoreBreakdown) float64
}

func (w Weights) table() []weightedFactor {
	return []weightedFactor{
		{"instrument", w.Instrument, func(b models.ScoreBreakdown) float64 { return b.Instrument }},
		{"availability", w.Availability, func(b models.ScoreBreakdown) float64 { return b.Availability }},
		{"experience", w.Experience, func(b models.ScoreBreakdown) float64 { return b.Experience }},
		{"rating", w.Rating, func(b models.ScoreBreakdown) float64 { return b.Rating }},
		{"budget", w.Budget, func(b models.ScoreBreakdown) float64 { return b.Budget }},
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights replaces the weight table. Invalid tables are ignored.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// WithExperienceCeiling sets the years of experience that earn a full experience score.
func WithExperienceCeiling(years float64) Option {
	return func(s *Scorer) {
		if years > 0 {
			s.experienceCeiling = years
		}
	}
}

// Score is the outcome of scoring one candidate.
type Score struct {
	MatchScore int
	Breakdown  models.ScoreBreakdown
}

// Scorer computes 0-100 match scores from weighted sub-scores.
type Scorer struct {
	weights           Weights
	experienceCeiling float64
}

// NewScorer creates a scorer with default weights and the given options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights:           DefaultWeights(),
		experienceCeiling: defaultExperienceCeiling,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the active weight table.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the match score of a musician for the given criteria.
// Distance is carried for reporting and does not contribute to the score.
func (s *Scorer) Score(musician models.MusicianProfile, criteria models.SearchCriteria, availability models.Availability, distance float64) Score {
	breakdown := models.ScoreBreakdown{
		Instrument:   InstrumentScore(musician.Instruments, criteria.Instrument),
		Availability: AvailabilityScore(availability),
		Experience:   ExperienceScore(musician.ExperienceYears, s.experienceCeiling),
		Rating:       RatingScore(musician.Rating),
		Budget:       BudgetScore(musician.HourlyRate, ParseDuration(criteria.Duration), criteria.Budget),
	}

	total := 0.0
	for _, f := range s.weights.table() {
		total += f.weight * f.pick(breakdown)
	}

	return Score{
		MatchScore: int(clamp(math.Round(total), 0, maxSubScore)),
		Breakdown:  breakdown,
	}
}

// InstrumentScore is 100 when the requested instrument is among the musician's
// instruments (case-insensitive), 0 otherwise. No requested instrument scores 100.
func InstrumentScore(instruments []string, requested string) float64 {
	want := strings.TrimSpace(requested)
	if want == "" {
		return maxSubScore
	}
	for _, inst := range instruments {
		if strings.EqualFold(strings.TrimSpace(inst), want) {
			return maxSubScore
		}
	}
	return 0
}

// AvailabilityScore is binary: 100 when free, 0 when conflicted.
func AvailabilityScore(availability models.Availability) float64 {
	if availability.IsAvailable {
		return maxSubScore
	}
	return 0
}

// ExperienceScore rises linearly from 0 at zero years to 100 at ceiling years.
func ExperienceScore(years, ceiling float64) float64 {
	if ceiling <= 0 {
		ceiling = defaultExperienceCeiling
	}
	return clamp(years/ceiling*maxSubScore, 0, maxSubScore)
}

// RatingScore maps a 0-5 rating onto 0-100.
func RatingScore(rating float64) float64 {
	return clamp(rating*ratingScale, 0, maxSubScore)
}

// BudgetScore is 100 while hourlyRate x duration stays within budget and falls
// linearly to 0 at 100% overage. A nil or non-positive budget is no cap.
func BudgetScore(hourlyRate float64, durationMinutes int, budget *float64) float64 {
	if budget == nil || *budget <= 0 {
		return maxSubScore
	}
	cost := math.Max(hourlyRate, 0) * float64(durationMinutes) / 60
	if cost <= *budget {
		return maxSubScore
	}
	overage := (cost - *budget) / *budget
	return clamp(maxSubScore*(1-overage), 0, maxSubScore)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
