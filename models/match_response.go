package models

// MatchResultResponse is the public JSON shape of a ranked musician.
type MatchResultResponse struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Email             string         `json:"email,omitempty"`
	Instruments       []string       `json:"instruments"`
	HasOwnInstruments bool           `json:"hasOwnInstruments"`
	Experience        float64        `json:"experience"`
	HourlyRate        float64        `json:"hourlyRate"`
	Location          string         `json:"location"`
	IsAvailable       bool           `json:"isAvailable"`
	Rating            float64        `json:"rating"`
	Distance          float64        `json:"distance"`
	MatchScore        int            `json:"matchScore"`
	Availability      Availability   `json:"availability"`
	Breakdown         ScoreBreakdown `json:"breakdown"`
}

// NewMatchResultResponse flattens a MatchResult for the API layer.
func NewMatchResultResponse(r MatchResult) MatchResultResponse {
	instruments := r.Musician.Instruments
	if instruments == nil {
		instruments = []string{}
	}
	availability := r.Availability
	if availability.Conflicts == nil {
		availability.Conflicts = []Conflict{}
	}
	return MatchResultResponse{
		ID:                r.Musician.ID,
		Name:              r.Musician.Name,
		Email:             r.Musician.Email,
		Instruments:       instruments,
		HasOwnInstruments: r.Musician.HasOwnInstruments,
		Experience:        r.Musician.ExperienceYears,
		HourlyRate:        r.Musician.HourlyRate,
		Location:          r.Musician.Location,
		IsAvailable:       availability.IsAvailable,
		Rating:            r.Musician.Rating,
		Distance:          r.Distance,
		MatchScore:        r.MatchScore,
		Availability:      availability,
		Breakdown:         r.Breakdown,
	}
}

// NewMatchResultResponses maps a ranked list, preserving order.
func NewMatchResultResponses(results []MatchResult) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, NewMatchResultResponse(r))
	}
	return out
}
