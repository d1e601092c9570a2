package models

// SearchCriteria is the merged set of constraints for one search.
// Pointer and empty-string fields mean "no preference".
type SearchCriteria struct {
	Instrument  string   `json:"instrument"`
	Location    string   `json:"location,omitempty"`
	Budget      *float64 `json:"budget,omitempty" binding:"omitempty,gte=0"`
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	EventType   string   `json:"eventType,omitempty"`
	MaxDistance *float64 `json:"maxDistance,omitempty" binding:"omitempty,gte=0"`
}

// ScoreBreakdown holds the individual sub-scores, each in [0,100].
type ScoreBreakdown struct {
	Instrument   float64 `json:"instrument"`
	Availability float64 `json:"availability"`
	Experience   float64 `json:"experience"`
	Rating       float64 `json:"rating"`
	Budget       float64 `json:"budget"`
}

// Conflict is a committed window overlapping the requested one.
type Conflict struct {
	EventID  string `json:"eventId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Status   string `json:"status"`
}

// Availability reports whether a musician is free for the requested window.
type Availability struct {
	IsAvailable bool       `json:"isAvailable"`
	Conflicts   []Conflict `json:"conflicts"`
}

// MatchResult is one ranked candidate.
type MatchResult struct {
	Musician     MusicianProfile `json:"musician"`
	Breakdown    ScoreBreakdown  `json:"breakdown"`
	MatchScore   int             `json:"matchScore"`
	Distance     float64         `json:"distance"`
	Availability Availability    `json:"availability"`
}
