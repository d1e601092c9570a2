package matching

import (
	"strings"
	"time"

	"gigmatch/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// committedStatuses lists the commitment statuses that block a musician.
// Pending requests are not commitments yet.
var committedStatuses = map[string]struct{}{
	models.EventStatusMusicianAssigned: {},
	models.EventStatusConfirmed:        {},
	"assigned":                         {},
}

// TimeWindow is a requested slot: a start date/time plus a length in minutes.
type TimeWindow struct {
	Date            string
	Time            string
	DurationMinutes int
}

// TimeWindowFromCriteria builds the target window of a search.
func TimeWindowFromCriteria(criteria models.SearchCriteria) TimeWindow {
	return TimeWindow{
		Date:            criteria.Date,
		Time:            criteria.Time,
		DurationMinutes: ParseDuration(criteria.Duration),
	}
}

// IsCommittedStatus reports whether a commitment in this status blocks availability.
func IsCommittedStatus(status string) bool {
	_, ok := committedStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Overlaps applies the half-open interval rule: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 and s2 < e1. Windows sharing only a boundary do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CheckAvailability reports the musician's committed windows that overlap target.
// A target without a date or time means no preference and is always available.
func CheckAvailability(musician models.MusicianProfile, target TimeWindow) models.Availability {
	availability := models.Availability{IsAvailable: true, Conflicts: []models.Conflict{}}

	start, ok := parseWindowStart(target.Date, target.Time)
	if !ok {
		return availability
	}
	end := start.Add(time.Duration(target.DurationMinutes) * time.Minute)

	for _, c := range musician.Commitments {
		if !IsCommittedStatus(c.Status) {
			continue
		}
		cStart, ok := parseWindowStart(c.Date, c.Time)
		if !ok {
			// An unplaceable commitment cannot be compared; skip it.
			continue
		}
		cEnd := cStart.Add(time.Duration(ParseDuration(c.Duration)) * time.Minute)
		if Overlaps(start, end, cStart, cEnd) {
			availability.Conflicts = append(availability.Conflicts, models.Conflict{
				EventID:  c.EventID,
				Date:     c.Date,
				Time:     c.Time,
				Duration: c.Duration,
				Status:   c.Status,
			})
		}
	}

	availability.IsAvailable = len(availability.Conflicts) == 0
	return availability
}

// parseWindowStart combines a calendar date and a wall-clock time in UTC.
// Dates may also arrive as full RFC 3339 timestamps; only the day is used.
func parseWindowStart(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, date)
		if tsErr != nil {
			return time.Time{}, false
		}
		day = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	tod, err := time.Parse(timeLayout, clock)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute), true
}
