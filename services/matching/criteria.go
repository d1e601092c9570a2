package matching

import (
	"strings"

	"gigmatch/models"
)

// NormalizeCriteria overlays the explicit override fields onto the defaults
// derived from the event. Unset fields stay "no preference".
func NormalizeCriteria(event models.Event, override *models.SearchCriteria) models.SearchCriteria {
	criteria := models.SearchCriteria{
		Instrument: strings.TrimSpace(event.Instrument),
		Location:   strings.TrimSpace(event.Location),
		Date:       strings.TrimSpace(event.Date),
		Time:       strings.TrimSpace(event.Time),
		Duration:   strings.TrimSpace(event.Duration),
		EventType:  strings.TrimSpace(event.EventType),
	}
	if event.Budget > 0 {
		budget := event.Budget
		criteria.Budget = &budget
	}
	if override == nil {
		return criteria
	}

	overlay(&criteria.Instrument, override.Instrument)
	overlay(&criteria.Location, override.Location)
	overlay(&criteria.Date, override.Date)
	overlay(&criteria.Time, override.Time)
	overlay(&criteria.Duration, override.Duration)
	overlay(&criteria.EventType, override.EventType)
	if override.Budget != nil {
		budget := *override.Budget
		criteria.Budget = &budget
	}
	if override.MaxDistance != nil {
		maxDistance := *override.MaxDistance
		criteria.MaxDistance = &maxDistance
	}
	return criteria
}

// ValidateCriteria checks the fields a search cannot run without.
func ValidateCriteria(criteria models.SearchCriteria) error {
	if strings.TrimSpace(criteria.Instrument) == "" {
		return NewValidationError("instrument is required")
	}
	if criteria.MaxDistance != nil && *criteria.MaxDistance < 0 {
		return NewValidationError("maxDistance must not be negative")
	}
	if criteria.Budget != nil && *criteria.Budget < 0 {
		return NewValidationError("budget must not be negative")
	}
	return nil
}

func overlay(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}
