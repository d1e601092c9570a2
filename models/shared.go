package models

// RefreshPayload is the queue payload for recomputing an event's recommendations.
type RefreshPayload struct {
	EventID string `json:"eventId"`
}
