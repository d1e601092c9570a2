package models

import "time"

// Event statuses as stored by the events subsystem.
const (
	EventStatusPendingMusician  = "pending_musician"
	EventStatusMusicianAssigned = "musician_assigned"
	EventStatusConfirmed        = "confirmed"
	EventStatusCompleted        = "completed"
	EventStatusCancelled        = "cancelled"
)

// Event is an organizer's request for a musician.
type Event struct {
	ID                 string    `bson:"id" json:"id"`
	OrganizerID        string    `bson:"organizerId" json:"organizerId,omitempty"`
	Instrument         string    `bson:"instrument" json:"instrument"`
	Date               string    `bson:"date" json:"date"`         // "YYYY-MM-DD"
	Time               string    `bson:"time" json:"time"`         // "HH:MM", 24h
	Duration           string    `bson:"duration" json:"duration"` // "HH:MM"
	Location           string    `bson:"location" json:"location"`
	Budget             float64   `bson:"budget" json:"budget"`
	EventType          string    `bson:"eventType" json:"eventType,omitempty"`
	Status             string    `bson:"status" json:"status"`
	AssignedMusicianID string    `bson:"assignedMusicianId,omitempty" json:"assignedMusicianId,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}
