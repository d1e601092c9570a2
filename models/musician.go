package models

// Musician profile statuses.
const (
	MusicianStatusActive   = "active"
	MusicianStatusInactive = "inactive"
)

// Commitment is a time window a musician is already tied to by an event.
type Commitment struct {
	EventID  string `bson:"eventId" json:"eventId"`
	Date     string `bson:"date" json:"date"`
	Time     string `bson:"time" json:"time"`
	Duration string `bson:"duration" json:"duration"`
	Status   string `bson:"status" json:"status"`
}

// MusicianProfile is the read-only view of a musician used for matching.
type MusicianProfile struct {
	ID                string       `bson:"id" json:"id"`
	Email             string       `bson:"email" json:"email"`
	Name              string       `bson:"name" json:"name"`
	Instruments       []string     `bson:"instruments" json:"instruments"`
	Location          string       `bson:"location" json:"location"`
	HourlyRate        float64      `bson:"hourlyRate" json:"hourlyRate"`
	Rating            float64      `bson:"rating" json:"rating"`
	ExperienceYears   float64      `bson:"experienceYears" json:"experienceYears"`
	HasOwnInstruments bool         `bson:"hasOwnInstruments" json:"hasOwnInstruments"`
	Status            string       `bson:"status" json:"status"`
	Commitments       []Commitment `bson:"commitments,omitempty" json:"commitments,omitempty"`
}
