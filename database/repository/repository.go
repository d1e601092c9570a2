package repository

import (
	eventRepo "gigmatch/database/repository/event"
	musicianRepo "gigmatch/database/repository/musician"
)

// Re-export the musician repository interfaces and constructor.
type CandidateRepository = musicianRepo.CandidateRepository

type MusicianRepository = musicianRepo.MusicianRepository

var NewMongoMusicianRepo = musicianRepo.NewMongoMusicianRepo

// Re-export the event repository interfaces and constructor.
type EventReader = eventRepo.EventReader

type EventRepository = eventRepo.EventRepository

var NewMongoEventRepo = eventRepo.NewMongoEventRepo

// ErrEventNotFound is wrapped by EventReader.GetEventByID for missing events.
var ErrEventNotFound = eventRepo.ErrNotFound
