// Command seed fills the configured database with demo musicians and events.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"gigmatch/config"
	"gigmatch/database"
	"gigmatch/database/repository"
	musicianRepo "gigmatch/database/repository/musician"
	"gigmatch/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	instruments = []string{"Piano", "Guitar", "Violin", "Saxophone", "Drums", "Cello"}
	locations   = []string{"Austin", "Dallas", "Houston", "San Antonio"}
	eventTypes  = []string{"wedding", "corporate", "birthday", "gala"}
	durations   = []string{"1:00", "1:30", "2:00", "3:00"}
	startTimes  = []string{"12:00", "14:00", "17:30", "19:00", "20:30"}
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.DatabaseName)

	for _, name := range []string{musicianRepo.CollectionName, musicianRepo.EventsCollectionName} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("seed: failed to clear %s: %v", name, err)
		}
	}

	musicians := repository.NewMongoMusicianRepo(db)
	events := repository.NewMongoEventRepo(db)
	if err := musicians.EnsureIndexes(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}
	if err := events.EnsureIndexes(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}

	rng := rand.New(rand.NewPCG(42, 7))
	today := time.Now().UTC()

	var ids []string
	for i := 1; i <= 40; i++ {
		m := &models.MusicianProfile{
			ID:                uuid.NewString(),
			Email:             fmt.Sprintf("musician%02d@example.com", i),
			Name:              fmt.Sprintf("Musician %02d", i),
			Instruments:       pick(rng, instruments, 1+rng.IntN(2)),
			Location:          locations[rng.IntN(len(locations))],
			HourlyRate:        float64(60 + 10*rng.IntN(15)),
			Rating:            float64(30+rng.IntN(21)) / 10,
			ExperienceYears:   float64(rng.IntN(25)),
			HasOwnInstruments: rng.IntN(3) > 0,
			Status:            models.MusicianStatusActive,
		}
		if i%10 == 0 {
			m.Status = models.MusicianStatusInactive
		}
		if err := musicians.Create(ctx, m); err != nil {
			log.Fatalf("seed: %v", err)
		}
		ids = append(ids, m.ID)
	}

	statuses := []string{
		models.EventStatusPendingMusician,
		models.EventStatusMusicianAssigned,
		models.EventStatusConfirmed,
		models.EventStatusCancelled,
	}
	for i := 0; i < 30; i++ {
		ev := &models.Event{
			ID:          uuid.NewString(),
			OrganizerID: uuid.NewString(),
			Instrument:  instruments[rng.IntN(len(instruments))],
			Date:        today.AddDate(0, 0, rng.IntN(14)).Format("2006-01-02"),
			Time:        startTimes[rng.IntN(len(startTimes))],
			Duration:    durations[rng.IntN(len(durations))],
			Location:    locations[rng.IntN(len(locations))],
			Budget:      float64(150 + 50*rng.IntN(10)),
			EventType:   eventTypes[rng.IntN(len(eventTypes))],
			Status:      statuses[rng.IntN(len(statuses))],
			CreatedAt:   today,
		}
		if ev.Status != models.EventStatusPendingMusician {
			ev.AssignedMusicianID = ids[rng.IntN(len(ids))]
		}
		if err := events.Create(ctx, ev); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	log.Printf("Seeded %d musicians and 30 events into %s", len(ids), cfg.DatabaseName)
}

func pick(rng *rand.Rand, from []string, n int) []string {
	perm := rng.Perm(len(from))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, from[i])
	}
	return out
}
