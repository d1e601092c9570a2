package matching_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gigmatch/database/repository"
	"gigmatch/models"
	"gigmatch/services/matching"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeCandidates struct {
	musicians      []models.MusicianProfile
	err            error
	calls          int
	lastInstrument string
	lastActiveOnly bool
}

func (f *fakeCandidates) FindMusiciansByInstrument(_ context.Context, instrument string, activeOnly bool) ([]models.MusicianProfile, error) {
	f.calls++
	f.lastInstrument = instrument
	f.lastActiveOnly = activeOnly
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.MusicianProfile, len(f.musicians))
	copy(out, f.musicians)
	return out, nil
}

type fakeEvents struct {
	events map[string]models.Event
	err    error
}

func (f *fakeEvents) GetEventByID(_ context.Context, id string) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrEventNotFound)
	}
	return &e, nil
}

func (f *fakeEvents) ListOpenEvents(_ context.Context, _ time.Time) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, f.err
}

type recordedSearch struct {
	outcome              string
	candidates, returned int
}

type fakeRecorder struct {
	mu       sync.Mutex
	searches []recordedSearch
}

func (r *fakeRecorder) ObserveSearch(outcome string, candidates, returned int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, recordedSearch{outcome, candidates, returned})
}

var pianoEvent = models.Event{
	ID:         "evt-piano",
	Instrument: "Piano",
	Date:       "2025-06-01",
	Time:       "20:00",
	Duration:   "03:00",
	Location:   "Madrid",
	Budget:     5000,
	EventType:  "wedding",
	Status:     models.EventStatusPendingMusician,
}

func pool() []models.MusicianProfile {
	return []models.MusicianProfile{
		{ID: "ana", Name: "Ana", Instruments: []string{"Piano"}, Location: "Madrid", HourlyRate: 100, Rating: 4.8, ExperienceYears: 12, Status: "active"},
		{ID: "bea", Name: "Bea", Instruments: []string{"piano", "Voice"}, Location: "Toledo", HourlyRate: 150, Rating: 4.8, ExperienceYears: 12, Status: "active"},
		{ID: "carlos", Name: "Carlos", Instruments: []string{"Piano"}, Location: "Madrid", HourlyRate: 90, Rating: 5, ExperienceYears: 15, Status: "active",
			Commitments: []models.Commitment{{EventID: "gig", Date: "2025-06-01", Time: "21:00", Duration: "02:00", Status: models.EventStatusConfirmed}}},
		{ID: "dani", Name: "Dani", Instruments: []string{"Piano"}, Location: "Segovia", HourlyRate: 2500, Rating: 3, ExperienceYears: 2, Status: "active",
			Commitments: []models.Commitment{{EventID: "maybe", Date: "2025-06-01", Time: "20:00", Duration: "03:00", Status: models.EventStatusPendingMusician}}},
		{ID: "eva", Name: "Eva", Instruments: []string{"Piano"}, Location: "Madrid", HourlyRate: 60, Rating: 4, ExperienceYears: 0, Status: "active"},
	}
}

func newService(c *fakeCandidates, e *fakeEvents) *matching.DefaultMatchingService {
	return matching.NewMatchingService(c, e, matching.NewScorer(), nil)
}

func TestSearchMusiciansForEvent(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty candidate pool", t, func() {
		candidates := &fakeCandidates{}
		svc := newService(candidates, &fakeEvents{})

		Convey("When searching for a piano event", func() {
			event := models.Event{ID: "e", Instrument: "Piano", Budget: 5000, Duration: "03:00"}
			results, err := svc.SearchMusiciansForEvent(ctx, event, nil)

			Convey("Then an empty, non-nil list is returned", func() {
				So(err, ShouldBeNil)
				So(results, ShouldNotBeNil)
				So(results, ShouldBeEmpty)
			})

			Convey("Then the repository is asked for active pianists", func() {
				So(candidates.calls, ShouldEqual, 1)
				So(candidates.lastInstrument, ShouldEqual, "Piano")
				So(candidates.lastActiveOnly, ShouldBeTrue)
			})
		})
	})

	Convey("Given a failing repository", t, func() {
		dbErr := errors.New("Database error")
		svc := newService(&fakeCandidates{err: dbErr}, &fakeEvents{})

		Convey("Then the same error is returned unmodified", func() {
			results, err := svc.SearchMusiciansForEvent(ctx, pianoEvent, nil)
			So(err, ShouldEqual, dbErr)
			So(results, ShouldBeNil)
		})
	})

	Convey("Given criteria without an instrument", t, func() {
		candidates := &fakeCandidates{musicians: pool()}
		svc := newService(candidates, &fakeEvents{})

		Convey("Then validation fails before any I/O", func() {
			_, err := svc.SearchMusiciansForEvent(ctx, models.Event{ID: "e", Location: "Madrid"}, nil)
			So(matching.IsValidationError(err), ShouldBeTrue)
			So(candidates.calls, ShouldEqual, 0)
		})
	})

	Convey("Given a pool of pianists", t, func() {
		candidates := &fakeCandidates{musicians: pool()}
		recorder := &fakeRecorder{}
		svc := newService(candidates, &fakeEvents{})
		svc.Metrics = recorder

		Convey("When searching without overrides", func() {
			results, err := svc.SearchMusiciansForEvent(ctx, pianoEvent, nil)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 5)

			Convey("Then every result is well-formed", func() {
				for _, r := range results {
					So(r.MatchScore, ShouldBeBetweenOrEqual, 0, 100)
					So(r.Availability.IsAvailable, ShouldEqual, len(r.Availability.Conflicts) == 0)
					So(r.Distance, ShouldBeBetweenOrEqual, 0, matching.MaxDistanceKm)
				}
			})

			Convey("Then ties on score and rating are broken by distance", func() {
				// ana and bea both score 99 with rating 4.8; ana is in the event's city.
				So(results[0].Musician.ID, ShouldEqual, "ana")
				So(results[0].MatchScore, ShouldEqual, 99)
				So(results[0].Distance, ShouldEqual, 0)
				So(results[1].Musician.ID, ShouldEqual, "bea")
				So(results[1].MatchScore, ShouldEqual, 99)
			})

			Convey("Then the remaining order follows score then rating", func() {
				So(ids(results), ShouldResemble, []string{"ana", "bea", "eva", "carlos", "dani"})
			})

			Convey("Then a confirmed conflict pushes a musician down", func() {
				var carlos models.MatchResult
				for _, r := range results {
					if r.Musician.ID == "carlos" {
						carlos = r
					}
				}
				So(carlos.Availability.IsAvailable, ShouldBeFalse)
				So(carlos.Availability.Conflicts[0].EventID, ShouldEqual, "gig")
				So(carlos.MatchScore, ShouldEqual, 75)
			})

			Convey("Then pending commitments do not conflict", func() {
				for _, r := range results {
					if r.Musician.ID == "dani" {
						So(r.Availability.IsAvailable, ShouldBeTrue)
					}
				}
			})

			Convey("Then the list is sorted by the ranking order", func() {
				for i := 1; i < len(results); i++ {
					prev, cur := results[i-1], results[i]
					So(prev.MatchScore, ShouldBeGreaterThanOrEqualTo, cur.MatchScore)
					if prev.MatchScore == cur.MatchScore {
						So(prev.Musician.Rating, ShouldBeGreaterThanOrEqualTo, cur.Musician.Rating)
					}
				}
			})

			Convey("Then the search is recorded", func() {
				So(recorder.searches, ShouldResemble, []recordedSearch{{matching.OutcomeOK, 5, 5}})
			})
		})

		Convey("When a maximum distance is given", func() {
			limit := matching.CalculateDistance("Madrid", "Toledo")
			results, err := svc.SearchMusiciansForEvent(ctx, pianoEvent, &models.SearchCriteria{MaxDistance: &limit})
			So(err, ShouldBeNil)

			Convey("Then only musicians within range remain", func() {
				expected := 0
				for _, m := range pool() {
					if matching.CalculateDistance("Madrid", m.Location) <= limit {
						expected++
					}
				}
				So(results, ShouldHaveLength, expected)
				for _, r := range results {
					So(r.Distance, ShouldBeLessThanOrEqualTo, limit)
				}
			})
		})

		Convey("When the event has no location", func() {
			results, err := svc.SearchMusiciansForEvent(ctx, models.Event{ID: "e", Instrument: "Piano"}, nil)
			So(err, ShouldBeNil)

			Convey("Then distance is not estimated", func() {
				for _, r := range results {
					So(r.Distance, ShouldEqual, 0)
				}
			})
		})

		Convey("When the same search runs twice", func() {
			first, err1 := svc.SearchMusiciansForEvent(ctx, pianoEvent, nil)
			second, err2 := svc.SearchMusiciansForEvent(ctx, pianoEvent, nil)

			Convey("Then the output is identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When evaluated sequentially or in parallel", func() {
			svc.Workers = 1
			sequential, seqErr := svc.SearchMusiciansForEvent(ctx, pianoEvent, nil)
			svc.Workers = 16
			parallel, parErr := svc.SearchMusiciansForEvent(ctx, pianoEvent, nil)

			Convey("Then both succeed with the same ranking", func() {
				So(seqErr, ShouldBeNil)
				So(parErr, ShouldBeNil)
				So(sequential, ShouldHaveLength, 5)
				So(parallel, ShouldResemble, sequential)
			})
		})
	})
}

func TestGetRecommendedMusicians(t *testing.T) {
	ctx := context.Background()

	Convey("Given an event lookup that finds nothing", t, func() {
		candidates := &fakeCandidates{musicians: pool()}
		svc := newService(candidates, &fakeEvents{events: map[string]models.Event{}})

		Convey("Then a NotFound error is returned instead of an empty ranking", func() {
			results, err := svc.GetRecommendedMusicians(ctx, "missing-id")
			So(results, ShouldBeNil)
			So(matching.IsNotFoundError(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "event not found")
			So(candidates.calls, ShouldEqual, 0)
		})
	})

	Convey("Given an event store that fails", t, func() {
		storeErr := errors.New("connection reset")
		svc := newService(&fakeCandidates{}, &fakeEvents{err: storeErr})

		Convey("Then the storage error propagates unmodified", func() {
			_, err := svc.GetRecommendedMusicians(ctx, "evt-piano")
			So(err, ShouldEqual, storeErr)
			So(matching.IsNotFoundError(err), ShouldBeFalse)
		})
	})

	Convey("Given a blank event id", t, func() {
		svc := newService(&fakeCandidates{}, &fakeEvents{})
		_, err := svc.GetRecommendedMusicians(ctx, "  ")
		So(matching.IsValidationError(err), ShouldBeTrue)
	})

	Convey("Given a stored event", t, func() {
		events := &fakeEvents{events: map[string]models.Event{pianoEvent.ID: pianoEvent}}
		svc := newService(&fakeCandidates{musicians: pool()}, events)
		svc.RecommendedLimit = 2

		Convey("Then the top of the ranking is returned", func() {
			results, err := svc.GetRecommendedMusicians(ctx, pianoEvent.ID)
			So(err, ShouldBeNil)
			So(ids(results), ShouldResemble, []string{"ana", "bea"})
		})

		Convey("Then a search by id ranks the full pool", func() {
			results, err := svc.SearchMusiciansForEventID(ctx, pianoEvent.ID, nil)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 5)
		})
	})
}
