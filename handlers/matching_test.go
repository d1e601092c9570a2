package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gigmatch/handlers"
	"gigmatch/models"
	"gigmatch/services/matching"
	"gigmatch/utils"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeService struct {
	results      []models.MatchResult
	err          error
	lastEventID  string
	lastOverride *models.SearchCriteria
}

func (f *fakeService) SearchMusiciansForEvent(_ context.Context, event models.Event, override *models.SearchCriteria) ([]models.MatchResult, error) {
	return f.SearchMusiciansForEventID(context.Background(), event.ID, override)
}

func (f *fakeService) SearchMusiciansForEventID(_ context.Context, eventID string, override *models.SearchCriteria) ([]models.MatchResult, error) {
	f.lastEventID, f.lastOverride = eventID, override
	return f.results, f.err
}

func (f *fakeService) GetRecommendedMusicians(_ context.Context, eventID string) ([]models.MatchResult, error) {
	f.lastEventID = eventID
	return f.results, f.err
}

type fakeInvalidator struct {
	invalidated []string
	err         error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, eventID string) error {
	f.invalidated = append(f.invalidated, eventID)
	return f.err
}

func newRouter(h *handlers.MatchingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/events/:id/search", h.SearchMusiciansHandler)
	r.GET("/events/:id/recommended", h.GetRecommendedMusiciansHandler)
	r.DELETE("/events/:id/recommended", h.InvalidateRecommendationsHandler)
	r.GET("/duration", h.ParseDurationHandler)
	r.GET("/distance", h.DistanceHandler)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type searchResponse struct {
	EventID   string                       `json:"eventId"`
	Count     int                          `json:"count"`
	Musicians []models.MatchResultResponse `json:"musicians"`
}

func TestSearchMusiciansHandler(t *testing.T) {
	Convey("Given a matching handler", t, func() {
		svc := &fakeService{results: []models.MatchResult{
			{Musician: models.MusicianProfile{ID: "ana", Name: "Ana"}, MatchScore: 99, Availability: models.Availability{IsAvailable: true}},
			{Musician: models.MusicianProfile{ID: "bea", Name: "Bea"}, MatchScore: 80},
		}}
		r := newRouter(handlers.NewMatchingHandler(svc, nil))

		Convey("When searching without a body", func() {
			w := do(r, http.MethodPost, "/events/evt-1/search", "")

			Convey("Then the ranking is returned in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp searchResponse
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.EventID, ShouldEqual, "evt-1")
				So(resp.Count, ShouldEqual, 2)
				So(resp.Musicians[0].ID, ShouldEqual, "ana")
				So(resp.Musicians[0].IsAvailable, ShouldBeTrue)
				So(resp.Musicians[0].Instruments, ShouldNotBeNil)
				So(resp.Musicians[1].MatchScore, ShouldEqual, 80)
				So(svc.lastOverride, ShouldBeNil)
			})
		})

		Convey("When searching with an override", func() {
			w := do(r, http.MethodPost, "/events/evt-1/search", `{"location":"Austin","maxDistance":10}`)

			Convey("Then the override reaches the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(svc.lastOverride, ShouldNotBeNil)
				So(svc.lastOverride.Location, ShouldEqual, "Austin")
				So(*svc.lastOverride.MaxDistance, ShouldEqual, 10)
			})
		})

		Convey("When the override is malformed", func() {
			w := do(r, http.MethodPost, "/events/evt-1/search", `{"budget":`)

			Convey("Then it is rejected before searching", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(svc.lastEventID, ShouldBeEmpty)
			})
		})

		Convey("When the override has a negative budget", func() {
			w := do(r, http.MethodPost, "/events/evt-1/search", `{"budget":-5}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the service reports a validation error", func() {
			svc.err = matching.NewValidationError("instrument is required")
			w := do(r, http.MethodPost, "/events/evt-1/search", "")

			Convey("Then the response is 400 with the reason", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp utils.ErrorResponse
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Details, ShouldEqual, "instrument is required")
			})
		})

		Convey("When the event does not exist", func() {
			svc.err = matching.NewNotFoundError("event not found")
			w := do(r, http.MethodPost, "/events/missing/search", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When storage fails", func() {
			svc.err = errors.New("connection refused")
			w := do(r, http.MethodPost, "/events/evt-1/search", "")

			Convey("Then the response is 500 without internals", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldNotContainSubstring, "connection refused")
			})
		})
	})
}

func TestRecommendedMusiciansHandlers(t *testing.T) {
	Convey("Given a handler with a cache", t, func() {
		svc := &fakeService{}
		cache := &fakeInvalidator{}
		r := newRouter(handlers.NewMatchingHandler(svc, cache))

		Convey("An empty recommendation list is an empty array", func() {
			w := do(r, http.MethodGet, "/events/evt-9/recommended", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"musicians":[]`)
			So(svc.lastEventID, ShouldEqual, "evt-9")
		})

		Convey("Invalidation drops the cache entry", func() {
			w := do(r, http.MethodDelete, "/events/evt-9/recommended", "")
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(cache.invalidated, ShouldResemble, []string{"evt-9"})
		})

		Convey("A failing cache surfaces as 500", func() {
			cache.err = errors.New("redis down")
			w := do(r, http.MethodDelete, "/events/evt-9/recommended", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})

	Convey("Given a handler without a cache", t, func() {
		r := newRouter(handlers.NewMatchingHandler(&fakeService{}, nil))

		Convey("Invalidation is a no-op", func() {
			w := do(r, http.MethodDelete, "/events/evt-9/recommended", "")
			So(w.Code, ShouldEqual, http.StatusNoContent)
		})
	})
}

func TestPreviewHandlers(t *testing.T) {
	Convey("Given a matching handler", t, func() {
		r := newRouter(handlers.NewMatchingHandler(&fakeService{}, nil))

		Convey("Durations are parsed to minutes", func() {
			w := do(r, http.MethodGet, "/duration?value=2:30", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var resp struct {
				Duration string `json:"duration"`
				Minutes  int    `json:"minutes"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Duration, ShouldEqual, "2:30")
			So(resp.Minutes, ShouldEqual, 150)
		})

		Convey("Malformed durations are zero", func() {
			w := do(r, http.MethodGet, "/duration?value=abc", "")
			So(w.Body.String(), ShouldContainSubstring, `"minutes":0`)
		})

		Convey("Distance matches the estimator", func() {
			w := do(r, http.MethodGet, "/distance?from=Austin&to=Dallas", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var resp struct {
				DistanceKm float64 `json:"distanceKm"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.DistanceKm, ShouldEqual, matching.CalculateDistance("Austin", "Dallas"))
		})

		Convey("Distance requires both ends", func() {
			w := do(r, http.MethodGet, "/distance?from=Austin", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
