package matching_test

import (
	"testing"

	"gigmatch/models"
	"gigmatch/services/matching"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeCriteria(t *testing.T) {
	event := models.Event{
		ID:         "evt-1",
		Instrument: "Piano",
		Date:       "2025-06-01",
		Time:       "20:00",
		Duration:   "03:00",
		Location:   "Madrid",
		Budget:     5000,
		EventType:  "wedding",
	}

	Convey("Given an event and no override", t, func() {
		c := matching.NormalizeCriteria(event, nil)

		Convey("Then the event supplies every default", func() {
			So(c.Instrument, ShouldEqual, "Piano")
			So(c.Location, ShouldEqual, "Madrid")
			So(c.Date, ShouldEqual, "2025-06-01")
			So(c.Time, ShouldEqual, "20:00")
			So(c.Duration, ShouldEqual, "03:00")
			So(c.EventType, ShouldEqual, "wedding")
			So(*c.Budget, ShouldEqual, 5000)
			So(c.MaxDistance, ShouldBeNil)
		})
	})

	Convey("Given an override", t, func() {
		override := &models.SearchCriteria{Instrument: "Guitar", Budget: ptr(800), MaxDistance: ptr(15), Location: "  "}
		c := matching.NormalizeCriteria(event, override)

		Convey("Then explicit fields win and blank ones fall back", func() {
			So(c.Instrument, ShouldEqual, "Guitar")
			So(*c.Budget, ShouldEqual, 800)
			So(*c.MaxDistance, ShouldEqual, 15)
			So(c.Location, ShouldEqual, "Madrid")
			So(c.Duration, ShouldEqual, "03:00")
		})

		Convey("Then the override is not aliased", func() {
			*override.Budget = 1
			So(*c.Budget, ShouldEqual, 800)
		})
	})

	Convey("Given an event without a budget", t, func() {
		c := matching.NormalizeCriteria(models.Event{Instrument: "Drums"}, nil)

		Convey("Then budget is no preference", func() {
			So(c.Budget, ShouldBeNil)
			So(c.Location, ShouldBeEmpty)
		})
	})
}

func TestValidateCriteria(t *testing.T) {
	Convey("Given criteria without an instrument", t, func() {
		err := matching.ValidateCriteria(models.SearchCriteria{Location: "Madrid"})

		Convey("Then a validation error is returned", func() {
			So(err, ShouldNotBeNil)
			So(matching.IsValidationError(err), ShouldBeTrue)
			So(matching.IsNotFoundError(err), ShouldBeFalse)
		})
	})

	Convey("Given negative bounds", t, func() {
		So(matching.IsValidationError(matching.ValidateCriteria(models.SearchCriteria{Instrument: "Piano", MaxDistance: ptr(-1)})), ShouldBeTrue)
		So(matching.IsValidationError(matching.ValidateCriteria(models.SearchCriteria{Instrument: "Piano", Budget: ptr(-5)})), ShouldBeTrue)
	})

	Convey("Given only an instrument", t, func() {
		So(matching.ValidateCriteria(models.SearchCriteria{Instrument: "Piano"}), ShouldBeNil)
	})
}
