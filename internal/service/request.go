package service

import (
	"fmt"
	"time"

	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/validation"
)

// ParseBirth turns a validated request into the immutable birth input. The
// wall-clock time is interpreted in the request's time zone.
func ParseBirth(req models.ChartRequest) (models.BirthInput, error) {
	zone, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return models.BirthInput{}, validation.NewError("timezone", "TIMEZONE", fmt.Sprintf("Unknown time zone %q", req.Timezone))
	}
	date, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return models.BirthInput{}, validation.NewError("dateOfBirth", "DATETIME", "Must be a date/time formatted as 2006-01-02")
	}
	clock, err := validation.ParseClock(req.TimeOfBirth)
	if err != nil {
		return models.BirthInput{}, validation.NewError("timeOfBirth", "CLOCK", "Must be a time of day formatted as HH:MM or HH:MM:SS")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return models.BirthInput{}, validation.NewError("latitude", "REQUIRED", "This field is required")
	}

	in := models.BirthInput{
		Date:                req.DateOfBirth,
		Time:                req.TimeOfBirth,
		Zone:                zone,
		Location:            models.Location{Latitude: *req.Latitude, Longitude: *req.Longitude},
		IncludeOuterPlanets: req.IncludeOuterPlanets,
		Debug:               req.Debug,
	}
	in.Instant = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, zone)

	if in.HouseSystem, err = models.ParseHouseSystem(req.HouseSystem); err != nil {
		return models.BirthInput{}, err
	}
	if in.NodeMode, err = models.ParseNodeMode(req.NodeMode); err != nil {
		return models.BirthInput{}, err
	}
	if in.PropertyProfile, err = models.ParsePropertyProfile(req.PropertyProfile); err != nil {
		return models.BirthInput{}, err
	}
	if in.PropertySource, err = models.ParsePropertySource(req.PropertySource); err != nil {
		return models.BirthInput{}, err
	}
	return in, nil
}

// parseAsOf resolves the dasha query instant, defaulting to now
func parseAsOf(v string, now time.Time) (time.Time, error) {
	if v == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, validation.NewError("asOf", "DATETIME", "Must be an RFC 3339 timestamp")
	}
	return t, nil
}
