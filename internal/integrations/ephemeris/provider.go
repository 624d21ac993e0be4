package ephemeris

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dan9191/kundli-service/internal/models"
)

var (
	// ErrOutOfRange means the instant lies outside the ephemeris tables. It is a
	// domain error and is never retried.
	ErrOutOfRange = errors.New("instant outside ephemeris range")
	// ErrUnavailable covers transport failures, timeouts and provider faults
	ErrUnavailable = errors.New("ephemeris provider unavailable")
	// ErrNoEvent means the Sun does not rise or set on the requested date
	ErrNoEvent = errors.New("no sunrise or sunset on this date")
)

// Provider is the external source of raw astronomical positions
type Provider interface {
	// Position returns the tropical sample of a provider body id at instant
	Position(ctx context.Context, instant time.Time, body string) (models.RawSample, error)
	// Ayanamsa returns the Lahiri ayanamsa in degrees at instant
	Ayanamsa(ctx context.Context, instant time.Time) (float64, error)
	// Houses returns the tropical ascendant and cusps of a house system
	Houses(ctx context.Context, instant time.Time, loc models.Location, system models.HouseSystem) (models.HouseCusps, error)
	// RiseSet returns sunrise and sunset of the civil date in date's location
	RiseSet(ctx context.Context, date time.Time, loc models.Location) (models.RiseSet, error)
}

// BodyID maps a chart body to the provider's body id. Rahu is requested as
// the node body of the active node model.
func BodyID(b models.Body, node string) string {
	if b == models.Rahu || b == models.Ketu {
		return node
	}
	return strings.ToLower(string(b))
}

// Domain reports whether err is an answer about the sky rather than a failure
// of the provider.
func Domain(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrNoEvent)
}
