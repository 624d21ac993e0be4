// Package ephemeristest provides an in-memory ephemeris provider answering
// with a canned snapshot of 1990-05-15 14:30 Asia/Kolkata over New Delhi.
package ephemeristest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
	"github.com/Dan9191/kundli-service/internal/models"
)

// AyanamsaValue is the Lahiri ayanamsa answered for every instant
const AyanamsaValue = 23.72

var (
	// Birth is the UTC instant of the canned snapshot
	Birth = time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
	// Sunrise and Sunset bound the birth date at New Delhi
	Sunrise = time.Date(1990, 5, 14, 23, 59, 0, 0, time.UTC)
	Sunset  = time.Date(1990, 5, 15, 13, 49, 0, 0, time.UTC)
)

// sidereal longitude and speed per provider body id
var natal = map[string][2]float64{
	"sun":       {30.88, 0.96},
	"moon":      {287.5, 12.9},
	"mars":      {334.2, 0.7},
	"mercury":   {23.4, -0.3},
	"jupiter":   {83.1, 0.22},
	"venus":     {356.1, 1.1},
	"saturn":    {270.3, -0.02},
	"mean_node": {286.2, -0.053},
	"true_node": {286.5, 0.01},
	"uranus":    {284.1, -0.01},
	"neptune":   {290.2, -0.02},
	"pluto":     {222.5, -0.01},
}

var atSunrise = map[string][2]float64{
	"sun":  {30.40, 0.96},
	"moon": {282.60, 12.9},
}

// Provider implements ephemeris.Provider from the canned tables
type Provider struct {
	mu    sync.Mutex
	calls map[string]int

	// PositionErr, when set, is returned by every Position call
	PositionErr error
	// RiseSetErr, when set, is returned by every RiseSet call
	RiseSetErr error
	// Ascendant is the sidereal ascendant; cusps follow in whole signs
	Ascendant float64
}

var _ ephemeris.Provider = (*Provider)(nil)

// New returns a provider answering the canned snapshot
func New() *Provider {
	return &Provider{calls: make(map[string]int), Ascendant: 157.4}
}

func (p *Provider) record(action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[action]++
}

// Calls returns how often an action was requested
func (p *Provider) Calls(action string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[action]
}

func (p *Provider) Position(_ context.Context, instant time.Time, body string) (models.RawSample, error) {
	p.record("Position")
	if p.PositionErr != nil {
		return models.RawSample{}, p.PositionErr
	}
	table := natal
	if instant.Equal(Sunrise) {
		table = atSunrise
	}
	v, ok := table[body]
	if !ok {
		return models.RawSample{}, fmt.Errorf("no canned %s sample at %s: %w", body, instant.Format(time.RFC3339), ephemeris.ErrOutOfRange)
	}
	return models.RawSample{Longitude: v[0] + AyanamsaValue, Speed: v[1], Distance: 1}, nil
}

func (p *Provider) Ayanamsa(context.Context, time.Time) (float64, error) {
	p.record("Ayanamsa")
	return AyanamsaValue, nil
}

func (p *Provider) Houses(_ context.Context, _ time.Time, _ models.Location, system models.HouseSystem) (models.HouseCusps, error) {
	p.record("Houses")
	h := models.HouseCusps{Ascendant: p.Ascendant + AyanamsaValue}
	first := float64(int(p.Ascendant/30) * 30)
	if system == models.Placidus {
		first = p.Ascendant
	}
	for i := range h.Cusps {
		h.Cusps[i] = first + float64(i)*30 + AyanamsaValue
	}
	return h, nil
}

func (p *Provider) RiseSet(context.Context, time.Time, models.Location) (models.RiseSet, error) {
	p.record("RiseSet")
	if p.RiseSetErr != nil {
		return models.RiseSet{}, p.RiseSetErr
	}
	return models.RiseSet{Sunrise: Sunrise, Sunset: Sunset}, nil
}
