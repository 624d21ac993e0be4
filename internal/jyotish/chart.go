package jyotish

import (
	"fmt"
	"time"

	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// AyanamsaName is the sidereal zodiac the provider is asked for
const AyanamsaName = "Lahiri"

// ChartInput is everything the engine needs to derive a chart
type ChartInput struct {
	Birth   models.BirthInput
	Natal   models.Snapshot  // samples at the birth instant, houses included
	Sunrise *models.Snapshot // Sun and Moon at sunrise; nil when there was no sunrise
	RiseSet *models.RiseSet
	AsOf    time.Time // instant used to locate the current dasha
}

// Compute derives the full natal chart. It only fails on an incomplete
// snapshot; out-of-domain derived values panic with a Defect.
func Compute(in ChartInput) (*models.Chart, error) {
	if in.Natal.Houses == nil {
		return nil, fmt.Errorf("failed to compute chart: snapshot has no house cusps")
	}
	nodes := NodeModelFor(in.Birth.NodeMode)
	table := DignityTableFor(in.Birth.PropertyProfile)

	positions, err := Positions(in.Natal, in.Birth.Bodies(), nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute chart: %w", err)
	}

	planets := make([]models.Planet, len(positions))
	var sunLon float64
	for i, pos := range positions {
		planets[i] = describe(pos, table)
		if pos.Body == models.Sun {
			sunLon = pos.Longitude
		}
	}
	for i := range planets {
		planets[i].IsCombust = IsCombust(planets[i].Body, planets[i].Longitude, sunLon, planets[i].IsRetrograde)
	}

	ayanamsa := in.Natal.Ayanamsa
	asc := utils.Normalize360(in.Natal.Houses.Ascendant - ayanamsa)
	var cusps [12]float64
	for i, c := range in.Natal.Houses.Cusps {
		cusps[i] = utils.Normalize360(c - ayanamsa)
	}
	if in.Birth.HouseSystem == models.Placidus {
		// the ascendant is the cusp of house 1
		asc = cusps[0]
	}
	resolver := NewHouseResolver(in.Birth.HouseSystem, asc, cusps)
	houses := Houses(resolver, planets)

	chart := &models.Chart{
		Ascendant:  ascendantOf(asc),
		Planets:    planets,
		Houses:     houses,
		Divisional: DivisionalCharts(planets, asc, table),
		Doshas:     Doshas(planets),
	}

	moon, _ := chart.Planet(models.Moon)
	sun, _ := chart.Planet(models.Sun)

	subjects := Subjects{Moon: moon.Longitude, Ascendant: asc}
	if in.Sunrise != nil {
		p, err := PanchangAt(*in.Sunrise, models.AnchorSunrise, in.Birth.Zone, in.RiseSet)
		if err != nil {
			return nil, fmt.Errorf("failed to compute panchang: %w", err)
		}
		chart.Panchang = p
		sunriseMoon := utils.Normalize360(in.Sunrise.Samples[models.Moon].Longitude - in.Sunrise.Ayanamsa)
		subjects.SunriseMoon = &sunriseMoon
	} else {
		chart.Panchang = Panchang(PanchangInput{
			Sun:     sun.Longitude,
			Moon:    moon.Longitude,
			Anchor:  models.AnchorBirth,
			Instant: in.Birth.Instant,
			Zone:    in.Birth.Zone,
			RiseSet: in.RiseSet,
		})
	}

	chart.Dasha = Vimshottari(in.Birth.Instant, moon.Longitude, in.AsOf)
	chart.VedicProperties = VedicProperties(ReferenceSourceFor(in.Birth.PropertySource), subjects)
	chart.BasicDetails = models.BasicDetails{
		BirthDate:     in.Birth.Date,
		BirthTime:     in.Birth.Time,
		Instant:       in.Birth.Instant,
		Latitude:      in.Birth.Location.Latitude,
		Longitude:     in.Birth.Location.Longitude,
		Timezone:      in.Birth.Zone.String(),
		Ayanamsa:      AyanamsaName,
		AyanamsaValue: ayanamsa,
		SunSign:       sun.SignName,
		MoonSign:      moon.SignName,
		HouseSystem:   resolver.System(),
		NodeMode:      in.Birth.NodeMode,
		Profile:       table.Profile(),
	}
	if in.Birth.Debug {
		chart.Debug = &models.Diagnostics{
			BirthSnapshot:   in.Natal,
			SunriseSnapshot: in.Sunrise,
			SiderealCusps:   cusps,
		}
	}
	return chart, nil
}

// Positions normalizes the snapshot samples of the requested bodies. Ketu is
// mirrored from Rahu's sample.
func Positions(snap models.Snapshot, bodies []models.Body, nodes NodeModel) ([]models.Position, error) {
	out := make([]models.Position, 0, len(bodies))
	for _, b := range bodies {
		key := b
		if b == models.Ketu {
			key = models.Rahu
		}
		raw, ok := snap.Samples[key]
		if !ok {
			return nil, fmt.Errorf("missing ephemeris sample for %s", key)
		}
		raw.Body = key
		if b == models.Ketu {
			raw = KetuFromRahu(raw)
		}
		out = append(out, Normalize(raw, snap.Ayanamsa, nodes))
	}
	return out, nil
}

// PanchangAt computes the panchang from the Sun and Moon of a snapshot
func PanchangAt(snap models.Snapshot, anchor models.PanchangAnchor, zone *time.Location, riseSet *models.RiseSet) (models.PanchangDay, error) {
	sun, ok := snap.Samples[models.Sun]
	if !ok {
		return models.PanchangDay{}, fmt.Errorf("missing ephemeris sample for %s", models.Sun)
	}
	moon, ok := snap.Samples[models.Moon]
	if !ok {
		return models.PanchangDay{}, fmt.Errorf("missing ephemeris sample for %s", models.Moon)
	}
	return Panchang(PanchangInput{
		Sun:     utils.Normalize360(sun.Longitude - snap.Ayanamsa),
		Moon:    utils.Normalize360(moon.Longitude - snap.Ayanamsa),
		Anchor:  anchor,
		Instant: snap.Instant,
		Zone:    zone,
		RiseSet: riseSet,
	}), nil
}

func describe(pos models.Position, table DignityTable) models.Planet {
	nk := NakshatraOf(pos.Longitude)
	return models.Planet{
		Position:        pos,
		DegreeDMS:       utils.ToDMS(pos.Degree),
		LongitudeDMS:    utils.ToDMS(pos.Longitude),
		SignName:        pos.Sign.String(),
		SignNumber:      int(pos.Sign),
		SignLord:        pos.Sign.Lord(),
		Nakshatra:       nk.Name,
		NakshatraNumber: nk.Number,
		NakshatraLord:   nk.Lord,
		NakshatraPada:   nk.Pada,
		SubLord:         SubLord(pos.Longitude),
		Avastha:         Avastha(pos.Degree, pos.Sign),
		Dignity:         table.Classify(pos.Body, pos.Sign, pos.Degree),
	}
}

func ascendantOf(lon float64) models.Ascendant {
	sign := SignOf(lon)
	nk := NakshatraOf(lon)
	return models.Ascendant{
		Sign:          sign.String(),
		SignNumber:    int(sign),
		SignLord:      sign.Lord(),
		Degree:        lon,
		DegreeDMS:     utils.ToDMS(utils.Mod(lon, 30)),
		Nakshatra:     nk.Name,
		NakshatraLord: nk.Lord,
		NakshatraPada: nk.Pada,
	}
}
