package jyotish

import (
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// HouseResolver assigns sidereal longitudes to houses 1..12
type HouseResolver interface {
	System() models.HouseSystem
	Cusps() [12]float64
	HouseOf(lon float64) int
}

// NewHouseResolver builds the resolver of a house system from the sidereal
// ascendant and, for Placidus, the sidereal cusps supplied by the ephemeris.
func NewHouseResolver(system models.HouseSystem, ascendant float64, cusps [12]float64) HouseResolver {
	if system == models.Placidus {
		return placidus{cusps: cusps}
	}
	return wholeSignHouses{ascendant: SignOf(ascendant)}
}

type wholeSignHouses struct {
	ascendant models.Sign
}

func (wholeSignHouses) System() models.HouseSystem { return models.WholeSign }

func (w wholeSignHouses) Cusps() [12]float64 {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = float64(int(w.ascendant.Add(i))-1) * 30
	}
	return cusps
}

func (w wholeSignHouses) HouseOf(lon float64) int {
	diff := (int(SignOf(lon)) - int(w.ascendant) + 12) % 12
	return mustRange("house", diff+1, 1, 12)
}

type placidus struct {
	cusps [12]float64
}

func (placidus) System() models.HouseSystem { return models.Placidus }

func (p placidus) Cusps() [12]float64 { return p.cusps }

// HouseOf finds the half-open cusp interval holding lon, wrapping at 360°.
func (p placidus) HouseOf(lon float64) int {
	lon = utils.Normalize360(lon)
	for i := 0; i < 12; i++ {
		from, to := p.cusps[i], p.cusps[(i+1)%12]
		if inArc(lon, from, to) {
			return i + 1
		}
	}
	panic(Defect{Kind: "house", Detail: "longitude not covered by any cusp interval"})
}

func inArc(lon, from, to float64) bool {
	if from <= to {
		return lon >= from && lon < to
	}
	return lon >= from || lon < to
}

// Houses builds the twelve houses and stores each planet's house number
func Houses(resolver HouseResolver, planets []models.Planet) []models.House {
	cusps := resolver.Cusps()
	houses := make([]models.House, 12)
	for i := range houses {
		sign := SignOf(cusps[i])
		houses[i] = models.House{
			Number:   i + 1,
			System:   resolver.System(),
			Cusp:     cusps[i],
			Sign:     sign.String(),
			SignLord: sign.Lord(),
			Planets:  []models.Body{},
		}
	}
	for i := range planets {
		h := resolver.HouseOf(planets[i].Longitude)
		planets[i].House = h
		houses[h-1].Planets = append(houses[h-1].Planets, planets[i].Body)
	}
	return houses
}
