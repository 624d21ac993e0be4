package jyotish

import (
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// combustOrb is the distance from the Sun within which a planet is combust.
// Sun, nodes and outer planets have no orb.
var combustOrb = map[models.Body]float64{
	models.Moon:    12,
	models.Mars:    17,
	models.Mercury: 14,
	models.Jupiter: 11,
	models.Venus:   10,
	models.Saturn:  15,
}

// retrogradeOrb narrows the orb of the inferior planets while retrograde
var retrogradeOrb = map[models.Body]float64{
	models.Mercury: 12,
	models.Venus:   8,
}

// orbEpsilon absorbs float64 error in the Sun distance so that a planet
// exactly on its orb is not combust
const orbEpsilon = 1e-9

// IsCombust reports whether a body lies strictly inside its orb from the Sun
func IsCombust(body models.Body, lon, sunLon float64, retrograde bool) bool {
	orb, ok := combustOrb[body]
	if !ok {
		return false
	}
	if r, narrowed := retrogradeOrb[body]; narrowed && retrograde {
		orb = r
	}
	return utils.AngularDistance(lon, sunLon) < orb-orbEpsilon
}
