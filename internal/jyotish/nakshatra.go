package jyotish

import (
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// NakshatraOf derives the lunar mansion, pada and lord of a sidereal longitude
func NakshatraOf(lon float64) models.Nakshatra {
	lon = utils.Normalize360(lon)
	n := mustRange("nakshatra", bandIndex("longitude", lon, 360, 27)+1, 1, 27)
	offset := utils.Mod(lon, NakshatraSpan)
	pada := mustRange("pada", bandIndex("nakshatra offset", offset, NakshatraSpan, 4)+1, 1, 4)
	return models.Nakshatra{
		Number: n,
		Name:   nakshatraNames[n-1],
		Lord:   NakshatraLord(n),
		Pada:   pada,
		Offset: offset,
	}
}

// ElapsedFraction is how far through its nakshatra a longitude lies, in [0, 1)
func ElapsedFraction(lon float64) float64 {
	return utils.Mod(utils.Normalize360(lon), NakshatraSpan) / NakshatraSpan
}

// SubLord returns the KP sub-lord: the nakshatra arc is split among the nine
// lords in proportion to their dasha years, starting at the nakshatra lord.
func SubLord(lon float64) models.Body {
	nk := NakshatraOf(lon)
	seq := DashaSequence(nk.Lord)
	acc := 0.0
	for _, lord := range seq {
		acc += NakshatraSpan * float64(DashaYears(lord)) / DashaCycleYears
		if nk.Offset < acc {
			return lord
		}
	}
	return seq[8]
}
