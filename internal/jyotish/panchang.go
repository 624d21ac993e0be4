package jyotish

import (
	"time"

	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// Lunar day attributes from sidereal Sun and Moon longitudes
type lunarDay struct {
	tithi  int
	yoga   int
	karana int
}

func lunarDayOf(sun, moon float64) lunarDay {
	elongation := utils.Normalize360(moon - sun)
	return lunarDay{
		tithi:  mustRange("tithi", bandIndex("elongation", elongation, 360, 30)+1, 1, 30),
		yoga:   mustRange("yoga", bandIndex("yoga longitude", utils.Normalize360(moon+sun), 360, 27)+1, 1, 27),
		karana: mustRange("karana", bandIndex("elongation", elongation, 360, 60), 0, 59),
	}
}

// PanchangInput carries what the panchang needs from the anchor sample
type PanchangInput struct {
	Sun, Moon float64 // sidereal longitudes at the anchor instant
	Anchor    models.PanchangAnchor
	Instant   time.Time
	Zone      *time.Location
	RiseSet   *models.RiseSet
}

// Panchang derives tithi, yoga and karana plus their calendar context
func Panchang(in PanchangInput) models.PanchangDay {
	day := lunarDayOf(in.Sun, in.Moon)
	local := in.Instant.In(in.Zone)
	nk := NakshatraOf(in.Moon)

	paksha := "Shukla"
	if day.tithi > 15 {
		paksha = "Krishna"
	}
	phase := "Waxing"
	switch {
	case day.tithi == 15:
		phase = "Full Moon"
	case day.tithi == 30:
		phase = "New Moon"
	case day.tithi > 15:
		phase = "Waning"
	}

	p := models.PanchangDay{
		Date:            local.Format("2006-01-02"),
		Tithi:           tithiNames[day.tithi-1],
		TithiNumber:     day.tithi,
		Paksha:          paksha,
		Yoga:            yogaNames[day.yoga-1],
		YogaNumber:      day.yoga,
		Karana:          KaranaName(day.karana),
		KaranaIndex:     day.karana,
		Nakshatra:       nk.Name,
		NakshatraNumber: nk.Number,
		MoonPhase:       phase,
		Vara:            varaNames[local.Weekday()],
		Anchor:          in.Anchor,
		AnchorInstant:   in.Instant,
	}
	if in.RiseSet != nil {
		p.Sunrise = in.RiseSet.Sunrise.In(in.Zone).Format("15:04")
		p.Sunset = in.RiseSet.Sunset.In(in.Zone).Format("15:04")
	}
	return p
}
