package jyotish

import "github.com/Dan9191/kundli-service/internal/models"

var mangalHouses = map[int]bool{1: true, 4: true, 7: true, 8: true, 12: true}

var sevenPlanets = [7]models.Body{
	models.Sun, models.Moon, models.Mars, models.Mercury, models.Jupiter, models.Venus, models.Saturn,
}

// Doshas reports the presence of the Mangal, Kaal Sarp and Pitra doshas.
// planets must carry their house numbers.
func Doshas(planets []models.Planet) []models.Dosha {
	find := func(b models.Body) *models.Planet {
		for i := range planets {
			if planets[i].Body == b {
				return &planets[i]
			}
		}
		return nil
	}
	mars, sun := find(models.Mars), find(models.Sun)
	rahu, ketu := find(models.Rahu), find(models.Ketu)

	kaalSarp := false
	if rahu != nil && ketu != nil {
		inside, outside := 0, 0
		for _, b := range sevenPlanets {
			p := find(b)
			if p == nil {
				continue
			}
			if inArc(p.Longitude, rahu.Longitude, ketu.Longitude) {
				inside++
			} else {
				outside++
			}
		}
		kaalSarp = inside+outside > 0 && (inside == 0 || outside == 0)
	}

	pitra := sun != nil &&
		((rahu != nil && rahu.Sign == sun.Sign) || (ketu != nil && ketu.Sign == sun.Sign))

	return []models.Dosha{
		{
			Name:        "Mangal Dosha",
			Description: "Mars in the 1st, 4th, 7th, 8th or 12th house",
			Present:     mars != nil && mangalHouses[mars.House],
		},
		{
			Name:        "Kaal Sarp Dosha",
			Description: "All seven planets on one side of the Rahu-Ketu axis",
			Present:     kaalSarp,
		},
		{
			Name:        "Pitra Dosha",
			Description: "Sun sharing a sign with Rahu or Ketu",
			Present:     pitra,
		},
	}
}
