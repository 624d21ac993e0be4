package jyotish

import (
	"fmt"
	"sort"

	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

type vargaMeta struct {
	division int
	name     string
	focus    string
}

var vargas = map[string]vargaMeta{
	"D1":  {1, "Rasi", "General life"},
	"D2":  {2, "Hora", "Wealth"},
	"D3":  {3, "Drekkana", "Siblings/Co-borns"},
	"D4":  {4, "Chaturthamsa", "Home/Property"},
	"D7":  {7, "Saptamsa", "Children/Progeny"},
	"D9":  {9, "Navamsa", "Marriage/Dharma"},
	"D10": {10, "Dashamamsa", "Career/Profession"},
	"D12": {12, "Dwadasamsa", "Parents/Ancestry"},
}

// VargaKeys lists the supported divisional charts in ascending order
func VargaKeys() []string {
	keys := make([]string, 0, len(vargas))
	for k := range vargas {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return vargas[keys[i]].division < vargas[keys[j]].division })
	return keys
}

// IsVarga reports whether key names a supported divisional chart
func IsVarga(key string) bool {
	_, ok := vargas[key]
	return ok
}

// UnknownVargaError is returned for a divisional chart key that is not supported
type UnknownVargaError struct {
	Key string
}

func (e *UnknownVargaError) Error() string {
	return fmt.Sprintf("unknown divisional chart %q: supported charts are %v", e.Key, VargaKeys())
}

// VargaSign maps a sidereal longitude into the sign it occupies in the
// divisional chart of the given division.
func VargaSign(lon float64, division int) models.Sign {
	sign := SignOf(lon)
	deg := utils.Mod(lon, 30)
	if division < 1 {
		panic(Defect{Kind: "division", Detail: fmt.Sprintf("%d", division)})
	}
	part := bandIndex("degree in sign", deg, 30, division)
	// modality: 0 movable, 1 fixed, 2 dual
	modality := (int(sign) - 1) % 3

	switch division {
	case 1:
		return sign
	case 2:
		// Sun's hora (Leo) first in odd signs, Moon's hora (Cancer) first in even signs
		if sign.Odd() == (part == 0) {
			return models.Leo
		}
		return models.Cancer
	case 3:
		return sign.Add(part * 4)
	case 4:
		return sign.Add([3]int{0, 3, 6}[modality] + part)
	case 7:
		if sign.Odd() {
			return sign.Add(part)
		}
		return sign.Add(6 + part)
	case 9:
		return sign.Add([3]int{0, 8, 4}[modality] + part)
	case 10:
		if sign.Odd() {
			return sign.Add(part)
		}
		return sign.Add(8 + part)
	case 12:
		return sign.Add(part)
	}
	panic(Defect{Kind: "varga", Detail: fmt.Sprintf("division %d", division)})
}

// Divisional builds one varga chart. Houses count from the divisional
// ascendant, except in D1 where the natal houses are kept.
func Divisional(key string, planets []models.Planet, ascendant float64, table DignityTable) (models.DivisionalChart, error) {
	meta, ok := vargas[key]
	if !ok {
		return models.DivisionalChart{}, &UnknownVargaError{Key: key}
	}
	asc := VargaSign(ascendant, meta.division)
	chart := models.DivisionalChart{
		Key:       key,
		Name:      meta.name,
		Focus:     meta.focus,
		Ascendant: asc.String(),
		Planets:   make([]models.DivisionalPlanet, 0, len(planets)),
	}
	for _, p := range planets {
		sign := VargaSign(p.Longitude, meta.division)
		degree := utils.Mod(p.Degree*float64(meta.division), 30)
		house := p.House
		if meta.division != 1 {
			house = (int(sign)-int(asc)+12)%12 + 1
		}
		chart.Planets = append(chart.Planets, models.DivisionalPlanet{
			Name:         p.Body,
			Sign:         sign.String(),
			House:        house,
			Degree:       degree,
			Dignity:      table.Classify(p.Body, sign, degree),
			IsRetrograde: p.IsRetrograde,
			IsCombust:    p.IsCombust,
		})
	}
	return chart, nil
}

// DivisionalCharts builds every supported varga chart
func DivisionalCharts(planets []models.Planet, ascendant float64, table DignityTable) map[string]models.DivisionalChart {
	charts := make(map[string]models.DivisionalChart, len(vargas))
	for key := range vargas {
		c, _ := Divisional(key, planets, ascendant, table)
		charts[key] = c
	}
	return charts
}
