package jyotish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/kundli-service/internal/models"
)

func TestVargaSign(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		division int
		want     models.Sign
	}{
		{"rasi", 157.4, 1, models.Virgo},
		{"hora odd sign first half", 5, 2, models.Leo},
		{"hora odd sign second half", 20, 2, models.Cancer},
		{"hora even sign first half", 35, 2, models.Cancer},
		{"drekkana third part", 25, 3, models.Sagittarius},
		{"chaturthamsa fixed sign", 31, 4, models.Leo},
		{"saptamsa even sign", 31, 7, models.Scorpio},
		{"navamsa movable sign", 1, 9, models.Aries},
		{"navamsa fixed sign", 31, 9, models.Capricorn},
		{"navamsa dual sign", 61, 9, models.Libra},
		{"navamsa last pada of aries", 29.9, 9, models.Sagittarius},
		{"dashamamsa even sign", 31, 10, models.Capricorn},
		{"dwadasamsa", 29.9, 12, models.Pisces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VargaSign(tt.lon, tt.division))
		})
	}
}

func TestVargaSignRejectsUnknownDivision(t *testing.T) {
	assert.Panics(t, func() { VargaSign(10, 5) })
}

func TestDivisional(t *testing.T) {
	planets := []models.Planet{
		{Position: models.Position{Body: models.Venus, Longitude: 356.1, Degree: 26.1, Sign: models.Pisces}, House: 7},
	}
	table := DignityTableFor(models.ProfileTraditional)

	d9, err := Divisional("D9", planets, 157.4, table)
	require.NoError(t, err)
	assert.Equal(t, "Navamsa", d9.Name)
	// 7°24′ Virgo is the third navamsa counted from Capricorn
	assert.Equal(t, "Pisces", d9.Ascendant)
	require.Len(t, d9.Planets, 1)
	assert.Equal(t, "Aquarius", d9.Planets[0].Sign)
	assert.Equal(t, 12, d9.Planets[0].House)
	assert.InDelta(t, 24.9, d9.Planets[0].Degree, 1e-9)
	assert.Equal(t, models.Friendly, d9.Planets[0].Dignity)

	d1, err := Divisional("D1", planets, 157.4, table)
	require.NoError(t, err)
	assert.Equal(t, 7, d1.Planets[0].House)

	_, err = Divisional("D60", planets, 157.4, table)
	var unknown *UnknownVargaError
	assert.ErrorAs(t, err, &unknown)
}

func TestVargaKeysAreOrdered(t *testing.T) {
	assert.Equal(t, []string{"D1", "D2", "D3", "D4", "D7", "D9", "D10", "D12"}, VargaKeys())
}

func TestDoshas(t *testing.T) {
	planet := func(b models.Body, lon float64, house int) models.Planet {
		pos := Normalize(models.RawSample{Body: b, Longitude: lon}, 0, meanNode{})
		return models.Planet{Position: pos, House: house}
	}
	planets := []models.Planet{
		planet(models.Sun, 10, 1), planet(models.Moon, 40, 2), planet(models.Mars, 70, 4),
		planet(models.Mercury, 20, 1), planet(models.Jupiter, 100, 4), planet(models.Venus, 50, 2),
		planet(models.Saturn, 150, 6), planet(models.Rahu, 5, 1), planet(models.Ketu, 185, 7),
	}

	doshas := Doshas(planets)
	require.Len(t, doshas, 3)
	assert.True(t, doshas[0].Present, "mars in the 4th")
	assert.True(t, doshas[1].Present, "all planets between rahu and ketu")
	assert.True(t, doshas[2].Present, "sun conjunct rahu by sign")

	planets[6] = planet(models.Saturn, 200, 7)
	planets[2] = planet(models.Mars, 70, 3)
	doshas = Doshas(planets)
	assert.False(t, doshas[0].Present)
	assert.False(t, doshas[1].Present)
}
