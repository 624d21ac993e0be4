package jyotish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/kundli-service/internal/models"
)

func TestNakshatraOf(t *testing.T) {
	tests := []struct {
		lon    float64
		number int
		name   string
		lord   models.Body
		pada   int
	}{
		{0, 1, "Ashwini", models.Ketu, 1},
		{3.34, 1, "Ashwini", models.Ketu, 2},
		{13.34, 2, "Bharani", models.Venus, 1},
		{30.88, 3, "Krittika", models.Sun, 2},
		{287.5, 22, "Shravana", models.Moon, 3},
		{359.99, 27, "Revati", models.Mercury, 4},
	}
	for _, tt := range tests {
		nk := NakshatraOf(tt.lon)
		assert.Equal(t, tt.number, nk.Number, tt.lon)
		assert.Equal(t, tt.name, nk.Name, tt.lon)
		assert.Equal(t, tt.lord, nk.Lord, tt.lon)
		assert.Equal(t, tt.pada, nk.Pada, tt.lon)
	}
}

func TestNakshatraRanges(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 0.11 {
		nk := NakshatraOf(lon)
		assert.GreaterOrEqual(t, nk.Number, 1)
		assert.LessOrEqual(t, nk.Number, 27)
		assert.GreaterOrEqual(t, nk.Pada, 1)
		assert.LessOrEqual(t, nk.Pada, 4)
		assert.Equal(t, dashaLords[(nk.Number-1)%9], nk.Lord)
	}
}

func TestElapsedFraction(t *testing.T) {
	assert.InDelta(t, 0.5625, ElapsedFraction(287.5), 1e-9)
	assert.InDelta(t, 0, ElapsedFraction(0), 1e-12)
}

func TestSubLordStartsWithNakshatraLord(t *testing.T) {
	// Krittika starts at 26°40′; the Sun's share is 6/120 of the span
	assert.Equal(t, models.Sun, SubLord(26.7))
	assert.Equal(t, models.Moon, SubLord(26.67+NakshatraSpan*6/120+0.01))
	assert.Equal(t, models.Mercury, SubLord(NakshatraSpan-0.01))
}
