package jyotish

import (
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// Subjects are the candidate longitudes that can seed the vedic properties
type Subjects struct {
	Moon        float64
	Ascendant   float64
	SunriseMoon *float64 // nil when the day had no sunrise sample
}

// ReferenceSource picks the subject whose placement seeds the vedic properties
type ReferenceSource interface {
	Source() models.PropertySource
	Longitude(s Subjects) float64
}

type moonSource struct{}

func (moonSource) Source() models.PropertySource { return models.SourceMoon }
func (moonSource) Longitude(s Subjects) float64  { return s.Moon }

type ascendantSource struct{}

func (ascendantSource) Source() models.PropertySource { return models.SourceAscendant }
func (ascendantSource) Longitude(s Subjects) float64  { return s.Ascendant }

type sunriseMoonSource struct{}

func (sunriseMoonSource) Source() models.PropertySource { return models.SourceSunriseMoon }

// Falls back to the birth Moon when there was no sunrise that day.
func (sunriseMoonSource) Longitude(s Subjects) float64 {
	if s.SunriseMoon == nil {
		return s.Moon
	}
	return *s.SunriseMoon
}

// ReferenceSourceFor returns the reference source of a property source tag
func ReferenceSourceFor(src models.PropertySource) ReferenceSource {
	switch src {
	case models.SourceAscendant:
		return ascendantSource{}
	case models.SourceSunriseMoon:
		return sunriseMoonSource{}
	}
	return moonSource{}
}

var nakshatraGana = [27]string{
	"Deva", "Manushya", "Rakshasa", "Manushya", "Deva", "Manushya", "Deva", "Deva", "Rakshasa",
	"Rakshasa", "Manushya", "Manushya", "Deva", "Rakshasa", "Deva", "Rakshasa", "Deva", "Rakshasa",
	"Rakshasa", "Manushya", "Manushya", "Deva", "Rakshasa", "Rakshasa", "Manushya", "Manushya", "Deva",
}

var nakshatraYoni = [27]string{
	"Horse", "Elephant", "Sheep", "Serpent", "Serpent", "Dog", "Cat", "Sheep", "Cat",
	"Rat", "Rat", "Cow", "Buffalo", "Tiger", "Buffalo", "Tiger", "Deer", "Deer",
	"Dog", "Monkey", "Mongoose", "Monkey", "Lion", "Horse", "Lion", "Cow", "Elephant",
}

// Nadi repeats Adi, Madhya, Antya, Antya, Madhya, Adi along the zodiac.
var nadiCycle = [6]string{"Adi", "Madhya", "Antya", "Antya", "Madhya", "Adi"}

var nameSyllables = [27][4]string{
	{"Chu", "Che", "Cho", "La"}, {"Li", "Lu", "Le", "Lo"}, {"A", "I", "U", "E"},
	{"O", "Va", "Vi", "Vu"}, {"Ve", "Vo", "Ka", "Ki"}, {"Ku", "Gha", "Ng", "Chha"},
	{"Ke", "Ko", "Ha", "Hi"}, {"Hu", "He", "Ho", "Da"}, {"Di", "Du", "De", "Do"},
	{"Ma", "Mi", "Mu", "Me"}, {"Mo", "Ta", "Ti", "Tu"}, {"Te", "To", "Pa", "Pi"},
	{"Pu", "Sha", "Na", "Tha"}, {"Pe", "Po", "Ra", "Ri"}, {"Ru", "Re", "Ro", "Ta"},
	{"Ti", "Tu", "Te", "To"}, {"Na", "Ni", "Nu", "Ne"}, {"No", "Ya", "Yi", "Yu"},
	{"Ye", "Yo", "Bha", "Bhi"}, {"Bhu", "Dha", "Pha", "Dha"}, {"Bhe", "Bho", "Ja", "Ji"},
	{"Khi", "Khu", "Khe", "Kho"}, {"Ga", "Gi", "Gu", "Ge"}, {"Go", "Sa", "Si", "Su"},
	{"Se", "So", "Da", "Di"}, {"Du", "Tha", "Jha", "Na"}, {"De", "Do", "Cha", "Chi"},
}

var signVarna = [12]string{
	"Kshatriya", "Vaishya", "Shudra", "Brahmin", "Kshatriya", "Vaishya",
	"Shudra", "Brahmin", "Kshatriya", "Vaishya", "Shudra", "Brahmin",
}

var signTatva = [4]string{"Fire", "Earth", "Air", "Water"}

var signPaya = [12]string{
	"Gold", "Silver", "Copper", "Iron", "Copper", "Gold",
	"Silver", "Iron", "Silver", "Copper", "Gold", "Iron",
}

// vashya splits Sagittarius and Capricorn at 15°.
func vashya(sign models.Sign, degree float64) string {
	switch sign {
	case models.Aries, models.Taurus:
		return "Chatushpada"
	case models.Gemini, models.Virgo, models.Libra, models.Aquarius:
		return "Manava"
	case models.Cancer, models.Pisces:
		return "Jalachara"
	case models.Leo:
		return "Vanachara"
	case models.Scorpio:
		return "Keeta"
	case models.Sagittarius:
		if degree < 15 {
			return "Manava"
		}
		return "Chatushpada"
	case models.Capricorn:
		if degree < 15 {
			return "Chatushpada"
		}
		return "Jalachara"
	}
	panic(Defect{Kind: "sign", Detail: sign.String()})
}

// VedicProperties classifies the subject chosen by src
func VedicProperties(src ReferenceSource, s Subjects) models.VedicProperties {
	lon := utils.Normalize360(src.Longitude(s))
	sign := SignOf(lon)
	degree := utils.Mod(lon, 30)
	nk := NakshatraOf(lon)
	return models.VedicProperties{
		Source:       src.Source(),
		Sign:         sign.String(),
		Nakshatra:    nk.Name,
		Pada:         nk.Pada,
		Varna:        signVarna[sign-1],
		Vashya:       vashya(sign, degree),
		Yoni:         nakshatraYoni[nk.Number-1],
		Gana:         nakshatraGana[nk.Number-1],
		Nadi:         nadiCycle[(nk.Number-1)%6],
		NameAlphabet: nameSyllables[nk.Number-1][nk.Pada-1],
		Tatva:        signTatva[(sign-1)%4],
		Paya:         signPaya[sign-1],
	}
}
