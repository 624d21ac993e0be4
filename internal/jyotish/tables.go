package jyotish

import "github.com/Dan9191/kundli-service/internal/models"

// Static reference tables. They are arrays so every lookup hands out a copy.

const (
	// NakshatraSpan is the arc of one lunar mansion, 13°20′
	NakshatraSpan = 360.0 / 27
	// PadaSpan is a quarter of a nakshatra, 3°20′
	PadaSpan = NakshatraSpan / 4
	// TithiSpan is the Sun-Moon elongation covered by one lunar day
	TithiSpan = 12.0
	// KaranaSpan is half a tithi
	KaranaSpan = TithiSpan / 2
	// DashaCycleYears is the length of the full Vimshottari cycle
	DashaCycleYears = 120
)

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// dashaLords is the Vimshottari order; it also assigns nakshatra lords
// cyclically starting from Ashwini.
var dashaLords = [9]models.Body{
	models.Ketu, models.Venus, models.Sun, models.Moon, models.Mars,
	models.Rahu, models.Jupiter, models.Saturn, models.Mercury,
}

var dashaYears = [9]int{7, 20, 6, 10, 7, 18, 16, 19, 17}

var tithiNames = [30]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami", "Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami", "Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Amavasya",
}

var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda", "Sukarma", "Dhriti", "Shoola",
	"Ganda", "Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyan",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra", "Vaidhriti",
}

var movableKaranas = [7]string{"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti"}

var varaNames = [7]string{
	"Ravivara", "Somavara", "Mangalavara", "Budhavara", "Guruvara", "Shukravara", "Shanivara",
}

// NakshatraName returns the name of nakshatra n (1..27)
func NakshatraName(n int) string {
	mustRange("nakshatra", n, 1, 27)
	return nakshatraNames[n-1]
}

// NakshatraLord returns the Vimshottari lord of nakshatra n (1..27)
func NakshatraLord(n int) models.Body {
	mustRange("nakshatra", n, 1, 27)
	return dashaLords[(n-1)%9]
}

// DashaYears returns the full Mahadasha length of a lord in years
func DashaYears(lord models.Body) int {
	return dashaYears[lordIndex(lord)]
}

// DashaSequence returns the nine lords in Vimshottari order starting at lord
func DashaSequence(lord models.Body) [9]models.Body {
	var seq [9]models.Body
	start := lordIndex(lord)
	for i := range seq {
		seq[i] = dashaLords[(start+i)%9]
	}
	return seq
}

func lordIndex(lord models.Body) int {
	for i, l := range dashaLords {
		if l == lord {
			return i
		}
	}
	panic(Defect{Kind: "dasha lord", Detail: string(lord)})
}

// KaranaName maps a half-tithi index (0..59) through the fixed karana cycle
func KaranaName(k int) string {
	mustRange("karana", k, 0, 59)
	switch k {
	case 0:
		return "Kimstughna"
	case 57:
		return "Shakuni"
	case 58:
		return "Chatushpada"
	case 59:
		return "Naga"
	}
	return movableKaranas[(k-1)%7]
}
