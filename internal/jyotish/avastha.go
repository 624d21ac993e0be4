package jyotish

import "github.com/Dan9191/kundli-service/internal/models"

var avasthaOrder = [5]models.AvasthaState{models.Bala, models.Kumara, models.Yuva, models.Vriddha, models.Mrita}

// Avastha classifies a planet by its degree in sign: five 6° bands running
// Bala→Mrita in odd signs and Mrita→Bala in even signs. degree must lie in
// [0, 30).
func Avastha(degree float64, sign models.Sign) models.AvasthaState {
	mustRange("sign", int(sign), 1, 12)
	band := mustRange("avastha band", bandIndex("degree in sign", degree, 30, 5), 0, 4)
	if !sign.Odd() {
		band = 4 - band
	}
	return avasthaOrder[band]
}
