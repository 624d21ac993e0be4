package models

import "fmt"

// Sign is a sidereal zodiac sign numbered 1 (Aries) through 12 (Pisces)
type Sign int

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLords = [12]Body{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

const (
	Aries Sign = iota + 1
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// Valid reports whether s lies in 1..12
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s-1]
}

// Lord returns the planet ruling the sign
func (s Sign) Lord() Body {
	if !s.Valid() {
		return ""
	}
	return signLords[s-1]
}

// Odd reports whether the sign is odd (masculine): Aries, Gemini, Leo...
func (s Sign) Odd() bool {
	return int(s)%2 == 1
}

// Add moves n signs forward, wrapping around the zodiac
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)-1+n)%12+12)%12 + 1)
}

// ParseSign resolves a sign name
func ParseSign(name string) (Sign, bool) {
	for i, n := range signNames {
		if n == name {
			return Sign(i + 1), true
		}
	}
	return 0, false
}
