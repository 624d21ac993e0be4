package models

// Body identifies a chart body
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mars    Body = "Mars"
	Mercury Body = "Mercury"
	Jupiter Body = "Jupiter"
	Venus   Body = "Venus"
	Saturn  Body = "Saturn"
	Rahu    Body = "Rahu"
	Ketu    Body = "Ketu"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
	Pluto   Body = "Pluto"
)

// ClassicalBodies are the nine grahas in weekday order followed by the nodes
var ClassicalBodies = [9]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// OuterBodies are only charted when explicitly requested
var OuterBodies = [3]Body{Uranus, Neptune, Pluto}

// IsNode reports whether b is one of the lunar nodes
func (b Body) IsNode() bool {
	return b == Rahu || b == Ketu
}

// IsOuter reports whether b is a trans-Saturnian planet
func (b Body) IsOuter() bool {
	return b == Uranus || b == Neptune || b == Pluto
}

// Abbreviation returns the two letter chart label
func (b Body) Abbreviation() string {
	switch b {
	case Sun:
		return "Su"
	case Moon:
		return "Mo"
	case Mars:
		return "Ma"
	case Mercury:
		return "Me"
	case Jupiter:
		return "Ju"
	case Venus:
		return "Ve"
	case Saturn:
		return "Sa"
	case Rahu:
		return "Ra"
	case Ketu:
		return "Ke"
	case Uranus:
		return "Ur"
	case Neptune:
		return "Ne"
	case Pluto:
		return "Pl"
	}
	return string(b)
}
