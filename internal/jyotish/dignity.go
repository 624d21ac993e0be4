package jyotish

import "github.com/Dan9191/kundli-service/internal/models"

// DignityTable is one convention of planetary dignities
type DignityTable interface {
	Profile() models.PropertyProfile
	Classify(body models.Body, sign models.Sign, degree float64) models.DignityStatus
}

// degreeRange is a half-open arc [From, To) inside a sign
type degreeRange struct {
	From, To float64
}

func (r degreeRange) contains(deg float64) bool {
	return deg >= r.From && deg < r.To
}

var wholeSign = degreeRange{0, 30}

// dignityRule is the fixed reference table of one body
type dignityRule struct {
	exaltation      models.Sign
	exaltationBand  degreeRange
	debilitation    models.Sign
	own             []models.Sign
	mooltrikona     models.Sign
	mooltrikonaBand degreeRange
	friends         []models.Body
	enemies         []models.Body
}

// ruleTable classifies with the shared precedence: exalted, debilitated,
// mooltrikona, own sign, then the relationship with the sign lord.
type ruleTable struct {
	profile models.PropertyProfile
	rules   map[models.Body]dignityRule
}

func (t ruleTable) Profile() models.PropertyProfile { return t.profile }

func (t ruleTable) Classify(body models.Body, sign models.Sign, degree float64) models.DignityStatus {
	mustRange("sign", int(sign), 1, 12)
	r, ok := t.rules[body]
	if !ok {
		return models.Neutral
	}
	switch {
	case sign == r.exaltation && r.exaltationBand.contains(degree):
		return models.Exalted
	case sign == r.debilitation:
		return models.Debilitated
	case sign == r.mooltrikona && r.mooltrikonaBand.contains(degree):
		return models.Mooltrikona
	case containsSign(r.own, sign):
		return models.OwnSign
	}
	lord := sign.Lord()
	switch {
	case containsBody(r.friends, lord):
		return models.Friendly
	case containsBody(r.enemies, lord):
		return models.Enemy
	}
	return models.Neutral
}

func containsSign(list []models.Sign, s models.Sign) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsBody(list []models.Body, b models.Body) bool {
	for _, v := range list {
		if v == b {
			return true
		}
	}
	return false
}

// Parashari tables. Deep exaltation bands only where the exaltation sign is
// shared with a mooltrikona or own sign range.
var traditionalTable = ruleTable{
	profile: models.ProfileTraditional,
	rules: map[models.Body]dignityRule{
		models.Sun: {
			exaltation: models.Aries, exaltationBand: wholeSign, debilitation: models.Libra,
			own:        []models.Sign{models.Leo}, mooltrikona: models.Leo, mooltrikonaBand: degreeRange{0, 20},
			friends:    []models.Body{models.Moon, models.Mars, models.Jupiter},
			enemies:    []models.Body{models.Venus, models.Saturn},
		},
		models.Moon: {
			exaltation: models.Taurus, exaltationBand: degreeRange{0, 3}, debilitation: models.Scorpio,
			own:        []models.Sign{models.Cancer}, mooltrikona: models.Taurus, mooltrikonaBand: degreeRange{3, 30},
			friends:    []models.Body{models.Sun, models.Mercury},
		},
		models.Mars: {
			exaltation: models.Capricorn, exaltationBand: wholeSign, debilitation: models.Cancer,
			own:        []models.Sign{models.Aries, models.Scorpio}, mooltrikona: models.Aries, mooltrikonaBand: degreeRange{0, 12},
			friends:    []models.Body{models.Sun, models.Moon, models.Jupiter},
			enemies:    []models.Body{models.Mercury},
		},
		models.Mercury: {
			exaltation: models.Virgo, exaltationBand: degreeRange{0, 15}, debilitation: models.Pisces,
			own:        []models.Sign{models.Gemini, models.Virgo}, mooltrikona: models.Virgo, mooltrikonaBand: degreeRange{15, 20},
			friends:    []models.Body{models.Sun, models.Venus},
			enemies:    []models.Body{models.Moon},
		},
		models.Jupiter: {
			exaltation: models.Cancer, exaltationBand: wholeSign, debilitation: models.Capricorn,
			own:        []models.Sign{models.Sagittarius, models.Pisces}, mooltrikona: models.Sagittarius, mooltrikonaBand: degreeRange{0, 10},
			friends:    []models.Body{models.Sun, models.Moon, models.Mars},
			enemies:    []models.Body{models.Mercury, models.Venus},
		},
		models.Venus: {
			exaltation: models.Pisces, exaltationBand: wholeSign, debilitation: models.Virgo,
			own:        []models.Sign{models.Taurus, models.Libra}, mooltrikona: models.Libra, mooltrikonaBand: degreeRange{0, 15},
			friends:    []models.Body{models.Mercury, models.Saturn},
			enemies:    []models.Body{models.Sun, models.Moon},
		},
		models.Saturn: {
			exaltation: models.Libra, exaltationBand: wholeSign, debilitation: models.Aries,
			own:        []models.Sign{models.Capricorn, models.Aquarius}, mooltrikona: models.Aquarius, mooltrikonaBand: degreeRange{0, 20},
			friends:    []models.Body{models.Mercury, models.Venus},
			enemies:    []models.Body{models.Sun, models.Moon, models.Mars},
		},
		models.Rahu: {
			exaltation: models.Taurus, exaltationBand: wholeSign, debilitation: models.Scorpio,
			own:        []models.Sign{models.Aquarius},
			friends:    []models.Body{models.Mercury, models.Venus, models.Saturn},
			enemies:    []models.Body{models.Sun, models.Moon, models.Mars},
		},
		models.Ketu: {
			exaltation: models.Scorpio, exaltationBand: wholeSign, debilitation: models.Taurus,
			own:        []models.Sign{models.Scorpio},
			friends:    []models.Body{models.Mars, models.Venus, models.Saturn},
			enemies:    []models.Body{models.Sun, models.Moon},
		},
	},
}

// Whole-sign convention of consumer apps: no degree bands, Mercury is hostile
// to Mars, and the nodes are exalted in Gemini/Sagittarius.
var astrotalkTable = ruleTable{
	profile: models.ProfileAstrotalk,
	rules: map[models.Body]dignityRule{
		models.Sun: {
			exaltation: models.Aries, exaltationBand: wholeSign, debilitation: models.Libra,
			own:        []models.Sign{models.Leo}, mooltrikona: models.Leo, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Moon, models.Mars, models.Jupiter},
			enemies:    []models.Body{models.Venus, models.Saturn},
		},
		models.Moon: {
			exaltation: models.Taurus, exaltationBand: wholeSign, debilitation: models.Scorpio,
			own:        []models.Sign{models.Cancer}, mooltrikona: models.Taurus, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Sun, models.Mercury},
		},
		models.Mars: {
			exaltation: models.Capricorn, exaltationBand: wholeSign, debilitation: models.Cancer,
			own:        []models.Sign{models.Aries, models.Scorpio}, mooltrikona: models.Aries, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Sun, models.Moon, models.Jupiter},
			enemies:    []models.Body{models.Mercury},
		},
		models.Mercury: {
			exaltation: models.Virgo, exaltationBand: wholeSign, debilitation: models.Pisces,
			own:        []models.Sign{models.Gemini, models.Virgo}, mooltrikona: models.Virgo, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Sun, models.Venus},
			enemies:    []models.Body{models.Moon, models.Mars},
		},
		models.Jupiter: {
			exaltation: models.Cancer, exaltationBand: wholeSign, debilitation: models.Capricorn,
			own:        []models.Sign{models.Sagittarius, models.Pisces}, mooltrikona: models.Sagittarius, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Sun, models.Moon, models.Mars},
			enemies:    []models.Body{models.Mercury, models.Venus},
		},
		models.Venus: {
			exaltation: models.Pisces, exaltationBand: wholeSign, debilitation: models.Virgo,
			own:        []models.Sign{models.Taurus, models.Libra}, mooltrikona: models.Libra, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Mercury, models.Saturn},
			enemies:    []models.Body{models.Sun, models.Moon},
		},
		models.Saturn: {
			exaltation: models.Libra, exaltationBand: wholeSign, debilitation: models.Aries,
			own:        []models.Sign{models.Capricorn, models.Aquarius}, mooltrikona: models.Aquarius, mooltrikonaBand: wholeSign,
			friends:    []models.Body{models.Mercury, models.Venus},
			enemies:    []models.Body{models.Sun, models.Moon, models.Mars},
		},
		models.Rahu: {
			exaltation: models.Gemini, exaltationBand: wholeSign, debilitation: models.Sagittarius,
			own:        []models.Sign{models.Virgo},
			friends:    []models.Body{models.Mercury, models.Venus, models.Saturn},
			enemies:    []models.Body{models.Sun, models.Moon, models.Mars},
		},
		models.Ketu: {
			exaltation: models.Sagittarius, exaltationBand: wholeSign, debilitation: models.Gemini,
			own:        []models.Sign{models.Pisces},
			friends:    []models.Body{models.Mars, models.Venus, models.Saturn},
			enemies:    []models.Body{models.Sun, models.Moon},
		},
	},
}

// DignityTableFor returns the rule table of a profile
func DignityTableFor(profile models.PropertyProfile) DignityTable {
	if profile == models.ProfileAstrotalk {
		return astrotalkTable
	}
	return traditionalTable
}
