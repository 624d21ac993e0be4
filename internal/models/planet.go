package models

// AvasthaState is the Baladi life stage of a planet
type AvasthaState string

const (
	Bala    AvasthaState = "Bala"
	Kumara  AvasthaState = "Kumara"
	Yuva    AvasthaState = "Yuva"
	Vriddha AvasthaState = "Vriddha"
	Mrita   AvasthaState = "Mrita"
)

// DignityStatus classifies a planet's strength in its sign
type DignityStatus string

const (
	Exalted     DignityStatus = "Exalted"
	Debilitated DignityStatus = "Debilitated"
	Mooltrikona DignityStatus = "Mooltrikona"
	OwnSign     DignityStatus = "Own Sign"
	Friendly    DignityStatus = "Friendly"
	Enemy       DignityStatus = "Enemy"
	Neutral     DignityStatus = "Neutral"
)

// Nakshatra is a lunar mansion placement
type Nakshatra struct {
	Number int     `json:"number"`
	Name   string  `json:"name"`
	Lord   Body    `json:"lord"`
	Pada   int     `json:"pada"`
	Offset float64 `json:"offset"` // degrees travelled inside the nakshatra
}

// Position is a normalized sidereal body position
type Position struct {
	Body         Body    `json:"name"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	Speed        float64 `json:"speed"`
	Sign         Sign    `json:"-"`
	Degree       float64 `json:"degree"`
	IsRetrograde bool    `json:"isRetrograde"`
}

// Planet is one row of the chart: position plus every derived attribute
type Planet struct {
	Position
	DegreeDMS       string        `json:"degreeDMS"`
	LongitudeDMS    string        `json:"longitudeDMS"`
	SignName        string        `json:"sign"`
	SignNumber      int           `json:"signNumber"`
	SignLord        Body          `json:"signLord"`
	Nakshatra       string        `json:"nakshatra"`
	NakshatraNumber int           `json:"nakshatraNumber"`
	NakshatraLord   Body          `json:"nakshatraLord"`
	NakshatraPada   int           `json:"nakshatraPada"`
	SubLord         Body          `json:"subLord"`
	House           int           `json:"house"`
	IsCombust       bool          `json:"isCombust"`
	Avastha         AvasthaState  `json:"avastha"`
	Dignity         DignityStatus `json:"dignity"`
}

// Ascendant is the rising point of the chart
type Ascendant struct {
	Sign          string  `json:"sign"`
	SignNumber    int     `json:"signNumber"`
	SignLord      Body    `json:"signLord"`
	Degree        float64 `json:"degree"` // sidereal longitude
	DegreeDMS     string  `json:"degreeDMS"`
	Nakshatra     string  `json:"nakshatra"`
	NakshatraLord Body    `json:"nakshatraLord"`
	NakshatraPada int     `json:"nakshatraPada"`
}

// House is one bhava of the chart
type House struct {
	Number   int         `json:"number"`
	System   HouseSystem `json:"system"`
	Cusp     float64     `json:"degree"`
	Sign     string      `json:"sign"`
	SignLord Body        `json:"signLord"`
	Planets  []Body      `json:"planets"`
}
