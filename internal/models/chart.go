package models

import "time"

// BasicDetails echoes the birth data the chart was computed for
type BasicDetails struct {
	BirthDate     string          `json:"birthDate"`
	BirthTime     string          `json:"birthTime"`
	Instant       time.Time       `json:"instant"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Timezone      string          `json:"timezone"`
	Ayanamsa      string          `json:"ayanamsa"`
	AyanamsaValue float64         `json:"ayanamsaValue"`
	SunSign       string          `json:"sunSign"`
	MoonSign      string          `json:"moonSign"`
	HouseSystem   HouseSystem     `json:"houseSystem"`
	NodeMode      NodeMode        `json:"nodeMode"`
	Profile       PropertyProfile `json:"propertyProfile"`
}

// Diagnostics are only attached when debug output is requested
type Diagnostics struct {
	BirthSnapshot   Snapshot    `json:"birthSnapshot"`
	SunriseSnapshot *Snapshot   `json:"sunriseSnapshot,omitempty"`
	SiderealCusps   [12]float64 `json:"siderealCusps"`
}

// Chart is the aggregate natal chart. It is a plain value and can be handed to
// other consumers (for example a renderer) without recomputation.
type Chart struct {
	BasicDetails    BasicDetails               `json:"basicDetails"`
	Ascendant       Ascendant                  `json:"ascendant"`
	Planets         []Planet                   `json:"planets"`
	Houses          []House                    `json:"houses"`
	Panchang        PanchangDay                `json:"panchang"`
	Dasha           Dasha                      `json:"dasha"`
	VedicProperties VedicProperties            `json:"vedicProperties"`
	Divisional      map[string]DivisionalChart `json:"divisionalCharts"`
	Doshas          []Dosha                    `json:"doshas"`
	Debug           *Diagnostics               `json:"debug,omitempty"`
}

// Planet returns the chart row for b
func (c *Chart) Planet(b Body) (Planet, bool) {
	for _, p := range c.Planets {
		if p.Body == b {
			return p, true
		}
	}
	return Planet{}, false
}
