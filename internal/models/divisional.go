package models

// DivisionalPlanet is a body placed in a varga chart
type DivisionalPlanet struct {
	Name         Body          `json:"name"`
	Sign         string        `json:"sign"`
	House        int           `json:"house"`
	Degree       float64       `json:"degree"`
	Dignity      DignityStatus `json:"dignity"`
	IsRetrograde bool          `json:"isRetrograde"`
	IsCombust    bool          `json:"isCombust"`
}

// DivisionalChart is a varga (harmonic) chart such as the D9 navamsa
type DivisionalChart struct {
	Key       string             `json:"key"`
	Name      string             `json:"name"`
	Focus     string             `json:"focus"`
	Ascendant string             `json:"ascendant"`
	Planets   []DivisionalPlanet `json:"planets"`
}

// Dosha is a presence flag for a classical affliction
type Dosha struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Present     bool   `json:"present"`
}
