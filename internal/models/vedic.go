package models

// VedicProperties are the birth-star attributes used for matching
type VedicProperties struct {
	Source       PropertySource `json:"source"`
	Sign         string         `json:"sign"`
	Nakshatra    string         `json:"nakshatra"`
	Pada         int            `json:"pada"`
	Varna        string         `json:"varna"`
	Vashya       string         `json:"vashya"`
	Yoni         string         `json:"yoni"`
	Gana         string         `json:"gan"`
	Nadi         string         `json:"nadi"`
	NameAlphabet string         `json:"nameAlphabet"`
	Tatva        string         `json:"tatva"`
	Paya         string         `json:"paya"`
}
