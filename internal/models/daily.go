package models

import "time"

// DailyPanchang is the panchang computed by the daily job for a fixed place
type DailyPanchang struct {
	Date        string      `json:"date"`
	Timezone    string      `json:"timezone"`
	Location    Location    `json:"location"`
	Panchang    PanchangDay `json:"panchang"`
	GeneratedAt time.Time   `json:"generatedAt"`
}
