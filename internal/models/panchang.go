package models

import "time"

// PanchangAnchor tells which instant the panchang was evaluated at
type PanchangAnchor string

const (
	AnchorSunrise PanchangAnchor = "sunrise"
	AnchorBirth   PanchangAnchor = "birth"
	// AnchorNoon is local noon, used by the daily panchang on days without sunrise
	AnchorNoon PanchangAnchor = "noon"
)

// PanchangDay holds the lunar-day attributes at sunrise
type PanchangDay struct {
	Date            string         `json:"date"`
	Tithi           string         `json:"tithi"`
	TithiNumber     int            `json:"tithiNumber"`
	Paksha          string         `json:"paksha"`
	Yoga            string         `json:"yoga"`
	YogaNumber      int            `json:"yogaNumber"`
	Karana          string         `json:"karana"`
	KaranaIndex     int            `json:"karanaIndex"`
	Nakshatra       string         `json:"nakshatra"`
	NakshatraNumber int            `json:"nakshatraNumber"`
	MoonPhase       string         `json:"moonPhase"`
	Vara            string         `json:"vara"`
	Sunrise         string         `json:"sunrise,omitempty"`
	Sunset          string         `json:"sunset,omitempty"`
	Anchor          PanchangAnchor `json:"anchor"`
	AnchorInstant   time.Time      `json:"anchorInstant"`
}
