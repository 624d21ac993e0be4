package models

import "time"

// RawSample is a tropical, geocentric ephemeris sample for one body
type RawSample struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
}

// HouseCusps holds the tropical ascendant and the twelve house cusps
type HouseCusps struct {
	Ascendant float64     `json:"ascendant"`
	Cusps     [12]float64 `json:"cusps"`
}

// RiseSet holds the sunrise and sunset instants for a civil date
type RiseSet struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// Snapshot is the set of provider samples taken at one instant
type Snapshot struct {
	Instant  time.Time          `json:"instant"`
	Ayanamsa float64            `json:"ayanamsa"`
	Samples  map[Body]RawSample `json:"samples"`
	Houses   *HouseCusps        `json:"houses,omitempty"`
}
