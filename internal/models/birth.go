package models

import (
	"fmt"
	"strings"
	"time"
)

// HouseSystem selects how bodies are assigned to houses
type HouseSystem string

const (
	WholeSign HouseSystem = "W"
	Placidus  HouseSystem = "P"
)

// NodeMode selects the lunar node model
type NodeMode string

const (
	MeanNode NodeMode = "mean"
	TrueNode NodeMode = "true"
)

// PropertyProfile selects the dignity rule table
type PropertyProfile string

const (
	ProfileTraditional PropertyProfile = "traditional"
	ProfileAstrotalk   PropertyProfile = "astrotalk"
)

// PropertySource selects the subject seeding the vedic properties
type PropertySource string

const (
	SourceMoon        PropertySource = "moon"
	SourceAscendant   PropertySource = "ascendant"
	SourceSunriseMoon PropertySource = "sunriseMoon"
)

// ConfigError reports an unrecognized enumeration value
type ConfigError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: allowed values are %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// ChartRequest is the birth details payload accepted by the API
type ChartRequest struct {
	DateOfBirth         string   `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	TimeOfBirth         string   `json:"timeOfBirth" validate:"required,clock"`
	Latitude            *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude           *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Timezone            string   `json:"timezone" validate:"required,timezone"`
	HouseSystem         string   `json:"houseSystem,omitempty"`
	NodeMode            string   `json:"nodeMode,omitempty"`
	PropertyProfile     string   `json:"propertyProfile,omitempty"`
	PropertySource      string   `json:"propertySource,omitempty"`
	IncludeOuterPlanets bool     `json:"includeOuterPlanets,omitempty"`
	AsOf                string   `json:"asOf,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Debug               bool     `json:"debug,omitempty"`
}

// Location is a geographic position in degrees, east and north positive
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BirthInput is the parsed, immutable form of a ChartRequest
type BirthInput struct {
	Date                string
	Time                string
	Instant             time.Time
	Zone                *time.Location
	Location            Location
	HouseSystem         HouseSystem
	NodeMode            NodeMode
	PropertyProfile     PropertyProfile
	PropertySource      PropertySource
	IncludeOuterPlanets bool
	Debug               bool
}

// LocalDate returns the civil birth date at the birth location at midnight
func (b BirthInput) LocalDate() time.Time {
	local := b.Instant.In(b.Zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, b.Zone)
}

// Bodies lists the bodies charted for this input
func (b BirthInput) Bodies() []Body {
	bodies := append([]Body{}, ClassicalBodies[:]...)
	if b.IncludeOuterPlanets {
		bodies = append(bodies, OuterBodies[:]...)
	}
	return bodies
}

// ParseHouseSystem resolves a house system tag; empty selects whole sign
func ParseHouseSystem(v string) (HouseSystem, error) {
	switch HouseSystem(v) {
	case "", WholeSign:
		return WholeSign, nil
	case Placidus:
		return Placidus, nil
	}
	return "", &ConfigError{Field: "houseSystem", Value: v, Allowed: []string{string(WholeSign), string(Placidus)}}
}

// ParseNodeMode resolves a node mode tag; empty selects the mean node
func ParseNodeMode(v string) (NodeMode, error) {
	switch NodeMode(v) {
	case "", MeanNode:
		return MeanNode, nil
	case TrueNode:
		return TrueNode, nil
	}
	return "", &ConfigError{Field: "nodeMode", Value: v, Allowed: []string{string(MeanNode), string(TrueNode)}}
}

// ParsePropertyProfile resolves a dignity profile tag; empty selects traditional
func ParsePropertyProfile(v string) (PropertyProfile, error) {
	switch PropertyProfile(v) {
	case "", ProfileTraditional:
		return ProfileTraditional, nil
	case ProfileAstrotalk:
		return ProfileAstrotalk, nil
	}
	return "", &ConfigError{Field: "propertyProfile", Value: v, Allowed: []string{string(ProfileTraditional), string(ProfileAstrotalk)}}
}

// ParsePropertySource resolves a property source tag; empty selects the moon
func ParsePropertySource(v string) (PropertySource, error) {
	switch PropertySource(v) {
	case "", SourceMoon:
		return SourceMoon, nil
	case SourceAscendant:
		return SourceAscendant, nil
	case SourceSunriseMoon:
		return SourceSunriseMoon, nil
	}
	return "", &ConfigError{Field: "propertySource", Value: v, Allowed: []string{string(SourceMoon), string(SourceAscendant), string(SourceSunriseMoon)}}
}
