package jyotish

import (
	"fmt"
	"math"

	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/utils"
)

// NodeModel is the lunar node variant selected by the node mode
type NodeModel interface {
	// ProviderBody is the body id requested from the ephemeris for Rahu
	ProviderBody() string
	// Retrograde decides the motion flag of a node from its instantaneous speed
	Retrograde(speed float64) bool
}

type meanNode struct{}

func (meanNode) ProviderBody() string    { return "mean_node" }
func (meanNode) Retrograde(float64) bool { return true }

type trueNode struct{}

func (trueNode) ProviderBody() string { return "true_node" }

// The oscillating node briefly moves direct; only then is it not retrograde.
func (trueNode) Retrograde(speed float64) bool { return speed <= 0 }

// NodeModelFor returns the node model of a mode
func NodeModelFor(mode models.NodeMode) NodeModel {
	if mode == models.TrueNode {
		return trueNode{}
	}
	return meanNode{}
}

// SignOf returns the sign containing a sidereal longitude
func SignOf(lon float64) models.Sign {
	return models.Sign(mustRange("sign", bandIndex("longitude", lon, 360, 12)+1, 1, 12))
}

// bandIndex splits [0, limit) into count equal bands and returns the
// zero-based band holding v. A value outside [0, limit) is a Defect.
func bandIndex(kind string, v, limit float64, count int) int {
	if math.IsNaN(v) || v < 0 || v >= limit {
		panic(Defect{Kind: kind, Detail: fmt.Sprintf("%g outside [0, %g)", v, limit)})
	}
	i := int(math.Floor(v / (limit / float64(count))))
	if i == count {
		// v just below limit can divide up to count
		i--
	}
	return i
}

// Normalize converts a raw tropical sample into a sidereal position.
// Ketu is derived by the caller from Rahu's sample, see KetuFromRahu.
func Normalize(raw models.RawSample, ayanamsa float64, nodes NodeModel) models.Position {
	lon := utils.Normalize360(raw.Longitude - ayanamsa)
	return models.Position{
		Body:         raw.Body,
		Longitude:    lon,
		Latitude:     raw.Latitude,
		Speed:        raw.Speed,
		Sign:         SignOf(lon),
		Degree:       utils.Mod(lon, 30),
		IsRetrograde: retrograde(raw.Body, raw.Speed, nodes),
	}
}

// KetuFromRahu mirrors Rahu's sample across the node axis
func KetuFromRahu(rahu models.RawSample) models.RawSample {
	return models.RawSample{
		Body:      models.Ketu,
		Longitude: utils.Normalize360(rahu.Longitude + 180),
		Latitude:  -rahu.Latitude,
		Distance:  rahu.Distance,
		Speed:     rahu.Speed,
	}
}

func retrograde(body models.Body, speed float64, nodes NodeModel) bool {
	switch {
	case body == models.Sun || body == models.Moon:
		return false
	case body.IsNode():
		return nodes.Retrograde(speed)
	}
	return speed < 0
}
