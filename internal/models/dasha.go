package models

import "time"

// DashaLevel is the nesting depth of a dasha period
type DashaLevel string

const (
	Mahadasha  DashaLevel = "mahadasha"
	Antardasha DashaLevel = "antardasha"
	Pratyantar DashaLevel = "pratyantar"
)

// DashaPeriod is one planetary period of the Vimshottari timeline.
// Duration is the part of the period lived after birth; FullDuration is the
// nominal length of the period in the cycle.
type DashaPeriod struct {
	Lord         Body          `json:"planet"`
	Level        DashaLevel    `json:"level"`
	Start        time.Time     `json:"startDate"`
	End          time.Time     `json:"endDate"`
	Duration     time.Duration `json:"duration"`
	FullDuration time.Duration `json:"fullDuration"`
	Elapsed      bool          `json:"elapsed,omitempty"`
	Children     []DashaPeriod `json:"children,omitempty"`
}

// Contains reports whether t falls in [Start, End)
func (p DashaPeriod) Contains(t time.Time) bool {
	return p.Duration > 0 && !t.Before(p.Start) && t.Before(p.End)
}

// CurrentDasha is the chain of periods running at a query instant
type CurrentDasha struct {
	AsOf       time.Time    `json:"asOf"`
	Mahadasha  *DashaPeriod `json:"mahadasha,omitempty"`
	Antardasha *DashaPeriod `json:"antardasha,omitempty"`
	Pratyantar *DashaPeriod `json:"pratyantar,omitempty"`
}

// Dasha is the full Vimshottari timeline from birth
type Dasha struct {
	System          string        `json:"system"`
	StartLord       Body          `json:"startLord"`
	ElapsedFraction float64       `json:"elapsedFraction"`
	CycleStart      time.Time     `json:"cycleStart"`
	Balance         time.Duration `json:"balance"`
	Current         CurrentDasha  `json:"current"`
	Mahadashas      []DashaPeriod `json:"mahadashas"`
}
