package jyotish

import "fmt"

// Defect is the panic payload raised when a derived value leaves its domain.
// It signals a bug in the engine, never bad user input.
type Defect struct {
	Kind   string
	Detail string
}

func (d Defect) Error() string {
	return fmt.Sprintf("jyotish defect: %s %s", d.Kind, d.Detail)
}

func mustRange(kind string, v, lo, hi int) int {
	if v < lo || v > hi {
		panic(Defect{Kind: kind, Detail: fmt.Sprintf("index %d outside %d..%d", v, lo, hi)})
	}
	return v
}
