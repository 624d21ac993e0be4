package utils

import (
	"fmt"
	"math"
)

// Mod returns x modulo m in [0, m)
func Mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// math.Mod of a tiny negative value can round up to m itself
	if r >= m {
		r -= m
	}
	return r
}

// Normalize360 maps an ecliptic longitude into [0, 360)
func Normalize360(deg float64) float64 {
	return Mod(deg, 360)
}

// AngularDistance returns the shortest arc between two longitudes, in [0, 180]
func AngularDistance(a, b float64) float64 {
	d := math.Abs(Normalize360(a) - Normalize360(b))
	return math.Min(d, 360-d)
}

// ToDMS formats decimal degrees as degrees, arcminutes and arcseconds
func ToDMS(x float64) string {
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	d := int(x)
	m := int((x - float64(d)) * 60)
	s := int(math.Round(((x-float64(d))*60 - float64(m)) * 60))
	if s == 60 {
		s = 0
		m++
	}
	if m == 60 {
		m = 0
		d++
	}
	return fmt.Sprintf("%s%d°%d′%d″", sign, d, m, s)
}
