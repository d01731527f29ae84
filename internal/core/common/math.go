package common

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds to two decimal places, matching the precision the
// rendering layer consumes.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Lerp maps t in [0,1] linearly onto [lo, hi].
func Lerp(t, lo, hi float64) float64 {
	return lo + Clamp(t, 0, 1)*(hi-lo)
}
