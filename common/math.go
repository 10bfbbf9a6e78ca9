// Package common holds the simulation constants and small numeric helpers
// shared by the systems.
package common

// TPS is the fixed simulation rate. One tick runs the simulation step and the
// physics step once each.
const TPS = 60

// FixedDelta is the duration of one tick in seconds.
const FixedDelta = 1.0 / TPS

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
