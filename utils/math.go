package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Square returns n*n. Math.pow( x, 2 ) is slow, this is faster.
func Square(n float64) float64 {
	return n * n
}

// Sign returns 1 for positive numbers, -1 for negative numbers and 0 otherwise.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// ModAngRad wraps an angle in radians into [0, 2pi).
func ModAngRad(ang float64) float64 {
	wrapped := math.Mod(ang, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	// math.Mod of a tiny negative number plus 2pi rounds back up to 2pi
	if wrapped >= 2*math.Pi {
		wrapped = 0
	}
	return wrapped
}

// AngleDiffRad returns the signed difference a1-a2 wrapped into [-pi, pi).
func AngleDiffRad(a1, a2 float64) float64 {
	return ModAngRad(a1-a2+math.Pi) - math.Pi
}
