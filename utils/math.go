package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// FloatTolerance is the absolute tolerance used when comparing poses and angles.
const FloatTolerance = 1e-9

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapRadians maps an angle onto [0, 2π).
func WrapRadians(rad float64) float64 {
	wrapped := math.Mod(rad, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	// math.Mod of a tiny negative value can land exactly on 2π after the shift.
	if wrapped >= 2*math.Pi {
		wrapped = 0
	}
	return wrapped
}

// AngleDiffRad returns the smallest absolute difference between two angles, in [0, π].
func AngleDiffRad(a1, a2 float64) float64 {
	diff := WrapRadians(a1 - a2)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return scalar.EqualWithinAbs(a, b, epsilon)
}
