package core

import "math"

// Epsilon is the tolerance used by every near-zero comparison in intersection code
const Epsilon = 1e-10

// IsZero reports whether x is numerically zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// AlignZero snaps values within Epsilon of zero to exactly zero
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}

// SameSign reports whether both values are non-zero with matching signs
func SameSign(a, b float64) bool {
	return a*b > 0
}
