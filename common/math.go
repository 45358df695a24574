package common

import (
	"math"
)

// Tolerances used across the numeric packages. EPSILONn is 10^-n.
const (
	Epsilon1  = 0.1
	Epsilon2  = 0.01
	Epsilon3  = 0.001
	Epsilon4  = 0.0001
	Epsilon5  = 0.00001
	Epsilon6  = 0.000001
	Epsilon7  = 0.0000001
	Epsilon8  = 0.00000001
	Epsilon9  = 0.000000001
	Epsilon10 = 0.0000000001
	Epsilon11 = 0.00000000001
	Epsilon12 = 0.000000000001
	Epsilon13 = 0.0000000000001
	Epsilon14 = 0.00000000000001
	Epsilon15 = 0.000000000000001
	Epsilon16 = 0.0000000000000001
	Epsilon17 = 0.00000000000000001
	Epsilon18 = 0.000000000000000001
	Epsilon19 = 0.0000000000000000001
	Epsilon20 = 0.00000000000000000001
	Epsilon21 = 0.000000000000000000001
)

// Angle constants in radians.
const (
	PiOverTwo   = math.Pi / 2
	PiOverThree = math.Pi / 3
	PiOverSix   = math.Pi / 6
	TwoPi       = 2 * math.Pi
)

// Sign returns -1, 0 or 1 depending on the sign of v.
//
// Parameters:
//   - v: the value to inspect
//
// Returns:
//   - float64: -1 when negative, 1 when positive, 0 otherwise
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: the clamped value
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AcosClamped is math.Acos with its argument clamped to [-1, 1] so rounding
// noise on a dot product never produces NaN.
func AcosClamped(v float64) float64 {
	return math.Acos(Clamp(v, -1, 1))
}

// AsinClamped is math.Asin with its argument clamped to [-1, 1].
func AsinClamped(v float64) float64 {
	return math.Asin(Clamp(v, -1, 1))
}

// ZeroToTwoPi maps an angle into [0, 2π].
func ZeroToTwoPi(angle float64) float64 {
	if angle >= 0 && angle <= TwoPi {
		return angle
	}
	mod := math.Mod(angle, TwoPi)
	if mod < 0 {
		mod += TwoPi
	}
	if math.Abs(mod) < Epsilon14 && math.Abs(angle) > Epsilon14 {
		return TwoPi
	}
	return mod
}

// EqualsEpsilon reports whether a and b are equal within either an absolute or
// a relative tolerance.
//
// Parameters:
//   - a, b: the values to compare
//   - relative: relative tolerance scaled by the larger magnitude
//   - absolute: absolute tolerance
//
// Returns:
//   - bool: true if the values are considered equal
func EqualsEpsilon(a, b, relative, absolute float64) bool {
	diff := math.Abs(a - b)
	return diff <= absolute || diff <= relative*math.Max(math.Abs(a), math.Abs(b))
}

// AddWithCancellationCheck returns left+right, or exactly zero when the two
// terms have opposite signs and cancel to within tolerance of their magnitude.
//
// Parameters:
//   - left, right: the terms to sum
//   - tolerance: relative magnitude below which the sum is treated as zero
//
// Returns:
//   - float64: the guarded sum
func AddWithCancellationCheck(left, right, tolerance float64) float64 {
	difference := left + right
	if Sign(left) != Sign(right) && math.Abs(difference/math.Max(math.Abs(left), math.Abs(right))) < tolerance {
		return 0
	}
	return difference
}

// Decay returns the inertia attenuation after time seconds for the given
// coefficient in (0, 1): exp(-(1-coefficient)·25·time). The time multiplies
// the rate rather than dividing it, so the result is 1 at time zero and
// strictly decreasing after that. Negative times return 0.
//
// Parameters:
//   - time: seconds since the gesture was released
//   - coefficient: inertia coefficient; larger values decay more slowly
//
// Returns:
//   - float64: attenuation factor in [0, 1]
func Decay(time, coefficient float64) float64 {
	if time < 0 {
		return 0
	}
	tau := (1 - coefficient) * 25
	return math.Exp(-tau * time)
}
