package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// MulComponents returns the component-wise product of a and b.
func MulComponents(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// VectorEqualsEpsilon reports whether every component of a and b is equal
// within the given absolute tolerance.
//
// Parameters:
//   - a, b: vectors to compare
//   - epsilon: absolute per-component tolerance
//
// Returns:
//   - bool: true when all components are within tolerance
func VectorEqualsEpsilon(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon &&
		math.Abs(a.Y-b.Y) <= epsilon &&
		math.Abs(a.Z-b.Z) <= epsilon
}

// MostOrthogonalAxis returns the unit axis least aligned with v.
func MostOrthogonalAxis(v r3.Vector) r3.Vector {
	a := v.Normalize().Abs()
	if a.X <= a.Y {
		if a.X <= a.Z {
			return r3.Vector{X: 1}
		}
		return r3.Vector{Z: 1}
	}
	if a.Y <= a.Z {
		return r3.Vector{Y: 1}
	}
	return r3.Vector{Z: 1}
}

// ToVec3 converts an r3.Vector into an mgl64.Vec3.
func ToVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromVec3 converts an mgl64.Vec3 into an r3.Vector.
func FromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
