// Package intersect computes intersections between rays and planes or
// ellipsoids, and the grazing-altitude point of a ray that misses an ellipsoid.
package intersect

import (
	"github.com/golang/geo/r3"
)

// Ray is the half-line Origin + t·Direction for t ≥ 0. Direction need not be
// unit length; intersection parameters are expressed in its units.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// NewRay creates a ray from an origin and a direction.
func NewRay(origin, direction r3.Vector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Point returns Origin + t·Direction.
func (r Ray) Point(t float64) r3.Vector {
	return r.Origin.Add(r.Direction.Mul(t))
}
