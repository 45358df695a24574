package intersect

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// RayPlane returns the point where ray meets plane.
//
// Parameters:
//   - ray: the ray to test
//   - plane: the plane in Hessian normal form
//
// Returns:
//   - r3.Vector: the intersection point
//   - bool: false if the ray is parallel to the plane or the plane is behind the origin
func RayPlane(ray Ray, plane common.Plane) (r3.Vector, bool) {
	denominator := plane.Normal.Dot(ray.Direction)
	if math.Abs(denominator) < common.Epsilon15 {
		return r3.Vector{}, false
	}

	t := (-plane.Distance - plane.Normal.Dot(ray.Origin)) / denominator
	if t < 0 {
		return r3.Vector{}, false
	}
	return ray.Point(t), true
}

// RayEllipsoid returns the ray parameters where ray enters and leaves ell.
// A ray starting inside or on the ellipsoid reports a start of 0. A ray
// starting outside and pointing away never intersects.
//
// Parameters:
//   - ray: the ray to test
//   - ell: the ellipsoid
//
// Returns:
//   - r1.Interval: [enter, exit] in ray parameter units
//   - bool: false when there is no intersection
func RayEllipsoid(ray Ray, ell *ellipsoid.Ellipsoid) (r1.Interval, bool) {
	inverseRadii := ell.OneOverRadii()
	q := common.MulComponents(inverseRadii, ray.Origin)
	w := common.MulComponents(inverseRadii, ray.Direction)

	q2 := q.Norm2()
	qw := q.Dot(w)

	switch {
	case q2 > 1:
		// outside
		if qw >= 0 {
			return r1.Interval{}, false
		}

		qw2 := qw * qw
		difference := q2 - 1
		w2 := w.Norm2()
		product := w2 * difference

		if qw2 < product {
			return r1.Interval{}, false
		}
		if qw2 > product {
			discriminant := qw*qw - product
			temp := -qw + math.Sqrt(discriminant)
			root0 := temp / w2
			root1 := difference / temp
			if root0 < root1 {
				return r1.Interval{Lo: root0, Hi: root1}, true
			}
			return r1.Interval{Lo: root1, Hi: root0}, true
		}

		root := math.Sqrt(difference / w2)
		return r1.Interval{Lo: root, Hi: root}, true

	case q2 < 1:
		// inside
		difference := q2 - 1
		w2 := w.Norm2()
		product := w2 * difference
		discriminant := qw*qw - product
		temp := -qw + math.Sqrt(discriminant)
		return r1.Interval{Lo: 0, Hi: temp / w2}, true
	}

	// on the surface; the far root of t·(2qw + t·w²) = 0
	if qw < 0 {
		return r1.Interval{Lo: 0, Hi: -2 * qw / w.Norm2()}, true
	}
	return r1.Interval{}, false
}

// RayEllipsoidPoint returns the first point where ray hits ell.
func RayEllipsoidPoint(ray Ray, ell *ellipsoid.Ellipsoid) (r3.Vector, bool) {
	interval, ok := RayEllipsoid(ray, ell)
	if !ok {
		return r3.Vector{}, false
	}
	return ray.Point(interval.Lo), true
}
