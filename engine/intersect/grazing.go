package intersect

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/solver"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// QuadraticVectorExpression solves xᵀ·A·x + bᵀ·x + c = 0 for points of the
// form (x, w·cosθ, w·sinθ). A is indexed A.At(row, col).
//
// Parameters:
//   - A: the quadric matrix
//   - b: the linear term
//   - c: the constant term
//   - x: the fixed first coordinate
//   - w: the radius of the circle traced by the other two coordinates
//
// Returns:
//   - []r3.Vector: every solution point, possibly none
func QuadraticVectorExpression(A mgl64.Mat3, b r3.Vector, c, x, w float64) []r3.Vector {
	xSquared := x * x
	wSquared := w * w

	l2 := (A.At(1, 1) - A.At(2, 2)) * wSquared
	l1 := w * (x*common.AddWithCancellationCheck(A.At(0, 1), A.At(1, 0), common.Epsilon15) + b.Y)
	l0 := A.At(0, 0)*xSquared + A.At(2, 2)*wSquared + x*b.X + c

	r1 := wSquared * common.AddWithCancellationCheck(A.At(1, 2), A.At(2, 1), common.Epsilon15)
	r0 := w * (x*common.AddWithCancellationCheck(A.At(0, 2), A.At(2, 0), 0) + b.Z)

	var solutions []r3.Vector

	if r0 == 0 && r1 == 0 {
		for _, cosine := range solver.QuadraticRoots(l2, l1, l0) {
			sine := math.Sqrt(math.Max(1-cosine*cosine, 0))
			solutions = append(solutions,
				r3.Vector{X: x, Y: w * cosine, Z: w * -sine},
				r3.Vector{X: x, Y: w * cosine, Z: w * sine},
			)
		}
		return solutions
	}

	r0Squared := r0 * r0
	r1Squared := r1 * r1
	l2Squared := l2 * l2
	r0r1 := r0 * r1

	c4 := l2Squared + r1Squared
	c3 := 2 * (l1*l2 + r0r1)
	c2 := 2*l0*l2 + l1*l1 - r1Squared + r0Squared
	c1 := 2 * (l0*l1 - r0r1)
	c0 := l0*l0 - r0Squared

	if c4 == 0 && c3 == 0 && c2 == 0 && c1 == 0 {
		return nil
	}

	cosines := solver.QuarticRoots(c4, c3, c2, c1, c0)
	for i := 0; i < len(cosines); i++ {
		cosine := cosines[i]
		cosineSquared := cosine * cosine
		sine := math.Sqrt(math.Max(1-cosineSquared, 0))

		var left float64
		switch {
		case common.Sign(l2) == common.Sign(l0):
			left = common.AddWithCancellationCheck(l2*cosineSquared+l0, l1*cosine, common.Epsilon12)
		case common.Sign(l0) == common.Sign(l1*cosine):
			left = common.AddWithCancellationCheck(l2*cosineSquared, l1*cosine+l0, common.Epsilon12)
		default:
			left = common.AddWithCancellationCheck(l2*cosineSquared+l1*cosine, l0, common.Epsilon12)
		}

		right := common.AddWithCancellationCheck(r1*cosine, r0, common.Epsilon15)
		product := left * right

		switch {
		case product < 0:
			solutions = append(solutions, r3.Vector{X: x, Y: w * cosine, Z: w * sine})
		case product > 0:
			solutions = append(solutions, r3.Vector{X: x, Y: w * cosine, Z: w * -sine})
		case sine != 0:
			solutions = append(solutions,
				r3.Vector{X: x, Y: w * cosine, Z: w * -sine},
				r3.Vector{X: x, Y: w * cosine, Z: w * sine},
			)
			// a zero product yields both signs; the repeated root is consumed here
			i++
		default:
			solutions = append(solutions, r3.Vector{X: x, Y: w * cosine, Z: w * sine})
		}
	}
	return solutions
}

// GrazingAltitudeLocation returns the point on ell nearest to ray in altitude.
// When the ray already points away from the surface its origin is returned.
// The returned point carries the grazing altitude as its height: positive if
// the ray misses the ellipsoid and negative if it passes through it.
//
// Parameters:
//   - ray: the ray to test
//   - ell: the ellipsoid
//
// Returns:
//   - r3.Vector: the grazing point
//   - bool: false when the origin is the ellipsoid center or no solution exists
func GrazingAltitudeLocation(ray Ray, ell *ellipsoid.Ellipsoid) (r3.Vector, bool) {
	position := ray.Origin
	direction := ray.Direction

	if position == (r3.Vector{}) {
		return r3.Vector{}, false
	}

	normal := ell.GeodeticSurfaceNormal(position)
	if direction.Dot(normal) >= 0 {
		return position, true
	}

	_, intersects := RayEllipsoid(ray, ell)

	// basis built from the unit scaled direction
	firstAxis := ell.TransformPositionToScaledSpace(direction).Normalize()
	reference := common.MostOrthogonalAxis(firstAxis)
	secondAxis := reference.Cross(firstAxis).Normalize()
	thirdAxis := firstAxis.Cross(secondAxis).Normalize()

	B := mgl64.Mat3FromCols(common.ToVec3(firstAxis), common.ToVec3(secondAxis), common.ToVec3(thirdAxis))
	BT := B.Transpose()

	radii := ell.Radii()
	inverseRadii := ell.OneOverRadii()
	DI := mgl64.Diag3(common.ToVec3(radii))
	D := mgl64.Diag3(common.ToVec3(inverseRadii))

	C := mgl64.Mat3FromCols(
		mgl64.Vec3{0, -direction.Z, direction.Y},
		mgl64.Vec3{direction.Z, 0, -direction.X},
		mgl64.Vec3{-direction.Y, direction.X, 0},
	)

	temp := BT.Mul3(D).Mul3(C)
	A := temp.Mul3(DI).Mul3(B)
	b := common.FromVec3(temp.Mul3x1(common.ToVec3(position)))

	solutions := QuadraticVectorExpression(A, b.Mul(-1), 0, 0, 1)
	if len(solutions) == 0 {
		return r3.Vector{}, false
	}

	var closest r3.Vector
	maximumValue := math.Inf(-1)
	for _, sol := range solutions {
		s := common.FromVec3(DI.Mul3x1(B.Mul3x1(common.ToVec3(sol))))
		v := s.Sub(position).Normalize()
		if d := v.Dot(direction); d > maximumValue {
			maximumValue = d
			closest = s
		}
	}

	surfacePoint, ok := ell.CartesianToCartographic(closest)
	if !ok {
		return r3.Vector{}, false
	}

	maximumValue = common.Clamp(maximumValue, 0, 1)
	altitude := closest.Sub(position).Norm() * math.Sqrt(1-maximumValue*maximumValue)
	if intersects {
		altitude = -altitude
	}
	surfacePoint.Height = altitude
	return ell.CartographicToCartesian(surfacePoint), true
}
