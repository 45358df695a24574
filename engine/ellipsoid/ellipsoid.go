// Package ellipsoid models a triaxial ellipsoid and converts between
// Cartesian and geodetic coordinates on it.
package ellipsoid

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/golang/geo/r3"
)

// MaxIterations bounds the Newton iteration in ScaleToGeodeticSurface.
const MaxIterations = 100

var (
	// ErrNearCenter is returned when a point is too close to the ellipsoid
	// center for a stable radial projection.
	ErrNearCenter = errors.New("point is too close to the ellipsoid center")

	// ErrNoConvergence is returned when Newton iteration exceeds MaxIterations.
	ErrNoConvergence = errors.New("surface projection failed to converge")

	// ErrInvalidRadii is returned when a radius is negative or not finite.
	ErrInvalidRadii = errors.New("ellipsoid radii must be finite and non-negative")
)

// Ellipsoid is a quadric (x/a)² + (y/b)² + (z/c)² = 1 in Cartesian space.
// It is immutable except through Reinitialize.
type Ellipsoid struct {
	radii                  r3.Vector
	radiiSquared           r3.Vector
	radiiToTheFourth       r3.Vector
	oneOverRadii           r3.Vector
	oneOverRadiiSquared    r3.Vector
	minimumRadius          float64
	maximumRadius          float64
	centerToleranceSquared float64
}

var (
	// WGS84 is the World Geodetic System 1984 ellipsoid.
	WGS84 = MustNewEllipsoid(6378137.0, 6378137.0, 6356752.3142451793)

	// UnitSphere is the sphere of radius one.
	UnitSphere = MustNewEllipsoid(1, 1, 1)
)

// NewEllipsoid creates an ellipsoid with the given semi-axes.
// A zero radius is allowed; its reciprocal terms are 0 rather than infinity.
//
// Parameters:
//   - x, y, z: the radii along each axis
//
// Returns:
//   - *Ellipsoid: the new ellipsoid
//   - error: ErrInvalidRadii when a radius is negative, NaN or infinite
func NewEllipsoid(x, y, z float64) (*Ellipsoid, error) {
	e := &Ellipsoid{}
	if err := e.Reinitialize(x, y, z); err != nil {
		return nil, err
	}
	return e, nil
}

// MustNewEllipsoid is like NewEllipsoid but panics on invalid radii.
func MustNewEllipsoid(x, y, z float64) *Ellipsoid {
	e, err := NewEllipsoid(x, y, z)
	if err != nil {
		panic(err)
	}
	return e
}

// Reinitialize replaces the radii and recomputes every derived term.
//
// Parameters:
//   - x, y, z: the radii along each axis
//
// Returns:
//   - error: ErrInvalidRadii when a radius is negative, NaN or infinite
func (e *Ellipsoid) Reinitialize(x, y, z float64) error {
	for _, r := range [3]float64{x, y, z} {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: (%g, %g, %g)", ErrInvalidRadii, x, y, z)
		}
	}

	e.radii = r3.Vector{X: x, Y: y, Z: z}
	e.radiiSquared = r3.Vector{X: x * x, Y: y * y, Z: z * z}
	e.radiiToTheFourth = common.MulComponents(e.radiiSquared, e.radiiSquared)
	e.oneOverRadii = r3.Vector{X: reciprocal(x), Y: reciprocal(y), Z: reciprocal(z)}
	e.oneOverRadiiSquared = r3.Vector{X: reciprocal(x * x), Y: reciprocal(y * y), Z: reciprocal(z * z)}
	e.minimumRadius = math.Min(x, math.Min(y, z))
	e.maximumRadius = math.Max(x, math.Max(y, z))
	e.centerToleranceSquared = common.Epsilon1
	return nil
}

func reciprocal(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// Clone returns an independent copy of the ellipsoid.
func (e *Ellipsoid) Clone() *Ellipsoid {
	c := *e
	return &c
}

func (e *Ellipsoid) Radii() r3.Vector               { return e.radii }
func (e *Ellipsoid) RadiiSquared() r3.Vector        { return e.radiiSquared }
func (e *Ellipsoid) RadiiToTheFourth() r3.Vector    { return e.radiiToTheFourth }
func (e *Ellipsoid) OneOverRadii() r3.Vector        { return e.oneOverRadii }
func (e *Ellipsoid) OneOverRadiiSquared() r3.Vector { return e.oneOverRadiiSquared }
func (e *Ellipsoid) MinimumRadius() float64         { return e.minimumRadius }
func (e *Ellipsoid) MaximumRadius() float64         { return e.maximumRadius }

// Equals reports whether both ellipsoids have identical radii.
func (e *Ellipsoid) Equals(o *Ellipsoid) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.radii == o.radii
}

// GeodeticSurfaceNormal returns the outward unit normal of the ellipsoid
// surface through cartesian. Points within EPSILON14 of the origin have no
// defined normal and yield the zero vector.
//
// Parameters:
//   - cartesian: a point, usually on the surface
//
// Returns:
//   - r3.Vector: the unit normal, or the zero vector at the origin
func (e *Ellipsoid) GeodeticSurfaceNormal(cartesian r3.Vector) r3.Vector {
	if common.VectorEqualsEpsilon(cartesian, r3.Vector{}, common.Epsilon14) {
		return r3.Vector{}
	}
	return common.MulComponents(cartesian, e.oneOverRadiiSquared).Normalize()
}

// GeodeticSurfaceNormalCartographic returns the surface normal at a geodetic position.
func (e *Ellipsoid) GeodeticSurfaceNormalCartographic(c Cartographic) r3.Vector {
	cosLat := math.Cos(c.Latitude)
	return r3.Vector{
		X: cosLat * math.Cos(c.Longitude),
		Y: cosLat * math.Sin(c.Longitude),
		Z: math.Sin(c.Latitude),
	}.Normalize()
}

// GeocentricSurfaceNormal returns the normalized direction from the center to cartesian.
func (e *Ellipsoid) GeocentricSurfaceNormal(cartesian r3.Vector) r3.Vector {
	return cartesian.Normalize()
}

// CartographicToCartesian converts a geodetic position to Cartesian coordinates.
//
// Parameters:
//   - c: the geodetic position
//
// Returns:
//   - r3.Vector: the Cartesian position
func (e *Ellipsoid) CartographicToCartesian(c Cartographic) r3.Vector {
	n := e.GeodeticSurfaceNormalCartographic(c)
	k := common.MulComponents(e.radiiSquared, n)
	gamma := math.Sqrt(n.Dot(k))
	k = k.Mul(1 / gamma)
	return k.Add(n.Mul(c.Height))
}

// CartographicArrayToCartesianArray converts each position with CartographicToCartesian.
func (e *Ellipsoid) CartographicArrayToCartesianArray(cs []Cartographic) []r3.Vector {
	out := make([]r3.Vector, len(cs))
	for i, c := range cs {
		out[i] = e.CartographicToCartesian(c)
	}
	return out
}

// CartesianToCartographic converts a Cartesian position to geodetic
// coordinates. The height is signed: negative below the surface.
//
// Parameters:
//   - cartesian: the Cartesian position
//
// Returns:
//   - Cartographic: the geodetic position
//   - bool: false when the point is too close to the center to project
func (e *Ellipsoid) CartesianToCartographic(cartesian r3.Vector) (Cartographic, bool) {
	p, ok := e.ScaleToGeodeticSurface(cartesian)
	if !ok {
		return Cartographic{}, false
	}

	n := e.GeodeticSurfaceNormal(p)
	h := cartesian.Sub(p)

	return Cartographic{
		Longitude: math.Atan2(n.Y, n.X),
		Latitude:  math.Asin(n.Z),
		Height:    common.Sign(h.Dot(cartesian)) * h.Norm(),
	}, true
}

// CartesianArrayToCartographicArray converts each position with
// CartesianToCartographic. Positions that cannot be projected are skipped.
func (e *Ellipsoid) CartesianArrayToCartographicArray(cs []r3.Vector) []Cartographic {
	out := make([]Cartographic, 0, len(cs))
	for _, c := range cs {
		if carto, ok := e.CartesianToCartographic(c); ok {
			out = append(out, carto)
		}
	}
	return out
}

// ScaleToGeodeticSurface projects cartesian onto the surface along the
// geodetic normal.
//
// Returns:
//   - r3.Vector: the surface point
//   - bool: false when the point is near the center or iteration did not converge
func (e *Ellipsoid) ScaleToGeodeticSurface(cartesian r3.Vector) (r3.Vector, bool) {
	p, err := e.ScaleToGeodeticSurfaceE(cartesian)
	return p, err == nil
}

// ScaleToGeodeticSurfaceE is ScaleToGeodeticSurface with the failure reason.
// It solves f(λ) = Σ (xᵢ·mᵢ)² - 1 with mᵢ = 1/(1 + λ/rᵢ²) by Newton's method.
//
// Parameters:
//   - cartesian: the point to project
//
// Returns:
//   - r3.Vector: the surface point
//   - error: ErrNearCenter or ErrNoConvergence
func (e *Ellipsoid) ScaleToGeodeticSurfaceE(cartesian r3.Vector) (r3.Vector, error) {
	scaled := common.MulComponents(cartesian, e.oneOverRadii)
	x2 := scaled.X * scaled.X
	y2 := scaled.Y * scaled.Y
	z2 := scaled.Z * scaled.Z

	squaredNorm := x2 + y2 + z2
	if squaredNorm < e.centerToleranceSquared {
		return r3.Vector{}, ErrNearCenter
	}

	ratio := math.Sqrt(1 / squaredNorm)
	intersection := cartesian.Mul(ratio)

	gradient := common.MulComponents(intersection, e.oneOverRadiiSquared).Mul(2)
	lambda := (1 - ratio) * cartesian.Norm() / (0.5 * gradient.Norm())

	inv := e.oneOverRadiiSquared
	var xm, ym, zm float64
	correction := 0.0
	for i := 0; ; i++ {
		if i == MaxIterations {
			return r3.Vector{}, fmt.Errorf("%w after %d iterations", ErrNoConvergence, MaxIterations)
		}
		lambda -= correction

		xm = 1 / (1 + lambda*inv.X)
		ym = 1 / (1 + lambda*inv.Y)
		zm = 1 / (1 + lambda*inv.Z)

		xm2, ym2, zm2 := xm*xm, ym*ym, zm*zm
		xm3, ym3, zm3 := xm2*xm, ym2*ym, zm2*zm

		f := x2*xm2 + y2*ym2 + z2*zm2 - 1
		if math.Abs(f) <= common.Epsilon12 {
			break
		}

		denominator := x2*xm3*inv.X + y2*ym3*inv.Y + z2*zm3*inv.Z
		derivative := -2 * denominator
		correction = f / derivative
	}

	return r3.Vector{X: cartesian.X * xm, Y: cartesian.Y * ym, Z: cartesian.Z * zm}, nil
}

// ScaleToGeocentricSurface projects cartesian onto the surface along the
// line through the center.
func (e *Ellipsoid) ScaleToGeocentricSurface(cartesian r3.Vector) r3.Vector {
	s := common.MulComponents(cartesian, e.oneOverRadii)
	return cartesian.Mul(1 / math.Sqrt(s.Norm2()))
}

// TransformPositionToScaledSpace maps a position into the space where the
// ellipsoid is the unit sphere.
func (e *Ellipsoid) TransformPositionToScaledSpace(position r3.Vector) r3.Vector {
	return common.MulComponents(position, e.oneOverRadii)
}

// TransformPositionFromScaledSpace is the inverse of TransformPositionToScaledSpace.
func (e *Ellipsoid) TransformPositionFromScaledSpace(position r3.Vector) r3.Vector {
	return common.MulComponents(position, e.radii)
}
