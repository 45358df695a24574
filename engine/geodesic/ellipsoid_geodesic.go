// Package geodesic solves the inverse geodesic problem on an ellipsoid with
// Vincenty's formulae and interpolates positions along the resulting path.
package geodesic

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/golang/geo/r3"
)

// MaxIterations bounds the λ iteration of the inverse formula.
const MaxIterations = 200

var (
	// ErrMissingEndPoint is returned when SetEndPoints is given a nil endpoint.
	ErrMissingEndPoint = errors.New("geodesic requires both a start and an end point")

	// ErrAntipodal is returned for endpoints too close to antipodal for the inverse formula.
	ErrAntipodal = errors.New("geodesic endpoints are nearly antipodal")

	// ErrNoConvergence is returned when the λ iteration exceeds MaxIterations.
	ErrNoConvergence = errors.New("geodesic failed to converge")

	// ErrNotInitialized is returned when interpolating before SetEndPoints succeeded.
	ErrNotInitialized = errors.New("geodesic end points have not been set")
)

// seriesConstants are precomputed once per endpoint pair and reused by every
// interpolation along the geodesic.
type seriesConstants struct {
	a, b, f              float64
	cosineHeading        float64
	sineHeading          float64
	tanU, cosineU, sineU float64
	sigma                float64
	sineAlpha            float64
	sineSquaredAlpha     float64
	cosineSquaredAlpha   float64
	cosineAlpha          float64
	u2Over4, u4Over16    float64
	u6Over64, u8Over256  float64
	a0, a1, a2, a3       float64
	distanceRatio        float64
}

// EllipsoidGeodesic is the shortest path between two points on an ellipsoid.
// The zero value is not usable; create one with NewEllipsoidGeodesic.
type EllipsoidGeodesic struct {
	ellipsoid *ellipsoid.Ellipsoid

	start    ellipsoid.Cartographic
	end      ellipsoid.Cartographic
	distance float64

	startHeading float64
	endHeading   float64
	uSquared     float64

	constants seriesConstants
	ready     bool
}

// NewEllipsoidGeodesic creates a geodesic on the given ellipsoid. A nil
// ellipsoid selects WGS84.
//
// Parameters:
//   - ell: the ellipsoid the geodesic lies on
//
// Returns:
//   - *EllipsoidGeodesic: a geodesic without end points
func NewEllipsoidGeodesic(ell *ellipsoid.Ellipsoid) *EllipsoidGeodesic {
	if ell == nil {
		ell = ellipsoid.WGS84
	}
	return &EllipsoidGeodesic{ellipsoid: ell.Clone()}
}

// NewEllipsoidGeodesicBetween creates a geodesic and sets its end points.
func NewEllipsoidGeodesicBetween(start, end ellipsoid.Cartographic, ell *ellipsoid.Ellipsoid) (*EllipsoidGeodesic, error) {
	g := NewEllipsoidGeodesic(ell)
	if err := g.SetEndPoints(&start, &end); err != nil {
		return nil, err
	}
	return g, nil
}

// Ellipsoid returns the ellipsoid the geodesic lies on.
func (g *EllipsoidGeodesic) Ellipsoid() *ellipsoid.Ellipsoid { return g.ellipsoid }

// Start returns the start point with its height forced to zero.
func (g *EllipsoidGeodesic) Start() ellipsoid.Cartographic { return g.start }

// End returns the end point with its height forced to zero.
func (g *EllipsoidGeodesic) End() ellipsoid.Cartographic { return g.end }

// SurfaceDistance returns the geodesic length along the surface.
func (g *EllipsoidGeodesic) SurfaceDistance() float64 { return g.distance }

// StartHeading returns the heading at the start point in radians, clockwise from north.
func (g *EllipsoidGeodesic) StartHeading() float64 { return g.startHeading }

// EndHeading returns the heading at the end point in radians, clockwise from north.
func (g *EllipsoidGeodesic) EndHeading() float64 { return g.endHeading }

// USquared returns the u² term of the Vincenty series for this geodesic.
func (g *EllipsoidGeodesic) USquared() float64 { return g.uSquared }

// SetEndPoints solves the inverse problem between start and end and
// precomputes the interpolation series. Heights are ignored.
//
// Parameters:
//   - start: the first point
//   - end: the second point
//
// Returns:
//   - error: ErrMissingEndPoint, ErrAntipodal or ErrNoConvergence
func (g *EllipsoidGeodesic) SetEndPoints(start, end *ellipsoid.Cartographic) error {
	if start == nil || end == nil {
		return ErrMissingEndPoint
	}

	first := g.ellipsoid.CartographicToCartesian(*start).Normalize()
	last := g.ellipsoid.CartographicToCartesian(*end).Normalize()
	if math.Abs(math.Abs(first.Angle(last).Radians())-math.Pi) < 0.0125 {
		return fmt.Errorf("%w: %v and %v", ErrAntipodal, *start, *end)
	}

	if err := g.vincentyInverse(start.Longitude, start.Latitude, end.Longitude, end.Latitude); err != nil {
		g.ready = false
		return err
	}

	g.start = *start
	g.end = *end
	g.start.Height = 0
	g.end.Height = 0
	g.setConstants()
	g.ready = true
	return nil
}

// vincentyInverse iterates λ until it changes by no more than EPSILON12 and
// stores distance, headings and u².
func (g *EllipsoidGeodesic) vincentyInverse(firstLongitude, firstLatitude, secondLongitude, secondLatitude float64) error {
	major := g.ellipsoid.MaximumRadius()
	minor := g.ellipsoid.MinimumRadius()
	eff := (major - minor) / major
	l := secondLongitude - firstLongitude

	u1 := math.Atan((1 - eff) * math.Tan(firstLatitude))
	u2 := math.Atan((1 - eff) * math.Tan(secondLatitude))

	cosineU1, sineU1 := math.Cos(u1), math.Sin(u1)
	cosineU2, sineU2 := math.Cos(u2), math.Sin(u2)

	cc := cosineU1 * cosineU2
	cs := cosineU1 * sineU2
	ss := sineU1 * sineU2
	sc := sineU1 * cosineU2

	lambda := l
	var cosineLambda, sineLambda float64
	var sigma, cosineSigma, sineSigma, cosineSquaredAlpha, cosineTwiceSigmaMidpoint float64

	converged := false
	for i := 0; i < MaxIterations; i++ {
		cosineLambda = math.Cos(lambda)
		sineLambda = math.Sin(lambda)

		temp := cs - sc*cosineLambda
		sineSigma = math.Sqrt(cosineU2*cosineU2*sineLambda*sineLambda + temp*temp)
		cosineSigma = ss + cc*cosineLambda
		sigma = math.Atan2(sineSigma, cosineSigma)

		var sineAlpha float64
		if sineSigma == 0 {
			sineAlpha = 0
			cosineSquaredAlpha = 1
		} else {
			sineAlpha = cc * sineLambda / sineSigma
			cosineSquaredAlpha = 1 - sineAlpha*sineAlpha
		}

		lambdaDot := lambda
		cosineTwiceSigmaMidpoint = cosineSigma - 2*ss/cosineSquaredAlpha
		if math.IsNaN(cosineTwiceSigmaMidpoint) || math.IsInf(cosineTwiceSigmaMidpoint, 0) {
			cosineTwiceSigmaMidpoint = 0
		}

		lambda = l + deltaLambda(eff, sineAlpha, cosineSquaredAlpha, sigma, sineSigma, cosineSigma, cosineTwiceSigmaMidpoint)
		if math.Abs(lambda-lambdaDot) <= common.Epsilon12 {
			converged = true
			break
		}
	}
	if !converged {
		return fmt.Errorf("%w after %d iterations", ErrNoConvergence, MaxIterations)
	}

	uSquared := cosineSquaredAlpha * (major*major - minor*minor) / (minor * minor)
	A := 1 + uSquared*(4096+uSquared*(uSquared*(320-175*uSquared)-768))/16384
	B := uSquared * (256 + uSquared*(uSquared*(74-47*uSquared)-128)) / 1024

	c2 := cosineTwiceSigmaMidpoint * cosineTwiceSigmaMidpoint
	deltaSigma := B * sineSigma * (cosineTwiceSigmaMidpoint +
		B*(cosineSigma*(2*c2-1)-
			B*cosineTwiceSigmaMidpoint*(4*sineSigma*sineSigma-3)*(4*c2-3)/6)/4)

	g.distance = minor * A * (sigma - deltaSigma)
	g.startHeading = math.Atan2(cosineU2*sineLambda, cs-sc*cosineLambda)
	g.endHeading = math.Atan2(cosineU1*sineLambda, cs*cosineLambda-sc)
	g.uSquared = uSquared
	return nil
}

func computeC(f, cosineSquaredAlpha float64) float64 {
	return f * cosineSquaredAlpha * (4 + f*(4-3*cosineSquaredAlpha)) / 16
}

func deltaLambda(f, sineAlpha, cosineSquaredAlpha, sigma, sineSigma, cosineSigma, cosineTwiceSigmaMidpoint float64) float64 {
	C := computeC(f, cosineSquaredAlpha)
	return (1 - C) * f * sineAlpha * (sigma + C*sineSigma*(cosineTwiceSigmaMidpoint+
		C*cosineSigma*(2*cosineTwiceSigmaMidpoint*cosineTwiceSigmaMidpoint-1)))
}

// setConstants fills the series expansion terms used by interpolation.
func (g *EllipsoidGeodesic) setConstants() {
	k := &g.constants
	k.a = g.ellipsoid.MaximumRadius()
	k.b = g.ellipsoid.MinimumRadius()
	k.f = (k.a - k.b) / k.a

	k.sineHeading = math.Sin(g.startHeading)
	k.cosineHeading = math.Cos(g.startHeading)

	k.tanU = (1 - k.f) * math.Tan(g.start.Latitude)
	k.cosineU = 1 / math.Sqrt(1+k.tanU*k.tanU)
	k.sineU = k.cosineU * k.tanU

	k.sigma = math.Atan2(k.tanU, k.cosineHeading)
	k.sineAlpha = k.cosineU * k.sineHeading
	k.sineSquaredAlpha = k.sineAlpha * k.sineAlpha
	k.cosineSquaredAlpha = 1 - k.sineSquaredAlpha
	k.cosineAlpha = math.Sqrt(k.cosineSquaredAlpha)

	k.u2Over4 = g.uSquared / 4
	k.u4Over16 = k.u2Over4 * k.u2Over4
	k.u6Over64 = k.u4Over16 * k.u2Over4
	k.u8Over256 = k.u4Over16 * k.u4Over16

	k.a0 = 1 + k.u2Over4 - 3*k.u4Over16/4 + 5*k.u6Over64/4 - 175*k.u8Over256/64
	k.a1 = 1 - k.u2Over4 + 15*k.u4Over16/8 - 35*k.u6Over64/8
	k.a2 = 1 - 3*k.u2Over4 + 35*k.u4Over16/4
	k.a3 = 1 - 5*k.u2Over4

	s := k.sigma
	k.distanceRatio = k.a0*s -
		k.a1*math.Sin(2*s)*k.u2Over4/2 -
		k.a2*math.Sin(4*s)*k.u4Over16/16 -
		k.a3*math.Sin(6*s)*k.u6Over64/48 -
		math.Sin(8*s)*5*k.u8Over256/512
}

// InterpolateUsingFraction returns the point at fraction of the way from start to end.
//
// Parameters:
//   - fraction: 0 at the start, 1 at the end
//
// Returns:
//   - ellipsoid.Cartographic: the point on the surface
//   - error: ErrNotInitialized if end points were never set
func (g *EllipsoidGeodesic) InterpolateUsingFraction(fraction float64) (ellipsoid.Cartographic, error) {
	return g.InterpolateUsingSurfaceDistance(g.distance * fraction)
}

// InterpolateUsingSurfaceDistance returns the point distance units along the
// geodesic from the start.
//
// Parameters:
//   - distance: surface distance from the start point
//
// Returns:
//   - ellipsoid.Cartographic: the point on the surface (height 0)
//   - error: ErrNotInitialized if end points were never set
func (g *EllipsoidGeodesic) InterpolateUsingSurfaceDistance(distance float64) (ellipsoid.Cartographic, error) {
	if !g.ready {
		return ellipsoid.Cartographic{}, ErrNotInitialized
	}
	k := &g.constants

	s := k.distanceRatio + distance/k.b

	cosine2S := math.Cos(2 * s)
	cosine4S := math.Cos(4 * s)
	cosine6S := math.Cos(6 * s)
	sine2S := math.Sin(2 * s)
	sine4S := math.Sin(4 * s)
	sine6S := math.Sin(6 * s)
	sine8S := math.Sin(8 * s)

	s2 := s * s
	s3 := s * s2

	u2, u4, u6, u8 := k.u2Over4, k.u4Over16, k.u6Over64, k.u8Over256

	sigma := 2*s3*u8*cosine2S/3 +
		s*(1-u2+7*u4/4-15*u6/4+579*u8/64-
			(u4-15*u6/4+187*u8/16)*cosine2S-
			(5*u6/4-115*u8/16)*cosine4S-
			29*u8*cosine6S/16) +
		(u2/2-u4+71*u6/32-85*u8/16)*sine2S +
		(5*u4/16-5*u6/4+383*u8/96)*sine4S -
		s2*((u6-11*u8/2)*sine2S+5*u8*sine4S/2) +
		(29*u6/96-29*u8/16)*sine6S +
		539*u8*sine8S/1536

	theta := math.Asin(math.Sin(sigma) * k.cosineAlpha)
	latitude := math.Atan(k.a / k.b * math.Tan(theta))

	// relative argument of latitude
	sigma -= k.sigma

	cosineTwiceSigmaMidpoint := math.Cos(2*k.sigma + sigma)
	sineSigma := math.Sin(sigma)
	cosineSigma := math.Cos(sigma)

	cc := k.cosineU * cosineSigma
	ss := k.sineU * sineSigma

	lambda := math.Atan2(sineSigma*k.sineHeading, cc-ss*k.cosineHeading)
	l := lambda - deltaLambda(k.f, k.sineAlpha, k.cosineSquaredAlpha, sigma, sineSigma, cosineSigma, cosineTwiceSigmaMidpoint)

	return ellipsoid.Cartographic{
		Longitude: g.start.Longitude + l,
		Latitude:  latitude,
	}, nil
}

// InterpolateCartesian is InterpolateUsingFraction converted to Cartesian coordinates.
func (g *EllipsoidGeodesic) InterpolateCartesian(fraction float64) (r3.Vector, error) {
	c, err := g.InterpolateUsingFraction(fraction)
	if err != nil {
		return r3.Vector{}, err
	}
	return g.ellipsoid.CartographicToCartesian(c), nil
}
