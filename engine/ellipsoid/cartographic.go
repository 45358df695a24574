package ellipsoid

import (
	"fmt"
	"math"
)

// Cartographic is a geodetic position: longitude and latitude in radians and
// height in the ellipsoid's linear units above its surface.
type Cartographic struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

// CartographicFromDegrees builds a Cartographic from longitude and latitude in degrees.
//
// Parameters:
//   - lonDeg: longitude in degrees
//   - latDeg: latitude in degrees
//   - height: height above the ellipsoid
//
// Returns:
//   - Cartographic: the position in radians
func CartographicFromDegrees(lonDeg, latDeg, height float64) Cartographic {
	return Cartographic{
		Longitude: lonDeg * math.Pi / 180,
		Latitude:  latDeg * math.Pi / 180,
		Height:    height,
	}
}

// EqualsEpsilon reports whether c and o match within epsilon on every field.
func (c Cartographic) EqualsEpsilon(o Cartographic, epsilon float64) bool {
	return math.Abs(c.Longitude-o.Longitude) <= epsilon &&
		math.Abs(c.Latitude-o.Latitude) <= epsilon &&
		math.Abs(c.Height-o.Height) <= epsilon
}

func (c Cartographic) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.Longitude, c.Latitude, c.Height)
}
