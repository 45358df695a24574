package scene

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/controller"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/golang/geo/r3"
)

// HeightProvider is implemented by globes that know the terrain height
// below a position.
type HeightProvider interface {
	Height(cartographic ellipsoid.Cartographic) (float64, bool)
}

// ellipsoidGlobe is a globe whose surface is the bare ellipsoid.
type ellipsoidGlobe struct {
	ellipsoid *ellipsoid.Ellipsoid
}

var (
	_ controller.Globe = &ellipsoidGlobe{}
	_ HeightProvider   = &ellipsoidGlobe{}
)

// NewEllipsoidGlobe creates a pickable globe without terrain.
//
// Parameters:
//   - ell: the globe surface
//
// Returns:
//   - controller.Globe: the globe
func NewEllipsoidGlobe(ell *ellipsoid.Ellipsoid) controller.Globe {
	return &ellipsoidGlobe{ellipsoid: ell}
}

func (g *ellipsoidGlobe) Ellipsoid() *ellipsoid.Ellipsoid {
	return g.ellipsoid
}

// PickWorldCoordinates returns the entry point of ray. From inside the
// ellipsoid the exit point is returned unless back faces are culled.
func (g *ellipsoidGlobe) PickWorldCoordinates(ray intersect.Ray, _ controller.Scene, cullBackFaces bool) (r3.Vector, bool) {
	interval, ok := intersect.RayEllipsoid(ray, g.ellipsoid)
	if !ok {
		return r3.Vector{}, false
	}
	if interval.Lo > 0 {
		return ray.Point(interval.Lo), true
	}
	if !cullBackFaces && interval.Hi > 0 {
		return ray.Point(interval.Hi), true
	}
	return r3.Vector{}, false
}

// Height is the terrain height at a position. A bare ellipsoid has none.
func (g *ellipsoidGlobe) Height(ellipsoid.Cartographic) (float64, bool) {
	return 0, true
}
