package common

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Plane represents a plane in 3D space using the equation: n·p + d = 0
// where n is the unit normal and d is the signed distance from the origin.
type Plane struct {
	Normal   r3.Vector
	Distance float64
}

// NewPlaneFromPointNormal creates the plane through point with the given unit normal.
//
// Parameters:
//   - point: any point on the plane
//   - normal: unit normal of the plane
//
// Returns:
//   - Plane: the constructed plane
func NewPlaneFromPointNormal(point, normal r3.Vector) Plane {
	return Plane{Normal: normal, Distance: -normal.Dot(point)}
}

// SignedDistance returns the distance from the plane to point, positive on the
// side the normal points to.
func (p Plane) SignedDistance(point r3.Vector) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix
// using the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl64.Mat4) Frustum {
	var f Frustum
	row0 := viewProj.Row(0)
	row1 := viewProj.Row(1)
	row2 := viewProj.Row(2)
	row3 := viewProj.Row(3)

	f.Planes[FrustumLeft] = planeFromRow(row3.Add(row0))
	f.Planes[FrustumRight] = planeFromRow(row3.Sub(row0))
	f.Planes[FrustumBottom] = planeFromRow(row3.Add(row1))
	f.Planes[FrustumTop] = planeFromRow(row3.Sub(row1))
	f.Planes[FrustumNear] = planeFromRow(row3.Add(row2))
	f.Planes[FrustumFar] = planeFromRow(row3.Sub(row2))
	return f
}

// Contains reports whether point lies inside all six planes.
func (f Frustum) Contains(point r3.Vector) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(point) < 0 {
			return false
		}
	}
	return true
}

// planeFromRow builds a normalized plane from a matrix row combination.
func planeFromRow(row mgl64.Vec4) Plane {
	p := Plane{
		Normal:   r3.Vector{X: row[0], Y: row[1], Z: row[2]},
		Distance: row[3],
	}
	length := p.Normal.Norm()
	if length > 0 {
		p.Normal = p.Normal.Mul(1 / length)
		p.Distance /= length
	}
	return p
}
