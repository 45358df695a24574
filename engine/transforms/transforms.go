// Package transforms builds the local reference frames the camera controller
// reparents the camera into.
package transforms

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// EastNorthUpToFixedFrame returns the 4x4 matrix whose columns are the local
// east, north and up axes at origin followed by origin itself. At the poles,
// where east is undefined, east is fixed to +Y and north/up follow the sign of
// the Z coordinate.
//
// Parameters:
//   - origin: the frame origin in the fixed frame
//   - ell: the ellipsoid used for the up direction; nil means WGS84
//
// Returns:
//   - mgl64.Mat4: the local-to-fixed transform
func EastNorthUpToFixedFrame(origin r3.Vector, ell *ellipsoid.Ellipsoid) mgl64.Mat4 {
	if ell == nil {
		ell = ellipsoid.WGS84
	}

	var east, north, up r3.Vector
	if common.EqualsEpsilon(origin.X, 0, common.Epsilon14, common.Epsilon14) &&
		common.EqualsEpsilon(origin.Y, 0, common.Epsilon14, common.Epsilon14) {
		sign := common.Sign(origin.Z)
		east = r3.Vector{Y: 1}
		north = r3.Vector{X: -1}.Mul(sign)
		up = r3.Vector{Z: 1}.Mul(sign)
	} else {
		up = ell.GeodeticSurfaceNormal(origin)
		east = r3.Vector{X: -origin.Y, Y: origin.X}.Normalize()
		north = up.Cross(east)
	}

	return mgl64.Mat4FromCols(
		mgl64.Vec4{east.X, east.Y, east.Z, 0},
		mgl64.Vec4{north.X, north.Y, north.Z, 0},
		mgl64.Vec4{up.X, up.Y, up.Z, 0},
		mgl64.Vec4{origin.X, origin.Y, origin.Z, 1},
	)
}

// InverseTransformation inverts a rigid transform made of a rotation and a
// translation without a general matrix inverse.
func InverseTransformation(m mgl64.Mat4) mgl64.Mat4 {
	rotation := m.Mat3().Transpose()
	translation := mgl64.Vec3{m[12], m[13], m[14]}
	t := rotation.Mul3x1(translation).Mul(-1)

	return mgl64.Mat4{
		rotation[0], rotation[1], rotation[2], 0,
		rotation[3], rotation[4], rotation[5], 0,
		rotation[6], rotation[7], rotation[8], 0,
		t[0], t[1], t[2], 1,
	}
}

// MultiplyByPoint transforms point by m, including the translation column.
func MultiplyByPoint(m mgl64.Mat4, point r3.Vector) r3.Vector {
	v := m.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// MultiplyByPointAsVector transforms a direction by the rotation part of m.
func MultiplyByPointAsVector(m mgl64.Mat4, vector r3.Vector) r3.Vector {
	v := m.Mul4x1(mgl64.Vec4{vector.X, vector.Y, vector.Z, 0})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
