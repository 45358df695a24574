package controller

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/Carmen-Shannon/oxy-globe/engine/transforms"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

var unitZ = r3.Vector{Z: 1}

// tilt3D pitches the camera about a point on the surface. High cameras tilt
// about the ellipsoid point at the screen center; low cameras tilt about the
// picked terrain point.
func (c *screenSpaceCameraController) tilt3D(startPosition r2.Point, movement input.Movement, _ bool) {
	cam := c.scene.Camera()
	if cam.Transform() != mgl64.Ident4() {
		return
	}
	if movement.Pinch != nil {
		movement = movement.Pinch.AngleAndHeight
	}

	if startPosition != c.tiltCenterMousePosition && (c.mode == modeTiltOnEllipsoid || c.mode == modeLooking) {
		c.mode = modeNone
	}

	if c.mode == modeLooking {
		up := c.ellipsoid.GeodeticSurfaceNormal(cam.Position())
		c.look3D(startPosition, movement, &up)
		return
	}

	cartographic, ok := c.ellipsoid.CartesianToCartographic(cam.Position())
	if !ok {
		c.warnOnce("tilt-center", "Camera is at the ellipsoid center, ignoring tilt")
		return
	}

	if c.mode == modeTiltOnEllipsoid || cartographic.Height > c.minimumCollisionTerrainHeight {
		c.mode = modeTiltOnEllipsoid
		c.tilt3DOnEllipsoid(startPosition, movement)
		return
	}
	c.tilt3DOnTerrain(startPosition, movement)
}

func (c *screenSpaceCameraController) tilt3DOnEllipsoid(startPosition r2.Point, movement input.Movement) {
	cam := c.scene.Camera()
	ell := c.ellipsoid

	minHeight := c.minimumZoomDistance * 0.25
	cartographic, ok := ell.CartesianToCartographic(cam.PositionWC())
	if !ok {
		return
	}
	height := cartographic.Height
	if height-minHeight-1.0 < common.Epsilon3 && movement.EndPosition.Y-movement.StartPosition.Y < 0 {
		return
	}

	ray := cam.GetPickRay(c.canvasCenter())

	var center r3.Vector
	if interval, ok := intersect.RayEllipsoid(ray, ell); ok {
		center = ray.Point(interval.Lo)
	} else if height > c.minimumTrackBallHeight {
		grazing, ok := intersect.GrazingAltitudeLocation(ray, ell)
		if !ok {
			return
		}
		grazingCartographic, ok := ell.CartesianToCartographic(grazing)
		if !ok {
			return
		}
		grazingCartographic.Height = 0
		center = ell.CartographicToCartesian(grazingCartographic)
	} else {
		c.mode = modeLooking
		up := ell.GeodeticSurfaceNormal(cam.Position())
		c.look3D(startPosition, movement, &up)
		c.tiltCenterMousePosition = startPosition
		return
	}

	transform := transforms.EastNorthUpToFixedFrame(center, ell)
	c.withLocalFrame(func() {
		oldTransform := cam.Transform()
		cam.SetTransform(transform)
		c.rotate3D(startPosition, movement, &unitZ, false, false)
		cam.SetTransform(oldTransform)
	})
}

func (c *screenSpaceCameraController) tilt3DOnTerrain(startPosition r2.Point, movement input.Movement) {
	cam := c.scene.Camera()
	ell := c.ellipsoid

	var center r3.Vector
	if startPosition == c.tiltCenterMousePosition {
		center = c.tiltCenter
	} else {
		ray := cam.GetPickRay(startPosition)
		picked, ok := c.pickGlobe(cam, startPosition)
		if !ok {
			interval, hit := intersect.RayEllipsoid(ray, ell)
			if !hit {
				cartographic, ok := ell.CartesianToCartographic(cam.Position())
				if ok && cartographic.Height <= c.minimumTrackBallHeight {
					c.mode = modeLooking
					up := ell.GeodeticSurfaceNormal(cam.Position())
					c.look3D(startPosition, movement, &up)
					c.tiltCenterMousePosition = startPosition
				}
				return
			}
			picked = ray.Point(interval.Lo)
		}
		if c.cameraUnderground {
			picked = c.undergroundPickPoint(ray, picked)
		}
		center = picked
		c.tiltCenterMousePosition = startPosition
		c.tiltCenter = center
	}

	canvas := c.scene.Canvas()
	ray := cam.GetPickRay(r2.Point{X: float64(canvas.Width()) / 2, Y: c.tiltCenterMousePosition.Y})
	mag := center.Norm()
	centerSphere := sphere(mag, ell)
	interval, ok := intersect.RayEllipsoid(ray, centerSphere)
	if !ok {
		return
	}
	t := interval.Hi
	if ray.Origin.Norm() > mag {
		t = interval.Lo
	}
	verticalCenter := ray.Point(t)

	transform := transforms.EastNorthUpToFixedFrame(center, ell)
	verticalTransform := transforms.EastNorthUpToFixedFrame(verticalCenter, centerSphere)
	oldTransform := cam.Transform()

	c.withLocalFrame(func() {
		constrainedAxis := &unitZ

		// pitch about the point at the vertical center of the screen
		cam.SetTransform(verticalTransform)
		tangent := verticalCenter.Cross(cam.PositionWC())
		if cam.RightWC().Dot(tangent) < 0 {
			movementDelta := movement.StartPosition.Y - movement.EndPosition.Y
			if (c.cameraUnderground && movementDelta < 0) || (!c.cameraUnderground && movementDelta > 0) {
				// do not flip past the up axis
				constrainedAxis = nil
			}
			oldAxis, hadAxis := cam.ConstrainedAxis()
			cam.ClearConstrainedAxis()
			c.rotate3D(startPosition, movement, constrainedAxis, true, false)
			restoreConstrainedAxis(cam, oldAxis, hadAxis)
		} else {
			c.rotate3D(startPosition, movement, constrainedAxis, true, false)
		}

		// heading about the picked point
		cam.SetTransform(transform)
		c.rotate3D(startPosition, movement, constrainedAxis, false, true)

		if axis, ok := cam.ConstrainedAxis(); ok {
			right := cam.Direction().Cross(axis)
			if !common.VectorEqualsEpsilon(right, r3.Vector{}, common.Epsilon6) {
				if right.Dot(cam.Right()) < 0 {
					right = right.Mul(-1)
				}
				up := right.Cross(cam.Direction()).Normalize()
				cam.SetUp(up)
				cam.SetRight(cam.Direction().Cross(up).Normalize())
			}
		}

		cam.SetTransform(oldTransform)
	})

	originalPosition := cam.PositionWC()
	if c.enableCollisionDetection {
		c.adjustHeightForTerrain()
	}
	if cam.PositionWC() == originalPosition {
		return
	}

	// terrain pushed the camera up; turn the view so the tilt center stays put
	cam.SetTransform(verticalTransform)
	original := cam.WorldToCameraCoordinatesPoint(originalPosition)
	magSquared := original.Norm2()
	if cam.Position().Norm2() > magSquared {
		cam.SetPosition(cam.Position().Normalize().Mul(math.Sqrt(magSquared)))
	}

	position := cam.Position()
	angle := original.Angle(position).Radians()
	axis := original.Cross(position).Normalize()
	rotation := mgl64.QuatRotate(angle, common.ToVec3(axis))

	direction := common.FromVec3(rotation.Rotate(common.ToVec3(cam.Direction())))
	up := common.FromVec3(rotation.Rotate(common.ToVec3(cam.Up())))
	right := direction.Cross(up)
	cam.SetDirection(direction)
	cam.SetRight(right)
	cam.SetUp(right.Cross(direction))

	cam.SetTransform(oldTransform)
}
