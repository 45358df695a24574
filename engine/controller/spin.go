package controller

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// spin3D picks a behavior when a rotate gesture starts and keeps it for as
// long as the gesture does: pan when the cursor grabs the surface, strafe
// when the grab is tangent or above the camera, trackball rotation when the
// camera is high and misses the globe, and free look otherwise.
func (c *screenSpaceCameraController) spin3D(startPosition r2.Point, movement input.Movement, inertial bool) {
	cam := c.scene.Camera()
	if cam.Transform() != mgl64.Ident4() {
		c.rotate3D(startPosition, movement, nil, false, false)
		return
	}

	up := c.ellipsoid.GeodeticSurfaceNormal(cam.Position())

	if startPosition == c.rotateMousePosition {
		switch c.mode {
		case modeLooking:
			c.look3D(startPosition, movement, &up)
		case modeRotating:
			c.rotate3D(startPosition, movement, nil, false, false)
		case modeStrafing:
			c.continueStrafing(movement)
		default:
			// the grab is lost once the camera drops below the grabbed sphere
			magnitude := c.rotateStartPosition.Norm()
			if cam.Position().Norm() < magnitude {
				return
			}
			c.pan3D(startPosition, movement, sphere(magnitude, c.ellipsoid), inertial)
		}
		return
	}

	c.mode = modeNone

	cartographic, ok := c.ellipsoid.CartesianToCartographic(cam.PositionWC())
	if !ok {
		c.warnOnce("spin-center", "Camera is at the ellipsoid center, ignoring spin")
		return
	}
	height := cartographic.Height

	switch {
	case !c.enableTranslate:
		c.mode = modeRotating
		c.rotate3D(startPosition, movement, nil, false, false)
	case c.globe != nil && height < c.minimumPickingTerrainHeight:
		c.spinNearSurface(cam, startPosition, movement, up, inertial)
	default:
		if picked, ok := cam.PickEllipsoid(movement.StartPosition, c.ellipsoid); ok {
			c.pan3D(startPosition, movement, c.ellipsoid, inertial)
			c.rotateStartPosition = picked
		} else if height > c.minimumTrackBallHeight {
			c.mode = modeRotating
			c.rotate3D(startPosition, movement, nil, false, false)
		} else {
			c.mode = modeLooking
			c.look3D(startPosition, movement, &up)
		}
	}

	c.rotateMousePosition = startPosition
}

// spinNearSurface starts a spin close to the terrain, grabbing the picked
// terrain point.
func (c *screenSpaceCameraController) spinNearSurface(cam camera.Camera, startPosition r2.Point, movement input.Movement, up r3.Vector, inertial bool) {
	mousePosition, ok := c.pickGlobe(cam, movement.StartPosition)
	if !ok {
		c.mode = modeLooking
		c.look3D(startPosition, movement, &up)
		return
	}

	ray := cam.GetPickRay(movement.StartPosition)
	var strafing bool
	if c.cameraUnderground {
		strafing = true
		mousePosition = c.undergroundPickPoint(ray, mousePosition)
	} else {
		normal := c.ellipsoid.GeodeticSurfaceNormal(mousePosition)
		tangentPick := math.Abs(ray.Direction.Dot(normal)) < 0.05
		strafing = tangentPick || cam.Position().Norm() < mousePosition.Norm()
	}

	if strafing {
		c.strafeEndMousePosition = movement.EndPosition
		c.strafeStartPosition = mousePosition
		c.mode = modeStrafing
		c.strafe(movement, c.strafeStartPosition)
		return
	}

	c.pan3D(startPosition, movement, sphere(mousePosition.Norm(), c.ellipsoid), inertial)
	c.rotateStartPosition = mousePosition
}

// rotate3D orbits the camera about the reference frame origin by an angle
// proportional to the drag. The rate grows with the distance from the
// surface.
//
// Parameters:
//   - startPosition: where the gesture started
//   - movement: the drag this frame
//   - constrainedAxis: temporary constrained axis; nil keeps the camera's
//   - rotateOnlyVertical: skip the horizontal rotation
//   - rotateOnlyHorizontal: skip the vertical rotation
func (c *screenSpaceCameraController) rotate3D(startPosition r2.Point, movement input.Movement, constrainedAxis *r3.Vector, rotateOnlyVertical, rotateOnlyHorizontal bool) {
	cam := c.scene.Camera()
	canvas := c.scene.Canvas()

	oldAxis, hadAxis := cam.ConstrainedAxis()
	if constrainedAxis != nil {
		cam.SetConstrainedAxis(*constrainedAxis)
	}

	rho := cam.Position().Norm()
	rotateRate := c.rotateFactor * (rho - c.rotateRateRangeAdjustment)
	rotateRate = common.Clamp(rotateRate, c.minimumRotateRate, c.maximumRotateRate)

	phiWindowRatio := (movement.StartPosition.X - movement.EndPosition.X) / float64(canvas.Width())
	thetaWindowRatio := (movement.StartPosition.Y - movement.EndPosition.Y) / float64(canvas.Height())
	phiWindowRatio = math.Min(phiWindowRatio, c.maximumMovementRatio)
	thetaWindowRatio = math.Min(thetaWindowRatio, c.maximumMovementRatio)

	deltaPhi := rotateRate * phiWindowRatio * math.Pi * 2.0
	deltaTheta := rotateRate * thetaWindowRatio * math.Pi

	if !rotateOnlyVertical {
		cam.RotateRight(deltaPhi)
	}
	if !rotateOnlyHorizontal {
		cam.RotateUp(deltaTheta)
	}

	restoreConstrainedAxis(cam, oldAxis, hadAxis)
}

// pan3D rotates the globe so the point under the gesture start follows the
// cursor. Falls back to rotate3D when either end misses ell.
func (c *screenSpaceCameraController) pan3D(startPosition r2.Point, movement input.Movement, ell *ellipsoid.Ellipsoid, inertial bool) {
	cam := c.scene.Camera()
	startMousePosition := movement.StartPosition
	endMousePosition := movement.EndPosition

	var p0, p1 r3.Vector
	var ok0, ok1 bool

	cartographic, hasHeight := ell.CartesianToCartographic(cam.PositionWC())
	if !inertial && c.globe == nil && hasHeight && cartographic.Height < c.minimumPickingTerrainHeight {
		// reuse the last picked point unless this is a new drag
		p0, ok0 = c.panLastWorldPosition, true
		if startMousePosition != c.panLastMousePosition {
			p0, ok0 = c.scene.PickPosition(startMousePosition)
		}
		if ok0 {
			p1, ok1 = c.linearizedPan(cam, p0, startMousePosition, endMousePosition)
			if ok1 {
				c.panLastWorldPosition = p1
				c.panLastMousePosition = endMousePosition
			}
		}
	}

	if !ok0 || !ok1 {
		p0, ok0 = cam.PickEllipsoid(startMousePosition, ell)
		p1, ok1 = cam.PickEllipsoid(endMousePosition, ell)
	}
	if !ok0 || !ok1 {
		c.mode = modeRotating
		c.rotate3D(startPosition, movement, nil, false, false)
		return
	}

	p0 = cam.WorldToCameraCoordinatesPoint(p0)
	p1 = cam.WorldToCameraCoordinatesPoint(p1)

	basis0, constrained := cam.ConstrainedAxis()
	if !constrained {
		p0 = p0.Normalize()
		p1 = p1.Normalize()
		dot := p0.Dot(p1)
		axis := p0.Cross(p1)
		if dot < 1.0 && !common.VectorEqualsEpsilon(axis, r3.Vector{}, common.Epsilon14) {
			cam.Rotate(axis, math.Acos(dot))
		}
		return
	}

	basis1 := common.MostOrthogonalAxis(basis0).Cross(basis0).Normalize()
	basis2 := basis0.Cross(basis1)

	startTheta, startPhi := sphericalAbout(p0, basis0, basis1, basis2)
	endTheta, endPhi := sphericalAbout(p1, basis0, basis1, basis2)
	deltaPhi := startPhi - endPhi

	position := cam.Position()
	var east r3.Vector
	if common.VectorEqualsEpsilon(basis0, position, common.Epsilon2) {
		east = cam.Right()
	} else {
		east = basis0.Cross(position)
	}

	planeNormal := basis0.Cross(east)
	side0 := planeNormal.Dot(p0.Sub(basis0))
	side1 := planeNormal.Dot(p1.Sub(basis0))

	var deltaTheta float64
	switch {
	case side0 > 0 && side1 > 0:
		deltaTheta = endTheta - startTheta
	case side0 > 0 && side1 <= 0:
		if position.Dot(basis0) > 0 {
			deltaTheta = -startTheta - endTheta
		} else {
			deltaTheta = startTheta + endTheta
		}
	default:
		deltaTheta = startTheta - endTheta
	}

	cam.RotateRight(deltaPhi)
	cam.RotateUp(deltaTheta)
}

// sphericalAbout returns the polar angle of p from basis0 and its azimuth in
// the basis1/basis2 plane, in [0, 2π).
func sphericalAbout(p, basis0, basis1, basis2 r3.Vector) (theta, phi float64) {
	dot := basis0.Dot(p)
	theta = common.AcosClamped(dot / p.Norm())

	rejection := p.Sub(basis0.Mul(dot)).Normalize()
	phi = common.AcosClamped(rejection.Dot(basis1))
	if rejection.Dot(basis2) < 0 {
		phi = common.TwoPi - phi
	}
	return theta, phi
}

// linearizedPan moves p0 by the drag using the world size of a pixel at the
// picked depth. Used near the surface where the ellipsoid is a poor stand-in
// for the rendered terrain.
func (c *screenSpaceCameraController) linearizedPan(cam camera.Camera, p0 r3.Vector, start, end r2.Point) (r3.Vector, bool) {
	eye := cam.PositionWC()
	directionWC := cam.DirectionWC()
	rightWC := cam.RightWC()
	upWC := cam.UpWC()

	toCenterProjection := directionWC.Mul(directionWC.Dot(p0.Sub(eye)))
	distanceToNearPlane := toCenterProjection.Norm()

	pixelRatio := common.Coalesce(c.scene.PixelRatio(), 1.0)
	pixelDimensions, err := cam.Frustum().PixelDimensions(c.scene.DrawingBufferWidth(), c.scene.DrawingBufferHeight(), distanceToNearPlane, pixelRatio)
	if err != nil {
		c.warnOnce("pixel-dimensions", "Cannot measure pixels for panning: %v", err)
		return r3.Vector{}, false
	}

	dragDelta := end.Sub(start)
	right := rightWC.Mul(dragDelta.X * pixelDimensions.X)

	// move towards the picked point as the view approaches the horizon
	cameraPositionNormal := eye.Normalize()
	endPickDirection := cam.GetPickRay(end).Direction
	endPickProjection := endPickDirection.Sub(projectVector(endPickDirection, rightWC))
	angle := endPickProjection.Angle(directionWC)
	forward := math.Max(math.Tan(angle.Radians()), 0.1)

	dot := math.Abs(directionWC.Dot(cameraPositionNormal))
	magnitude := -dragDelta.Y * pixelDimensions.Y * 2.0 / math.Sqrt(forward) * (1.0 - dot)
	direction := endPickDirection.Mul(magnitude)

	// move up as the view approaches straight down
	dot = math.Abs(upWC.Dot(cameraPositionNormal))
	up := upWC.Mul(-dragDelta.Y * (1.0 - dot) * pixelDimensions.Y)

	return p0.Add(right).Add(direction).Add(up), true
}

func projectVector(a, b r3.Vector) r3.Vector {
	return b.Mul(a.Dot(b) / b.Dot(b))
}

// strafe translates the camera within the plane through strafeStartPosition
// facing the view direction, so the grabbed point stays under the cursor.
func (c *screenSpaceCameraController) strafe(movement input.Movement, strafeStartPosition r3.Vector) {
	cam := c.scene.Camera()
	ray := cam.GetPickRay(movement.EndPosition)
	plane := common.NewPlaneFromPointNormal(strafeStartPosition, cam.Direction())

	intersection, ok := intersect.RayPlane(ray, plane)
	if !ok {
		return
	}
	cam.SetPosition(cam.Position().Add(strafeStartPosition.Sub(intersection)))
}

// continueStrafing advances the strafe end point by this frame's delta.
func (c *screenSpaceCameraController) continueStrafing(movement input.Movement) {
	c.strafeEndMousePosition = c.strafeEndMousePosition.Add(movement.Delta())
	c.strafe(input.Movement{
		StartPosition: movement.StartPosition,
		EndPosition:   c.strafeEndMousePosition,
	}, c.strafeStartPosition)
}

// freeLook is the look binding: rotate the view in place with no axis.
func (c *screenSpaceCameraController) freeLook(startPosition r2.Point, movement input.Movement, _ bool) {
	c.look3D(startPosition, movement, nil)
}

// look3D turns the view in place by the angle between the pick rays at the
// start and end of the drag. With a rotationAxis the horizontal turn is about
// that axis and the vertical turn stops short of it.
func (c *screenSpaceCameraController) look3D(startPosition r2.Point, movement input.Movement, rotationAxis *r3.Vector) {
	cam := c.scene.Camera()

	angle := lookAngle(cam, r2.Point{X: movement.StartPosition.X}, r2.Point{X: movement.EndPosition.X}).Radians()
	if movement.StartPosition.X > movement.EndPosition.X {
		angle = -angle
	}
	if rotationAxis != nil {
		cam.Look(*rotationAxis, -angle)
	} else {
		cam.LookLeft(angle)
	}

	angle = lookAngle(cam, r2.Point{Y: movement.StartPosition.Y}, r2.Point{Y: movement.EndPosition.Y}).Radians()
	if movement.StartPosition.Y > movement.EndPosition.Y {
		angle = -angle
	}
	if rotationAxis == nil {
		cam.LookUp(angle)
		return
	}

	direction := cam.Direction()
	axis := *rotationAxis
	negativeAxis := axis.Mul(-1)
	northParallel := common.VectorEqualsEpsilon(direction, axis, common.Epsilon2)
	southParallel := common.VectorEqualsEpsilon(direction, negativeAxis, common.Epsilon2)

	switch {
	case !northParallel && !southParallel:
		angleToAxis := common.AcosClamped(direction.Dot(axis))
		if angle > 0 && angle > angleToAxis {
			angle = angleToAxis - common.Epsilon4
		}
		angleToAxis = common.AcosClamped(direction.Dot(negativeAxis))
		if angle < 0 && -angle > angleToAxis {
			angle = -angleToAxis + common.Epsilon4
		}
		cam.Look(axis.Cross(direction), angle)
	case (northParallel && angle < 0) || (southParallel && angle > 0):
		cam.Look(cam.Right(), -angle)
	}
}

// lookAngle is the angle between the pick rays through two pixels. It is
// exactly zero when the pixels coincide.
func lookAngle(cam camera.Camera, start, end r2.Point) s1.Angle {
	if start == end {
		return 0
	}
	return cam.GetPickRay(start).Direction.Angle(cam.GetPickRay(end).Direction)
}
