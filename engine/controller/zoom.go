package controller

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// zoom3D measures the distance to the surface under the screen center, or
// under the cursor when underground, and zooms by a fraction of it.
func (c *screenSpaceCameraController) zoom3D(startPosition r2.Point, movement input.Movement, inertial bool) {
	if movement.Pinch != nil {
		movement = movement.Pinch.Distance
	}

	cam := c.scene.Camera()
	windowPosition := startPosition
	if !c.cameraUnderground {
		windowPosition = c.canvasCenter()
	}
	ray := cam.GetPickRay(windowPosition)

	cartographic, ok := c.ellipsoid.CartesianToCartographic(cam.Position())
	if !ok {
		c.warnOnce("zoom-center", "Camera is at the ellipsoid center, ignoring zoom")
		return
	}
	height := cartographic.Height

	distance := height
	measured := false
	if c.needsZoomPick(height, inertial) {
		if intersection, ok := c.pickGlobe(cam, windowPosition); ok {
			distance = ray.Origin.Distance(intersection)
			c.lastZoomPickDistance = distance
			measured = true
		}
	}
	if c.cameraUnderground {
		underground := c.zoomDistanceUnderground(ray)
		if measured {
			distance = math.Min(distance, underground)
		} else {
			distance = underground
		}
	}

	unitPosition := cam.Position().Normalize()
	c.handleZoom(startPosition, movement, inertial, c.zoomFactor, distance, unitPosition.Dot(cam.Direction()))
}

// needsZoomPick reports whether zoom3D measures the distance to the picked
// surface. Gesture zooms pick below minimumPickingTerrainHeight; inertial
// zooms pick only while the last measured distance is within
// minimumPickingTerrainDistanceWithInertia.
func (c *screenSpaceCameraController) needsZoomPick(height float64, inertial bool) bool {
	if inertial {
		return math.Abs(c.lastZoomPickDistance) < c.minimumPickingTerrainDistanceWithInertia
	}
	return height < c.minimumPickingTerrainHeight
}

// zoomDistanceUnderground weights the distance to the surface by how steeply
// the ray points inward.
func (c *screenSpaceCameraController) zoomDistanceUnderground(ray intersect.Ray) float64 {
	surfaceNormal := ray.Origin.Normalize()
	strength := math.Max(math.Abs(surfaceNormal.Dot(ray.Direction)), 0.5) * 2.0
	return c.distanceFromSurface() * strength
}

// handleZoom converts a vertical drag into a zoom distance clamped between
// minimumZoomDistance and maximumZoomDistance from the surface, then moves
// the camera. When the gesture started over the globe the camera zooms
// towards the picked point while keeping its heading, pitch and roll.
//
// Parameters:
//   - startPosition: where the gesture started
//   - movement: the drag this frame; positive Y zooms in
//   - inertial: the movement is replayed from a released gesture
//   - zoomFactor: zoom rate per unit of distanceMeasure
//   - distanceMeasure: distance from the camera to the surface
//   - unitPositionDotDirection: cosine between the view and the radial direction
func (c *screenSpaceCameraController) handleZoom(startPosition r2.Point, movement input.Movement, inertial bool, zoomFactor, distanceMeasure, unitPositionDotDirection float64) {
	percentage := common.Clamp(math.Abs(unitPositionDotDirection), 0.25, 1.0)

	diff := movement.EndPosition.Y - movement.StartPosition.Y
	if diff == 0 {
		return
	}

	// slow to a stop minimumZoomDistance above the surface
	approachingSurface := diff > 0
	minHeight := 0.0
	if approachingSurface {
		minHeight = c.minimumZoomDistance * percentage
	}
	maxHeight := c.maximumZoomDistance

	minDistance := distanceMeasure - minHeight
	zoomRate := common.Clamp(zoomFactor*minDistance, c.minimumZoomRate, c.maximumZoomRate)

	rangeWindowRatio := math.Min(diff/float64(c.scene.Canvas().Height()), c.maximumMovementRatio)
	distance := zoomRate * rangeWindowRatio

	if c.enableCollisionDetection || c.minimumZoomDistance == 0 || c.globe == nil {
		if distance > 0 && math.Abs(distanceMeasure-minHeight) < 1.0 {
			return
		}
		if distance < 0 && math.Abs(distanceMeasure-maxHeight) < 1.0 {
			return
		}
		if distanceMeasure-distance < minHeight {
			distance = distanceMeasure - minHeight - 1.0
		} else if distanceMeasure-distance > maxHeight {
			distance = distanceMeasure - maxHeight
		}
	}

	cam := c.scene.Camera()
	orientation := cam.Orientation()

	sameStartPosition := inertial || startPosition == c.zoomMouseStart
	zoomingOnVector := c.zoomingOnVector
	rotatingZoom := c.rotatingZoom

	if !sameStartPosition {
		c.zoomMouseStart = startPosition

		picked, ok := c.pickGlobe(cam, startPosition)
		c.useZoomWorldPosition = ok
		if ok {
			c.zoomWorldPosition = picked
		}

		c.zoomingOnVector, zoomingOnVector = false, false
		c.rotatingZoom, rotatingZoom = false, false
		c.zoomingUnderground = c.cameraUnderground
	}

	if !c.useZoomWorldPosition {
		cam.ZoomIn(distance)
		return
	}

	cartographic, ok := cam.PositionCartographic()
	if !ok {
		cam.ZoomIn(distance)
		return
	}
	height := cartographic.Height

	zoomOnVector := false
	if height < 2000000 {
		rotatingZoom = true
	}

	if !sameStartPosition || rotatingZoom {
		cameraPositionNormal := cam.Position().Normalize()
		if c.cameraUnderground || c.zoomingUnderground ||
			(height < 3000.0 && math.Abs(cam.Direction().Dot(cameraPositionNormal)) < 0.6) {
			zoomOnVector = true
		} else {
			centerPosition, centerOK := c.pickGlobe(cam, c.canvasCenter())
			switch {
			case !centerOK:
				// the globe does not cover the screen center
				zoomOnVector = true
			case height < 1000000:
				// the arc below assumes the camera faces the surface
				if cam.Direction().Dot(cameraPositionNormal) >= -0.5 {
					zoomOnVector = true
				} else {
					c.zoomAlongArc(cam, distance, orientation)
					return
				}
			default:
				positionNormal := centerPosition.Normalize()
				pickedNormal := c.zoomWorldPosition.Normalize()
				dotProduct := pickedNormal.Dot(positionNormal)
				if dotProduct > 0 && dotProduct < 1 {
					angle := common.AcosClamped(dotProduct)
					axis := pickedNormal.Cross(positionNormal)
					denominator := height - distance
					if math.Abs(angle) > 20*math.Pi/180 {
						denominator = height * 0.75
					}
					cam.Rotate(axis, angle*distance/denominator)
				}
			}
		}
		c.rotatingZoom = !zoomOnVector
	}

	if (!sameStartPosition && zoomOnVector) || zoomingOnVector {
		var ray intersect.Ray
		if target, ok := cam.WorldToWindowCoordinates(c.zoomWorldPosition); ok && startPosition == c.zoomMouseStart {
			ray = cam.GetPickRay(target)
		} else {
			ray = cam.GetPickRay(startPosition)
		}
		cam.Move(ray.Direction, distance)
		c.zoomingOnVector = true
	} else {
		cam.ZoomIn(distance)
	}

	if !c.cameraUnderground {
		cam.SetView(cam.PositionWC(), orientation)
	}
}

// zoomAlongArc moves a low, surface-facing camera along an arc that keeps the
// zoom target under the same pixel.
func (c *screenSpaceCameraController) zoomAlongArc(cam camera.Camera, distance float64, orientation camera.HeadingPitchRoll) {
	cameraPosition := cam.Position()
	cameraPositionNormal := cameraPosition.Normalize()
	target := c.zoomWorldPosition
	if target.Normalize().Dot(cameraPositionNormal) < 0 {
		return
	}

	center := cameraPosition.Add(cam.Direction().Mul(1000))
	positionToTarget := target.Sub(cameraPosition)
	positionToTargetNormal := positionToTarget.Normalize()

	alphaDot := cameraPositionNormal.Dot(positionToTargetNormal)
	if alphaDot >= 0 {
		// zoomed past the target; the next zoom picks a new start
		c.zoomMouseStart.X = -1
		return
	}

	alpha := math.Acos(-alphaDot)
	cameraDistance := cameraPosition.Norm()
	targetDistance := target.Norm()
	remainingDistance := cameraDistance - distance
	positionToTargetDistance := positionToTarget.Norm()

	gamma := common.AsinClamped(positionToTargetDistance / targetDistance * math.Sin(alpha))
	delta := common.AsinClamped(remainingDistance / targetDistance * math.Sin(alpha))
	beta := gamma - delta + alpha

	up := cameraPositionNormal
	right := positionToTargetNormal.Cross(up).Normalize()
	forward := up.Cross(right).Normalize()

	center = center.Normalize().Mul(center.Norm() - distance)
	cameraPosition = cameraPositionNormal.Mul(remainingDistance)
	cameraPosition = cameraPosition.Add(arcOffset(up, forward, beta, remainingDistance))

	up = center.Normalize()
	forward = up.Cross(right).Normalize()
	center = center.Add(arcOffset(up, forward, beta, center.Norm()))

	direction := center.Sub(cameraPosition).Normalize()
	newRight := direction.Cross(cam.Up()).Normalize()
	cam.SetPosition(cameraPosition)
	cam.SetDirection(direction)
	cam.SetRight(newRight)
	cam.SetUp(newRight.Cross(direction))

	cam.SetView(cam.PositionWC(), orientation)
}

// arcOffset is the displacement of a point at radius along up after turning
// it by beta towards forward.
func arcOffset(up, forward r3.Vector, beta, radius float64) r3.Vector {
	return up.Mul(math.Cos(beta) - 1).Add(forward.Mul(math.Sin(beta))).Mul(radius)
}
