package controller

import (
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/input"
)

// ScreenSpaceCameraControllerOption is a functional option for configuring a
// screenSpaceCameraController.
type ScreenSpaceCameraControllerOption func(c *screenSpaceCameraController)

// WithAggregator supplies the event aggregator instead of creating one on
// the scene canvas.
//
// Parameters:
//   - aggregator: the aggregator gestures are read from
//
// Returns:
//   - ScreenSpaceCameraControllerOption: option function to apply
func WithAggregator(aggregator input.CameraEventAggregator) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.aggregator = aggregator
	}
}

// WithClock replaces time.Now for inertia timing. It is also passed to the
// aggregator the controller creates.
//
// Parameters:
//   - now: clock function
//
// Returns:
//   - ScreenSpaceCameraControllerOption: option function to apply
func WithClock(now func() time.Time) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEnableInputs sets whether any gesture moves the camera.
func WithEnableInputs(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableInputs = enabled
	}
}

// WithEnableTranslate sets whether spin may pan or strafe. When false every
// spin gesture rotates the camera about the globe center.
func WithEnableTranslate(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableTranslate = enabled
	}
}

// WithEnableZoom sets whether the zoom bindings are handled.
func WithEnableZoom(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableZoom = enabled
	}
}

// WithEnableRotate sets whether the rotate bindings are handled.
func WithEnableRotate(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableRotate = enabled
	}
}

// WithEnableTilt sets whether the tilt bindings are handled.
func WithEnableTilt(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableTilt = enabled
	}
}

// WithEnableLook sets whether the look bindings are handled.
func WithEnableLook(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableLook = enabled
	}
}

// WithInertia sets the inertia coefficients. Values in [0, 1); larger values
// coast longer and 1 or more disables inertia.
//
// Parameters:
//   - spin: coefficient for rotate and tilt gestures
//   - zoom: coefficient for zoom gestures
//
// Returns:
//   - ScreenSpaceCameraControllerOption: option function to apply
func WithInertia(spin, zoom float64) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.inertiaSpin = spin
		c.inertiaZoom = zoom
	}
}

// WithMaximumMovementRatio caps the fraction of the canvas a single frame of
// movement may count for.
func WithMaximumMovementRatio(ratio float64) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.maximumMovementRatio = ratio
	}
}

// WithZoomDistance bounds the camera's distance from the surface.
//
// Parameters:
//   - minimum: closest the camera may zoom, in meters
//   - maximum: farthest the camera may zoom, in meters
//
// Returns:
//   - ScreenSpaceCameraControllerOption: option function to apply
func WithZoomDistance(minimum, maximum float64) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.minimumZoomDistance = minimum
		c.maximumZoomDistance = maximum
	}
}

// WithZoomFactor sets the zoom rate per meter of distance to the surface.
func WithZoomFactor(factor float64) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.zoomFactor = factor
	}
}

// WithTerrainHeights sets the height thresholds that switch gesture behavior.
//
// Parameters:
//   - picking: below this height gestures pick the terrain
//   - pickingWithInertia: below this height inertial zooms pick the terrain
//   - collision: below this height tilt pivots on terrain and the camera is
//     kept above it
//   - trackBall: above this height a spin that misses the globe rotates it
//
// Returns:
//   - ScreenSpaceCameraControllerOption: option function to apply
func WithTerrainHeights(picking, pickingWithInertia, collision, trackBall float64) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.minimumPickingTerrainHeight = picking
		c.minimumPickingTerrainDistanceWithInertia = pickingWithInertia
		c.minimumCollisionTerrainHeight = collision
		c.minimumTrackBallHeight = trackBall
	}
}

// WithCollisionDetection sets whether the camera is kept above the terrain.
func WithCollisionDetection(enabled bool) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.enableCollisionDetection = enabled
	}
}

// WithRotateEventTypes replaces the gestures that spin the globe.
func WithRotateEventTypes(keys ...input.EventKey) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.rotateEventTypes = keys
	}
}

// WithZoomEventTypes replaces the gestures that zoom.
func WithZoomEventTypes(keys ...input.EventKey) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.zoomEventTypes = keys
	}
}

// WithTiltEventTypes replaces the gestures that tilt.
func WithTiltEventTypes(keys ...input.EventKey) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.tiltEventTypes = keys
	}
}

// WithLookEventTypes replaces the gestures that free look.
func WithLookEventTypes(keys ...input.EventKey) ScreenSpaceCameraControllerOption {
	return func(c *screenSpaceCameraController) {
		c.lookEventTypes = keys
	}
}
