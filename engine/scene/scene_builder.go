package scene

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/controller"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera uses cam instead of creating a camera.
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithCameraOptions passes options to the camera the scene creates.
func WithCameraOptions(options ...camera.CameraBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.cameraOptions = append(s.cameraOptions, options...)
	}
}

// WithEllipsoid sets the ellipsoid of the globe and the map projection.
// Defaults to WGS84.
//
// Parameters:
//   - ell: the ellipsoid
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEllipsoid(ell *ellipsoid.Ellipsoid) SceneBuilderOption {
	return func(s *scene) {
		if ell != nil {
			s.ellipsoid = ell
		}
	}
}

// WithGlobe replaces the default ellipsoid globe.
func WithGlobe(globe controller.Globe) SceneBuilderOption {
	return func(s *scene) {
		s.globe = globe
	}
}

// WithoutGlobe removes the globe. Gestures then pick the map projection
// ellipsoid only.
func WithoutGlobe() SceneBuilderOption {
	return func(s *scene) {
		s.globe = nil
		s.noGlobe = true
	}
}

// WithRenderer sets the renderer that draws the scene.
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.renderer = r
	}
}

// WithPixelRatio sets the number of drawing buffer pixels per canvas pixel.
// Values <= 0 defer to the canvas.
func WithPixelRatio(ratio float64) SceneBuilderOption {
	return func(s *scene) {
		s.pixelRatio = ratio
	}
}

// WithControllerOptions passes options to the scene's camera controller.
func WithControllerOptions(options ...controller.ScreenSpaceCameraControllerOption) SceneBuilderOption {
	return func(s *scene) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}
