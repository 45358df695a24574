// Package scene ties a camera, a globe and the camera controller together
// and exposes them as the controller's view of the world.
package scene

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/controller"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Scene is a globe viewed through a camera driven by a
// ScreenSpaceCameraController. Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	controller.Scene

	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Controller returns the camera controller fed by window input.
	Controller() controller.ScreenSpaceCameraController

	// Renderer returns the scene's renderer, or nil when the scene is headless.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Update applies the gestures aggregated since the last update to the camera.
	Update()

	// Render draws the scene. Headless scenes do nothing.
	//
	// Returns:
	//   - error: error from the renderer
	Render() error

	// Resize updates the camera aspect ratio and the renderer surface.
	//
	// Parameters:
	//   - width: new drawing buffer width in pixels
	//   - height: new drawing buffer height in pixels
	Resize(width, height int)
}

// PixelRatioProvider is a canvas that knows how many drawing buffer pixels
// cover one of its pixels, such as a window on a high-DPI display.
type PixelRatioProvider interface {
	PixelRatio() float64
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.RWMutex

	name   string
	active bool

	canvas     camera.Canvas
	camera     camera.Camera
	ellipsoid  *ellipsoid.Ellipsoid
	globe      controller.Globe
	noGlobe    bool
	renderer   renderer.Renderer
	pixelRatio float64

	cameraOptions     []camera.CameraBuilderOption
	controllerOptions []controller.ScreenSpaceCameraControllerOption
	controller        controller.ScreenSpaceCameraController
}

var _ Scene = &scene{}

// NewScene creates a scene on canvas. Unless WithCamera is given, a camera
// looking at the globe from 2.5 radii is created.
//
// Parameters:
//   - name: the scene identifier
//   - canvas: the drawing surface the camera and controller measure against
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: error if the camera or controller cannot be created
func NewScene(name string, canvas camera.Canvas, options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		name:       name,
		active:     true,
		canvas:     canvas,
		ellipsoid:  ellipsoid.WGS84,
	}
	for _, opt := range options {
		opt(s)
	}

	if s.camera == nil {
		cameraOptions := append([]camera.CameraBuilderOption{camera.WithEllipsoid(s.ellipsoid)}, s.cameraOptions...)
		cam, err := camera.NewCamera(canvas, cameraOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to create camera for scene %q: %w", name, err)
		}
		s.camera = cam
	}
	if s.globe == nil && !s.noGlobe {
		s.globe = NewEllipsoidGlobe(s.ellipsoid)
	}

	c, err := controller.NewScreenSpaceCameraController(s, s.controllerOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera controller for scene %q: %w", name, err)
	}
	s.controller = c

	log.Printf("[Scene] Created scene %q", name)
	return s, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Canvas() camera.Canvas {
	return s.canvas
}

// PixelRatio returns the ratio set with WithPixelRatio, else the canvas's own
// ratio when it reports one, else 1.
func (s *scene) PixelRatio() float64 {
	if s.pixelRatio > 0 {
		return s.pixelRatio
	}
	if provider, ok := s.canvas.(PixelRatioProvider); ok {
		if ratio := provider.PixelRatio(); ratio > 0 {
			return ratio
		}
	}
	return 1
}

func (s *scene) DrawingBufferWidth() int {
	return s.canvas.Width()
}

func (s *scene) DrawingBufferHeight() int {
	return s.canvas.Height()
}

func (s *scene) GlobeHeight() (float64, bool) {
	provider, ok := s.globe.(HeightProvider)
	if !ok {
		return 0, false
	}
	cartographic, ok := s.globeEllipsoid().CartesianToCartographic(s.camera.PositionWC())
	if !ok {
		return 0, false
	}
	return provider.Height(cartographic)
}

func (s *scene) CameraUnderground() bool {
	if s.globe == nil {
		return false
	}
	cartographic, ok := s.globeEllipsoid().CartesianToCartographic(s.camera.PositionWC())
	if !ok {
		return true
	}
	height, known := s.GlobeHeight()
	if !known {
		return false
	}
	return cartographic.Height < height
}

func (s *scene) Globe() controller.Globe {
	if s.globe == nil {
		return nil
	}
	return s.globe
}

func (s *scene) Ellipsoid() *ellipsoid.Ellipsoid {
	return s.ellipsoid
}

// PickPosition reports no depth pick; the globe is picked analytically.
func (s *scene) PickPosition(r2.Point) (r3.Vector, bool) {
	return r3.Vector{}, false
}

func (s *scene) Controller() controller.ScreenSpaceCameraController {
	return s.controller
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renderer
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = r
}

func (s *scene) Update() {
	s.controller.Update()
}

func (s *scene) Render() error {
	r := s.Renderer()
	if r == nil {
		return nil
	}
	return r.Render(s.camera)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	frustum := s.camera.Frustum()
	frustum.AspectRatio = float64(width) / float64(height)
	s.camera.SetFrustum(frustum)

	if r := s.Renderer(); r != nil {
		if err := r.Resize(width, height); err != nil {
			log.Printf("[Scene] Failed to resize renderer for %q: %v", s.Name(), err)
		}
	}
}

func (s *scene) globeEllipsoid() *ellipsoid.Ellipsoid {
	if s.globe != nil {
		return s.globe.Ellipsoid()
	}
	return s.ellipsoid
}
