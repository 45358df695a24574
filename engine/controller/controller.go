// Package controller turns aggregated pointer gestures into globe camera
// motion: spin, pan, strafe, zoom, tilt and free look, with inertia after a
// gesture is released.
package controller

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

var (
	// ErrMissingScene is returned when the controller has no scene or the
	// scene has no camera.
	ErrMissingScene = errors.New("controller: scene is required")

	// ErrMissingCanvas is returned when the scene has no canvas.
	ErrMissingCanvas = errors.New("controller: scene canvas is required")

	// ErrMissingEllipsoid is returned when the scene has neither a globe nor
	// a map projection ellipsoid.
	ErrMissingEllipsoid = errors.New("controller: scene ellipsoid is required")
)

// Scene is what the controller reads each frame.
type Scene interface {
	Camera() camera.Camera
	Canvas() camera.Canvas
	PixelRatio() float64
	DrawingBufferWidth() int
	DrawingBufferHeight() int

	// GlobeHeight returns the terrain height below the camera, if known.
	GlobeHeight() (float64, bool)

	// CameraUnderground reports whether the camera is below the terrain surface.
	CameraUnderground() bool

	// Globe returns the pickable globe, or a nil interface when there is none.
	Globe() Globe

	// Ellipsoid is the map projection ellipsoid used when there is no globe.
	Ellipsoid() *ellipsoid.Ellipsoid

	// PickPosition returns the depth-buffer position under windowPosition.
	// Scenes without depth picking return false.
	PickPosition(windowPosition r2.Point) (r3.Vector, bool)
}

// Globe is a pickable surface with an ellipsoid.
type Globe interface {
	Ellipsoid() *ellipsoid.Ellipsoid

	// PickWorldCoordinates returns the first point where ray hits the rendered
	// surface.
	//
	// Parameters:
	//   - ray: world-space pick ray
	//   - scene: the scene being picked
	//   - cullBackFaces: false when picking from below the surface
	//
	// Returns:
	//   - r3.Vector: the world-space hit
	//   - bool: false when nothing was hit
	PickWorldCoordinates(ray intersect.Ray, scene Scene, cullBackFaces bool) (r3.Vector, bool)
}

// ScreenSpaceCameraController moves the scene camera in response to mouse,
// wheel and pinch gestures. Feed raw events into Aggregator and call Update
// once per frame.
type ScreenSpaceCameraController interface {
	// Update applies every gesture aggregated since the last call to the
	// camera, then resets the aggregator for the next frame.
	Update()

	// Aggregator returns the event aggregator gestures are recorded into.
	//
	// Returns:
	//   - input.CameraEventAggregator: the aggregator owned by the controller
	Aggregator() input.CameraEventAggregator

	// EnableInputs reports whether gestures move the camera.
	EnableInputs() bool

	// SetEnableInputs turns all gesture handling on or off. Gestures keep
	// being aggregated while disabled.
	SetEnableInputs(enabled bool)
}

// gestureMode is the behavior latched when a spin or tilt gesture starts. It
// is kept while the gesture's start position stays the same.
type gestureMode int

const (
	modeNone gestureMode = iota
	modeLooking
	modeRotating
	modeStrafing
	modeTiltOnEllipsoid
)

type inertiaKind int

const (
	inertiaSpin inertiaKind = iota
	inertiaTranslate
	inertiaZoom
	inertiaTilt

	inertiaKindCount
)

// noInertia marks a binding that never coasts.
const noInertia inertiaKind = -1

// inertiaMaxClickTimeThreshold is the longest press, in seconds, that still
// coasts after release.
const inertiaMaxClickTimeThreshold = 0.4

// inertiaDisablers lists the inertial motions a gesture cancels when it moves.
var inertiaDisablers = map[inertiaKind][]inertiaKind{
	inertiaZoom: {inertiaSpin, inertiaTranslate, inertiaTilt},
	inertiaTilt: {inertiaSpin, inertiaTranslate},
}

type inertiaState struct {
	startPosition r2.Point
	endPosition   r2.Point
	motion        r2.Point
	enabled       bool
}

// action applies one gesture movement. inertial is true when the movement is
// replayed from a released gesture.
type action func(startPosition r2.Point, movement input.Movement, inertial bool)

const (
	minimumUndergroundPickDistance = 2000.0
	maximumUndergroundPickDistance = 10000.0
)

// screenSpaceCameraController is the implementation of ScreenSpaceCameraController.
type screenSpaceCameraController struct {
	mu sync.Mutex

	scene      Scene
	aggregator input.CameraEventAggregator
	now        func() time.Time

	enableInputs    bool
	enableTranslate bool
	enableZoom      bool
	enableRotate    bool
	enableTilt      bool
	enableLook      bool

	inertiaSpin float64
	inertiaZoom float64

	maximumMovementRatio float64
	minimumZoomDistance  float64
	maximumZoomDistance  float64

	zoomEventTypes   []input.EventKey
	rotateEventTypes []input.EventKey
	tiltEventTypes   []input.EventKey
	lookEventTypes   []input.EventKey

	minimumPickingTerrainHeight              float64
	minimumPickingTerrainDistanceWithInertia float64
	minimumCollisionTerrainHeight            float64
	minimumTrackBallHeight                   float64
	enableCollisionDetection                 bool

	zoomFactor        float64
	minimumZoomRate   float64
	maximumZoomRate   float64
	minimumRotateRate float64
	maximumRotateRate float64

	// refreshed at the start of every Update
	globe                     Globe
	ellipsoid                 *ellipsoid.Ellipsoid
	cameraUnderground         bool
	rotateFactor              float64
	rotateRateRangeAdjustment float64
	adjustedHeightForTerrain  bool

	mode gestureMode

	rotateMousePosition    r2.Point
	rotateStartPosition    r3.Vector
	strafeStartPosition    r3.Vector
	strafeEndMousePosition r2.Point

	tiltCenterMousePosition r2.Point
	tiltCenter              r3.Vector

	zoomMouseStart       r2.Point
	zoomWorldPosition    r3.Vector
	useZoomWorldPosition bool
	zoomingOnVector      bool
	rotatingZoom         bool
	zoomingUnderground   bool

	// distance to the surface at the last zoom pick
	lastZoomPickDistance float64

	panLastMousePosition r2.Point
	panLastWorldPosition r3.Vector

	inertia [inertiaKindCount]*inertiaState

	warned map[string]bool
}

var _ ScreenSpaceCameraController = &screenSpaceCameraController{}

// NewScreenSpaceCameraController creates a controller for the scene's camera.
// Unless WithAggregator is given, an aggregator is created on the scene canvas.
//
// Parameters:
//   - scene: the scene whose camera is driven
//   - options: functional options to configure the controller
//
// Returns:
//   - ScreenSpaceCameraController: the newly created controller
//   - error: ErrMissingScene, ErrMissingCanvas or ErrMissingEllipsoid
func NewScreenSpaceCameraController(scene Scene, options ...ScreenSpaceCameraControllerOption) (ScreenSpaceCameraController, error) {
	if scene == nil {
		return nil, ErrMissingScene
	}
	if scene.Camera() == nil {
		return nil, fmt.Errorf("%w: scene has no camera", ErrMissingScene)
	}
	if scene.Canvas() == nil {
		return nil, ErrMissingCanvas
	}
	globe := scene.Globe()
	if globe == nil && scene.Ellipsoid() == nil {
		return nil, ErrMissingEllipsoid
	}

	c := &screenSpaceCameraController{
		scene: scene,
		now:   time.Now,

		enableInputs:    true,
		enableTranslate: true,
		enableZoom:      true,
		enableRotate:    true,
		enableTilt:      true,
		enableLook:      true,

		inertiaSpin: 0.9,
		inertiaZoom: 0.8,

		maximumMovementRatio: 0.1,
		minimumZoomDistance:  1.0,
		maximumZoomDistance:  math.Inf(1),

		zoomEventTypes:   []input.EventKey{input.RightDrag.Key(), input.Wheel.Key(), input.Pinch.Key()},
		rotateEventTypes: []input.EventKey{input.LeftDrag.Key()},
		lookEventTypes:   []input.EventKey{input.LeftDrag.With(input.ModifierShift)},
		tiltEventTypes: []input.EventKey{
			input.MiddleDrag.Key(),
			input.Pinch.Key(),
			input.LeftDrag.With(input.ModifierCtrl),
			input.RightDrag.With(input.ModifierCtrl),
		},

		minimumPickingTerrainHeight:              150000.0,
		minimumPickingTerrainDistanceWithInertia: 4000.0,
		minimumCollisionTerrainHeight:            15000.0,
		minimumTrackBallHeight:                   7500000.0,
		enableCollisionDetection:                 true,

		zoomFactor:        5.0,
		minimumZoomRate:   20.0,
		maximumZoomRate:   5906376272000.0,
		minimumRotateRate: 1.0 / 5000.0,
		maximumRotateRate: 1.77,

		rotateMousePosition:     r2.Point{X: -1, Y: -1},
		tiltCenterMousePosition: r2.Point{X: -1, Y: -1},
		zoomMouseStart:          r2.Point{X: -1, Y: -1},

		warned: make(map[string]bool),
	}

	for _, option := range options {
		option(c)
	}

	if c.aggregator == nil {
		aggregator, err := input.NewCameraEventAggregator(scene.Canvas(), input.WithClock(c.now))
		if err != nil {
			return nil, fmt.Errorf("failed to create event aggregator: %w", err)
		}
		c.aggregator = aggregator
	}

	if globe == nil {
		log.Printf("[ScreenSpaceCameraController] Scene has no globe, picking falls back to the ellipsoid")
	}
	return c, nil
}

func (c *screenSpaceCameraController) Aggregator() input.CameraEventAggregator {
	return c.aggregator
}

func (c *screenSpaceCameraController) EnableInputs() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enableInputs
}

func (c *screenSpaceCameraController) SetEnableInputs(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enableInputs = enabled
}

func (c *screenSpaceCameraController) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.aggregator.Reset()

	cam := c.scene.Camera()
	if cam.Transform() != mgl64.Ident4() {
		c.globe = nil
		c.ellipsoid = ellipsoid.UnitSphere
	} else {
		c.globe = c.scene.Globe()
		if c.globe != nil {
			c.ellipsoid = c.globe.Ellipsoid()
		} else {
			c.ellipsoid = c.scene.Ellipsoid()
		}
	}
	if c.ellipsoid == nil {
		c.warnOnce("ellipsoid", "No ellipsoid available, skipping frame")
		return
	}

	c.cameraUnderground = c.globe != nil && c.scene.CameraUnderground()

	radius := c.ellipsoid.MaximumRadius()
	c.rotateFactor = 1.0 / radius
	c.rotateRateRangeAdjustment = radius
	c.adjustedHeightForTerrain = false

	previousPosition := cam.PositionWC()
	previousDirection := cam.DirectionWC()

	c.reactToInput(c.enableRotate, c.rotateEventTypes, c.spin3D, c.inertiaSpin, inertiaSpin)
	c.reactToInput(c.enableZoom, c.zoomEventTypes, c.zoom3D, c.inertiaZoom, inertiaZoom)
	c.reactToInput(c.enableTilt, c.tiltEventTypes, c.tilt3D, c.inertiaSpin, inertiaTilt)
	c.reactToInput(c.enableLook, c.lookEventTypes, c.freeLook, 1, noInertia)

	if c.enableCollisionDetection && !c.adjustedHeightForTerrain {
		if cam.PositionWC() != previousPosition || cam.DirectionWC() != previousDirection {
			c.adjustHeightForTerrain()
		}
	}
}

// reactToInput runs act for every binding that moved this frame, or replays
// its inertia when the binding was released.
func (c *screenSpaceCameraController) reactToInput(enabled bool, keys []input.EventKey, act action, inertiaConstant float64, kind inertiaKind) {
	for _, key := range keys {
		if !c.enableInputs || !enabled {
			continue
		}
		if c.aggregator.IsMoving(key) {
			act(c.aggregator.GetStartMousePosition(key), c.aggregator.GetMovement(key), false)
			c.activateInertia(kind)
		} else if inertiaConstant < 1.0 {
			c.maintainInertia(key, inertiaConstant, act, kind)
		}
	}
}

func (c *screenSpaceCameraController) activateInertia(kind inertiaKind) {
	if kind == noInertia {
		return
	}
	if state := c.inertia[kind]; state != nil {
		state.enabled = true
	}
	for _, other := range inertiaDisablers[kind] {
		if state := c.inertia[other]; state != nil {
			state.enabled = false
		}
	}
}

// maintainInertia keeps a short, released gesture moving with an
// exponentially decaying copy of its last movement.
func (c *screenSpaceCameraController) maintainInertia(key input.EventKey, decayCoefficient float64, act action, kind inertiaKind) {
	if kind == noInertia {
		return
	}
	state := c.inertia[kind]
	if state == nil {
		state = &inertiaState{enabled: true}
		c.inertia[kind] = state
	}

	pressed := c.aggregator.GetButtonPressTime(key)
	released := c.aggregator.GetButtonReleaseTime(key)
	if pressed.IsZero() || released.IsZero() {
		return
	}
	if released.Sub(pressed).Seconds() >= inertiaMaxClickTimeThreshold {
		return
	}

	d := common.Decay(c.now().Sub(released).Seconds(), decayCoefficient)
	last, ok := c.aggregator.GetLastMovement(key)
	if !ok || sameMousePosition(last) || !state.enabled {
		return
	}

	state.motion = last.Delta().Mul(0.5)
	state.startPosition = last.StartPosition
	state.endPosition = state.startPosition.Add(state.motion.Mul(d))

	if math.IsNaN(state.endPosition.X) || math.IsNaN(state.endPosition.Y) ||
		state.endPosition.Sub(state.startPosition).Norm() < 0.5 {
		return
	}

	if !c.aggregator.IsButtonDown(key) {
		movement := input.Movement{StartPosition: state.startPosition, EndPosition: state.endPosition}
		act(c.aggregator.GetStartMousePosition(key), movement, true)
	}
}

// pickGlobe returns the nearer of the depth pick and the globe ray pick.
func (c *screenSpaceCameraController) pickGlobe(cam camera.Camera, windowPosition r2.Point) (r3.Vector, bool) {
	if c.globe == nil {
		return r3.Vector{}, false
	}

	eye := cam.PositionWC()
	depthIntersection, depthOK := c.scene.PickPosition(windowPosition)
	ray := cam.GetPickRay(windowPosition)
	rayIntersection, rayOK := c.globe.PickWorldCoordinates(ray, c.scene, !c.cameraUnderground)

	pickDistance := math.Inf(1)
	if depthOK {
		pickDistance = depthIntersection.Distance(eye)
	}
	rayDistance := math.Inf(1)
	if rayOK {
		rayDistance = rayIntersection.Distance(eye)
	}

	if pickDistance < rayDistance {
		return depthIntersection, true
	}
	return rayIntersection, rayOK
}

// adjustHeightForTerrain lifts the camera to minimumZoomDistance above the
// terrain when it has sunk below it.
func (c *screenSpaceCameraController) adjustHeightForTerrain() {
	c.adjustedHeightForTerrain = true

	globe := c.scene.Globe()
	if globe == nil {
		return
	}
	cam := c.scene.Camera()
	ell := globe.Ellipsoid()

	transform := cam.Transform()
	local := transform != mgl64.Ident4()
	var mag float64
	if local {
		mag = cam.Position().Norm()
		cam.SetTransform(mgl64.Ident4())
	}

	heightUpdated := false
	cartographic, ok := ell.CartesianToCartographic(cam.Position())
	if ok && cartographic.Height < c.minimumCollisionTerrainHeight {
		if globeHeight, known := c.scene.GlobeHeight(); known {
			height := globeHeight + c.minimumZoomDistance
			if cartographic.Height < height {
				cartographic.Height = height
				cam.SetPosition(ell.CartographicToCartesian(cartographic))
				heightUpdated = true
			}
		}
	}

	if !local {
		return
	}
	cam.SetTransform(transform)
	if heightUpdated {
		position := cam.Position().Normalize()
		direction := position.Mul(-1)
		right := direction.Cross(cam.Up())
		cam.SetPosition(position.Mul(math.Max(mag, c.minimumZoomDistance)))
		cam.SetDirection(direction)
		cam.SetRight(right)
		cam.SetUp(right.Cross(direction))
	}
}

// distanceFromSurface is the camera's height above the terrain, or above the
// ellipsoid when the terrain height is unknown.
func (c *screenSpaceCameraController) distanceFromSurface() float64 {
	height := 0.0
	if cartographic, ok := c.ellipsoid.CartesianToCartographic(c.scene.Camera().Position()); ok {
		height = cartographic.Height
	}
	globeHeight, _ := c.scene.GlobeHeight()
	return math.Abs(globeHeight - height)
}

// undergroundPickPoint pulls a pick made from below the surface towards the
// eye so gestures pivot around a nearby point.
func (c *screenSpaceCameraController) undergroundPickPoint(ray intersect.Ray, picked r3.Vector) r3.Vector {
	distanceFromSurface := c.distanceFromSurface()
	distance := ray.Origin.Distance(picked)
	maximumDistance := math.Min(math.Max(distanceFromSurface*5.0, minimumUndergroundPickDistance), maximumUndergroundPickDistance)
	if distance > maximumDistance {
		distance = math.Min(distance, distanceFromSurface/5.0)
		distance = math.Max(distance, 100.0)
	}
	return ray.Point(distance)
}

// withLocalFrame runs fn with picking disabled and rotation rates scaled for a
// unit sphere, as used while the camera sits in a local east-north-up frame.
func (c *screenSpaceCameraController) withLocalFrame(fn func()) {
	oldGlobe, oldEllipsoid := c.globe, c.ellipsoid
	c.globe = nil
	c.ellipsoid = ellipsoid.UnitSphere
	c.rotateFactor = 1.0
	c.rotateRateRangeAdjustment = 1.0

	fn()

	c.globe, c.ellipsoid = oldGlobe, oldEllipsoid
	radius := oldEllipsoid.MaximumRadius()
	c.rotateFactor = 1.0 / radius
	c.rotateRateRangeAdjustment = radius
}

func (c *screenSpaceCameraController) canvasCenter() r2.Point {
	canvas := c.scene.Canvas()
	return r2.Point{X: float64(canvas.Width()) / 2, Y: float64(canvas.Height()) / 2}
}

// warnOnce logs a degraded frame once per reason.
func (c *screenSpaceCameraController) warnOnce(reason, format string, args ...any) {
	if c.warned[reason] {
		return
	}
	c.warned[reason] = true
	log.Printf("[ScreenSpaceCameraController] "+format, args...)
}

func sameMousePosition(m input.Movement) bool {
	const epsilon = 1e-14
	return math.Abs(m.StartPosition.X-m.EndPosition.X) <= epsilon &&
		math.Abs(m.StartPosition.Y-m.EndPosition.Y) <= epsilon
}

// sphere returns a sphere of the given radius, or fallback when the radius is
// not usable.
func sphere(radius float64, fallback *ellipsoid.Ellipsoid) *ellipsoid.Ellipsoid {
	s, err := ellipsoid.NewEllipsoid(radius, radius, radius)
	if err != nil {
		return fallback
	}
	return s
}

func restoreConstrainedAxis(cam camera.Camera, axis r3.Vector, ok bool) {
	if ok {
		cam.SetConstrainedAxis(axis)
		return
	}
	cam.ClearConstrainedAxis()
}
