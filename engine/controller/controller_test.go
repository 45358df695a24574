package controller

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

type fakeCanvas struct{ w, h int }

func (c fakeCanvas) Width() int  { return c.w }
func (c fakeCanvas) Height() int { return c.h }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeGlobe picks the bare WGS84 ellipsoid.
type fakeGlobe struct{}

func (fakeGlobe) Ellipsoid() *ellipsoid.Ellipsoid { return ellipsoid.WGS84 }

func (fakeGlobe) PickWorldCoordinates(ray intersect.Ray, _ Scene, _ bool) (r3.Vector, bool) {
	return intersect.RayEllipsoidPoint(ray, ellipsoid.WGS84)
}

type fakeScene struct {
	camera      camera.Camera
	canvas      camera.Canvas
	globe       Globe
	ellipsoid   *ellipsoid.Ellipsoid
	globeHeight *float64
	underground bool

	depthPick    r3.Vector
	hasDepthPick bool
}

func (s *fakeScene) Camera() camera.Camera           { return s.camera }
func (s *fakeScene) Canvas() camera.Canvas           { return s.canvas }
func (s *fakeScene) PixelRatio() float64             { return 1 }
func (s *fakeScene) DrawingBufferWidth() int         { return s.canvas.Width() }
func (s *fakeScene) DrawingBufferHeight() int        { return s.canvas.Height() }
func (s *fakeScene) CameraUnderground() bool         { return s.underground }
func (s *fakeScene) Ellipsoid() *ellipsoid.Ellipsoid { return s.ellipsoid }

func (s *fakeScene) Globe() Globe {
	if s.globe == nil {
		return nil
	}
	return s.globe
}

func (s *fakeScene) GlobeHeight() (float64, bool) {
	if s.globeHeight == nil {
		return 0, false
	}
	return *s.globeHeight, true
}

func (s *fakeScene) PickPosition(r2.Point) (r3.Vector, bool) {
	return s.depthPick, s.hasDepthPick
}

var radius = ellipsoid.WGS84.MaximumRadius()

func newTestScene(t *testing.T, options ...camera.CameraBuilderOption) *fakeScene {
	t.Helper()
	canvas := fakeCanvas{w: 100, h: 100}
	cam, err := camera.NewCamera(canvas, options...)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return &fakeScene{camera: cam, canvas: canvas, ellipsoid: ellipsoid.WGS84}
}

func newTestController(t *testing.T, scene *fakeScene, options ...ScreenSpaceCameraControllerOption) (*screenSpaceCameraController, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	options = append([]ScreenSpaceCameraControllerOption{WithClock(clock.now)}, options...)
	c, err := NewScreenSpaceCameraController(scene, options...)
	if err != nil {
		t.Fatalf("NewScreenSpaceCameraController: %v", err)
	}
	return c.(*screenSpaceCameraController), clock
}

func vectorsClose(a, b r3.Vector, epsilon float64) bool {
	return common.VectorEqualsEpsilon(a, b, epsilon)
}

type pose struct {
	position, direction, up r3.Vector
}

func poseOf(cam camera.Camera) pose {
	return pose{position: cam.Position(), direction: cam.Direction(), up: cam.Up()}
}

func drag(agg input.CameraEventAggregator, button input.EventType, modifier input.Modifier, from, to r2.Point) {
	agg.MouseDown(button, from, modifier)
	agg.MouseMove(to, modifier)
}

func TestNewScreenSpaceCameraControllerErrors(t *testing.T) {
	valid := newTestScene(t)

	tests := []struct {
		name  string
		scene Scene
		want  error
	}{
		{name: "nil scene", scene: nil, want: ErrMissingScene},
		{name: "no camera", scene: &fakeScene{canvas: valid.canvas, ellipsoid: ellipsoid.WGS84}, want: ErrMissingScene},
		{name: "no canvas", scene: &fakeScene{camera: valid.camera, ellipsoid: ellipsoid.WGS84}, want: ErrMissingCanvas},
		{name: "no ellipsoid", scene: &fakeScene{camera: valid.camera, canvas: valid.canvas}, want: ErrMissingEllipsoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.scene == nil {
				_, err = NewScreenSpaceCameraController(nil)
			} else {
				_, err = NewScreenSpaceCameraController(tt.scene)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestZeroMovementSpinLeavesCameraUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		options  []camera.CameraBuilderOption
		wantMode gestureMode
	}{
		{name: "pan over the globe", wantMode: modeNone},
		{
			name:     "trackball looking away",
			options:  []camera.CameraBuilderOption{camera.WithDirection(r3.Vector{X: 1})},
			wantMode: modeRotating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene(t, tt.options...)
			c, _ := newTestController(t, scene)
			before := poseOf(scene.camera)

			drag(c.Aggregator(), input.LeftDrag, input.ModifierNone, r2.Point{X: 50, Y: 50}, r2.Point{X: 50, Y: 50})
			c.Update()

			if after := poseOf(scene.camera); after != before {
				t.Errorf("pose changed: %+v -> %+v", before, after)
			}
			if c.mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", c.mode, tt.wantMode)
			}
			if c.rotateMousePosition != (r2.Point{X: 50, Y: 50}) {
				t.Errorf("rotateMousePosition = %v", c.rotateMousePosition)
			}
		})
	}
}

func TestSpinPanKeepsGrabbedPointUnderCursor(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene)

	grabbed, ok := scene.camera.PickEllipsoid(r2.Point{X: 50, Y: 50}, nil)
	if !ok {
		t.Fatal("the screen center should cover the globe")
	}

	drag(c.Aggregator(), input.LeftDrag, input.ModifierNone, r2.Point{X: 50, Y: 50}, r2.Point{X: 60, Y: 50})
	c.Update()

	got, ok := scene.camera.WorldToWindowCoordinates(grabbed)
	if !ok {
		t.Fatal("grabbed point should stay in front of the camera")
	}
	if math.Abs(got.X-60) > common.Epsilon6 || math.Abs(got.Y-50) > common.Epsilon6 {
		t.Errorf("grabbed point at %v, want (60, 50)", got)
	}
	if d := scene.camera.Position().Norm(); math.Abs(d-2.5*radius) > common.Epsilon3 {
		t.Errorf("camera distance = %v, want %v", d, 2.5*radius)
	}
}

func TestSpinWithoutTranslateRotates(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene, WithEnableTranslate(false))

	drag(c.Aggregator(), input.LeftDrag, input.ModifierNone, r2.Point{X: 50, Y: 50}, r2.Point{X: 40, Y: 50})
	c.Update()

	// rotate rate (2.5R - R) / R over a tenth of the canvas width
	angle := 1.5 * 0.1 * 2 * math.Pi
	want := r3.Vector{X: 2.5 * radius * math.Cos(angle), Y: 2.5 * radius * math.Sin(angle)}
	if got := scene.camera.Position(); !vectorsClose(got, want, common.Epsilon3) {
		t.Errorf("position = %v, want %v", got, want)
	}
	if c.mode != modeRotating {
		t.Errorf("mode = %v, want modeRotating", c.mode)
	}
}

func TestWheelZoom(t *testing.T) {
	height := 1.5 * radius

	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		// the movement ratio is capped at 0.1 of the canvas
		{name: "in", delta: 120, want: 2.5*radius - 5*(height-1)*0.1},
		{name: "out", delta: -60, want: 2.5*radius + 5*height*(7.5*60*math.Pi/180)/100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene(t)
			c, _ := newTestController(t, scene)

			c.Aggregator().WheelScroll(tt.delta, input.ModifierNone)
			c.Update()

			got := scene.camera.Position()
			if math.Abs(got.X-tt.want) > common.Epsilon3 || got.Y != 0 || got.Z != 0 {
				t.Errorf("position = %v, want (%v, 0, 0)", got, tt.want)
			}
		})
	}
}

func TestZoomInertiaDecays(t *testing.T) {
	scene := newTestScene(t)
	c, clock := newTestController(t, scene)

	c.Aggregator().WheelScroll(120, input.ModifierNone)
	c.Update()
	afterScroll := scene.camera.Position().X

	clock.advance(50 * time.Millisecond)
	c.Update()
	afterCoast := scene.camera.Position().X
	if afterCoast >= afterScroll {
		t.Fatalf("inertia should keep zooming in: %v -> %v", afterScroll, afterCoast)
	}

	clock.advance(10 * time.Second)
	c.Update()
	if got := scene.camera.Position().X; got != afterCoast {
		t.Errorf("inertia should have died out, moved %v -> %v", afterCoast, got)
	}
}

func TestInertiaDisablers(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene)

	for kind := range c.inertia {
		c.inertia[kind] = &inertiaState{enabled: true}
	}

	c.activateInertia(inertiaTilt)
	if c.inertia[inertiaSpin].enabled || c.inertia[inertiaTranslate].enabled {
		t.Error("tilt should stop spin and translate inertia")
	}
	if !c.inertia[inertiaZoom].enabled || !c.inertia[inertiaTilt].enabled {
		t.Error("tilt should leave zoom inertia and enable its own")
	}

	c.activateInertia(inertiaZoom)
	if c.inertia[inertiaTilt].enabled {
		t.Error("zoom should stop tilt inertia")
	}

	c.activateInertia(inertiaSpin)
	if !c.inertia[inertiaSpin].enabled || !c.inertia[inertiaZoom].enabled {
		t.Error("spin disables nothing and re-enables itself")
	}
}

func TestTiltOnEllipsoidPivotsAroundCenter(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene)
	center := r3.Vector{X: radius}

	drag(c.Aggregator(), input.MiddleDrag, input.ModifierNone, r2.Point{X: 50, Y: 50}, r2.Point{X: 50, Y: 40})
	c.Update()

	if c.mode != modeTiltOnEllipsoid {
		t.Fatalf("mode = %v, want modeTiltOnEllipsoid", c.mode)
	}

	position := scene.camera.Position()
	toCenter := center.Sub(position)
	if d := toCenter.Norm(); math.Abs(d-1.5*radius) > common.Epsilon3 {
		t.Errorf("distance to pivot = %v, want %v", d, 1.5*radius)
	}
	if !vectorsClose(scene.camera.Direction(), toCenter.Normalize(), common.Epsilon9) {
		t.Errorf("camera no longer looks at the pivot: %v", scene.camera.Direction())
	}

	wantTilt := 1.77 * 0.1 * math.Pi
	if got := position.Sub(center).Angle(r3.Vector{X: 1}).Radians(); math.Abs(got-wantTilt) > common.Epsilon9 {
		t.Errorf("tilt = %v, want %v", got, wantTilt)
	}
}

func TestLookKeepsPosition(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene)
	before := poseOf(scene.camera)

	drag(c.Aggregator(), input.LeftDrag, input.ModifierShift, r2.Point{X: 50, Y: 50}, r2.Point{X: 60, Y: 50})
	c.Update()

	after := poseOf(scene.camera)
	if after.position != before.position {
		t.Errorf("position moved: %v -> %v", before.position, after.position)
	}
	if vectorsClose(after.direction, before.direction, common.Epsilon6) {
		t.Error("direction should turn")
	}
	if !vectorsClose(after.up, before.up, common.Epsilon12) {
		t.Errorf("a horizontal look should keep up, got %v", after.up)
	}
}

func TestDisabledInputsIgnoreGestures(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene, WithEnableInputs(false))
	before := poseOf(scene.camera)

	drag(c.Aggregator(), input.LeftDrag, input.ModifierNone, r2.Point{X: 50, Y: 50}, r2.Point{X: 70, Y: 60})
	c.Aggregator().WheelScroll(120, input.ModifierNone)
	c.Update()

	if after := poseOf(scene.camera); after != before {
		t.Errorf("pose changed with inputs disabled: %+v -> %+v", before, after)
	}

	c.SetEnableInputs(true)
	if !c.EnableInputs() {
		t.Error("SetEnableInputs(true) did not stick")
	}
}

func TestUpdateResetsAggregator(t *testing.T) {
	scene := newTestScene(t)
	c, _ := newTestController(t, scene)

	drag(c.Aggregator(), input.LeftDrag, input.ModifierNone, r2.Point{X: 50, Y: 50}, r2.Point{X: 55, Y: 50})
	c.Update()

	if c.Aggregator().IsMoving(input.LeftDrag.Key()) {
		t.Error("movement should be consumed by Update")
	}
}

func TestAdjustHeightForTerrain(t *testing.T) {
	cartographic := ellipsoid.CartographicFromDegrees(10, 20, 100)
	terrain := 500.0

	tests := []struct {
		name        string
		height      float64
		globeHeight *float64
		want        float64
	}{
		{name: "below terrain", height: 100, globeHeight: &terrain, want: terrain + 1},
		{name: "terrain unknown", height: 100, want: 100},
		{name: "above collision height", height: 20000, globeHeight: &terrain, want: 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartographic.Height = tt.height
			scene := newTestScene(t, camera.WithPosition(ellipsoid.WGS84.CartographicToCartesian(cartographic)))
			scene.globe = fakeGlobe{}
			scene.globeHeight = tt.globeHeight
			c, _ := newTestController(t, scene)

			c.adjustHeightForTerrain()

			got, ok := scene.camera.PositionCartographic()
			if !ok || math.Abs(got.Height-tt.want) > common.Epsilon6 {
				t.Errorf("height = %v, want %v", got.Height, tt.want)
			}
			if !c.adjustedHeightForTerrain {
				t.Error("adjustedHeightForTerrain should be set")
			}
		})
	}
}

func TestPickGlobePrefersNearerHit(t *testing.T) {
	scene := newTestScene(t)
	scene.globe = fakeGlobe{}
	c, _ := newTestController(t, scene)
	c.globe = scene.globe

	center := r2.Point{X: 50, Y: 50}

	got, ok := c.pickGlobe(scene.camera, center)
	if !ok || !vectorsClose(got, r3.Vector{X: radius}, common.Epsilon6) {
		t.Errorf("globe pick = %v, %v; want (R, 0, 0)", got, ok)
	}

	scene.depthPick = r3.Vector{X: radius + 1000}
	scene.hasDepthPick = true
	if got, _ := c.pickGlobe(scene.camera, center); got != scene.depthPick {
		t.Errorf("nearer depth pick should win, got %v", got)
	}

	scene.depthPick = r3.Vector{X: radius - 1000}
	if got, _ := c.pickGlobe(scene.camera, center); !vectorsClose(got, r3.Vector{X: radius}, common.Epsilon6) {
		t.Errorf("farther depth pick should lose, got %v", got)
	}
}

// lowCameraOverEquator places the camera height meters above (R, 0, 0),
// heading north and pitched down by pitch radians.
func lowCameraOverEquator(height, pitch float64) []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithPosition(r3.Vector{X: radius + height}),
		camera.WithDirection(r3.Vector{X: -math.Sin(pitch), Z: math.Cos(pitch)}),
		camera.WithUp(r3.Vector{X: math.Cos(pitch), Z: math.Sin(pitch)}),
	}
}

func TestSpinStrafesOnTangentGrab(t *testing.T) {
	tests := []struct {
		name string
		path []r2.Point
	}{
		{name: "single frame", path: []r2.Point{{X: 60, Y: 55}}},
		{name: "continued over frames", path: []r2.Point{{X: 60, Y: 55}, {X: 70, Y: 60}, {X: 65, Y: 58}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene(t, lowCameraOverEquator(1000, 2*math.Pi/180)...)
			scene.globe = fakeGlobe{}
			c, _ := newTestController(t, scene)

			start := r2.Point{X: 50, Y: 50}
			grabbed, ok := intersect.RayEllipsoidPoint(scene.camera.GetPickRay(start), ellipsoid.WGS84)
			if !ok {
				t.Fatal("the shallow view should still reach the surface")
			}
			before := poseOf(scene.camera)

			c.Aggregator().MouseDown(input.LeftDrag, start, input.ModifierNone)
			for _, p := range tt.path {
				c.Aggregator().MouseMove(p, input.ModifierNone)
				c.Update()
			}

			if c.mode != modeStrafing {
				t.Fatalf("mode = %v, want modeStrafing", c.mode)
			}

			after := poseOf(scene.camera)
			if after.direction != before.direction || after.up != before.up {
				t.Errorf("strafing should not turn the camera: %+v -> %+v", before, after)
			}
			moved := after.position.Sub(before.position)
			if moved.Norm() < 1 {
				t.Fatalf("camera barely moved: %v", moved)
			}
			if along := math.Abs(moved.Dot(before.direction)); along > common.Epsilon6*moved.Norm() {
				t.Errorf("camera left its view plane by %v m", along)
			}

			end := tt.path[len(tt.path)-1]
			got, ok := scene.camera.WorldToWindowCoordinates(grabbed)
			if !ok {
				t.Fatal("grabbed point should stay in front of the camera")
			}
			if math.Abs(got.X-end.X) > common.Epsilon4 || math.Abs(got.Y-end.Y) > common.Epsilon4 {
				t.Errorf("grabbed point at %v, want %v", got, end)
			}
		})
	}
}

func TestWheelZoomAlongArcTowardsCursor(t *testing.T) {
	const height = 100000.0
	scene := newTestScene(t, camera.WithPosition(r3.Vector{X: radius + height}))
	scene.globe = fakeGlobe{}
	c, _ := newTestController(t, scene)

	cursor := r2.Point{X: 70, Y: 50}
	target, ok := intersect.RayEllipsoidPoint(scene.camera.GetPickRay(cursor), ellipsoid.WGS84)
	if !ok {
		t.Fatal("cursor should be over the globe")
	}
	before := scene.camera.Position()

	c.Aggregator().MouseMove(cursor, input.ModifierNone)
	c.Aggregator().WheelScroll(120, input.ModifierNone)
	c.Update()

	if !c.useZoomWorldPosition || !vectorsClose(c.zoomWorldPosition, target, common.Epsilon6) {
		t.Fatalf("zoom target = %v (%v), want %v", c.zoomWorldPosition, c.useZoomWorldPosition, target)
	}
	if math.Abs(c.lastZoomPickDistance-height) > common.Epsilon6 {
		t.Errorf("lastZoomPickDistance = %v, want %v", c.lastZoomPickDistance, height)
	}

	// zoom factor times the distance to the surface, over the capped tenth of the canvas
	zoomed := 5 * (height - 1) * 0.1
	after := scene.camera.Position()
	if got, want := after.Norm(), before.Norm()-zoomed; math.Abs(got-want) > common.Epsilon3 {
		t.Errorf("distance from the center = %v, want %v", got, want)
	}
	if after.Y <= 0 || math.Abs(after.Z) > common.Epsilon6 {
		t.Errorf("camera should swing towards the cursor along the equator, at %v", after)
	}
	if after.Distance(target) >= before.Distance(target) {
		t.Errorf("distance to the target grew: %v -> %v", before.Distance(target), after.Distance(target))
	}
	if down := after.Normalize().Mul(-1); !vectorsClose(scene.camera.Direction(), down, common.Epsilon6) {
		t.Errorf("camera should keep looking straight down, direction %v", scene.camera.Direction())
	}
}

func TestNeedsZoomPick(t *testing.T) {
	tests := []struct {
		name         string
		height       float64
		inertial     bool
		lastDistance float64
		want         bool
	}{
		{name: "high gesture", height: 1000000, want: false},
		{name: "low gesture", height: 100000, want: true},
		{name: "inertia near the last pick", height: 1000000, inertial: true, lastDistance: 3000, want: true},
		{name: "inertia far from the last pick", height: 100, inertial: true, lastDistance: 100000, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t, newTestScene(t))
			c.lastZoomPickDistance = tt.lastDistance
			if got := c.needsZoomPick(tt.height, tt.inertial); got != tt.want {
				t.Errorf("needsZoomPick(%v, %v) = %v, want %v", tt.height, tt.inertial, got, tt.want)
			}
		})
	}
}

func TestTiltBelowCollisionHeightPivotsOnTerrain(t *testing.T) {
	const height = 5000.0
	zero := 0.0

	tests := []struct {
		name        string
		globeHeight *float64
	}{
		{name: "terrain unknown"},
		{name: "terrain at sea level", globeHeight: &zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene(t, camera.WithPosition(r3.Vector{X: radius + height}))
			scene.globe = fakeGlobe{}
			scene.globeHeight = tt.globeHeight
			c, _ := newTestController(t, scene)
			center := r3.Vector{X: radius}
			start := r2.Point{X: 50, Y: 50}

			drag(c.Aggregator(), input.MiddleDrag, input.ModifierNone, start, r2.Point{X: 50, Y: 40})
			c.Update()

			if c.mode == modeTiltOnEllipsoid {
				t.Fatal("a low camera should tilt about the terrain, not the ellipsoid")
			}
			if c.tiltCenterMousePosition != start || !vectorsClose(c.tiltCenter, center, common.Epsilon6) {
				t.Errorf("tilt center = %v at %v, want %v at %v", c.tiltCenter, c.tiltCenterMousePosition, center, start)
			}

			position := scene.camera.Position()
			if d := position.Distance(center); math.Abs(d-height) > common.Epsilon3 {
				t.Errorf("distance to pivot = %v, want %v", d, height)
			}
			wantTilt := 1.77 * 0.1 * math.Pi
			if got := position.Sub(center).Angle(r3.Vector{X: 1}).Radians(); math.Abs(got-wantTilt) > common.Epsilon6 {
				t.Errorf("tilt = %v, want %v", got, wantTilt)
			}

			cartographic, ok := scene.camera.PositionCartographic()
			if !ok || cartographic.Height <= c.minimumZoomDistance {
				t.Errorf("camera height %v should stay above the surface", cartographic.Height)
			}
			if cartographic.Height >= height {
				t.Errorf("tilting should lower the camera, height %v", cartographic.Height)
			}
		})
	}
}
