package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/golang/geo/r3"
)

type fakeCanvas struct{ w, h int }

func (c fakeCanvas) Width() int  { return c.w }
func (c fakeCanvas) Height() int { return c.h }

// hiDPICanvas reports two drawing buffer pixels per canvas pixel.
type hiDPICanvas struct{ fakeCanvas }

func (hiDPICanvas) PixelRatio() float64 { return 2 }

var radius = ellipsoid.WGS84.MaximumRadius()

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s, err := NewScene("test", fakeCanvas{w: 100, h: 100}, options...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestNewSceneDefaults(t *testing.T) {
	s := newTestScene(t)

	if !s.Active() {
		t.Error("scenes start active")
	}
	if s.Globe() == nil {
		t.Fatal("default scene should have a globe")
	}
	if s.Ellipsoid() != ellipsoid.WGS84 {
		t.Error("default ellipsoid should be WGS84")
	}
	if s.Renderer() != nil {
		t.Error("scene without WithRenderer should be headless")
	}
	if err := s.Render(); err != nil {
		t.Errorf("headless Render: %v", err)
	}
	if got := s.Camera().Position(); !common.VectorEqualsEpsilon(got, r3.Vector{X: 2.5 * radius}, common.Epsilon6) {
		t.Errorf("camera position = %v", got)
	}
}

func TestWithoutGlobe(t *testing.T) {
	s := newTestScene(t, WithoutGlobe())
	if s.Globe() != nil {
		t.Error("WithoutGlobe should leave a nil Globe")
	}
	if _, ok := s.GlobeHeight(); ok {
		t.Error("no globe means no terrain height")
	}
	if s.CameraUnderground() {
		t.Error("a scene without a globe is never underground")
	}
}

func TestEllipsoidGlobePick(t *testing.T) {
	globe := NewEllipsoidGlobe(ellipsoid.WGS84)

	tests := []struct {
		name          string
		origin        r3.Vector
		direction     r3.Vector
		cullBackFaces bool
		want          r3.Vector
		wantOK        bool
	}{
		{
			name:      "outside hits the near side",
			origin:    r3.Vector{X: 2 * radius},
			direction: r3.Vector{X: -1},
			want:      r3.Vector{X: radius},
			wantOK:    true,
		},
		{
			name:          "inside with culling misses",
			origin:        r3.Vector{X: radius - 1000},
			direction:     r3.Vector{X: 1},
			cullBackFaces: true,
		},
		{
			name:      "inside without culling hits the exit",
			origin:    r3.Vector{X: radius - 1000},
			direction: r3.Vector{X: 1},
			want:      r3.Vector{X: radius},
			wantOK:    true,
		},
		{
			name:      "pointing away",
			origin:    r3.Vector{X: 2 * radius},
			direction: r3.Vector{X: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := intersect.NewRay(tt.origin, tt.direction)
			got, ok := globe.PickWorldCoordinates(ray, nil, tt.cullBackFaces)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !common.VectorEqualsEpsilon(got, tt.want, common.Epsilon3) {
				t.Errorf("pick = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraUnderground(t *testing.T) {
	below := ellipsoid.WGS84.CartographicToCartesian(ellipsoid.CartographicFromDegrees(0, 0, -500))
	s := newTestScene(t, WithCameraOptions(camera.WithPosition(below)))
	if !s.CameraUnderground() {
		t.Error("camera below the ellipsoid should be underground")
	}
	if h, ok := s.GlobeHeight(); !ok || h != 0 {
		t.Errorf("GlobeHeight = %v, %v; want 0, true", h, ok)
	}

	if newTestScene(t).CameraUnderground() {
		t.Error("default camera is above the globe")
	}
}

func TestResizeUpdatesAspectRatio(t *testing.T) {
	s := newTestScene(t)
	s.Resize(200, 100)
	if got := s.Camera().Frustum().AspectRatio; got != 2 {
		t.Errorf("AspectRatio = %v, want 2", got)
	}
	s.Resize(0, 100)
	if got := s.Camera().Frustum().AspectRatio; got != 2 {
		t.Errorf("a zero size should be ignored, AspectRatio = %v", got)
	}
}

func TestUpdateDrivesCamera(t *testing.T) {
	s := newTestScene(t)
	before := s.Camera().Position()

	s.Controller().Aggregator().WheelScroll(120, input.ModifierNone)
	s.Update()

	after := s.Camera().Position()
	if after.Norm() >= before.Norm() {
		t.Errorf("wheel should zoom in: %v -> %v", before, after)
	}
	if math.Abs(after.Y) > common.Epsilon3 || math.Abs(after.Z) > common.Epsilon3 {
		t.Errorf("zooming at the center should stay on the X axis, got %v", after)
	}

	s.SetActive(false)
	if s.Active() {
		t.Error("SetActive(false) did not stick")
	}
}

func TestPixelRatio(t *testing.T) {
	tests := []struct {
		name    string
		canvas  camera.Canvas
		options []SceneBuilderOption
		want    float64
	}{
		{name: "plain canvas", canvas: fakeCanvas{w: 100, h: 100}, want: 1},
		{name: "canvas ratio", canvas: hiDPICanvas{fakeCanvas{w: 100, h: 100}}, want: 2},
		{name: "option wins", canvas: hiDPICanvas{fakeCanvas{w: 100, h: 100}}, options: []SceneBuilderOption{WithPixelRatio(3)}, want: 3},
		{name: "non-positive option defers", canvas: hiDPICanvas{fakeCanvas{w: 100, h: 100}}, options: []SceneBuilderOption{WithPixelRatio(0)}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScene("test", tt.canvas, tt.options...)
			if err != nil {
				t.Fatalf("NewScene: %v", err)
			}
			if got := s.PixelRatio(); got != tt.want {
				t.Errorf("PixelRatio = %v, want %v", got, tt.want)
			}
		})
	}
}
