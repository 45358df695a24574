package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/transforms"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

type fakeCanvas struct{ w, h int }

func (c fakeCanvas) Width() int  { return c.w }
func (c fakeCanvas) Height() int { return c.h }

var radius = ellipsoid.WGS84.MaximumRadius()

func newTestCamera(t *testing.T, options ...CameraBuilderOption) Camera {
	t.Helper()
	c, err := NewCamera(fakeCanvas{w: 100, h: 100}, options...)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return c
}

func assertVector(t *testing.T, name string, got, want r3.Vector, eps float64) {
	t.Helper()
	if !common.VectorEqualsEpsilon(got, want, eps) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNewCamera(t *testing.T) {
	if _, err := NewCamera(nil); !errors.Is(err, ErrMissingCanvas) {
		t.Fatalf("err = %v, want ErrMissingCanvas", err)
	}

	c := newTestCamera(t)
	assertVector(t, "position", c.Position(), r3.Vector{X: 2.5 * radius}, 0)
	assertVector(t, "right", c.Right(), r3.Vector{Y: 1}, common.Epsilon15)
	assertVector(t, "up", c.Up(), r3.Vector{Z: 1}, common.Epsilon15)
	if c.Frustum().AspectRatio != 1 {
		t.Errorf("aspect = %v, want the canvas ratio", c.Frustum().AspectRatio)
	}
}

func TestPickEllipsoid(t *testing.T) {
	c := newTestCamera(t)

	got, ok := c.PickEllipsoid(r2.Point{X: 50, Y: 50}, nil)
	if !ok {
		t.Fatal("center pixel should hit the globe")
	}
	assertVector(t, "pick", got, r3.Vector{X: radius}, common.Epsilon6)

	// a pixel in the corner of a 60° view from 2.5 radii misses
	if _, ok := c.PickEllipsoid(r2.Point{X: 0, Y: 0}, nil); ok {
		t.Error("corner pixel should miss the globe")
	}
}

func TestGetPickRayCorners(t *testing.T) {
	c := newTestCamera(t)

	ray := c.GetPickRay(r2.Point{X: 100, Y: 0})
	if math.Abs(ray.Direction.Norm()-1) > common.Epsilon14 {
		t.Errorf("direction is not unit length: %v", ray.Direction)
	}
	// top right pixel: towards +right (Y) and +up (Z)
	if ray.Direction.Y <= 0 || ray.Direction.Z <= 0 {
		t.Errorf("top-right ray = %v", ray.Direction)
	}
	tan30 := math.Tan(math.Pi / 6)
	if want := tan30 / math.Sqrt(1+2*tan30*tan30); math.Abs(ray.Direction.Z-want) > common.Epsilon12 {
		t.Errorf("vertical component = %v, want %v", ray.Direction.Z, want)
	}
}

func TestRotate(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(r3.Vector{Z: 1}, math.Pi/2)

	assertVector(t, "position", c.Position(), r3.Vector{Y: -2.5 * radius}, common.Epsilon6)
	assertVector(t, "direction", c.Direction(), r3.Vector{Y: 1}, common.Epsilon14)
	assertVector(t, "up", c.Up(), r3.Vector{Z: 1}, common.Epsilon14)
}

func TestLookKeepsPosition(t *testing.T) {
	c := newTestCamera(t)
	before := c.Position()
	c.LookLeft(0.3)
	c.LookUp(0.2)

	if c.Position() != before {
		t.Errorf("look moved the camera")
	}
	d, u, r := c.Direction(), c.Up(), c.Right()
	if math.Abs(d.Dot(u)) > common.Epsilon12 || math.Abs(d.Dot(r)) > common.Epsilon12 {
		t.Errorf("basis lost orthogonality: d=%v u=%v r=%v", d, u, r)
	}
}

func TestRotateVerticalClampsAtConstrainedAxis(t *testing.T) {
	c := newTestCamera(t, WithConstrainedAxis(r3.Vector{Z: 1}))

	c.RotateDown(math.Pi)
	p := c.Position().Normalize()
	angle := common.AcosClamped(p.Dot(r3.Vector{Z: 1}))
	if angle <= 0 || angle > 2*common.Epsilon4 {
		t.Errorf("angle to axis = %v, want just short of the pole", angle)
	}
	if math.Abs(c.Position().Norm()-2.5*radius) > common.Epsilon6*radius {
		t.Errorf("distance changed: %v", c.Position().Norm())
	}
}

func TestRotateHorizontalUsesConstrainedAxis(t *testing.T) {
	c := newTestCamera(t, WithConstrainedAxis(r3.Vector{Z: 1}))
	c.RotateLeft(math.Pi / 2)
	assertVector(t, "position", c.Position(), r3.Vector{Y: -2.5 * radius}, common.Epsilon6)

	if _, ok := c.ConstrainedAxis(); !ok {
		t.Fatal("constrained axis missing")
	}
	c.ClearConstrainedAxis()
	if _, ok := c.ConstrainedAxis(); ok {
		t.Error("constrained axis not cleared")
	}
}

func TestSetTransformKeepsWorldPose(t *testing.T) {
	c := newTestCamera(t)
	position, direction, up := c.PositionWC(), c.DirectionWC(), c.UpWC()

	origin := r3.Vector{X: radius}
	c.SetTransform(transforms.EastNorthUpToFixedFrame(origin, nil))

	assertVector(t, "positionWC", c.PositionWC(), position, common.Epsilon6)
	assertVector(t, "directionWC", c.DirectionWC(), direction, common.Epsilon12)
	assertVector(t, "upWC", c.UpWC(), up, common.Epsilon12)
	// the camera is 1.5 radii straight up in the local frame
	assertVector(t, "local position", c.Position(), r3.Vector{Z: 1.5 * radius}, common.Epsilon6)
	assertVector(t, "world to camera", c.WorldToCameraCoordinatesPoint(origin), r3.Vector{}, common.Epsilon6)
	assertVector(t, "world to camera vector", c.WorldToCameraCoordinates(r3.Vector{X: 1}), r3.Vector{Z: 1}, common.Epsilon12)
}

func TestSetView(t *testing.T) {
	c := newTestCamera(t)
	destination := r3.Vector{X: radius + 1000}

	c.SetView(destination, HeadingPitchRoll{Heading: 0, Pitch: -math.Pi / 2})
	assertVector(t, "position", c.PositionWC(), destination, common.Epsilon6)
	assertVector(t, "direction", c.DirectionWC(), r3.Vector{X: -1}, common.Epsilon12)
	assertVector(t, "up", c.UpWC(), r3.Vector{Z: 1}, common.Epsilon12)

	c.SetView(destination, HeadingPitchRoll{})
	assertVector(t, "level direction", c.DirectionWC(), r3.Vector{Z: 1}, common.Epsilon12)
	assertVector(t, "level up", c.UpWC(), r3.Vector{X: 1}, common.Epsilon12)

	c.SetView(destination, HeadingPitchRoll{Heading: math.Pi / 2})
	assertVector(t, "east direction", c.DirectionWC(), r3.Vector{Y: 1}, common.Epsilon12)
}

func TestPositionCartographic(t *testing.T) {
	c := newTestCamera(t)
	carto, ok := c.PositionCartographic()
	if !ok {
		t.Fatal("expected a cartographic position")
	}
	if math.Abs(carto.Height-1.5*radius) > common.Epsilon3 || carto.Longitude != 0 || carto.Latitude != 0 {
		t.Errorf("cartographic = %v", carto)
	}
}

func TestPixelDimensions(t *testing.T) {
	f := DefaultFrustum()
	got, err := f.PixelDimensions(100, 100, 100, 1)
	if err != nil {
		t.Fatalf("PixelDimensions: %v", err)
	}
	want := 2 * 100 * math.Tan(math.Pi/6) / 100
	if math.Abs(got.X-want) > common.Epsilon12 || math.Abs(got.Y-want) > common.Epsilon12 {
		t.Errorf("pixel size = %v, want %v", got, want)
	}

	for _, tt := range []struct {
		name          string
		width, height int
		ratio         float64
	}{
		{"zero width", 0, 100, 1},
		{"negative height", 100, -1, 1},
		{"zero ratio", 100, 100, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.PixelDimensions(tt.width, tt.height, 1, tt.ratio); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("err = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestFovy(t *testing.T) {
	f := PerspectiveFrustum{Fov: math.Pi / 2, AspectRatio: 2, Near: 1, Far: 10}
	want := 2 * math.Atan(0.5)
	if math.Abs(f.Fovy()-want) > common.Epsilon14 {
		t.Errorf("Fovy = %v, want %v", f.Fovy(), want)
	}
	f.AspectRatio = 0.5
	if f.Fovy() != f.Fov {
		t.Errorf("Fovy for a tall viewport should equal Fov")
	}
}

func TestCullingVolume(t *testing.T) {
	c := newTestCamera(t)
	volume := c.CullingVolume()

	if !volume.Contains(r3.Vector{X: radius}) {
		t.Error("the globe surface facing the camera should be visible")
	}
	if volume.Contains(r3.Vector{X: 3 * radius}) {
		t.Error("a point behind the camera should be culled")
	}
}

func TestGPUCameraUniform(t *testing.T) {
	c := newTestCamera(t)
	u := NewGPUCameraUniform(c)

	if u.Size() != 144 {
		t.Fatalf("Size = %d, want 144", u.Size())
	}
	if got := len(u.Marshal()); got != 144 {
		t.Errorf("Marshal length = %d, want 144", got)
	}
	if u.CameraPosition[0] != float32(2.5*radius) {
		t.Errorf("camera position = %v", u.CameraPosition)
	}

	// the screen center on the far plane unprojects along the view direction
	var m mgl64.Mat4
	for i := range 16 {
		m[i] = float64(u.InverseViewProjRTE[i])
	}
	far := m.Mul4x1(mgl64.Vec4{0, 0, 1, 1})
	direction := r3.Vector{X: far[0], Y: far[1], Z: far[2]}.Normalize()
	assertVector(t, "center ray", direction, c.DirectionWC(), common.Epsilon5)
}

func TestOrientationRoundTrip(t *testing.T) {
	c := newTestCamera(t)
	destination := ellipsoid.WGS84.CartographicToCartesian(ellipsoid.CartographicFromDegrees(20, 35, 5000))

	want := HeadingPitchRoll{Heading: 0.7, Pitch: -0.4, Roll: 0.1}
	c.SetView(destination, want)
	got := c.Orientation()

	if math.Abs(got.Heading-want.Heading) > common.Epsilon9 ||
		math.Abs(got.Pitch-want.Pitch) > common.Epsilon9 ||
		math.Abs(got.Roll-want.Roll) > common.Epsilon9 {
		t.Errorf("orientation = %+v, want %+v", got, want)
	}
}

func TestWorldToWindowCoordinates(t *testing.T) {
	c := newTestCamera(t)

	got, ok := c.WorldToWindowCoordinates(r3.Vector{X: radius})
	if !ok {
		t.Fatal("the point in front of the camera should project")
	}
	if math.Abs(got.X-50) > common.Epsilon9 || math.Abs(got.Y-50) > common.Epsilon9 {
		t.Errorf("window position = %v, want the canvas center", got)
	}

	ray := c.GetPickRay(r2.Point{X: 20, Y: 70})
	back, ok := c.WorldToWindowCoordinates(ray.Point(1000))
	if !ok || math.Abs(back.X-20) > common.Epsilon6 || math.Abs(back.Y-70) > common.Epsilon6 {
		t.Errorf("pick ray round trip = %v, %v; want (20, 70)", back, ok)
	}

	if _, ok := c.WorldToWindowCoordinates(r3.Vector{X: 3 * radius}); ok {
		t.Error("a point behind the camera should not project")
	}
}
