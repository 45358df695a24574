package intersect

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

func TestRayPlane(t *testing.T) {
	plane := common.Plane{Normal: r3.Vector{Z: 1}, Distance: 0}

	tests := []struct {
		name   string
		ray    Ray
		want   r3.Vector
		wantOK bool
	}{
		{"hit", NewRay(r3.Vector{X: 1, Y: 2, Z: 5}, r3.Vector{Z: -1}), r3.Vector{X: 1, Y: 2}, true},
		{"oblique", NewRay(r3.Vector{Z: 2}, r3.Vector{X: 1, Z: -1}), r3.Vector{X: 2}, true},
		{"parallel", NewRay(r3.Vector{Z: 5}, r3.Vector{X: 1}), r3.Vector{}, false},
		{"behind", NewRay(r3.Vector{Z: 5}, r3.Vector{Z: 1}), r3.Vector{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayPlane(tt.ray, plane)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !common.VectorEqualsEpsilon(got, tt.want, common.Epsilon12) {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRayPlaneOffsetPlane(t *testing.T) {
	plane := common.NewPlaneFromPointNormal(r3.Vector{Z: 3}, r3.Vector{Z: 1})
	got, ok := RayPlane(NewRay(r3.Vector{}, r3.Vector{Z: 1}), plane)
	if !ok || !common.VectorEqualsEpsilon(got, r3.Vector{Z: 3}, common.Epsilon12) {
		t.Errorf("RayPlane = %v, %v; want (0,0,3), true", got, ok)
	}
}

func TestRayEllipsoid(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		want   r1.Interval
		wantOK bool
	}{
		{"through center", NewRay(r3.Vector{X: 2}, r3.Vector{X: -1}), r1.Interval{Lo: 1, Hi: 3}, true},
		{"miss", NewRay(r3.Vector{X: 2, Y: 2}, r3.Vector{X: -1}), r1.Interval{}, false},
		{"pointing away", NewRay(r3.Vector{X: 2}, r3.Vector{X: 1}), r1.Interval{}, false},
		{"tangent", NewRay(r3.Vector{X: 2, Y: 1}, r3.Vector{X: -1}), r1.Interval{Lo: 2, Hi: 2}, true},
		{"inside", NewRay(r3.Vector{}, r3.Vector{X: 1}), r1.Interval{Lo: 0, Hi: 1}, true},
		{"on surface inward", NewRay(r3.Vector{X: 1}, r3.Vector{X: -1}), r1.Interval{Lo: 0, Hi: 2}, true},
		{"on surface outward", NewRay(r3.Vector{X: 1}, r3.Vector{X: 1}), r1.Interval{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayEllipsoid(tt.ray, ellipsoid.UnitSphere)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.Lo-tt.want.Lo) > common.Epsilon12 || math.Abs(got.Hi-tt.want.Hi) > common.Epsilon12 {
				t.Errorf("interval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRayEllipsoidPointOnWGS84(t *testing.T) {
	origin := r3.Vector{X: 2 * ellipsoid.WGS84.MaximumRadius()}
	got, ok := RayEllipsoidPoint(NewRay(origin, r3.Vector{X: -1}), ellipsoid.WGS84)
	if !ok {
		t.Fatal("expected the ray to hit the globe")
	}
	want := r3.Vector{X: ellipsoid.WGS84.MaximumRadius()}
	if !common.VectorEqualsEpsilon(got, want, common.Epsilon6) {
		t.Errorf("point = %v, want %v", got, want)
	}
}

func TestQuadraticVectorExpression(t *testing.T) {
	// y² + z² - 1 = 0 at x = 0 holds for every angle; any reported point must
	// lie on the unit circle.
	A := mgl64.Diag3(mgl64.Vec3{0, 1, 0})
	solutions := QuadraticVectorExpression(A, r3.Vector{}, -1, 0, 1)
	if len(solutions) == 0 {
		t.Fatal("expected solutions")
	}
	for _, s := range solutions {
		if math.Abs(s.Y*s.Y+s.Z*s.Z-1) > common.Epsilon12 || s.X != 0 {
			t.Errorf("solution %v is not on the unit circle", s)
		}
	}

	// y - 0.5 = 0 at x = 0, w = 1 gives cosθ = 0.5 with both sine signs.
	solutions = QuadraticVectorExpression(mgl64.Mat3{}, r3.Vector{Y: 1}, -0.5, 0, 1)
	if len(solutions) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(solutions), solutions)
	}
	for _, s := range solutions {
		if math.Abs(s.Y-0.5) > common.Epsilon12 || math.Abs(math.Abs(s.Z)-math.Sqrt(0.75)) > common.Epsilon12 {
			t.Errorf("solution %v, want (0, 0.5, ±0.866)", s)
		}
	}
}

func TestGrazingAltitudeLocation(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		want r3.Vector
	}{
		{"miss above", NewRay(r3.Vector{X: 2, Y: 2}, r3.Vector{X: -1}), r3.Vector{Y: 2}},
		{"pass through", NewRay(r3.Vector{X: 2, Y: 0.5}, r3.Vector{X: -1}), r3.Vector{Y: 0.5}},
		{"pointing away", NewRay(r3.Vector{X: 2, Y: 2}, r3.Vector{X: 1}), r3.Vector{X: 2, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GrazingAltitudeLocation(tt.ray, ellipsoid.UnitSphere)
			if !ok {
				t.Fatal("expected a grazing location")
			}
			if !common.VectorEqualsEpsilon(got, tt.want, common.Epsilon8) {
				t.Errorf("location = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrazingAltitudeLocationAtCenter(t *testing.T) {
	if _, ok := GrazingAltitudeLocation(NewRay(r3.Vector{}, r3.Vector{X: 1}), ellipsoid.UnitSphere); ok {
		t.Error("a ray from the ellipsoid center has no grazing location")
	}
}
