package input

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r2"
)

type fakeCanvas struct{ w, h int }

func (c fakeCanvas) Width() int  { return c.w }
func (c fakeCanvas) Height() int { return c.h }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestAggregator(t *testing.T) (CameraEventAggregator, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	a, err := NewCameraEventAggregator(fakeCanvas{w: 1200, h: 800}, WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewCameraEventAggregator: %v", err)
	}
	return a, clock
}

func TestNewCameraEventAggregatorRequiresCanvas(t *testing.T) {
	if _, err := NewCameraEventAggregator(nil); !errors.Is(err, ErrMissingCanvas) {
		t.Errorf("err = %v, want ErrMissingCanvas", err)
	}
}

func TestDragAggregatesWithinFrame(t *testing.T) {
	a, _ := newTestAggregator(t)
	key := LeftDrag.Key()

	a.MouseDown(LeftDrag, r2.Point{X: 10, Y: 10}, ModifierNone)
	if a.IsMoving(key) {
		t.Fatal("press alone must not report movement")
	}
	if !a.IsButtonDown(key) || !a.AnyButtonDown() {
		t.Fatal("button should be down")
	}

	a.MouseMove(r2.Point{X: 15, Y: 12}, ModifierNone)
	a.MouseMove(r2.Point{X: 20, Y: 30}, ModifierNone)

	if !a.IsMoving(key) {
		t.Fatal("expected movement")
	}
	got := a.GetMovement(key)
	want := Movement{StartPosition: r2.Point{X: 10, Y: 10}, EndPosition: r2.Point{X: 20, Y: 30}}
	if got != want {
		t.Errorf("movement = %+v, want %+v", got, want)
	}
	if start := a.GetStartMousePosition(key); start != (r2.Point{X: 10, Y: 10}) {
		t.Errorf("start = %v", start)
	}

	// other modifiers are untouched
	if a.IsMoving(LeftDrag.With(ModifierShift)) || a.IsMoving(RightDrag.Key()) {
		t.Error("unrelated keys report movement")
	}
}

func TestLastMovementValidity(t *testing.T) {
	a, _ := newTestAggregator(t)
	key := RightDrag.Key()

	a.MouseDown(RightDrag, r2.Point{X: 0, Y: 0}, ModifierNone)
	a.MouseMove(r2.Point{X: 5, Y: 0}, ModifierNone)
	a.Reset()
	if a.IsMoving(key) {
		t.Fatal("Reset must consume the movement")
	}

	a.MouseMove(r2.Point{X: 9, Y: 0}, ModifierNone)
	last, ok := a.GetLastMovement(key)
	if !ok {
		t.Fatal("last movement should be valid while the button is held")
	}
	if last.EndPosition != (r2.Point{X: 5, Y: 0}) {
		t.Errorf("last movement = %+v", last)
	}
	if got := a.GetMovement(key); got.StartPosition != (r2.Point{X: 5, Y: 0}) || got.EndPosition != (r2.Point{X: 9, Y: 0}) {
		t.Errorf("movement = %+v", got)
	}

	a.MouseUp(RightDrag, r2.Point{X: 9, Y: 0})
	a.MouseDown(RightDrag, r2.Point{X: 9, Y: 0}, ModifierNone)
	if _, ok := a.GetLastMovement(key); ok {
		t.Error("a new press must invalidate the last movement")
	}
}

func TestPressAndReleaseTimes(t *testing.T) {
	a, clock := newTestAggregator(t)
	key := MiddleDrag.With(ModifierCtrl)

	a.MouseDown(MiddleDrag, r2.Point{}, ModifierCtrl)
	pressed := clock.t
	clock.advance(250 * time.Millisecond)
	a.MouseUp(MiddleDrag, r2.Point{})

	if got := a.GetButtonPressTime(key); !got.Equal(pressed) {
		t.Errorf("press time = %v, want %v", got, pressed)
	}
	if got := a.GetButtonReleaseTime(key).Sub(a.GetButtonPressTime(key)); got != 250*time.Millisecond {
		t.Errorf("held for %v, want 250ms", got)
	}
	if a.IsButtonDown(key) || a.AnyButtonDown() {
		t.Error("button should be released")
	}
}

func TestMouseUpReleasesEveryModifier(t *testing.T) {
	a, _ := newTestAggregator(t)

	a.MouseDown(LeftDrag, r2.Point{}, ModifierShift)
	a.MouseUp(LeftDrag, r2.Point{})

	if a.IsButtonDown(LeftDrag.With(ModifierShift)) {
		t.Error("releasing after the modifier was let go must still end the gesture")
	}
	if a.AnyButtonDown() {
		t.Error("no buttons should be down")
	}
}

func TestWheelScroll(t *testing.T) {
	a, _ := newTestAggregator(t)
	key := Wheel.Key()

	a.MouseMove(r2.Point{X: 300, Y: 200}, ModifierNone)
	a.WheelScroll(120, ModifierNone)

	if !a.IsMoving(key) || !a.AnyButtonDown() {
		t.Fatal("wheel should register as moving")
	}
	m := a.GetMovement(key)
	want := 7.5 * 120 * math.Pi / 180
	if m.StartPosition != (r2.Point{}) || m.EndPosition.X != 0 || math.Abs(m.EndPosition.Y-want) > 1e-12 {
		t.Errorf("movement = %+v, want end (0, %v)", m, want)
	}
	if _, ok := a.GetLastMovement(key); !ok {
		t.Error("wheel last movement should be valid")
	}
	if start := a.GetStartMousePosition(key); start != (r2.Point{X: 300, Y: 200}) {
		t.Errorf("wheel start = %v, want the cursor position", start)
	}

	a.Reset()
	if a.IsMoving(key) || a.AnyButtonDown() {
		t.Error("wheel movement is one-shot")
	}
}

func TestPinch(t *testing.T) {
	a, _ := newTestAggregator(t)
	key := Pinch.Key()

	a.PinchStart(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 0}, ModifierNone)
	if start := a.GetStartMousePosition(key); start != (r2.Point{X: 50, Y: 0}) {
		t.Errorf("pinch start = %v, want the touch midpoint", start)
	}

	a.PinchMove(r2.Point{X: 0, Y: 0}, r2.Point{X: 200, Y: 0}, ModifierNone)
	if !a.IsMoving(key) {
		t.Fatal("pinch should be moving")
	}
	m := a.GetMovement(key)
	if m.Pinch == nil {
		t.Fatal("pinch movement missing")
	}
	if m.Pinch.Distance.StartPosition.Y != 25 || m.Pinch.Distance.EndPosition.Y != 50 {
		t.Errorf("distance = %+v, want 25 -> 50", m.Pinch.Distance)
	}
	if m.EndPosition != m.Pinch.Distance.EndPosition {
		t.Error("movement should mirror the distance component")
	}

	a.PinchEnd(ModifierNone)
	if a.IsButtonDown(key) {
		t.Error("pinch should be released")
	}
}

func TestPinchAngleUnwrap(t *testing.T) {
	a, _ := newTestAggregator(t)
	key := Pinch.Key()

	// second finger just above the negative X axis: angle close to +π
	a.PinchStart(r2.Point{}, r2.Point{X: -100, Y: 1}, ModifierNone)
	a.PinchMove(r2.Point{}, r2.Point{X: -100, Y: 2}, ModifierNone)
	// crossing below the axis flips atan2 to close to -π
	a.PinchMove(r2.Point{}, r2.Point{X: -100, Y: -2}, ModifierNone)

	m := a.GetMovement(key)
	delta := m.Pinch.AngleAndHeight.EndPosition.X - m.Pinch.AngleAndHeight.StartPosition.X
	// 1200 / 12 pixels per radian; the true rotation is a few hundredths of a radian
	if math.Abs(delta) > 10 {
		t.Errorf("angle delta = %v pixels, expected a small continuous rotation", delta)
	}
}
