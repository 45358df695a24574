package input

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/golang/geo/r2"
)

// ErrMissingCanvas is returned when an aggregator is created without a canvas.
var ErrMissingCanvas = errors.New("input: canvas is required")

// Canvas is the drawing surface input positions are measured against.
type Canvas interface {
	Width() int
	Height() int
}

// CameraEventAggregator collects raw input events between frames and exposes
// one movement snapshot per EventKey to the camera controller. Input methods
// may be called from any goroutine; Reset is called once per frame after the
// controller has consumed the snapshots.
type CameraEventAggregator interface {
	// MouseDown starts a drag gesture for the given button type.
	//
	// Parameters:
	//   - button: LeftDrag, RightDrag or MiddleDrag
	//   - position: cursor position in pixels
	//   - modifier: keyboard modifier held at press time
	MouseDown(button EventType, position r2.Point, modifier Modifier)

	// MouseUp ends the drag gesture for button under every modifier.
	//
	// Parameters:
	//   - button: LeftDrag, RightDrag or MiddleDrag
	//   - position: cursor position in pixels
	MouseUp(button EventType, position r2.Point)

	// MouseMove reports a cursor move to every drag held under modifier.
	//
	// Parameters:
	//   - position: new cursor position in pixels
	//   - modifier: keyboard modifier currently held
	MouseMove(position r2.Point, modifier Modifier)

	// WheelScroll synthesizes a one-shot vertical movement for a wheel delta.
	//
	// Parameters:
	//   - delta: wheel delta in degrees-equivalent units, positive away from the user
	//   - modifier: keyboard modifier currently held
	WheelScroll(delta float64, modifier Modifier)

	// PinchStart begins a two-finger gesture.
	PinchStart(position1, position2 r2.Point, modifier Modifier)

	// PinchMove updates a two-finger gesture with the new touch positions.
	PinchMove(position1, position2 r2.Point, modifier Modifier)

	// PinchEnd ends a two-finger gesture.
	PinchEnd(modifier Modifier)

	// IsMoving reports whether key received movement since the last Reset.
	IsMoving(key EventKey) bool

	// GetMovement returns the movement aggregated for key since the last Reset.
	GetMovement(key EventKey) Movement

	// GetLastMovement returns the movement of the previous frame for key. It
	// is only valid while the button stays down and the pointer kept moving.
	//
	// Returns:
	//   - Movement: the previous movement
	//   - bool: false when no valid previous movement exists
	GetLastMovement(key EventKey) (Movement, bool)

	// GetStartMousePosition returns where the gesture for key began. Wheel
	// gestures start at the current cursor position.
	GetStartMousePosition(key EventKey) r2.Point

	// IsButtonDown reports whether the gesture for key is held.
	IsButtonDown(key EventKey) bool

	// GetButtonPressTime returns when the gesture for key last started.
	GetButtonPressTime(key EventKey) time.Time

	// GetButtonReleaseTime returns when the gesture for key last ended.
	GetButtonReleaseTime(key EventKey) time.Time

	// AnyButtonDown reports whether any button or pinch is held or a wheel
	// moved this frame.
	AnyButtonDown() bool

	// CurrentMousePosition returns the last known cursor position.
	CurrentMousePosition() r2.Point

	// Reset marks every snapshot as consumed. Called at the end of each frame.
	Reset()
}

// eventState is the per-EventKey record.
type eventState struct {
	movement      Movement
	lastMovement  Movement
	lastValid     bool
	pinch         PinchMovement
	prevAngle     float64
	startPosition r2.Point
	isDown        bool

	// update is true until the first event of a frame arrives.
	update      bool
	pressTime   time.Time
	releaseTime time.Time
}

// cameraEventAggregator is the implementation of CameraEventAggregator.
type cameraEventAggregator struct {
	mu sync.Mutex

	canvas Canvas
	now    func() time.Time

	states               [keyCount]eventState
	buttonsDown          int
	currentMousePosition r2.Point

	// touch positions of the last pinch event, used to derive pinch deltas
	touch1, touch2 r2.Point
}

var _ CameraEventAggregator = &cameraEventAggregator{}

// NewCameraEventAggregator creates an aggregator measuring input against canvas.
//
// Parameters:
//   - canvas: the drawing surface; its width scales pinch rotation
//   - options: functional options
//
// Returns:
//   - CameraEventAggregator: the aggregator
//   - error: ErrMissingCanvas when canvas is nil
func NewCameraEventAggregator(canvas Canvas, options ...CameraEventAggregatorBuilderOption) (CameraEventAggregator, error) {
	if canvas == nil {
		return nil, ErrMissingCanvas
	}

	a := &cameraEventAggregator{
		canvas: canvas,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(a)
	}

	now := a.now()
	for i := range a.states {
		a.states[i].update = true
		a.states[i].pressTime = now
		a.states[i].releaseTime = now
	}
	return a, nil
}

func (a *cameraEventAggregator) state(key EventKey) *eventState {
	if !key.valid() {
		return nil
	}
	return &a.states[key.index()]
}

func isDragType(t EventType) bool {
	return t == LeftDrag || t == RightDrag || t == MiddleDrag
}

func (a *cameraEventAggregator) MouseDown(button EventType, position r2.Point, modifier Modifier) {
	if !isDragType(button) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state(button.With(modifier))
	if s == nil {
		return
	}
	a.buttonsDown++
	s.lastValid = false
	s.isDown = true
	s.pressTime = a.now()
	s.startPosition = position
	a.currentMousePosition = position
}

func (a *cameraEventAggregator) MouseUp(button EventType, position r2.Point) {
	if !isDragType(button) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	for m := ModifierNone; m < modifierCount; m++ {
		s := a.state(button.With(m))
		if !s.isDown {
			continue
		}
		a.buttonsDown = max(a.buttonsDown-1, 0)
		s.isDown = false
		s.releaseTime = now
	}
	a.currentMousePosition = position
}

func (a *cameraEventAggregator) MouseMove(position r2.Point, modifier Modifier) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, t := range []EventType{LeftDrag, RightDrag, MiddleDrag} {
		s := a.state(t.With(modifier))
		if s == nil || !s.isDown {
			continue
		}
		if !s.update {
			s.movement.EndPosition = position
			continue
		}
		s.lastMovement = s.movement
		s.lastValid = true
		s.movement = Movement{StartPosition: a.currentMousePosition, EndPosition: position}
		s.update = false
	}
	a.currentMousePosition = position
}

func (a *cameraEventAggregator) WheelScroll(delta float64, modifier Modifier) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state(Wheel.With(modifier))
	if s == nil {
		return
	}
	arcLength := 7.5 * delta * math.Pi / 180
	now := a.now()
	s.pressTime = now
	s.releaseTime = now
	s.movement = Movement{EndPosition: r2.Point{X: 0, Y: arcLength}}
	s.lastMovement = s.movement
	s.lastValid = true
	s.update = false
}

func (a *cameraEventAggregator) PinchStart(position1, position2 r2.Point, modifier Modifier) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state(Pinch.With(modifier))
	if s == nil {
		return
	}
	a.buttonsDown++
	s.isDown = true
	s.pressTime = a.now()
	s.startPosition = position1.Add(position2).Mul(0.5)
	a.touch1, a.touch2 = position1, position2
}

// pinchFromTouches converts two successive touch pairs into distance and
// angle/height movements.
func pinchFromTouches(prev1, prev2, cur1, cur2 r2.Point) PinchMovement {
	d := cur2.Sub(cur1)
	prevD := prev2.Sub(prev1)

	dist := d.Norm() * 0.25
	prevDist := prevD.Norm() * 0.25
	cY := (cur2.Y + cur1.Y) * 0.125
	prevCY := (prev2.Y + prev1.Y) * 0.125
	angle := math.Atan2(d.Y, d.X)
	prevAngle := math.Atan2(prevD.Y, prevD.X)

	return PinchMovement{
		Distance: Movement{
			StartPosition: r2.Point{X: 0, Y: prevDist},
			EndPosition:   r2.Point{X: 0, Y: dist},
		},
		AngleAndHeight: Movement{
			StartPosition: r2.Point{X: prevAngle, Y: prevCY},
			EndPosition:   r2.Point{X: angle, Y: cY},
		},
	}
}

func (a *cameraEventAggregator) PinchMove(position1, position2 r2.Point, modifier Modifier) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state(Pinch.With(modifier))
	if s == nil || !s.isDown {
		return
	}

	event := pinchFromTouches(a.touch1, a.touch2, position1, position2)
	a.touch1, a.touch2 = position1, position2

	if !s.update {
		s.pinch.Distance.EndPosition = event.Distance.EndPosition
		s.pinch.AngleAndHeight.EndPosition = event.AngleAndHeight.EndPosition
	} else {
		s.pinch = event
		s.update = false
		s.prevAngle = event.AngleAndHeight.StartPosition.X
	}

	// keep the aggregated angle continuous across ±π
	angle := s.pinch.AngleAndHeight.EndPosition.X
	for angle >= s.prevAngle+math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < s.prevAngle-math.Pi {
		angle += 2 * math.Pi
	}

	width := float64(a.canvas.Width())
	s.pinch.AngleAndHeight.EndPosition.X = -angle * width / 12
	s.pinch.AngleAndHeight.StartPosition.X = -s.prevAngle * width / 12

	pinch := s.pinch
	s.movement = Movement{
		StartPosition: pinch.Distance.StartPosition,
		EndPosition:   pinch.Distance.EndPosition,
		Pinch:         &pinch,
	}
}

func (a *cameraEventAggregator) PinchEnd(modifier Modifier) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state(Pinch.With(modifier))
	if s == nil || !s.isDown {
		return
	}
	a.buttonsDown = max(a.buttonsDown-1, 0)
	s.isDown = false
	s.releaseTime = a.now()
}

func (a *cameraEventAggregator) IsMoving(key EventKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state(key)
	return s != nil && !s.update
}

func (a *cameraEventAggregator) GetMovement(key EventKey) Movement {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state(key)
	if s == nil {
		return Movement{}
	}
	return s.movement
}

func (a *cameraEventAggregator) GetLastMovement(key EventKey) (Movement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state(key)
	if s == nil || !s.lastValid {
		return Movement{}, false
	}
	return s.lastMovement, true
}

func (a *cameraEventAggregator) GetStartMousePosition(key EventKey) r2.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	if key.Type == Wheel {
		return a.currentMousePosition
	}
	s := a.state(key)
	if s == nil {
		return r2.Point{}
	}
	return s.startPosition
}

func (a *cameraEventAggregator) IsButtonDown(key EventKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state(key)
	return s != nil && s.isDown
}

func (a *cameraEventAggregator) GetButtonPressTime(key EventKey) time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state(key)
	if s == nil {
		return time.Time{}
	}
	return s.pressTime
}

func (a *cameraEventAggregator) GetButtonReleaseTime(key EventKey) time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state(key)
	if s == nil {
		return time.Time{}
	}
	return s.releaseTime
}

func (a *cameraEventAggregator) AnyButtonDown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.buttonsDown > 0 {
		return true
	}
	for m := ModifierNone; m < modifierCount; m++ {
		if !a.states[Wheel.With(m).index()].update {
			return true
		}
	}
	return false
}

func (a *cameraEventAggregator) CurrentMousePosition() r2.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentMousePosition
}

func (a *cameraEventAggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.states {
		a.states[i].update = true
	}
}
