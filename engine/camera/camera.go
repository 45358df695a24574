// Package camera holds the globe camera: its pose relative to a reference
// transform, its perspective frustum, and the picking helpers the camera
// controller relies on.
package camera

import (
	"errors"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/intersect"
	"github.com/Carmen-Shannon/oxy-globe/engine/transforms"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ErrMissingCanvas is returned when a camera is created without a canvas.
var ErrMissingCanvas = errors.New("camera: canvas is required")

// Canvas is the drawing surface pick rays are cast through.
type Canvas interface {
	Width() int
	Height() int
}

// HeadingPitchRoll is an orientation relative to the local east-north-up
// frame. Heading is measured from north towards east, pitch from the local
// horizontal plane, roll about the view direction. All angles are radians.
type HeadingPitchRoll struct {
	Heading float64
	Pitch   float64
	Roll    float64
}

// Camera is the globe camera mutated by the screen-space camera controller.
// Position, Direction, Up and Right are expressed in the frame given by
// Transform; the WC accessors return them in world coordinates.
type Camera interface {
	// Position returns the camera position in the reference frame.
	Position() r3.Vector
	// Direction returns the unit view direction in the reference frame.
	Direction() r3.Vector
	// Up returns the unit up vector in the reference frame.
	Up() r3.Vector
	// Right returns the unit right vector in the reference frame.
	Right() r3.Vector

	SetPosition(position r3.Vector)
	SetDirection(direction r3.Vector)
	SetUp(up r3.Vector)
	SetRight(right r3.Vector)

	// PositionWC returns the camera position in world coordinates.
	PositionWC() r3.Vector
	// DirectionWC returns the view direction in world coordinates.
	DirectionWC() r3.Vector
	// UpWC returns the up vector in world coordinates.
	UpWC() r3.Vector
	// RightWC returns the right vector in world coordinates.
	RightWC() r3.Vector

	// PositionCartographic returns the camera position as longitude, latitude
	// and height on the camera's ellipsoid.
	//
	// Returns:
	//   - ellipsoid.Cartographic: the geodetic camera position
	//   - bool: false when the camera sits at the ellipsoid center
	PositionCartographic() (ellipsoid.Cartographic, bool)

	// Ellipsoid returns the ellipsoid used for geodetic queries.
	Ellipsoid() *ellipsoid.Ellipsoid

	// Transform returns the reference frame the pose is expressed in.
	Transform() mgl64.Mat4

	// InverseTransform returns the inverse of Transform.
	InverseTransform() mgl64.Mat4

	// SetTransform changes the reference frame while keeping the camera's
	// world-space pose unchanged.
	//
	// Parameters:
	//   - transform: the new reference frame
	SetTransform(transform mgl64.Mat4)

	// ConstrainedAxis returns the axis rotations are constrained about.
	//
	// Returns:
	//   - r3.Vector: the axis
	//   - bool: false when rotation is unconstrained
	ConstrainedAxis() (r3.Vector, bool)

	// SetConstrainedAxis constrains horizontal rotation about axis.
	SetConstrainedAxis(axis r3.Vector)

	// ClearConstrainedAxis removes the rotation constraint.
	ClearConstrainedAxis()

	// Frustum returns the perspective frustum.
	Frustum() PerspectiveFrustum

	// SetFrustum replaces the perspective frustum.
	SetFrustum(frustum PerspectiveFrustum)

	// Canvas returns the drawing surface the camera renders to.
	Canvas() Canvas

	// Move translates the camera along direction by amount.
	Move(direction r3.Vector, amount float64)

	// MoveForward moves the camera along its view direction.
	MoveForward(amount float64)

	// MoveBackward moves the camera opposite its view direction.
	MoveBackward(amount float64)

	// ZoomIn moves the camera forward by amount.
	ZoomIn(amount float64)

	// ZoomOut moves the camera backward by amount.
	ZoomOut(amount float64)

	// Look rotates the view about axis without moving the camera.
	//
	// Parameters:
	//   - axis: the rotation axis in the reference frame
	//   - angle: rotation in radians
	Look(axis r3.Vector, angle float64)

	LookLeft(angle float64)
	LookRight(angle float64)
	LookUp(angle float64)
	LookDown(angle float64)

	// Rotate rotates the camera position and orientation about axis through
	// the reference frame origin.
	//
	// Parameters:
	//   - axis: the rotation axis in the reference frame
	//   - angle: rotation in radians
	Rotate(axis r3.Vector, angle float64)

	// RotateLeft rotates about the constrained axis, or Up when there is none.
	RotateLeft(angle float64)
	RotateRight(angle float64)

	// RotateUp rotates towards the constrained axis, never past it.
	RotateUp(angle float64)
	RotateDown(angle float64)

	// SetView places the camera at destination with the given orientation
	// relative to the local east-north-up frame at destination.
	//
	// Parameters:
	//   - destination: world-space position
	//   - orientation: heading, pitch and roll in radians
	SetView(destination r3.Vector, orientation HeadingPitchRoll)

	// Orientation returns the heading, pitch and roll of the camera relative
	// to the east-north-up frame at its world position.
	Orientation() HeadingPitchRoll

	// WorldToWindowCoordinates projects a world-space point to a pixel.
	//
	// Returns:
	//   - r2.Point: pixel position, origin at the top left
	//   - bool: false when the point is behind the camera
	WorldToWindowCoordinates(point r3.Vector) (r2.Point, bool)

	// GetPickRay returns the world-space ray from the eye through a pixel.
	//
	// Parameters:
	//   - windowPosition: pixel position, origin at the top left
	//
	// Returns:
	//   - intersect.Ray: ray with a unit direction
	GetPickRay(windowPosition r2.Point) intersect.Ray

	// PickEllipsoid returns the point on ell under windowPosition.
	//
	// Parameters:
	//   - windowPosition: pixel position, origin at the top left
	//   - ell: the ellipsoid to pick; nil uses the camera's ellipsoid
	//
	// Returns:
	//   - r3.Vector: the picked world-space point
	//   - bool: false when the pixel does not cover the ellipsoid
	PickEllipsoid(windowPosition r2.Point, ell *ellipsoid.Ellipsoid) (r3.Vector, bool)

	// WorldToCameraCoordinates transforms a world-space direction into the
	// reference frame.
	WorldToCameraCoordinates(vector r3.Vector) r3.Vector

	// WorldToCameraCoordinatesPoint transforms a world-space point into the
	// reference frame.
	WorldToCameraCoordinatesPoint(point r3.Vector) r3.Vector

	// ViewMatrix returns the world-to-eye matrix.
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the frustum's projection matrix.
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl64.Mat4

	// CullingVolume returns the six world-space planes bounding the view.
	CullingVolume() common.Frustum
}

type cameraImpl struct {
	mu sync.Mutex

	position  r3.Vector
	direction r3.Vector
	up        r3.Vector
	right     r3.Vector

	transform    mgl64.Mat4
	invTransform mgl64.Mat4

	constrainedAxis    r3.Vector
	hasConstrainedAxis bool

	frustum   PerspectiveFrustum
	ellipsoid *ellipsoid.Ellipsoid
	canvas    Canvas
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera looking at the center of the globe from a
// distance of roughly two and a half Earth radii.
//
// Parameters:
//   - canvas: the drawing surface, used for pick rays and the aspect ratio
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: ErrMissingCanvas when canvas is nil
func NewCamera(canvas Canvas, options ...CameraBuilderOption) (Camera, error) {
	if canvas == nil {
		return nil, ErrMissingCanvas
	}

	c := &cameraImpl{
		position:     r3.Vector{X: 2.5 * ellipsoid.WGS84.MaximumRadius()},
		direction:    r3.Vector{X: -1},
		up:           r3.Vector{Z: 1},
		transform:    mgl64.Ident4(),
		invTransform: mgl64.Ident4(),
		frustum:      DefaultFrustum(),
		ellipsoid:    ellipsoid.WGS84,
		canvas:       canvas,
	}
	if w, h := canvas.Width(), canvas.Height(); w > 0 && h > 0 {
		c.frustum.AspectRatio = float64(w) / float64(h)
	}
	for _, option := range options {
		option(c)
	}
	c.right = c.direction.Cross(c.up).Normalize()
	c.up = c.right.Cross(c.direction).Normalize()
	return c, nil
}

func (c *cameraImpl) Position() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Direction() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

func (c *cameraImpl) Up() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Right() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) SetPosition(position r3.Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) SetDirection(direction r3.Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.direction = direction
}

func (c *cameraImpl) SetUp(up r3.Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) SetRight(right r3.Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.right = right
}

func (c *cameraImpl) PositionWC() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transforms.MultiplyByPoint(c.transform, c.position)
}

func (c *cameraImpl) DirectionWC() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transforms.MultiplyByPointAsVector(c.transform, c.direction).Normalize()
}

func (c *cameraImpl) UpWC() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transforms.MultiplyByPointAsVector(c.transform, c.up).Normalize()
}

func (c *cameraImpl) RightWC() r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transforms.MultiplyByPointAsVector(c.transform, c.right).Normalize()
}

func (c *cameraImpl) PositionCartographic() (ellipsoid.Cartographic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ellipsoid.CartesianToCartographic(transforms.MultiplyByPoint(c.transform, c.position))
}

func (c *cameraImpl) Ellipsoid() *ellipsoid.Ellipsoid {
	return c.ellipsoid
}

func (c *cameraImpl) Transform() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

func (c *cameraImpl) InverseTransform() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invTransform
}

func (c *cameraImpl) SetTransform(transform mgl64.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setTransform(transform)
}

// setTransform re-expresses the world pose in the new frame. Caller must hold the mutex.
func (c *cameraImpl) setTransform(transform mgl64.Mat4) {
	position := transforms.MultiplyByPoint(c.transform, c.position)
	direction := transforms.MultiplyByPointAsVector(c.transform, c.direction)
	up := transforms.MultiplyByPointAsVector(c.transform, c.up)

	c.transform = transform
	c.invTransform = transforms.InverseTransformation(transform)

	c.position = transforms.MultiplyByPoint(c.invTransform, position)
	c.direction = transforms.MultiplyByPointAsVector(c.invTransform, direction)
	c.up = transforms.MultiplyByPointAsVector(c.invTransform, up)
	c.right = c.direction.Cross(c.up)
}

func (c *cameraImpl) ConstrainedAxis() (r3.Vector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.constrainedAxis, c.hasConstrainedAxis
}

func (c *cameraImpl) SetConstrainedAxis(axis r3.Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constrainedAxis = axis
	c.hasConstrainedAxis = true
}

func (c *cameraImpl) ClearConstrainedAxis() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constrainedAxis = r3.Vector{}
	c.hasConstrainedAxis = false
}

func (c *cameraImpl) Frustum() PerspectiveFrustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum
}

func (c *cameraImpl) SetFrustum(frustum PerspectiveFrustum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frustum = frustum
}

func (c *cameraImpl) Canvas() Canvas {
	return c.canvas
}

func (c *cameraImpl) Move(direction r3.Vector, amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(direction.Mul(amount))
}

func (c *cameraImpl) MoveForward(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(c.direction.Mul(amount))
}

func (c *cameraImpl) MoveBackward(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Sub(c.direction.Mul(amount))
}

func (c *cameraImpl) ZoomIn(amount float64) {
	c.MoveForward(amount)
}

func (c *cameraImpl) ZoomOut(amount float64) {
	c.MoveBackward(amount)
}

// axisAngle returns the rotation by -angle about axis, the camera's
// convention for positive turns.
func axisAngle(axis r3.Vector, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(-angle, common.ToVec3(axis.Normalize()))
}

func rotateVector(q mgl64.Quat, v r3.Vector) r3.Vector {
	return common.FromVec3(q.Rotate(common.ToVec3(v)))
}

func (c *cameraImpl) Look(axis r3.Vector, angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.look(axis, angle)
}

func (c *cameraImpl) look(axis r3.Vector, angle float64) {
	q := axisAngle(axis, angle)
	c.direction = rotateVector(q, c.direction)
	c.up = rotateVector(q, c.up)
	c.right = rotateVector(q, c.right)
}

func (c *cameraImpl) LookLeft(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.look(c.up, -angle)
}

func (c *cameraImpl) LookRight(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.look(c.up, angle)
}

func (c *cameraImpl) LookUp(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.look(c.right, -angle)
}

func (c *cameraImpl) LookDown(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.look(c.right, angle)
}

func (c *cameraImpl) Rotate(axis r3.Vector, angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotate(axis, angle)
}

func (c *cameraImpl) rotate(axis r3.Vector, angle float64) {
	q := axisAngle(axis, angle)
	c.position = rotateVector(q, c.position)
	c.direction = rotateVector(q, c.direction)
	c.up = rotateVector(q, c.up)
	c.right = c.direction.Cross(c.up)
	c.up = c.right.Cross(c.direction)
}

func (c *cameraImpl) RotateLeft(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateHorizontal(angle)
}

func (c *cameraImpl) RotateRight(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateHorizontal(-angle)
}

func (c *cameraImpl) rotateHorizontal(angle float64) {
	if c.hasConstrainedAxis {
		c.rotate(c.constrainedAxis, angle)
		return
	}
	c.rotate(c.up, angle)
}

func (c *cameraImpl) RotateUp(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateVertical(-angle)
}

func (c *cameraImpl) RotateDown(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateVertical(angle)
}

// rotateVertical rotates about the right axis. With a constrained axis the
// angle is clamped so the camera stops just short of the axis instead of
// flipping over it.
func (c *cameraImpl) rotateVertical(angle float64) {
	if !c.hasConstrainedAxis || common.VectorEqualsEpsilon(c.position, r3.Vector{}, common.Epsilon2) {
		c.rotate(c.right, angle)
		return
	}

	p := c.position.Normalize()
	northParallel := common.VectorEqualsEpsilon(p, c.constrainedAxis, common.Epsilon2)
	southParallel := common.VectorEqualsEpsilon(p, c.constrainedAxis.Mul(-1), common.Epsilon2)

	switch {
	case !northParallel && !southParallel:
		axis := c.constrainedAxis.Normalize()

		angleToAxis := common.AcosClamped(p.Dot(axis))
		if angle > 0 && angle > angleToAxis {
			angle = angleToAxis - common.Epsilon4
		}

		angleToAxis = common.AcosClamped(p.Dot(axis.Mul(-1)))
		if angle < 0 && -angle > angleToAxis {
			angle = -angleToAxis + common.Epsilon4
		}

		c.rotate(axis.Cross(p), angle)
	case (northParallel && angle < 0) || (southParallel && angle > 0):
		c.rotate(c.right, angle)
	}
}

func (c *cameraImpl) SetView(destination r3.Vector, orientation HeadingPitchRoll) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.transform
	c.setTransform(transforms.EastNorthUpToFixedFrame(destination, c.ellipsoid))
	c.position = r3.Vector{}

	heading := mgl64.QuatRotate(-(orientation.Heading - common.PiOverTwo), mgl64.Vec3{0, 0, 1})
	pitch := mgl64.QuatRotate(-orientation.Pitch, mgl64.Vec3{0, 1, 0})
	roll := mgl64.QuatRotate(orientation.Roll, mgl64.Vec3{1, 0, 0})
	q := heading.Mul(pitch.Mul(roll))

	c.direction = rotateVector(q, r3.Vector{X: 1})
	c.up = rotateVector(q, r3.Vector{Z: 1})
	c.right = c.direction.Cross(c.up)

	c.setTransform(current)
}

func (c *cameraImpl) Orientation() HeadingPitchRoll {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.transform
	c.setTransform(transforms.EastNorthUpToFixedFrame(transforms.MultiplyByPoint(c.transform, c.position), c.ellipsoid))
	hpr := HeadingPitchRoll{
		Heading: headingOf(c.direction, c.up),
		Pitch:   common.PiOverTwo - common.AcosClamped(c.direction.Z),
		Roll:    rollOf(c.direction, c.up, c.right),
	}
	c.setTransform(current)
	return hpr
}

// headingOf measures the local direction clockwise from north. Looking straight
// up or down it falls back to the up vector.
func headingOf(direction, up r3.Vector) float64 {
	var h float64
	if !common.EqualsEpsilon(math.Abs(direction.Z), 1, common.Epsilon3, common.Epsilon3) {
		h = math.Atan2(direction.Y, direction.X) - common.PiOverTwo
	} else {
		h = math.Atan2(up.Y, up.X) - common.PiOverTwo
	}
	return common.TwoPi - common.ZeroToTwoPi(h)
}

func rollOf(direction, up, right r3.Vector) float64 {
	if common.EqualsEpsilon(math.Abs(direction.Z), 1, common.Epsilon3, common.Epsilon3) {
		return 0
	}
	return common.ZeroToTwoPi(math.Atan2(-right.Z, up.Z) + common.TwoPi)
}

func (c *cameraImpl) WorldToWindowCoordinates(point r3.Vector) (r2.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clip := c.frustum.ProjectionMatrix().Mul4(c.viewMatrix()).Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	if clip[3] <= 0 {
		return r2.Point{}, false
	}
	width := float64(c.canvas.Width())
	height := float64(c.canvas.Height())
	return r2.Point{
		X: (clip[0]/clip[3] + 1) * 0.5 * width,
		Y: (1 - clip[1]/clip[3]) * 0.5 * height,
	}, true
}

func (c *cameraImpl) GetPickRay(windowPosition r2.Point) intersect.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pickRay(windowPosition)
}

func (c *cameraImpl) pickRay(windowPosition r2.Point) intersect.Ray {
	width := float64(c.canvas.Width())
	height := float64(c.canvas.Height())

	tanPhi := math.Tan(c.frustum.Fovy() * 0.5)
	tanTheta := c.frustum.AspectRatio * tanPhi
	near := c.frustum.Near

	x := 2/width*windowPosition.X - 1
	y := 2/height*(height-windowPosition.Y) - 1

	position := transforms.MultiplyByPoint(c.transform, c.position)
	directionWC := transforms.MultiplyByPointAsVector(c.transform, c.direction).Normalize()
	rightWC := transforms.MultiplyByPointAsVector(c.transform, c.right).Normalize()
	upWC := transforms.MultiplyByPointAsVector(c.transform, c.up).Normalize()

	nearCenter := directionWC.Mul(near)
	xDir := rightWC.Mul(x * near * tanTheta)
	yDir := upWC.Mul(y * near * tanPhi)
	direction := nearCenter.Add(xDir).Add(yDir).Normalize()

	return intersect.NewRay(position, direction)
}

func (c *cameraImpl) PickEllipsoid(windowPosition r2.Point, ell *ellipsoid.Ellipsoid) (r3.Vector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ell == nil {
		ell = c.ellipsoid
	}
	ray := c.pickRay(windowPosition)
	interval, ok := intersect.RayEllipsoid(ray, ell)
	if !ok {
		return r3.Vector{}, false
	}
	t := interval.Lo
	if t <= 0 {
		t = interval.Hi
	}
	return ray.Point(t), true
}

func (c *cameraImpl) WorldToCameraCoordinates(vector r3.Vector) r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transforms.MultiplyByPointAsVector(c.invTransform, vector)
}

func (c *cameraImpl) WorldToCameraCoordinatesPoint(point r3.Vector) r3.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transforms.MultiplyByPoint(c.invTransform, point)
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

// viewMatrix builds the world-to-eye matrix from the world-space pose.
// Caller must hold the mutex.
func (c *cameraImpl) viewMatrix() mgl64.Mat4 {
	eye := transforms.MultiplyByPoint(c.transform, c.position)
	direction := transforms.MultiplyByPointAsVector(c.transform, c.direction)
	up := transforms.MultiplyByPointAsVector(c.transform, c.up)
	return mgl64.LookAtV(common.ToVec3(eye), common.ToVec3(eye.Add(direction)), common.ToVec3(up))
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum.ProjectionMatrix()
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum.ProjectionMatrix().Mul4(c.viewMatrix())
}

func (c *cameraImpl) CullingVolume() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.frustum.ProjectionMatrix().Mul4(c.viewMatrix()))
}
