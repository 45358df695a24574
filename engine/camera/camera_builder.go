package camera

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/golang/geo/r3"
)

// CameraBuilderOption is a functional option for configuring a cameraImpl.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial camera position in world coordinates.
//
// Parameters:
//   - position: the camera position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position r3.Vector) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithDirection sets the initial view direction. It is normalized.
//
// Parameters:
//   - direction: the view direction
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's direction
func WithDirection(direction r3.Vector) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.direction = direction.Normalize()
	}
}

// WithUp sets the initial up vector. It is re-orthogonalized against the
// direction once all options are applied.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up r3.Vector) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up.Normalize()
	}
}

// WithFrustum replaces the default perspective frustum.
//
// Parameters:
//   - frustum: the frustum to use
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's frustum
func WithFrustum(frustum PerspectiveFrustum) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.frustum = frustum
	}
}

// WithEllipsoid sets the ellipsoid used for geodetic queries and SetView.
//
// Parameters:
//   - ell: the ellipsoid; nil keeps WGS84
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's ellipsoid
func WithEllipsoid(ell *ellipsoid.Ellipsoid) CameraBuilderOption {
	return func(c *cameraImpl) {
		if ell != nil {
			c.ellipsoid = ell
		}
	}
}

// WithConstrainedAxis constrains horizontal rotation about axis, typically +Z
// to keep the globe's north up.
//
// Parameters:
//   - axis: the constrained axis
//
// Returns:
//   - CameraBuilderOption: a function that sets the constrained axis
func WithConstrainedAxis(axis r3.Vector) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.constrainedAxis = axis
		c.hasConstrainedAxis = true
	}
}
