package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
)

// ErrInvalidDimensions is returned by PixelDimensions for non-positive inputs.
var ErrInvalidDimensions = errors.New("camera: drawing buffer dimensions and pixel ratio must be positive")

// PerspectiveFrustum describes a symmetric perspective view volume.
type PerspectiveFrustum struct {
	// Fov is the angle of the larger viewport dimension in radians.
	Fov         float64
	AspectRatio float64
	Near        float64
	Far         float64
}

// DefaultFrustum returns a 60° frustum suitable for a whole-globe view.
func DefaultFrustum() PerspectiveFrustum {
	return PerspectiveFrustum{
		Fov:         math.Pi / 3,
		AspectRatio: 1,
		Near:        1,
		Far:         500000000,
	}
}

// Fovy returns the vertical field of view in radians.
func (f PerspectiveFrustum) Fovy() float64 {
	if f.AspectRatio <= 1 {
		return f.Fov
	}
	return 2 * math.Atan(math.Tan(f.Fov*0.5)/f.AspectRatio)
}

// Top returns the half height of the near plane.
func (f PerspectiveFrustum) Top() float64 {
	return f.Near * math.Tan(0.5*f.Fovy())
}

// Right returns the half width of the near plane.
func (f PerspectiveFrustum) Right() float64 {
	return f.AspectRatio * f.Top()
}

// ProjectionMatrix returns the perspective projection for the frustum.
func (f PerspectiveFrustum) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(f.Fovy(), f.AspectRatio, f.Near, f.Far)
}

// PixelDimensions returns the world-space size of one pixel at distance from
// the eye.
//
// Parameters:
//   - drawingBufferWidth: drawing buffer width in pixels
//   - drawingBufferHeight: drawing buffer height in pixels
//   - distance: distance from the eye along the view direction
//   - pixelRatio: device pixels per CSS pixel
//
// Returns:
//   - r2.Point: pixel width in X and pixel height in Y
//   - error: ErrInvalidDimensions when a size or the ratio is not positive
func (f PerspectiveFrustum) PixelDimensions(drawingBufferWidth, drawingBufferHeight int, distance, pixelRatio float64) (r2.Point, error) {
	if drawingBufferWidth <= 0 || drawingBufferHeight <= 0 {
		return r2.Point{}, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, drawingBufferWidth, drawingBufferHeight)
	}
	if pixelRatio <= 0 {
		return r2.Point{}, fmt.Errorf("%w: pixel ratio %v", ErrInvalidDimensions, pixelRatio)
	}

	inverseNear := 1 / f.Near
	tanTheta := f.Top() * inverseNear
	pixelHeight := 2 * pixelRatio * distance * tanTheta / float64(drawingBufferHeight)
	tanTheta = f.Right() * inverseNear
	pixelWidth := 2 * pixelRatio * distance * tanTheta / float64(drawingBufferWidth)

	return r2.Point{X: pixelWidth, Y: pixelHeight}, nil
}
