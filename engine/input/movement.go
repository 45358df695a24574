package input

import "github.com/golang/geo/r2"

// Movement is the screen-space motion of a gesture during one frame.
type Movement struct {
	StartPosition r2.Point
	EndPosition   r2.Point

	// Pinch is set only for Pinch gestures.
	Pinch *PinchMovement
}

// Delta returns EndPosition - StartPosition.
func (m Movement) Delta() r2.Point {
	return m.EndPosition.Sub(m.StartPosition)
}

// IsZero reports whether the gesture did not move.
func (m Movement) IsZero() bool {
	return m.StartPosition == m.EndPosition
}

// PinchMovement splits a two-finger gesture into a change in finger distance
// (carried on the Y axis) and a change in rotation angle and center height.
type PinchMovement struct {
	Distance       Movement
	AngleAndHeight Movement
}
