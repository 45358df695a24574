package input

import "time"

// CameraEventAggregatorBuilderOption is a functional option for configuring a
// cameraEventAggregator.
type CameraEventAggregatorBuilderOption func(a *cameraEventAggregator)

// WithClock replaces time.Now as the source of press and release times.
//
// Parameters:
//   - now: clock function
//
// Returns:
//   - CameraEventAggregatorBuilderOption: option function to apply
func WithClock(now func() time.Time) CameraEventAggregatorBuilderOption {
	return func(a *cameraEventAggregator) {
		if now != nil {
			a.now = now
		}
	}
}
