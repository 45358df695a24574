package geodesic

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
)

// Segment is a pair of end points to densify.
type Segment struct {
	Start ellipsoid.Cartographic
	End   ellipsoid.Cartographic
}

// BatchInterpolate densifies every segment into samples evenly spaced points
// (including both end points) along its geodesic. Segments are solved in
// parallel on a bounded worker pool; the result order matches segments.
//
// Parameters:
//   - ell: the ellipsoid, nil for WGS84
//   - segments: the end point pairs to densify
//   - samples: points per segment, at least 2
//   - workers: pool size, values below 1 use a single worker
//
// Returns:
//   - [][]ellipsoid.Cartographic: the densified paths, one per segment
//   - error: the first segment error encountered, wrapped with its index
func BatchInterpolate(ell *ellipsoid.Ellipsoid, segments []Segment, samples, workers int) ([][]ellipsoid.Cartographic, error) {
	if samples < 2 {
		return nil, fmt.Errorf("samples must be at least 2, got %d", samples)
	}
	if workers < 1 {
		workers = 1
	}

	out := make([][]ellipsoid.Cartographic, len(segments))
	errs := make([]error, len(segments))

	pool := worker.NewDynamicWorkerPool(workers, len(segments)+1, 1*time.Second)

	var wg sync.WaitGroup
	for i := range segments {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				out[idx], errs[idx] = densify(ell, segments[idx], samples)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return out, nil
}

// densify samples one segment.
func densify(ell *ellipsoid.Ellipsoid, seg Segment, samples int) ([]ellipsoid.Cartographic, error) {
	g, err := NewEllipsoidGeodesicBetween(seg.Start, seg.End, ell)
	if err != nil {
		return nil, err
	}

	points := make([]ellipsoid.Cartographic, samples)
	step := g.SurfaceDistance() / float64(samples-1)
	for i := range points {
		p, err := g.InterpolateUsingSurfaceDistance(step * float64(i))
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}
