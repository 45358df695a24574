package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Profiler tracks frame rate, camera update cost and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	mu sync.Mutex

	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	updateCount int
	updateTotal time.Duration
	updateMax   time.Duration
}

// Stats is one reporting interval's worth of measurements.
type Stats struct {
	FPS           float64
	Updates       int
	UpdateAverage time.Duration
	UpdateMax     time.Duration
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return newProfiler(time.Now, time.Second)
}

func newProfiler(now func() time.Time, interval time.Duration) *Profiler {
	return &Profiler{
		now:            now,
		lastTime:       now(),
		updateInterval: interval,
	}
}

// RecordUpdate adds the duration of one camera controller update to the
// current interval. Safe to call from the tick goroutine while Tick runs on
// the render goroutine.
//
// Parameters:
//   - d: how long the update took
func (p *Profiler) RecordUpdate(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateCount++
	p.updateTotal += d
	if d > p.updateMax {
		p.updateMax = d
	}
}

// Tick should be called once per rendered frame.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, controller update cost, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - Stats: the interval's measurements, valid when the bool is true
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	stats := Stats{
		FPS:       float64(p.frameCount) / elapsed.Seconds(),
		Updates:   p.updateCount,
		UpdateMax: p.updateMax,
	}
	if p.updateCount > 0 {
		stats.UpdateAverage = p.updateTotal / time.Duration(p.updateCount)
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Camera updates: %d (avg: %d µs, max: %d µs) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		stats.FPS, stats.Updates, stats.UpdateAverage.Microseconds(), stats.UpdateMax.Microseconds(),
		allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.updateCount = 0
	p.updateTotal = 0
	p.updateMax = 0
	return stats, true
}
