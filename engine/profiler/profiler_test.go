package profiler

import (
	"testing"
	"time"
)

func TestTickReportsPerInterval(t *testing.T) {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := newProfiler(func() time.Time { return current }, time.Second)

	p.RecordUpdate(100 * time.Microsecond)
	p.RecordUpdate(300 * time.Microsecond)

	current = current.Add(500 * time.Millisecond)
	if _, ok := p.Tick(); ok {
		t.Fatal("no report before the interval elapses")
	}

	current = current.Add(500 * time.Millisecond)
	stats, ok := p.Tick()
	if !ok {
		t.Fatal("expected a report after one second")
	}
	if stats.FPS != 2 {
		t.Errorf("FPS = %v, want 2", stats.FPS)
	}
	if stats.Updates != 2 || stats.UpdateAverage != 200*time.Microsecond || stats.UpdateMax != 300*time.Microsecond {
		t.Errorf("update stats = %+v", stats)
	}

	current = current.Add(time.Second)
	stats, _ = p.Tick()
	if stats.Updates != 0 || stats.UpdateAverage != 0 {
		t.Errorf("update stats should reset each interval, got %+v", stats)
	}
}
