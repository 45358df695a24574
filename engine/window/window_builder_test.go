package window

import "testing"

func TestWindowOptions(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}

	WithTitle("Earth")(w)
	WithSize(800, 0)(w)
	WithSizeLimits(400, 300, 0, 0)(w)

	if w.title != "Earth" {
		t.Errorf("title = %q", w.title)
	}
	if w.width != 800 || w.height != 720 {
		t.Errorf("size = %dx%d, want 800x720", w.width, w.height)
	}
	if w.minWidth != 400 || w.minHeight != 300 || w.maxWidth != 0 || w.maxHeight != 0 {
		t.Errorf("limits = %d,%d,%d,%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
}

func TestScrollDelta(t *testing.T) {
	tests := []struct {
		name   string
		invert bool
		yoff   float64
		want   float64
	}{
		{name: "away zooms in", yoff: 1, want: 1},
		{name: "towards zooms out", yoff: -2, want: -2},
		{name: "inverted", invert: true, yoff: 1, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &engineWindow{}
			WithInvertScroll(tt.invert)(w)
			if got := w.scrollDelta(tt.yoff); got != tt.want {
				t.Errorf("scrollDelta(%v) = %v, want %v", tt.yoff, got, tt.want)
			}
		})
	}
}

func TestPixelRatioDefaultsToOne(t *testing.T) {
	if got := (&engineWindow{}).PixelRatio(); got != 1 {
		t.Errorf("PixelRatio = %v, want 1", got)
	}
	if got := (&engineWindow{pixelRatio: 2}).PixelRatio(); got != 2 {
		t.Errorf("PixelRatio = %v, want 2", got)
	}
}
