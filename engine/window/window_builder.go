package window

// WindowBuilderOption is a functional option for configuring the globe
// viewer's window. Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size in screen coordinates. The canvas the
// camera measures against is the framebuffer, which is larger on high-DPI
// displays. Non-positive values keep the default.
//
// Parameters:
//   - width: initial width
//   - height: initial height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds how far the user may resize the window. A zero
// bound leaves that side unlimited.
//
// Parameters:
//   - minWidth, minHeight: smallest size
//   - maxWidth, maxHeight: largest size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
		w.minHeight = minHeight
		w.maxWidth = maxWidth
		w.maxHeight = maxHeight
	}
}

// WithInvertScroll flips the wheel direction, so scrolling towards the user
// zooms in.
func WithInvertScroll(invert bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.invertScroll = invert
	}
}
