package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/scene"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// pendingScene is a globe scene created once the engine has its window.
type pendingScene struct {
	key     int
	name    string
	options []scene.SceneBuilderOption
}

// WithProfiling enables logging of frame rate and camera update timings.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets how many times per second every active scene's camera
// controller is updated. Values <= 0 use 60.
//
// Parameters:
//   - fps: controller updates per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithWindow sets the window whose pointer input drives the scene cameras
// and whose framebuffer is the scenes' canvas.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers an already built scene at the given z-index key.
// Scenes render in ascending key order; input reaches every active scene.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithGlobeScene creates a globe scene on the engine window, so its camera
// and controller measure against the window framebuffer. The scene is built
// after every option has been applied; a scene that fails to build is
// logged and skipped.
//
// Parameters:
//   - key: the z-index determining render order
//   - name: the scene identifier
//   - options: scene options, including camera and controller options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGlobeScene(key int, name string, options ...scene.SceneBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.pendingScenes = append(e.pendingScenes, pendingScene{key: key, name: name, options: options})
	}
}

// WithWheelDeltaPerNotch sets the wheel units one scroll notch counts for
// when it reaches the camera controllers. Larger values zoom further per
// notch. Values <= 0 keep the default of 120.
func WithWheelDeltaPerNotch(delta float64) EngineBuilderOption {
	return func(e *engine) {
		if delta > 0 {
			e.wheelDeltaPerNotch = delta
		}
	}
}

// WithRenderFrameLimit caps how often the globe is redrawn, in frames per
// second. 0 leaves the render loop uncapped.
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
