package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// The globe pass is a single full-screen triangle, so the default is MSAAOff.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.sampleCount = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithEllipsoid sets the ellipsoid drawn by the globe pass. Defaults to WGS84.
//
// Parameters:
//   - ell: the ellipsoid to draw
//
// Returns:
//   - RendererBuilderOption: a function that applies the ellipsoid option to a renderer
func WithEllipsoid(ell *ellipsoid.Ellipsoid) RendererBuilderOption {
	return func(r *renderer) {
		if ell != nil {
			r.ellipsoid = ell
		}
	}
}

// WithGlobeColor sets the surface color of the globe.
func WithGlobeColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.style.GlobeColor = color
	}
}

// WithGridColor sets the graticule line color.
func WithGridColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.style.GridColor = color
	}
}

// WithBackgroundColor sets the color behind the globe.
func WithBackgroundColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.style.BackgroundColor = color
	}
}

// WithGridSpacing sets the graticule spacing in degrees. Non-positive values are ignored.
func WithGridSpacing(degrees float64) RendererBuilderOption {
	return func(r *renderer) {
		if degrees > 0 {
			r.style.GridSpacing = degrees * math.Pi / 180
		}
	}
}
