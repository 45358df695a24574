// Package renderer draws the globe ellipsoid with a graticule into a window
// surface. The ellipsoid is ray cast per pixel in a single full-screen pass.
package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	ellipsoid *ellipsoid.Ellipsoid
	style     GlobeStyle

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	sampleCount          MSAASampleCount
}

// Renderer draws the globe as seen from a camera.
type Renderer interface {
	// Resize reconfigures the surface after the window changed size.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	//
	// Returns:
	//   - error: error if the surface attachments cannot be recreated
	Resize(width, height int) error

	// SetPresentMode changes the present mode. It applies on the next Resize.
	SetPresentMode(mode PresentMode)

	// Render draws one frame of the globe from cam and presents it.
	//
	// Parameters:
	//   - cam: the camera to render from
	//
	// Returns:
	//   - error: error if the frame could not be drawn
	Render(cam camera.Camera) error

	// Ellipsoid returns the ellipsoid being drawn.
	Ellipsoid() *ellipsoid.Ellipsoid

	// Release frees the GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// newRenderer applies the defaults and options without touching the GPU.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		ellipsoid:   ellipsoid.WGS84,
		style:       DefaultGlobeStyle(),
		sampleCount: MSAAOff,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// NewRenderer creates a Renderer drawing into the window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window whose surface is drawn into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: error if the GPU device or globe pipeline cannot be created
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount)
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer backend: %w", err)
		}
		r.backend = backend
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(w.Width(), w.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}

	var cameraUniform camera.GPUCameraUniform
	var globeUniform GPUGlobeUniform
	if err := r.backend.CreateGlobePipeline(GlobeShaderSource(), uint64(cameraUniform.Size()), uint64(globeUniform.Size())); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Render(cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cameraUniform := camera.NewGPUCameraUniform(cam)
	globeUniform := NewGPUGlobeUniform(cam, r.ellipsoid, r.style)
	return r.backend.DrawGlobe(cameraUniform.Marshal(), globeUniform.Marshal(), r.style.BackgroundColor)
}

func (r *renderer) Ellipsoid() *ellipsoid.Ellipsoid {
	return r.ellipsoid
}

func (r *renderer) Release() {
	r.backend.Release()
}
