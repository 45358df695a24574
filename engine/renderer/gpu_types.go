package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/ellipsoid"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/globe.wgsl
var globeShaderSource string

// GlobeShaderSource returns the complete WGSL module for the globe pass,
// with the camera uniform definition prepended.
func GlobeShaderSource() string {
	return camera.GPUCameraUniformSource + "\n" + globeShaderSource
}

// GPUGlobeUniform is the GPU-aligned globe uniform buffer.
// Size: 80 bytes (WGSL aligned).
type GPUGlobeUniform struct {
	InverseRadii    [3]float32 // offset  0: 1/radii of the ellipsoid (vec3<f32>)
	_pad0           float32    // offset 12
	ScaledEye       [3]float32 // offset 16: eye position divided by the radii (vec3<f32>)
	GridSpacing     float32    // offset 28: graticule spacing in radians
	GlobeColor      [4]float32 // offset 32
	GridColor       [4]float32 // offset 48
	BackgroundColor [4]float32 // offset 64
}

// Size returns the size of the GPUGlobeUniform struct in bytes.
func (g *GPUGlobeUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer for upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUGlobeUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(offset int, values ...float32) {
		for i, v := range values {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}
	put(0, g.InverseRadii[:]...)
	put(16, g.ScaledEye[:]...)
	put(28, g.GridSpacing)
	put(32, g.GlobeColor[:]...)
	put(48, g.GridColor[:]...)
	put(64, g.BackgroundColor[:]...)
	return buf
}

// GlobeStyle holds the colors and graticule spacing of the globe pass.
type GlobeStyle struct {
	GlobeColor      wgpu.Color
	GridColor       wgpu.Color
	BackgroundColor wgpu.Color

	// GridSpacing is the graticule spacing in radians.
	GridSpacing float64
}

// DefaultGlobeStyle returns a blue globe with a 10° graticule on a dark background.
func DefaultGlobeStyle() GlobeStyle {
	return GlobeStyle{
		GlobeColor:      wgpu.Color{R: 0.16, G: 0.32, B: 0.55, A: 1},
		GridColor:       wgpu.Color{R: 0.85, G: 0.85, B: 0.85, A: 1},
		BackgroundColor: wgpu.Color{R: 0.02, G: 0.02, B: 0.05, A: 1},
		GridSpacing:     10 * math.Pi / 180,
	}
}

// NewGPUGlobeUniform snapshots the eye position in the ellipsoid's scaled
// space. The division happens in float64 so the shader never sees
// Earth-scale coordinates.
//
// Parameters:
//   - cam: the camera whose eye is used
//   - ell: the rendered ellipsoid
//   - style: colors and graticule spacing
//
// Returns:
//   - GPUGlobeUniform: the uniform contents
func NewGPUGlobeUniform(cam camera.Camera, ell *ellipsoid.Ellipsoid, style GlobeStyle) GPUGlobeUniform {
	inverse := ell.OneOverRadii()
	eye := ell.TransformPositionToScaledSpace(cam.PositionWC())
	return GPUGlobeUniform{
		InverseRadii:    [3]float32{float32(inverse.X), float32(inverse.Y), float32(inverse.Z)},
		ScaledEye:       [3]float32{float32(eye.X), float32(eye.Y), float32(eye.Z)},
		GridSpacing:     float32(style.GridSpacing),
		GlobeColor:      colorToArray(style.GlobeColor),
		GridColor:       colorToArray(style.GridColor),
		BackgroundColor: colorToArray(style.BackgroundColor),
	}
}

func colorToArray(c wgpu.Color) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}
