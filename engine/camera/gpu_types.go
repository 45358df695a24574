package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/go-gl/mathgl/mgl64"
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned camera uniform buffer.
// Size: 144 bytes (WGSL aligned).
type GPUCameraUniform struct {
	ViewProj           [16]float32 // offset   0: combined view-projection matrix (mat4x4<f32>)
	InverseViewProjRTE [16]float32 // offset  64: inverse view-projection with the eye at the origin (mat4x4<f32>)
	CameraPosition     [3]float32  // offset 128: world-space camera position (vec3<f32>)
	_pad               float32     // offset 140: padding to 144 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer for upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.InverseViewProjRTE[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], 0)
	return buf
}

// NewGPUCameraUniform snapshots cam into single-precision uniform data.
// Earth-scale translations lose precision in float32, so the inverse matrix
// is built relative to the eye and only carries the view rotation.
//
// Parameters:
//   - cam: the camera to snapshot
//
// Returns:
//   - GPUCameraUniform: the uniform contents
func NewGPUCameraUniform(cam Camera) GPUCameraUniform {
	var u GPUCameraUniform
	viewProj := cam.ViewProjectionMatrix()
	for i := range 16 {
		u.ViewProj[i] = float32(viewProj[i])
	}
	rotation := mgl64.LookAtV(mgl64.Vec3{}, common.ToVec3(cam.DirectionWC()), common.ToVec3(cam.UpWC()))
	inverseRTE := cam.ProjectionMatrix().Mul4(rotation).Inv()
	for i := range 16 {
		u.InverseViewProjRTE[i] = float32(inverseRTE[i])
	}
	p := cam.PositionWC()
	u.CameraPosition = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	return u
}
