package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the WGSL declaration of CameraUniform, pulled into shaders by the pre-processor.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform mirrors the WGSL CameraUniform struct. Size: 80 bytes.
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: mat4x4<f32>
	CameraPosition [3]float32  // offset 64: vec3<f32>
	_pad           float32     // offset 76
}

// Size returns the uniform size in bytes.
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the uniform little-endian for a buffer write.
//
// Returns:
//   - []byte: 80 bytes
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.CameraPosition {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
