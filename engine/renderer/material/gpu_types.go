package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUBlendParamsSource is the WGSL declaration of BlendParams matching GPUBlendParams.
//
//go:embed assets/blend_params.wgsl
var GPUBlendParamsSource string

// LenticularProgramSource is the card's WGSL program: the vertex stage transforms the plane, the fragment stage
// cross-fades textureA into textureB by params.ratio.
//
//go:embed assets/lenticular.wgsl
var LenticularProgramSource string

// GPUBlendParams mirrors the WGSL BlendParams uniform. Size: 16 bytes, the minimum uniform binding granularity.
type GPUBlendParams struct {
	Ratio float32    // offset 0
	_pad  [3]float32 // offset 4
}

// Size returns the uniform size in bytes.
func (g *GPUBlendParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the uniform little-endian.
//
// Returns:
//   - []byte: 16 bytes
func (g *GPUBlendParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Ratio))
	return buf
}
