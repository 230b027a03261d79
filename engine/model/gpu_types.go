package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the WGSL declaration of VertexInput matching GPUVertex.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is one mesh vertex as laid out in the vertex buffer. Size: 20 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: model space position
	TexCoord [2]float32 // offset 12: uv, v = 0 on the top row of the image
}

// Size returns the vertex stride in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the vertex little-endian.
//
// Returns:
//   - []byte: 20 bytes
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.marshalTo(buf)
	return buf
}

func (g *GPUVertex) marshalTo(buf []byte) {
	for i, v := range g.Position {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.TexCoord[1]))
}

// GPUModelDataSource is the WGSL declaration of ModelData matching GPUModelData.
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData holds the object's model-to-world matrix. Size: 64 bytes.
type GPUModelData struct {
	Model [16]float32 // offset 0: mat4x4<f32>
}

// Size returns the uniform size in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the matrix little-endian.
//
// Returns:
//   - []byte: 64 bytes
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
