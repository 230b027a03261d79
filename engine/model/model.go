package model

import "github.com/Carmen-Shannon/lenticular/common"

type model struct {
	name      string
	width     float32
	height    float32
	segmentsX int
	segmentsY int
	vertices  []GPUVertex
	indices   []uint32
}

// Model is an immutable indexed triangle mesh together with the raw buffers the renderer uploads.
type Model interface {
	// Name returns the mesh identifier.
	Name() string

	// Size returns the extent of the mesh in world units.
	//
	// Returns:
	//   - width, height: extent along X and Y
	Size() (width, height float32)

	// Vertices returns the mesh vertices. Callers must not modify the slice.
	Vertices() []GPUVertex

	// Indices returns counter-clockwise triangle indices into Vertices. Callers must not modify the slice.
	Indices() []uint32

	// VertexData returns the vertex buffer contents.
	//
	// Returns:
	//   - []byte: len(Vertices()) * 20 bytes
	VertexData() []byte

	// IndexData returns the index buffer contents as little-endian uint32.
	IndexData() []byte

	// IndexCount returns the number of indices.
	IndexCount() int
}

var _ Model = &model{}

// NewPlane builds a flat rectangle centered on the origin in the XY plane, facing +Z. The grid is subdivided
// segmentsX by segmentsY times (one by one unless WithSegments says otherwise).
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - options: ModelBuilderOption functions
//
// Returns:
//   - Model: the plane mesh
func NewPlane(width, height float32, options ...ModelBuilderOption) Model {
	m := &model{
		name:      "plane",
		width:     width,
		height:    height,
		segmentsX: 1,
		segmentsY: 1,
	}
	for _, opt := range options {
		opt(m)
	}
	m.segmentsX = max(m.segmentsX, 1)
	m.segmentsY = max(m.segmentsY, 1)
	m.buildPlane()
	return m
}

// buildPlane lays the grid out row by row from the top edge, so uv (0, 0) lands on the top-left corner.
func (m *model) buildPlane() {
	cols, rows := m.segmentsX+1, m.segmentsY+1
	m.vertices = make([]GPUVertex, 0, cols*rows)
	for iy := 0; iy < rows; iy++ {
		v := float32(iy) / float32(m.segmentsY)
		for ix := 0; ix < cols; ix++ {
			u := float32(ix) / float32(m.segmentsX)
			m.vertices = append(m.vertices, GPUVertex{
				Position: [3]float32{(u - 0.5) * m.width, (0.5 - v) * m.height, 0},
				TexCoord: [2]float32{u, v},
			})
		}
	}

	m.indices = make([]uint32, 0, m.segmentsX*m.segmentsY*6)
	for iy := 0; iy < m.segmentsY; iy++ {
		for ix := 0; ix < m.segmentsX; ix++ {
			a := uint32(iy*cols + ix)
			b := a + uint32(cols)
			c := b + 1
			d := a + 1
			m.indices = append(m.indices, a, b, d, b, c, d)
		}
	}
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Size() (width, height float32) {
	return m.width, m.height
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	var stride GPUVertex
	buf := make([]byte, len(m.vertices)*stride.Size())
	for i := range m.vertices {
		m.vertices[i].marshalTo(buf[i*stride.Size():])
	}
	return buf
}

func (m *model) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}
