package ebiten_view

import (
	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/model"
	"github.com/hajimehoshi/ebiten/v2"
)

// ProjectVertices runs the vertex stage on the CPU: each model vertex is transformed by mvp, divided by w, and
// mapped from normalized device coordinates to screen pixels with y growing downward. Texture coordinates are
// scaled to a texture of texWidth by texHeight pixels.
//
// Parameters:
//   - dst: slice reused for the result
//   - mvp: the column-major view-projection times model matrix
//   - vertices: model space vertices
//   - width, height: the screen size in pixels
//   - texWidth, texHeight: the source texture size in pixels
//
// Returns:
//   - []ebiten.Vertex: one projected vertex per input vertex
func ProjectVertices(dst []ebiten.Vertex, mvp [16]float32, vertices []model.GPUVertex, width, height, texWidth, texHeight float32) []ebiten.Vertex {
	dst = dst[:0]
	for _, v := range vertices {
		clip := common.TransformPoint(mvp[:], v.Position[0], v.Position[1], v.Position[2])
		w := clip[3]
		if w == 0 {
			w = 1e-6
		}
		ndcX, ndcY := clip[0]/w, clip[1]/w

		dst = append(dst, ebiten.Vertex{
			DstX:   (ndcX + 1) * 0.5 * width,
			DstY:   (1 - ndcY) * 0.5 * height,
			SrcX:   v.TexCoord[0] * texWidth,
			SrcY:   v.TexCoord[1] * texHeight,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	return dst
}

// narrowIndices converts mesh indices for DrawTriangles. Meshes past 65535 vertices are not supported.
func narrowIndices(indices []uint32) []uint16 {
	out := make([]uint16, len(indices))
	for i, idx := range indices {
		out[i] = uint16(idx)
	}
	return out
}
