package shader

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormatInfo pairs a vertex attribute format with its size in bytes.
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// typeLayout is the WGSL size and alignment of a host-shareable type.
type typeLayout struct {
	size  uint64
	align uint64
}

// parsedField is one member of a WGSL struct. location is -1 when the member has no @location.
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

type parsedStruct struct {
	name   string
	fields []parsedField
}
