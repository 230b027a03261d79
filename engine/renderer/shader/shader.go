package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType is the pipeline stage a Shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex selects the @vertex entry point and parses vertex buffer layouts.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment selects the @fragment entry point.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

func (t ShaderType) visibility() wgpu.ShaderStage {
	if t == ShaderTypeFragment {
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageVertex
}

type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	declarations               []Declaration
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed WGSL stage along with the layout metadata parsed from it. The renderer turns this into
// a shader module, bind group layouts and vertex state without any hand written descriptors.
type Shader interface {
	// Key returns the cache key for the shader.
	Key() string

	// Source returns the WGSL after pre-processing.
	Source() string

	// ShaderType returns the stage.
	ShaderType() ShaderType

	// EntryPoint returns the stage's entry function name.
	EntryPoint() string

	// Module returns the module descriptor handed to CreateShaderModule.
	Module() *wgpu.ShaderModuleDescriptor

	// BindGroupLayoutDescriptors returns the layouts declared in the source, keyed by group.
	// Entry visibility is this shader's stage.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the variable bound at group and binding, or "".
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the WGSL variable name
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName finds the binding index of a variable in group.
	//
	// Parameters:
	//   - group: the @group index
	//   - varName: the WGSL variable name
	//
	// Returns:
	//   - int: the binding, or -1
	//   - bool: whether it was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayouts returns the vertex buffer layouts, one per vertex input struct. Empty for fragment shaders.
	VertexLayouts() []wgpu.VertexBufferLayout

	// Declarations returns the engine struct bindings produced by group directives.
	Declarations() []Declaration
}

var _ Shader = &shader{}

// NewShader pre-processes source and parses its layouts for the given stage.
//
// Parameters:
//   - key: cache key and debug label
//   - shaderType: the stage to compile
//   - source: WGSL, optionally with //@lens: directives
//
// Returns:
//   - Shader: the parsed shader
//   - error: a pre-processing error, or a missing entry point for the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:          key,
		source:       processed,
		shaderType:   shaderType,
		entryPoint:   parseEntryPoint(processed, shaderType),
		declarations: pp.Declarations(),
	}
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: no @%s entry point", key, shaderType)
	}
	if shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(processed)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(processed, shaderType.visibility())
	s.module = &wgpu.ShaderModuleDescriptor{
		Label:          key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: processed},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Declarations() []Declaration {
	return s.declarations
}
