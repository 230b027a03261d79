package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("card")
	if p.PipelineKey() != "card" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test and write should default on")
	}
	if p.BlendEnabled() {
		t.Error("blend should default off")
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("primitive state = %v %v %v", p.CullMode(), p.Topology(), p.FrontFace())
	}
	if p.BlendState() == nil {
		t.Error("default blend state missing")
	}
	if p.Registered() || p.RenderPipeline() != nil {
		t.Error("new pipeline should not be registered")
	}
	if p.Shader(shader.ShaderTypeVertex) != nil {
		t.Error("vertex shader should be unset")
	}
}

func TestPipelineOptions(t *testing.T) {
	custom := &wgpu.BlendState{}
	p := NewPipeline("opts",
		WithDepthTest(false),
		WithDepthWrite(false),
		WithBlend(true, custom),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("depth options not applied")
	}
	if !p.BlendEnabled() || p.BlendState() != custom {
		t.Error("blend option not applied")
	}
	if p.CullMode() != wgpu.CullModeBack || p.Topology() != wgpu.PrimitiveTopologyLineList || p.FrontFace() != wgpu.FrontFaceCW {
		t.Error("primitive options not applied")
	}
	if p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Errorf("WriteMask() = %v", p.WriteMask())
	}

	keep := NewPipeline("keep", WithBlend(true, nil))
	if keep.BlendState() == nil {
		t.Error("nil blend state should keep the default")
	}
}

func TestBindGroupLayoutDescriptorsMerge(t *testing.T) {
	vs, err := shader.NewShader("card_vs", shader.ShaderTypeVertex, material.LenticularProgramSource)
	if err != nil {
		t.Fatalf("vertex shader: %v", err)
	}
	fs, err := shader.NewShader("card_fs", shader.ShaderTypeFragment, material.LenticularProgramSource)
	if err != nil {
		t.Fatalf("fragment shader: %v", err)
	}
	p := NewPipeline("card", WithVertexShader(vs), WithFragmentShader(fs))
	if p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("Shader(fragment) did not return the fragment shader")
	}

	merged := p.BindGroupLayoutDescriptors()
	if len(merged) != 3 {
		t.Fatalf("got %d groups, want 3", len(merged))
	}
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for g, desc := range merged {
		for i, e := range desc.Entries {
			if e.Visibility != both {
				t.Errorf("group %d binding %d visibility = %v, want vertex|fragment", g, e.Binding, e.Visibility)
			}
			if i > 0 && desc.Entries[i-1].Binding >= e.Binding {
				t.Errorf("group %d entries not sorted by binding", g)
			}
		}
	}
	if len(merged[2].Entries) != 4 {
		t.Errorf("group 2 has %d entries, want 4", len(merged[2].Entries))
	}
}

func TestMergeBindGroupLayoutsDisjoint(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 2, Visibility: wgpu.ShaderStageFragment}}},
	}
	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 2 {
		t.Fatalf("got %d groups, want 2", len(merged))
	}
	if merged[0].Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Error("vertex-only group changed visibility")
	}
	if merged[1].Entries[0].Visibility != wgpu.ShaderStageFragment {
		t.Error("fragment-only group changed visibility")
	}

	if got := mergeBindGroupLayouts(nil, nil); len(got) != 0 {
		t.Errorf("merge of nothing = %v", got)
	}
}
