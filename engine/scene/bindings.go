package scene

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// slotRef locates one binding in the program.
type slotRef struct {
	group   int
	binding int
}

// bindingPlan records where the program expects each piece of scene state. It is worked out once from the
// shaders so the per-frame path is plain lookups.
type bindingPlan struct {
	camera   slotRef
	object   slotRef
	params   slotRef
	textures map[material.TextureSlot]slotRef
	samplers []slotRef
	groups   []int
}

// planBindings resolves the camera, model and blend uniforms from the group directives, and the texture and sampler
// bindings from the merged layouts.
//
// Parameters:
//   - vs: the vertex shader
//   - fs: the fragment shader
//   - layouts: the merged bind group layouts of both stages
//
// Returns:
//   - bindingPlan: the resolved bindings
//   - error: an error if a uniform or texture slot has no binding, or a group index is skipped
func planBindings(vs, fs shader.Shader, layouts map[int]wgpu.BindGroupLayoutDescriptor) (bindingPlan, error) {
	plan := bindingPlan{
		camera:   slotRef{-1, -1},
		object:   slotRef{-1, -1},
		params:   slotRef{-1, -1},
		textures: make(map[material.TextureSlot]slotRef),
	}

	for _, decls := range [][]shader.Declaration{vs.Declarations(), fs.Declarations()} {
		for _, d := range decls {
			ref := slotRef{d.Group, d.Binding}
			switch d.Struct {
			case shader.StructCamera:
				plan.camera = ref
			case shader.StructModelData:
				plan.object = ref
			case shader.StructBlendParams:
				plan.params = ref
			}
		}
	}

	for name, ref := range map[string]slotRef{"camera": plan.camera, "model data": plan.object, "blend params": plan.params} {
		if ref.group < 0 {
			return bindingPlan{}, fmt.Errorf("program declares no %s uniform", name)
		}
	}

	for g, desc := range layouts {
		plan.groups = append(plan.groups, g)
		for _, e := range desc.Entries {
			ref := slotRef{g, int(e.Binding)}
			switch {
			case e.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
				name := fs.BindGroupVarName(g, int(e.Binding))
				slot, ok := material.SlotForVarName(name)
				if !ok {
					return bindingPlan{}, fmt.Errorf("texture %q at group %d binding %d is not a card slot", name, g, e.Binding)
				}
				plan.textures[slot] = ref
			case e.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
				plan.samplers = append(plan.samplers, ref)
			}
		}
	}
	sort.Ints(plan.groups)

	for i, g := range plan.groups {
		if g != i {
			return bindingPlan{}, fmt.Errorf("bind group %d is missing", i)
		}
	}
	for _, slot := range []material.TextureSlot{material.SlotA, material.SlotB} {
		if _, ok := plan.textures[slot]; !ok {
			return bindingPlan{}, fmt.Errorf("program has no binding for texture %s", slot)
		}
	}
	return plan, nil
}
