package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/camera"
	"github.com/Carmen-Shannon/lenticular/engine/game_object"
	"github.com/Carmen-Shannon/lenticular/engine/model"
	"github.com/Carmen-Shannon/lenticular/engine/renderer"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrReleased is returned by Render after Release.
var ErrReleased = errors.New("scene: released")

// Scene is the card scene: one object drawn with one material through one camera. It owns the renderer and every
// GPU resource created for the object.
type Scene interface {
	// Name returns the scene name.
	Name() string

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Object returns the drawn object.
	Object() game_object.GameObject

	// Material returns the card material.
	Material() material.Material

	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// Render draws one frame. Textures staged on the material since the last frame are uploaded first, then the
	// camera, model and blend uniforms are written and the object is drawn and presented.
	//
	// Returns:
	//   - error: ErrReleased after Release, or the first GPU failure of the frame
	Render() error

	// Release frees the scene's GPU resources, releases the material and the renderer. Safe to call more than once.
	Release()
}

type scene struct {
	mu sync.Mutex

	name string
	cam  camera.Camera
	r    renderer.Renderer
	obj  game_object.GameObject
	mat  material.Material

	pipelineOptions []pipeline.PipelineBuilderOption
	sampler         renderer.SamplerStagingData

	pipelineKey string
	layouts     map[int]wgpu.BindGroupLayoutDescriptor
	plan        bindingPlan

	meshProvider bind_group_provider.BindGroupProvider
	providers    []bind_group_provider.BindGroupProvider // indexed by group

	released bool
}

var _ Scene = &scene{}

// NewScene builds the pipeline for the material's program, uploads the object's mesh, and creates one bind group
// per program group with placeholder textures in both card slots.
//
// Parameters:
//   - name: the scene name, used in GPU labels
//   - cam: the camera
//   - r: the renderer
//   - obj: the object to draw; it must carry a model
//   - mat: the material holding the program, textures and blend ratio
//   - options: builder options
//
// Returns:
//   - Scene: the ready scene
//   - error: an error if any argument is missing, the program does not compile into the expected layout, or a GPU
//     resource could not be created
func NewScene(name string, cam camera.Camera, r renderer.Renderer, obj game_object.GameObject, mat material.Material, options ...SceneBuilderOption) (Scene, error) {
	switch {
	case cam == nil:
		return nil, errors.New("scene: camera is required")
	case r == nil:
		return nil, errors.New("scene: renderer is required")
	case obj == nil || obj.Model() == nil:
		return nil, errors.New("scene: object with a model is required")
	case mat == nil:
		return nil, errors.New("scene: material is required")
	}

	s := &scene{
		name: name,
		cam:  cam,
		r:    r,
		obj:  obj,
		mat:  mat,
		sampler: renderer.SamplerStagingData{
			AddressModeU: wgpu.AddressModeClampToEdge,
			AddressModeV: wgpu.AddressModeClampToEdge,
			AddressModeW: wgpu.AddressModeClampToEdge,
			MagFilter:    wgpu.FilterModeLinear,
			MinFilter:    wgpu.FilterModeLinear,
		},
	}
	for _, opt := range options {
		opt(s)
	}

	if err := s.init(); err != nil {
		s.releaseResources()
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	common.Logger().Info("scene ready", "name", name, "pipeline", s.pipelineKey, "groups", len(s.providers))
	return s, nil
}

func (s *scene) init() error {
	vs, err := shader.NewShader(s.mat.PipelineKey()+"_vs", shader.ShaderTypeVertex, s.mat.ProgramSource())
	if err != nil {
		return err
	}
	fs, err := shader.NewShader(s.mat.PipelineKey()+"_fs", shader.ShaderTypeFragment, s.mat.ProgramSource())
	if err != nil {
		return err
	}

	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}, s.pipelineOptions...)
	p := pipeline.NewPipeline(s.mat.PipelineKey(), opts...)

	s.layouts = p.BindGroupLayoutDescriptors()
	if s.plan, err = planBindings(vs, fs, s.layouts); err != nil {
		return err
	}
	if err := s.r.RegisterPipelines(p); err != nil {
		return err
	}
	s.pipelineKey = p.PipelineKey()

	mdl := s.obj.Model()
	s.meshProvider = bind_group_provider.NewBindGroupProvider(s.name + " " + mdl.Name() + " Mesh")
	if err := s.r.InitMeshBuffers(s.meshProvider, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		return fmt.Errorf("mesh: %w", err)
	}

	s.providers = make([]bind_group_provider.BindGroupProvider, len(s.plan.groups))
	for _, g := range s.plan.groups {
		s.providers[g] = bind_group_provider.NewBindGroupProvider(
			fmt.Sprintf("%s Group %d", s.name, g),
			bind_group_provider.WithGroup(uint32(g)),
		)
	}

	for slot, ref := range s.plan.textures {
		if err := s.r.InitTextureView(s.providers[ref.group], ref.binding, s.mat.Texture(slot)); err != nil {
			return fmt.Errorf("texture %s: %w", slot, err)
		}
	}
	for _, ref := range s.plan.samplers {
		if err := s.r.InitSampler(s.providers[ref.group], ref.binding, s.sampler); err != nil {
			return fmt.Errorf("sampler: %w", err)
		}
	}
	for _, g := range s.plan.groups {
		if err := s.r.InitBindGroup(s.providers[g], s.layouts[g]); err != nil {
			return fmt.Errorf("bind group %d: %w", g, err)
		}
	}
	return nil
}

func (s *scene) Name() string                   { return s.name }
func (s *scene) Camera() camera.Camera          { return s.cam }
func (s *scene) Object() game_object.GameObject { return s.obj }
func (s *scene) Material() material.Material    { return s.mat }
func (s *scene) Renderer() renderer.Renderer    { return s.r }

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}

	if err := s.uploadPending(); err != nil {
		return err
	}
	s.r.WriteBuffers(s.frameWrites())

	if err := s.r.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if s.obj.Enabled() {
		if err := s.r.DrawCall(s.pipelineKey, s.meshProvider, s.providers); err != nil {
			// Close out the frame so the next BeginFrame starts clean.
			if endErr := s.r.EndFrame(); endErr == nil {
				s.r.Present()
			}
			return fmt.Errorf("draw: %w", err)
		}
	}
	if err := s.r.EndFrame(); err != nil {
		return err
	}
	s.r.Present()
	return nil
}

// uploadPending moves images staged on the material into GPU textures and rebuilds each affected bind group once.
func (s *scene) uploadPending() error {
	pending := s.mat.TakePending()
	if len(pending) == 0 {
		return nil
	}

	dirty := make(map[int]bool)
	for _, pt := range pending {
		ref, ok := s.plan.textures[pt.Slot]
		if !ok {
			continue
		}
		if err := s.r.InitTextureView(s.providers[ref.group], ref.binding, pt.Data); err != nil {
			return fmt.Errorf("upload texture %s: %w", pt.Slot, err)
		}
		dirty[ref.group] = true
	}
	for g := range dirty {
		if err := s.r.InitBindGroup(s.providers[g], s.layouts[g]); err != nil {
			return fmt.Errorf("rebuild bind group %d: %w", g, err)
		}
	}
	return nil
}

func (s *scene) frameWrites() []bind_group_provider.BufferWrite {
	camUniform := s.cam.Uniform()
	modelData := model.GPUModelData{Model: s.obj.ModelMatrix()}
	params := s.mat.Params()

	return []bind_group_provider.BufferWrite{
		{Provider: s.providers[s.plan.camera.group], Binding: s.plan.camera.binding, Data: camUniform.Marshal()},
		{Provider: s.providers[s.plan.object.group], Binding: s.plan.object.binding, Data: modelData.Marshal()},
		{Provider: s.providers[s.plan.params.group], Binding: s.plan.params.binding, Data: params.Marshal()},
	}
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	s.mat.Release()
	s.releaseResources()
	s.r.Release()
	common.Logger().Info("scene released", "name", s.name)
}

func (s *scene) releaseResources() {
	for _, p := range s.providers {
		if p != nil {
			p.Release()
		}
	}
	s.providers = nil
	if s.meshProvider != nil {
		s.meshProvider.Release()
		s.meshProvider = nil
	}
}
