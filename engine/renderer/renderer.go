package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type renderer struct {
	mu sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer owns the GPU device and the window surface. It caches registered pipelines by key and exposes the
// resource creation and per-frame calls a scene needs. All calls are expected from the render goroutine.
type Renderer interface {
	// Pipeline returns the cached pipeline for key, or nil.
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline for each description and caches it under its key.
	//
	// Parameters:
	//   - pipelines: the descriptions to register
	//
	// Returns:
	//   - error: the first registration failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// InitMeshBuffers uploads a mesh into vertex and index buffers held by provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the uniform buffers and bind group described by descriptor.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads texture pixels for the given binding of provider.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler for the given binding of provider.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData SamplerStagingData) error

	// WriteBuffers queues uniform writes for the next submission.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and starts the render pass.
	BeginFrame() error

	// DrawCall draws the mesh held by meshProvider with the pipeline cached under pipelineKey.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered pipeline
	//   - meshProvider: the provider holding the vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at their own group index
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or no frame is in progress
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits it.
	EndFrame() error

	// Present shows the finished frame.
	Present()

	// SetPresentMode switches between vsync and uncapped presentation.
	SetPresentMode(mode PresentMode) error

	// Release frees every cached pipeline and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given backend presenting to the surface. The surface is configured once
// at its current size.
//
// Parameters:
//   - backendType: the GPU backend; only BackendTypeWGPU exists
//   - surface: the source of the native surface and framebuffer size
//   - options: builder options
//
// Returns:
//   - Renderer: the renderer
//   - error: ErrSurfaceUnavailable (wrapped) when no surface, adapter or device can be obtained
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    wgpu.Color{R: 0, G: 0, B: 0, A: 1},
	}
	for _, opt := range options {
		opt(r)
	}

	if surface == nil {
		return nil, fmt.Errorf("%w: no window", ErrSurfaceUnavailable)
	}

	switch backendType {
	case BackendTypeWGPU:
		backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.presentMode, r.clearColor)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	default:
		return nil, fmt.Errorf("unsupported renderer backend type %d", backendType)
	}

	if err := r.backend.ConfigureSurface(surface.Width(), surface.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %s: %w", p.PipelineKey(), err)
		}
		r.mu.Lock()
		if old, ok := r.pipelineCache[p.PipelineKey()]; ok && old != p {
			old.Release()
		}
		r.pipelineCache[p.PipelineKey()] = p
		r.mu.Unlock()
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("pipeline %q not registered", pipelineKey)
	}
	return r.backend.DrawCall(p, meshProvider, bindGroups)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.mu.Lock()
	r.presentMode = mode
	r.mu.Unlock()
	return r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
