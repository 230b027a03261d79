package scene

import (
	"github.com/Carmen-Shannon/lenticular/engine/renderer"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/pipeline"
)

// SceneBuilderOption configures a scene in NewScene.
type SceneBuilderOption func(s *scene)

// WithPipelineOptions passes extra options to the card pipeline, after the shaders are set.
//
// Parameters:
//   - opts: pipeline builder options such as pipeline.WithCullMode
//
// Returns:
//   - SceneBuilderOption: a function that appends the pipeline options
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.pipelineOptions = append(s.pipelineOptions, opts...)
	}
}

// WithSampler replaces the default clamp-to-edge linear sampler used by every sampler binding.
func WithSampler(data renderer.SamplerStagingData) SceneBuilderOption {
	return func(s *scene) {
		s.sampler = data
	}
}
