package material

import (
	"math"

	"github.com/Carmen-Shannon/lenticular/common"
)

// MaterialBuilderOption configures a Material in NewMaterial.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPipelineKey sets the render pipeline key.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that sets the key
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithProgramSource replaces the built-in WGSL program. The replacement must declare the same bindings.
//
// Parameters:
//   - source: WGSL with //@lens: directives
//
// Returns:
//   - MaterialBuilderOption: a function that sets the program
func WithProgramSource(source string) MaterialBuilderOption {
	return func(m *material) {
		m.program = source
	}
}

// WithBlendRatio sets the starting ratio.
//
// Parameters:
//   - ratio: weight of SlotB
//
// Returns:
//   - MaterialBuilderOption: a function that sets the ratio
func WithBlendRatio(ratio float32) MaterialBuilderOption {
	return func(m *material) {
		m.ratio.Store(math.Float32bits(ratio))
	}
}

// WithPlaceholder sets the color shown in a slot until its image arrives.
//
// Parameters:
//   - r, g, b, a: placeholder color
//
// Returns:
//   - MaterialBuilderOption: a function that sets the placeholder
func WithPlaceholder(r, g, b, a uint8) MaterialBuilderOption {
	return func(m *material) {
		m.placeholder = common.SolidTexture(r, g, b, a)
	}
}

// WithTexture starts slot with an already decoded image instead of the placeholder. Invalid data or slots are
// ignored.
//
// Parameters:
//   - slot: SlotA or SlotB
//   - data: RGBA pixels
//
// Returns:
//   - MaterialBuilderOption: a function that sets the texture
func WithTexture(slot TextureSlot, data common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		if slot < 0 || slot >= slotCount || !data.Valid() {
			return
		}
		m.textures[slot] = data
		m.loaded[slot] = true
		m.pending = append(m.pending, PendingTexture{Slot: slot, Data: data})
	}
}
