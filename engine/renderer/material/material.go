package material

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/lenticular/common"
)

// TextureSlot selects one of the two images on the card.
type TextureSlot int

const (
	// SlotA is the image shown at ratio 0.
	SlotA TextureSlot = iota
	// SlotB is the image shown at ratio 1.
	SlotB

	slotCount
)

func (s TextureSlot) String() string {
	switch s {
	case SlotA:
		return "A"
	case SlotB:
		return "B"
	default:
		return fmt.Sprintf("TextureSlot(%d)", int(s))
	}
}

// VarName returns the name of the slot's texture variable in LenticularProgramSource.
func (s TextureSlot) VarName() string {
	switch s {
	case SlotA:
		return "textureA"
	case SlotB:
		return "textureB"
	default:
		return ""
	}
}

// SlotForVarName maps a texture variable name back to its slot.
func SlotForVarName(name string) (TextureSlot, bool) {
	for s := SlotA; s < slotCount; s++ {
		if s.VarName() == name {
			return s, true
		}
	}
	return 0, false
}

var (
	// ErrInvalidSlot is returned for a slot other than SlotA or SlotB.
	ErrInvalidSlot = errors.New("material: invalid texture slot")
	// ErrInvalidTexture is returned when pixel data does not match its dimensions.
	ErrInvalidTexture = errors.New("material: invalid texture data")
)

// PendingTexture is a decoded image waiting for the render thread to upload it.
type PendingTexture struct {
	Slot TextureSlot
	Data common.TextureStagingData
}

type material struct {
	name        string
	pipelineKey string
	program     string
	ratio       atomic.Uint32

	mu          sync.Mutex
	placeholder common.TextureStagingData
	textures    [slotCount]common.TextureStagingData
	loaded      [slotCount]bool
	pending     []PendingTexture
	released    bool
}

// Material is the card's shading state: two texture slots and the blend ratio between them.
//
// Ratio reads and writes are lock free so an input goroutine can write while the render loop reads. Textures arrive
// from loader goroutines through SetTexture and wait in a pending queue until the render loop takes them.
type Material interface {
	// Name returns the material identifier.
	Name() string

	// PipelineKey returns the key of the render pipeline drawing this material.
	PipelineKey() string

	// SetPipelineKey sets the render pipeline key.
	SetPipelineKey(key string)

	// ProgramSource returns the WGSL program for the material.
	ProgramSource() string

	// BlendRatio returns the latest ratio.
	BlendRatio() float32

	// SetBlendRatio stores a new ratio. Values outside [0, 1] are kept as is.
	//
	// Parameters:
	//   - ratio: weight of SlotB
	SetBlendRatio(ratio float32)

	// Params packs the ratio in its GPU layout.
	Params() GPUBlendParams

	// SetTexture stages decoded pixels for slot. Ignored after Release.
	//
	// Parameters:
	//   - slot: SlotA or SlotB
	//   - data: RGBA pixels
	//
	// Returns:
	//   - error: ErrInvalidSlot or ErrInvalidTexture
	SetTexture(slot TextureSlot, data common.TextureStagingData) error

	// Texture returns the pixels currently assigned to slot, the placeholder until an image has been set.
	Texture(slot TextureSlot) common.TextureStagingData

	// Loaded reports whether slot holds a real image.
	Loaded(slot TextureSlot) bool

	// TakePending returns the textures staged since the last call, oldest first, and clears the queue.
	TakePending() []PendingTexture

	// Release drops staged textures. Later SetTexture calls become no-ops.
	Release()

	// Released reports whether Release has been called.
	Released() bool
}

var _ Material = &material{}

// NewMaterial creates a Material at ratio 0.5 with both slots on an opaque black placeholder.
//
// Parameters:
//   - options: MaterialBuilderOption functions
//
// Returns:
//   - Material: the material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:        "lenticular",
		pipelineKey: "lenticular",
		program:     LenticularProgramSource,
		placeholder: common.SolidTexture(0, 0, 0, 255),
	}
	m.ratio.Store(math.Float32bits(0.5))
	for _, opt := range options {
		opt(m)
	}
	for i := range m.textures {
		if !m.loaded[i] {
			m.textures[i] = m.placeholder
		}
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) ProgramSource() string {
	return m.program
}

func (m *material) BlendRatio() float32 {
	return math.Float32frombits(m.ratio.Load())
}

func (m *material) SetBlendRatio(ratio float32) {
	m.ratio.Store(math.Float32bits(ratio))
}

func (m *material) Params() GPUBlendParams {
	return GPUBlendParams{Ratio: m.BlendRatio()}
}

func (m *material) SetTexture(slot TextureSlot, data common.TextureStagingData) error {
	if slot < 0 || slot >= slotCount {
		return ErrInvalidSlot
	}
	if !data.Valid() {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidTexture, data.Width, data.Height, len(data.Pixels))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return nil
	}
	m.textures[slot] = data
	m.loaded[slot] = true
	m.pending = append(m.pending, PendingTexture{Slot: slot, Data: data})
	return nil
}

func (m *material) Texture(slot TextureSlot) common.TextureStagingData {
	if slot < 0 || slot >= slotCount {
		return m.placeholder
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textures[slot]
}

func (m *material) Loaded(slot TextureSlot) bool {
	if slot < 0 || slot >= slotCount {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded[slot]
}

func (m *material) TakePending() []PendingTexture {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.pending
	m.pending = nil
	return p
}

func (m *material) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
	m.pending = nil
}

func (m *material) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}
