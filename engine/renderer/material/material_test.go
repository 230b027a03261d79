package material

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/lenticular/common"
)

func rgba(w, h uint32) common.TextureStagingData {
	return common.TextureStagingData{Pixels: make([]byte, w*h*4), Width: w, Height: h}
}

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	if got := m.BlendRatio(); got != 0.5 {
		t.Errorf("BlendRatio() = %v, want 0.5", got)
	}
	for _, slot := range []TextureSlot{SlotA, SlotB} {
		if m.Loaded(slot) {
			t.Errorf("slot %v loaded before any image was set", slot)
		}
		tex := m.Texture(slot)
		if tex.Width != 1 || tex.Height != 1 {
			t.Errorf("slot %v placeholder is %dx%d, want 1x1", slot, tex.Width, tex.Height)
		}
	}
	if len(m.TakePending()) != 0 {
		t.Error("new material has pending textures")
	}
	if m.ProgramSource() == "" {
		t.Error("ProgramSource() is empty")
	}
}

func TestBlendRatioNotClamped(t *testing.T) {
	m := NewMaterial()
	for _, r := range []float32{0, 0.25, 1, -0.5, 1.75} {
		m.SetBlendRatio(r)
		if got := m.BlendRatio(); got != r {
			t.Errorf("BlendRatio() = %v, want %v", got, r)
		}
		p := m.Params()
		buf := p.Marshal()
		if got := math.Float32frombits(binary.LittleEndian.Uint32(buf)); got != r {
			t.Errorf("marshalled ratio = %v, want %v", got, r)
		}
	}
}

func TestSetTexture(t *testing.T) {
	tests := []struct {
		name    string
		slot    TextureSlot
		data    common.TextureStagingData
		wantErr error
	}{
		{name: "slot A", slot: SlotA, data: rgba(4, 2)},
		{name: "slot B", slot: SlotB, data: rgba(1, 1)},
		{name: "bad slot", slot: TextureSlot(5), data: rgba(1, 1), wantErr: ErrInvalidSlot},
		{name: "short pixels", slot: SlotA, data: common.TextureStagingData{Pixels: []byte{1}, Width: 2, Height: 2}, wantErr: ErrInvalidTexture},
		{name: "zero size", slot: SlotA, data: common.TextureStagingData{}, wantErr: ErrInvalidTexture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial()
			err := m.SetTexture(tt.slot, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetTexture() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !m.Loaded(tt.slot) {
				t.Error("slot not marked loaded")
			}
			pending := m.TakePending()
			if len(pending) != 1 || pending[0].Slot != tt.slot || pending[0].Data.Width != tt.data.Width {
				t.Errorf("TakePending() = %+v", pending)
			}
			if len(m.TakePending()) != 0 {
				t.Error("second TakePending() should be empty")
			}
		})
	}
}

func TestReleaseDropsLateTextures(t *testing.T) {
	m := NewMaterial()
	if err := m.SetTexture(SlotA, rgba(2, 2)); err != nil {
		t.Fatal(err)
	}
	m.Release()

	if err := m.SetTexture(SlotB, rgba(2, 2)); err != nil {
		t.Fatalf("SetTexture after Release returned %v, want nil", err)
	}
	if !m.Released() {
		t.Error("Released() = false")
	}
	if m.Loaded(SlotB) {
		t.Error("slot B loaded after Release")
	}
	if n := len(m.TakePending()); n != 0 {
		t.Errorf("%d pending textures after Release, want 0", n)
	}
}

func TestBuilderOptions(t *testing.T) {
	m := NewMaterial(
		WithName("card"),
		WithPipelineKey("card_pipeline"),
		WithBlendRatio(0.1),
		WithPlaceholder(255, 255, 255, 255),
		WithTexture(SlotB, rgba(3, 3)),
		WithProgramSource("// custom"),
	)
	if m.Name() != "card" || m.PipelineKey() != "card_pipeline" || m.ProgramSource() != "// custom" {
		t.Errorf("unexpected identity: %q %q %q", m.Name(), m.PipelineKey(), m.ProgramSource())
	}
	if m.BlendRatio() != 0.1 {
		t.Errorf("BlendRatio() = %v, want 0.1", m.BlendRatio())
	}
	if got := m.Texture(SlotA).Pixels; got[0] != 255 {
		t.Errorf("placeholder pixel = %v, want white", got)
	}
	if !m.Loaded(SlotB) || len(m.TakePending()) != 1 {
		t.Error("WithTexture should load and stage slot B")
	}
}

func TestConcurrentRatio(t *testing.T) {
	m := NewMaterial()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				m.SetBlendRatio(float32(i))
				_ = m.BlendRatio()
			}
		}(i)
	}
	wg.Wait()
	if r := m.BlendRatio(); r < 0 || r > 3 {
		t.Errorf("BlendRatio() = %v, want one of the written values", r)
	}
}

func TestSlotVarNames(t *testing.T) {
	for _, slot := range []TextureSlot{SlotA, SlotB} {
		got, ok := SlotForVarName(slot.VarName())
		if !ok || got != slot {
			t.Errorf("SlotForVarName(%q) = %v, %v", slot.VarName(), got, ok)
		}
		if !strings.Contains(LenticularProgramSource, "var "+slot.VarName()+":") {
			t.Errorf("program does not declare %s", slot.VarName())
		}
	}
	if _, ok := SlotForVarName("cardSampler"); ok {
		t.Error("sampler name mapped to a slot")
	}
}
