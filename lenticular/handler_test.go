package lenticular

import (
	"math"
	"testing"
)

type recordingTarget struct {
	ratios    []float32
	rotations [][3]float32
}

func (r *recordingTarget) SetBlendRatio(ratio float32) {
	r.ratios = append(r.ratios, ratio)
}

func (r *recordingTarget) SetRotation(x, y, z float32) {
	r.rotations = append(r.rotations, [3]float32{x, y, z})
}

func fixedViewport(w, h float64) Viewport {
	return func() (float64, float64) { return w, h }
}

func closeTo(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestPointerMoveAppliesPose(t *testing.T) {
	target := &recordingTarget{}
	h := NewHandler(target, fixedViewport(800, 600))

	h.PointerMove(0, 0)
	h.PointerMove(800, 600)

	if len(target.ratios) != 2 || len(target.rotations) != 2 {
		t.Fatalf("got %d ratios and %d rotations, want 2 each", len(target.ratios), len(target.rotations))
	}
	if target.ratios[0] != 0 || target.ratios[1] != 1 {
		t.Errorf("ratios = %v, want [0 1]", target.ratios)
	}
	want := [][3]float32{{0.2, -0.2, 0}, {-0.2, 0.2, 0}}
	for i, rot := range target.rotations {
		for k := range rot {
			if !closeTo(rot[k], want[i][k]) {
				t.Errorf("rotation %d = %v, want %v", i, rot, want[i])
				break
			}
		}
	}
}

func TestLatestEventWins(t *testing.T) {
	target := &recordingTarget{}
	h := NewHandler(target, fixedViewport(1000, 1000))

	h.PointerMove(100, 500)
	h.PointerMove(900, 500)
	h.PointerMove(500, 500)

	last := target.ratios[len(target.ratios)-1]
	if !closeTo(last, 0.5) {
		t.Errorf("last ratio = %v, want 0.5", last)
	}
	rot := target.rotations[len(target.rotations)-1]
	if rot != [3]float32{0, 0, 0} {
		t.Errorf("last rotation = %v, want zero", rot)
	}
}

func TestTouchMove(t *testing.T) {
	tests := []struct {
		name      string
		touches   []Touch
		wantCalls int
		wantRatio float32
	}{
		{name: "no touches", touches: nil, wantCalls: 0},
		{name: "empty list", touches: []Touch{}, wantCalls: 0},
		{name: "single touch", touches: []Touch{{ID: 1, X: 600, Y: 300}}, wantCalls: 1, wantRatio: 0.75},
		{
			name:      "first touch only",
			touches:   []Touch{{ID: 4, X: 200, Y: 300}, {ID: 7, X: 800, Y: 0}},
			wantCalls: 1,
			wantRatio: 0.25,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &recordingTarget{}
			h := NewHandler(target, fixedViewport(800, 600))
			h.TouchMove(tt.touches)

			if len(target.ratios) != tt.wantCalls {
				t.Fatalf("got %d updates, want %d", len(target.ratios), tt.wantCalls)
			}
			if tt.wantCalls > 0 && !closeTo(target.ratios[0], tt.wantRatio) {
				t.Errorf("ratio = %v, want %v", target.ratios[0], tt.wantRatio)
			}
		})
	}
}

func TestDetachStopsUpdates(t *testing.T) {
	target := &recordingTarget{}
	h := NewHandler(target, fixedViewport(800, 600))

	h.PointerMove(400, 300)
	h.Detach()
	h.PointerMove(0, 0)
	h.TouchMove([]Touch{{X: 800, Y: 600}})

	if h.Attached() {
		t.Error("Attached() = true after Detach")
	}
	if len(target.ratios) != 1 {
		t.Errorf("got %d updates, want 1 (events after Detach must be ignored)", len(target.ratios))
	}
}

func TestViewportReadPerEvent(t *testing.T) {
	target := &recordingTarget{}
	w := 800.0
	h := NewHandler(target, func() (float64, float64) { return w, 600 })

	h.PointerMove(400, 300)
	w = 1600
	h.PointerMove(400, 300)

	if !closeTo(target.ratios[0], 0.5) || !closeTo(target.ratios[1], 0.25) {
		t.Errorf("ratios = %v, want [0.5 0.25]", target.ratios)
	}
}

func TestZeroViewportIgnored(t *testing.T) {
	target := &recordingTarget{}
	h := NewHandler(target, fixedViewport(0, 600))
	h.PointerMove(10, 10)
	if len(target.ratios) != 0 {
		t.Errorf("got %d updates on a zero width display, want 0", len(target.ratios))
	}
}

func TestWithMaxTilt(t *testing.T) {
	target := &recordingTarget{}
	h := NewHandler(target, fixedViewport(800, 600), WithMaxTilt(0.5))
	h.PointerMove(800, 0)

	rot := target.rotations[0]
	if !closeTo(rot[0], 0.5) || !closeTo(rot[1], 0.5) {
		t.Errorf("rotation = %v, want [0.5 0.5 0]", rot)
	}
}

type ratioOnly struct{ ratio float32 }

func (r *ratioOnly) SetBlendRatio(v float32) { r.ratio = v }

type rotationOnly struct{ rot [3]float32 }

func (r *rotationOnly) SetRotation(x, y, z float32) { r.rot = [3]float32{x, y, z} }

func TestJoin(t *testing.T) {
	blend := &ratioOnly{}
	rot := &rotationOnly{}
	h := NewHandler(Join(blend, rot), fixedViewport(800, 600))
	h.PointerMove(0, 600)

	if blend.ratio != 0 {
		t.Errorf("ratio = %v, want 0", blend.ratio)
	}
	if !closeTo(rot.rot[0], -0.2) || !closeTo(rot.rot[1], -0.2) {
		t.Errorf("rotation = %v, want [-0.2 -0.2 0]", rot.rot)
	}
}
