package model

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestNewPlaneGeometry(t *testing.T) {
	tests := []struct {
		name         string
		opts         []ModelBuilderOption
		wantVertices int
		wantIndices  int
	}{
		{name: "single quad", wantVertices: 4, wantIndices: 6},
		{name: "subdivided", opts: []ModelBuilderOption{WithSegments(4, 2)}, wantVertices: 15, wantIndices: 48},
		{name: "segments clamped", opts: []ModelBuilderOption{WithSegments(0, -3)}, wantVertices: 4, wantIndices: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPlane(10, 10, tt.opts...)
			if got := len(m.Vertices()); got != tt.wantVertices {
				t.Errorf("vertices = %d, want %d", got, tt.wantVertices)
			}
			if got := m.IndexCount(); got != tt.wantIndices {
				t.Errorf("IndexCount() = %d, want %d", got, tt.wantIndices)
			}
			for _, idx := range m.Indices() {
				if int(idx) >= len(m.Vertices()) {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}

func TestPlaneExtentAndUV(t *testing.T) {
	m := NewPlane(10, 6, WithName("card"))
	if m.Name() != "card" {
		t.Errorf("Name() = %q, want %q", m.Name(), "card")
	}
	w, h := m.Size()
	if w != 10 || h != 6 {
		t.Errorf("Size() = (%v, %v), want (10, 6)", w, h)
	}

	v := m.Vertices()
	topLeft, bottomRight := v[0], v[len(v)-1]
	if topLeft.Position != [3]float32{-5, 3, 0} || topLeft.TexCoord != [2]float32{0, 0} {
		t.Errorf("top-left vertex = %+v", topLeft)
	}
	if bottomRight.Position != [3]float32{5, -3, 0} || bottomRight.TexCoord != [2]float32{1, 1} {
		t.Errorf("bottom-right vertex = %+v", bottomRight)
	}
}

func TestPlaneFacesCamera(t *testing.T) {
	m := NewPlane(10, 10, WithSegments(3, 3))
	v, idx := m.Vertices(), m.Indices()
	for i := 0; i < len(idx); i += 3 {
		a, b, c := v[idx[i]].Position, v[idx[i+1]].Position, v[idx[i+2]].Position
		// z of (b - a) x (c - a) is positive for counter-clockwise triangles seen from +Z
		cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		if cross <= 0 {
			t.Fatalf("triangle %d is not counter-clockwise", i/3)
		}
	}
}

func TestBufferData(t *testing.T) {
	m := NewPlane(2, 2)

	vd := m.VertexData()
	if len(vd) != 4*20 {
		t.Fatalf("len(VertexData()) = %d, want 80", len(vd))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(vd[0:])); got != -1 {
		t.Errorf("first position x = %v, want -1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(vd[20+12:])); got != 1 {
		t.Errorf("second vertex u = %v, want 1", got)
	}

	id := m.IndexData()
	if len(id) != 6*4 {
		t.Fatalf("len(IndexData()) = %d, want 24", len(id))
	}
	for i, want := range m.Indices() {
		if got := binary.LittleEndian.Uint32(id[i*4:]); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestModelDataMarshal(t *testing.T) {
	var d GPUModelData
	d.Model[12] = 7
	buf := d.Marshal()
	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[48:])); got != 7 {
		t.Errorf("translation x = %v, want 7", got)
	}
}
