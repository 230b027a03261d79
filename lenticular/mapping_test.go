package lenticular

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Pose
	}{
		{name: "top left corner", x: 0, y: 0, want: Pose{Ratio: 0, TiltX: 0.2, TiltY: -0.2}},
		{name: "bottom right corner", x: 800, y: 600, want: Pose{Ratio: 1, TiltX: -0.2, TiltY: 0.2}},
		{name: "center", x: 400, y: 300, want: Pose{Ratio: 0.5, TiltX: 0, TiltY: 0}},
		{name: "quarter across", x: 200, y: 150, want: Pose{Ratio: 0.25, TiltX: 0.1, TiltY: -0.1}},
		{name: "left of display", x: -80, y: 300, want: Pose{Ratio: -0.1, TiltX: 0, TiltY: -0.24}},
		{name: "right of display", x: 880, y: 300, want: Pose{Ratio: 1.1, TiltX: 0, TiltY: 0.24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.x, tt.y, 800, 600)
			if !approx(got.Ratio, tt.want.Ratio) || !approx(got.TiltX, tt.want.TiltX) || !approx(got.TiltY, tt.want.TiltY) {
				t.Errorf("Map(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCenterHasNoTilt(t *testing.T) {
	sizes := [][2]float64{{800, 600}, {1920, 1080}, {375, 812}, {1, 1}}
	for _, s := range sizes {
		if got := TiltX(s[1]/2, s[1]); got != 0 {
			t.Errorf("TiltX at center of %v = %v, want 0", s, got)
		}
		if got := TiltY(s[0]/2, s[0]); got != 0 {
			t.Errorf("TiltY at center of %v = %v, want 0", s, got)
		}
	}
}

func TestBlendRatioIsExactQuotient(t *testing.T) {
	for _, x := range []float64{0, 1, 333, 512, 1023, 1024} {
		if got, want := BlendRatio(x, 1024), x/1024; got != want {
			t.Errorf("BlendRatio(%v, 1024) = %v, want %v", x, got, want)
		}
	}
}

func TestTiltBoundedOnDisplay(t *testing.T) {
	const w, h = 640, 480
	for x := 0.0; x <= w; x += 32 {
		for y := 0.0; y <= h; y += 32 {
			p := Map(x, y, w, h)
			if math.Abs(p.TiltX) > MaxTilt+1e-12 || math.Abs(p.TiltY) > MaxTilt+1e-12 {
				t.Fatalf("Map(%v, %v) = %+v exceeds MaxTilt", x, y, p)
			}
			if p.Ratio < 0 || p.Ratio > 1 {
				t.Fatalf("Map(%v, %v) ratio %v outside [0, 1]", x, y, p.Ratio)
			}
		}
	}
}
