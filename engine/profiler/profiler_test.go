package profiler

import (
	"testing"
	"time"
)

func TestTickWaitsForInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(time.Hour))
	for i := 0; i < 10; i++ {
		if p.Tick() {
			t.Fatal("Tick() sampled before the interval elapsed")
		}
	}
	if p.Last() != (Stats{}) {
		t.Errorf("Last() = %+v, want zero", p.Last())
	}
}

func TestTickSamples(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(time.Millisecond))
	p.Tick()
	time.Sleep(5 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("Tick() did not sample after the interval")
	}
	s := p.Last()
	if s.FPS <= 0 || s.SysMB <= 0 {
		t.Errorf("sample = %+v", s)
	}
}

func TestUpdateIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0), WithUpdateInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
