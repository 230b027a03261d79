package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

type nilSurface struct{}

func (nilSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (nilSurface) Width() int                                 { return 800 }
func (nilSurface) Height() int                                { return 600 }

func TestNewRendererSurfaceUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		surface SurfaceSource
	}{
		{name: "no window", surface: nil},
		{name: "no descriptor", surface: nilSurface{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(BackendTypeWGPU, tt.surface)
			if !errors.Is(err, ErrSurfaceUnavailable) {
				t.Fatalf("NewRenderer() error = %v, want ErrSurfaceUnavailable", err)
			}
			if r != nil {
				t.Error("NewRenderer() returned a renderer alongside an error")
			}
		})
	}
}

func TestNewRendererUnknownBackend(t *testing.T) {
	_, err := NewRenderer(RendererBackendType(7), nilSurface{})
	if err == nil || errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("NewRenderer() error = %v, want unsupported backend", err)
	}
}

func TestPresentModeMapping(t *testing.T) {
	if got := PresentModeVSync.wgpu(); got != wgpu.PresentModeFifo {
		t.Errorf("vsync maps to %v, want fifo", got)
	}
	if got := PresentModeUncapped.wgpu(); got != wgpu.PresentModeImmediate {
		t.Errorf("uncapped maps to %v, want immediate", got)
	}
}

func TestPickSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
	}{
		{"srgb first", []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm}, wgpu.TextureFormatBGRA8Unorm},
		{"rgba linear", []wgpu.TextureFormat{wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatRGBA8Unorm}, wgpu.TextureFormatRGBA8Unorm},
		{"only srgb", []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb}, wgpu.TextureFormatBGRA8UnormSrgb},
		{"browser", []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA16Float}, wgpu.TextureFormatBGRA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickSurfaceFormat(tt.formats); got != tt.want {
				t.Errorf("pickSurfaceFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
		WithClearColor(0.1, 0.2, 0.3, 1),
	} {
		opt(r)
	}
	if r.presentMode != PresentModeUncapped || r.msaa != MSAAOff || !r.forceFallbackAdapter {
		t.Errorf("options not applied: %+v", r)
	}
	if r.clearColor != (wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}) {
		t.Errorf("clearColor = %+v", r.clearColor)
	}
}
