package loader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/lenticular/common"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	l := NewLoader()
	data, err := l.Decode(bytes.NewReader(encodePNG(t, testImage(4, 3))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if data.Width != 4 || data.Height != 3 || !data.Valid() {
		t.Fatalf("got %dx%d with %d bytes", data.Width, data.Height, len(data.Pixels))
	}
	// pixel (2, 1), rows top to bottom
	off := (1*4 + 2) * 4
	if got := data.Pixels[off : off+4]; !bytes.Equal(got, []byte{20, 10, 200, 255}) {
		t.Errorf("pixel (2,1) = %v", got)
	}
}

func TestDecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(16, 8), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	data, err := NewLoader().Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if data.Width != 16 || data.Height != 8 {
		t.Errorf("size = %dx%d, want 16x8", data.Width, data.Height)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := NewLoader().Decode(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedImage", err)
	}
}

func TestMaxTextureSize(t *testing.T) {
	l := NewLoader(WithMaxTextureSize(8))
	data, err := l.Decode(bytes.NewReader(encodePNG(t, testImage(32, 16))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if data.Width != 8 || data.Height != 4 || !data.Valid() {
		t.Errorf("got %dx%d, want 8x4", data.Width, data.Height)
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{w: 100, h: 50, max: 0, wantW: 100, wantH: 50},
		{w: 100, h: 50, max: 200, wantW: 100, wantH: 50},
		{w: 100, h: 50, max: 10, wantW: 10, wantH: 5},
		{w: 50, h: 100, max: 10, wantW: 5, wantH: 10},
		{w: 1000, h: 1, max: 10, wantW: 10, wantH: 1},
	}
	for _, tt := range tests {
		if w, h := fitWithin(tt.w, tt.h, tt.max); w != tt.wantW || h != tt.wantH {
			t.Errorf("fitWithin(%d, %d, %d) = %d, %d, want %d, %d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")
	if err := os.WriteFile(path, encodePNG(t, testImage(2, 2)), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader()

	data, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if data.Width != 2 || data.Height != 2 {
		t.Errorf("size = %dx%d", data.Width, data.Height)
	}

	if _, err := l.Load(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want not exist", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	body := encodePNG(t, testImage(3, 3))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/card.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(WithHTTPClient(srv.Client()))
	data, err := l.Load(srv.URL + "/card.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if data.Width != 3 {
		t.Errorf("Width = %d, want 3", data.Width)
	}
	if _, err := l.Load(srv.URL + "/nope.png"); err == nil {
		t.Error("Load() of a 404 should fail")
	}
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	if err := os.WriteFile(good, encodePNG(t, testImage(5, 5)), 0o644); err != nil {
		t.Fatal(err)
	}

	type result struct {
		data *common.TextureStagingData
		err  error
	}
	l := NewLoader(WithWorkers(2))
	goodCh := make(chan result, 1)
	badCh := make(chan result, 1)
	l.LoadAsync(good, func(d *common.TextureStagingData, err error) { goodCh <- result{d, err} })
	l.LoadAsync(filepath.Join(dir, "b.png"), func(d *common.TextureStagingData, err error) { badCh <- result{d, err} })

	for name, ch := range map[string]chan result{"good": goodCh, "bad": badCh} {
		select {
		case r := <-ch:
			if name == "good" && (r.err != nil || r.data == nil || r.data.Width != 5) {
				t.Errorf("good load = %+v", r)
			}
			if name == "bad" && (r.err == nil || r.data != nil) {
				t.Errorf("bad load = %+v", r)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("%s load callback never ran", name)
		}
	}
}
