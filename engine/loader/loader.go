package loader

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/lenticular/common"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned when the data is not in a registered image format (JPEG, PNG, WebP, BMP).
var ErrUnsupportedImage = errors.New("loader: unsupported image format")

type loader struct {
	pool           worker.DynamicWorkerPool
	workers        int
	maxTextureSize int
	httpClient     *http.Client
	nextID         atomic.Int64
}

// Loader decodes images into RGBA8 staging data ready for texture upload. Paths may be local files or http(s)
// URLs.
type Loader interface {
	// Load reads and decodes the image at path on the calling goroutine.
	//
	// Parameters:
	//   - path: a file path or http(s) URL
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded pixels, rows top to bottom
	//   - error: a read error, or ErrUnsupportedImage (wrapped) for unknown formats
	Load(path string) (*common.TextureStagingData, error)

	// LoadAsync queues a Load on the worker pool and returns immediately. cb runs on a worker goroutine when the
	// load finishes, with exactly one of data and err set. There is no cancellation.
	//
	// Parameters:
	//   - path: a file path or http(s) URL
	//   - cb: called once with the result
	LoadAsync(path string, cb func(data *common.TextureStagingData, err error))

	// Decode decodes an already opened image stream.
	Decode(r io.Reader) (*common.TextureStagingData, error)
}

var _ Loader = &loader{}

// NewLoader creates a Loader with a small decode pool. Workers exit after a second without work, so an idle loader
// costs nothing.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:    2,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (*common.TextureStagingData, error) {
	rc, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := l.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	common.Logger().Info("image loaded", "path", path, "width", data.Width, "height", data.Height)
	return data, nil
}

func (l *loader) LoadAsync(path string, cb func(*common.TextureStagingData, error)) {
	id := int(l.nextID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			data, err := l.Load(path)
			if cb != nil {
				cb(data, err)
			}
			return data, err
		},
	})
}

func (l *loader) Decode(r io.Reader) (*common.TextureStagingData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, err
	}
	common.Logger().Debug("image decoded", "format", format, "bounds", img.Bounds().String())
	return toStaging(img, l.maxTextureSize), nil
}

func (l *loader) open(path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := l.httpClient.Get(path)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", path, resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// toStaging converts img to non-premultiplied RGBA with its origin at (0, 0). When maxSize is positive and either
// side exceeds it, the image is scaled down with Catmull-Rom so the longer side equals maxSize.
func toStaging(img image.Image, maxSize int) *common.TextureStagingData {
	src := img.Bounds()
	w, h := fitWithin(src.Dx(), src.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if w == src.Dx() && h == src.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, src.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	}

	return &common.TextureStagingData{
		Pixels: dst.Pix,
		Width:  uint32(w),
		Height: uint32(h),
	}
}

func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}
