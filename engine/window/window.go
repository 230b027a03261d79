package window

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the desktop surface the card is rendered into. It reports pointer motion in window coordinates
// (origin top-left, y down) and exposes a WebGPU surface descriptor for the renderer.
//
// Everything except RequestClose must be called from the thread that created the window.
type Window interface {
	// SetPointerMoveCallback registers the cursor motion callback. Passing nil detaches it.
	//
	// Parameters:
	//   - callback: receives the cursor position in window coordinates
	SetPointerMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns the native surface descriptor, or nil if the window is gone.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// ProcessMessages pumps window events until the window is asked to close.
	ProcessMessages()

	// RequestClose asks ProcessMessages to return. Safe from any goroutine.
	RequestClose()

	// Close destroys the window. Later calls return an error.
	Close() error

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// InputSize returns the window size in the same units as pointer coordinates. On high-DPI displays this differs
	// from the framebuffer size.
	InputSize() (width, height float64)
}

type engineWindow struct {
	title string

	// framebuffer size, pixels
	width, height int

	// window size, screen coordinates
	inputWidth, inputHeight int

	internalWindow any

	mu            sync.RWMutex
	onPointerMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates a fixed-size window with no client graphics API attached. The framebuffer size is read back
// after creation, so Width and Height reflect the real pixel size.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Window: the window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "Lenticular",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.inputWidth, w.inputHeight = w.width, w.height
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerMove = callback
}

func (w *engineWindow) pointerMoved(x, y float64) {
	w.mu.RLock()
	cb := w.onPointerMove
	w.mu.RUnlock()
	if cb != nil {
		cb(x, y)
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !platformProcessMessages(w) {
			break
		}
	}
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) InputSize() (float64, float64) {
	return float64(w.inputWidth), float64(w.inputHeight)
}
