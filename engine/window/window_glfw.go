package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Upper bound on how long the event pump sleeps with nothing to do.
const eventWaitTimeout = 1.0 / 120.0

var errWindowClosed = errors.New("window is not initialized")

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window    *glfw.Window
	running   atomic.Bool
	destroyed bool
}

// newPlatformWindow creates the GLFW window and wires its callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	// GLFW calls must stay on the creating thread.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU owns the surface, so no OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}

	gw := &glfwWindow{window: win}
	gw.running.Store(true)
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running.Store(false)
			win.SetShouldClose(true)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.pointerMoved(xpos, ypos)
	})

	// Framebuffer and window size differ on high-DPI displays. The renderer wants pixels, pointer mapping wants
	// window coordinates.
	w.width, w.height = win.GetFramebufferSize()
	w.inputWidth, w.inputHeight = win.GetSize()

	common.Logger().Info("window created", "title", w.title,
		"width", w.width, "height", w.height, "inputWidth", w.inputWidth, "inputHeight", w.inputHeight)
	return nil
}

// platformGetSurfaceDescriptor builds the surface descriptor through the wgpuglfw bridge, which covers Windows,
// X11, Wayland and macOS.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.destroyed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.destroyed {
		return false
	}
	return gw.running.Load() && !gw.window.ShouldClose()
}

// platformRequestClose flags the window and wakes the event pump. glfwSetWindowShouldClose and glfwPostEmptyEvent
// are both documented as callable from any thread.
func platformRequestClose(w *engineWindow) {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || !gw.running.Swap(false) {
		return
	}
	gw.window.SetShouldClose(true)
	glfw.PostEmptyEvent()
}

// platformCloseWindow destroys the window and terminates GLFW.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: errWindowClosed if the window was never created or is already destroyed
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.destroyed {
		return errWindowClosed
	}
	gw.running.Store(false)
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	gw.destroyed = true
	glfw.Terminate()
	common.Logger().Info("window closed", "title", w.title)
	return nil
}

// platformProcessMessages waits briefly for events and dispatches them.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEventsTimeout
func platformProcessMessages(w *engineWindow) bool {
	glfw.WaitEventsTimeout(eventWaitTimeout)
	return platformIsRunningCheck(w)
}
