package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/profiler"
	"github.com/Carmen-Shannon/lenticular/engine/window"
	"github.com/Carmen-Shannon/lenticular/lenticular"
)

var (
	// ErrNotConfigured is returned by Mount when the engine has no window or no scene.
	ErrNotConfigured = errors.New("engine: window and scene are required")
	// ErrUnmounted is returned by Mount after Unmount; an engine cannot be mounted twice.
	ErrUnmounted = errors.New("engine: already unmounted")
)

// State is the engine lifecycle state.
type State int

const (
	// StateStopped is the state before Mount and after Unmount.
	StateStopped State = iota
	// StateRunning is the state between Mount and Unmount.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Renderable draws one frame per call and owns the resources it draws with. scene.Scene satisfies it.
type Renderable interface {
	Render() error
	Release()
}

// engine implements the Engine interface.
// Coordinates the window thread and the render goroutine.
type engine struct {
	mu      sync.Mutex
	state   State
	mounted bool

	wg          sync.WaitGroup
	quitChannel chan struct{}
	unmountOnce sync.Once

	window  window.Window
	scene   Renderable
	handler lenticular.Handler

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	renderFrameLimit atomic.Int64 // minimum frame duration in ns; 0 = uncapped

	renderErr error
}

// Engine runs the card: it forwards window input to the interaction handler and renders the scene on its own
// goroutine until the window closes.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// State returns the lifecycle state.
	State() State

	// Mount attaches the input handler to the window and starts the render goroutine.
	//
	// Returns:
	//   - error: ErrNotConfigured, ErrUnmounted, or nil when already running
	Mount() error

	// Unmount detaches input, stops and waits for the render goroutine, releases the scene and closes the window.
	// Only the first call does anything. Must be called from the window thread, never from a render callback.
	Unmount()

	// Run mounts the engine if needed, processes window events on the calling thread until the window closes, then
	// unmounts.
	//
	// Returns:
	//   - error: the mount error, or the render error that stopped the loop
	Run() error

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default). Present mode pacing still applies.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)
}

var _ Engine = &engine{}

// NewEngine creates a stopped Engine with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) Mount() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.state == StateRunning:
		return nil
	case e.mounted:
		return ErrUnmounted
	case e.window == nil || e.scene == nil:
		return ErrNotConfigured
	}

	if e.handler != nil {
		e.window.SetPointerMoveCallback(e.handler.PointerMove)
	}
	e.mounted = true
	e.state = StateRunning

	e.wg.Add(1)
	go e.handleRender()

	common.Logger().Info("engine mounted", "frame_limit", time.Duration(e.renderFrameLimit.Load()))
	return nil
}

func (e *engine) Unmount() {
	e.unmountOnce.Do(func() {
		e.mu.Lock()
		wasMounted := e.mounted
		e.mounted = true
		e.mu.Unlock()

		if e.handler != nil {
			e.handler.Detach()
		}
		if e.window != nil {
			e.window.SetPointerMoveCallback(nil)
		}

		close(e.quitChannel)
		e.wg.Wait()

		if e.scene != nil {
			e.scene.Release()
		}
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				common.Logger().Debug("window close", "err", err)
			}
		}

		e.mu.Lock()
		e.state = StateStopped
		e.mu.Unlock()

		if wasMounted {
			common.Logger().Info("engine unmounted")
		}
	})
}

func (e *engine) Run() error {
	if err := e.Mount(); err != nil {
		return err
	}
	e.window.ProcessMessages()
	e.Unmount()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderErr
}

// handleRender draws frames until the quit channel closes. A render error or panic stops the loop and asks the
// window to close, so Run returns and unmounts on the window thread.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.stopWithError(fmt.Errorf("render goroutine panic: %v", r))
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		frameStart := time.Now()
		if err := e.scene.Render(); err != nil {
			e.stopWithError(err)
			return
		}

		if e.profilingEnabled.Load() {
			e.profiler.Tick()
		}

		if limit := time.Duration(e.renderFrameLimit.Load()); limit > 0 {
			if remaining := limit - time.Since(frameStart); remaining > 0 {
				select {
				case <-e.quitChannel:
					return
				case <-time.After(remaining):
				}
			}
		}
	}
}

func (e *engine) stopWithError(err error) {
	common.Logger().Error("render loop stopped", "err", err)
	e.mu.Lock()
	if e.renderErr == nil {
		e.renderErr = err
	}
	e.mu.Unlock()
	e.window.RequestClose()
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit.Store(int64(frameDuration(fps)))
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
