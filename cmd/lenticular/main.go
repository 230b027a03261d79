// Command lenticular shows the lenticular card in a desktop window rendered with WebGPU.
//
//	lenticular [-config file.yml] [-image-a path] [-image-b path] [flags]
//
// Moving the cursor across the window cross-fades the two images and tilts the card. Escape closes the window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/lenticular/engine"
	"github.com/Carmen-Shannon/lenticular/engine/renderer"
	"github.com/Carmen-Shannon/lenticular/engine/scene"
	"github.com/Carmen-Shannon/lenticular/engine/window"
	"github.com/Carmen-Shannon/lenticular/internal/card"
	"github.com/Carmen-Shannon/lenticular/internal/config"
	"github.com/Carmen-Shannon/lenticular/lenticular"
)

func init() {
	// GLFW must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse("lenticular", args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lenticular:", err)
		return 2
	}
	log := card.SetupLogging(os.Stderr, cfg.Debug)

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		log.Error("create window", "err", err)
		return 1
	}

	// ── Renderer ────────────────────────────────────────────────────────
	present := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		present = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
	)
	if err != nil {
		if errors.Is(err, renderer.ErrSurfaceUnavailable) {
			log.Error("no usable GPU surface", "err", err)
		} else {
			log.Error("create renderer", "err", err)
		}
		_ = win.Close()
		return 1
	}

	// ── Scene ───────────────────────────────────────────────────────────
	// aspect is read once; the window does not resize
	parts := card.NewParts(cfg, float32(win.Width())/float32(win.Height()))
	sc, err := scene.NewScene("lenticular", parts.Camera, r, parts.Object, parts.Material)
	if err != nil {
		log.Error("create scene", "err", err)
		r.Release()
		_ = win.Close()
		return 1
	}
	card.LoadImages(cfg, parts.Material)

	// ── Input + Engine ──────────────────────────────────────────────────
	handler := lenticular.NewHandler(
		lenticular.Join(parts.Material, parts.Object),
		win.InputSize,
		lenticular.WithMaxTilt(cfg.Card.MaxTilt),
	)
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithInputHandler(handler),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
		engine.WithProfiling(cfg.Render.Profile),
	)

	log.Info("starting", "images", []string{cfg.Images.A, cfg.Images.B}, "size", fmt.Sprintf("%dx%d", win.Width(), win.Height()))
	if err := eng.Run(); err != nil {
		log.Error("render loop failed", "err", err)
		return 1
	}
	return 0
}
