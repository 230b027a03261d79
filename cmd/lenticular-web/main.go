// Command lenticular-web shows the lenticular card through ebiten. It builds for desktop and for the browser:
//
//	GOOS=js GOARCH=wasm go build -o lenticular.wasm ./cmd/lenticular-web
//
// Cursor motion and touch both drive the card. In the browser, pass absolute http(s) URLs for
// -image-a and -image-b.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/lenticular/engine/ebiten_view"
	"github.com/Carmen-Shannon/lenticular/internal/card"
	"github.com/Carmen-Shannon/lenticular/internal/config"
	"github.com/Carmen-Shannon/lenticular/lenticular"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse("lenticular-web", args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lenticular-web:", err)
		return 2
	}
	log := card.SetupLogging(os.Stderr, cfg.Debug)

	parts := card.NewParts(cfg, float32(cfg.Window.Width)/float32(cfg.Window.Height))
	view, err := ebiten_view.NewCardView(parts.Camera, parts.Object, parts.Material,
		ebiten_view.WithHandlerOptions(lenticular.WithMaxTilt(cfg.Card.MaxTilt)),
		ebiten_view.WithTextureSize(textureSize(cfg)),
	)
	if err != nil {
		log.Error("create view", "err", err)
		return 1
	}
	card.LoadImages(cfg, parts.Material)

	if err := ebiten_view.Run(view, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height); err != nil {
		log.Error("game loop failed", "err", err)
		return 1
	}
	return 0
}

// textureSize picks the square size images are scaled to: the loader cap when set, 1024 otherwise.
func textureSize(cfg config.Config) int {
	if cfg.Loader.MaxTextureSize > 0 {
		return cfg.Loader.MaxTextureSize
	}
	return 1024
}
