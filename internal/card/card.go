// Package card assembles the pieces both commands share: logging, the camera, the card object and its material, and
// the image loads that fill the material.
package card

import (
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/camera"
	"github.com/Carmen-Shannon/lenticular/engine/game_object"
	"github.com/Carmen-Shannon/lenticular/engine/loader"
	"github.com/Carmen-Shannon/lenticular/engine/model"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
	"github.com/Carmen-Shannon/lenticular/internal/config"
)

// Parts is one card ready to hand to a front end.
type Parts struct {
	Camera   camera.Camera
	Object   game_object.GameObject
	Material material.Material
}

// SetupLogging installs a text logger on w at info level, or debug when debug is set.
func SetupLogging(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	common.SetLogger(l)
	return l
}

// NewParts builds the camera, the plane object and the material described by cfg. The camera looks at the origin
// from cfg.Camera.Distance along +z with the given aspect, which callers read once from the display.
//
// Parameters:
//   - cfg: the validated configuration
//   - aspect: display width / height
//
// Returns:
//   - Parts: the card pieces
func NewParts(cfg config.Config, aspect float32) Parts {
	cam := camera.NewCamera(
		camera.WithFov(common.Radians(float32(cfg.Camera.FovDegrees))),
		camera.WithAspect(aspect),
		camera.WithNear(float32(cfg.Camera.Near)),
		camera.WithFar(float32(cfg.Camera.Far)),
		camera.WithPosition(0, 0, float32(cfg.Camera.Distance)),
		camera.WithTarget(0, 0, 0),
	)

	obj := game_object.NewGameObject(
		game_object.WithName("card"),
		game_object.WithModel(model.NewPlane(float32(cfg.Card.Width), float32(cfg.Card.Height), model.WithName("card_plane"))),
	)

	mat := material.NewMaterial(
		material.WithName("card"),
		material.WithBlendRatio(float32(cfg.Card.InitialRatio)),
	)

	return Parts{Camera: cam, Object: obj, Material: mat}
}

// LoadImages starts decoding both configured images into mat and returns immediately.
//
// Parameters:
//   - cfg: the validated configuration
//   - mat: the material receiving the images
//
// Returns:
//   - loader.Loader: the loader running the decodes
func LoadImages(cfg config.Config, mat material.Material) loader.Loader {
	l := loader.NewLoader(
		loader.WithWorkers(cfg.Loader.Workers),
		loader.WithMaxTextureSize(cfg.Loader.MaxTextureSize),
	)
	material.LoadTextures(l, mat, map[material.TextureSlot]string{
		material.SlotA: cfg.Images.A,
		material.SlotB: cfg.Images.B,
	})
	return l
}
