// Package config holds the settings shared by the lenticular commands: a YAML file overlaid by command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full command configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Images ImagesConfig `yaml:"images"`
	Camera CameraConfig `yaml:"camera"`
	Card   CardConfig   `yaml:"card"`
	Render RenderConfig `yaml:"render"`
	Loader LoaderConfig `yaml:"loader"`
	Debug  bool         `yaml:"debug"`
}

// WindowConfig sizes and titles the desktop window. The web build uses it for the ebiten window or canvas.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ImagesConfig names the two card images. Paths may be local files or http(s) URLs.
type ImagesConfig struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// CameraConfig places the perspective camera on +z looking at the origin. The field of view is in degrees.
type CameraConfig struct {
	FovDegrees float64 `yaml:"fov_degrees"`
	Distance   float64 `yaml:"distance"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
}

// CardConfig sizes the card plane in world units and sets its starting blend ratio and maximum tilt.
type CardConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxTilt      float64 `yaml:"max_tilt"` // radians
	InitialRatio float64 `yaml:"initial_ratio"`
}

// RenderConfig controls presentation on the WebGPU front end.
type RenderConfig struct {
	VSync      bool    `yaml:"vsync"`
	MSAA       int     `yaml:"msaa"`
	FrameLimit float64 `yaml:"frame_limit"` // fps, 0 = uncapped
	Profile    bool    `yaml:"profile"`
}

// LoaderConfig sizes the image decode pool and caps the decoded image size.
type LoaderConfig struct {
	Workers        int `yaml:"workers"`
	MaxTextureSize int `yaml:"max_texture_size"` // 0 keeps the decoded size
}

// Default returns the stock card: a 10 by 10 plane 15 units in front of a 75 degree camera, images from ./images.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Lenticular", Width: 1280, Height: 720},
		Images: ImagesConfig{A: "images/image1.jpg", B: "images/image2.jpg"},
		Camera: CameraConfig{FovDegrees: 75, Distance: 15, Near: 0.1, Far: 1000},
		Card:   CardConfig{Width: 10, Height: 10, MaxTilt: 0.2, InitialRatio: 0.5},
		Render: RenderConfig{VSync: true, MSAA: 4},
		Loader: LoaderConfig{Workers: 2},
	}
}

// Load reads a YAML file over Default. Keys missing from the file keep their default values.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the merged configuration, not yet validated
//   - error: an error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// RegisterFlags binds one flag per field to c, using the current values as flag defaults.
func RegisterFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.Window.Title, "title", c.Window.Title, "window title")
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "window width")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "window height")

	fs.StringVar(&c.Images.A, "image-a", c.Images.A, "first image, shown at the left edge (file or URL)")
	fs.StringVar(&c.Images.B, "image-b", c.Images.B, "second image, shown at the right edge (file or URL)")

	fs.Float64Var(&c.Camera.FovDegrees, "fov", c.Camera.FovDegrees, "vertical field of view in degrees")
	fs.Float64Var(&c.Camera.Distance, "distance", c.Camera.Distance, "camera distance from the card")
	fs.Float64Var(&c.Camera.Near, "near", c.Camera.Near, "near clip plane")
	fs.Float64Var(&c.Camera.Far, "far", c.Camera.Far, "far clip plane")

	fs.Float64Var(&c.Card.Width, "card-width", c.Card.Width, "card width in world units")
	fs.Float64Var(&c.Card.Height, "card-height", c.Card.Height, "card height in world units")
	fs.Float64Var(&c.Card.MaxTilt, "max-tilt", c.Card.MaxTilt, "tilt at the display edges in radians")
	fs.Float64Var(&c.Card.InitialRatio, "ratio", c.Card.InitialRatio, "blend ratio before the first pointer event")

	fs.BoolVar(&c.Render.VSync, "vsync", c.Render.VSync, "wait for vertical sync")
	fs.IntVar(&c.Render.MSAA, "msaa", c.Render.MSAA, "multisample count (1, 4, 8 or 16)")
	fs.Float64Var(&c.Render.FrameLimit, "frame-limit", c.Render.FrameLimit, "render frame cap in fps, 0 for none")
	fs.BoolVar(&c.Render.Profile, "profile", c.Render.Profile, "log frame rate and memory stats every second")

	fs.IntVar(&c.Loader.Workers, "workers", c.Loader.Workers, "image decode workers")
	fs.IntVar(&c.Loader.MaxTextureSize, "max-texture-size", c.Loader.MaxTextureSize, "downsample images larger than this, 0 for no limit")

	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

// Parse builds the configuration for a command: defaults, then the file named by -config if any, then every other
// flag given in args.
//
// Parameters:
//   - name: the command name for usage output
//   - args: the arguments after the command name
//   - output: where usage and parse errors are written
//
// Returns:
//   - Config: the validated configuration
//   - error: flag.ErrHelp, a load error, or a validation error
func Parse(name string, args []string, output io.Writer) (Config, error) {
	// first pass only finds -config
	var path string
	first := flag.NewFlagSet(name, flag.ContinueOnError)
	first.SetOutput(io.Discard)
	first.StringVar(&path, "config", "", "")
	scratch := Default()
	RegisterFlags(first, &scratch)
	if err := first.Parse(args); err != nil && !errors.Is(err, flag.ErrHelp) {
		// reported properly below
		path = ""
	}

	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return c, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.String("config", path, "YAML config file; flags override its values")
	RegisterFlags(fs, &c)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Validate rejects settings no component can work with.
//
// Returns:
//   - error: an error wrapping ErrInvalid that lists every problem, or nil
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive")
	check(strings.TrimSpace(c.Images.A) != "", "image a path is empty")
	check(strings.TrimSpace(c.Images.B) != "", "image b path is empty")
	check(c.Camera.FovDegrees > 0 && c.Camera.FovDegrees < 180, "fov must be between 0 and 180 degrees")
	check(c.Camera.Distance > 0, "camera distance must be positive")
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "clip planes need 0 < near < far")
	check(c.Card.Width > 0 && c.Card.Height > 0, "card size must be positive")
	check(c.Card.MaxTilt >= 0, "max tilt must not be negative")
	check(c.Render.MSAA == 1 || c.Render.MSAA == 4 || c.Render.MSAA == 8 || c.Render.MSAA == 16, "msaa must be 1, 4, 8 or 16")
	check(c.Render.FrameLimit >= 0, "frame limit must not be negative")
	check(c.Loader.Workers > 0, "loader needs at least one worker")
	check(c.Loader.MaxTextureSize >= 0, "max texture size must not be negative")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
