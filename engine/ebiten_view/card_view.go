// Package ebiten_view draws the card with ebiten instead of WebGPU. It shares the camera, object, material and
// interaction handler with the desktop engine and reproduces the shading program in Kage, which makes it the target
// for touch devices and the browser.
package ebiten_view

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/camera"
	"github.com/Carmen-Shannon/lenticular/engine/game_object"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
	"github.com/Carmen-Shannon/lenticular/lenticular"
	"github.com/hajimehoshi/ebiten/v2"
)

// ShaderSource is the Kage cross-fade program. Image 0 is texture A, image 1 texture B.
//
//go:embed assets/lenticular.kage
var ShaderSource []byte

// CardView is an ebiten.Game drawing the card.
type CardView interface {
	ebiten.Game

	// Mount starts forwarding cursor and touch input to the interaction handler.
	Mount()

	// Unmount detaches input, releases the material, and makes the next Update return
	// ebiten.Termination. Only the first call does anything.
	Unmount()

	// Mounted reports whether input is being forwarded.
	Mounted() bool

	// Viewport returns the current layout size, the space cursor and touch positions are reported in.
	Viewport() (width, height float64)
}

type cardView struct {
	cam     camera.Camera
	obj     game_object.GameObject
	mat     material.Material
	handler lenticular.Handler

	textureSize    int
	escCloses      bool
	handlerOptions []lenticular.HandlerBuilderOption

	shader   *ebiten.Shader
	textures [2]*ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16

	mu            sync.Mutex
	width, height int

	input      pointerInput
	touchIDs   []ebiten.TouchID
	touches    []lenticular.Touch
	lastTouch  map[ebiten.TouchID]image.Point
	lastCursor image.Point
	cursorSeen bool

	mounted     atomic.Bool
	terminated  atomic.Bool
	unmountOnce sync.Once
}

var _ CardView = &cardView{}

// NewCardView creates a view of obj as seen by cam, shaded with mat. The handler is built here, driving mat's ratio
// and obj's rotation from the view's layout size.
//
// Parameters:
//   - cam: the camera
//   - obj: the object; it must carry a model
//   - mat: the card material
//   - options: builder options
//
// Returns:
//   - CardView: the view, not yet mounted
//   - error: an error if an argument is missing
func NewCardView(cam camera.Camera, obj game_object.GameObject, mat material.Material, options ...CardViewBuilderOption) (CardView, error) {
	switch {
	case cam == nil:
		return nil, errors.New("ebiten view: camera is required")
	case obj == nil || obj.Model() == nil:
		return nil, errors.New("ebiten view: object with a model is required")
	case mat == nil:
		return nil, errors.New("ebiten view: material is required")
	}

	v := &cardView{
		cam:         cam,
		obj:         obj,
		mat:         mat,
		textureSize: 1024,
		escCloses:   true,
		indices:     narrowIndices(obj.Model().Indices()),
		input:       ebitenInput{},
		lastTouch:   make(map[ebiten.TouchID]image.Point),
	}
	for _, opt := range options {
		opt(v)
	}
	v.handler = lenticular.NewHandler(lenticular.Join(mat, obj), v.Viewport, v.handlerOptions...)
	return v, nil
}

func (v *cardView) Mount() {
	if v.terminated.Load() {
		return
	}
	if !v.mounted.Swap(true) {
		common.Logger().Info("ebiten view mounted")
	}
}

func (v *cardView) Unmount() {
	v.unmountOnce.Do(func() {
		v.mounted.Store(false)
		v.terminated.Store(true)
		v.handler.Detach()
		v.mat.Release()
		common.Logger().Info("ebiten view unmounted")
	})
}

func (v *cardView) Mounted() bool {
	return v.mounted.Load()
}

func (v *cardView) Viewport() (float64, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return float64(v.width), float64(v.height)
}

func (v *cardView) Update() error {
	if v.terminated.Load() {
		return ebiten.Termination
	}
	if v.shader == nil {
		s, err := ebiten.NewShader(ShaderSource)
		if err != nil {
			return fmt.Errorf("compile card shader: %w", err)
		}
		v.shader = s
	}
	if !v.mounted.Load() {
		return nil
	}

	if v.escCloses && v.input.EscapePressed() {
		v.Unmount()
		return ebiten.Termination
	}
	v.pollInput()
	return nil
}

// pollInput turns touch and cursor motion into handler events. Only movement counts: a new contact, a resting
// finger, or the cursor position read on the first tick record a position without changing the pose. Touches win
// over the cursor, and only the lowest touch ID drives the card.
func (v *cardView) pollInput() {
	v.touchIDs = v.input.AppendTouchIDs(v.touchIDs[:0])
	if len(v.touchIDs) > 0 {
		slices.Sort(v.touchIDs)
		moved := false
		v.touches = v.touches[:0]
		for i, id := range v.touchIDs {
			x, y := v.input.TouchPosition(id)
			p := image.Pt(x, y)
			if last, ok := v.lastTouch[id]; ok && last != p && i == 0 {
				moved = true
			}
			v.lastTouch[id] = p
			v.touches = append(v.touches, lenticular.Touch{ID: int(id), X: float64(x), Y: float64(y)})
		}
		for id := range v.lastTouch {
			if !slices.Contains(v.touchIDs, id) {
				delete(v.lastTouch, id)
			}
		}
		if moved {
			v.handler.TouchMove(v.touches)
		}
		return
	}
	clear(v.lastTouch)

	x, y := v.input.CursorPosition()
	p := image.Pt(x, y)
	if !v.cursorSeen {
		v.lastCursor, v.cursorSeen = p, true
		return
	}
	if p == v.lastCursor {
		return
	}
	v.lastCursor = p
	v.handler.PointerMove(float64(x), float64(y))
}

func (v *cardView) Draw(screen *ebiten.Image) {
	if v.terminated.Load() || v.shader == nil {
		return
	}
	v.uploadPending()

	vp := v.cam.ViewProjectionMatrix()
	m := v.obj.ModelMatrix()
	var mvp [16]float32
	common.Mul4(mvp[:], vp[:], m[:])

	b := screen.Bounds()
	size := float32(v.textureSize)
	v.vertices = ProjectVertices(v.vertices, mvp, v.obj.Model().Vertices(), float32(b.Dx()), float32(b.Dy()), size, size)

	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: map[string]any{"Ratio": v.mat.BlendRatio()},
		Images:   [4]*ebiten.Image{v.textures[material.SlotA], v.textures[material.SlotB]},
	}
	screen.Fill(image.Black)
	if v.obj.Enabled() {
		screen.DrawTrianglesShader(v.vertices, v.indices, v.shader, op)
	}
}

// uploadPending builds images for textures staged since the last frame, creating the placeholders on the first
// frame. Kage reads both images at the same pixel position, so every image is scaled to one square size.
func (v *cardView) uploadPending() {
	for _, slot := range []material.TextureSlot{material.SlotA, material.SlotB} {
		if v.textures[slot] == nil {
			v.textures[slot] = v.scaledImage(v.mat.Texture(slot))
		}
	}
	for _, pt := range v.mat.TakePending() {
		if old := v.textures[pt.Slot]; old != nil {
			old.Deallocate()
		}
		v.textures[pt.Slot] = v.scaledImage(pt.Data)
		common.Logger().Debug("ebiten texture uploaded", "slot", pt.Slot, "width", pt.Data.Width, "height", pt.Data.Height)
	}
}

func (v *cardView) scaledImage(data common.TextureStagingData) *ebiten.Image {
	w, h := int(data.Width), int(data.Height)
	src := ebiten.NewImageFromImage(&image.NRGBA{
		Pix:    data.Pixels,
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	})
	defer src.Deallocate()

	dst := ebiten.NewImage(v.textureSize, v.textureSize)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(v.textureSize)/float64(w), float64(v.textureSize)/float64(h))
	dst.DrawImage(src, op)
	return dst
}

func (v *cardView) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.mu.Lock()
	v.width, v.height = outsideWidth, outsideHeight
	v.mu.Unlock()
	return outsideWidth, outsideHeight
}

// Run configures the ebiten window, mounts the view and blocks in ebiten.RunGame until the view terminates or the
// window closes. The view is unmounted before Run returns.
//
// Parameters:
//   - v: the view
//   - title: the window title
//   - width, height: the window size
//
// Returns:
//   - error: the error that stopped the game loop, nil on a normal exit
func Run(v CardView, title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetVsyncEnabled(true)

	v.Mount()
	defer v.Unmount()
	return ebiten.RunGame(v)
}
