package ebiten_view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerInput is the input state ebiten polled for the current tick.
type pointerInput interface {
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
	CursorPosition() (x, y int)
	EscapePressed() bool
}

// ebitenInput reads the live ebiten input state.
type ebitenInput struct{}

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) EscapePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
