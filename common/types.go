// package common contains the plain data types, math helpers, and logging hooks shared by every engine package.
// Nothing in here touches the GPU, so both the WebGPU and the ebiten front ends can depend on it.
package common

// TextureStagingData holds decoded RGBA pixels waiting to be uploaded to a texture on the render thread.
type TextureStagingData struct {
	// Pixels is tightly packed RGBA8, 4 bytes per pixel, rows top to bottom.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// Valid reports whether the pixel buffer matches the declared dimensions.
//
// Returns:
//   - bool: true if Width and Height are non-zero and Pixels holds exactly Width*Height*4 bytes
func (t *TextureStagingData) Valid() bool {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return false
	}
	return len(t.Pixels) == int(t.Width)*int(t.Height)*4
}

// SolidTexture builds a single pixel texture of the given color. Material slots use it until their image arrives.
//
// Parameters:
//   - r, g, b, a: the pixel color
//
// Returns:
//   - TextureStagingData: a 1x1 texture
func SolidTexture(r, g, b, a uint8) TextureStagingData {
	return TextureStagingData{
		Pixels: []byte{r, g, b, a},
		Width:  1,
		Height: 1,
	}
}
