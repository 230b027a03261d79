package window

// WindowBuilderOption configures a window in NewWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the requested window width in screen coordinates. Non-positive values are ignored.
//
// Parameters:
//   - width: the window width
//
// Returns:
//   - WindowBuilderOption: a function that applies the width option to a window
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
	}
}

// WithHeight sets the requested window height in screen coordinates. Non-positive values are ignored.
//
// Parameters:
//   - height: the window height
//
// Returns:
//   - WindowBuilderOption: a function that applies the height option to a window
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if height > 0 {
			w.height = height
		}
	}
}
