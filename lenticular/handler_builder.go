package lenticular

// HandlerBuilderOption configures a Handler in NewHandler.
type HandlerBuilderOption func(*handlerImpl)

// WithMaxTilt overrides the rotation reached at the display edges.
//
// Parameters:
//   - radians: the edge rotation
//
// Returns:
//   - HandlerBuilderOption: the option
func WithMaxTilt(radians float64) HandlerBuilderOption {
	return func(h *handlerImpl) {
		h.maxTilt = radians
	}
}
