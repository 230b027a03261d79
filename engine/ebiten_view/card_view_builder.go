package ebiten_view

import "github.com/Carmen-Shannon/lenticular/lenticular"

// CardViewBuilderOption configures a view in NewCardView.
type CardViewBuilderOption func(*cardView)

// WithTextureSize sets the square size both card images are scaled to before drawing. Non-positive values are
// ignored. Default 1024.
func WithTextureSize(size int) CardViewBuilderOption {
	return func(v *cardView) {
		if size > 0 {
			v.textureSize = size
		}
	}
}

// WithEscapeCloses controls whether the Escape key unmounts the view. Default true.
func WithEscapeCloses(enabled bool) CardViewBuilderOption {
	return func(v *cardView) {
		v.escCloses = enabled
	}
}

// WithHandlerOptions passes options to the interaction handler, such as lenticular.WithMaxTilt.
func WithHandlerOptions(opts ...lenticular.HandlerBuilderOption) CardViewBuilderOption {
	return func(v *cardView) {
		v.handlerOptions = append(v.handlerOptions, opts...)
	}
}
