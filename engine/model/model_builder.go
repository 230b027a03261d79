package model

// ModelBuilderOption configures a Model in NewPlane.
type ModelBuilderOption func(*model)

// WithName sets the mesh identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - ModelBuilderOption: a function that sets the name
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSegments subdivides the plane into an x by y grid of quads. Values below 1 are raised to 1.
//
// Parameters:
//   - x: columns of quads
//   - y: rows of quads
//
// Returns:
//   - ModelBuilderOption: a function that sets the subdivision
func WithSegments(x, y int) ModelBuilderOption {
	return func(m *model) {
		m.segmentsX = x
		m.segmentsY = y
	}
}
