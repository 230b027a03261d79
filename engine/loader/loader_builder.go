package loader

import "net/http"

// LoaderBuilderOption configures a loader in NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of concurrent decodes. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that sets the worker count
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithMaxTextureSize caps the longer side of decoded images. Zero disables downsampling.
func WithMaxTextureSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		if size >= 0 {
			l.maxTextureSize = size
		}
	}
}

// WithHTTPClient replaces the client used for http(s) paths.
func WithHTTPClient(c *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		if c != nil {
			l.httpClient = c
		}
	}
}
