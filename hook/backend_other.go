//go:build !linux && !windows

package hook

import "github.com/rs/zerolog"

// NewBackend reports ErrUnsupported.
func NewBackend(opts Options, log zerolog.Logger) (Backend, error) {
	return nil, ErrUnsupported
}
