//go:build !windows && !linux

package platform

// New always fails on platforms without a window backend.
func New(opts Options) (Backend, error) {
	return nil, ErrUnsupported
}
