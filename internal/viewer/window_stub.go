//go:build !ebiten

package viewer

import "errors"

// ErrNoWindow is returned by Run in builds without the ebiten tag.
var ErrNoWindow = errors.New("viewer: built without the 'ebiten' tag; rebuild with -tags ebiten")

// Run is unavailable in headless builds.
func Run(Options) error {
	return ErrNoWindow
}

// Available reports whether this binary can open a window.
const Available = false
