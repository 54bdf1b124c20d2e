//go:build !linux && !js

package headless

import (
	"fmt"

	"github.com/richinsley/gotriangle/graphics"
)

// New reports that EGL is unavailable on this platform.
func New(width, height int) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
