//go:build js && wasm

package webgl

import (
	"fmt"
	"log/slog"
	"syscall/js"
)

// Canvas is the drawing surface and the WebGL context acquired on it.
type Canvas struct {
	Element js.Value
	GL      js.Value
}

// NewContext looks up the canvas with the given id and acquires a WebGL
// context on it, falling back to the experimental-webgl name.
func NewContext(canvasID string) (*Canvas, error) {
	canvas := js.Global().Get("document").Call("getElementById", canvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("no canvas with id %q", canvasID)
	}

	gl := canvas.Call("getContext", "webgl")
	if gl.IsNull() || gl.IsUndefined() {
		slog.Warn("webgl not supported, falling back on experimental-webgl")
		gl = canvas.Call("getContext", "experimental-webgl")
	}
	if gl.IsNull() || gl.IsUndefined() {
		return nil, fmt.Errorf("browser does not support webgl")
	}
	return &Canvas{Element: canvas, GL: gl}, nil
}

// Size returns the canvas drawing buffer size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.Element.Get("width").Int(), c.Element.Get("height").Int()
}

// Variant returns the canvas data-variant attribute, or "" when unset.
func (c *Canvas) Variant() string {
	v := c.Element.Call("getAttribute", "data-variant")
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}
