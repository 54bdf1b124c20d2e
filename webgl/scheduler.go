//go:build js && wasm

package webgl

import "syscall/js"

// Scheduler runs frames from window.requestAnimationFrame.
type Scheduler struct{}

// RequestFrame runs fn at the next display refresh with the
// high-resolution timestamp in milliseconds.
func (Scheduler) RequestFrame(fn func(now float64)) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		now := 0.0
		if len(args) > 0 {
			now = args[0].Float()
		}
		fn(now)
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}
