//go:build js && wasm

// Command webgl draws the triangle on the page's game-surface canvas.
// Build with GOOS=js GOARCH=wasm and serve with cmd/serve.
package main

import (
	"log"
	"log/slog"
	"syscall/js"

	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/renderer"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/webgl"
)

func main() {
	opts := options.Default()

	canvas, err := webgl.NewContext(opts.CanvasID)
	if err != nil {
		log.Fatalf("Failed to acquire drawing surface: %v", err)
	}
	if v := canvas.Variant(); v != "" {
		opts.Variant = v
	}
	variant, err := shader.ParseVariant(opts.Variant)
	if err != nil {
		log.Fatalf("Invalid variant: %v", err)
	}

	width, height := canvas.Size()
	r, err := renderer.New(webgl.NewDevice(canvas.GL), webgl.Scheduler{}, renderer.Config{
		Variant: variant,
		Dialect: shader.WebGL,
		Width:   width,
		Height:  height,
	})
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	stop := js.FuncOf(func(this js.Value, args []js.Value) any {
		r.Stop()
		return nil
	})
	defer stop.Release()
	js.Global().Set("stopRendering", stop)

	r.Run()
	<-r.Done()

	js.Global().Delete("stopRendering")
	r.Shutdown()
	slog.Info("rendering stopped", "frames", r.Frames())
}
