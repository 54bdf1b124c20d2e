//go:build !js

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	cerrors "cogentcore.org/core/base/errors"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gotriangle/capture"
	"github.com/richinsley/gotriangle/encoder"
	"github.com/richinsley/gotriangle/gldevice"
	"github.com/richinsley/gotriangle/glfwcontext"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/headless"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/renderer"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/translator"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, flags, err := options.Parse("gotriangle", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error parsing options: %v", err)
	}
	if flags.Help {
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if flags.PrintConfig {
		if err := opts.WriteTOML(os.Stdout); err != nil {
			log.Fatalf("Error writing config: %v", err)
		}
		return
	}

	if opts.CheckShaders {
		checkShaders(opts.ShaderVariant())
	}

	switch opts.Mode {
	case options.ModeWindow:
		err = runWindow(opts)
	default:
		err = runOffscreen(opts)
	}
	if err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}
}

// checkShaders logs translator failures and carries on, like a failed
// compile in the renderer.
func checkShaders(v shader.Variant) {
	log.Printf("Checking %s shaders with the offline translator...", v)
	res, err := translator.Check(v)
	if cerrors.Log(err) != nil {
		return
	}
	log.Printf("Shaders translated cleanly (%d uniforms)", len(res.Uniforms))
}

func runWindow(opts *options.Options) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts, true)
	if err != nil {
		return err
	}
	defer ctx.Shutdown()

	dev, err := gldevice.New(ctx)
	if err != nil {
		return err
	}
	defer dev.Release()
	log.Printf("OpenGL %s", gldevice.Version())

	width, height := ctx.GetFramebufferSize()
	q := &renderer.FrameQueue{}
	r, err := renderer.New(dev, q, renderer.Config{
		Variant: opts.ShaderVariant(),
		Dialect: shader.GL410,
		Width:   width,
		Height:  height,
	})
	if err != nil {
		return err
	}
	defer r.Shutdown()
	ctx.RegisterKeyCallback(glfw.KeyQ, r.Stop)

	log.Println("Starting interactive render loop...")
	r.Run()
	frames := renderer.Pump(ctx, q, r.Stop)
	log.Printf("Rendered %d frames", frames)
	return nil
}

// offscreenContext returns an EGL pbuffer context, or a hidden GLFW
// window when EGL was not asked for. release undoes whatever was set up.
func offscreenContext(opts *options.Options) (ctx graphics.Context, dialect shader.Dialect, release func(), err error) {
	if opts.Headless {
		ctx, err = headless.New(opts.Width, opts.Height)
		if err != nil {
			return nil, 0, nil, err
		}
		return ctx, shader.GLES300, ctx.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, 0, nil, err
	}
	win, err := glfwcontext.New(opts, false)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, 0, nil, err
	}
	return win, shader.GL410, func() {
		win.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func runOffscreen(opts *options.Options) error {
	ctx, dialect, release, err := offscreenContext(opts)
	if err != nil {
		return err
	}
	defer release()

	dev, err := gldevice.New(ctx)
	if err != nil {
		return err
	}
	defer dev.Release()

	off, err := gldevice.NewOffscreen(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer off.Destroy()

	q := &renderer.FrameQueue{}
	r, err := renderer.New(dev, q, renderer.Config{
		Variant: opts.ShaderVariant(),
		Dialect: dialect,
		Width:   opts.Width,
		Height:  opts.Height,
	})
	if err != nil {
		return err
	}
	defer r.Shutdown()

	output := opts.OutputFile()
	if opts.Mode == options.ModeSnapshot {
		log.Printf("Rendering snapshot at %.2fs...", opts.SnapshotAt)
		pixels, err := capture.Snapshot(r, q, off, opts.SnapshotAt*1000)
		if err != nil {
			return err
		}
		if err := encoder.SaveImage(output, pixels, opts.Width, opts.Height); err != nil {
			return err
		}
		log.Printf("Successfully wrote %s", output)
		return nil
	}

	enc, err := encoder.NewFFmpegEncoder(encoder.Config{
		Width:      opts.Width,
		Height:     opts.Height,
		FPS:        opts.FPS,
		Output:     output,
		Codec:      opts.Codec,
		FFMPEGPath: opts.FFMPEGPath,
	})
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	log.Println("Starting offscreen render loop...")
	frames, err := capture.Record(r, q, off, enc, renderer.FrameTimes(opts.Duration, opts.FPS))
	if err != nil {
		return err
	}
	log.Printf("Successfully rendered %d frames to %s", frames, output)
	return nil
}
