//go:build !js

// Package glfwcontext hosts the renderer in a GLFW window.
package glfwcontext

import (
	"fmt"
	"log/slog"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/options"
)

// Context is a GLFW window with a 4.1 core profile context.
type Context struct {
	window *glfw.Window
	start  float64
	// keyCallbacks run when their key is pressed.
	keyCallbacks map[glfw.Key]func()
}

// New creates a window sized and titled from opts. Hidden windows are used
// for offscreen rendering when EGL is not requested.
func New(opts *options.Options, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	// the viewport is fixed at creation
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	c := &Context{
		window:       win,
		start:        glfw.GetTime(),
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	c.MakeCurrent()
	glfw.SwapInterval(1)
	return c, nil
}

// RegisterKeyCallback runs f whenever key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
	}
	if callback, ok := c.keyCallbacks[key]; ok {
		callback()
	}
}

func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime() - c.start
}

var _ graphics.Context = (*Context)(nil)

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	slog.Info("GLFW initialized", "version", glfw.GetVersionString())
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	slog.Info("GLFW terminated")
}
