package gltest

import "github.com/richinsley/gotriangle/graphics"

// Context is a fake host surface. Time advances by Step seconds on every
// EndFrame and ShouldClose turns true once CloseAfter frames have been
// presented (never when CloseAfter is zero).
type Context struct {
	Width      int
	Height     int
	Step       float64
	CloseAfter int

	Presented int
	ShutDown  bool
	now       float64
}

func (c *Context) MakeCurrent() {}

func (c *Context) Shutdown() { c.ShutDown = true }

func (c *Context) ShouldClose() bool {
	return c.CloseAfter > 0 && c.Presented >= c.CloseAfter
}

func (c *Context) EndFrame() {
	c.Presented++
	c.now += c.Step
}

func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }

func (c *Context) Time() float64 { return c.now }

var _ graphics.Context = (*Context)(nil)
