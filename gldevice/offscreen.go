//go:build !js

package gldevice

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gotriangle/encoder"
)

// Offscreen is an RGBA8 framebuffer with a depth attachment. While bound,
// every draw lands in it instead of the window.
type Offscreen struct {
	fbo               uint32
	colorRenderbuffer uint32
	depthRenderbuffer uint32
	width             int
	height            int
	pixels            []byte
}

// NewOffscreen creates and binds a width x height framebuffer.
func NewOffscreen(width, height int) (*Offscreen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	o := &Offscreen{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
	}

	gl.GenFramebuffers(1, &o.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)

	gl.GenRenderbuffers(1, &o.colorRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, o.colorRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, o.colorRenderbuffer)

	gl.GenRenderbuffers(1, &o.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, o.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, o.depthRenderbuffer)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		o.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	slog.Info("offscreen framebuffer ready", "width", width, "height", height)
	return o, nil
}

// Bind directs drawing into the framebuffer.
func (o *Offscreen) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
}

// ReadRGBA reads the framebuffer back, flipping GL's bottom-up rows so the
// result is top row first. The returned slice is reused by the next call.
func (o *Offscreen) ReadRGBA() ([]byte, error) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, o.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(o.width), int32(o.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(o.pixels))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, fmt.Errorf("glReadPixels failed: 0x%x", e)
	}
	encoder.FlipRows(o.pixels, o.width*4)

	out := make([]byte, len(o.pixels))
	copy(out, o.pixels)
	return out, nil
}

// Destroy deletes the framebuffer and its attachments.
func (o *Offscreen) Destroy() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.DeleteFramebuffers(1, &o.fbo)
	gl.DeleteRenderbuffers(1, &o.colorRenderbuffer)
	gl.DeleteRenderbuffers(1, &o.depthRenderbuffer)
}
