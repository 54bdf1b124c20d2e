//go:build !js

// Package gldevice implements graphics.Device on desktop OpenGL 4.1 core
// and OpenGL ES 3.0 contexts.
package gldevice

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gotriangle/graphics"
)

var glInitOnce sync.Once

// object is a GL name. Zero is never a valid name.
type object uint32

func (o object) Valid() bool { return o != 0 }

// location is a uniform location. Negative values are invalid.
type location int32

func (l location) Valid() bool { return l >= 0 }

// Device issues graphics.Device calls on the current GL context. Core
// profiles need a bound vertex array, so Device owns one.
type Device struct {
	vao uint32
}

// New makes ctx current, loads the GL entry points and binds the vertex
// array the renderer's attribute state is recorded in.
func New(ctx graphics.Context) (*Device, error) {
	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Release deletes the vertex array.
func (d *Device) Release() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func name(o graphics.Object) uint32 {
	v, _ := o.(object)
	return uint32(v)
}

func shaderType(stage graphics.ShaderStage) uint32 {
	if stage == graphics.FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *Device) CreateShader(stage graphics.ShaderStage) graphics.Object {
	return object(gl.CreateShader(shaderType(stage)))
}

func (d *Device) ShaderSource(s graphics.Object, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(name(s), 1, csources, nil)
	free()
}

func (d *Device) CompileShader(s graphics.Object) { gl.CompileShader(name(s)) }

func (d *Device) ShaderCompiled(s graphics.Object) bool {
	var status int32
	gl.GetShaderiv(name(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ShaderInfoLog(s graphics.Object) string {
	var logLength int32
	gl.GetShaderiv(name(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(name(s), logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Device) DeleteShader(s graphics.Object) { gl.DeleteShader(name(s)) }

func (d *Device) CreateProgram() graphics.Object { return object(gl.CreateProgram()) }

func (d *Device) AttachShader(p, s graphics.Object) { gl.AttachShader(name(p), name(s)) }

func (d *Device) LinkProgram(p graphics.Object) { gl.LinkProgram(name(p)) }

func (d *Device) ProgramLinked(p graphics.Object) bool {
	var status int32
	gl.GetProgramiv(name(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ValidateProgram(p graphics.Object) { gl.ValidateProgram(name(p)) }

func (d *Device) ProgramValidated(p graphics.Object) bool {
	var status int32
	gl.GetProgramiv(name(p), gl.VALIDATE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ProgramInfoLog(p graphics.Object) string {
	var logLength int32
	gl.GetProgramiv(name(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(name(p), logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Device) UseProgram(p graphics.Object) { gl.UseProgram(name(p)) }

func (d *Device) DeleteProgram(p graphics.Object) { gl.DeleteProgram(name(p)) }

func (d *Device) CreateBuffer() graphics.Object {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return object(vbo)
}

func (d *Device) BindArrayBuffer(b graphics.Object) { gl.BindBuffer(gl.ARRAY_BUFFER, name(b)) }

func (d *Device) StaticArrayData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(b graphics.Object) {
	vbo := name(b)
	gl.DeleteBuffers(1, &vbo)
}

func (d *Device) AttribLocation(p graphics.Object, attrib string) graphics.Attrib {
	return graphics.Attrib(gl.GetAttribLocation(name(p), gl.Str(attrib+"\x00")))
}

func (d *Device) VertexAttribPointer(a graphics.Attrib, size, stride, offset int) {
	if !a.Valid() {
		return
	}
	gl.VertexAttribPointer(uint32(a), int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
}

func (d *Device) EnableVertexAttribArray(a graphics.Attrib) {
	if a.Valid() {
		gl.EnableVertexAttribArray(uint32(a))
	}
}

func (d *Device) UniformLocation(p graphics.Object, uniform string) graphics.Object {
	return location(gl.GetUniformLocation(name(p), gl.Str(uniform+"\x00")))
}

func (d *Device) UniformMatrix4(u graphics.Object, m [16]float32) {
	loc, ok := u.(location)
	if !ok || !loc.Valid() {
		return
	}
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (d *Device) Enable(c graphics.Capability) {
	switch c {
	case graphics.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	case graphics.CullFace:
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
		gl.Enable(gl.CULL_FACE)
	}
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(mask graphics.ClearMask) {
	var bits uint32
	if mask&graphics.ColorBufferBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&graphics.DepthBufferBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

var _ graphics.Device = (*Device)(nil)
