//go:build js && wasm

// Package webgl implements graphics.Device on a browser WebGL context and
// schedules frames with requestAnimationFrame.
package webgl

import (
	"syscall/js"

	"github.com/richinsley/gotriangle/graphics"
)

// object wraps a WebGL object or uniform location. WebGL reports failure
// with null.
type object struct {
	v js.Value
}

func (o object) Valid() bool { return !o.v.IsNull() && !o.v.IsUndefined() }

func value(o graphics.Object) js.Value {
	if v, ok := o.(object); ok {
		return v.v
	}
	return js.Null()
}

type glConsts struct {
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangles      int
	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int
	validateStatus int
	colorBufferBit int
	depthBufferBit int
	depthTest      int
	cullFace       int
	back           int
	ccw            int
}

// Device issues graphics.Device calls on a WebGLRenderingContext.
type Device struct {
	gl     js.Value
	consts glConsts
}

// NewDevice wraps gl, a context returned by NewContext.
func NewDevice(gl js.Value) *Device {
	d := &Device{gl: gl}
	d.consts = glConsts{
		arrayBuffer:    gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     gl.Get("STATIC_DRAW").Int(),
		floatType:      gl.Get("FLOAT").Int(),
		triangles:      gl.Get("TRIANGLES").Int(),
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		validateStatus: gl.Get("VALIDATE_STATUS").Int(),
		colorBufferBit: gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit: gl.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:      gl.Get("DEPTH_TEST").Int(),
		cullFace:       gl.Get("CULL_FACE").Int(),
		back:           gl.Get("BACK").Int(),
		ccw:            gl.Get("CCW").Int(),
	}
	return d
}

func (d *Device) CreateShader(stage graphics.ShaderStage) graphics.Object {
	t := d.consts.vertexShader
	if stage == graphics.FragmentShader {
		t = d.consts.fragmentShader
	}
	return object{d.gl.Call("createShader", t)}
}

func (d *Device) ShaderSource(s graphics.Object, source string) {
	d.gl.Call("shaderSource", value(s), source)
}

func (d *Device) CompileShader(s graphics.Object) { d.gl.Call("compileShader", value(s)) }

func (d *Device) ShaderCompiled(s graphics.Object) bool {
	return d.gl.Call("getShaderParameter", value(s), d.consts.compileStatus).Truthy()
}

func (d *Device) ShaderInfoLog(s graphics.Object) string {
	log := d.gl.Call("getShaderInfoLog", value(s))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (d *Device) DeleteShader(s graphics.Object) { d.gl.Call("deleteShader", value(s)) }

func (d *Device) CreateProgram() graphics.Object { return object{d.gl.Call("createProgram")} }

func (d *Device) AttachShader(p, s graphics.Object) {
	d.gl.Call("attachShader", value(p), value(s))
}

func (d *Device) LinkProgram(p graphics.Object) { d.gl.Call("linkProgram", value(p)) }

func (d *Device) ProgramLinked(p graphics.Object) bool {
	return d.gl.Call("getProgramParameter", value(p), d.consts.linkStatus).Truthy()
}

func (d *Device) ValidateProgram(p graphics.Object) { d.gl.Call("validateProgram", value(p)) }

func (d *Device) ProgramValidated(p graphics.Object) bool {
	return d.gl.Call("getProgramParameter", value(p), d.consts.validateStatus).Truthy()
}

func (d *Device) ProgramInfoLog(p graphics.Object) string {
	log := d.gl.Call("getProgramInfoLog", value(p))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (d *Device) UseProgram(p graphics.Object) { d.gl.Call("useProgram", value(p)) }

func (d *Device) DeleteProgram(p graphics.Object) { d.gl.Call("deleteProgram", value(p)) }

func (d *Device) CreateBuffer() graphics.Object { return object{d.gl.Call("createBuffer")} }

func (d *Device) BindArrayBuffer(b graphics.Object) {
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, value(b))
}

func (d *Device) StaticArrayData(data []float32) {
	d.gl.Call("bufferData", d.consts.arrayBuffer, float32Array(data), d.consts.staticDraw)
}

func (d *Device) DeleteBuffer(b graphics.Object) { d.gl.Call("deleteBuffer", value(b)) }

func (d *Device) AttribLocation(p graphics.Object, name string) graphics.Attrib {
	return graphics.Attrib(d.gl.Call("getAttribLocation", value(p), name).Int())
}

func (d *Device) VertexAttribPointer(a graphics.Attrib, size, stride, offset int) {
	if !a.Valid() {
		return
	}
	d.gl.Call("vertexAttribPointer", int(a), size, d.consts.floatType, false, stride, offset)
}

func (d *Device) EnableVertexAttribArray(a graphics.Attrib) {
	if a.Valid() {
		d.gl.Call("enableVertexAttribArray", int(a))
	}
}

func (d *Device) UniformLocation(p graphics.Object, name string) graphics.Object {
	return object{d.gl.Call("getUniformLocation", value(p), name)}
}

func (d *Device) UniformMatrix4(u graphics.Object, m [16]float32) {
	loc := value(u)
	if loc.IsNull() {
		return
	}
	d.gl.Call("uniformMatrix4fv", loc, false, float32Array(m[:]))
}

func (d *Device) Enable(c graphics.Capability) {
	switch c {
	case graphics.DepthTest:
		d.gl.Call("enable", d.consts.depthTest)
	case graphics.CullFace:
		d.gl.Call("enable", d.consts.cullFace)
		d.gl.Call("frontFace", d.consts.ccw)
		d.gl.Call("cullFace", d.consts.back)
	}
}

func (d *Device) Viewport(x, y, width, height int) {
	d.gl.Call("viewport", x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) { d.gl.Call("clearColor", r, g, b, a) }

func (d *Device) Clear(mask graphics.ClearMask) {
	bits := 0
	if mask&graphics.ColorBufferBit != 0 {
		bits |= d.consts.colorBufferBit
	}
	if mask&graphics.DepthBufferBit != 0 {
		bits |= d.consts.depthBufferBit
	}
	d.gl.Call("clear", bits)
}

func (d *Device) DrawTriangles(first, count int) {
	d.gl.Call("drawArrays", d.consts.triangles, first, count)
}

var _ graphics.Device = (*Device)(nil)
