//go:build js && wasm

package webgl

import (
	"syscall/js"
	"testing"

	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/renderer"
	"github.com/richinsley/gotriangle/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeConsts = map[string]int{
	"ARRAY_BUFFER":     0x8892,
	"STATIC_DRAW":      0x88E4,
	"FLOAT":            0x1406,
	"TRIANGLES":        0x0004,
	"VERTEX_SHADER":    0x8B31,
	"FRAGMENT_SHADER":  0x8B30,
	"COMPILE_STATUS":   0x8B81,
	"LINK_STATUS":      0x8B82,
	"VALIDATE_STATUS":  0x8B83,
	"COLOR_BUFFER_BIT": 0x4000,
	"DEPTH_BUFFER_BIT": 0x0100,
	"DEPTH_TEST":       0x0B71,
	"CULL_FACE":        0x0B44,
	"BACK":             0x0405,
	"CCW":              0x0901,
}

type glCall struct {
	name string
	args []js.Value
}

// fakeGL is a WebGLRenderingContext stand-in that records every call.
type fakeGL struct {
	value js.Value
	calls []glCall
}

func newFakeGL(t *testing.T) *fakeGL {
	t.Helper()
	f := &fakeGL{}
	newObject := func([]js.Value) any { return js.Global().Get("Object").New() }
	returns := map[string]func(args []js.Value) any{
		"createShader":        newObject,
		"createProgram":       newObject,
		"createBuffer":        newObject,
		"getShaderParameter":  func([]js.Value) any { return true },
		"getProgramParameter": func([]js.Value) any { return true },
		"getShaderInfoLog":    func([]js.Value) any { return js.Null() },
		"getProgramInfoLog":   func([]js.Value) any { return js.Null() },
		"getAttribLocation": func(args []js.Value) any {
			if args[1].String() == shader.PositionAttrib {
				return 0
			}
			if args[1].String() == shader.ColorAttrib {
				return 1
			}
			return -1
		},
		"getUniformLocation": func(args []js.Value) any {
			if args[1].String() == "missing" {
				return js.Null()
			}
			return js.Global().Get("Object").New()
		},
	}
	methods := map[string]func(args []js.Value) any{}
	for _, name := range []string{
		"createShader", "shaderSource", "compileShader", "getShaderParameter",
		"getShaderInfoLog", "deleteShader", "createProgram", "attachShader",
		"linkProgram", "getProgramParameter", "validateProgram", "getProgramInfoLog",
		"useProgram", "deleteProgram", "createBuffer", "bindBuffer", "bufferData",
		"deleteBuffer", "getAttribLocation", "vertexAttribPointer",
		"enableVertexAttribArray", "getUniformLocation", "uniformMatrix4fv",
		"enable", "frontFace", "cullFace", "viewport", "clearColor", "clear",
		"drawArrays",
	} {
		ret := returns[name]
		methods[name] = func(args []js.Value) any {
			f.calls = append(f.calls, glCall{name: name, args: args})
			if ret != nil {
				return ret(args)
			}
			return nil
		}
	}
	f.value = jsObject(t, methods)
	for name, v := range fakeConsts {
		f.value.Set(name, v)
	}
	return f
}

func (f *fakeGL) named(name string) []glCall {
	var out []glCall
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGL) names() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.name
	}
	return out
}

func TestEnable(t *testing.T) {
	gl := newFakeGL(t)
	d := NewDevice(gl.value)

	d.Enable(graphics.DepthTest)
	d.Enable(graphics.CullFace)

	assert.Equal(t, []string{"enable", "enable", "frontFace", "cullFace"}, gl.names())
	assert.Equal(t, fakeConsts["DEPTH_TEST"], gl.calls[0].args[0].Int())
	assert.Equal(t, fakeConsts["CULL_FACE"], gl.calls[1].args[0].Int())
	assert.Equal(t, fakeConsts["CCW"], gl.calls[2].args[0].Int())
	assert.Equal(t, fakeConsts["BACK"], gl.calls[3].args[0].Int())
}

func TestClearBits(t *testing.T) {
	gl := newFakeGL(t)
	d := NewDevice(gl.value)

	d.Clear(graphics.ColorBufferBit)
	d.Clear(graphics.DepthBufferBit)
	d.Clear(graphics.ColorBufferBit | graphics.DepthBufferBit)

	clears := gl.named("clear")
	require.Len(t, clears, 3)
	assert.Equal(t, 0x4000, clears[0].args[0].Int())
	assert.Equal(t, 0x0100, clears[1].args[0].Int())
	assert.Equal(t, 0x4100, clears[2].args[0].Int())
}

func TestUniformMatrix4(t *testing.T) {
	gl := newFakeGL(t)
	d := NewDevice(gl.value)
	p := d.CreateProgram()

	missing := d.UniformLocation(p, "missing")
	assert.False(t, missing.Valid())
	d.UniformMatrix4(missing, [16]float32{1})
	assert.Empty(t, gl.named("uniformMatrix4fv"))

	loc := d.UniformLocation(p, shader.WorldUniform)
	require.True(t, loc.Valid())
	var m [16]float32
	for i := range m {
		m[i] = float32(i) / 2
	}
	d.UniformMatrix4(loc, m)

	uploads := gl.named("uniformMatrix4fv")
	require.Len(t, uploads, 1)
	assert.False(t, uploads[0].args[1].Bool())
	arr := uploads[0].args[2]
	require.Equal(t, 16, arr.Length())
	assert.Equal(t, 2.5, arr.Index(5).Float())
	assert.Equal(t, 7.5, arr.Index(15).Float())
}

func TestStaticArrayData(t *testing.T) {
	gl := newFakeGL(t)
	d := NewDevice(gl.value)

	d.StaticArrayData([]float32{0, 0.5, -0.25})

	data := gl.named("bufferData")
	require.Len(t, data, 1)
	assert.Equal(t, fakeConsts["ARRAY_BUFFER"], data[0].args[0].Int())
	arr := data[0].args[1]
	require.Equal(t, 3, arr.Length())
	assert.Equal(t, 0.5, arr.Index(1).Float())
	assert.Equal(t, -0.25, arr.Index(2).Float())
	assert.Equal(t, fakeConsts["STATIC_DRAW"], data[0].args[2].Int())
}

func TestInvalidAttribSkipped(t *testing.T) {
	gl := newFakeGL(t)
	d := NewDevice(gl.value)
	p := d.CreateProgram()

	a := d.AttribLocation(p, "missing")
	assert.False(t, a.Valid())
	d.VertexAttribPointer(a, 3, 24, 12)
	d.EnableVertexAttribArray(a)
	assert.Empty(t, gl.named("vertexAttribPointer"))
	assert.Empty(t, gl.named("enableVertexAttribArray"))

	d.VertexAttribPointer(d.AttribLocation(p, shader.ColorAttrib), 3, 20, 8)
	ptrs := gl.named("vertexAttribPointer")
	require.Len(t, ptrs, 1)
	assert.Equal(t, 1, ptrs[0].args[0].Int())
	assert.Equal(t, fakeConsts["FLOAT"], ptrs[0].args[2].Int())
	assert.Equal(t, 20, ptrs[0].args[4].Int())
	assert.Equal(t, 8, ptrs[0].args[5].Int())
}

func TestInfoLogNull(t *testing.T) {
	gl := newFakeGL(t)
	d := NewDevice(gl.value)
	s := d.CreateShader(graphics.FragmentShader)

	assert.Equal(t, fakeConsts["FRAGMENT_SHADER"], gl.calls[0].args[0].Int())
	assert.Equal(t, "", d.ShaderInfoLog(s))
	assert.Equal(t, "", d.ProgramInfoLog(d.CreateProgram()))
	assert.True(t, d.ShaderCompiled(s))
}

func TestRendererOnWebGL(t *testing.T) {
	gl := newFakeGL(t)
	r, err := renderer.New(NewDevice(gl.value), &renderer.FrameQueue{}, renderer.Config{
		Variant: shader.Variant3D,
		Dialect: shader.WebGL,
		Width:   800,
		Height:  600,
	})
	require.NoError(t, err)

	r.Initialize()
	require.NoError(t, r.Err())
	r.RenderFrame(0)

	draws := gl.named("drawArrays")
	require.Len(t, draws, 1)
	assert.Equal(t, fakeConsts["TRIANGLES"], draws[0].args[0].Int())
	assert.Equal(t, 0, draws[0].args[1].Int())
	assert.Equal(t, renderer.VertexCount, draws[0].args[2].Int())
	// world, view and projection at start up, then world per frame
	assert.Len(t, gl.named("uniformMatrix4fv"), 4)
	assert.Len(t, gl.named("deleteShader"), 2)
}
