// Package gltest provides an in-memory graphics.Device and
// graphics.Context for tests that run without a GPU.
package gltest

import (
	"fmt"
	"strings"

	"github.com/richinsley/gotriangle/graphics"
)

// Handle is a fake object handle. ID zero is the null handle.
type Handle struct {
	ID   int
	Kind string
	Name string
}

func (h Handle) Valid() bool { return h.ID != 0 }

// Draw records one DrawTriangles call.
type Draw struct {
	Program Handle
	First   int
	Count   int
}

// AttribPointer records one VertexAttribPointer call.
type AttribPointer struct {
	Attrib graphics.Attrib
	Size   int
	Stride int
	Offset int
}

type shaderState struct {
	stage    graphics.ShaderStage
	source   string
	compiled bool
	log      string
}

type programState struct {
	shaders   []int
	linked    bool
	validated bool
	log       string
}

// Device is a recording graphics.Device. A shader fails to compile when
// CompileFails says so, or by default when its source has no main
// function.
type Device struct {
	CompileFails  func(stage graphics.ShaderStage, source string) bool
	LinkFails     bool
	ValidateFails bool

	Calls          []string
	Buffers        map[int][]float32
	Uniforms       map[string][16]float32
	UniformUploads int
	Pointers       []AttribPointer
	Enabled        map[graphics.Attrib]bool
	Capabilities   map[graphics.Capability]bool
	Draws          []Draw
	Clears         []graphics.ClearMask
	ClearColors    [][4]float32
	Viewports      [][4]int
	Deleted        []Handle

	nextID   int
	shaders  map[int]*shaderState
	programs map[int]*programState
	attribs  map[string]graphics.Attrib
	bound    int
	current  Handle
}

// NewDevice returns an empty Device.
func NewDevice() *Device {
	return &Device{
		Buffers:      make(map[int][]float32),
		Uniforms:     make(map[string][16]float32),
		Enabled:      make(map[graphics.Attrib]bool),
		Capabilities: make(map[graphics.Capability]bool),
		shaders:      make(map[int]*shaderState),
		programs:     make(map[int]*programState),
		attribs:      make(map[string]graphics.Attrib),
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) newHandle(kind, name string) Handle {
	d.nextID++
	return Handle{ID: d.nextID, Kind: kind, Name: name}
}

func handle(o graphics.Object) Handle {
	h, _ := o.(Handle)
	return h
}

func (d *Device) CreateShader(stage graphics.ShaderStage) graphics.Object {
	h := d.newHandle("shader", stage.String())
	d.shaders[h.ID] = &shaderState{stage: stage}
	d.record("CreateShader(%s)", stage)
	return h
}

func (d *Device) ShaderSource(s graphics.Object, source string) {
	if st := d.shaders[handle(s).ID]; st != nil {
		st.source = source
	}
	d.record("ShaderSource")
}

func (d *Device) CompileShader(s graphics.Object) {
	d.record("CompileShader")
	st := d.shaders[handle(s).ID]
	if st == nil {
		return
	}
	fails := !strings.Contains(st.source, "void main(")
	if d.CompileFails != nil {
		fails = d.CompileFails(st.stage, st.source)
	}
	st.compiled = !fails
	if fails {
		st.log = fmt.Sprintf("ERROR: 0:1: %s shader syntax error", st.stage)
	}
}

func (d *Device) ShaderCompiled(s graphics.Object) bool {
	st := d.shaders[handle(s).ID]
	return st != nil && st.compiled
}

func (d *Device) ShaderInfoLog(s graphics.Object) string {
	if st := d.shaders[handle(s).ID]; st != nil {
		return st.log
	}
	return ""
}

func (d *Device) DeleteShader(s graphics.Object) {
	d.Deleted = append(d.Deleted, handle(s))
	d.record("DeleteShader")
}

func (d *Device) CreateProgram() graphics.Object {
	h := d.newHandle("program", "")
	d.programs[h.ID] = &programState{}
	d.record("CreateProgram")
	return h
}

func (d *Device) AttachShader(p, s graphics.Object) {
	if ps := d.programs[handle(p).ID]; ps != nil {
		ps.shaders = append(ps.shaders, handle(s).ID)
	}
	d.record("AttachShader")
}

func (d *Device) LinkProgram(p graphics.Object) {
	d.record("LinkProgram")
	ps := d.programs[handle(p).ID]
	if ps == nil {
		return
	}
	ps.linked = !d.LinkFails
	for _, id := range ps.shaders {
		if st := d.shaders[id]; st == nil || !st.compiled {
			ps.linked = false
		}
	}
	if len(ps.shaders) != 2 {
		ps.linked = false
	}
	if !ps.linked {
		ps.log = "ERROR: program not linked"
	}
}

func (d *Device) ProgramLinked(p graphics.Object) bool {
	ps := d.programs[handle(p).ID]
	return ps != nil && ps.linked
}

func (d *Device) ValidateProgram(p graphics.Object) {
	d.record("ValidateProgram")
	if ps := d.programs[handle(p).ID]; ps != nil {
		ps.validated = ps.linked && !d.ValidateFails
		if !ps.validated {
			ps.log = "ERROR: program not valid"
		}
	}
}

func (d *Device) ProgramValidated(p graphics.Object) bool {
	ps := d.programs[handle(p).ID]
	return ps != nil && ps.validated
}

func (d *Device) ProgramInfoLog(p graphics.Object) string {
	if ps := d.programs[handle(p).ID]; ps != nil {
		return ps.log
	}
	return ""
}

func (d *Device) UseProgram(p graphics.Object) {
	d.current = handle(p)
	d.record("UseProgram")
}

func (d *Device) DeleteProgram(p graphics.Object) {
	d.Deleted = append(d.Deleted, handle(p))
	d.record("DeleteProgram")
}

func (d *Device) CreateBuffer() graphics.Object {
	h := d.newHandle("buffer", "")
	d.record("CreateBuffer")
	return h
}

func (d *Device) BindArrayBuffer(b graphics.Object) {
	d.bound = handle(b).ID
	d.record("BindArrayBuffer")
}

func (d *Device) StaticArrayData(data []float32) {
	buf := make([]float32, len(data))
	copy(buf, data)
	d.Buffers[d.bound] = buf
	d.record("StaticArrayData(%d)", len(data))
}

func (d *Device) DeleteBuffer(b graphics.Object) {
	d.Deleted = append(d.Deleted, handle(b))
	d.record("DeleteBuffer")
}

// vertexSource returns the source of the vertex shader linked into p.
func (d *Device) vertexSource(p graphics.Object) (string, bool) {
	ps := d.programs[handle(p).ID]
	if ps == nil || !ps.linked {
		return "", false
	}
	for _, id := range ps.shaders {
		if st := d.shaders[id]; st != nil && st.stage == graphics.VertexShader {
			return st.source, true
		}
	}
	return "", false
}

func (d *Device) AttribLocation(p graphics.Object, name string) graphics.Attrib {
	d.record("AttribLocation(%s)", name)
	src, ok := d.vertexSource(p)
	if !ok || !strings.Contains(src, name) {
		return -1
	}
	if a, ok := d.attribs[name]; ok {
		return a
	}
	a := graphics.Attrib(len(d.attribs))
	d.attribs[name] = a
	return a
}

func (d *Device) VertexAttribPointer(a graphics.Attrib, size, stride, offset int) {
	d.Pointers = append(d.Pointers, AttribPointer{Attrib: a, Size: size, Stride: stride, Offset: offset})
	d.record("VertexAttribPointer(%d)", a)
}

func (d *Device) EnableVertexAttribArray(a graphics.Attrib) {
	if a.Valid() {
		d.Enabled[a] = true
	}
	d.record("EnableVertexAttribArray(%d)", a)
}

func (d *Device) UniformLocation(p graphics.Object, name string) graphics.Object {
	d.record("UniformLocation(%s)", name)
	src, ok := d.vertexSource(p)
	if !ok || !strings.Contains(src, "uniform mat4 "+name+";") {
		return Handle{}
	}
	return d.newHandle("uniform", name)
}

func (d *Device) UniformMatrix4(u graphics.Object, m [16]float32) {
	d.record("UniformMatrix4")
	h := handle(u)
	if !h.Valid() {
		return
	}
	d.Uniforms[h.Name] = m
	d.UniformUploads++
}

func (d *Device) Enable(c graphics.Capability) {
	d.Capabilities[c] = true
	d.record("Enable(%d)", c)
}

func (d *Device) Viewport(x, y, width, height int) {
	d.Viewports = append(d.Viewports, [4]int{x, y, width, height})
	d.record("Viewport")
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.ClearColors = append(d.ClearColors, [4]float32{r, g, b, a})
	d.record("ClearColor")
}

func (d *Device) Clear(mask graphics.ClearMask) {
	d.Clears = append(d.Clears, mask)
	d.record("Clear")
}

func (d *Device) DrawTriangles(first, count int) {
	d.Draws = append(d.Draws, Draw{Program: d.current, First: first, Count: count})
	d.record("DrawTriangles(%d,%d)", first, count)
}

var _ graphics.Device = (*Device)(nil)
