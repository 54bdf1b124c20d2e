package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/shader"
)

// ClearColor is the pastel background every frame starts from.
var ClearColor = [4]float32{0.75, 0.85, 0.8, 1.0}

// Scheduler runs fn once at the host's next display refresh. now is a
// timestamp in milliseconds.
type Scheduler interface {
	RequestFrame(fn func(now float64))
}

// Config selects what a Renderer draws and where.
type Config struct {
	Variant shader.Variant
	Dialect shader.Dialect
	Width   int
	Height  int
}

// Renderer owns one program, one vertex buffer and the frame loop that
// draws them. Every Renderer owns its handles; instances share nothing.
type Renderer struct {
	device    graphics.Device
	scheduler Scheduler
	variant   shader.Variant
	sources   shader.Sources
	width     int
	height    int

	program        graphics.Object
	vertexBuffer   graphics.Object
	positionAttrib graphics.Attrib
	colorAttrib    graphics.Attrib
	worldLoc       graphics.Object
	viewLoc        graphics.Object
	projectionLoc  graphics.Object
	transform      Transform
	initErrs       []error
	initialized    bool

	running   bool
	started   bool
	startTime float64
	frames    int
	frameHook func(frame int)
	done      chan struct{}
	exited    bool
}

// New returns a Renderer issuing its calls to dev and scheduling its
// frames on sched. Nothing is sent to the device until Initialize.
func New(dev graphics.Device, sched Scheduler, cfg Config) (*Renderer, error) {
	if dev == nil {
		return nil, fmt.Errorf("renderer: nil device")
	}
	if sched == nil {
		return nil, fmt.Errorf("renderer: nil scheduler")
	}
	sources, err := shader.For(cfg.Variant, cfg.Dialect)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Renderer{
		device:         dev,
		scheduler:      sched,
		variant:        cfg.Variant,
		sources:        sources,
		width:          cfg.Width,
		height:         cfg.Height,
		positionAttrib: -1,
		colorAttrib:    -1,
		done:           make(chan struct{}),
	}, nil
}

// Initialize builds the program, uploads the triangle and sets up the
// uniforms. Shader and link failures are logged and kept in Err; the
// renderer continues with whatever state resulted.
func (r *Renderer) Initialize() {
	if r.initialized {
		return
	}
	r.initialized = true
	r.started = false
	dev := r.device

	r.program, r.initErrs = newProgram(dev, r.sources.Vertex, r.sources.Fragment)

	data, layout := Geometry(r.variant)
	r.vertexBuffer = dev.CreateBuffer()
	dev.BindArrayBuffer(r.vertexBuffer)
	dev.StaticArrayData(data)

	r.positionAttrib = dev.AttribLocation(r.program, shader.PositionAttrib)
	r.colorAttrib = dev.AttribLocation(r.program, shader.ColorAttrib)
	dev.VertexAttribPointer(r.positionAttrib, layout.PositionSize, layout.Stride(), 0)
	dev.VertexAttribPointer(r.colorAttrib, layout.ColorSize, layout.Stride(), layout.ColorOffset())
	dev.EnableVertexAttribArray(r.positionAttrib)
	dev.EnableVertexAttribArray(r.colorAttrib)

	dev.UseProgram(r.program)
	if r.width > 0 && r.height > 0 {
		dev.Viewport(0, 0, r.width, r.height)
	}

	if r.variant == shader.Variant3D {
		dev.Enable(graphics.DepthTest)
		dev.Enable(graphics.CullFace)
		r.worldLoc = dev.UniformLocation(r.program, shader.WorldUniform)
		r.viewLoc = dev.UniformLocation(r.program, shader.ViewUniform)
		r.projectionLoc = dev.UniformLocation(r.program, shader.ProjectionUniform)

		r.transform = NewTransform(r.width, r.height)
		dev.UniformMatrix4(r.worldLoc, r.transform.World)
		dev.UniformMatrix4(r.viewLoc, r.transform.View)
		dev.UniformMatrix4(r.projectionLoc, r.transform.Projection)
	}

	slog.Info("renderer initialized", "variant", string(r.variant), "width", r.width, "height", r.height, "ok", len(r.initErrs) == 0)
}

// Err returns the shader compile and link failures seen by Initialize.
func (r *Renderer) Err() error {
	return errors.Join(r.initErrs...)
}

// Program returns the linked program handle.
func (r *Renderer) Program() graphics.Object { return r.program }

// VertexBuffer returns the triangle's vertex buffer handle.
func (r *Renderer) VertexBuffer() graphics.Object { return r.vertexBuffer }

// Transform returns the matrices last uploaded by the 3d variant.
func (r *Renderer) Transform() Transform { return r.transform }

// RenderFrame clears the surface and draws the triangle. now is in
// milliseconds; the first frame rendered defines time zero.
func (r *Renderer) RenderFrame(now float64) {
	if !r.started {
		r.started = true
		r.startTime = now
	}
	dev := r.device
	dev.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	dev.Clear(graphics.ColorBufferBit | graphics.DepthBufferBit)

	if r.variant == shader.Variant3D {
		r.transform.World = WorldAt(now - r.startTime)
		dev.UniformMatrix4(r.worldLoc, r.transform.World)
	}

	dev.DrawTriangles(0, VertexCount)
}

// SetFrameHook registers fn to run after each frame of the loop is drawn
// and before the next one is scheduled. frame counts from zero.
func (r *Renderer) SetFrameHook(fn func(frame int)) {
	r.frameHook = fn
}

// Run starts the frame loop. It returns immediately; frames are driven by
// the scheduler.
func (r *Renderer) Run() {
	if r.running {
		return
	}
	r.Initialize()
	if r.exited {
		r.done = make(chan struct{})
		r.exited = false
	}
	r.running = true
	r.scheduler.RequestFrame(r.frame)
}

// Stop ends the frame loop. A frame already scheduled still renders.
func (r *Renderer) Stop() {
	r.running = false
}

// Running reports whether the loop will schedule another frame.
func (r *Renderer) Running() bool { return r.running }

// Frames returns the number of frames drawn by the loop.
func (r *Renderer) Frames() int { return r.frames }

// Done is closed once the loop has observed Stop and exited.
func (r *Renderer) Done() <-chan struct{} { return r.done }

func (r *Renderer) frame(now float64) {
	r.RenderFrame(now)
	frame := r.frames
	r.frames++
	if r.frameHook != nil {
		r.frameHook(frame)
	}
	if !r.running {
		slog.Info("render loop stopped", "frames", r.frames)
		r.exited = true
		close(r.done)
		return
	}
	r.scheduler.RequestFrame(r.frame)
}

// Shutdown releases the program and the vertex buffer. A later Run
// initializes again, which restarts the clock.
func (r *Renderer) Shutdown() {
	r.running = false
	r.initialized = false
	if r.program != nil && r.program.Valid() {
		r.device.DeleteProgram(r.program)
	}
	if r.vertexBuffer != nil && r.vertexBuffer.Valid() {
		r.device.DeleteBuffer(r.vertexBuffer)
	}
	r.program = nil
	r.vertexBuffer = nil
}
