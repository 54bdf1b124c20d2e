package graphics

// ShaderStage selects the pipeline stage a shader object is compiled for.
type ShaderStage int

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// ClearMask selects the buffers cleared by Device.Clear.
type ClearMask int

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// Capability is a server-side GL capability toggled by Device.Enable.
type Capability int

const (
	DepthTest Capability = iota
	// CullFace culls back faces, with counter-clockwise winding as front.
	CullFace
)

// Object is an opaque handle to a backend object: shader, program, buffer
// or uniform location. The zero handle of each backend is not Valid.
type Object interface {
	Valid() bool
}

// Attrib is a vertex attribute location. Negative values are invalid.
type Attrib int

// Valid reports whether a is a usable attribute location.
func (a Attrib) Valid() bool { return a >= 0 }

// Device is the subset of the GL API the renderer issues. The browser
// backend maps it onto WebGL, the desktop backend onto go-gl.
type Device interface {
	CreateShader(stage ShaderStage) Object
	ShaderSource(s Object, source string)
	CompileShader(s Object)
	ShaderCompiled(s Object) bool
	ShaderInfoLog(s Object) string
	DeleteShader(s Object)

	CreateProgram() Object
	AttachShader(p, s Object)
	LinkProgram(p Object)
	ProgramLinked(p Object) bool
	ValidateProgram(p Object)
	ProgramValidated(p Object) bool
	ProgramInfoLog(p Object) string
	UseProgram(p Object)
	DeleteProgram(p Object)

	CreateBuffer() Object
	BindArrayBuffer(b Object)
	// StaticArrayData uploads data to the bound array buffer with a
	// static usage hint.
	StaticArrayData(data []float32)
	DeleteBuffer(b Object)

	AttribLocation(p Object, name string) Attrib
	// VertexAttribPointer describes a float attribute. stride and offset
	// are in bytes.
	VertexAttribPointer(a Attrib, size, stride, offset int)
	EnableVertexAttribArray(a Attrib)

	UniformLocation(p Object, name string) Object
	UniformMatrix4(u Object, m [16]float32)

	Enable(c Capability)
	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	// DrawTriangles draws count vertices from first as a triangle list.
	DrawTriangles(first, count int)
}
