package shader

import (
	"fmt"
	"strings"
)

// Variant selects which of the two demo programs is built.
type Variant string

const (
	Variant2D Variant = "2d"
	Variant3D Variant = "3d"
)

// ParseVariant returns the variant named by s.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case Variant2D, Variant3D:
		return v, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, Variant2D, Variant3D)
	}
}

// Dialect is the GLSL flavour a context accepts.
type Dialect int

const (
	// WebGL is GLSL ES 1.00, accepted by every WebGL context.
	WebGL Dialect = iota
	// GL410 is desktop core profile GLSL.
	GL410
	// GLES300 is GLSL ES 3.00, used by the headless EGL context.
	GLES300
)

func (d Dialect) String() string {
	switch d {
	case WebGL:
		return "webgl"
	case GL410:
		return "gl410"
	case GLES300:
		return "gles300"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// Attribute and uniform names shared by every dialect.
const (
	PositionAttrib    = "vertPosition"
	ColorAttrib       = "vertColor"
	WorldUniform      = "matrixWorld"
	ViewUniform       = "matrixView"
	ProjectionUniform = "matrixProjection"
)

// Sources is a vertex/fragment pair.
type Sources struct {
	Vertex   string
	Fragment string
}

type stage int

const (
	vertexStage stage = iota
	fragmentStage
)

// ────────────────────────────────── bodies ──────────────────────────────────

const vertexBody2D = `
IN vec2 vertPosition;
IN vec3 vertColor;
OUT vec3 fragColor;

void main() {
    fragColor = vertColor;
    gl_Position = vec4(vertPosition, 0.0, 1.0);
}
`

const vertexBody3D = `
IN vec3 vertPosition;
IN vec3 vertColor;
OUT vec3 fragColor;
uniform mat4 matrixWorld;
uniform mat4 matrixView;
uniform mat4 matrixProjection;

void main() {
    fragColor = vertColor;
    gl_Position = matrixProjection * matrixView * matrixWorld * vec4(vertPosition, 1.0);
}
`

const fragmentBody = `
IN vec3 fragColor;
FRAG_OUT

void main() {
    FRAG_COLOR = vec4(fragColor, 1.0);
}
`

// For returns the sources of variant v written for dialect d.
func For(v Variant, d Dialect) (Sources, error) {
	var vertexBody string
	switch v {
	case Variant2D:
		vertexBody = vertexBody2D
	case Variant3D:
		vertexBody = vertexBody3D
	default:
		return Sources{}, fmt.Errorf("unknown variant %q", v)
	}
	switch d {
	case WebGL, GL410, GLES300:
	default:
		return Sources{}, fmt.Errorf("unknown shader dialect %v", d)
	}
	return Sources{
		Vertex:   build(d, vertexStage, vertexBody),
		Fragment: build(d, fragmentStage, fragmentBody),
	}, nil
}

// build prefixes body with the dialect header and rewrites the storage
// qualifiers and fragment output for d.
func build(d Dialect, st stage, body string) string {
	var sb strings.Builder
	in, out := "in", "out"
	fragOut := "out vec4 outColor;"
	fragColor := "outColor"

	switch d {
	case WebGL:
		sb.WriteString("precision mediump float;\n")
		in, out = "varying", "varying"
		if st == vertexStage {
			in = "attribute"
		}
		fragOut = ""
		fragColor = "gl_FragColor"
	case GL410:
		sb.WriteString("#version 410 core\n")
	case GLES300:
		sb.WriteString("#version 300 es\n")
		sb.WriteString("precision mediump float;\n")
	}

	r := strings.NewReplacer(
		"IN ", in+" ",
		"OUT ", out+" ",
		"FRAG_OUT", fragOut,
		"FRAG_COLOR", fragColor,
	)
	sb.WriteString(r.Replace(body))
	return sb.String()
}
