package renderer

import "github.com/richinsley/gotriangle/shader"

// VertexCount is the number of vertices in the triangle.
const VertexCount = 3

const (
	colorComponents = 3
	bytesPerFloat   = 4
)

// Layout describes one interleaved vertex: position then color.
type Layout struct {
	PositionSize int
	ColorSize    int
}

// Stride is the byte size of one vertex.
func (l Layout) Stride() int {
	return (l.PositionSize + l.ColorSize) * bytesPerFloat
}

// ColorOffset is the byte offset of the color inside a vertex.
func (l Layout) ColorOffset() int {
	return l.PositionSize * bytesPerFloat
}

var triangle2D = []float32{
	// X, Y       R, G, B
	0.0, 0.5, 1.0, 1.0, 0.0,
	-0.5, -0.5, 0.7, 0.0, 1.0,
	0.5, -0.5, 0.1, 1.0, 0.6,
}

var triangle3D = []float32{
	// X, Y, Z         R, G, B
	0.0, 0.5, 0.0, 1.0, 1.0, 0.0,
	-0.5, -0.5, 0.0, 0.7, 0.0, 1.0,
	0.5, -0.5, 0.0, 0.1, 1.0, 0.6,
}

// Geometry returns a copy of the triangle vertices for v and their layout.
func Geometry(v shader.Variant) ([]float32, Layout) {
	src, layout := triangle3D, Layout{PositionSize: 3, ColorSize: colorComponents}
	if v == shader.Variant2D {
		src, layout = triangle2D, Layout{PositionSize: 2, ColorSize: colorComponents}
	}
	data := make([]float32, len(src))
	copy(data, src)
	return data, layout
}
