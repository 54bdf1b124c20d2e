package renderer

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestRotationAngle(t *testing.T) {
	assert.Zero(t, RotationAngle(0))
	assert.InDelta(t, math.Pi, RotationAngle(3000), 1e-6)
	assert.InDelta(t, 2*math.Pi, RotationAngle(6000), 1e-6)
}

func TestWorldAtIsYRotation(t *testing.T) {
	var identity math32.Matrix4
	identity.SetIdentity()
	assert.Equal(t, identity, WorldAt(0))

	for _, ms := range []float64{250, 1000, 4321, 9000} {
		angle := ms / 6000 * 2 * math.Pi
		m := WorldAt(ms)
		c, s := math.Cos(angle), math.Sin(angle)
		want := [16]float64{
			c, 0, -s, 0,
			0, 1, 0, 0,
			s, 0, c, 0,
			0, 0, 0, 1,
		}
		for i := range want {
			assert.InDelta(t, want[i], m[i], 1e-5, "element %d at %vms", i, ms)
		}
	}
}

func TestViewMatrix(t *testing.T) {
	tr := NewTransform(800, 600)
	v := tr.View
	// the origin sits five units in front of the camera
	assert.InDelta(t, 0, v[12], 1e-5)
	assert.InDelta(t, 0, v[13], 1e-5)
	assert.InDelta(t, -5, v[14], 1e-5)
	assert.InDelta(t, 1, v[15], 1e-6)
}

func TestProjectionMatrix(t *testing.T) {
	tr := NewTransform(800, 600)
	p := tr.Projection
	f := 1 / math.Tan(45.0/2*math.Pi/180)
	assert.InDelta(t, f, p[5], 1e-4)
	assert.InDelta(t, f/(800.0/600.0), p[0], 1e-4)
	assert.InDelta(t, -1, p[11], 1e-6)
	assert.InDelta(t, -(1000+0.1)/(1000-0.1), p[10], 1e-4)
	assert.InDelta(t, 0, p[15], 1e-6)
}

func TestGeometry(t *testing.T) {
	data, layout := Geometry("2d")
	assert.Len(t, data, 15)
	assert.Equal(t, 20, layout.Stride())
	assert.Equal(t, 8, layout.ColorOffset())

	data[0] = 42
	again, _ := Geometry("2d")
	assert.Equal(t, float32(0), again[0])

	data, layout = Geometry("3d")
	assert.Len(t, data, 18)
	assert.Equal(t, 24, layout.Stride())
	assert.Equal(t, 12, layout.ColorOffset())
}
