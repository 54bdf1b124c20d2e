package renderer

import (
	"math"

	"cogentcore.org/core/math32"
)

// rotationPeriod is the time in milliseconds for one full turn.
const rotationPeriod = 6000.0

const (
	fieldOfView = 45 // degrees
	nearPlane   = 0.1
	farPlane    = 1000
)

var (
	cameraEye    = math32.Vec3(0, 0, -5)
	cameraTarget = math32.Vec3(0, 0, 0)
	cameraUp     = math32.Vec3(0, 1, 0)
)

// Transform holds the three matrices uploaded to the 3d program.
type Transform struct {
	World      math32.Matrix4
	View       math32.Matrix4
	Projection math32.Matrix4
}

// NewTransform returns the starting matrices for a surface of the given size.
func NewTransform(width, height int) Transform {
	var t Transform
	t.World.SetIdentity()
	t.View = *ViewMatrix(cameraEye, cameraTarget, cameraUp)
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	t.Projection.SetPerspective(fieldOfView, aspect, nearPlane, farPlane)
	return t
}

// ViewMatrix returns the camera view matrix for a camera at eye facing target.
func ViewMatrix(eye, target, up math32.Vector3) *math32.Matrix4 {
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(eye, target, up))
	var cview math32.Matrix4
	cview.SetTransform(eye, lookq, math32.Vec3(1, 1, 1))
	view, _ := cview.Inverse()
	return view
}

// RotationAngle returns the world rotation in radians after elapsed milliseconds.
func RotationAngle(elapsed float64) float32 {
	return float32(elapsed / rotationPeriod * 2 * math.Pi)
}

// WorldAt returns the world matrix after elapsed milliseconds: identity
// rotated about +Y.
func WorldAt(elapsed float64) math32.Matrix4 {
	var m math32.Matrix4
	m.SetRotationY(RotationAngle(elapsed))
	return m
}
