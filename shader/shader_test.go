package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" 3D ")
	require.NoError(t, err)
	assert.Equal(t, Variant3D, v)

	v, err = ParseVariant("2d")
	require.NoError(t, err)
	assert.Equal(t, Variant2D, v)

	_, err = ParseVariant("4d")
	assert.Error(t, err)
}

func TestWebGLSources(t *testing.T) {
	src, err := For(Variant2D, WebGL)
	require.NoError(t, err)

	assert.NotContains(t, src.Vertex, "#version")
	assert.Contains(t, src.Vertex, "attribute vec2 vertPosition;")
	assert.Contains(t, src.Vertex, "attribute vec3 vertColor;")
	assert.Contains(t, src.Vertex, "varying vec3 fragColor;")
	assert.NotContains(t, src.Vertex, "matrixWorld")

	assert.True(t, strings.HasPrefix(src.Fragment, "precision mediump float;"))
	assert.Contains(t, src.Fragment, "varying vec3 fragColor;")
	assert.Contains(t, src.Fragment, "gl_FragColor = vec4(fragColor, 1.0);")
}

func TestDesktopSources(t *testing.T) {
	src, err := For(Variant3D, GL410)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(src.Vertex, "#version 410 core\n"))
	assert.Contains(t, src.Vertex, "in vec3 vertPosition;")
	assert.Contains(t, src.Vertex, "out vec3 fragColor;")
	for _, name := range []string{WorldUniform, ViewUniform, ProjectionUniform} {
		assert.Contains(t, src.Vertex, "uniform mat4 "+name+";")
	}
	assert.Contains(t, src.Fragment, "out vec4 outColor;")
	assert.Contains(t, src.Fragment, "outColor = vec4(fragColor, 1.0);")
	assert.NotContains(t, src.Fragment, "gl_FragColor")
}

func TestGLESSources(t *testing.T) {
	src, err := For(Variant3D, GLES300)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src.Vertex, "#version 300 es\nprecision mediump float;\n"))
	assert.True(t, strings.HasPrefix(src.Fragment, "#version 300 es\nprecision mediump float;\n"))
}

func TestForRejectsUnknown(t *testing.T) {
	_, err := For(Variant("cube"), WebGL)
	assert.Error(t, err)

	_, err = For(Variant2D, Dialect(42))
	assert.Error(t, err)
}
