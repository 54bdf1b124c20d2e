package translator

import (
	"testing"

	"github.com/richinsley/gotriangle/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator unavailable: %v", err)
	}
	for _, v := range []shader.Variant{shader.Variant2D, shader.Variant3D} {
		res, err := Check(v)
		require.NoError(t, err, "variant %s", v)
		assert.Contains(t, res.Vertex, "#version 410")
		assert.Contains(t, res.Fragment, "#version 410")
	}
}

func TestCheckUnknownVariant(t *testing.T) {
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator unavailable: %v", err)
	}
	_, err := Check("cube")
	assert.Error(t, err)
}
