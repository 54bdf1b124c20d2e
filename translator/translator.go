// Package translator checks the embedded shader sources offline with
// the ANGLE compiler bundled by goshadertranslator.
package translator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/gotriangle/shader"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Result is the desktop translation of one variant.
type Result struct {
	Vertex   string
	Fragment string
	// Uniforms maps each declared uniform to the name ANGLE gave it.
	Uniforms map[string]string
}

// Check compiles the GLSL ES 3.00 rendition of v as WebGL2 and translates
// it to desktop GLSL 4.10. The browser sources share their bodies, so a
// failure here means they are broken too.
func Check(v shader.Variant) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	src, err := shader.For(v, shader.GLES300)
	if err != nil {
		return nil, err
	}

	vs, err := t.TranslateShader(src.Vertex, "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(src.Fragment, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	res := &Result{Vertex: vs.Code, Fragment: fs.Code, Uniforms: map[string]string{}}
	for name, variable := range vs.Variables {
		res.Uniforms[name] = variable.MappedName
	}
	if v == shader.Variant3D {
		for _, name := range []string{shader.WorldUniform, shader.ViewUniform, shader.ProjectionUniform} {
			if _, ok := res.Uniforms[name]; !ok {
				slog.Warn("uniform missing from translated shader", "variant", string(v), "uniform", name)
			}
		}
	}
	return res, nil
}
