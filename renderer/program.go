package renderer

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/richinsley/gotriangle/graphics"
)

// newProgram compiles and links the two stages. Failures are logged and
// returned, but the program handle is always returned so the caller can
// carry on with whatever state the device ended up in.
func newProgram(dev graphics.Device, vertexShaderSource, fragmentShaderSource string) (graphics.Object, []error) {
	var errs []error

	vertexShader, err := compileShader(dev, graphics.VertexShader, vertexShaderSource)
	if err != nil {
		errs = append(errs, err)
	}
	fragmentShader, err := compileShader(dev, graphics.FragmentShader, fragmentShaderSource)
	if err != nil {
		errs = append(errs, err)
	}

	program := dev.CreateProgram()
	dev.AttachShader(program, vertexShader)
	dev.AttachShader(program, fragmentShader)
	dev.LinkProgram(program)
	// attached shaders are only flagged; they go with the program
	dev.DeleteShader(vertexShader)
	dev.DeleteShader(fragmentShader)

	if !dev.ProgramLinked(program) {
		err := fmt.Errorf("failed to link program: %s", dev.ProgramInfoLog(program))
		return program, append(errs, errors.Log(err))
	}

	dev.ValidateProgram(program)
	if !dev.ProgramValidated(program) {
		err := fmt.Errorf("failed to validate program: %s", dev.ProgramInfoLog(program))
		return program, append(errs, errors.Log(err))
	}
	return program, errs
}

func compileShader(dev graphics.Device, stage graphics.ShaderStage, source string) (graphics.Object, error) {
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, source)
	dev.CompileShader(shader)

	if !dev.ShaderCompiled(shader) {
		err := fmt.Errorf("failed to compile %s shader: %s", stage, dev.ShaderInfoLog(shader))
		return shader, errors.Log(err)
	}
	return shader, nil
}
