package glsurface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightscape/internal/engine/glsurface/shaders"
	"github.com/Faultbox/heightscape/internal/engine/render"
	"github.com/Faultbox/heightscape/internal/logger"
)

// Pipeline is a linked program plus its fixed-function state.
type Pipeline struct {
	desc    render.PipelineDesc
	program uint32
}

func newPipeline(desc render.PipelineDesc) (*Pipeline, error) {
	src, ok := shaders.Programs[desc.Shader]
	if !ok {
		return nil, fmt.Errorf("unknown shader %q", desc.Shader)
	}

	program, err := compileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", desc.Shader, err)
	}

	for group, name := range desc.Bindings {
		if !bindGroup(program, name, group) {
			logger.Debug("binding unused by program",
				zap.String("pipeline", desc.Label),
				zap.String("binding", name),
			)
		}
	}

	return &Pipeline{desc: desc, program: program}, nil
}

func (p *Pipeline) Label() string { return p.desc.Label }

// apply makes the program current and sets its state.
func (p *Pipeline) apply() {
	gl.UseProgram(p.program)

	if p.desc.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if p.desc.DepthOnly {
		gl.ColorMask(false, false, false, false)
	} else {
		gl.ColorMask(true, true, true, true)
	}

	if p.desc.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// Release deletes the program.
func (p *Pipeline) Release() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
