package glsurface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/heightscape/internal/engine/render"
)

// Pass issues draws immediately against the bound framebuffer.
type Pass struct {
	label string
	ended bool
}

func (p *Pass) SetPipeline(pl render.Pipeline) {
	pl.(*Pipeline).apply()
}

// SetBinding attaches a uniform buffer to binding point group, or a texture
// to texture unit group.
func (p *Pass) SetBinding(group int, b render.Binding) {
	switch r := render.Resolve(b).(type) {
	case *Buffer:
		gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(group), r.id)
	case *DepthTarget:
		gl.ActiveTexture(gl.TEXTURE0 + uint32(group))
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
	case *Texture:
		gl.ActiveTexture(gl.TEXTURE0 + uint32(group))
		gl.BindTexture(gl.TEXTURE_2D, r.id)
	}
}

func (p *Pass) Draw(m render.Mesh) {
	mesh := m.(*Mesh)
	gl.BindVertexArray(mesh.vao)
	gl.DrawElements(gl.TRIANGLES, mesh.indexCount, gl.UNSIGNED_INT, nil)
}

// End restores default state and reports any GL error raised by the pass.
func (p *Pass) End() error {
	if p.ended {
		return nil
	}
	p.ended = true

	gl.BindVertexArray(0)
	gl.ColorMask(true, true, true, true)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s pass: GL error 0x%x", p.label, code)
	}
	return nil
}
