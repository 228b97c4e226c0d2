package glsurface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DepthTarget is a depth-only framebuffer whose texture can be sampled.
type DepthTarget struct {
	label   string
	fbo     uint32
	texture uint32
	width   int32
	height  int32
}

func newDepthTarget(label string, width, height uint32) (*DepthTarget, error) {
	dt := &DepthTarget{
		label:  label,
		width:  int32(max(width, 1)),
		height: int32(max(height, 1)),
	}

	gl.GenFramebuffers(1, &dt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, dt.fbo)

	dt.texture = newDepthTexture(dt.width, dt.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, dt.texture, 0)

	// No color buffer for depth passes
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		dt.Release()
		return nil, fmt.Errorf("depth target %s incomplete: 0x%x", label, status)
	}
	return dt, nil
}

// newDepthTexture allocates a sampleable depth texture. Lookups outside the
// texture read as far depth so nothing beyond it is shadowed.
func newDepthTexture(width, height int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, width, height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	return tex
}

func (dt *DepthTarget) Label() string { return dt.label }

func (dt *DepthTarget) Size() (width, height uint32) {
	return uint32(dt.width), uint32(dt.height)
}

// Release frees the framebuffer and texture.
func (dt *DepthTarget) Release() {
	if dt.fbo != 0 {
		gl.DeleteFramebuffers(1, &dt.fbo)
		dt.fbo = 0
	}
	if dt.texture != 0 {
		gl.DeleteTextures(1, &dt.texture)
		dt.texture = 0
	}
}
