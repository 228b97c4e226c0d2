package glsurface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// sceneBuffer is the off-screen target of the main pass. Both attachments
// are textures so the composite pass can sample them.
type sceneBuffer struct {
	fbo    uint32
	color  *Texture
	depth  *DepthTarget
	width  int32
	height int32
}

func newSceneBuffer(width, height int32) (*sceneBuffer, error) {
	fb := &sceneBuffer{
		width:  max(width, 1),
		height: max(height, 1),
	}
	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating scene buffer: %w", err)
	}
	return fb, nil
}

func (fb *sceneBuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	fb.color = &Texture{label: "scene color"}
	gl.GenTextures(1, &fb.color.id)
	gl.BindTexture(gl.TEXTURE_2D, fb.color.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color.id, 0)

	fb.depth = &DepthTarget{label: "scene depth", width: fb.width, height: fb.height}
	fb.depth.texture = newDepthTexture(fb.width, fb.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, fb.depth.texture, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// Resize recreates the attachments if the dimensions changed.
func (fb *sceneBuffer) Resize(width, height int32) error {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return nil
	}
	fb.Destroy()
	fb.width = width
	fb.height = height
	return fb.create()
}

// Destroy releases all OpenGL resources.
func (fb *sceneBuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.color != nil {
		fb.color.Release()
	}
	if fb.depth != nil {
		fb.depth.Release()
	}
}

// Texture is a sampleable color texture.
type Texture struct {
	label string
	id    uint32
}

func (t *Texture) Label() string { return t.label }

// Release frees the texture.
func (t *Texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
