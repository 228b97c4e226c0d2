// Package glsurface implements the render capabilities on OpenGL 4.1 core.
// All calls must come from the thread that owns the GL context.
package glsurface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightscape/internal/engine/render"
	"github.com/Faultbox/heightscape/internal/logger"
)

// ClearColor is the sky color behind the terrain.
var ClearColor = [4]float32{0.62, 0.74, 0.86, 1.0}

// Surface is the OpenGL render.Surface and render.Device.
type Surface struct {
	config    render.Config
	scene     *sceneBuffer
	screen    *Mesh
	pipelines []*Pipeline
}

var (
	_ render.Surface = (*Surface)(nil)
	_ render.Device  = (*Surface)(nil)
)

// New initializes OpenGL and creates the scene buffer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(width, height int) (*Surface, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	s := &Surface{
		config: render.Config{Width: uint32(max(width, 1)), Height: uint32(max(height, 1))},
	}

	var err error
	s.scene, err = newSceneBuffer(int32(s.config.Width), int32(s.config.Height))
	if err != nil {
		return nil, err
	}

	s.screen, err = newScreenQuad()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating screen quad: %w", err)
	}

	return s, nil
}

// Resize handles window resize.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	s.config = render.Config{Width: uint32(width), Height: uint32(height)}
	if err := s.scene.Resize(int32(width), int32(height)); err != nil {
		return err
	}
	logger.Debug("surface resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return nil
}

// Close releases surface resources.
func (s *Surface) Close() {
	logger.Info("closing surface")
	for _, p := range s.pipelines {
		p.Release()
	}
	s.pipelines = nil
	if s.screen != nil {
		s.screen.Release()
	}
	if s.scene != nil {
		s.scene.Destroy()
	}
}

func (s *Surface) Config() render.Config            { return s.config }
func (s *Surface) Device() render.Device            { return s }
func (s *Surface) DepthTexture() render.DepthTarget { return s.scene.depth }
func (s *Surface) ColorTexture() render.Binding     { return s.scene.color }
func (s *Surface) ScreenModel() render.Mesh         { return s.screen }

func (s *Surface) CreateMesh(desc render.MeshDesc) (render.Mesh, error) {
	return newMesh(desc)
}

// CreatePipeline compiles a pipeline. The surface owns it and deletes it on Close.
func (s *Surface) CreatePipeline(desc render.PipelineDesc) (render.Pipeline, error) {
	p, err := newPipeline(desc)
	if err != nil {
		return nil, err
	}
	s.pipelines = append(s.pipelines, p)
	logger.Debug("pipeline created",
		zap.String("label", desc.Label),
		zap.Uint32("program", p.program),
	)
	return p, nil
}

func (s *Surface) CreateDepthTarget(label string, width, height uint32) (render.DepthTarget, error) {
	return newDepthTarget(label, width, height)
}

func (s *Surface) CreateBuffer(label string, size int) (render.Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("buffer %s: invalid size %d", label, size)
	}
	return newBuffer(label, size), nil
}

// BeginPass binds the pass target, sets the viewport and clears it.
func (s *Surface) BeginPass(desc render.PassDesc) render.Pass {
	switch {
	case desc.Depth != nil:
		dt := desc.Depth.(*DepthTarget)
		gl.BindFramebuffer(gl.FRAMEBUFFER, dt.fbo)
		gl.Viewport(0, 0, dt.width, dt.height)
		gl.ClearDepth(1.0)
		gl.Clear(gl.DEPTH_BUFFER_BIT)

	case desc.Screen:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(s.config.Width), int32(s.config.Height))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, s.scene.fbo)
		gl.Viewport(0, 0, s.scene.width, s.scene.height)
		gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
		gl.ClearDepth(1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
	return &Pass{label: desc.Label}
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows. Call it
// after the composite pass and before the buffers are swapped.
func (s *Surface) ReadPixels() ([]byte, int, int) {
	w, h := int32(s.config.Width), int32(s.config.Height)
	pixels := make([]byte, w*h*4)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, int(w), int(h)
}
