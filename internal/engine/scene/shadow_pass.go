package scene

import (
	"fmt"

	"github.com/Faultbox/heightscape/internal/engine/camera"
	"github.com/Faultbox/heightscape/internal/engine/render"
)

// renderShadowPass draws the terrain depth from the sun into a fresh depth
// target sized to the surface and returns it. While the terrain is still
// building it draws nothing and polls the build instead.
func (s *Scene) renderShadowPass(sun camera.Camera, elapsed float32) (render.DepthTarget, error) {
	cfg := s.surface.Config()
	dev := s.surface.Device()

	target, err := dev.CreateDepthTarget("shadow depth", cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating shadow depth target: %w", err)
	}

	pass := dev.BeginPass(render.PassDesc{Label: "shadow", Depth: target})

	if err := s.sunUniform.Set(sun.Uniform()); err != nil {
		pass.End()
		target.Release()
		return nil, err
	}

	if s.terrainRenderer.Ready() {
		if err := s.pushFrameUniforms(sun.Eye.Vec4(1), elapsed); err != nil {
			pass.End()
			target.Release()
			return nil, err
		}

		pass.SetPipeline(s.pipelines.groundDepth)
		pass.SetBinding(groupCamera, s.sunUniform)
		pass.SetBinding(groupTime, s.timeUniform)
		pass.SetBinding(groupCameraPos, s.cameraPosUniform)
		s.terrainRenderer.Draw(pass)
	} else if err := s.pollTerrain(); err != nil {
		pass.End()
		target.Release()
		return nil, err
	}

	if err := pass.End(); err != nil {
		target.Release()
		return nil, fmt.Errorf("shadow pass: %w", err)
	}
	return target, nil
}
