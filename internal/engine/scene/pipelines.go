package scene

import (
	"fmt"

	"github.com/Faultbox/heightscape/internal/engine/render"
)

// Shader names resolved by the surface.
const (
	ShaderGround      = "ground"
	ShaderGroundDepth = "ground_depth"
	ShaderWater       = "water"
	ShaderComposite   = "depth_composite"
)

// Bind group indices for the ground, ground depth and water pipelines.
const (
	groupCamera    = 0
	groupTime      = 1
	groupCameraPos = 2
)

// Bind group indices for the composite pipeline.
const (
	groupShadowDepth = 0
	groupSceneDepth  = 1
	groupScreenInfo  = 2
	groupPlayerCam   = 3
	groupSunCam      = 4
	groupSceneColor  = 5
)

var worldBindings = []string{
	groupCamera:    "Camera",
	groupTime:      "Time",
	groupCameraPos: "CameraPosition",
}

var compositeBindings = []string{
	groupShadowDepth: "uShadowDepth",
	groupSceneDepth:  "uSceneDepth",
	groupScreenInfo:  "ScreenInfo",
	groupPlayerCam:   "PlayerCamera",
	groupSunCam:      "SunCamera",
	groupSceneColor:  "uSceneColor",
}

type pipelines struct {
	ground      render.Pipeline
	groundDepth render.Pipeline
	water       render.Pipeline
	composite   render.Pipeline
}

func createPipelines(dev render.Device) (pipelines, error) {
	var err error
	create := func(desc render.PipelineDesc) render.Pipeline {
		if err != nil {
			return nil
		}
		pl, cerr := dev.CreatePipeline(desc)
		if cerr != nil {
			err = fmt.Errorf("creating %s pipeline: %w", desc.Label, cerr)
		}
		return pl
	}

	p := pipelines{
		ground: create(render.PipelineDesc{
			Label: "ground", Shader: ShaderGround,
			DepthTest: true, Bindings: worldBindings,
		}),
		groundDepth: create(render.PipelineDesc{
			Label: "ground depth", Shader: ShaderGroundDepth,
			DepthOnly: true, DepthTest: true, Bindings: worldBindings,
		}),
		water: create(render.PipelineDesc{
			Label: "water", Shader: ShaderWater,
			DepthTest: true, Blend: true, Bindings: worldBindings,
		}),
		composite: create(render.PipelineDesc{
			Label: "depth composite", Shader: ShaderComposite,
			Bindings: compositeBindings,
		}),
	}
	if err != nil {
		return pipelines{}, err
	}
	return p, nil
}
