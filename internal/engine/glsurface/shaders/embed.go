// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GroundVertexShader is the vertex shader for the terrain color pass.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader is the fragment shader for the terrain color pass.
//
//go:embed ground.frag
var GroundFragmentShader string

// GroundDepthVertexShader is the vertex shader for the sun depth pass.
//
//go:embed ground_depth.vert
var GroundDepthVertexShader string

// GroundDepthFragmentShader writes no color.
//
//go:embed ground_depth.frag
var GroundDepthFragmentShader string

// WaterVertexShader is the vertex shader for water rendering.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader is the fragment shader for water rendering.
//
//go:embed water.frag
var WaterFragmentShader string

// DepthCompositeVertexShader draws the full-screen quad.
//
//go:embed depth_composite.vert
var DepthCompositeVertexShader string

// DepthCompositeFragmentShader shades the scene against the sun depth.
//
//go:embed depth_composite.frag
var DepthCompositeFragmentShader string

// Program pairs vertex and fragment sources.
type Program struct {
	Vertex   string
	Fragment string
}

// Programs maps shader names to their sources.
var Programs = map[string]Program{
	"ground":          {GroundVertexShader, GroundFragmentShader},
	"ground_depth":    {GroundDepthVertexShader, GroundDepthFragmentShader},
	"water":           {WaterVertexShader, WaterFragmentShader},
	"depth_composite": {DepthCompositeVertexShader, DepthCompositeFragmentShader},
}
