// Package render defines the GPU capabilities the scene draws against.
// The OpenGL implementation lives in glsurface; tests use an in-memory fake.
package render

// Config is the current surface configuration.
type Config struct {
	Width  uint32
	Height uint32
}

// Aspect returns width / height, or 1 for a degenerate surface.
func (c Config) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Binding is anything a pass can attach to a bind group slot.
type Binding interface {
	Label() string
}

// Indirect bindings forward to the resource they currently hold.
type Indirect interface {
	Binding
	Resolve() Binding
}

// Resolve follows indirect bindings down to the concrete resource.
func Resolve(b Binding) Binding {
	for {
		ind, ok := b.(Indirect)
		if !ok {
			return b
		}
		b = ind.Resolve()
	}
}

// Buffer is a GPU uniform buffer.
type Buffer interface {
	Binding
	// Write replaces the buffer contents with a fixed-size value.
	Write(v any) error
	Release()
}

// DepthTarget is an off-screen depth texture that can be rendered into and
// later sampled.
type DepthTarget interface {
	Binding
	Size() (width, height uint32)
	Release()
}

// Mesh is an uploaded indexed vertex buffer.
type Mesh interface {
	IndexCount() int
	Release()
}

// Pipeline is a compiled shader program with its fixed-function state.
type Pipeline interface {
	Label() string
}

// MeshDesc describes vertex data to upload. Layout lists the component
// count of each interleaved float attribute in location order.
type MeshDesc struct {
	Label    string
	Vertices []float32
	Indices  []uint32
	Layout   []int32
}

// PipelineDesc describes a pipeline to build from a named shader.
type PipelineDesc struct {
	Label  string
	Shader string

	// DepthOnly pipelines write no color.
	DepthOnly bool
	DepthTest bool
	Blend     bool

	// Bindings names the uniform block or sampler bound at each group index.
	Bindings []string
}

// PassDesc selects where a pass renders.
//
// With Depth set the pass renders depth only into that target. With Screen
// set it renders to the presented surface. Otherwise it renders into the
// surface's scene buffer, whose depth is Surface.DepthTexture.
type PassDesc struct {
	Label  string
	Depth  DepthTarget
	Screen bool
}

// Pass records draws for one render pass.
type Pass interface {
	SetPipeline(p Pipeline)
	SetBinding(group int, b Binding)
	Draw(m Mesh)
	End() error
}

// Device creates GPU resources and begins passes.
type Device interface {
	CreateMesh(desc MeshDesc) (Mesh, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateDepthTarget(label string, width, height uint32) (DepthTarget, error)
	CreateBuffer(label string, size int) (Buffer, error)
	BeginPass(desc PassDesc) Pass
}

// Surface is the render target the scene presents to.
type Surface interface {
	Config() Config
	Device() Device
	// DepthTexture is the depth of the scene buffer written by the main pass.
	DepthTexture() DepthTarget
	// ColorTexture is the color of the scene buffer written by the main pass.
	ColorTexture() Binding
	// ScreenModel is a full-screen quad for composite passes.
	ScreenModel() Mesh
}
