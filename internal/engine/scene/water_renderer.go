package scene

import (
	"fmt"

	"github.com/Faultbox/heightscape/internal/engine/render"
	"github.com/Faultbox/heightscape/internal/engine/water"
)

// waterLayout is position, texture coordinate, normal.
var waterLayout = []int32{3, 2, 3}

// WaterRenderer holds the uploaded water plane.
type WaterRenderer struct {
	mesh render.Mesh
}

// NewWaterRenderer uploads a water plane.
func NewWaterRenderer(dev render.Device, plane *water.Plane) (*WaterRenderer, error) {
	mesh, err := dev.CreateMesh(render.MeshDesc{
		Label:    "water",
		Vertices: plane.Interleaved(),
		Indices:  plane.Indices,
		Layout:   waterLayout,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading water plane: %w", err)
	}
	return &WaterRenderer{mesh: mesh}, nil
}

// Draw draws the plane with whatever pipeline is bound.
func (wr *WaterRenderer) Draw(pass render.Pass) {
	pass.Draw(wr.mesh)
}

// Destroy releases the plane mesh.
func (wr *WaterRenderer) Destroy() {
	if wr.mesh != nil {
		wr.mesh.Release()
		wr.mesh = nil
	}
}
