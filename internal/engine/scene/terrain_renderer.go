package scene

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Faultbox/heightscape/internal/engine/render"
	"github.com/Faultbox/heightscape/internal/engine/terrain"
)

// terrainLayout is position, color, normal.
var terrainLayout = []int32{3, 3, 3}

type chunkDraw struct {
	coord terrain.ChunkCoord
	mesh  render.Mesh
}

// TerrainRenderer holds the uploaded chunk meshes of a terrain.
type TerrainRenderer struct {
	chunks []chunkDraw
}

// NewTerrainRenderer creates an empty renderer. Nothing draws until Upload.
func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{}
}

// Ready reports whether chunk meshes are uploaded.
func (tr *TerrainRenderer) Ready() bool {
	return tr.chunks != nil
}

// Upload sends every chunk to the GPU, replacing any previous upload.
// Chunks are kept in coordinate order so draws are deterministic.
func (tr *TerrainRenderer) Upload(dev render.Device, meshes map[terrain.ChunkCoord]*terrain.ChunkMesh) error {
	tr.Destroy()

	chunks := make([]chunkDraw, 0, len(meshes))
	for coord, m := range meshes {
		if len(m.Indices) == 0 {
			continue
		}
		mesh, err := dev.CreateMesh(render.MeshDesc{
			Label:    fmt.Sprintf("terrain chunk %d,%d", coord.X, coord.Y),
			Vertices: m.Interleaved(),
			Indices:  m.Indices,
			Layout:   terrainLayout,
		})
		if err != nil {
			for _, c := range chunks {
				c.mesh.Release()
			}
			return fmt.Errorf("uploading chunk %d,%d: %w", coord.X, coord.Y, err)
		}
		chunks = append(chunks, chunkDraw{coord: coord, mesh: mesh})
	}

	slices.SortFunc(chunks, func(a, b chunkDraw) int {
		return cmp.Or(cmp.Compare(a.coord.X, b.coord.X), cmp.Compare(a.coord.Y, b.coord.Y))
	})
	tr.chunks = chunks
	return nil
}

// Draw issues one draw per chunk with whatever pipeline is bound.
func (tr *TerrainRenderer) Draw(pass render.Pass) {
	for _, c := range tr.chunks {
		pass.Draw(c.mesh)
	}
}

// ChunkCount returns the number of uploaded chunks.
func (tr *TerrainRenderer) ChunkCount() int {
	return len(tr.chunks)
}

// Destroy releases all chunk meshes.
func (tr *TerrainRenderer) Destroy() {
	for _, c := range tr.chunks {
		c.mesh.Release()
	}
	tr.chunks = nil
}
