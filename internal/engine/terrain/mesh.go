package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Build generates every chunk mesh for the field.
func Build(field *HeightField, p Params) map[ChunkCoord]*ChunkMesh {
	meshes := make(map[ChunkCoord]*ChunkMesh, int(p.Chunks*p.Chunks))
	for cx := range p.Chunks {
		for cy := range p.Chunks {
			meshes[ChunkCoord{X: cx, Y: cy}] = BuildChunk(field, p, cx, cy)
		}
	}
	return meshes
}

// BuildChunk generates the mesh for a single chunk of the grid.
// Every chunk except the last in each axis gets one extra row and column of
// vertices so its triangles reach the first row/column of the next chunk.
func BuildChunk(field *HeightField, p Params, cx, cy uint32) *ChunkMesh {
	gridW := field.Width / p.Resolution
	gridH := field.Height / p.Resolution
	spanX := gridW / p.Chunks
	spanY := gridH / p.Chunks

	rowsX := spanX + overlap(cx, p.Chunks)
	rowsY := spanY + overlap(cy, p.Chunks)

	mesh := &ChunkMesh{
		Vertices: make([]Vertex, 0, int(rowsX*rowsY)),
	}
	if rowsX > 1 && rowsY > 1 {
		mesh.Indices = make([]uint32, 0, int((rowsX-1)*(rowsY-1)*6))
	}

	for x := range rowsX {
		for y := range rowsY {
			px := (x + spanX*cx) * p.Resolution
			py := (y + spanY*cy) * p.Resolution
			h := field.PixelHeight(px, py)

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{float32(px) * p.Size, h, float32(py) * p.Size},
				Color:    ElevationColor(h, p.HeightMultiplier),
				Normal:   [3]float32{0, 1, 0},
			})

			if x < rowsX-1 && y < rowsY-1 {
				i := x*rowsY + y
				mesh.Indices = append(mesh.Indices,
					i, i+1, i+rowsY+1,
					i, i+rowsY+1, i+rowsY,
				)
			}
		}
	}

	if p.GenerateNormals {
		applyFaceNormals(mesh)
	}
	return mesh
}

func overlap(c, chunks uint32) uint32 {
	if c == chunks-1 {
		return 0
	}
	return 1
}

// ElevationColor classifies a vertex by its height against bands of the multiplier.
func ElevationColor(h, heightMultiplier float32) [3]float32 {
	color := ColorGrass
	if h > heightMultiplier*SnowThreshold {
		color = ColorSnow
	}
	if h <= heightMultiplier*RockThreshold {
		color = ColorRock
	}
	return color
}

// applyFaceNormals writes each triangle's face normal to its three vertices.
// Shared vertices keep the normal of the last triangle that touches them.
// Steep faces turn their vertices to dirt, except vertices already classed as snow.
func applyFaceNormals(mesh *ChunkMesh) {
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		tri := [3]uint32{mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]}

		p1 := mgl32.Vec3(mesh.Vertices[tri[0]].Position)
		p2 := mgl32.Vec3(mesh.Vertices[tri[1]].Position)
		p3 := mgl32.Vec3(mesh.Vertices[tri[2]].Position)

		n := FaceNormal(p1, p2, p3)
		for _, vi := range tri {
			v := &mesh.Vertices[vi]
			v.Normal = n
			if n[1] < SteepNormalY && v.Color != ColorSnow {
				v.Color = ColorDirt
			}
		}
	}
}

// FaceNormal returns normalize(cross(p2-p1, p3-p1)). Degenerate triangles face straight up.
func FaceNormal(p1, p2, p3 mgl32.Vec3) [3]float32 {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Len() == 0 {
		return [3]float32{0, 1, 0}
	}
	return n.Normalize()
}
