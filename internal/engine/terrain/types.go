// Package terrain turns grayscale heightmaps into chunked, normal-shaded meshes
// and answers height queries against the decoded field.
package terrain

// Vertex is a terrain mesh vertex as laid out in GPU memory.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
	Normal   [3]float32
}

// VertexFloats is the number of float32 values per interleaved Vertex.
const VertexFloats = 9

// ChunkCoord identifies a chunk in the chunk grid.
type ChunkCoord struct {
	X, Y uint32
}

// ChunkMesh holds one chunk's vertex and index data ready for GPU upload.
type ChunkMesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Interleaved flattens the vertices as position, color, normal triples.
func (m *ChunkMesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexFloats)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
		out = append(out, v.Normal[:]...)
	}
	return out
}

// Params controls mesh generation.
type Params struct {
	Resolution       uint32  // Pixel stride between sampled vertices
	Size             float32 // World units per pixel
	Chunks           uint32  // Chunks per axis
	HeightMultiplier float32 // Vertical scale applied to normalized pixel values
	GenerateNormals  bool
}

// Vertex colors.
var (
	ColorGrass = [3]float32{17.0 / 255.0, 124.0 / 255.0, 19.0 / 255.0}
	ColorSnow  = [3]float32{0.9, 0.9, 0.9}
	ColorRock  = [3]float32{0.3, 0.3, 0.3}
	ColorDirt  = [3]float32{165.0 / 255.0, 42.0 / 255.0, 42.0 / 255.0}
)

// Elevation bands as fractions of the height multiplier.
const (
	RockThreshold = 0.1439215686
	SnowThreshold = 0.7

	// Faces whose normal has a smaller up component are recolored as dirt.
	SteepNormalY = 0.5
)
