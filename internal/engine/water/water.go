// Package water provides the water plane geometry.
package water

// DefaultHeight is the water level in world units.
const DefaultHeight = 100.0

// VertexFloats is the number of float32 values per interleaved Vertex.
const VertexFloats = 8

// Vertex is a water surface vertex.
type Vertex struct {
	Position [3]float32
	TexPos   [2]float32
	Normal   [3]float32
}

// Plane holds water plane geometry ready for GPU upload.
type Plane struct {
	Vertices []Vertex
	Indices  []uint32
	Level    float32 // Water Y level in world coordinates
}

// BuildPlane creates a size x size quad at the given height, anchored at the
// world origin and facing up.
func BuildPlane(size, height float32) *Plane {
	up := [3]float32{0, 1, 0}
	return &Plane{
		Vertices: []Vertex{
			{Position: [3]float32{size, height, 0}, TexPos: [2]float32{1, 0}, Normal: up},
			{Position: [3]float32{size, height, size}, TexPos: [2]float32{1, 1}, Normal: up},
			{Position: [3]float32{0, height, size}, TexPos: [2]float32{0, 1}, Normal: up},
			{Position: [3]float32{0, height, 0}, TexPos: [2]float32{0, 0}, Normal: up},
		},
		Indices: []uint32{0, 3, 2, 1, 0, 2},
		Level:   height,
	}
}

// ForTerrain builds a plane covering a terrain of width x height pixels.
func ForTerrain(width, height uint32, pixelSize, level float32) *Plane {
	return BuildPlane(float32(max(width, height))*pixelSize, level)
}

// Interleaved flattens the vertices as position, texture coordinate, normal.
func (p *Plane) Interleaved() []float32 {
	out := make([]float32, 0, len(p.Vertices)*VertexFloats)
	for _, v := range p.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.TexPos[:]...)
		out = append(out, v.Normal[:]...)
	}
	return out
}
