package glsurface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/heightscape/internal/engine/render"
)

// Mesh is an indexed vertex array.
type Mesh struct {
	label      string
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func newMesh(desc render.MeshDesc) (*Mesh, error) {
	var components int32
	for _, n := range desc.Layout {
		components += n
	}
	if components == 0 || len(desc.Vertices) == 0 || len(desc.Vertices)%int(components) != 0 {
		return nil, fmt.Errorf("mesh %s: %d floats do not fit layout %v", desc.Label, len(desc.Vertices), desc.Layout)
	}
	if len(desc.Indices) == 0 {
		return nil, fmt.Errorf("mesh %s: no indices", desc.Label)
	}

	m := &Mesh{label: desc.Label, indexCount: int32(len(desc.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.STATIC_DRAW)

	stride := components * 4
	var offset uintptr
	for loc, n := range desc.Layout {
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(n) * 4
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m, nil
}

func (m *Mesh) IndexCount() int { return int(m.indexCount) }

// Release deletes the vertex array and its buffers.
func (m *Mesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

// newScreenQuad builds a full-screen quad with position and texture coordinates.
func newScreenQuad() (*Mesh, error) {
	return newMesh(render.MeshDesc{
		Label: "screen quad",
		Vertices: []float32{
			-1, -1, 0, 0,
			1, -1, 1, 0,
			1, 1, 1, 1,
			-1, 1, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Layout:  []int32{2, 2},
	})
}
