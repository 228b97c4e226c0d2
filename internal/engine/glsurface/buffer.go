package glsurface

import (
	"encoding/binary"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Buffer is a uniform buffer object.
type Buffer struct {
	label   string
	id      uint32
	size    int
	scratch []byte
}

// newBuffer allocates a uniform buffer. The allocation is padded to 16 bytes
// so scalar blocks still satisfy std140 block sizes.
func newBuffer(label string, size int) *Buffer {
	b := &Buffer{label: label, size: size}
	alloc := (size + 15) &^ 15

	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferData(gl.UNIFORM_BUFFER, alloc, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return b
}

func (b *Buffer) Label() string { return b.label }

// Write encodes v in native byte order and uploads it.
func (b *Buffer) Write(v any) error {
	data, err := binary.Append(b.scratch[:0], binary.NativeEndian, v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", b.label, err)
	}
	if len(data) != b.size {
		return fmt.Errorf("%s: wrote %d bytes into %d byte buffer", b.label, len(data), b.size)
	}
	b.scratch = data

	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

// Release deletes the buffer.
func (b *Buffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}
