package render

import (
	"encoding/binary"
	"fmt"
)

// Uniform is a typed value mirrored in a GPU buffer.
type Uniform[T any] struct {
	buf   Buffer
	value T
}

// NewUniform allocates a buffer sized for T and uploads v. T must have a
// fixed binary size: floats, fixed arrays and structs of them.
func NewUniform[T any](dev Device, label string, v T) (*Uniform[T], error) {
	size := binary.Size(v)
	if size <= 0 {
		return nil, fmt.Errorf("uniform %q: %T has no fixed size", label, v)
	}

	buf, err := dev.CreateBuffer(label, size)
	if err != nil {
		return nil, fmt.Errorf("uniform %q: %w", label, err)
	}

	u := &Uniform[T]{buf: buf}
	if err := u.Set(v); err != nil {
		buf.Release()
		return nil, err
	}
	return u, nil
}

// Set stores v and uploads it.
func (u *Uniform[T]) Set(v T) error {
	u.value = v
	if err := u.buf.Write(v); err != nil {
		return fmt.Errorf("uniform %q: %w", u.buf.Label(), err)
	}
	return nil
}

// Value returns the last value set.
func (u *Uniform[T]) Value() T {
	return u.value
}

// Label implements Binding.
func (u *Uniform[T]) Label() string {
	return u.buf.Label()
}

// Resolve implements Indirect.
func (u *Uniform[T]) Resolve() Binding {
	return u.buf
}

// Release frees the backing buffer. It is safe on a nil Uniform.
func (u *Uniform[T]) Release() {
	if u == nil || u.buf == nil {
		return
	}
	u.buf.Release()
	u.buf = nil
}

// TextureSlot is a stable binding whose depth texture is replaced over time.
type TextureSlot struct {
	label   string
	current DepthTarget
}

// NewTextureSlot creates a slot holding t.
func NewTextureSlot(label string, t DepthTarget) *TextureSlot {
	return &TextureSlot{label: label, current: t}
}

// Swap installs t and returns the target it replaced.
func (s *TextureSlot) Swap(t DepthTarget) DepthTarget {
	old := s.current
	s.current = t
	return old
}

// Resolve implements Indirect.
func (s *TextureSlot) Resolve() Binding {
	return s.current
}

// Label implements Binding.
func (s *TextureSlot) Label() string {
	return s.label
}

// Release frees the installed target.
func (s *TextureSlot) Release() {
	if s.current != nil {
		s.current.Release()
		s.current = nil
	}
}
