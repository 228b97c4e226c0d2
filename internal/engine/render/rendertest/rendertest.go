// Package rendertest provides an in-memory render.Surface that records every
// call for assertions.
package rendertest

import (
	"fmt"
	"strings"

	"github.com/Faultbox/heightscape/internal/engine/render"
)

// Surface is a recording render.Surface and render.Device.
type Surface struct {
	Log []string

	// Errors injected into the next matching call.
	MeshErr     error
	PipelineErr error
	DepthErr    error

	Buffers   map[string]*Buffer
	Meshes    []*Mesh
	Targets   []*DepthTarget
	Pipelines map[string]*Pipeline

	config render.Config
	depth  *DepthTarget
	color  *Texture
	screen *Mesh
	nextID int
}

var (
	_ render.Surface = (*Surface)(nil)
	_ render.Device  = (*Surface)(nil)
)

// NewSurface creates a surface of the given size.
func NewSurface(width, height uint32) *Surface {
	return &Surface{
		Buffers:   make(map[string]*Buffer),
		Pipelines: make(map[string]*Pipeline),
		config:    render.Config{Width: width, Height: height},
		depth:     &DepthTarget{label: "scene depth", width: width, height: height},
		color:     &Texture{label: "scene color"},
		screen:    &Mesh{label: "screen quad", indices: 6},
	}
}

func (s *Surface) record(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}

// Reset clears the call log.
func (s *Surface) Reset() {
	s.Log = s.Log[:0]
}

// Filter returns the log entries that start with prefix.
func (s *Surface) Filter(prefix string) []string {
	var out []string
	for _, l := range s.Log {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

// Resize changes the surface configuration.
func (s *Surface) Resize(width, height uint32) {
	s.config = render.Config{Width: width, Height: height}
}

func (s *Surface) Config() render.Config           { return s.config }
func (s *Surface) Device() render.Device           { return s }
func (s *Surface) DepthTexture() render.DepthTarget { return s.depth }
func (s *Surface) ColorTexture() render.Binding     { return s.color }
func (s *Surface) ScreenModel() render.Mesh         { return s.screen }

// LiveTargets returns the depth targets created and not yet released.
func (s *Surface) LiveTargets() []*DepthTarget {
	var out []*DepthTarget
	for _, t := range s.Targets {
		if !t.Released {
			out = append(out, t)
		}
	}
	return out
}

func (s *Surface) CreateMesh(desc render.MeshDesc) (render.Mesh, error) {
	if err := s.MeshErr; err != nil {
		s.MeshErr = nil
		return nil, err
	}
	m := &Mesh{label: desc.Label, indices: len(desc.Indices), Vertices: len(desc.Vertices)}
	s.Meshes = append(s.Meshes, m)
	s.record("mesh %s", desc.Label)
	return m, nil
}

func (s *Surface) CreatePipeline(desc render.PipelineDesc) (render.Pipeline, error) {
	if err := s.PipelineErr; err != nil {
		s.PipelineErr = nil
		return nil, err
	}
	p := &Pipeline{Desc: desc}
	s.Pipelines[desc.Label] = p
	s.record("pipeline %s", desc.Label)
	return p, nil
}

func (s *Surface) CreateDepthTarget(label string, width, height uint32) (render.DepthTarget, error) {
	if err := s.DepthErr; err != nil {
		s.DepthErr = nil
		return nil, err
	}
	s.nextID++
	t := &DepthTarget{label: fmt.Sprintf("%s#%d", label, s.nextID), width: width, height: height, surface: s}
	s.Targets = append(s.Targets, t)
	s.record("create %s", t.label)
	return t, nil
}

func (s *Surface) CreateBuffer(label string, size int) (render.Buffer, error) {
	b := &Buffer{label: label, Size: size}
	s.Buffers[label] = b
	return b, nil
}

func (s *Surface) BeginPass(desc render.PassDesc) render.Pass {
	target := "scene"
	switch {
	case desc.Depth != nil:
		target = desc.Depth.Label()
	case desc.Screen:
		target = "screen"
	}
	s.record("begin %s -> %s", desc.Label, target)
	return &Pass{surface: s, label: desc.Label}
}

// Pass records draws into the owning surface log.
type Pass struct {
	surface *Surface
	label   string
	ended   bool
}

func (p *Pass) SetPipeline(pl render.Pipeline) {
	p.surface.record("set pipeline %s", pl.Label())
}

// SetBinding logs the resolved resource so texture swaps are visible.
func (p *Pass) SetBinding(group int, b render.Binding) {
	p.surface.record("bind %d %s", group, render.Resolve(b).Label())
}

func (p *Pass) Draw(m render.Mesh) {
	p.surface.record("draw %s", m.(*Mesh).label)
}

func (p *Pass) End() error {
	if p.ended {
		return fmt.Errorf("pass %s ended twice", p.label)
	}
	p.ended = true
	p.surface.record("end %s", p.label)
	return nil
}

// Mesh is a recorded mesh upload.
type Mesh struct {
	label    string
	indices  int
	Vertices int
	Released bool
}

func (m *Mesh) Label() string   { return m.label }
func (m *Mesh) IndexCount() int { return m.indices }
func (m *Mesh) Release()        { m.Released = true }

// Pipeline is a recorded pipeline.
type Pipeline struct {
	Desc render.PipelineDesc
}

func (p *Pipeline) Label() string { return p.Desc.Label }

// DepthTarget is a recorded depth texture.
type DepthTarget struct {
	label         string
	width, height uint32
	surface       *Surface
	Released      bool
}

func (t *DepthTarget) Label() string                 { return t.label }
func (t *DepthTarget) Size() (width, height uint32) { return t.width, t.height }
func (t *DepthTarget) Release() {
	t.Released = true
	if t.surface != nil {
		t.surface.record("release %s", t.label)
	}
}

// Texture is a plain bindable texture.
type Texture struct {
	label string
}

func (t *Texture) Label() string { return t.label }

// Buffer keeps every value written.
type Buffer struct {
	label    string
	Size     int
	Values   []any
	Released bool
}

func (b *Buffer) Label() string { return b.label }
func (b *Buffer) Release()      { b.Released = true }
func (b *Buffer) Write(v any) error {
	b.Values = append(b.Values, v)
	return nil
}

// Last returns the most recent value written, or nil.
func (b *Buffer) Last() any {
	if len(b.Values) == 0 {
		return nil
	}
	return b.Values[len(b.Values)-1]
}
