package terrain

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/heightscape/internal/logger"
)

// Terrain owns the height field and the chunk meshes built from it. While a
// background build is pending it has no meshes and no field.
type Terrain struct {
	field   *HeightField
	meshes  map[ChunkCoord]*ChunkMesh
	pending *Pending
	started time.Time

	width  uint32
	height uint32
	params Params
}

// New decodes the heightmap and builds all meshes before returning.
func New(data []byte, p Params) (*Terrain, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	field, err := Load(data, p.Size, p.HeightMultiplier)
	if err != nil {
		return nil, err
	}
	meshes := Build(field, p)

	logger.Info("terrain built",
		zap.Uint32("width", field.Width),
		zap.Uint32("height", field.Height),
		zap.Int("chunks", len(meshes)),
		zap.Duration("took", time.Since(start)),
	)

	return &Terrain{
		field:  field,
		meshes: meshes,
		width:  field.Width,
		height: field.Height,
		params: p,
	}, nil
}

// NewAsync decodes the heightmap and starts a background mesh build.
// Decode failures are returned immediately.
func NewAsync(data []byte, p Params) (*Terrain, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	pending, err := BuildAsync(data, p)
	if err != nil {
		return nil, err
	}

	logger.Info("terrain build started in background",
		zap.Uint32("width", pending.Width),
		zap.Uint32("height", pending.Height),
		zap.Uint32("chunks_per_axis", p.Chunks),
	)
	return FromPending(pending, p), nil
}

// FromPending wraps a build that will be delivered through pending.
func FromPending(pending *Pending, p Params) *Terrain {
	return &Terrain{
		pending: pending,
		started: time.Now(),
		width:   pending.Width,
		height:  pending.Height,
		params:  p,
	}
}

// Ready reports whether meshes are available.
func (t *Terrain) Ready() bool {
	return t.meshes != nil
}

// Poll checks the background build without blocking and swaps in its
// result on delivery. It returns true once the terrain is ready.
func (t *Terrain) Poll() (bool, error) {
	if t.Ready() {
		return true, nil
	}

	res, ok := t.pending.TryReceive()
	if !ok {
		return false, nil
	}
	t.pending = nil

	if res.Err != nil {
		return false, fmt.Errorf("background terrain build: %w", res.Err)
	}

	t.field = res.Field
	t.meshes = res.Meshes

	logger.Info("background terrain build delivered",
		zap.Int("chunks", len(t.meshes)),
		zap.Duration("took", time.Since(t.started)),
	)
	return true, nil
}

// Meshes returns the chunk meshes, or nil while a build is pending.
func (t *Terrain) Meshes() map[ChunkCoord]*ChunkMesh {
	return t.meshes
}

// HeightAt samples the terrain height at a world position; 0 while pending.
func (t *Terrain) HeightAt(worldX, worldZ float32) float32 {
	return t.field.HeightAt(worldX, worldZ)
}

// Width returns the heightmap width in pixels.
func (t *Terrain) Width() uint32 { return t.width }

// Height returns the heightmap height in pixels.
func (t *Terrain) Height() uint32 { return t.height }

// Params returns the generation parameters.
func (t *Terrain) Params() Params { return t.params }

func (p Params) validate() error {
	if p.Resolution == 0 {
		return fmt.Errorf("terrain resolution must be at least 1")
	}
	if p.Chunks == 0 {
		return fmt.Errorf("terrain chunk count must be at least 1")
	}
	return nil
}
