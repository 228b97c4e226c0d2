package terrain

import (
	"fmt"
	"runtime"

	"github.com/alitto/pond/v2"
)

// Result is the single hand-off from a background build.
type Result struct {
	Meshes map[ChunkCoord]*ChunkMesh
	Field  *HeightField
	Err    error
}

// Pending is the consumer side of a background build. It is spent after the
// first successful TryReceive.
type Pending struct {
	ch     <-chan Result
	Width  uint32
	Height uint32
}

// BuildAsync decodes the heightmap on the caller's goroutine, then builds every
// chunk on a background goroutine. The field is owned by that goroutine until
// it is handed back in the Result.
func BuildAsync(data []byte, p Params) (*Pending, error) {
	field, err := Load(data, p.Size, p.HeightMultiplier)
	if err != nil {
		return nil, err
	}

	pending, send := NewHandoff(field.Width, field.Height)
	go func() {
		send <- buildParallel(field, p)
	}()

	return pending, nil
}

// NewHandoff returns an undelivered Pending for a width x height heightmap
// and the channel that completes it. At most one Result may be sent.
func NewHandoff(width, height uint32) (*Pending, chan<- Result) {
	ch := make(chan Result, 1)
	return &Pending{ch: ch, Width: width, Height: height}, ch
}

// TryReceive returns the build result if it has been delivered. It never blocks.
func (p *Pending) TryReceive() (Result, bool) {
	if p == nil || p.ch == nil {
		return Result{}, false
	}
	select {
	case r := <-p.ch:
		p.ch = nil
		return r, true
	default:
		return Result{}, false
	}
}

// buildParallel fans chunk generation out over a worker pool. Each task writes
// only its own slot, so the map is assembled after the group finishes.
func buildParallel(field *HeightField, p Params) (res Result) {
	res.Field = field
	defer func() {
		if r := recover(); r != nil {
			res.Meshes = nil
			res.Err = fmt.Errorf("terrain build panicked: %v", r)
		}
	}()

	total := int(p.Chunks * p.Chunks)
	pool := pond.NewPool(max(1, min(runtime.NumCPU(), total)))
	defer pool.StopAndWait()

	slots := make([]*ChunkMesh, total)
	group := pool.NewGroup()
	for cx := range p.Chunks {
		for cy := range p.Chunks {
			slot := int(cx*p.Chunks + cy)
			group.Submit(func() {
				slots[slot] = BuildChunk(field, p, cx, cy)
			})
		}
	}
	if err := group.Wait(); err != nil {
		res.Err = fmt.Errorf("building chunks: %w", err)
		return res
	}

	res.Meshes = make(map[ChunkCoord]*ChunkMesh, total)
	for cx := range p.Chunks {
		for cy := range p.Chunks {
			res.Meshes[ChunkCoord{X: cx, Y: cy}] = slots[cx*p.Chunks+cy]
		}
	}
	return res
}
