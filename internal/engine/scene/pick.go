package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightscape/internal/engine/picking"
)

// pickStep is the ray march increment as a fraction of a terrain pixel.
const pickStep = 0.25

// Pick returns the terrain point under a window pixel. It reports false
// while the terrain is building or when the ray leaves the terrain.
func (s *Scene) Pick(screenX, screenY float32) (mgl32.Vec3, bool) {
	if !s.terrain.Ready() {
		return mgl32.Vec3{}, false
	}

	p := s.terrain.Params()
	bounds := picking.NewAABB(
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{
			float32(s.terrain.Width()-1) * p.Size,
			p.HeightMultiplier,
			float32(s.terrain.Height()-1) * p.Size,
		},
	)
	ray := picking.ScreenToRay(screenX, screenY, s.screen[0], s.screen[1], s.camera.ViewProjection().Inv())
	return ray.IntersectHeightField(bounds, s.terrain.HeightAt, p.Size*pickStep)
}

// Target returns the terrain point at the center of the screen.
func (s *Scene) Target() (mgl32.Vec3, bool) {
	return s.Pick(s.screen[0]/2, s.screen[1]/2)
}
