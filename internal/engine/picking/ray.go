// Package picking casts rays from the screen into the world and finds where
// they meet the terrain.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b mgl32.Vec3) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max: mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction[1])) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p[0], p[2], true
}

// IntersectAABB returns the distances at which the ray enters and leaves
// box. A ray starting inside has tNear 0.
func (r Ray) IntersectAABB(box AABB) (tNear, tFar float32, hit bool) {
	tNear = float32(-gomath.MaxFloat32)
	tFar = float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
	}

	if tFar < tNear || tFar < 0 {
		return 0, 0, false
	}
	return max(tNear, 0), tFar, true
}

// HeightFunc samples ground height at a world X/Z position.
type HeightFunc func(x, z float32) float32

// refineSteps is the number of bisection steps after a crossing is found.
const refineSteps = 16

// IntersectHeightField marches the ray through bounds in increments of step
// and returns the first point at or below the ground.
func (r Ray) IntersectHeightField(bounds AABB, height HeightFunc, step float32) (mgl32.Vec3, bool) {
	if step <= 0 {
		return mgl32.Vec3{}, false
	}
	tNear, tFar, hit := r.IntersectAABB(bounds)
	if !hit {
		return mgl32.Vec3{}, false
	}

	above := func(t float32) bool {
		p := r.At(t)
		return p[1] > height(p[0], p[2])
	}

	if !above(tNear) {
		return r.At(tNear), true
	}

	prev := tNear
	for t := tNear + step; ; t += step {
		t = min(t, tFar)
		if !above(t) {
			// Bisect between the last point above and the first below
			lo, hi := prev, t
			for range refineSteps {
				mid := (lo + hi) / 2
				if above(mid) {
					lo = mid
				} else {
					hi = mid
				}
			}
			return r.At(hi), true
		}
		if t >= tFar {
			return mgl32.Vec3{}, false
		}
		prev = t
	}
}
