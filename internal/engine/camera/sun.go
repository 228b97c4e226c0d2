package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunParams places the sun relative to the terrain.
type SunParams struct {
	Altitude float32 // Sun height in world units
	Offset   float32 // Sun X and Z as a multiple of the terrain width
	Lens     Params
}

// DefaultSunParams returns the sun placement used for shadow casting.
func DefaultSunParams() SunParams {
	return SunParams{
		Altitude: 900,
		Offset:   1.01,
		Lens:     Params{FovY: 100, ZNear: 1, ZFar: 1000},
	}
}

// Sun derives the shadow-casting camera for a terrain of width x height
// pixels. It depends only on its arguments.
func Sun(width, height uint32, aspect float32, p SunParams) Camera {
	w, h := float32(width), float32(height)
	eye := mgl32.Vec3{w * p.Offset, p.Altitude, w * p.Offset}
	look := eye.Sub(mgl32.Vec3{w * 0.5, 0, h * 0.5})

	x, y, z := float64(look[0]), float64(look[1]), float64(look[2])
	dist := gomath.Sqrt(x*x + z*z)

	cam := New(eye, aspect, p.Lens)
	cam.Ground = float32(sunYaw(x, z))
	cam.Sky = float32(-gomath.Atan(y / dist))
	return cam
}

// sunYaw evaluates atan(z/x) + pi*(sign(x)-1) + pi. Modulo 2pi that is
// atan2(z, x) + pi for x > 0 but plain atan2(z, x) for x < 0. The sun always
// sits at x > 0, so x = 0 takes the limit of the positive side.
func sunYaw(x, z float64) float64 {
	if x == 0 {
		return gomath.Atan2(z, x) + gomath.Pi
	}
	return gomath.Atan(z/x) + gomath.Pi*(gomath.Abs(x)/x-1) + gomath.Pi
}
