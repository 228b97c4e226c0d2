// Package camera provides the first-person player camera and the fixed sun
// camera used for shadow casting.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxSky is the pitch limit in either direction. Looking straight up or down
// would make the view basis degenerate.
const MaxSky = 0.499 * gomath.Pi

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// Camera is a yaw/pitch perspective camera.
type Camera struct {
	Eye    mgl32.Vec3
	Aspect float32
	FovY   float32 // Vertical field of view in degrees
	ZNear  float32
	ZFar   float32
	Ground float32 // Yaw in radians
	Sky    float32 // Pitch in radians
}

// Params holds the lens settings for a camera.
type Params struct {
	FovY  float32
	ZNear float32
	ZFar  float32
}

// DefaultPlayerParams returns the player lens.
func DefaultPlayerParams() Params {
	return Params{FovY: 70, ZNear: 0.1, ZFar: 100}
}

// New creates a camera at eye looking along +X.
func New(eye mgl32.Vec3, aspect float32, p Params) Camera {
	return Camera{
		Eye:    eye,
		Aspect: aspect,
		FovY:   p.FovY,
		ZNear:  p.ZNear,
		ZFar:   p.ZFar,
	}
}

// WalkingVector is the horizontal unit vector the camera faces. Pitch is
// ignored so walking stays level.
func (c *Camera) WalkingVector() mgl32.Vec3 {
	g := float64(c.Ground)
	return mgl32.Vec3{float32(gomath.Cos(g)), 0, float32(gomath.Sin(g))}
}

// RightVector is the horizontal unit vector to the camera's right.
func (c *Camera) RightVector() mgl32.Vec3 {
	g := float64(c.Ground)
	return mgl32.Vec3{float32(-gomath.Sin(g)), 0, float32(gomath.Cos(g))}
}

// Direction is the unit look vector including pitch.
func (c *Camera) Direction() mgl32.Vec3 {
	g, s := float64(c.Ground), float64(c.Sky)
	return mgl32.Vec3{
		float32(gomath.Cos(s) * gomath.Cos(g)),
		float32(gomath.Sin(s)),
		float32(gomath.Cos(s) * gomath.Sin(g)),
	}
}

// Look turns the camera by a pointer delta. Larger sensitivity turns slower.
func (c *Camera) Look(dx, dy, sensitivity float32) {
	c.Ground += dx / sensitivity
	c.Sky -= dy / sensitivity
	c.Sky = mgl32.Clamp(c.Sky, -MaxSky, MaxSky)
}

// Translate moves the eye.
func (c *Camera) Translate(delta mgl32.Vec3) {
	c.Eye = c.Eye.Add(delta)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Eye.Add(c.Direction()), Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.ZNear, c.ZFar)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Uniform is the camera data shaders receive.
type Uniform struct {
	ViewProj mgl32.Mat4
	Eye      mgl32.Vec4
}

// Uniform packs the camera for upload.
func (c *Camera) Uniform() Uniform {
	return Uniform{
		ViewProj: c.ViewProjection(),
		Eye:      c.Eye.Vec4(1),
	}
}
