package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightscape/internal/engine/camera"
)

// Default control tuning.
const (
	DefaultSpeed       = 2.0
	DefaultSensitivity = 500.0
)

// Controls turns input events into player camera motion.
//
// Touches that start on the left half of the screen steer like a mouse drag,
// tracked per finger. A touch that starts on the right half walks forward
// until that finger lifts.
type Controls struct {
	Speed       float32 // World units per second
	Sensitivity float32 // Pointer pixels per radian

	screenWidth float32
	held        [keyCount]bool

	lookFingers map[int64]mgl32.Vec2
	moveFinger  int64
	moving      bool
}

// NewControls creates controls for a screen of the given width.
func NewControls(screenWidth int) *Controls {
	return &Controls{
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		screenWidth: float32(screenWidth),
		lookFingers: make(map[int64]mgl32.Vec2),
	}
}

// Handle applies one event. Look input rotates cam immediately; key state
// is consumed by Apply.
func (c *Controls) Handle(e Event, cam *camera.Camera) {
	switch e.Type {
	case EventWindowResize:
		c.screenWidth = float32(e.Width)

	case EventKeyDown:
		if e.Key > KeyNone && e.Key < keyCount {
			c.held[e.Key] = true
		}

	case EventKeyUp:
		if e.Key > KeyNone && e.Key < keyCount {
			c.held[e.Key] = false
		}

	case EventMouseMotion:
		cam.Look(e.DX, e.DY, c.Sensitivity)

	case EventFingerDown:
		if e.X <= c.screenWidth/2 {
			c.lookFingers[e.Finger] = mgl32.Vec2{e.X, e.Y}
		} else {
			c.moveFinger = e.Finger
			c.moving = true
		}

	case EventFingerMotion:
		last, ok := c.lookFingers[e.Finger]
		if !ok {
			return
		}
		cam.Look(e.X-last[0], e.Y-last[1], c.Sensitivity)
		c.lookFingers[e.Finger] = mgl32.Vec2{e.X, e.Y}

	case EventFingerUp, EventFingerCancel:
		delete(c.lookFingers, e.Finger)
		if c.moving && c.moveFinger == e.Finger {
			c.moving = false
		}
	}
}

// Moving reports whether a move finger is down.
func (c *Controls) Moving() bool {
	return c.moving
}

// Apply moves the camera for a frame of dt seconds. Each active direction
// contributes a full step, so diagonals are faster than a single axis.
func (c *Controls) Apply(cam *camera.Camera, dt float64) {
	step := c.Speed * float32(dt)
	walk := cam.WalkingVector().Mul(step)
	right := cam.RightVector().Mul(step)
	up := camera.Up.Mul(step)

	if c.held[KeyForward] || c.moving {
		cam.Translate(walk)
	}
	if c.held[KeyBack] {
		cam.Translate(walk.Mul(-1))
	}
	if c.held[KeyLeft] {
		cam.Translate(right.Mul(-1))
	}
	if c.held[KeyRight] {
		cam.Translate(right)
	}
	if c.held[KeyUp] {
		cam.Translate(up)
	}
	if c.held[KeyDown] {
		cam.Translate(up.Mul(-1))
	}
}
