// Package input defines platform-neutral input events and the camera controls
// they drive. The SDL translation lives in the window package.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMotion
	EventFingerDown
	EventFingerMotion
	EventFingerUp
	EventFingerCancel
)

// Key is a logical control key.
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	KeyScreenshot

	keyCount
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int // Window size for EventWindowResize
	Height int

	// Relative pointer motion for EventMouseMotion.
	DX, DY float32

	// Finger events; X and Y are in window pixels.
	Finger int64
	X, Y   float32
}
