package window

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/heightscape/internal/engine/input"
)

// touchMouseID is SDL_TOUCH_MOUSEID, the device of mouse events synthesized from touches.
const touchMouseID = math.MaxUint32

// keyBindings maps physical keys to controls.
var keyBindings = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyForward,
	sdl.SCANCODE_S:      input.KeyBack,
	sdl.SCANCODE_A:      input.KeyLeft,
	sdl.SCANCODE_D:      input.KeyRight,
	sdl.SCANCODE_SPACE:  input.KeyUp,
	sdl.SCANCODE_LSHIFT: input.KeyDown,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyScreenshot,
}

// PollEvents drains the SDL queue into events, reusing its storage.
// Returns true if the window was asked to close.
func (w *Window) PollEvents(events []input.Event) ([]input.Event, bool) {
	events = events[:0]
	width, height := w.GetSize()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, input.Event{Type: input.EventQuit})
			return events, true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height = w.GetSize()
				events = append(events, input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			key, ok := keyBindings[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			typ := input.EventKeyUp
			if e.Type == sdl.KEYDOWN {
				typ = input.EventKeyDown
			}
			events = append(events, input.Event{Type: typ, Key: key})

		case *sdl.MouseMotionEvent:
			// Touches also arrive as synthetic mouse events.
			if e.Which == touchMouseID {
				continue
			}
			events = append(events, input.Event{
				Type: input.EventMouseMotion,
				DX:   float32(e.XRel),
				DY:   float32(e.YRel),
			})

		case *sdl.TouchFingerEvent:
			var typ input.EventType
			switch e.Type {
			case sdl.FINGERDOWN:
				typ = input.EventFingerDown
			case sdl.FINGERMOTION:
				typ = input.EventFingerMotion
			case sdl.FINGERUP:
				typ = input.EventFingerUp
			default:
				continue
			}
			events = append(events, input.Event{
				Type:   typ,
				Finger: int64(e.FingerID),
				X:      e.X * float32(width),
				Y:      e.Y * float32(height),
			})
		}
	}

	return events, false
}
