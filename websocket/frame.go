// Package websocket bridges browser pointer input to native renderers: a
// page captures pointer events, ships them as JSON frames over a websocket,
// and subscribers receive them as normalized sim events.
package websocket

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/finbright/sparkfield/sim"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Frame is the wire format of one pointer event.
const (
	KindDown  = "down"
	KindMove  = "move"
	KindUp    = "up"
	KindLeave = "leave"
)

type Frame struct {
	Kind    string  `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons int     `json:"buttons"`
	// Interactive marks a press that landed on real page UI. The browser
	// side resolves this with the DOM at hand; receivers just honor it.
	Interactive bool `json:"interactive,omitempty"`
}

// Event translates a frame into a sim event. Returns false for frames that
// should be dropped: unknown kinds and presses claimed by the page's UI.
func (f Frame) Event() (sim.PointerEvent, bool) {
	switch f.Kind {
	case KindDown:
		if f.Interactive {
			return sim.PointerEvent{}, false
		}
		return sim.PointerEvent{Kind: sim.PointerDown, X: f.X, Y: f.Y, Buttons: f.Buttons}, true
	case KindMove:
		return sim.PointerEvent{Kind: sim.PointerMove, X: f.X, Y: f.Y, Buttons: f.Buttons}, true
	case KindUp:
		return sim.PointerEvent{Kind: sim.PointerUp, X: f.X, Y: f.Y}, true
	case KindLeave:
		return sim.PointerEvent{Kind: sim.PointerLeave}, true
	}
	return sim.PointerEvent{}, false
}

// FrameFor is the inverse mapping, used by the wasm front end's mirror.
func FrameFor(ev sim.PointerEvent) Frame {
	f := Frame{X: ev.X, Y: ev.Y, Buttons: ev.Buttons}
	switch ev.Kind {
	case sim.PointerDown:
		f.Kind = KindDown
	case sim.PointerMove:
		f.Kind = KindMove
	case sim.PointerUp:
		f.Kind = KindUp
	default:
		f.Kind = KindLeave
	}
	return f
}
