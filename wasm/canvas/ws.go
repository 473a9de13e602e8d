//go:build js && wasm

package canvas

import (
	"syscall/js"

	jsoniter "github.com/json-iterator/go"

	"github.com/finbright/sparkfield/sim"
	"github.com/finbright/sparkfield/websocket"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mirror forwards pointer events over a browser WebSocket so remote
// renderers can follow the page cursor. Events are dropped until the
// socket is open and after it closes.
type Mirror struct {
	socket js.Value
	open   bool
	onOpen js.Func
	onDone js.Func
}

// NewMirror connects to url, e.g. "ws://localhost:5000/ws".
func NewMirror(url string) *Mirror {
	m := &Mirror{
		socket: js.Global().Get("WebSocket").New(url),
	}
	m.onOpen = js.FuncOf(func(js.Value, []js.Value) any {
		m.open = true
		return nil
	})
	m.onDone = js.FuncOf(func(js.Value, []js.Value) any {
		m.open = false
		return nil
	})
	m.socket.Set("onopen", m.onOpen)
	m.socket.Set("onclose", m.onDone)
	m.socket.Set("onerror", m.onDone)
	return m
}

// Send marshals the event as a wire frame and ships it.
func (m *Mirror) Send(ev sim.PointerEvent, interactive bool) {
	if !m.open {
		return
	}
	f := websocket.FrameFor(ev)
	f.Interactive = interactive
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	m.socket.Call("send", string(data))
}

func (m *Mirror) Close() {
	if m.open {
		m.socket.Call("close")
	}
	m.open = false
	m.onOpen.Release()
	m.onDone.Release()
}
