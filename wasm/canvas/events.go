//go:build js && wasm

package canvas

import (
	"strings"
	"syscall/js"

	"github.com/finbright/sparkfield/sim"
)

// node adapts a DOM element to the sim.Target interface so the engine's
// interactive-ancestor filter can walk real markup.
type node struct {
	v js.Value
}

func wrapTarget(v js.Value) sim.Target {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return node{v: v}
}

func (n node) Tag() string {
	tag := n.v.Get("tagName")
	if tag.IsUndefined() {
		return ""
	}
	return strings.ToLower(tag.String())
}

func (n node) Role() string {
	role := n.v.Call("getAttribute", "role")
	if role.IsNull() {
		return ""
	}
	return role.String()
}

func (n node) Attr(name string) (string, bool) {
	if !n.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return n.v.Call("getAttribute", name).String(), true
}

func (n node) Parent() sim.Target {
	return wrapTarget(n.v.Get("parentElement"))
}

// Dispatcher receives the normalized events; both the local engine and the
// websocket mirror satisfy it.
type Dispatcher func(sim.PointerEvent)

// BindInput attaches pointer, touch and visibility listeners on the
// document and forwards normalized events. The returned func removes every
// listener, as required for clean re-initialization.
func BindInput(dispatch Dispatcher, setVisible func(bool)) func() {
	doc := js.Global().Get("document")

	type binding struct {
		event string
		fn    js.Func
	}
	var bound []binding
	on := func(event string, handler func(js.Value)) {
		fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
			handler(args[0])
			return nil
		})
		doc.Call("addEventListener", event, fn)
		bound = append(bound, binding{event: event, fn: fn})
	}

	pointer := func(kind sim.EventKind, withTarget bool) func(js.Value) {
		return func(ev js.Value) {
			out := sim.PointerEvent{
				Kind:    kind,
				X:       ev.Get("clientX").Float(),
				Y:       ev.Get("clientY").Float(),
				Buttons: ev.Get("buttons").Int(),
			}
			if withTarget {
				out.Target = wrapTarget(ev.Get("target"))
			}
			dispatch(out)
		}
	}

	on("mousedown", pointer(sim.PointerDown, true))
	on("mousemove", pointer(sim.PointerMove, false))
	on("mouseup", pointer(sim.PointerUp, false))
	on("mouseleave", func(js.Value) {
		dispatch(sim.PointerEvent{Kind: sim.PointerLeave})
	})

	touch := func(kind sim.EventKind, withTarget bool) func(js.Value) {
		return func(ev js.Value) {
			touches := ev.Get("touches")
			if touches.Get("length").Int() == 0 {
				dispatch(sim.PointerEvent{Kind: sim.PointerUp})
				return
			}
			t := touches.Index(0)
			out := sim.PointerEvent{
				Kind:    kind,
				X:       t.Get("clientX").Float(),
				Y:       t.Get("clientY").Float(),
				Buttons: 1,
			}
			if withTarget {
				out.Target = wrapTarget(t.Get("target"))
			}
			dispatch(out)
		}
	}

	on("touchstart", touch(sim.PointerDown, true))
	on("touchmove", touch(sim.PointerMove, false))
	on("touchend", touch(sim.PointerUp, false))

	on("visibilitychange", func(js.Value) {
		hidden := doc.Get("hidden").Bool()
		setVisible(!hidden)
		if hidden {
			dispatch(sim.PointerEvent{Kind: sim.PointerLeave})
		}
	})

	return func() {
		for _, b := range bound {
			doc.Call("removeEventListener", b.event, b.fn)
			b.fn.Release()
		}
	}
}
