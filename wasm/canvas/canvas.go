//go:build js && wasm

// Package canvas adapts an HTML canvas element into a sim.Surface and binds
// the page's pointer, touch and visibility events to an engine.
package canvas

import (
	"fmt"
	"syscall/js"

	"github.com/finbright/sparkfield/sim"
)

// Canvas wraps one <canvas> element and its 2d context. It implements both
// sim.Surface and sim.AttrSource, so data-* attributes on the element feed
// the engine's configuration.
type Canvas struct {
	el  js.Value
	ctx js.Value
}

// Find locates the host element by selector. A missing element returns nil,
// which the engine treats as "do nothing": initialization never throws.
func Find(selector string) *Canvas {
	el := js.Global().Get("document").Call("querySelector", selector)
	if el.IsNull() || el.IsUndefined() {
		return nil
	}
	return &Canvas{
		el:  el,
		ctx: el.Call("getContext", "2d"),
	}
}

// FitViewport sizes the canvas buffer to the window and re-fits on resize.
// Returns an unbind func.
func (c *Canvas) FitViewport() func() {
	fit := func() {
		win := js.Global()
		c.el.Set("width", win.Get("innerWidth").Int())
		c.el.Set("height", win.Get("innerHeight").Int())
	}
	fit()
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fit()
		return nil
	})
	js.Global().Call("addEventListener", "resize", cb)
	return func() {
		js.Global().Call("removeEventListener", "resize", cb)
		cb.Release()
	}
}

func (c *Canvas) Size() (float64, float64) {
	return c.el.Get("width").Float(), c.el.Get("height").Float()
}

func (c *Canvas) Clear() {
	w, h := c.Size()
	c.ctx.Call("clearRect", 0, 0, w, h)
}

func (c *Canvas) FillPolygon(pts []sim.Point, col sim.RGB, alpha float64) {
	if len(pts) < 3 {
		return
	}
	c.ctx.Set("globalAlpha", alpha)
	c.ctx.Set("fillStyle", fmt.Sprintf("rgb(%d,%d,%d)", col.R, col.G, col.B))
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.ctx.Call("lineTo", p.X, p.Y)
	}
	c.ctx.Call("closePath")
	c.ctx.Call("fill")
}

func (c *Canvas) Flush() {
	c.ctx.Set("globalAlpha", 1)
}

// Attr satisfies sim.AttrSource against the element's attributes.
func (c *Canvas) Attr(name string) (string, bool) {
	if !c.el.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return c.el.Call("getAttribute", name).String(), true
}

// RunFrames drives the engine off requestAnimationFrame. Returns a stop
// func that halts scheduling.
func (c *Canvas) RunFrames(eng *sim.Engine) func() {
	var frame js.Func
	var id js.Value
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		eng.Tick()
		id = js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	id = js.Global().Call("requestAnimationFrame", frame)
	return func() {
		js.Global().Call("cancelAnimationFrame", id)
		frame.Release()
	}
}
