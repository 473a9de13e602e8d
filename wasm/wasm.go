//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/finbright/sparkfield/sim"
	"github.com/finbright/sparkfield/wasm/canvas"
	"github.com/finbright/sparkfield/wasm/detector"
)

// The page opts in with <canvas data-sparkfield> (or id="sparkfield") and
// tunes the field through data-* attributes on the element. With no matching
// canvas the module loads and does nothing.
func main() {
	c := canvas.Find("canvas[data-sparkfield], #sparkfield")
	if c == nil {
		select {}
	}
	unfit := c.FitViewport()
	defer unfit()

	eng := sim.NewEngine(c, sim.Options{})

	dispatch := func(ev sim.PointerEvent) { eng.HandleEvent(ev) }

	// data-ws mirrors pointer input to a bridge so remote renderers can
	// follow the page cursor. Interactivity is resolved here, while the DOM
	// target is still at hand.
	if url, ok := c.Attr("data-ws"); ok && url != "" {
		mirror := canvas.NewMirror(url)
		defer mirror.Close()
		local := dispatch
		dispatch = func(ev sim.PointerEvent) {
			local(ev)
			interactive := ev.Kind == sim.PointerDown && sim.IsInteractive(ev.Target)
			mirror.Send(ev, interactive)
		}
	}

	unbind := canvas.BindInput(dispatch, eng.SetVisible)
	defer unbind()

	// data-face-cursor swaps the mouse for a webcam face as the field's
	// driver; the page feeds frames through the registered global.
	if v, ok := c.Attr("data-face-cursor"); ok && v != "false" {
		if det, err := detector.New(); err == nil {
			drv := detector.NewDriver(det, dispatch)
			defer drv.Release()
		} else {
			js.Global().Get("console").Call("warn", "sparkfield: "+err.Error())
		}
	}

	stop := c.RunFrames(eng)
	defer stop()

	select {}
}
