// Package terminal renders the particle simulation into a termbox cell
// grid, driving frames off a ticker and feeding terminal mouse events into
// the engine. It is the no-browser way to run the effect.
package terminal

import (
	"fmt"
	"time"

	"github.com/nsf/termbox-go"
	"go.uber.org/zap"

	"github.com/finbright/sparkfield/sim"
)

// DefaultOptions tunes the simulation for cell-sized particles. Values are
// only applied where the caller left the field unset.
func DefaultOptions(o sim.Options) sim.Options {
	if o.MinSize <= 0 {
		o.MinSize = 1
	}
	if o.MaxSize <= 0 {
		o.MaxSize = 3
	}
	if o.CursorRadius <= 0 {
		o.CursorRadius = 14
	}
	if o.TrailSpacing <= 0 {
		o.TrailSpacing = 3
	}
	if o.MaxVelocity <= 0 {
		o.MaxVelocity = 4
	}
	if o.Gravity <= 0 {
		o.Gravity = 0.02
	}
	return o
}

// Run owns the terminal for the lifetime of the simulation: Esc, q or
// Ctrl-C returns. remote, when non-nil, supplies pointer events from a
// websocket bridge alongside the local mouse.
func Run(opts sim.Options, remote <-chan sim.PointerEvent, log *zap.Logger) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)

	surface := newSurface()
	eng := sim.NewEngine(surface, DefaultOptions(opts))
	defer eng.Close()

	w, h := surface.Size()
	log.Info("terminal renderer started", zap.Float64("cols", w), zap.Float64("rows", h))

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				close(events)
				return
			}
			events <- ev
		}
	}()
	defer termbox.Interrupt()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	return runLoop(eng, surface, events, remote, ticker.C)
}

// runLoop multiplexes frames, local terminal events and the optional remote
// stream. A dropped bridge closes the remote channel; it is nilled out so
// the select does not spin on a permanently ready case, and the local mouse
// keeps working.
func runLoop(eng *sim.Engine, surface *Surface, events <-chan termbox.Event, remote <-chan sim.PointerEvent, tick <-chan time.Time) error {
	down := false
	for {
		select {
		case <-tick:
			eng.Tick()
		case ev, ok := <-remote:
			if !ok {
				remote = nil
				continue
			}
			eng.HandleEvent(ev)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case termbox.EventKey:
				if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
					return nil
				}
			case termbox.EventResize:
				surface.realloc(ev.Width, ev.Height)
			case termbox.EventMouse:
				eng.HandleEvent(mouseEvent(ev, &down))
			case termbox.EventError:
				return fmt.Errorf("terminal event: %w", ev.Err)
			}
		}
	}
}

// mouseEvent translates a termbox mouse event into the normalized pointer
// model. Terminals only report motion while a button is held, so a repeated
// MouseLeft is a drag, not a re-press.
func mouseEvent(ev termbox.Event, down *bool) sim.PointerEvent {
	x, y := float64(ev.MouseX), float64(ev.MouseY)
	switch ev.Key {
	case termbox.MouseLeft:
		if *down {
			return sim.PointerEvent{Kind: sim.PointerMove, X: x, Y: y, Buttons: 1}
		}
		*down = true
		return sim.PointerEvent{Kind: sim.PointerDown, X: x, Y: y, Buttons: 1}
	case termbox.MouseRelease:
		*down = false
		return sim.PointerEvent{Kind: sim.PointerUp, X: x, Y: y}
	default:
		buttons := 0
		if *down {
			buttons = 1
		}
		return sim.PointerEvent{Kind: sim.PointerMove, X: x, Y: y, Buttons: buttons}
	}
}
