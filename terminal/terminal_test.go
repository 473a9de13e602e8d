package terminal

import (
	"testing"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbright/sparkfield/sim"
)

func TestMouseEventDragSequence(t *testing.T) {
	down := false

	ev := mouseEvent(termbox.Event{Key: termbox.MouseLeft, MouseX: 5, MouseY: 7}, &down)
	assert.Equal(t, sim.PointerDown, ev.Kind)
	assert.Equal(t, 5.0, ev.X)
	assert.True(t, down)

	// Held button reports as a drag, not a second press.
	ev = mouseEvent(termbox.Event{Key: termbox.MouseLeft, MouseX: 6, MouseY: 7}, &down)
	assert.Equal(t, sim.PointerMove, ev.Kind)
	assert.Equal(t, 1, ev.Buttons)

	ev = mouseEvent(termbox.Event{Key: termbox.MouseRelease, MouseX: 6, MouseY: 7}, &down)
	assert.Equal(t, sim.PointerUp, ev.Kind)
	assert.False(t, down)

	ev = mouseEvent(termbox.Event{Key: termbox.MouseMiddle, MouseX: 8, MouseY: 9}, &down)
	assert.Equal(t, sim.PointerMove, ev.Kind)
	assert.Zero(t, ev.Buttons)
}

func TestRGBAttrColorCube(t *testing.T) {
	// Palette index n is addressed as Attribute(n+1) in Output256 mode.
	assert.Equal(t, termbox.Attribute(16+1), rgbAttr(sim.RGB{}))
	assert.Equal(t, termbox.Attribute(16+215+1), rgbAttr(sim.RGB{R: 255, G: 255, B: 255}))
	assert.Equal(t, termbox.Attribute(16+36*5+1), rgbAttr(sim.RGB{R: 255}))
}

func TestFillPolygonStaysInBounds(t *testing.T) {
	s := &Surface{}
	s.realloc(20, 10)

	// A quad hanging off every edge must clip, not panic or wrap.
	s.FillPolygon([]sim.Point{
		{X: -5, Y: -5}, {X: 25, Y: -5}, {X: 25, Y: 15}, {X: -5, Y: 15},
	}, sim.RGB{R: 200}, 1)

	filled := 0
	for _, c := range s.backbuf {
		if c.Ch == '█' {
			filled++
		}
	}
	assert.Equal(t, 20*10, filled, "surface-covering quad fills every cell exactly once")

	s.Clear()
	for _, c := range s.backbuf {
		assert.Zero(t, c.Ch)
	}
}

func TestFillPolygonDegenerate(t *testing.T) {
	s := &Surface{}
	s.realloc(20, 10)

	s.FillPolygon(nil, sim.RGB{}, 1)
	s.FillPolygon([]sim.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, sim.RGB{}, 1)
	s.FillPolygon([]sim.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, sim.RGB{}, 0)

	for _, c := range s.backbuf {
		assert.Zero(t, c.Ch)
	}
}

func TestRunLoopSurvivesRemoteChannelClose(t *testing.T) {
	surface := &Surface{}
	surface.realloc(80, 24)
	eng := sim.NewEngine(surface, DefaultOptions(sim.Options{Seed: 1}))

	// A dropped bridge closes its event channel.
	remote := make(chan sim.PointerEvent)
	close(remote)

	events := make(chan termbox.Event)
	go func() {
		// Give the loop time to (mis)handle the closed channel first.
		time.Sleep(20 * time.Millisecond)
		events <- termbox.Event{Type: termbox.EventKey, Ch: 'q'}
	}()

	done := make(chan error, 1)
	go func() { done <- runLoop(eng, surface, events, remote, nil) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop never reached the quit key after the remote channel closed")
	}

	// A closed channel must not feed zero-value move events: the cursor
	// stays parked off-surface instead of jumping to the corner.
	assert.False(t, eng.Tracker().OnSurface(surface.Size()))
}

func TestDefaultOptionsOnlyFillUnset(t *testing.T) {
	o := DefaultOptions(sim.Options{MaxSize: 8})
	assert.Equal(t, 8.0, o.MaxSize)
	assert.Equal(t, 1.0, o.MinSize)
	assert.Equal(t, 14.0, o.CursorRadius)
}
