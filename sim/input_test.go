package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerPressAndRelease(t *testing.T) {
	tr := newTracker(0.35)

	assert.True(t, tr.Handle(PointerEvent{Kind: PointerDown, X: 10, Y: 20}))
	assert.True(t, tr.Down)
	assert.Equal(t, 10.0, tr.LastSpawnX)

	tr.Handle(PointerEvent{Kind: PointerUp, X: 10, Y: 20})
	assert.False(t, tr.Down)
}

func TestTrackerStuckButtonSelfCorrects(t *testing.T) {
	tr := newTracker(0.35)
	tr.Handle(PointerEvent{Kind: PointerDown, X: 0, Y: 0})
	assert.True(t, tr.Down)

	// A move reporting no pressed buttons means we missed the mouseup
	// (context menu, drag out of the window). The tracker must not stay
	// stuck in generator mode.
	tr.Handle(PointerEvent{Kind: PointerMove, X: 5, Y: 5, Buttons: 0})
	assert.False(t, tr.Down)
}

func TestTrackerLeaveParksCursor(t *testing.T) {
	tr := newTracker(0.35)
	tr.Handle(PointerEvent{Kind: PointerDown, X: 50, Y: 50})
	tr.Handle(PointerEvent{Kind: PointerLeave})

	assert.False(t, tr.Down)
	assert.False(t, tr.OnSurface(800, 600), "cursor parks off-surface after leave")
}

func TestTrackerVelocitySmoothing(t *testing.T) {
	tr := newTracker(0.35)
	tr.Handle(PointerEvent{Kind: PointerMove, X: 0, Y: 0, Buttons: 0})
	tr.BeginFrame()

	// A sudden 100px jump must not feed straight into the velocity model.
	tr.Handle(PointerEvent{Kind: PointerMove, X: 100, Y: 0, Buttons: 0})
	tr.BeginFrame()
	assert.InDelta(t, 35, tr.VX, 1, "first frame sees only the smoothing fraction")

	// Holding still decays the estimate toward zero instead of snapping.
	prev := tr.VX
	for i := 0; i < 5; i++ {
		tr.BeginFrame()
		assert.Less(t, tr.VX, prev)
		prev = tr.VX
	}
	assert.Greater(t, prev, 0.0)
}

func TestInteractiveTargetWalk(t *testing.T) {
	button := &fakeNode{tag: "button"}
	spanInButton := &fakeNode{tag: "span", parent: button}
	roleLink := &fakeNode{tag: "div", role: "link"}
	marked := &fakeNode{tag: "div", attrs: map[string]string{"data-no-sparks": ""}}
	deep := &fakeNode{tag: "i", parent: &fakeNode{tag: "em", parent: spanInButton}}
	plain := &fakeNode{tag: "section", parent: &fakeNode{tag: "main"}}

	tests := []struct {
		name   string
		target Target
		want   bool
	}{
		{"nil target", nil, false},
		{"plain markup", plain, false},
		{"button itself", button, true},
		{"descendant of button", spanInButton, true},
		{"deep descendant", deep, true},
		{"aria role", roleLink, true},
		{"marker attribute", marked, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInteractive(tt.target))
		})
	}
}

func TestTrackerIgnoresInteractivePress(t *testing.T) {
	tr := newTracker(0.35)
	nav := &fakeNode{tag: "nav"}

	spawned := tr.Handle(PointerEvent{Kind: PointerDown, X: 5, Y: 5, Target: nav})
	assert.False(t, spawned)
	assert.False(t, tr.Down, "interactive press must not enter generator mode")
}
