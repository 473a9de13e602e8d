package sim

// EventKind classifies a normalized pointer event.
type EventKind int

const (
	PointerMove EventKind = iota
	PointerDown
	PointerUp
	// PointerLeave covers pointer-out, window blur and visibility loss:
	// anything after which the cursor can no longer be trusted.
	PointerLeave
)

// PointerEvent is the normalized input record consumed by the engine.
// Buttons carries the browser-style button bitmask on move events so the
// tracker can self-correct a stuck down flag. Target, when present, is the
// element the gesture started on; it is only inspected on PointerDown.
type PointerEvent struct {
	Kind    EventKind
	X, Y    float64
	Buttons int
	Target  Target
}

// Target is a minimal view of an event target's ancestor chain, enough to
// decide whether a press belongs to the page's real UI. Implementations wrap
// DOM nodes; tests use fakes.
type Target interface {
	Tag() string                  // lower-case tag name
	Role() string                 // ARIA role, "" if none
	Attr(name string) (string, bool)
	Parent() Target // nil at the root
}

// sentinel parks the cursor far outside any surface so field and spawn
// logic deactivate naturally instead of needing an enabled flag.
const sentinel = -1e6

var interactiveTags = map[string]struct{}{
	"a": {}, "button": {}, "input": {}, "select": {}, "textarea": {},
	"label": {}, "nav": {}, "summary": {},
}

var interactiveRoles = map[string]struct{}{
	"button": {}, "link": {}, "menuitem": {}, "tab": {}, "switch": {},
}

// Tracker folds raw pointer events into one stable cursor model. All input
// mutation goes through here so the frame step reads a single consistent
// snapshot.
type Tracker struct {
	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64
	Down         bool

	LastSpawnX, LastSpawnY float64

	smoothing float64
}

func newTracker(smoothing float64) *Tracker {
	return &Tracker{
		X: sentinel, Y: sentinel,
		PrevX: sentinel, PrevY: sentinel,
		LastSpawnX: sentinel, LastSpawnY: sentinel,
		smoothing: smoothing,
	}
}

// Handle applies one event to the cursor model. It returns true when the
// event both pressed the pointer and should spawn, i.e. the press did not
// land on an interactive page element.
func (t *Tracker) Handle(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		t.X, t.Y = ev.X, ev.Y
		if IsInteractive(ev.Target) {
			// The page's own UI owns this gesture.
			return false
		}
		t.Down = true
		t.LastSpawnX, t.LastSpawnY = ev.X, ev.Y
		return true
	case PointerMove:
		t.X, t.Y = ev.X, ev.Y
		// A missed mouseup (context menu, drag out of the window) would
		// otherwise leave the generator stuck on forever.
		if t.Down && ev.Buttons == 0 {
			t.Down = false
		}
	case PointerUp:
		t.X, t.Y = ev.X, ev.Y
		t.Down = false
	case PointerLeave:
		t.Down = false
		t.X, t.Y = sentinel, sentinel
	}
	return false
}

// BeginFrame advances the smoothed velocity estimate. Called exactly once
// per frame, before forces are applied.
func (t *Tracker) BeginFrame() {
	dx, dy := 0.0, 0.0
	if t.PrevX > sentinel && t.X > sentinel {
		dx = t.X - t.PrevX
		dy = t.Y - t.PrevY
	}
	t.VX += (dx - t.VX) * t.smoothing
	t.VY += (dy - t.VY) * t.smoothing
	t.PrevX, t.PrevY = t.X, t.Y
}

// OnSurface reports whether the cursor is currently inside the surface.
func (t *Tracker) OnSurface(w, h float64) bool {
	return t.X >= 0 && t.Y >= 0 && t.X <= w && t.Y <= h
}

// IsInteractive walks the ancestor chain looking for tags, ARIA roles and
// marker attributes that mark real page UI.
func IsInteractive(target Target) bool {
	for n := target; n != nil; n = n.Parent() {
		if _, ok := interactiveTags[n.Tag()]; ok {
			return true
		}
		if _, ok := interactiveRoles[n.Role()]; ok {
			return true
		}
		if _, ok := n.Attr("data-no-sparks"); ok {
			return true
		}
		if _, ok := n.Attr("onclick"); ok {
			return true
		}
	}
	return false
}
