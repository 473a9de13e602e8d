package sim

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Engine is one simulation instance: surface, input tracker, particle store
// and the per-frame physics/render step. It holds no global state, so any
// number of instances can coexist.
//
// The engine itself is not synchronized: HandleEvent, Tick and SetVisible
// must be called from a single goroutine. Start wraps an engine in a
// self-driving loop that serializes them for callers on other goroutines.
type Engine struct {
	surface Surface
	opt     Options
	palette []FaceColors
	store   *Store
	tracker *Tracker
	rng     *rand.Rand

	frame   uint64
	visible bool

	// scratch buffer for painter-ordered rendering, reused across frames
	drawOrder []*Particle
}

// NewEngine builds an engine against the given surface. Option precedence:
// explicit field > surface data-* attribute > built-in default. A nil
// surface yields a nil engine; Start turns that into an inert handle.
func NewEngine(surface Surface, opts Options) *Engine {
	if surface == nil {
		return nil
	}
	if src, ok := surface.(AttrSource); ok {
		opts = opts.mergeAttrs(src)
	}
	opts = opts.withDefaults()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		surface: surface,
		opt:     opts,
		palette: buildPalette(opts.Colors),
		store:   newStore(opts.MaxParticles),
		tracker: newTracker(opts.Smoothing),
		rng:     rand.New(rand.NewSource(seed)),
		visible: true,
	}
}

// Frame returns the number of frames executed so far.
func (e *Engine) Frame() uint64 { return e.frame }

// ActiveCount returns the live particle population.
func (e *Engine) ActiveCount() int { return e.store.Len() }

// Store exposes the particle store for drivers and tests.
func (e *Engine) Store() *Store { return e.store }

// Tracker exposes the cursor model for drivers and tests.
func (e *Engine) Tracker() *Tracker { return e.tracker }

// Options returns the normalized configuration the engine runs with.
func (e *Engine) Options() Options { return e.opt }

// SetVisible pauses or resumes the simulation. While hidden, Tick is a
// no-op: no frames, no spawns, no catch-up on resume. Because the step is
// frame-counted rather than wall-clock scaled, resuming cannot produce a
// large simulated jump.
func (e *Engine) SetVisible(v bool) {
	e.visible = v
}

// HandleEvent feeds one pointer event through the tracker and runs the
// spawn policies synchronously, as required for pool bookkeeping.
func (e *Engine) HandleEvent(ev PointerEvent) {
	pressed := e.tracker.Handle(ev)
	if pressed {
		e.store.SpawnBurst(ev.X, ev.Y, e.opt.BurstCount, e.palette, e.rng, &e.opt)
		return
	}
	if ev.Kind == PointerMove && e.tracker.Down {
		t := e.tracker
		n, traveled := e.store.SpawnTrail(
			t.LastSpawnX, t.LastSpawnY, ev.X, ev.Y,
			e.opt.TrailSpacing, t.VX, t.VY,
			e.palette, e.rng, &e.opt,
		)
		if n > 0 || traveled > 0 {
			dist := traveled
			dx := ev.X - t.LastSpawnX
			dy := ev.Y - t.LastSpawnY
			total := math.Hypot(dx, dy)
			if total > 0 {
				t.LastSpawnX += dx / total * dist
				t.LastSpawnY += dy / total * dist
			}
		}
	}
}

// Tick runs one frame: input smoothing, aging, forces, integration,
// boundaries, throttled pairwise collisions, then the render pass. The full
// active set is processed before the frame ends.
func (e *Engine) Tick() {
	if !e.visible {
		return
	}
	w, h := e.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	e.frame++
	e.tracker.BeginFrame()
	e.step(w, h)
	if e.frame%uint64(e.opt.CollisionInterval) == 0 {
		e.collide(w, h)
	}
	e.render()
}

// Close clears the particle store and pool. The engine must not be ticked
// afterwards.
func (e *Engine) Close() {
	e.store.Clear()
}

// Handle controls a running simulation. Stop is idempotent and safe from
// any goroutine.
type Handle struct {
	eng    *Engine
	events chan PointerEvent
	vis    chan bool
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Inert reports whether the handle drives a real simulation. Handles over a
// missing or zero-sized surface are inert.
func (h *Handle) Inert() bool { return h.eng == nil }

// Dispatch forwards a pointer event to the simulation loop. Events are
// dropped, never blocked on, when the loop is saturated or stopped.
func (h *Handle) Dispatch(ev PointerEvent) {
	if h.eng == nil {
		return
	}
	select {
	case h.events <- ev:
	case <-h.stop:
	default:
	}
}

// SetVisible pauses or resumes the loop's ticking.
func (h *Handle) SetVisible(v bool) {
	if h.eng == nil {
		return
	}
	select {
	case h.vis <- v:
	case <-h.stop:
	}
}

// Stop halts the loop, waits for it to exit and releases the particle pool.
// Calling it again is a no-op.
func (h *Handle) Stop() {
	if h.eng == nil {
		return
	}
	h.once.Do(func() {
		close(h.stop)
		<-h.done
		h.eng.Close()
	})
}

// Start runs a self-driving simulation at the display-typical 60 frames per
// second. A missing or zero-sized surface produces an inert handle whose
// Stop does nothing; initialization never fails.
func Start(surface Surface, opts Options) *Handle {
	if surface == nil {
		return &Handle{}
	}
	if w, h := surface.Size(); w <= 0 || h <= 0 {
		return &Handle{}
	}
	eng := NewEngine(surface, opts)
	h := &Handle{
		eng:    eng,
		events: make(chan PointerEvent, 256),
		vis:    make(chan bool),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Handle) loop() {
	defer close(h.done)
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case ev := <-h.events:
			h.eng.HandleEvent(ev)
		case v := <-h.vis:
			h.eng.SetVisible(v)
			if !v {
				h.eng.HandleEvent(PointerEvent{Kind: PointerLeave})
			}
		case <-ticker.C:
			h.eng.Tick()
		}
	}
}
