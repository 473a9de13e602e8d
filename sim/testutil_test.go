package sim

// fakeSurface is an in-memory Surface that records draw calls. It also
// implements AttrSource so option precedence can be exercised.
type fakeSurface struct {
	w, h  float64
	attrs map[string]string

	clears  int
	flushes int
	polys   int
}

func newFakeSurface(w, h float64) *fakeSurface {
	return &fakeSurface{w: w, h: h}
}

func (f *fakeSurface) Size() (float64, float64) { return f.w, f.h }

func (f *fakeSurface) Clear() { f.clears++ }

func (f *fakeSurface) FillPolygon(pts []Point, col RGB, alpha float64) { f.polys++ }

func (f *fakeSurface) Flush() { f.flushes++ }

func (f *fakeSurface) Attr(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

// fakeNode builds ancestor chains for the interactive-target filter.
type fakeNode struct {
	tag    string
	role   string
	attrs  map[string]string
	parent *fakeNode
}

func (n *fakeNode) Tag() string  { return n.tag }
func (n *fakeNode) Role() string { return n.role }

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) Parent() Target {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func testEngine(w, h float64, opts Options) (*Engine, *fakeSurface) {
	surface := newFakeSurface(w, h)
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	return NewEngine(surface, opts), surface
}
