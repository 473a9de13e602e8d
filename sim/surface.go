package sim

// RGB is an 8-bit color as consumed by the drawing surfaces.
type RGB struct {
	R, G, B uint8
}

// Point is a vertex in surface coordinates.
type Point struct {
	X, Y float64
}

// Surface is the drawing target of the renderer. The engine redraws the
// whole surface every frame, so implementations are free to clear on resize.
//
// A zero-sized surface disables the engine (see Start).
type Surface interface {
	// Size reports the current drawable area in surface units.
	Size() (w, h float64)
	// Clear erases the previous frame.
	Clear()
	// FillPolygon paints a filled convex polygon with the given alpha in [0,1].
	FillPolygon(pts []Point, col RGB, alpha float64)
	// Flush presents the finished frame.
	Flush()
}

// AttrSource is an optional interface for surfaces that carry declarative
// configuration, such as data-* attributes on a host canvas element.
// Explicit Options fields take precedence over attribute values.
type AttrSource interface {
	Attr(name string) (string, bool)
}
