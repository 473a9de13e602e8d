package terminal

import (
	"math"

	"github.com/nsf/termbox-go"

	"github.com/finbright/sparkfield/sim"
)

// Surface renders the simulation into a termbox cell grid. One simulation
// unit maps to one cell, so terminal profiles run with much smaller particle
// sizes than a pixel canvas would.
type Surface struct {
	backbuf  []termbox.Cell
	bbw, bbh int
}

func newSurface() *Surface {
	s := &Surface{}
	s.realloc(termbox.Size())
	return s
}

func (s *Surface) realloc(w, h int) {
	s.bbw, s.bbh = w, h
	s.backbuf = make([]termbox.Cell, w*h)
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.bbw), float64(s.bbh)
}

func (s *Surface) Clear() {
	for i := range s.backbuf {
		s.backbuf[i] = termbox.Cell{}
	}
}

// FillPolygon scanline-fills a convex polygon into the backbuffer. Alpha is
// approximated by dimming the color toward the terminal background.
func (s *Surface) FillPolygon(pts []sim.Point, col sim.RGB, alpha float64) {
	if len(pts) < 3 || alpha <= 0 {
		return
	}
	attr := rgbAttr(dim(col, alpha))
	cell := termbox.Cell{Ch: '█', Fg: attr}

	minY := math.Inf(1)
	maxY := math.Inf(-1)
	for _, p := range pts {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= s.bbh {
		y1 = s.bbh - 1
	}

	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		left := math.Inf(1)
		right := math.Inf(-1)
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= cy) == (b.Y <= cy) {
				continue
			}
			x := a.X + (cy-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			left = math.Min(left, x)
			right = math.Max(right, x)
		}
		if left > right {
			continue
		}
		x0 := int(math.Floor(left))
		x1 := int(math.Ceil(right)) - 1
		if x0 < 0 {
			x0 = 0
		}
		if x1 >= s.bbw {
			x1 = s.bbw - 1
		}
		for x := x0; x <= x1; x++ {
			s.backbuf[y*s.bbw+x] = cell
		}
	}
}

func (s *Surface) Flush() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	copy(termbox.CellBuffer(), s.backbuf)
	termbox.Flush()
}

// dim scales a color toward black, the closest thing a terminal has to
// alpha blending over a dark page.
func dim(c sim.RGB, alpha float64) sim.RGB {
	if alpha > 1 {
		alpha = 1
	}
	return sim.RGB{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
	}
}

// rgbAttr maps an RGB color onto the xterm 6x6x6 color cube. termbox's
// Output256 mode addresses palette index n as Attribute(n+1).
func rgbAttr(c sim.RGB) termbox.Attribute {
	r := int(c.R) * 6 / 256
	g := int(c.G) * 6 / 256
	b := int(c.B) * 6 / 256
	return termbox.Attribute(16 + 36*r + 6*g + b + 1)
}
