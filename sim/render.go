package sim

import (
	"math"
	"sort"
)

// render clears the surface and paints every active particle as the three
// visible faces of an isometric cube. Smaller cubes are drawn first, a
// cheap painter's trick that reads as depth.
func (e *Engine) render() {
	e.surface.Clear()

	e.drawOrder = e.drawOrder[:0]
	e.drawOrder = append(e.drawOrder, e.store.active...)
	sort.Slice(e.drawOrder, func(i, j int) bool {
		return e.drawOrder[i].Size < e.drawOrder[j].Size
	})

	var pts [4]Point
	for _, p := range e.drawOrder {
		e.drawCube(p, pts[:])
	}
	e.surface.Flush()
}

// drawCube paints one cube at the particle's position. Face geometry, with
// s the scaled half-extent and the y axis pointing down:
//
//	        top
//	      /     \
//	  left ----- right
//	      \     /
//	       bottom tip
//
// The rotation only shears the top-face apex, which is enough wobble for a
// decorative effect without real 3D math.
func (e *Engine) drawCube(p *Particle, pts []Point) {
	s := p.Size * p.Scale
	if s < 0.5 {
		return
	}
	half := s * 0.5
	shear := math.Sin(p.Rot) * half * 0.35

	alpha := easeLife(p.Life) * math.Min(p.Scale, 1)
	if alpha <= 0.01 {
		return
	}

	x, y := p.X, p.Y

	// Top face: a diamond above the body.
	pts[0] = Point{X: x + shear, Y: y - s}
	pts[1] = Point{X: x + s, Y: y - half}
	pts[2] = Point{X: x, Y: y}
	pts[3] = Point{X: x - s, Y: y - half}
	e.surface.FillPolygon(pts, p.Faces.Top, alpha)

	// Left face.
	pts[0] = Point{X: x - s, Y: y - half}
	pts[1] = Point{X: x, Y: y}
	pts[2] = Point{X: x, Y: y + s}
	pts[3] = Point{X: x - s, Y: y + half}
	e.surface.FillPolygon(pts, p.Faces.Left, alpha)

	// Right face.
	pts[0] = Point{X: x + s, Y: y - half}
	pts[1] = Point{X: x, Y: y}
	pts[2] = Point{X: x, Y: y + s}
	pts[3] = Point{X: x + s, Y: y + half}
	e.surface.FillPolygon(pts, p.Faces.Right, alpha)
}

// easeLife maps life to alpha with a soft tail so particles do not pop out.
func easeLife(life float64) float64 {
	if life >= 1 {
		return 1
	}
	if life <= 0 {
		return 0
	}
	return life * (2 - life)
}
