package sim

import "math"

const (
	groundedDecayMult = 3.0  // grounded particles fade out faster
	settleThreshold   = 0.35 // micro-bounces below this speed are zeroed
	restitution       = 0.65 // pairwise collision energy retention
	dustImpulse       = 6.0  // impulse needed before a collision sheds dust
	scaleEase         = 0.25
	fadeOutLife       = 0.2 // life below which Scale eases toward zero
)

// step runs aging, forces, integration and boundary handling over the full
// active set, retiring dead particles as it goes.
func (e *Engine) step(w, h float64) {
	t := e.tracker
	fielding := !t.Down && t.OnSurface(w, h)
	cursorSpeed := math.Hypot(t.VX, t.VY)

	s := e.store
	for i := 0; i < len(s.active); {
		p := s.active[i]

		// Aging.
		decay := p.Decay
		if p.Grounded {
			decay *= groundedDecayMult
		}
		p.Life -= decay
		if p.Life <= 0 {
			s.retireAt(i)
			continue
		}

		// Appear/disappear easing.
		target := 1.0
		if p.Life < fadeOutLife {
			target = 0
		}
		p.Scale += (target - p.Scale) * scaleEase

		// Gravity scales with mass so big cubes drop with weight.
		p.VY += e.opt.Gravity * p.Mass

		// Air friction.
		p.VX *= e.opt.Friction
		p.VY *= e.opt.Friction

		// Cursor force field, only while the pointer is up. While pressed
		// the cursor is a generator and must not fight its own spawns.
		if fielding {
			e.applyField(p, cursorSpeed)
		}

		e.capVelocity(p)

		// Integration.
		p.X += p.VX
		p.Y += p.VY
		p.Rot += p.RotVel

		e.bounce(p, w, h)

		i++
	}
}

// applyField pushes one particle away from the cursor. The smoothstep
// falloff has zero slope at the field edge, so entering the radius never
// shows a kink.
func (e *Engine) applyField(p *Particle, cursorSpeed float64) {
	t := e.tracker
	dx := p.X - t.X
	dy := p.Y - t.Y
	d := math.Hypot(dx, dy)
	if d >= e.opt.CursorRadius || d == 0 {
		return
	}
	f := 1 - d/e.opt.CursorRadius
	f = f * f * (3 - 2*f) // smoothstep
	strength := e.opt.CursorForce * f * (0.4 + math.Min(cursorSpeed*0.08, 1.2))
	p.VX += dx / d * strength
	p.VY += dy / d * strength
	// Momentum transfer: fast cursor motion drags nearby particles along.
	p.VX += t.VX * 0.15 * f
	p.VY += t.VY * 0.15 * f
}

func (e *Engine) capVelocity(p *Particle) {
	max := e.opt.MaxVelocity
	speed := math.Hypot(p.VX, p.VY)
	if speed > max {
		scale := max / speed
		p.VX *= scale
		p.VY *= scale
	}
}

// bounce reflects velocity at each wall with energy loss and clamps the
// position back inside. Only floor contact grounds a particle.
func (e *Engine) bounce(p *Particle, w, h float64) {
	r := p.Size * p.Scale
	if r < 1 {
		r = 1
	}
	bounciness := e.opt.Bounciness

	if p.X < r {
		p.X = r
		p.VX = -p.VX * bounciness
	} else if p.X > w-r {
		p.X = w - r
		p.VX = -p.VX * bounciness
	}

	if p.Y < r {
		p.Y = r
		p.VY = -p.VY * bounciness
	}

	p.Grounded = false
	if p.Y >= h-r {
		p.Y = h - r
		p.VY = -p.VY * bounciness
		if math.Abs(p.VY) < settleThreshold {
			p.VY = 0
		}
		p.VX *= e.opt.GroundFriction
		if math.Abs(p.VX) < settleThreshold*0.5 {
			p.VX = 0
		}
		p.Grounded = true
	}
}

// collide runs the O(n^2) pairwise pass: positional separation proportional
// to mass, then momentum exchange along the collision normal. At the target
// populations this is cheap enough when throttled to every few frames.
// Separation re-clamps against the walls so containment survives the pass.
func (e *Engine) collide(w, h float64) {
	active := e.store.active
	for i := 0; i < len(active); i++ {
		p := active[i]
		for j := i + 1; j < len(active); j++ {
			q := active[j]
			dx := q.X - p.X
			dy := q.Y - p.Y
			minDist := (p.Size*p.Scale + q.Size*q.Scale) * 0.6
			distSq := dx*dx + dy*dy
			if distSq >= minDist*minDist || distSq == 0 {
				continue
			}
			dist := math.Sqrt(distSq)
			nx := dx / dist
			ny := dy / dist

			// Separate proportionally to the other body's mass share.
			overlap := minDist - dist
			total := p.Mass + q.Mass
			p.X -= nx * overlap * (q.Mass / total)
			p.Y -= ny * overlap * (q.Mass / total)
			q.X += nx * overlap * (p.Mass / total)
			q.Y += ny * overlap * (p.Mass / total)
			clampPosition(p, w, h)
			clampPosition(q, w, h)

			// Relative velocity along the normal; skip pairs already
			// separating.
			rvn := (q.VX-p.VX)*nx + (q.VY-p.VY)*ny
			if rvn >= 0 {
				continue
			}
			imp := -(1 + restitution) * rvn / (1/p.Mass + 1/q.Mass)
			p.VX -= imp / p.Mass * nx
			p.VY -= imp / p.Mass * ny
			q.VX += imp / q.Mass * nx
			q.VY += imp / q.Mass * ny

			// Hard hits shed dust, but only while the user is actively
			// generating.
			if e.tracker.Down && math.Abs(imp) > dustImpulse {
				e.spawnDust((p.X+q.X)/2, (p.Y+q.Y)/2)
			}
		}
	}
}

func clampPosition(p *Particle, w, h float64) {
	r := p.Size * p.Scale
	if r < 1 {
		r = 1
	}
	if p.X < r {
		p.X = r
	} else if p.X > w-r {
		p.X = w - r
	}
	if p.Y < r {
		p.Y = r
	} else if p.Y > h-r {
		p.Y = h - r
	}
}

func (e *Engine) spawnDust(x, y float64) {
	for i := 0; i < 2; i++ {
		d := e.store.Spawn(x, y, pick(e.palette, e.rng), e.rng, &e.opt)
		if d == nil {
			return
		}
		d.Size = e.opt.MinSize
		d.Mass = d.Size * d.Size * 0.02
		d.VX = (e.rng.Float64() - 0.5) * 4
		d.VY = -e.rng.Float64() * 3
		d.Decay *= 2
	}
}
