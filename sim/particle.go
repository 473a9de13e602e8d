package sim

// Particle is the single domain entity: one cube-shaped visual element with
// physical state. Records are owned exclusively by the Store and mutated in
// place by the physics step; nothing outside the store may hold one across
// frames.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Size float64 // half-extent of the cube, within [MinSize, MaxSize]
	Mass float64 // derived from Size, heavier cubes win collisions

	Faces FaceColors

	Life  float64 // (0,1] while active
	Decay float64 // per-frame life loss, raised while grounded

	Grounded bool

	Rot    float64 // cosmetic top-face shear
	RotVel float64

	// Scale eases toward 1 after spawn and toward 0 near death so cubes
	// appear and disappear smoothly.
	Scale float64

	active bool
}

// Active reports whether the particle is currently part of the live set.
func (p *Particle) Active() bool { return p.active }

func (p *Particle) reset() {
	*p = Particle{}
}
