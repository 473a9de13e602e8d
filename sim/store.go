package sim

import (
	"math"
	"math/rand"
)

// Store owns every particle record. Retired records go onto a free list and
// are reused by the next spawn, so a running simulation allocates nothing
// per frame once the pool has warmed up.
type Store struct {
	active []*Particle
	free   []*Particle
	max    int

	allocated int // total records ever constructed, for pool accounting
}

func newStore(max int) *Store {
	return &Store{
		active: make([]*Particle, 0, max),
		free:   make([]*Particle, 0, max),
		max:    max,
	}
}

// Len returns the size of the active set.
func (s *Store) Len() int { return len(s.active) }

// Allocated returns the total number of records ever constructed.
func (s *Store) Allocated() int { return s.allocated }

// Pooled returns the size of the free list.
func (s *Store) Pooled() int { return len(s.free) }

// ForEachActive visits the live set in insertion order. The callback must
// not spawn or retire.
func (s *Store) ForEachActive(fn func(*Particle)) {
	for _, p := range s.active {
		fn(p)
	}
}

// Spawn activates a pooled record (or constructs one if the pool is empty)
// at the given position. Returns nil when the population cap is reached;
// that is the whole backpressure story, callers just stop emitting.
func (s *Store) Spawn(x, y float64, faces FaceColors, rng *rand.Rand, o *Options) *Particle {
	if len(s.active) >= s.max {
		return nil
	}
	var p *Particle
	if n := len(s.free); n > 0 {
		p = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		p = &Particle{}
		s.allocated++
	}
	size := o.MinSize + rng.Float64()*(o.MaxSize-o.MinSize)
	*p = Particle{
		X:      x,
		Y:      y,
		Size:   size,
		Mass:   size * size * 0.02,
		Faces:  faces,
		Life:   1,
		Decay:  0.004 + rng.Float64()*0.004,
		Rot:    rng.Float64() * 2 * math.Pi,
		RotVel: (rng.Float64() - 0.5) * 0.1,
		Scale:  0.2,
		active: true,
	}
	s.active = append(s.active, p)
	return p
}

// retireAt removes the active record at index i and returns it to the pool.
// Swap-remove keeps the pass O(1); visit order within a frame is not part of
// the contract.
func (s *Store) retireAt(i int) {
	p := s.active[i]
	last := len(s.active) - 1
	s.active[i] = s.active[last]
	s.active = s.active[:last]
	p.reset()
	s.free = append(s.free, p)
}

// Clear drops the whole live set and the pool. Used on engine teardown.
func (s *Store) Clear() {
	s.active = s.active[:0]
	s.free = s.free[:0]
}

// SpawnBurst emits a click burst: count particles distributed radially
// around (x, y) with outward velocity.
func (s *Store) SpawnBurst(x, y float64, count int, palette []FaceColors, rng *rand.Rand, o *Options) int {
	spawned := 0
	for i := 0; i < count; i++ {
		angle := (float64(i)/float64(count))*2*math.Pi + rng.Float64()*0.5
		speed := 1.5 + rng.Float64()*3
		p := s.Spawn(x+math.Cos(angle)*3, y+math.Sin(angle)*3, pick(palette, rng), rng, o)
		if p == nil {
			break
		}
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle)*speed - 1.5
		spawned++
	}
	return spawned
}

// SpawnTrail emits particles along the segment from (x0, y0) to (x1, y1),
// one per spacing interval, inheriting a fraction of the cursor velocity.
// Returns the spawn count and how far along the segment emission got, so the
// caller can advance its last-spawn anchor without losing the remainder.
func (s *Store) SpawnTrail(x0, y0, x1, y1, spacing, cvx, cvy float64, palette []FaceColors, rng *rand.Rand, o *Options) (int, float64) {
	dist := math.Hypot(x1-x0, y1-y0)
	if dist < spacing {
		return 0, 0
	}
	nx := (x1 - x0) / dist
	ny := (y1 - y0) / dist
	spawned := 0
	traveled := 0.0
	for d := spacing; d <= dist; d += spacing {
		p := s.Spawn(x0+nx*d, y0+ny*d, pick(palette, rng), rng, o)
		if p == nil {
			break
		}
		p.VX = cvx*0.4 + (rng.Float64()-0.5)*1.2
		p.VY = cvy*0.4 - rng.Float64()*1.5
		spawned++
		traveled = d
	}
	if spawned == 0 {
		// Cap reached before the first interval; consume the distance anyway
		// so a saturated store does not accumulate an ever-growing segment.
		traveled = dist
	}
	return spawned, traveled
}

func pick(palette []FaceColors, rng *rand.Rand) FaceColors {
	return palette[rng.Intn(len(palette))]
}
