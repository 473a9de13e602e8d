package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeFixture(max int) (*Store, []FaceColors, *rand.Rand, *Options) {
	o := Options{MaxParticles: max}.withDefaults()
	return newStore(o.MaxParticles), buildPalette(nil), rand.New(rand.NewSource(7)), &o
}

func TestStorePoolConservation(t *testing.T) {
	s, palette, rng, o := storeFixture(32)

	// Churn the pool: fill, drain in odd patterns, refill.
	for cycle := 0; cycle < 50; cycle++ {
		for i := 0; i < 10; i++ {
			s.Spawn(float64(i), float64(i), palette[0], rng, o)
		}
		for s.Len() > rng.Intn(8) {
			s.retireAt(rng.Intn(s.Len()))
		}

		assert.Equal(t, s.Allocated(), s.Len()+s.Pooled(),
			"every record ever allocated is either active or pooled")
	}

	// No record may be referenced by both sets at once.
	seen := map[*Particle]bool{}
	for _, p := range s.active {
		seen[p] = true
	}
	for _, p := range s.free {
		require.False(t, seen[p], "record in both active set and pool")
	}
}

func TestStoreBoundedPopulation(t *testing.T) {
	s, palette, rng, o := storeFixture(25)

	// Burst-rate abuse: far more spawn attempts than capacity.
	for i := 0; i < 10000; i++ {
		s.Spawn(rng.Float64()*100, rng.Float64()*100, palette[0], rng, o)
		assert.LessOrEqual(t, s.Len(), 25)
	}
	assert.Equal(t, 25, s.Len())
	assert.Equal(t, 25, s.Allocated(), "saturated store must not keep allocating")
}

func TestStoreSpawnSizeBounds(t *testing.T) {
	s, palette, rng, o := storeFixture(64)
	for i := 0; i < 64; i++ {
		p := s.Spawn(0, 0, palette[0], rng, o)
		require.NotNil(t, p)
		assert.GreaterOrEqual(t, p.Size, o.MinSize)
		assert.LessOrEqual(t, p.Size, o.MaxSize)
		assert.Greater(t, p.Mass, 0.0)
		assert.Equal(t, 1.0, p.Life)
	}
}

func TestSpawnBurstClusters(t *testing.T) {
	s, palette, rng, o := storeFixture(64)

	n := s.SpawnBurst(100, 100, o.BurstCount, palette, rng, o)
	assert.Equal(t, o.BurstCount, n)
	assert.Equal(t, o.BurstCount, s.Len())

	s.ForEachActive(func(p *Particle) {
		dx, dy := p.X-100, p.Y-100
		assert.LessOrEqual(t, dx*dx+dy*dy, 5.0*5.0,
			"burst particles cluster around the click point")
	})
}

func TestSpawnTrailSpacing(t *testing.T) {
	s, palette, rng, o := storeFixture(256)

	n, traveled := s.SpawnTrail(0, 0, 500, 0, o.TrailSpacing, 0, 0, palette, rng, o)
	assert.Equal(t, int(500/o.TrailSpacing), n)
	assert.InDelta(t, float64(n)*o.TrailSpacing, traveled, 1e-9)

	// Holding still never spawns.
	n, _ = s.SpawnTrail(10, 10, 12, 10, o.TrailSpacing, 0, 0, palette, rng, o)
	assert.Zero(t, n)
}

func TestSpawnTrailCapped(t *testing.T) {
	s, palette, rng, o := storeFixture(5)

	n, _ := s.SpawnTrail(0, 0, 5000, 0, o.TrailSpacing, 0, 0, palette, rng, o)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, s.Len())
}
