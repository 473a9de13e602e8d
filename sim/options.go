package sim

import (
	"strconv"
	"strings"
)

// Options configures one simulation instance. The zero value of any field
// means "use the built-in default"; values are normalized once at engine
// construction and never mutated afterwards.
type Options struct {
	// MaxParticles caps the active population. Spawning stops while the cap
	// is reached and resumes as particles decay.
	MaxParticles int
	// Colors is the palette as hex strings ("#rrggbb"). Malformed entries
	// are dropped silently.
	Colors []string

	CursorRadius float64 // force-field influence radius
	CursorForce  float64 // force-field strength scale

	Gravity        float64 // per-frame downward acceleration scale
	Friction       float64 // air friction multiplier, <1 and close to 1
	Bounciness     float64 // velocity retained after a boundary bounce
	GroundFriction float64 // horizontal damping while grounded

	MinSize, MaxSize float64 // particle size bounds
	MaxVelocity      float64 // speed cap, prevents runaway collision energy

	BurstCount   int     // particles per click burst
	TrailSpacing float64 // minimum travel distance between trail spawns

	// CollisionInterval runs the O(n^2) pairwise pass every N frames.
	CollisionInterval int

	// Smoothing is the exponential factor for cursor velocity estimation.
	Smoothing float64

	// Seed makes spawn randomness reproducible when non-zero.
	Seed int64
}

const (
	defaultMaxParticles      = 180
	defaultCursorRadius      = 140.0
	defaultCursorForce       = 1.6
	defaultGravity           = 0.05
	defaultFriction          = 0.995
	defaultBounciness        = 0.55
	defaultGroundFriction    = 0.92
	defaultMinSize           = 6.0
	defaultMaxSize           = 16.0
	defaultMaxVelocity       = 18.0
	defaultBurstCount        = 6
	defaultTrailSpacing      = 24.0
	defaultCollisionInterval = 3
	defaultSmoothing         = 0.35
)

func (o Options) withDefaults() Options {
	if o.MaxParticles <= 0 {
		o.MaxParticles = defaultMaxParticles
	}
	if o.CursorRadius <= 0 {
		o.CursorRadius = defaultCursorRadius
	}
	if o.CursorForce <= 0 {
		o.CursorForce = defaultCursorForce
	}
	if o.Gravity <= 0 {
		o.Gravity = defaultGravity
	}
	if o.Friction <= 0 || o.Friction >= 1 {
		o.Friction = defaultFriction
	}
	if o.Bounciness <= 0 || o.Bounciness >= 1 {
		o.Bounciness = defaultBounciness
	}
	if o.GroundFriction <= 0 || o.GroundFriction >= 1 {
		o.GroundFriction = defaultGroundFriction
	}
	if o.MinSize <= 0 {
		o.MinSize = defaultMinSize
	}
	if o.MaxSize <= 0 {
		o.MaxSize = defaultMaxSize
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = o.MinSize
	}
	if o.MaxVelocity <= 0 {
		o.MaxVelocity = defaultMaxVelocity
	}
	if o.BurstCount <= 0 {
		o.BurstCount = defaultBurstCount
	}
	if o.TrailSpacing <= 0 {
		o.TrailSpacing = defaultTrailSpacing
	}
	if o.CollisionInterval <= 0 {
		o.CollisionInterval = defaultCollisionInterval
	}
	if o.Smoothing <= 0 || o.Smoothing >= 1 {
		o.Smoothing = defaultSmoothing
	}
	return o
}

// mergeAttrs fills unset Options fields from the surface's declarative
// attributes. Explicit fields win over attributes, attributes win over
// defaults. Attribute parse failures leave the field unset.
func (o Options) mergeAttrs(src AttrSource) Options {
	if src == nil {
		return o
	}
	if o.MaxParticles <= 0 {
		o.MaxParticles = attrInt(src, "data-max-particles")
	}
	if len(o.Colors) == 0 {
		if raw, ok := src.Attr("data-colors"); ok {
			for _, c := range strings.Split(raw, ",") {
				if c = strings.TrimSpace(c); c != "" {
					o.Colors = append(o.Colors, c)
				}
			}
		}
	}
	if o.CursorRadius <= 0 {
		o.CursorRadius = attrFloat(src, "data-cursor-radius")
	}
	if o.CursorForce <= 0 {
		o.CursorForce = attrFloat(src, "data-cursor-force")
	}
	if o.Gravity <= 0 {
		o.Gravity = attrFloat(src, "data-gravity")
	}
	if o.Friction <= 0 {
		o.Friction = attrFloat(src, "data-friction")
	}
	if o.Bounciness <= 0 {
		o.Bounciness = attrFloat(src, "data-bounciness")
	}
	return o
}

func attrInt(src AttrSource, name string) int {
	if raw, ok := src.Attr(name); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return v
		}
	}
	return 0
}

func attrFloat(src AttrSource, name string) float64 {
	if raw, ok := src.Attr(name); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return v
		}
	}
	return 0
}
