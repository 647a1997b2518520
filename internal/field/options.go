package field

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	DefaultCount     = 50
	DefaultDistance  = 80.0
	DefaultInfluence = 150.0
	DefaultRate      = 30
)

// Growth selects what happens to the particle collection on each redraw.
type Growth int

const (
	// GrowthCapped spawns particles only until the collection holds Count.
	GrowthCapped Growth = iota
	// GrowthAccumulate appends Count fresh particles every redraw and never
	// removes any. Only the first Count are drawn and moved.
	GrowthAccumulate
)

// Pairs selects how particle pairs are enumerated when drawing lines.
type Pairs int

const (
	// PairsAll visits every (i, j) in [0,Count) x [0,Count), self pairs and
	// both orderings included.
	PairsAll Pairs = iota
	// PairsUnique visits each unordered pair once (i < j).
	PairsUnique
)

// Reflect selects the velocity component reversed when a particle leaves the
// surface through a side edge.
type Reflect int

const (
	// ReflectOriginal reverses vy on a side edge.
	ReflectOriginal Reflect = iota
	// ReflectCorrected reverses vx on a side edge.
	ReflectCorrected
)

var (
	growthNames  = map[string]Growth{"capped": GrowthCapped, "accumulate": GrowthAccumulate}
	pairsNames   = map[string]Pairs{"all": PairsAll, "unique": PairsUnique}
	reflectNames = map[string]Reflect{"original": ReflectOriginal, "corrected": ReflectCorrected}
)

func ParseGrowth(s string) (Growth, error) {
	if g, ok := growthNames[s]; ok {
		return g, nil
	}
	return 0, fmt.Errorf("%w: unknown growth mode %q", ErrInvalidOptions, s)
}

func ParsePairs(s string) (Pairs, error) {
	if p, ok := pairsNames[s]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: unknown pair mode %q", ErrInvalidOptions, s)
}

func ParseReflect(s string) (Reflect, error) {
	if r, ok := reflectNames[s]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: unknown reflect mode %q", ErrInvalidOptions, s)
}

// Options configures an Animator.
type Options struct {
	Count     int
	Distance  float64 // Proximity threshold for lines between particles
	Influence float64 // Pointer-influence radius
	Rate      int     // Redraws per second
	Style     Style
	Growth    Growth
	Pairs     Pairs
	Reflect   Reflect

	// Rand is the random source for spawning. A time-seeded source is used
	// when nil.
	Rand *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		Count:     DefaultCount,
		Distance:  DefaultDistance,
		Influence: DefaultInfluence,
		Rate:      DefaultRate,
		Style:     DefaultStyle(),
	}
}

// Interval is the time between two redraws.
func (o Options) Interval() time.Duration {
	return time.Second / time.Duration(o.Rate)
}

func (o Options) validate() error {
	switch {
	case o.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidOptions, o.Count)
	case o.Rate <= 0:
		return fmt.Errorf("%w: rate must be positive, got %d", ErrInvalidOptions, o.Rate)
	case o.Distance < 0:
		return fmt.Errorf("%w: distance must not be negative", ErrInvalidOptions)
	case o.Influence < 0:
		return fmt.Errorf("%w: influence radius must not be negative", ErrInvalidOptions)
	}
	return nil
}
