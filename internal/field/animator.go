// Package field animates a population of drifting dots and joins the ones
// that are close to each other and to the pointer with thin lines.
package field

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Animator owns the particles of one surface and redraws them on every tick
// of its scheduler. Apart from the pointer handlers, an Animator is driven
// from a single goroutine.
type Animator struct {
	opts Options
	rng  *rand.Rand

	ctx           Context
	width, height float64
	particles     []Particle
	pointer       Pointer
	ticks         uint64
}

func New(opts Options) (*Animator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	def := DefaultStyle()
	if opts.Style.Fill == nil {
		opts.Style.Fill = def.Fill
	}
	if opts.Style.Stroke == nil {
		opts.Style.Stroke = def.Stroke
	}

	rng := opts.Rand
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32|1))
	}

	return &Animator{
		opts: opts,
		rng:  rng,
	}, nil
}

// Initialize sizes the surface to its container, prepares the drawing style,
// places the pointer at 30% of the surface and starts the redraw cycle.
// Failing to get a drawing context is fatal for the animation.
func (a *Animator) Initialize(s Surface, sched Scheduler) error {
	w, h := s.ContainerSize()
	s.Resize(w, h)

	ctx, err := s.Context()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoContext, err)
	}
	if ctx == nil {
		return ErrNoContext
	}

	a.ctx = ctx
	a.width, a.height = float64(w), float64(h)
	s.Show()

	ctx.SetStyle(a.opts.Style)
	a.pointer.Move(30*a.width/100, 30*a.height/100)

	sched.Every(a.opts.Interval(), a.RedrawCycle)
	return nil
}

// Spawn returns a new particle somewhere on the surface. It does not add the
// particle to the animator.
func (a *Animator) Spawn() Particle {
	return spawn(a.rng, a.width, a.height)
}

// RedrawCycle clears the surface, spawns and draws the dots, joins
// neighbours with lines and then advances the physics by one tick.
func (a *Animator) RedrawCycle() {
	if a.ctx == nil {
		return
	}
	n := a.opts.Count

	a.ctx.Clear()

	spawnCount := n
	if a.opts.Growth == GrowthCapped {
		spawnCount = max(n-len(a.particles), 0)
	}
	for range spawnCount {
		a.particles = append(a.particles, a.Spawn())
	}
	for i := range n {
		p := a.particles[i]
		a.ctx.FillCircle(p.X, p.Y, p.Radius)
	}

	ptr := a.pointer.Position()
	for i := range n {
		start := 0
		if a.opts.Pairs == PairsUnique {
			start = i + 1
		}
		for j := start; j < n; j++ {
			pi, pj := a.particles[i], a.particles[j]
			if a.Connected(pi, pj, ptr) {
				a.ctx.StrokeLine(pi.X, pi.Y, pj.X, pj.Y)
			}
		}
	}

	correctX := a.opts.Reflect == ReflectCorrected
	for i := range n {
		a.particles[i].step(a.width, a.height, correctX)
	}

	a.ticks++
}

// Connected reports whether a line should join p and q: they must be closer
// than the proximity threshold on both axes, and each must be within the
// influence radius of the pointer on both axes.
func (a *Animator) Connected(p, q Particle, ptr Point) bool {
	return within(p.X-q.X, p.Y-q.Y, a.opts.Distance) &&
		within(p.X-ptr.X, p.Y-ptr.Y, a.opts.Influence) &&
		within(q.X-ptr.X, q.Y-ptr.Y, a.opts.Influence)
}

func within(dx, dy, limit float64) bool {
	return math.Abs(dx) < limit && math.Abs(dy) < limit
}

func (a *Animator) OnPointerMove(x, y float64) {
	a.pointer.Move(x, y)
}

// OnPointerLeave recenters the pointer.
func (a *Animator) OnPointerLeave() {
	a.pointer.Reset(a.width, a.height)
}

// Particles returns a copy of the whole collection, including particles that
// are no longer drawn.
func (a *Animator) Particles() []Particle {
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}

// Len is the size of the whole collection.
func (a *Animator) Len() int {
	return len(a.particles)
}

func (a *Animator) Pointer() Point {
	return a.pointer.Position()
}

func (a *Animator) Size() (width, height float64) {
	return a.width, a.height
}

// Ticks is the number of completed redraw cycles.
func (a *Animator) Ticks() uint64 {
	return a.ticks
}

func (a *Animator) Options() Options {
	return a.opts
}
