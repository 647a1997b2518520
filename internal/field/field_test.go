package field

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct{ x1, y1, x2, y2 float64 }

// recordingSurface is a Surface and Context that records what is drawn.
type recordingSurface struct {
	containerW, containerH int
	width, height          int
	visible                bool
	contextErr             error

	style   Style
	clears  int
	circles []Particle
	lines   []line
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{containerW: w, containerH: h}
}

func (s *recordingSurface) ContainerSize() (int, int) { return s.containerW, s.containerH }
func (s *recordingSurface) Resize(w, h int)           { s.width, s.height = w, h }
func (s *recordingSurface) Show()                     { s.visible = true }

func (s *recordingSurface) Context() (Context, error) {
	if s.contextErr != nil {
		return nil, s.contextErr
	}
	return s, nil
}

func (s *recordingSurface) SetStyle(st Style) { s.style = st }

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = nil
	s.lines = nil
}

func (s *recordingSurface) FillCircle(x, y, r float64) {
	s.circles = append(s.circles, Particle{X: x, Y: y, Radius: r})
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2 float64) {
	s.lines = append(s.lines, line{x1, y1, x2, y2})
}

// manualScheduler keeps the task so tests can fire ticks themselves.
type manualScheduler struct {
	interval time.Duration
	task     func()
}

func (m *manualScheduler) Every(d time.Duration, task func()) {
	m.interval = d
	m.task = task
}

func (m *manualScheduler) tick(n int) {
	for range n {
		m.task()
	}
}

func seeded(opts Options) Options {
	opts.Rand = rand.New(rand.NewPCG(1, 2))
	return opts
}

func newStarted(t *testing.T, opts Options, w, h int) (*Animator, *recordingSurface, *manualScheduler) {
	t.Helper()
	a, err := New(seeded(opts))
	require.NoError(t, err)
	s := newRecordingSurface(w, h)
	sched := &manualScheduler{}
	require.NoError(t, a.Initialize(s, sched))
	return a, s, sched
}

func TestSpawnBounds(t *testing.T) {
	a, _, _ := newStarted(t, DefaultOptions(), 800, 600)

	for range 10000 {
		p := a.Spawn()
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 800.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 600.0)
		assert.GreaterOrEqual(t, p.VX, -0.5)
		assert.Less(t, p.VX, 0.5)
		assert.GreaterOrEqual(t, p.VY, -0.5)
		assert.Less(t, p.VY, 0.5)
		assert.GreaterOrEqual(t, p.Radius, 0.0)
		assert.Less(t, p.Radius, 1.0)
	}
}

func TestSpawnDoesNotAddParticles(t *testing.T) {
	a, _, _ := newStarted(t, DefaultOptions(), 800, 600)
	a.Spawn()
	assert.Empty(t, a.Particles())
}

func TestGrowth(t *testing.T) {
	tests := []struct {
		name   string
		growth Growth
		ticks  int
		want   int
	}{
		{"capped one tick", GrowthCapped, 1, 50},
		{"capped many ticks", GrowthCapped, 7, 50},
		{"accumulate one tick", GrowthAccumulate, 1, 50},
		{"accumulate many ticks", GrowthAccumulate, 7, 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Growth = tt.growth
			a, s, sched := newStarted(t, opts, 800, 600)

			sched.tick(tt.ticks)

			assert.Len(t, a.Particles(), tt.want)
			assert.Len(t, s.circles, opts.Count)
			assert.Equal(t, uint64(tt.ticks), a.Ticks())
		})
	}
}

func TestAccumulateKeepsFirstWindowMoving(t *testing.T) {
	opts := DefaultOptions()
	opts.Growth = GrowthAccumulate
	a, _, sched := newStarted(t, opts, 800, 600)

	sched.tick(1)
	first := a.Particles()
	sched.tick(1)
	after := a.Particles()

	assert.Equal(t, first[0].X+first[0].VX, after[0].X)

	// Particles beyond the first window are spawned but never moved.
	sched.tick(1)
	assert.Equal(t, after[50], a.Particles()[50])
	assert.Len(t, a.Particles(), 150)
}

func TestStepReflectsVertical(t *testing.T) {
	p := Particle{X: 10, Y: -1, VX: 0.2, VY: 0.3}
	p.step(800, 600, false)

	assert.Equal(t, -0.3, p.VY)
	assert.Equal(t, 0.2, p.VX)
	assert.InDelta(t, 10.2, p.X, 1e-9)
	assert.InDelta(t, -1.3, p.Y, 1e-9)
}

func TestStepSideEdge(t *testing.T) {
	tests := []struct {
		name     string
		correctX bool
		wantVX   float64
		wantVY   float64
	}{
		{"original flips vy", false, 0.2, -0.3},
		{"corrected flips vx", true, -0.2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{X: 801, Y: 100, VX: 0.2, VY: 0.3}
			p.step(800, 600, tt.correctX)
			assert.Equal(t, tt.wantVX, p.VX)
			assert.Equal(t, tt.wantVY, p.VY)
			assert.InDelta(t, 801+tt.wantVX, p.X, 1e-9)
		})
	}
}

func TestStepVerticalWinsOverSide(t *testing.T) {
	p := Particle{X: -5, Y: 700, VX: 0.2, VY: 0.3}
	p.step(800, 600, true)
	assert.Equal(t, 0.2, p.VX)
	assert.Equal(t, -0.3, p.VY)
}

func TestStepOnEdgeIsInBounds(t *testing.T) {
	p := Particle{X: 800, Y: 0, VX: 0.1, VY: -0.1}
	p.step(800, 600, true)
	assert.Equal(t, 0.1, p.VX)
	assert.Equal(t, -0.1, p.VY)
}

func TestPointer(t *testing.T) {
	a, _, _ := newStarted(t, DefaultOptions(), 800, 600)

	assert.Equal(t, Point{X: 240, Y: 180}, a.Pointer())

	a.OnPointerMove(12, 34)
	assert.Equal(t, Point{X: 12, Y: 34}, a.Pointer())

	a.OnPointerLeave()
	assert.Equal(t, Point{X: 400, Y: 300}, a.Pointer())

	a.OnPointerLeave()
	assert.Equal(t, Point{X: 400, Y: 300}, a.Pointer())
}

func TestConnected(t *testing.T) {
	a, err := New(DefaultOptions())
	require.NoError(t, err)

	origin := Point{}
	p := Particle{X: 0, Y: 0}

	assert.True(t, a.Connected(p, Particle{X: 50, Y: 50}, origin))
	assert.False(t, a.Connected(p, Particle{X: 500, Y: 500}, origin))

	// Exactly at the threshold is too far.
	assert.False(t, a.Connected(p, Particle{X: 80, Y: 0}, origin))
	// Close together but away from the pointer.
	assert.False(t, a.Connected(Particle{X: 300, Y: 300}, Particle{X: 310, Y: 310}, origin))
	// One end outside the influence radius.
	assert.False(t, a.Connected(Particle{X: 140, Y: 0}, Particle{X: 160, Y: 0}, origin))
	// Self pair near the pointer.
	assert.True(t, a.Connected(p, p, origin))
}

func TestLinePairs(t *testing.T) {
	place := func(a *Animator) {
		a.particles = []Particle{
			{X: 10, Y: 10},
			{X: 20, Y: 20},
			{X: 700, Y: 500},
		}
	}

	tests := []struct {
		name  string
		pairs Pairs
		want  int
	}{
		// (0,0) (0,1) (1,0) (1,1)
		{"all", PairsAll, 4},
		{"unique", PairsUnique, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Count = 3
			opts.Pairs = tt.pairs
			a, s, sched := newStarted(t, opts, 800, 600)
			place(a)
			a.OnPointerMove(0, 0)

			sched.tick(1)

			assert.Len(t, s.lines, tt.want)
		})
	}
}

func TestScenario(t *testing.T) {
	a, s, sched := newStarted(t, DefaultOptions(), 800, 600)

	assert.Equal(t, 800, s.width)
	assert.Equal(t, 600, s.height)
	assert.True(t, s.visible)
	assert.Equal(t, DefaultStyle(), s.style)
	assert.Equal(t, time.Second/30, sched.interval)

	sched.tick(1)

	particles := a.Particles()
	require.Len(t, particles, 50)
	assert.Equal(t, 1, s.clears)
	assert.Len(t, s.circles, 50)

	// One physics step moves a particle by less than half a pixel per axis.
	for _, p := range particles {
		assert.Greater(t, p.X, -0.5)
		assert.Less(t, p.X, 800.5)
		assert.Greater(t, p.Y, -0.5)
		assert.Less(t, p.Y, 600.5)
	}
}

func TestRedrawBeforeInitialize(t *testing.T) {
	a, err := New(DefaultOptions())
	require.NoError(t, err)

	a.RedrawCycle()
	assert.Empty(t, a.Particles())
	assert.Zero(t, a.Ticks())
}

func TestInitializeWithoutContext(t *testing.T) {
	a, err := New(DefaultOptions())
	require.NoError(t, err)

	s := newRecordingSurface(800, 600)
	s.contextErr = errors.New("canvas unsupported")
	sched := &manualScheduler{}

	err = a.Initialize(s, sched)
	require.ErrorIs(t, err, ErrNoContext)
	assert.Contains(t, err.Error(), "canvas unsupported")
	assert.Nil(t, sched.task)
	assert.False(t, s.visible)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero count", func(o *Options) { o.Count = 0 }},
		{"zero rate", func(o *Options) { o.Rate = 0 }},
		{"negative distance", func(o *Options) { o.Distance = -1 }},
		{"negative influence", func(o *Options) { o.Influence = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			_, err := New(opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestParseModes(t *testing.T) {
	g, err := ParseGrowth("accumulate")
	require.NoError(t, err)
	assert.Equal(t, GrowthAccumulate, g)

	p, err := ParsePairs("unique")
	require.NoError(t, err)
	assert.Equal(t, PairsUnique, p)

	r, err := ParseReflect("corrected")
	require.NoError(t, err)
	assert.Equal(t, ReflectCorrected, r)

	_, err = ParseGrowth("forever")
	assert.ErrorIs(t, err, ErrInvalidOptions)
	_, err = ParsePairs("some")
	assert.ErrorIs(t, err, ErrInvalidOptions)
	_, err = ParseReflect("sideways")
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
