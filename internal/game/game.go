// Package game hosts the particle field in an ebiten window.
package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/input"
)

// Number of redraw timings averaged by the debug overlay.
const frameRingSize = 120

type Game struct {
	width, height int
	background    color.Color

	animator *field.Animator
	canvas   *canvas
	sched    *tickScheduler
	tracker  *input.Tracker
	frames   *frameTimes

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	started bool
	debug   bool
}

// NewGame wires an animator to an offscreen canvas the size of the window.
// The animator starts on the first Update.
func NewGame(cfg *config.FieldConfig, animator *field.Animator) (*Game, error) {
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}

	return &Game{
		width:      cfg.Width,
		height:     cfg.Height,
		background: bg,
		animator:   animator,
		canvas:     newCanvas(cfg.Width, cfg.Height),
		sched:      &tickScheduler{},
		tracker:    input.NewTracker(cfg.Width, cfg.Height),
		frames:     newFrameTimes(frameRingSize),
		prevKey:    map[ebiten.Key]bool{},
		debug:      cfg.Debug,
	}, nil
}

func (g *Game) Update() error {
	if !g.started {
		if err := g.animator.Initialize(g.canvas, g.sched); err != nil {
			return fmt.Errorf("failed to start particle field: %w", err)
		}
		g.started = true
		log.Printf("particle field started: %dx%d, %d particles at %d TPS",
			g.width, g.height, g.animator.Options().Count, tpsFor(g.sched.interval))
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.tracker.Dispatch(g.animator, mouseX, mouseY, ebiten.IsFocused())

	g.frames.measure(g.sched.run)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	if g.canvas.visible && g.canvas.img != nil {
		screen.DrawImage(g.canvas.img, nil)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	}
}

func (g *Game) status() string {
	ticks := g.animator.Ticks()
	ptr := g.animator.Pointer()
	uptime := time.Duration(ticks) * g.sched.interval

	return fmt.Sprintf("particles: %d  ticks: %d  uptime: %s  TPS: %0.1f  redraw: %s  pointer: %.0f,%.0f",
		g.animator.Len(), ticks, formatDuration(uptime), ebiten.ActualTPS(), g.frames.average(), ptr.X, ptr.Y)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
