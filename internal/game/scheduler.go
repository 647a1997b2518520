package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// tickScheduler runs the registered task once per ebiten tick and sets the
// tick rate to match the requested interval.
type tickScheduler struct {
	task     func()
	interval time.Duration
}

func (s *tickScheduler) Every(interval time.Duration, task func()) {
	s.interval = interval
	s.task = task
	ebiten.SetTPS(tpsFor(interval))
}

func (s *tickScheduler) run() {
	if s.task != nil {
		s.task()
	}
}
