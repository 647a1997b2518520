package field

import "sync"

// Pointer is the last known cursor location. Handlers write it through Move
// and Reset while the redraw cycle reads it through Position.
type Pointer struct {
	mu  sync.Mutex
	pos Point
}

func (p *Pointer) Move(x, y float64) {
	p.mu.Lock()
	p.pos = Point{X: x, Y: y}
	p.mu.Unlock()
}

// Reset centers the pointer on a width x height surface.
func (p *Pointer) Reset(width, height float64) {
	p.Move(width/2, height/2)
}

func (p *Pointer) Position() Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}
