package field

import "math/rand/v2"

// Particle is one moving dot.
type Particle struct {
	X, Y   float64 // Position in pixels
	VX, VY float64 // Velocity in pixels per tick
	Radius float64
}

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

// spawn places a particle uniformly inside a width x height area with each
// velocity component in [-0.5, 0.5) and a radius in [0, 1).
func spawn(rng *rand.Rand, width, height float64) Particle {
	return Particle{
		X:      rng.Float64() * width,
		Y:      rng.Float64() * height,
		VX:     -0.5 + rng.Float64(),
		VY:     -0.5 + rng.Float64(),
		Radius: rng.Float64(),
	}
}

// outOfBounds reports whether v lies strictly outside [0, limit].
func outOfBounds(v, limit float64) bool {
	return v < 0 || v > limit
}

// step applies one physics tick. A particle past the top or bottom edge has
// its vertical velocity reversed. One past a side edge has vy reversed when
// correctX is false (the historical behavior) and vx reversed when it is true.
// Position always advances by the resulting velocity.
func (p *Particle) step(width, height float64, correctX bool) {
	switch {
	case outOfBounds(p.Y, height):
		p.VY = -p.VY
	case outOfBounds(p.X, width):
		if correctX {
			p.VX = -p.VX
		} else {
			p.VY = -p.VY
		}
	}
	p.X += p.VX
	p.Y += p.VY
}
