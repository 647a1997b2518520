package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/particle-field/internal/field"
)

var errNoImage = errors.New("canvas has no backing image")

// canvas is an offscreen ebiten image the animator draws on. The game
// composites it onto the screen every frame.
type canvas struct {
	containerW, containerH int

	img     *ebiten.Image
	style   field.Style
	visible bool
}

func newCanvas(width, height int) *canvas {
	return &canvas{containerW: width, containerH: height}
}

func (c *canvas) ContainerSize() (int, int) {
	return c.containerW, c.containerH
}

func (c *canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(width, height)
}

func (c *canvas) Context() (field.Context, error) {
	if c.img == nil {
		return nil, errNoImage
	}
	return c, nil
}

func (c *canvas) Show() {
	c.visible = true
}

func (c *canvas) SetStyle(s field.Style) {
	c.style = s
}

func (c *canvas) Clear() {
	c.img.Clear()
}

func (c *canvas) FillCircle(x, y, radius float64) {
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(radius), c.style.Fill, true)
}

func (c *canvas) StrokeLine(x1, y1, x2, y2 float64) {
	vector.StrokeLine(c.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(c.style.LineWidth), c.style.Stroke, true)
}
