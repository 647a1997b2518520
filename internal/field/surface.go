package field

import (
	"image/color"
	"time"
)

// Surface is the drawing area the animator paints on. Its size is taken from
// the containing element when the animator starts.
type Surface interface {
	ContainerSize() (width, height int)
	Resize(width, height int)
	// Context returns the 2D drawing context, or an error if the host cannot
	// provide one.
	Context() (Context, error)
	Show()
}

// Context draws primitives onto a Surface using the current Style.
type Context interface {
	SetStyle(s Style)
	Clear()
	FillCircle(x, y, radius float64)
	StrokeLine(x1, y1, x2, y2 float64)
}

// Style holds the fill color, stroke color and line width used for drawing.
type Style struct {
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
}

// DefaultStyle is white dots joined by hairlines.
func DefaultStyle() Style {
	return Style{
		Fill:      color.White,
		Stroke:    color.White,
		LineWidth: 0.1,
	}
}

// Scheduler dispatches a single recurring task at a fixed interval. Tasks
// never overlap.
type Scheduler interface {
	Every(interval time.Duration, task func())
}
