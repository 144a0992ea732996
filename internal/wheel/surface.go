package wheel

import "image/color"

type Point struct {
	X, Y float64
}

// Surface is the drawing target for wheels and particles. Radii and widths are in pixels.
type Surface interface {
	Clear(c color.Color)
	StrokeCircle(x, y, r, width float64, c color.Color)
	FillCircle(x, y, r float64, c color.Color)
	// StrokePolygon strokes the closed outline through pts. pts is only valid during the call.
	StrokePolygon(pts []Point, width float64, c color.Color)
}
