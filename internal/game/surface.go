package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-wheels/internal/wheel"
)

// screenSurface draws wheels onto the ebiten screen of the current frame.
type screenSurface struct {
	dst *ebiten.Image
}

func (s *screenSurface) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *screenSurface) StrokeCircle(x, y, r, width float64, c color.Color) {
	vector.StrokeCircle(s.dst, float32(x), float32(y), float32(r), float32(width), c, true)
}

func (s *screenSurface) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

func (s *screenSurface) StrokePolygon(pts []wheel.Point, width float64, c color.Color) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		vector.StrokeLine(s.dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), float32(width), c, true)
	}
}
