package export

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/iburimskiy/audio-wheels/internal/wheel"
)

// ggSurface draws wheels onto a gg raster context.
type ggSurface struct {
	dc *gg.Context
}

func newSurface(w, h int) *ggSurface {
	return &ggSurface{dc: gg.NewContext(w, h)}
}

func (s *ggSurface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *ggSurface) StrokeCircle(x, y, r, width float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawCircle(x, y, r)
	s.dc.Stroke()
}

func (s *ggSurface) FillCircle(x, y, r float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, r)
	s.dc.Fill()
}

func (s *ggSurface) StrokePolygon(pts []wheel.Point, width float64, c color.Color) {
	if len(pts) == 0 {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.dc.Stroke()
}
