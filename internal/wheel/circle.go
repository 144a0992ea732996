package wheel

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-wheels/internal/config"
)

// Circle is one wheel on the canvas: its centre, base radius, one colour per ring
// from the outside in, and the colour of the centre circle.
type Circle struct {
	X, Y   float64
	Radius float64
	Colors []color.NRGBA
	Center color.NRGBA
}

const attemptsPerCircle = 200

// GenerateCircles packs up to cfg.CircleCount non-overlapping wheels into a w x h canvas.
// It gives up on a circle after a bounded number of placement attempts, so
// crowded canvases get fewer wheels.
func GenerateCircles(w, h int, cfg config.Config, rng *rand.Rand) []Circle {
	short := math.Min(float64(w), float64(h))
	minR := short * cfg.CircleMinRadius
	maxR := short * cfg.CircleMaxRadius
	// leave room for the ripple on the outer rings
	spacing := 1 + cfg.RippleAmount

	circles := make([]Circle, 0, cfg.CircleCount)
	for attempt := 0; attempt < cfg.CircleCount*attemptsPerCircle && len(circles) < cfg.CircleCount; attempt++ {
		r := minR + rng.Float64()*(maxR-minR)
		pad := r * spacing
		if 2*pad > float64(w) || 2*pad > float64(h) {
			continue
		}
		x := pad + rng.Float64()*(float64(w)-2*pad)
		y := pad + rng.Float64()*(float64(h)-2*pad)

		if overlaps(circles, x, y, r, spacing) {
			continue
		}

		c := Circle{X: x, Y: y, Radius: r, Colors: make([]color.NRGBA, cfg.Layers)}
		for i := range c.Colors {
			c.Colors[i] = RandomColor(rng)
		}
		c.Center = RandomColor(rng)
		circles = append(circles, c)
	}
	return circles
}

func overlaps(circles []Circle, x, y, r, spacing float64) bool {
	for _, o := range circles {
		if math.Hypot(o.X-x, o.Y-y) < (o.Radius+r)*spacing {
			return true
		}
	}
	return false
}

// RandomColor picks an opaque colour with enough saturation and value to read on a dark background.
func RandomColor(rng *rand.Rand) color.NRGBA {
	c := colorful.Hsv(rng.Float64()*360, 0.45+rng.Float64()*0.5, 0.6+rng.Float64()*0.4)
	return toNRGBA(c, 255)
}

func toNRGBA(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
