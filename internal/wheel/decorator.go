package wheel

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-wheels/internal/config"
)

// Frame is the audio state a wheel reacts to.
type Frame struct {
	Playing  bool
	Bass     float64   // 0..255
	Waveform []float64 // -1..1
}

// Decorator draws wheels and throws particles off their outer rings.
type Decorator struct {
	cfg       config.Config
	rng       *rand.Rand
	particles *Particles
	frame     Frame
	outline   []Point
}

func NewDecorator(cfg config.Config, rng *rand.Rand, particles *Particles) *Decorator {
	return &Decorator{cfg: cfg, rng: rng, particles: particles}
}

// Observe sets the audio state used by the following DrawWheel calls.
func (d *Decorator) Observe(f Frame) { d.frame = f }

func (d *Decorator) spawning() bool {
	return d.particles != nil && d.frame.Playing && d.frame.Bass > d.cfg.BassThreshold
}

// DrawWheel draws c scaled by scaleFactor: concentric rings with dot decorations,
// a waveform ripple over the outer rings and a centre circle. While audio plays above the
// bass threshold the outer rings' dots may spawn particles.
func (d *Decorator) DrawWheel(s Surface, c Circle, scaleFactor float64) {
	radius := c.Radius * scaleFactor
	dotR := radius * d.cfg.DotFactor / 2
	spawn := d.spawning()

	for i, col := range c.Colors {
		layerR := radius - float64(i)*(radius/float64(d.cfg.Layers))
		outer := i < d.cfg.OuterLayers

		s.StrokeCircle(c.X, c.Y, layerR, d.cfg.RingStroke, col)
		if outer && len(d.frame.Waveform) >= 3 {
			s.StrokePolygon(d.ripple(c.X, c.Y, radius, layerR), d.cfg.RingStroke, col)
		}

		numPoints := d.cfg.DotBase + i*d.cfg.DotStep
		for j := 0; j < numPoints; j++ {
			ang := 2 * math.Pi / float64(numPoints) * float64(j)
			px := c.X + math.Cos(ang)*layerR
			py := c.Y + math.Sin(ang)*layerR
			s.FillCircle(px, py, dotR, col)

			if outer && spawn && d.rng.Float64() < d.cfg.SpawnChance {
				d.spawn(px, py, col)
			}
		}
	}

	s.StrokeCircle(c.X, c.Y, radius*d.cfg.CenterFactor/2, radius*d.cfg.CenterStroke, c.Center)
}

// ripple returns the outline of a ring of radius layerR around cx,cy pushed in and
// out by the waveform. The ripple grows with bass energy. The returned slice is
// reused by the next call.
func (d *Decorator) ripple(cx, cy, radius, layerR float64) []Point {
	wave := d.frame.Waveform
	amount := radius * d.cfg.RippleAmount * d.frame.Bass / 255

	d.outline = d.outline[:0]
	for k, w := range wave {
		ang := 2 * math.Pi / float64(len(wave)) * float64(k)
		r := layerR + w*amount
		d.outline = append(d.outline, Point{X: cx + math.Cos(ang)*r, Y: cy + math.Sin(ang)*r})
	}
	return d.outline
}

func (d *Decorator) spawn(x, y float64, col color.NRGBA) {
	ang := d.rng.Float64() * 2 * math.Pi
	speed := d.cfg.SpeedMin + d.rng.Float64()*(d.cfg.SpeedMax-d.cfg.SpeedMin)
	size := d.cfg.SizeMin + d.rng.Float64()*(d.cfg.SizeMax-d.cfg.SizeMin)

	base, _ := colorful.MakeColor(col)
	h, sat, v := base.Hsv()
	h = math.Mod(h+(d.rng.Float64()*2-1)*d.cfg.HueJitter+360, 360)

	d.particles.Add(Particle{
		X:     x,
		Y:     y,
		VX:    math.Cos(ang) * speed,
		VY:    math.Sin(ang) * speed,
		Size:  size,
		Color: toNRGBA(colorful.Hsv(h, sat, v), 255),
		Alpha: 255,
	})
}
