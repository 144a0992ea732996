package wheel

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ojrac/opensimplex-go"

	"github.com/iburimskiy/audio-wheels/internal/analysis"
	"github.com/iburimskiy/audio-wheels/internal/config"
)

const backgroundDrift = 0.004

// Scene owns the wheel layout and the particle list and renders one frame at a time.
type Scene struct {
	cfg       config.Config
	rng       *rand.Rand
	bg        colorful.Color
	noise     opensimplex.Noise
	decorator *Decorator

	Circles   []Circle
	Particles *Particles

	width, height int
	frames        int
}

func NewScene(cfg config.Config, seed int64) (*Scene, error) {
	bg, err := colorful.Hex(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", cfg.Background, err)
	}
	rng := rand.New(rand.NewSource(seed))
	particles := NewParticles(cfg.MaxParticles, cfg.FadeStep)
	return &Scene{
		cfg:       cfg,
		rng:       rng,
		bg:        bg,
		noise:     opensimplex.New(seed),
		decorator: NewDecorator(cfg, rng, particles),
		Particles: particles,
	}, nil
}

// Layout regenerates the wheels for a w x h canvas when the size changed.
// It reports whether a new layout was generated.
func (s *Scene) Layout(w, h int) bool {
	if w == s.width && h == s.height && s.Circles != nil {
		return false
	}
	s.width, s.height = w, h
	s.Circles = GenerateCircles(w, h, s.cfg, s.rng)
	s.Particles.Clear()
	return true
}

// ScaleFactor maps bass energy 0..255 onto the configured scale range.
func (s *Scene) ScaleFactor(bass float64) float64 {
	if bass < 0 {
		bass = 0
	}
	if bass > 255 {
		bass = 255
	}
	return analysis.MapRange(bass, 0, 255, s.cfg.ScaleMin, s.cfg.ScaleMax)
}

// Render draws one frame: background, every wheel scaled by bass energy, then the
// particles, which advance by one step.
func (s *Scene) Render(surf Surface, f Frame) {
	surf.Clear(s.background())

	scale := s.ScaleFactor(f.Bass)
	s.decorator.Observe(f)
	for _, c := range s.Circles {
		s.decorator.DrawWheel(surf, c, scale)
	}

	s.Particles.Update(surf)
	s.frames++
}

func (s *Scene) background() colorful.Color {
	n := s.noise.Eval2(float64(s.frames)*backgroundDrift, 0)
	h, c, l := s.bg.Hcl()
	lift := colorful.Hcl(h, c, l+0.05)
	return s.bg.BlendHcl(lift, (n+1)/2).Clamped()
}
