package wheel

import "image/color"

// Particle is a short-lived dot thrown off a wheel. Size is the diameter.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  color.NRGBA
	Alpha  float64 // 0..255
}

// Particles is the single mutable particle list shared by all wheels.
type Particles struct {
	max  int
	fade float64
	list []Particle
}

func NewParticles(maxParticles int, fade float64) *Particles {
	return &Particles{
		max:  maxParticles,
		fade: fade,
		list: make([]Particle, 0, maxParticles),
	}
}

// Add appends p and reports false when the list is already full.
func (ps *Particles) Add(p Particle) bool {
	if len(ps.list) >= ps.max {
		return false
	}
	if p.Alpha > 255 {
		p.Alpha = 255
	}
	ps.list = append(ps.list, p)
	return true
}

func (ps *Particles) Len() int { return len(ps.list) }

// All returns the live particles. The slice is only valid until the next Update.
func (ps *Particles) All() []Particle { return ps.list }

func (ps *Particles) Clear() { ps.list = ps.list[:0] }

// Update draws every particle, then moves it and fades it by one step.
// Particles that are fully transparent are removed.
func (ps *Particles) Update(s Surface) {
	for i := len(ps.list) - 1; i >= 0; i-- {
		p := &ps.list[i]
		if s != nil {
			col := p.Color
			col.A = uint8(clampAlpha(p.Alpha))
			s.FillCircle(p.X, p.Y, p.Size/2, col)
		}
		p.X += p.VX
		p.Y += p.VY
		p.Alpha -= ps.fade
		if p.Alpha <= 0 {
			ps.list = append(ps.list[:i], ps.list[i+1:]...)
		}
	}
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return a
}
