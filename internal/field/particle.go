package field

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/novaplay/novaplay/internal/physics"
)

// Particle is one point of the field. Particles are created once and live as
// long as the field; they wrap around the viewport instead of being recycled.
type Particle struct {
	X, Y       float64 // Position
	VX, VY     float64 // Velocity per frame
	Radius     float64 // Base radius
	Color      colorful.Color
	Alpha      float64
	Pulse      float64 // Pulsation phase
	PulseSpeed float64 // Phase advance per frame

	// DisplayRadius is the pulsed radius computed by the last Update.
	DisplayRadius float64
}

// newParticle creates a particle at a random position inside the viewport with a
// random heading.
func newParticle(rng *rand.Rand, cfg Config, vp Viewport) Particle {
	angle := rng.Float64() * math.Pi * 2
	speed := cfg.Speed * (0.4 + rng.Float64()*0.9)
	p := Particle{
		X:          rng.Float64() * vp.Width,
		Y:          rng.Float64() * vp.Height,
		VX:         math.Cos(angle) * speed,
		VY:         math.Sin(angle) * speed,
		Radius:     cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize),
		Alpha:      0.4 + rng.Float64()*0.55,
		Pulse:      rng.Float64() * math.Pi * 2,
		PulseSpeed: 0.008 + rng.Float64()*0.012,
	}
	if len(cfg.Palette) > 0 {
		p.Color = cfg.Palette[rng.Intn(len(cfg.Palette))]
	}
	p.DisplayRadius = p.Radius
	return p
}

// Update advances the particle by one frame: pulsation, pointer repulsion,
// friction, speed cap, integration and boundary wrap.
func (p *Particle) Update(cfg Config, ptr Pointer, vp Viewport) {
	p.Pulse += p.PulseSpeed
	p.DisplayRadius = p.Radius * (1 + cfg.PulseAmount*math.Sin(p.Pulse))

	if ptr.Active {
		dx := p.X - ptr.X
		dy := p.Y - ptr.Y
		d2 := dx*dx + dy*dy
		r2 := cfg.PointerRadius * cfg.PointerRadius
		// A particle exactly under the pointer has no direction to be pushed in.
		if d2 < r2 && d2 > 0 {
			strength := physics.Falloff(d2, r2) * cfg.PointerRepel
			p.VX += dx * strength
			p.VY += dy * strength
		}
	}

	p.VX *= cfg.Friction
	p.VY *= cfg.Friction

	p.VX, p.VY = physics.ClampSpeed(p.VX, p.VY, cfg.MaxSpeed())

	p.X += p.VX
	p.Y += p.VY

	p.X = wrap(p.X, vp.Width, cfg.WrapMargin)
	p.Y = wrap(p.Y, vp.Height, cfg.WrapMargin)
}

// wrap moves a coordinate that left [-margin, size+margin] to the opposite bound.
func wrap(v, size, margin float64) float64 {
	switch {
	case v < -margin:
		return size + margin
	case v > size+margin:
		return -margin
	}
	return v
}

// Speed returns the particle's velocity magnitude.
func (p *Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}
