package field

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Glow is a large soft halo that drifts slowly around its origin and breathes
// in opacity.
type Glow struct {
	OriginX, OriginY float64 // Fractions of the viewport
	Radius           float64 // Fraction of the smaller viewport dimension
	Color            colorful.Color
	Alpha            float64 // Base opacity

	DriftAngle  float64
	DriftSpeed  float64
	DriftAmp    float64 // Drift amplitude as a fraction of the viewport
	BreathPhase float64
	BreathSpeed float64
}

func newGlow(rng *rand.Rand, spec GlowSpec) Glow {
	return Glow{
		OriginX:     spec.X,
		OriginY:     spec.Y,
		Radius:      spec.Radius,
		Color:       spec.Color,
		Alpha:       spec.Alpha,
		DriftAngle:  rng.Float64() * math.Pi * 2,
		DriftSpeed:  0.00012 + rng.Float64()*0.00008,
		DriftAmp:    0.06 + rng.Float64()*0.06,
		BreathPhase: rng.Float64() * math.Pi * 2,
		BreathSpeed: 0.004 + rng.Float64()*0.003,
	}
}

// Advance moves the drift angle and breathing phase forward by one frame.
func (g *Glow) Advance() {
	g.DriftAngle += g.DriftSpeed
	g.BreathPhase += g.BreathSpeed
}

// Center returns the current centre in viewport coordinates. The path is a
// Lissajous curve: cosine on x, sine at 0.7x frequency and 0.6x amplitude on y.
func (g *Glow) Center(vp Viewport) (x, y float64) {
	x = (g.OriginX + math.Cos(g.DriftAngle)*g.DriftAmp) * vp.Width
	y = (g.OriginY + math.Sin(g.DriftAngle*0.7)*g.DriftAmp*0.6) * vp.Height
	return x, y
}

// PixelRadius returns the radius in viewport coordinates.
func (g *Glow) PixelRadius(vp Viewport) float64 {
	return g.Radius * math.Min(vp.Width, vp.Height)
}

// EffectiveAlpha returns the breathing opacity, within [0.8, 1.0] of the base.
func (g *Glow) EffectiveAlpha() float64 {
	return g.Alpha * (0.8 + 0.2*math.Sin(g.BreathPhase))
}
