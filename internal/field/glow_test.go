package field

import (
	"math"
	"math/rand"
	"testing"
)

func TestGlowBreathingBound(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, spec := range DefaultConfig().Glows {
		g := newGlow(rng, spec)
		for i := 0; i < 20000; i++ {
			g.Advance()
			a := g.EffectiveAlpha()
			if a < 0.8*spec.Alpha-1e-12 || a > spec.Alpha+1e-12 {
				t.Fatalf("frame %d alpha %v outside [%v, %v]", i, a, 0.8*spec.Alpha, spec.Alpha)
			}
		}
	}
}

func TestGlowDriftStaysNearOrigin(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	vp := Viewport{Width: 1000, Height: 500}
	for _, spec := range DefaultConfig().Glows {
		g := newGlow(rng, spec)
		// Drift speed is tiny; jump the angle to cover the whole path.
		g.DriftSpeed = 0.05
		for i := 0; i < 5000; i++ {
			g.Advance()
			x, y := g.Center(vp)
			if math.Abs(x/vp.Width-spec.X) > g.DriftAmp+1e-12 {
				t.Fatalf("x drift %v exceeds amplitude %v", x/vp.Width-spec.X, g.DriftAmp)
			}
			if math.Abs(y/vp.Height-spec.Y) > g.DriftAmp*0.6+1e-12 {
				t.Fatalf("y drift %v exceeds amplitude %v", y/vp.Height-spec.Y, g.DriftAmp*0.6)
			}
		}
	}
}

func TestGlowAdvancesMonotonically(t *testing.T) {
	g := newGlow(rand.New(rand.NewSource(7)), DefaultConfig().Glows[0])
	angle, phase := g.DriftAngle, g.BreathPhase
	g.Advance()
	if g.DriftAngle <= angle || g.BreathPhase <= phase {
		t.Fatalf("glow did not advance: angle %v -> %v, phase %v -> %v", angle, g.DriftAngle, phase, g.BreathPhase)
	}
	if g.DriftSpeed < 0.00012 || g.DriftSpeed > 0.0002 {
		t.Fatalf("drift speed %v outside creation range", g.DriftSpeed)
	}
	if g.DriftAmp < 0.06 || g.DriftAmp > 0.12 {
		t.Fatalf("drift amplitude %v outside creation range", g.DriftAmp)
	}
}

func TestGlowRadiusFollowsViewport(t *testing.T) {
	g := Glow{Radius: 0.4}
	if got := g.PixelRadius(Viewport{Width: 1000, Height: 500}); got != 200 {
		t.Fatalf("PixelRadius() = %v, want 200", got)
	}
	if got := g.PixelRadius(Viewport{Width: 300, Height: 500}); got != 120 {
		t.Fatalf("PixelRadius() after resize = %v, want 120", got)
	}
}
