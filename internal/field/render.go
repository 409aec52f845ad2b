package field

import (
	"github.com/novaplay/novaplay/internal/draw"
)

// Frame advances the field by one frame and paints it onto surf in z-order:
// background, glows, particle edges, pointer edges and dot, particles.
// Edges are drawn from positions before this frame's particle update, so they
// sit underneath the particles drawn after it.
func Frame(s *State, surf draw.Surface) {
	surf.Clear()
	surf.Fill(s.Config.Background)

	s.UpdateGlows()
	drawGlows(s, surf)

	for _, c := range s.Connections() {
		surf.StrokeLine(c.From, c.To, c.Strength*s.Config.LineWidth, s.Config.LineColor, c.Strength*s.Config.LineAlpha)
	}

	drawPointer(s, surf)

	s.UpdateParticles()
	for i := range s.Particles {
		p := &s.Particles[i]
		surf.FillCircle(p.X, p.Y, p.DisplayRadius, p.Color, p.Alpha)
	}

	s.Tick++
}

func drawGlows(s *State, surf draw.Surface) {
	var stops [len(glowStops)]draw.GradientStop
	for i := range s.Glows {
		g := &s.Glows[i]
		cx, cy := g.Center(s.Viewport)
		alpha := g.EffectiveAlpha()
		for k, st := range glowStops {
			stops[k] = draw.GradientStop{Offset: st.Offset, Alpha: st.Alpha * alpha}
		}
		surf.FillRadialGradient(cx, cy, g.PixelRadius(s.Viewport), g.Color, stops[:])
	}
}

func drawPointer(s *State, surf draw.Surface) {
	if !s.Pointer.Active {
		return
	}
	cfg := s.Config
	for _, c := range s.PointerConnections() {
		surf.StrokeLine(c.From, c.To, c.Strength*cfg.PointerLineWidth, cfg.PointerLineColor, c.Strength*cfg.PointerLineAlpha)
	}
	surf.FillCircle(s.Pointer.X, s.Pointer.Y, cfg.PointerDotRadius, cfg.PointerLineColor, cfg.PointerDotAlpha)
}
