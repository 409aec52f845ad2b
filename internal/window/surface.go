// Package window hosts the particle field in a desktop window.
package window

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/novaplay/novaplay/internal/draw"
)

// gradientSize is the side of the cached radial gradient texture.
const gradientSize = 256

// Surface draws onto the ebiten image of the current frame.
type Surface struct {
	target *ebiten.Image
	w, h   float64

	gradient *ebiten.Image
	profile  []draw.GradientStop // normalised stops baked into gradient
}

// NewSurface returns a surface of the given size in window pixels.
func NewSurface(w, h int) *Surface {
	return &Surface{w: float64(w), h: float64(h)}
}

func (s *Surface) setTarget(img *ebiten.Image) {
	s.target = img
}

func (s *Surface) resize(w, h int) {
	s.w, s.h = float64(w), float64(h)
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) Clear() {
	if s.target != nil {
		s.target.Clear()
	}
}

func (s *Surface) Fill(c colorful.Color) {
	if s.target != nil {
		s.target.Fill(nrgba(c, 1))
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, c colorful.Color, alpha float64) {
	if s.target == nil || r <= 0 || alpha <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), nrgba(c, alpha), true)
}

func (s *Surface) StrokeLine(p1, p2 draw.Point, width float64, c colorful.Color, alpha float64) {
	if s.target == nil || width <= 0 || alpha <= 0 {
		return
	}
	vector.StrokeLine(s.target, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), float32(width), nrgba(c, alpha), true)
}

// FillRadialGradient draws a cached white gradient texture scaled to r and
// tinted with c. The stops only differ between calls by a common alpha factor,
// so the texture is rebuilt only when their shape changes.
func (s *Surface) FillRadialGradient(cx, cy, r float64, c colorful.Color, stops []draw.GradientStop) {
	if s.target == nil || r <= 0 || len(stops) == 0 {
		return
	}
	peak := 0.0
	for _, st := range stops {
		peak = math.Max(peak, st.Alpha)
	}
	if peak <= 0 {
		return
	}
	s.ensureGradient(stops, peak)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*r/gradientSize, 2*r/gradientSize)
	op.GeoM.Translate(cx-r, cy-r)
	op.Filter = ebiten.FilterLinear
	cr, cg, cb := c.Clamped().RGB255()
	a := float32(peak)
	op.ColorScale.Scale(float32(cr)/255*a, float32(cg)/255*a, float32(cb)/255*a, a)
	s.target.DrawImage(s.gradient, op)
}

func (s *Surface) ensureGradient(stops []draw.GradientStop, peak float64) {
	norm := make([]draw.GradientStop, len(stops))
	for i, st := range stops {
		norm[i] = draw.GradientStop{Offset: st.Offset, Alpha: st.Alpha / peak}
	}
	if s.gradient != nil && sameProfile(norm, s.profile) {
		return
	}
	s.profile = norm
	s.gradient = ebiten.NewImageFromImage(gradientImage(norm, gradientSize))
}

func sameProfile(a, b []draw.GradientStop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i].Offset-b[i].Offset) > 1e-9 || math.Abs(a[i].Alpha-b[i].Alpha) > 1e-9 {
			return false
		}
	}
	return true
}

// nrgba converts a colour and opacity to a non-premultiplied RGBA value.
func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))}
}

var _ draw.Surface = (*Surface)(nil)
