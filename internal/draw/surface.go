// Package draw provides raster drawing surfaces and terminal output helpers.
package draw

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// GradientStop is one stop of a single-colour radial gradient.
// Offset runs from 0 (centre) to 1 (edge); Alpha is the opacity at that offset.
type GradientStop struct {
	Offset float64
	Alpha  float64
}

// Surface is a 2D raster target sized in logical units.
// All coordinates, radii and widths passed to a Surface are logical.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (width, height float64)
	// Clear resets the surface to transparent black.
	Clear()
	// Fill paints the whole surface with an opaque colour.
	Fill(c colorful.Color)
	// FillCircle paints a disc blended with the given opacity.
	FillCircle(cx, cy, r float64, c colorful.Color, alpha float64)
	// StrokeLine paints a segment of the given width blended with the given opacity.
	StrokeLine(p1, p2 Point, width float64, c colorful.Color, alpha float64)
	// FillRadialGradient paints a disc whose opacity follows stops from centre to edge.
	FillRadialGradient(cx, cy, r float64, c colorful.Color, stops []GradientStop)
}

// GradientAlpha interpolates the opacity of stops at offset t.
// Stops must be sorted by Offset. Offsets outside the stop range take the nearest stop.
func GradientAlpha(stops []GradientStop, t float64) float64 {
	if len(stops) == 0 {
		return 0
	}
	if t <= stops[0].Offset {
		return stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Alpha
			}
			return a.Alpha + (b.Alpha-a.Alpha)*(t-a.Offset)/span
		}
	}
	return stops[len(stops)-1].Alpha
}

// MustParseHex parses a #rrggbb colour and panics on malformed input.
// Intended for package-level palettes.
func MustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
