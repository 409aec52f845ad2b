package field

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/novaplay/novaplay/internal/draw"
)

// Config holds the static parameters of a particle field.
type Config struct {
	ParticleCount  int     // Fixed population size
	ConnectionDist float64 // Max distance for a particle-particle edge
	PointerRadius  float64 // Pointer influence and connection radius
	PointerRepel   float64 // Repulsive velocity gain near the pointer
	Speed          float64 // Base speed
	MinSize        float64 // Min particle radius
	MaxSize        float64 // Max particle radius
	Friction       float64 // Per-frame velocity damping factor (< 1)
	MaxSpeedFactor float64 // Speed cap as a multiple of Speed
	WrapMargin     float64 // Distance past an edge before a particle re-enters opposite
	PulseAmount    float64 // Relative radius pulsation amplitude

	Palette    []colorful.Color
	Background colorful.Color
	Glows      []GlowSpec

	LineColor        colorful.Color
	LineAlpha        float64 // Edge opacity at zero distance
	LineWidth        float64 // Edge width at zero distance
	PointerLineColor colorful.Color
	PointerLineAlpha float64
	PointerLineWidth float64
	PointerDotRadius float64
	PointerDotAlpha  float64

	// GridThreshold is the population above which connection passes use a
	// spatial grid instead of checking every pair. Zero disables the grid.
	GridThreshold int
}

// GlowSpec describes one ambient halo. Position is a fraction of the viewport,
// radius a fraction of the smaller viewport dimension.
type GlowSpec struct {
	X, Y   float64
	Radius float64
	Color  colorful.Color
	Alpha  float64
}

// MaxSpeed returns the speed cap applied to every particle after each update.
func (c Config) MaxSpeed() float64 {
	return c.Speed * c.MaxSpeedFactor
}

// glowStops shape every halo: full opacity at the centre, 40% halfway, clear at the edge.
var glowStops = [3]draw.GradientStop{
	{Offset: 0, Alpha: 1},
	{Offset: 0.5, Alpha: 0.4},
	{Offset: 1, Alpha: 0},
}

// DefaultConfig returns the violet field used on every page.
func DefaultConfig() Config {
	return Config{
		ParticleCount:  110,
		ConnectionDist: 140,
		PointerRadius:  160,
		PointerRepel:   0.018,
		Speed:          0.35,
		MinSize:        1.0,
		MaxSize:        2.2,
		Friction:       0.995,
		MaxSpeedFactor: 2.5,
		WrapMargin:     40,
		PulseAmount:    0.18,

		Palette: []colorful.Color{
			draw.MustParseHex("#8b5cf6"), // violet
			draw.MustParseHex("#a78bfa"), // light violet
			draw.MustParseHex("#6d28d9"), // dark violet
			draw.MustParseHex("#06b6d4"), // cyan
			draw.MustParseHex("#c084fc"), // lilac
		},
		Background: draw.MustParseHex("#050508"),
		Glows: []GlowSpec{
			{X: 0.18, Y: 0.22, Radius: 0.40, Color: draw.MustParseHex("#7c3aed"), Alpha: 0.13},
			{X: 0.80, Y: 0.75, Radius: 0.38, Color: draw.MustParseHex("#8b5cf6"), Alpha: 0.10},
			{X: 0.75, Y: 0.18, Radius: 0.30, Color: draw.MustParseHex("#06b6d4"), Alpha: 0.07},
		},

		LineColor:        draw.MustParseHex("#8b5cf6"),
		LineAlpha:        0.20,
		LineWidth:        0.8,
		PointerLineColor: draw.MustParseHex("#a78bfa"),
		PointerLineAlpha: 0.30,
		PointerLineWidth: 1.0,
		PointerDotRadius: 2,
		PointerDotAlpha:  0.5,

		GridThreshold: 400,
	}
}
