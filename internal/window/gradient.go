package window

import (
	"image"
	"image/color"
	"math"

	"github.com/novaplay/novaplay/internal/draw"
)

// gradientImage renders a white radial gradient with premultiplied alpha
// following stops, filling a size x size square.
func gradientImage(stops []draw.GradientStop, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			t := math.Sqrt(dx*dx+dy*dy) / c
			if t > 1 {
				continue
			}
			a := uint8(math.Round(draw.GradientAlpha(stops, t) * 255))
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}
