// Package physics provides distance utilities and broad-phase neighbour lookup.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Falloff returns 1 - d2/r2 for squared distances within r2 and 0 beyond it.
// It is the linear weight used for everything that fades with distance.
func Falloff(d2, r2 float64) float64 {
	if r2 <= 0 || d2 > r2 {
		return 0
	}
	return 1 - d2/r2
}

// ClampSpeed rescales (vx, vy) to magnitude max when it is exceeded, keeping direction.
func ClampSpeed(vx, vy, max float64) (float64, float64) {
	speed := math.Sqrt(vx*vx + vy*vy)
	if speed > max && speed > 0 {
		return vx / speed * max, vy / speed * max
	}
	return vx, vy
}
