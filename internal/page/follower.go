package page

import "github.com/charmbracelet/harmonica"

// Follower trails a target point with a critically damped spring.
type Follower struct {
	spring harmonica.Spring
	x, y   float64
	vx, vy float64
	placed bool
}

// NewFollower returns a follower stepped fps times per second.
func NewFollower(fps int) *Follower {
	return &Follower{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Update moves one step toward (tx, ty) and returns the new position. The
// first call starts at the target.
func (f *Follower) Update(tx, ty float64) (float64, float64) {
	if !f.placed {
		f.x, f.y, f.placed = tx, ty, true
		return f.x, f.y
	}
	f.x, f.vx = f.spring.Update(f.x, f.vx, tx)
	f.y, f.vy = f.spring.Update(f.y, f.vy, ty)
	return f.x, f.y
}

// Position returns the current position.
func (f *Follower) Position() (float64, float64) {
	return f.x, f.y
}
