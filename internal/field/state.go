// Package field implements the animated particle background: a fixed population
// of drifting particles linked by distance-weighted edges, a few breathing halos,
// and a pointer that pushes particles away.
//
// State holds everything a field needs and is owned by one Driver. Update
// functions mutate State only; Frame turns State into draw calls on a Surface.
package field

import (
	"math/rand"
	"time"
)

// Pointer is the last known pointer position in viewport coordinates.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Viewport is the size of the drawing area in logical units.
type Viewport struct {
	Width, Height float64
}

// State is the complete simulation state of one field.
type State struct {
	Config    Config
	Particles []Particle
	Glows     []Glow
	Pointer   Pointer
	Viewport  Viewport
	Tick      uint64

	conns connectionScratch
}

// NewState creates a field for the given viewport. rng seeds every random
// choice; pass nil for a time-seeded source.
func NewState(cfg Config, vp Viewport, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &State{
		Config:    cfg,
		Viewport:  vp,
		Particles: make([]Particle, 0, cfg.ParticleCount),
		Glows:     make([]Glow, 0, len(cfg.Glows)),
		Pointer:   Pointer{X: -9999, Y: -9999},
	}
	for i := 0; i < cfg.ParticleCount; i++ {
		s.Particles = append(s.Particles, newParticle(rng, cfg, vp))
	}
	for _, spec := range cfg.Glows {
		s.Glows = append(s.Glows, newGlow(rng, spec))
	}
	return s
}

// Resize changes the viewport. Particles keep their positions and wrap into the
// new bounds on their next update; glow geometry is derived from the viewport
// every frame.
func (s *State) Resize(width, height float64) {
	s.Viewport = Viewport{Width: width, Height: height}
}

// MovePointer records a pointer position and marks the pointer active.
func (s *State) MovePointer(x, y float64) {
	s.Pointer = Pointer{X: x, Y: y, Active: true}
}

// LeavePointer marks the pointer inactive. The last position is kept.
func (s *State) LeavePointer() {
	s.Pointer.Active = false
}

// UpdateParticles advances every particle by one frame.
func (s *State) UpdateParticles() {
	for i := range s.Particles {
		s.Particles[i].Update(s.Config, s.Pointer, s.Viewport)
	}
}

// UpdateGlows advances every glow by one frame.
func (s *State) UpdateGlows() {
	for i := range s.Glows {
		s.Glows[i].Advance()
	}
}
