package field

import (
	"github.com/novaplay/novaplay/internal/draw"
	"github.com/novaplay/novaplay/internal/physics"
)

// Connection is an edge between two points. Strength is 1 - d²/r² in [0, 1];
// edge opacity and width are both proportional to it.
type Connection struct {
	From, To draw.Point
	Strength float64
}

// connectionScratch holds buffers reused across frames.
type connectionScratch struct {
	edges   []Connection
	pointer []Connection
	grid    *physics.SpatialGrid
}

// Connections returns the edges between every unordered pair of particles
// closer than the connection distance. The slice is reused by the next call.
func (s *State) Connections() []Connection {
	s.conns.edges = s.conns.edges[:0]
	cd2 := s.Config.ConnectionDist * s.Config.ConnectionDist
	if cd2 <= 0 {
		return s.conns.edges
	}

	if s.Config.GridThreshold > 0 && len(s.Particles) > s.Config.GridThreshold {
		s.gridConnections(cd2)
		return s.conns.edges
	}

	ps := s.Particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			s.addEdge(&ps[i], &ps[j], cd2)
		}
	}
	return s.conns.edges
}

// gridConnections finds the same edges as the pairwise loop using a bounded
// spatial grid over the wrap area as a broad phase.
func (s *State) gridConnections(cd2 float64) {
	m := s.Config.WrapMargin
	w := s.Viewport.Width + 2*m
	h := s.Viewport.Height + 2*m
	cell := s.Config.ConnectionDist
	if s.conns.grid == nil || !s.conns.grid.Covers(-m, -m, w, h, cell) {
		s.conns.grid = physics.NewBoundedGrid(-m, -m, w, h, cell)
	}
	g := s.conns.grid
	g.Clear()

	ps := s.Particles
	for i := range ps {
		g.Insert(ps[i].X, ps[i].Y, i)
	}
	for i := range ps {
		g.QueryAround(ps[i].X, ps[i].Y, func(j int) bool {
			if j > i {
				s.addEdge(&ps[i], &ps[j], cd2)
			}
			return false
		})
	}
}

func (s *State) addEdge(a, b *Particle, cd2 float64) {
	d2 := physics.DistanceSquared(a.X, a.Y, b.X, b.Y)
	if d2 > cd2 {
		return
	}
	s.conns.edges = append(s.conns.edges, Connection{
		From:     draw.Point{X: a.X, Y: a.Y},
		To:       draw.Point{X: b.X, Y: b.Y},
		Strength: physics.Falloff(d2, cd2),
	})
}

// PointerConnections returns the edges from the pointer to every particle
// within the pointer radius, or nil when the pointer is inactive.
// The slice is reused by the next call.
func (s *State) PointerConnections() []Connection {
	if !s.Pointer.Active {
		return nil
	}
	s.conns.pointer = s.conns.pointer[:0]
	r2 := s.Config.PointerRadius * s.Config.PointerRadius
	from := draw.Point{X: s.Pointer.X, Y: s.Pointer.Y}
	for i := range s.Particles {
		p := &s.Particles[i]
		d2 := physics.DistanceSquared(p.X, p.Y, s.Pointer.X, s.Pointer.Y)
		if d2 > r2 {
			continue
		}
		s.conns.pointer = append(s.conns.pointer, Connection{
			From:     from,
			To:       draw.Point{X: p.X, Y: p.Y},
			Strength: physics.Falloff(d2, r2),
		})
	}
	return s.conns.pointer
}
