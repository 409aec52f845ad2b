package field

import (
	"math/rand"
	"sort"
	"testing"
)

func lineState(xs ...float64) *State {
	cfg := DefaultConfig()
	s := &State{Config: cfg, Viewport: Viewport{Width: 1000, Height: 1000}}
	for _, x := range xs {
		s.Particles = append(s.Particles, Particle{X: x, Y: 500})
	}
	return s
}

func TestConnectionStrengthDecreasesWithDistance(t *testing.T) {
	// Particle 0 at the origin, the others at growing distances from it.
	s := lineState(0, 10, 50, 100, 139, 141)
	edges := s.Connections()

	fromOrigin := map[float64]float64{}
	for _, e := range edges {
		if e.From.X == 0 {
			fromOrigin[e.To.X] = e.Strength
		}
	}

	prev := 2.0
	for _, x := range []float64{10, 50, 100, 139} {
		st, ok := fromOrigin[x]
		if !ok {
			t.Fatalf("missing edge to particle at distance %v", x)
		}
		if st <= 0 || st >= prev {
			t.Fatalf("strength at distance %v = %v, want in (0, %v)", x, st, prev)
		}
		prev = st
	}
	if _, ok := fromOrigin[141]; ok {
		t.Fatal("edge drawn beyond the connection distance")
	}
}

func TestConnectionsAreUnorderedPairs(t *testing.T) {
	s := lineState(0, 10, 20)
	if got := len(s.Connections()); got != 3 {
		t.Fatalf("edges = %d, want 3 for three close particles", got)
	}
}

type edgeKey struct {
	ax, ay, bx, by float64
}

func edgeKeys(edges []Connection) []edgeKey {
	keys := make([]edgeKey, 0, len(edges))
	for _, e := range edges {
		a, b := e.From, e.To
		if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
			a, b = b, a
		}
		keys = append(keys, edgeKey{a.X, a.Y, b.X, b.Y})
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		if ki.ax != kj.ax {
			return ki.ax < kj.ax
		}
		if ki.ay != kj.ay {
			return ki.ay < kj.ay
		}
		if ki.bx != kj.bx {
			return ki.bx < kj.bx
		}
		return ki.by < kj.by
	})
	return keys
}

func TestGridConnectionsMatchPairwise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 600
	vp := Viewport{Width: 1600, Height: 900}

	brute := NewState(cfg, vp, rand.New(rand.NewSource(8)))
	brute.Config.GridThreshold = 0
	// Push a few particles into the wrap margins.
	brute.Particles[0].X, brute.Particles[0].Y = -35, -35
	brute.Particles[1].X, brute.Particles[1].Y = -10, -20
	brute.Particles[2].X, brute.Particles[2].Y = vp.Width+39, vp.Height+39

	gridded := &State{Config: brute.Config, Viewport: vp}
	gridded.Config.GridThreshold = 100
	gridded.Particles = append([]Particle(nil), brute.Particles...)

	want := edgeKeys(brute.Connections())
	got := edgeKeys(gridded.Connections())
	if len(got) != len(want) {
		t.Fatalf("grid found %d edges, pairwise found %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("edge %d differs: grid %+v, pairwise %+v", i, got[i], want[i])
		}
	}
}

func TestPointerConnections(t *testing.T) {
	s := lineState(100, 200, 400)
	if edges := s.PointerConnections(); edges != nil {
		t.Fatalf("inactive pointer produced %d edges", len(edges))
	}

	s.MovePointer(100, 500)
	edges := s.PointerConnections()
	if len(edges) != 2 {
		t.Fatalf("pointer edges = %d, want 2 within radius", len(edges))
	}
	if edges[0].Strength != 1 {
		t.Fatalf("edge to particle under the pointer strength = %v, want 1", edges[0].Strength)
	}
	if edges[1].Strength <= 0 || edges[1].Strength >= 1 {
		t.Fatalf("edge at distance 100 strength = %v, want in (0, 1)", edges[1].Strength)
	}

	s.LeavePointer()
	if edges := s.PointerConnections(); edges != nil {
		t.Fatal("pointer edges drawn after leave")
	}
}
