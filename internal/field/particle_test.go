package field

import (
	"math"
	"math/rand"
	"testing"
)

func testState(t *testing.T, seed int64) *State {
	t.Helper()
	return NewState(DefaultConfig(), Viewport{Width: 800, Height: 600}, rand.New(rand.NewSource(seed)))
}

func TestNewStatePopulation(t *testing.T) {
	s := testState(t, 1)
	cfg := s.Config

	if len(s.Particles) != cfg.ParticleCount {
		t.Fatalf("particles = %d, want %d", len(s.Particles), cfg.ParticleCount)
	}
	if len(s.Glows) != 3 {
		t.Fatalf("glows = %d, want 3", len(s.Glows))
	}
	for i, p := range s.Particles {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("particle %d spawned outside viewport at (%v, %v)", i, p.X, p.Y)
		}
		if p.Radius < cfg.MinSize || p.Radius > cfg.MaxSize {
			t.Fatalf("particle %d radius %v outside [%v, %v]", i, p.Radius, cfg.MinSize, cfg.MaxSize)
		}
		if sp := p.Speed(); sp < cfg.Speed*0.4-1e-9 || sp > cfg.Speed*1.3+1e-9 {
			t.Fatalf("particle %d initial speed %v outside creation range", i, sp)
		}
	}
	if s.Pointer.Active {
		t.Fatal("pointer active before any pointer event")
	}
}

func TestSpeedClampInvariant(t *testing.T) {
	s := testState(t, 2)
	maxSpeed := s.Config.MaxSpeed()

	for frame := 0; frame < 3000; frame++ {
		// Sweep the pointer through the field to keep injecting impulses.
		s.MovePointer(400+300*math.Cos(float64(frame)*0.05), 300+200*math.Sin(float64(frame)*0.03))
		s.UpdateParticles()
		for i := range s.Particles {
			if sp := s.Particles[i].Speed(); sp > maxSpeed+1e-9 {
				t.Fatalf("frame %d particle %d speed %v exceeds cap %v", frame, i, sp, maxSpeed)
			}
		}
	}
}

func TestPositionsStayWithinWrapBounds(t *testing.T) {
	s := testState(t, 3)
	m := s.Config.WrapMargin

	for frame := 0; frame < 5000; frame++ {
		s.UpdateParticles()
		for i, p := range s.Particles {
			if p.X < -m || p.X > s.Viewport.Width+m || p.Y < -m || p.Y > s.Viewport.Height+m {
				t.Fatalf("frame %d particle %d at (%v, %v) outside wrap bounds", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestWrapTeleportsToOppositeBound(t *testing.T) {
	cfg := DefaultConfig()
	vp := Viewport{Width: 800, Height: 600}
	m := cfg.WrapMargin

	cases := []struct {
		name       string
		p          Particle
		wantX      float64
		wantY      float64
		checkXOnly bool
	}{
		{name: "right", p: Particle{X: 800 + m - 0.1, Y: 300, VX: 0.5}, wantX: -m, checkXOnly: true},
		{name: "left", p: Particle{X: -m + 0.1, Y: 300, VX: -0.5}, wantX: 800 + m, checkXOnly: true},
		{name: "bottom", p: Particle{X: 400, Y: 600 + m - 0.1, VY: 0.5}, wantY: -m},
		{name: "top", p: Particle{X: 400, Y: -m + 0.1, VY: -0.5}, wantY: 600 + m},
	}
	for _, tc := range cases {
		p := tc.p
		p.Update(cfg, Pointer{}, vp)
		if tc.checkXOnly {
			if p.X != tc.wantX {
				t.Fatalf("%s: X = %v, want %v", tc.name, p.X, tc.wantX)
			}
			continue
		}
		if p.Y != tc.wantY {
			t.Fatalf("%s: Y = %v, want %v", tc.name, p.Y, tc.wantY)
		}
	}
}

func TestPointerRepels(t *testing.T) {
	cfg := DefaultConfig()
	vp := Viewport{Width: 800, Height: 600}

	p := Particle{X: 100, Y: 100}
	p.Update(cfg, Pointer{X: 90, Y: 100, Active: true}, vp)
	if p.VX <= 0 || p.VY != 0 {
		t.Fatalf("velocity after repel = (%v, %v), want push along +x", p.VX, p.VY)
	}

	inactive := Particle{X: 100, Y: 100}
	inactive.Update(cfg, Pointer{X: 90, Y: 100}, vp)
	if inactive.VX != 0 {
		t.Fatalf("inactive pointer pushed particle: VX = %v", inactive.VX)
	}

	far := Particle{X: 100, Y: 100}
	far.Update(cfg, Pointer{X: 100 + cfg.PointerRadius + 1, Y: 100, Active: true}, vp)
	if far.VX != 0 {
		t.Fatalf("pointer beyond radius pushed particle: VX = %v", far.VX)
	}

	under := Particle{X: 100, Y: 100}
	under.Update(cfg, Pointer{X: 100, Y: 100, Active: true}, vp)
	if under.VX != 0 || under.VY != 0 {
		t.Fatalf("particle under the pointer moved: (%v, %v)", under.VX, under.VY)
	}
}

func TestRepelStrongerWhenCloser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSpeedFactor = 1000 // keep the cap out of the comparison
	vp := Viewport{Width: 800, Height: 600}
	ptr := Pointer{X: 0, Y: 300, Active: true}

	near := Particle{X: 20, Y: 300}
	farther := Particle{X: 120, Y: 300}
	near.Update(cfg, ptr, vp)
	farther.Update(cfg, ptr, vp)

	// Increment is dx * (1 - d²/r²) * repel; compare per unit distance.
	if near.VX/20 <= farther.VX/120 {
		t.Fatalf("repel weight not decreasing with distance: near %v, farther %v", near.VX/20, farther.VX/120)
	}
}

func TestFrictionDecaysVelocity(t *testing.T) {
	cfg := DefaultConfig()
	vp := Viewport{Width: 800, Height: 600}
	p := Particle{X: 400, Y: 300, VX: 0.3}

	for i := 0; i < 100; i++ {
		p.Update(cfg, Pointer{}, vp)
	}
	want := 0.3 * math.Pow(cfg.Friction, 100)
	if math.Abs(p.VX-want) > 1e-12 {
		t.Fatalf("VX after 100 frames = %v, want %v", p.VX, want)
	}
}

func TestDisplayRadiusPulsates(t *testing.T) {
	cfg := DefaultConfig()
	vp := Viewport{Width: 800, Height: 600}
	p := Particle{X: 400, Y: 300, Radius: 2, PulseSpeed: 0.1}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 200; i++ {
		p.Update(cfg, Pointer{}, vp)
		lo = math.Min(lo, p.DisplayRadius)
		hi = math.Max(hi, p.DisplayRadius)
	}
	if lo < 2*(1-cfg.PulseAmount)-1e-9 || hi > 2*(1+cfg.PulseAmount)+1e-9 {
		t.Fatalf("display radius range [%v, %v] exceeds pulse bounds", lo, hi)
	}
	if hi-lo < 0.5 {
		t.Fatalf("display radius barely changed: [%v, %v]", lo, hi)
	}
}

func TestResizeRewrapsParticles(t *testing.T) {
	s := testState(t, 4)
	s.Resize(200, 100)
	s.UpdateParticles()

	m := s.Config.WrapMargin
	for i, p := range s.Particles {
		if p.X > 200+m || p.Y > 100+m {
			t.Fatalf("particle %d at (%v, %v) not wrapped into resized viewport", i, p.X, p.Y)
		}
	}
}
