package field

import (
	"math/rand"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/novaplay/novaplay/internal/draw"
)

// recorder is a Surface that logs the kind of every draw call.
type recorder struct {
	w, h  float64
	calls []string
	lines []float64 // alpha of every stroked line
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear()                   { r.calls = append(r.calls, "clear") }
func (r *recorder) Fill(colorful.Color)      { r.calls = append(r.calls, "fill") }

func (r *recorder) FillCircle(_, _, _ float64, _ colorful.Color, _ float64) {
	r.calls = append(r.calls, "circle")
}

func (r *recorder) StrokeLine(_, _ draw.Point, _ float64, _ colorful.Color, alpha float64) {
	r.calls = append(r.calls, "line")
	r.lines = append(r.lines, alpha)
}

func (r *recorder) FillRadialGradient(_, _, _ float64, _ colorful.Color, _ []draw.GradientStop) {
	r.calls = append(r.calls, "gradient")
}

// collapse merges consecutive identical calls into one.
func collapse(calls []string) []string {
	var out []string
	for _, c := range calls {
		if len(out) > 0 && out[len(out)-1] == c {
			continue
		}
		out = append(out, c)
	}
	return out
}

func count(calls []string, kind string) int {
	n := 0
	for _, c := range calls {
		if c == kind {
			n++
		}
	}
	return n
}

func clusterState(pointer bool) *State {
	s := NewState(DefaultConfig(), Viewport{Width: 800, Height: 600}, rand.New(rand.NewSource(9)))
	// Pack every particle near the centre so edges always exist.
	for i := range s.Particles {
		s.Particles[i].X = 390 + float64(i%10)
		s.Particles[i].Y = 290 + float64(i/10)
		s.Particles[i].VX, s.Particles[i].VY = 0, 0
	}
	if pointer {
		s.MovePointer(400, 300)
	}
	return s
}

func TestFrameZOrder(t *testing.T) {
	s := clusterState(true)
	edges := len(s.Connections())
	pointerEdges := len(s.PointerConnections())
	rec := &recorder{w: 800, h: 600}
	Frame(s, rec)

	// Pointer edges follow particle edges and the pointer dot precedes the
	// particles, so both merge into their neighbouring runs.
	want := []string{"clear", "fill", "gradient", "line", "circle"}
	got := collapse(rec.calls)
	if len(got) != len(want) {
		t.Fatalf("call sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call sequence = %v, want %v", got, want)
		}
	}

	if n := count(rec.calls, "line"); n != edges+pointerEdges {
		t.Fatalf("lines = %d, want %d particle edges + %d pointer edges", n, edges, pointerEdges)
	}
	if pointerEdges == 0 {
		t.Fatal("pointer in the cluster produced no edges")
	}
	if n := count(rec.calls, "gradient"); n != len(s.Glows) {
		t.Fatalf("gradients = %d, want one per glow (%d)", n, len(s.Glows))
	}
	// One pointer dot plus every particle.
	if n := count(rec.calls, "circle"); n != len(s.Particles)+1 {
		t.Fatalf("circles = %d, want %d", n, len(s.Particles)+1)
	}
	if s.Tick != 1 {
		t.Fatalf("Tick = %d, want 1", s.Tick)
	}
}

func TestFrameWithoutPointer(t *testing.T) {
	s := clusterState(false)
	rec := &recorder{w: 800, h: 600}
	Frame(s, rec)

	want := []string{"clear", "fill", "gradient", "line", "circle"}
	got := collapse(rec.calls)
	if len(got) != len(want) {
		t.Fatalf("call sequence = %v, want %v", got, want)
	}
	if n := count(rec.calls, "circle"); n != len(s.Particles) {
		t.Fatalf("circles = %d, want %d without pointer dot", n, len(s.Particles))
	}
	for _, a := range rec.lines {
		if a < 0 || a > s.Config.LineAlpha {
			t.Fatalf("edge alpha %v outside [0, %v]", a, s.Config.LineAlpha)
		}
	}
}

func TestFrameOnCanvas(t *testing.T) {
	canvas := draw.NewCanvas(40, 12, 8)
	w, h := canvas.Size()
	s := NewState(DefaultConfig(), Viewport{Width: w, Height: h}, rand.New(rand.NewSource(10)))
	Frame(s, canvas)

	bg := s.Config.Background
	lit := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 40; x++ {
			if canvas.Pixel(x, y) != bg {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("frame left the canvas at the bare background colour")
	}
}
