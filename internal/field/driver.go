package field

import (
	"context"
	"math/rand"
	"reflect"
	"sync"
	"time"

	"github.com/novaplay/novaplay/internal/draw"
)

// DefaultFrameTime paces Run at 60 frames per second.
const DefaultFrameTime = time.Second / 60

// Driver owns a field State and its Surface and runs the update/render cycle
// once per frame.
//
// Pointer and resize notifications may arrive from any goroutine. They are queued
// and applied at the start of the next frame, so they never interleave with a frame
// in progress. Teardown stops the loop at the next frame boundary and detaches the
// notification methods.
//
// A nil *Driver is valid and does nothing; NewDriver returns nil when there is no
// surface to draw on.
type Driver struct {
	state     *State
	surface   draw.Surface
	frameTime time.Duration
	rng       *rand.Rand
	before    func() error
	present   func() error

	mu    sync.Mutex
	queue []event

	done     chan struct{}
	stopOnce sync.Once
}

type eventKind int

const (
	eventPointerMove eventKind = iota
	eventPointerLeave
	eventResize
)

type event struct {
	kind eventKind
	x, y float64
}

// Option configures a Driver.
type Option func(*Driver)

// WithFrameTime sets the target duration of one frame in Run.
func WithFrameTime(d time.Duration) Option {
	return func(dr *Driver) {
		dr.frameTime = d
	}
}

// WithRand sets the random source used to build the field.
func WithRand(rng *rand.Rand) Option {
	return func(dr *Driver) {
		dr.rng = rng
	}
}

// WithBeforeFrame registers a hook run at the start of every frame, before queued
// notifications are applied. Hosts poll their input here.
func WithBeforeFrame(fn func() error) Option {
	return func(dr *Driver) {
		dr.before = fn
	}
}

// WithPresent registers a hook run after every frame has been drawn, typically
// to flush the surface to its output.
func WithPresent(fn func() error) Option {
	return func(dr *Driver) {
		dr.present = fn
	}
}

// NewDriver builds a field sized to surface. It returns nil if surface is nil,
// including a nil pointer stored in the interface.
func NewDriver(surface draw.Surface, cfg Config, opts ...Option) *Driver {
	if missing(surface) {
		return nil
	}
	d := &Driver{
		surface:   surface,
		frameTime: DefaultFrameTime,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	w, h := surface.Size()
	d.state = NewState(cfg, Viewport{Width: w, Height: h}, d.rng)
	return d
}

func missing(surface draw.Surface) bool {
	if surface == nil {
		return true
	}
	v := reflect.ValueOf(surface)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// State returns the simulation state. It must only be read from the goroutine
// running the frames (for example inside the hooks).
func (d *Driver) State() *State {
	if d == nil {
		return nil
	}
	return d.state
}

// PointerMove queues a pointer position in surface coordinates.
func (d *Driver) PointerMove(x, y float64) {
	d.enqueue(event{kind: eventPointerMove, x: x, y: y})
}

// PointerLeave queues the pointer leaving the surface.
func (d *Driver) PointerLeave() {
	d.enqueue(event{kind: eventPointerLeave})
}

// Resize queues a new viewport size in surface coordinates.
func (d *Driver) Resize(width, height float64) {
	d.enqueue(event{kind: eventResize, x: width, y: height})
}

func (d *Driver) enqueue(ev event) {
	if d == nil || d.Stopped() {
		return
	}
	d.mu.Lock()
	d.queue = append(d.queue, ev)
	d.mu.Unlock()
}

// applyEvents drains the notification queue into the state in arrival order.
func (d *Driver) applyEvents() {
	d.mu.Lock()
	events := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, ev := range events {
		switch ev.kind {
		case eventPointerMove:
			d.state.MovePointer(ev.x, ev.y)
		case eventPointerLeave:
			d.state.LeavePointer()
		case eventResize:
			d.state.Resize(ev.x, ev.y)
		}
	}
}

// Step runs exactly one frame. Hosts with their own refresh callback call Step
// from it instead of using Run. Step does nothing after Teardown.
func (d *Driver) Step() error {
	if d == nil || d.Stopped() {
		return nil
	}
	if d.before != nil {
		if err := d.before(); err != nil {
			return err
		}
	}
	d.applyEvents()
	Frame(d.state, d.surface)
	if d.present != nil {
		return d.present()
	}
	return nil
}

// Run steps frames at the configured rate until ctx is cancelled, Teardown is
// called, or a hook fails. Cancellation is checked between frames only; a frame
// that has started always completes. Run returns nil after Teardown.
func (d *Driver) Run(ctx context.Context) error {
	if d == nil {
		return nil
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		if d.Stopped() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		case <-timer.C:
		}
		if d.Stopped() {
			return nil
		}

		frameStart := time.Now()
		if err := d.Step(); err != nil {
			return err
		}

		// Frame timing
		wait := d.frameTime - time.Since(frameStart)
		timer.Reset(max(wait, 0))
	}
}

// Teardown stops the frame loop and detaches the notification methods.
// It is safe to call more than once and from any goroutine.
func (d *Driver) Teardown() {
	if d == nil {
		return
	}
	d.stopOnce.Do(func() {
		close(d.done)
		d.mu.Lock()
		d.queue = nil
		d.mu.Unlock()
	})
}

// Done returns a channel closed by Teardown.
func (d *Driver) Done() <-chan struct{} {
	if d == nil {
		return closedChan
	}
	return d.done
}

// Stopped reports whether Teardown has been called.
func (d *Driver) Stopped() bool {
	if d == nil {
		return true
	}
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()
