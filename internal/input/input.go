package input

import (
	"bufio"
	"io"
	"strconv"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Games   bool
	Dismiss bool
	Enter   bool
	Escape  bool
	Pointer Pointer
	Pressed []byte
}

// Pointer reports the pointer activity seen since the previous read.
// X and Y are 1-based terminal columns and rows of the latest motion report.
type Pointer struct {
	X, Y  int
	Moved bool
	Left  bool
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	games   time.Time
	dismiss time.Time
	enter   time.Time
	escape  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState

	// pending holds bytes taken from ch but not yet consumed: an incomplete
	// escape sequence, or bytes handed back by a reader that was closed.
	mu      sync.Mutex
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for mouse and focus reports and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	s.mu.Lock()
	buf := s.pending
	s.pending = nil
	s.mu.Unlock()

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.quit = now
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var ptr Pointer
	var pressed []byte

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			n, complete := parseCSI(buf[i:], &ptr)
			if !complete {
				s.unread(buf[i:]...)
				break
			}
			if n > 0 {
				i += n - 1
				continue
			}
		}

		pressed = append(pressed, b)
		applyByteToState(&s.state, b, now)
	}

	return Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Games:   now.Sub(s.state.games) < keyHoldDuration,
		Dismiss: now.Sub(s.state.dismiss) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Pointer: ptr,
		Pressed: pressed,
	}
}

// parseCSI consumes a control sequence at the start of seq (which begins with ESC [).
// It returns the number of bytes consumed, or 0 if the sequence is not one it knows.
// complete is false when seq ends before the sequence does.
func parseCSI(seq []byte, ptr *Pointer) (n int, complete bool) {
	if len(seq) < 3 {
		return 0, false
	}
	if seq[2] == '<' {
		// SGR mouse report: ESC [ < button ; col ; row (M|m)
		for j := 3; j < len(seq); j++ {
			switch c := seq[j]; {
			case c == 'M' || c == 'm':
				parseSGRMouse(seq[3:j], ptr)
				return j + 1, true
			case c != ';' && (c < '0' || c > '9'):
				return 0, true
			}
		}
		return 0, false
	}

	// Any other sequence runs to its final byte (0x40-0x7E).
	for j := 2; j < len(seq); j++ {
		c := seq[j]
		if c < 0x40 || c > 0x7e {
			continue
		}
		if j == 2 && c == 'O' { // focus out: the pointer left the terminal
			ptr.Left = true
			ptr.Moved = false
		}
		return j + 1, true
	}
	return 0, false
}

func parseSGRMouse(params []byte, ptr *Pointer) {
	var fields [3]int
	field, start := 0, 0
	for j := 0; j <= len(params); j++ {
		if j == len(params) || params[j] == ';' {
			if field >= len(fields) {
				return
			}
			v, err := strconv.Atoi(string(params[start:j]))
			if err != nil {
				return
			}
			fields[field] = v
			field++
			start = j + 1
		}
	}
	if field != len(fields) {
		return
	}
	ptr.X, ptr.Y = fields[1], fields[2]
	ptr.Moved = true
	ptr.Left = false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'g', 'G':
		state.games = now
	case 'x', 'X':
		state.dismiss = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}

// unread returns bytes to the front of the next read.
func (s *Stream) unread(b ...byte) {
	s.mu.Lock()
	s.pending = append(s.pending, b...)
	s.mu.Unlock()
}

// ResetKeyInput clears held keys so a key that switched screens does not
// carry over into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// Reader returns an io.Reader fed by the stream, so another consumer (such as a
// TUI program) can take over input once this package stops polling it.
// Read blocks until at least one byte is available and returns io.EOF when the
// underlying reader is exhausted.
func (s *Stream) Reader() io.Reader {
	return s.ReaderUntil(nil)
}

// ReaderUntil is like Reader, but once done is closed Read returns io.EOF
// without taking bytes from the stream. A consumer whose read goroutine
// outlives it then leaves later input to the next reader.
func (s *Stream) ReaderUntil(done <-chan struct{}) io.Reader {
	return streamReader{s: s, done: done}
}

type streamReader struct {
	s    *Stream
	done <-chan struct{}
}

func (r streamReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.closed() {
		return 0, io.EOF
	}
	r.s.mu.Lock()
	n := copy(p, r.s.pending)
	r.s.pending = r.s.pending[n:]
	r.s.mu.Unlock()

	if n == 0 {
		select {
		case <-r.done:
			return 0, io.EOF
		case b, ok := <-r.s.ch:
			if !ok {
				return 0, io.EOF
			}
			// done may have closed while both cases were ready.
			if r.closed() {
				r.s.unread(b)
				return 0, io.EOF
			}
			p[0] = b
			n = 1
		}
	}
	for n < len(p) {
		select {
		case b, ok := <-r.s.ch:
			if !ok {
				return n, nil
			}
			if r.closed() {
				r.s.unread(b)
				return n, nil
			}
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

func (r streamReader) closed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
