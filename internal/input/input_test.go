package input

import (
	"io"
	"testing"
	"time"
)

func newTestStream(data string) *Stream {
	s := &Stream{ch: make(chan byte, len(data)+1)}
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
	return s
}

func TestReadInputKeys(t *testing.T) {
	s := newTestStream("gx")
	in := s.read(time.Now())
	if !in.Games || !in.Dismiss {
		t.Fatalf("expected games and dismiss, got %+v", in)
	}
	if in.Quit {
		t.Fatal("unexpected quit")
	}
	if string(in.Pressed) != "gx" {
		t.Fatalf("Pressed = %q, want %q", in.Pressed, "gx")
	}
}

func TestReadInputKeyHoldExpires(t *testing.T) {
	s := newTestStream("q")
	now := time.Now()
	if in := s.read(now); !in.Quit {
		t.Fatal("expected quit on the frame it was pressed")
	}
	if in := s.read(now.Add(time.Second)); in.Quit {
		t.Fatal("quit still held after hold duration")
	}
}

func TestReadInputMouseMotion(t *testing.T) {
	s := newTestStream("\x1b[<35;12;7M\x1b[<35;20;9M")
	in := s.read(time.Now())
	if !in.Pointer.Moved || in.Pointer.X != 20 || in.Pointer.Y != 9 {
		t.Fatalf("Pointer = %+v, want latest motion at (20, 9)", in.Pointer)
	}
	if in.Escape || len(in.Pressed) != 0 {
		t.Fatalf("mouse report leaked as keys: %+v", in)
	}
}

func TestReadInputFocusOutIsPointerLeave(t *testing.T) {
	s := newTestStream("\x1b[<35;4;4M\x1b[O")
	in := s.read(time.Now())
	if !in.Pointer.Left || in.Pointer.Moved {
		t.Fatalf("Pointer = %+v, want leave after motion", in.Pointer)
	}
}

func TestReadInputSplitSequence(t *testing.T) {
	s := newTestStream("\x1b[<35;1")
	in := s.read(time.Now())
	if in.Pointer.Moved || in.Escape {
		t.Fatalf("partial sequence produced input: %+v", in)
	}

	for _, b := range []byte("0;5M") {
		s.ch <- b
	}
	in = s.read(time.Now())
	if !in.Pointer.Moved || in.Pointer.X != 10 || in.Pointer.Y != 5 {
		t.Fatalf("Pointer = %+v, want (10, 5) after completion", in.Pointer)
	}
}

func TestReadInputArrowIsNotEscape(t *testing.T) {
	s := newTestStream("\x1b[A")
	if in := s.read(time.Now()); in.Escape {
		t.Fatal("arrow key reported as escape")
	}

	s = newTestStream("\x1b")
	if in := s.read(time.Now()); !in.Escape {
		t.Fatal("lone escape not reported")
	}
}

func TestStreamReaderHandOff(t *testing.T) {
	s := newTestStream("abc")
	close(s.ch)

	r := s.Reader()
	buf := make([]byte, 8)
	n, err := r.Read(buf)
	if err != nil || string(buf[:n]) != "abc" {
		t.Fatalf("Read() = %q, %v; want %q, nil", buf[:n], err, "abc")
	}
	if _, err := r.Read(buf); err != io.EOF {
		t.Fatalf("Read() after close error = %v, want io.EOF", err)
	}
}

func TestReaderUntilLeavesInputAfterDone(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}
	done := make(chan struct{})
	r := s.ReaderUntil(done)

	s.ch <- 'a'
	buf := make([]byte, 4)
	if n, err := r.Read(buf); err != nil || string(buf[:n]) != "a" {
		t.Fatalf("Read() = %q, %v; want %q, nil", buf[:n], err, "a")
	}

	close(done)
	s.ch <- 'q'
	if _, err := r.Read(buf); err != io.EOF {
		t.Fatalf("Read() after done error = %v, want io.EOF", err)
	}
	if in := s.read(time.Now()); !in.Quit {
		t.Fatal("byte sent after done did not reach the stream's next reader")
	}
}

func TestReaderUntilHandsBackBytesReceivedAfterDone(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := &Stream{ch: make(chan byte, 1)}
		done := make(chan struct{})
		r := s.ReaderUntil(done)

		got := make(chan int, 1)
		go func() {
			n, _ := r.Read(make([]byte, 4))
			got <- n
		}()
		// Let the reader block on the channel before done closes.
		time.Sleep(time.Millisecond)
		close(done)
		s.ch <- 'q'

		if n := <-got; n != 0 {
			t.Fatalf("iteration %d: closed reader returned %d bytes", i, n)
		}
		if in := s.read(time.Now()); string(in.Pressed) != "q" {
			t.Fatalf("iteration %d: next reader saw %q, want %q", i, in.Pressed, "q")
		}
	}
}

func TestReaderAndPollingShareStream(t *testing.T) {
	s := &Stream{ch: make(chan byte, 64)}
	done := make(chan struct{})
	r := s.ReaderUntil(done)

	const total = 200
	readerBytes := make(chan int, 1)
	go func() {
		n := 0
		buf := make([]byte, 8)
		for {
			k, err := r.Read(buf)
			n += k
			if err != nil {
				readerBytes <- n
				return
			}
		}
	}()

	polled := 0
	for i := 0; i < total; i++ {
		s.ch <- 'z'
		if i%3 == 0 {
			polled += len(s.read(time.Now()).Pressed)
		}
	}
	close(done)
	n := <-readerBytes
	polled += len(s.read(time.Now()).Pressed)
	if n+polled != total {
		t.Fatalf("reader %d + polled %d bytes, want %d", n, polled, total)
	}
}
