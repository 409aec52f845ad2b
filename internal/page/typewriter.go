// Package page holds the small animated widgets drawn over the home page.
package page

import "time"

// Typewriter timings.
const (
	TypeDelay   = 150 * time.Millisecond
	DeleteDelay = 100 * time.Millisecond
	FullPause   = 2000 * time.Millisecond
	EmptyPause  = 500 * time.Millisecond
)

// Typewriter types a text one rune at a time, pauses, deletes it again and
// starts over.
type Typewriter struct {
	text     []rune
	n        int
	deleting bool
	next     time.Time
}

// NewTypewriter starts with an empty text; the first rune appears on the first
// Update.
func NewTypewriter(text string) *Typewriter {
	return &Typewriter{text: []rune(text)}
}

// Update advances the animation to now and returns the visible text. Steps
// missed between calls are caught up in order.
func (t *Typewriter) Update(now time.Time) string {
	if t.next.IsZero() {
		t.next = now
	}
	for !now.Before(t.next) {
		t.next = t.next.Add(t.step())
	}
	return t.Text()
}

func (t *Typewriter) step() time.Duration {
	switch {
	case !t.deleting && t.n < len(t.text):
		t.n++
		return TypeDelay
	case t.deleting && t.n > 0:
		t.n--
		return DeleteDelay
	case !t.deleting:
		t.deleting = true
		return FullPause
	default:
		t.deleting = false
		return EmptyPause
	}
}

// Text returns the currently visible text.
func (t *Typewriter) Text() string {
	return string(t.text[:t.n])
}

// Width returns the width of the full text, for centring.
func (t *Typewriter) Width() int {
	return len(t.text)
}
