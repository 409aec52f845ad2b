package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SizeFunc reports the current terminal size in cells.
type SizeFunc func() (width, height int, err error)

// sizePoll is how often Run checks size for hosts without resize signals.
const sizePoll = 250 * time.Millisecond

// Run shows m on out, reading keys from in, until the user quits or ctx ends.
// When size is set, it is polled and changes are delivered as window size
// messages; otherwise bubbletea queries out itself.
func Run(ctx context.Context, m CatalogModel, in io.Reader, out io.Writer, size SizeFunc) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	done := make(chan struct{})
	defer close(done)
	if size != nil {
		go watchSize(p, size, done)
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run catalog browser: %w", err)
	}
	return nil
}

func watchSize(p *tea.Program, size SizeFunc, done <-chan struct{}) {
	ticker := time.NewTicker(sizePoll)
	defer ticker.Stop()

	lastW, lastH := -1, -1
	for {
		if w, h, err := size(); err == nil && (w != lastW || h != lastH) {
			lastW, lastH = w, h
			p.Send(tea.WindowSizeMsg{Width: w, Height: h})
		}
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
