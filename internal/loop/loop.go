// Package loop runs a visitor session: the home page, and the catalog browser
// when the visitor asks for it, until they quit.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/novaplay/novaplay/internal/catalog"
	"github.com/novaplay/novaplay/internal/draw"
	"github.com/novaplay/novaplay/internal/field"
	"github.com/novaplay/novaplay/internal/input"
	"github.com/novaplay/novaplay/internal/loop/client"
	"github.com/novaplay/novaplay/internal/page"
	"github.com/novaplay/novaplay/internal/ui"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Loader       *catalog.Loader
	Field        *field.Config
	Logger       *log.Logger
	// Renderer styles the catalog browser; nil uses the default renderer.
	Renderer *lipgloss.Renderer
	// StartInCatalog opens the catalog before the home page.
	StartInCatalog bool
}

// Run alternates between the home page and the catalog browser until the
// visitor quits, the input closes or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	session := &page.MemoryStore{}

	var count atomic.Int64
	count.Store(-1)
	if opts.Loader != nil {
		remove := opts.Loader.OnLoaded(func(n int) { count.Store(int64(n)) })
		defer remove()
	}

	clientOpts := client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Session:      session,
		Field:        opts.Field,
		Logger:       logger,
		GameCount:    func() int { return int(count.Load()) },
	}

	if opts.StartInCatalog {
		stream := client.NewInputStream(r)
		if err := runCatalog(ctx, stream, w, opts); err != nil {
			return err
		}
		clientOpts.Stream = stream
	}

	for ctx.Err() == nil {
		home := client.NewClient(r, w, clientOpts)
		clientOpts.Stream = home.InputStream()

		res, err := home.Run(ctx)
		if err != nil {
			return fmt.Errorf("home page: %w", err)
		}
		logger.Debug("page closed", "result", res)
		if res != client.ResultGames {
			return nil
		}

		if err := runCatalog(ctx, home.InputStream(), w, opts); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func runCatalog(ctx context.Context, stream *input.Stream, w io.Writer, opts Options) error {
	done := make(chan struct{})
	defer close(done)

	m := ui.New(ctx, opts.Loader, opts.Renderer)
	if opts.Loader == nil {
		m = m.WithGames(nil)
	}
	var size ui.SizeFunc
	if opts.TermSizeFunc != nil {
		size = ui.SizeFunc(opts.TermSizeFunc)
	}
	if err := ui.Run(ctx, m, stream.ReaderUntil(done), w, size); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}
