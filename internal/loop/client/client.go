// Package client runs the terminal home page: the particle field drawn on a
// half-block canvas with the title, notification and cursor follower on top.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/novaplay/novaplay/internal/draw"
	"github.com/novaplay/novaplay/internal/field"
	"github.com/novaplay/novaplay/internal/input"
	"github.com/novaplay/novaplay/internal/loop/config"
	"github.com/novaplay/novaplay/internal/page"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	driver       *field.Driver
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates overlay text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	title     *page.Typewriter
	notice    *page.Notification
	follower  *page.Follower
	gameCount func() int
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	// Stream reuses an input stream from an earlier page of the same session.
	Stream *input.Stream
	// Session remembers dismissed widgets across pages of the same session.
	Session page.SessionStore
	// Field overrides the animation configuration.
	Field  *field.Config
	Logger *log.Logger
	// GameCount reports the size of the last loaded catalog, or -1 before
	// any load.
	GameCount func() int
}

// NewClient creates a home page drawing to w and reading keys from r.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	stream := opts.Stream
	if stream == nil {
		stream = input.StartStream(r)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := field.DefaultConfig()
	if opts.Field != nil {
		cfg = *opts.Field
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, config.PixelScale)
	canvas.SetOffset(offsetCol, offsetRow)

	now := time.Now()
	c := &Client{
		state:        NewClientState(now),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  stream,
		lastInput:    now,
		termSizeFunc: termSizeFunc,
		logger:       logger,
		title:        page.NewTypewriter(config.Title),
		notice:       page.NewNotification(config.NotificationText, config.NotificationKey, opts.Session, now),
		follower:     page.NewFollower(config.ClientTargetFPS),
		gameCount:    opts.GameCount,
	}
	c.driver = field.NewDriver(canvas, cfg,
		field.WithFrameTime(config.ClientTargetFrameTime),
		field.WithBeforeFrame(c.beforeFrame),
		field.WithPresent(c.drawFrame),
	)
	return c
}

// InputStream returns the stream the page reads from, for handing the
// terminal to the next page.
func (c *Client) InputStream() *input.Stream {
	return c.inputStream
}

// Run shows the home page until the user leaves it or ctx is cancelled.
func (c *Client) Run(ctx context.Context) (Result, error) {
	draw.HideCursor(c.writer)
	draw.EnablePointer(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisablePointer(c.writer)
	draw.ClearScreen(c.writer)

	err := c.driver.Run(ctx)
	c.driver.Teardown()

	draw.ClearScreen(c.writer)
	c.logger.Debug("home page closed", "result", c.state.result, "frames", c.driver.State().Tick)
	return c.state.result, err
}

// Stop closes the page from another goroutine, for example when the
// connection drops.
func (c *Client) Stop() {
	c.driver.Teardown()
}

// leave ends the page after the current frame.
func (c *Client) leave(r Result) {
	c.state.result = r
	c.driver.Teardown()
}

// beforeFrame polls input and the terminal size and forwards them to the field.
func (c *Client) beforeFrame() error {
	c.processInput()
	c.updateScreen()
	return nil
}

// processInput reads input, handles page keys and feeds pointer reports to the field.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 || in.Pointer.Moved {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.leave(ResultInactive)
		return
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	switch {
	case in.Quit:
		c.leave(ResultQuit)
		return
	case in.Games, in.Enter:
		input.ResetKeyInput(c.inputStream)
		c.leave(ResultGames)
		return
	case in.Dismiss:
		c.notice.Dismiss()
		c.canvas.ForceRedraw()
	}

	if in.Pointer.Moved {
		c.state.pointerCol, c.state.pointerRow = in.Pointer.X, in.Pointer.Y
		c.driver.PointerMove(c.canvas.TerminalToLogical(in.Pointer.X, in.Pointer.Y))
	}
	if in.Pointer.Left {
		c.state.pointerCol, c.state.pointerRow = 0, 0
		c.driver.PointerLeave()
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}
	draw.ClearScreen(c.writer)
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.canvas.ForceRedraw()
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.driver.Resize(c.canvas.Size())
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max(termWidth-renderWidth, 0) / 2
	offsetRow = max(termHeight-renderHeight, 0) / 2
	return
}

// NewInputStream starts reading r for a session that opens on another page
// first. Pass the stream to the home page through ClientOptions.Stream.
func NewInputStream(r *bufio.Reader) *input.Stream {
	return input.StartStream(r)
}
