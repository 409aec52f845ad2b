package client

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/novaplay/novaplay/internal/draw"
	"github.com/novaplay/novaplay/internal/loop/config"
)

var (
	titleColor  = draw.MustParseHex("#f4f1ff")
	accentColor = draw.MustParseHex("#a78bfa")
	mutedColor  = draw.MustParseHex("#8a84a3")
	cyanColor   = draw.MustParseHex("#06b6d4")
)

// drawFrame presents the field frame and draws the overlays on top of it.
func (c *Client) drawFrame() error {
	// On inactivity transitions, do a full terminal clear so the
	// warning doesn't persist on screen.
	if c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.wasInactive = c.state.isInactive
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	c.drawUI(time.Now())

	return c.chunkWriter.Flush()
}

// drawUI draws the page overlay.
func (c *Client) drawUI(now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawTitle(centerX, centerY, now)
	if c.notice.Visible(now) {
		c.drawNotification(termWidth)
	}
	c.drawFollower()
}

// text writes s at 1-based (col, row) over the canvas and marks the cells so
// the next render repaints them.
func (c *Client) text(col, row int, fg colorful.Color, s string) {
	n := utf8.RuneCountInString(s)
	if row < 1 || row > c.canvas.TerminalHeight() || n == 0 {
		return
	}
	if col < 1 {
		col = 1
	}
	if over := col + n - 1 - c.canvas.TerminalWidth(); over > 0 {
		r := []rune(s)
		if over >= len(r) {
			return
		}
		s = string(r[:len(r)-over])
		n -= over
	}
	bg := c.driver.State().Config.Background
	c.chunkWriter.WriteAt(col, row, draw.Styled(fg, bg, s))
	c.canvas.Touch(col-1, row-1, n)
}

func (c *Client) centered(centerX, row int, fg colorful.Color, s string) {
	c.text(centerX-utf8.RuneCountInString(s)/2, row, fg, s)
}

// drawTitle draws the typed title with a caret, the subtitle and the key hints.
func (c *Client) drawTitle(centerX, centerY int, now time.Time) {
	typed := c.title.Update(now)
	caret := " "
	if now.UnixMilli()/500%2 == 0 {
		caret = "▌"
	}
	// Pad to the full title width so deleted runes are overwritten.
	line := fmt.Sprintf("%-*s", c.title.Width()+1, typed+caret)
	c.text(centerX-c.title.Width()/2, centerY-2, titleColor, line)

	c.centered(centerX, centerY, mutedColor, config.Subtitle)
	c.centered(centerX, centerY+2, accentColor, c.hint())
}

// hint is the key help line. It names the catalog size once a load has
// reported one.
func (c *Client) hint() string {
	games := "games"
	if c.gameCount != nil {
		switch n := c.gameCount(); {
		case n == 1:
			games = "1 game"
		case n >= 0:
			games = fmt.Sprintf("%d games", n)
		}
	}
	return "g  browse " + games + "    x  dismiss    q  quit"
}

// drawNotification draws the dismissible banner in the top-right corner.
func (c *Client) drawNotification(termWidth int) {
	msg := "★ " + config.NotificationText + "  [x]"
	col := termWidth - utf8.RuneCountInString(msg) - 1
	c.text(col, 2, cyanColor, msg)
}

// drawFollower draws the glyph trailing the pointer.
func (c *Client) drawFollower() {
	if c.state.pointerCol == 0 {
		return
	}
	col := float64(c.state.pointerCol - c.canvas.OffsetCol())
	row := float64(c.state.pointerRow - c.canvas.OffsetRow())
	x, y := c.follower.Update(col, row)
	c.text(int(math.Round(x)), int(math.Round(y)), accentColor, config.FollowerGlyph)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, titleColor, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.centered(centerX, centerY, mutedColor, msg)
	c.centered(centerX, centerY+2, accentColor, "Press any key to continue")
}
