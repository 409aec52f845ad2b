package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/novaplay/novaplay/internal/field"
	"github.com/novaplay/novaplay/internal/page"
)

// Options configures the desktop window.
type Options struct {
	Width, Height int
	Title         string
	Field         field.Config
}

// Game adapts a field.Driver to ebiten's update/draw cycle. Draw steps one
// frame; Update forwards the cursor and ends the game after teardown.
type Game struct {
	driver  *field.Driver
	surface *Surface
	title   *page.Typewriter

	width, height int
	cursorX       int
	cursorY       int
	inside        bool
	err           error
}

// NewGame builds the field for a window of the given size.
func NewGame(opts Options) *Game {
	surface := NewSurface(opts.Width, opts.Height)
	return &Game{
		driver:  field.NewDriver(surface, opts.Field),
		surface: surface,
		title:   page.NewTypewriter(opts.Title),
		width:   opts.Width,
		height:  opts.Height,
	}
}

// Driver returns the field driver, so callers can tear the window down.
func (g *Game) Driver() *field.Driver {
	return g.driver
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.driver.Teardown()
	}
	if g.driver.Stopped() {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height
	switch {
	case inside && (!g.inside || x != g.cursorX || y != g.cursorY):
		g.driver.PointerMove(float64(x), float64(y))
	case !inside && g.inside:
		g.driver.PointerLeave()
	}
	g.cursorX, g.cursorY, g.inside = x, y, inside
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.setTarget(screen)
	if err := g.driver.Step(); err != nil {
		g.err = err
	}
	ebitenutil.DebugPrintAt(screen, g.title.Update(time.Now()), 16, 16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.resize(outsideWidth, outsideHeight)
		g.driver.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := NewGame(opts)
	defer g.driver.Teardown()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
