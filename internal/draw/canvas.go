package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Each terminal cell holds two square sub-pixels. Logical coordinates are mapped to
// sub-pixels by a fixed unit (logical units per sub-pixel), so the logical size of the
// canvas follows the terminal size.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	unit           float64          // Logical units per sub-pixel
	invUnit        float64

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Last frame written to the terminal, used to skip unchanged cells.
	prev []renderedCell

	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte
}

// renderedCell is the quantised colour pair last written for a terminal cell.
type renderedCell struct {
	top, bottom [3]uint8
	valid       bool
}

// NewCanvas creates a canvas for the given terminal dimensions.
// unit is the number of logical units covered by one sub-pixel.
func NewCanvas(termWidth, termHeight int, unit float64) *Canvas {
	if unit <= 0 {
		unit = 1
	}
	c := &Canvas{unit: unit, invUnit: 1 / unit}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions. The unit is kept, so the
// logical size changes with the terminal.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]colorful.Color, c.subPixelHeight*termWidth)
	c.prev = make([]renderedCell, termWidth*termHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Size returns the logical width and height.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.termWidth) * c.unit, float64(c.subPixelHeight) * c.unit
}

// Unit returns the number of logical units per sub-pixel.
func (c *Canvas) Unit() float64 {
	return c.unit
}

// Clear resets all pixels to black.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Fill paints every pixel with c.
func (c *Canvas) Fill(col colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// Pixel returns the colour at sub-pixel (x, y), or black outside the canvas.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}
	}
	return c.pixels[y*c.termWidth+x]
}

// blendPixel mixes col into the sub-pixel at (x, y) with the given opacity.
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if alpha <= 0 || x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	i := y*c.termWidth + x
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// FillCircle blends a disc. Discs smaller than a sub-pixel light the centre pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	px := cx * c.invUnit
	py := cy * c.invUnit
	pr := r * c.invUnit
	if pr < 0.75 {
		c.blendPixel(int(math.Floor(px)), int(math.Floor(py)), col, alpha)
		return
	}

	r2 := pr * pr
	yStart := int(math.Floor(py - pr))
	yEnd := int(math.Ceil(py + pr))
	xStart := int(math.Floor(px - pr))
	xEnd := int(math.Ceil(px + pr))
	for y := yStart; y <= yEnd; y++ {
		dy := float64(y) + 0.5 - py
		for x := xStart; x <= xEnd; x++ {
			dx := float64(x) + 0.5 - px
			if dx*dx+dy*dy <= r2 {
				c.blendPixel(x, y, col, alpha)
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm.
// Lines are one sub-pixel wide; widths below one fade the stroke proportionally.
func (c *Canvas) StrokeLine(p1, p2 Point, width float64, col colorful.Color, alpha float64) {
	if width < 1 {
		alpha *= width
	}
	if alpha <= 0 {
		return
	}

	x1 := int(math.Floor(p1.X * c.invUnit))
	y1 := int(math.Floor(p1.Y * c.invUnit))
	x2 := int(math.Floor(p2.X * c.invUnit))
	y2 := int(math.Floor(p2.Y * c.invUnit))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.blendPixel(x1, y1, col, alpha)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRadialGradient blends a disc whose opacity follows stops from centre to edge.
func (c *Canvas) FillRadialGradient(cx, cy, r float64, col colorful.Color, stops []GradientStop) {
	px := cx * c.invUnit
	py := cy * c.invUnit
	pr := r * c.invUnit
	if pr <= 0 {
		return
	}

	yStart := max(int(math.Floor(py-pr)), 0)
	yEnd := min(int(math.Ceil(py+pr)), c.subPixelHeight-1)
	xStart := max(int(math.Floor(px-pr)), 0)
	xEnd := min(int(math.Ceil(px+pr)), c.termWidth-1)
	invR := 1 / pr
	for y := yStart; y <= yEnd; y++ {
		dy := float64(y) + 0.5 - py
		for x := xStart; x <= xEnd; x++ {
			dx := float64(x) + 0.5 - px
			t := math.Sqrt(dx*dx+dy*dy) * invR
			if t >= 1 {
				continue
			}
			c.blendPixel(x, y, col, GradientAlpha(stops, t))
		}
	}
}

// ForceRedraw invalidates the last rendered frame so the next Render repaints every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// Touch invalidates width cells starting at 0-based (col, row), typically because text
// was written over them.
func (c *Canvas) Touch(col, row, width int) {
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col, 0); x < min(col+width, c.termWidth); x++ {
		c.prev[row*c.termWidth+x].valid = false
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the cells that changed since the previous Render using half-block
// characters with 24-bit foreground (top) and background (bottom) colours.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var lastFg, lastBg [3]uint8
	haveFg, haveBg := false, false
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cell := renderedCell{
				top:    quantise(c.pixels[topOffset+col]),
				bottom: quantise(c.pixels[bottomOffset+col]),
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.prev[idx] == cell {
				continue
			}
			c.prev[idx] = cell

			if cursorRow != row || cursorCol != col {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}

			if cell.top == cell.bottom {
				if !haveBg || lastBg != cell.bottom {
					c.writeSGR(48, cell.bottom)
					lastBg, haveBg = cell.bottom, true
				}
				c.renderBuf.WriteByte(' ')
			} else {
				if !haveFg || lastFg != cell.top {
					c.writeSGR(38, cell.top)
					lastFg, haveFg = cell.top, true
				}
				if !haveBg || lastBg != cell.bottom {
					c.writeSGR(48, cell.bottom)
					lastBg, haveBg = cell.bottom, true
				}
				c.renderBuf.WriteRune(BlockUpperHalf)
			}
			cursorCol, cursorRow = col+1, row
		}
	}

	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString(resetSGR)

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeSGR(kind int, rgb [3]uint8) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(kind), 10))
	c.renderBuf.WriteString(";2")
	for _, v := range rgb {
		c.renderBuf.WriteByte(';')
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v), 10))
	}
	c.renderBuf.WriteByte('m')
}

func quantise(col colorful.Color) [3]uint8 {
	r, g, b := col.Clamped().RGB255()
	return [3]uint8{r, g, b}
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.invUnit))
	py := int(math.Floor(y * c.invUnit))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal position (as reported by mouse
// events) to the logical coordinates of the cell centre, accounting for the offset.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	x = (float64(col-1-c.offsetCol) + 0.5) * c.unit
	y = (float64(row-1-c.offsetRow)*2 + 1) * c.unit
	return x, y
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)
