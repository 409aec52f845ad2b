package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase neighbour lookup.
// Items are inserted by position and index, then nearby items can be queried
// in O(1) per cell via a 3x3 neighbourhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// items so that every candidate pair is found within the 3x3 neighbourhood.
//
// Positions outside the area are clamped into the edge cells.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	originX     float64
	originY     float64
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewBoundedGrid creates a grid covering the rectangle starting at
// (originX, originY) with the given dimensions.
func NewBoundedGrid(originX, originY, width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		originX:     originX,
		originY:     originY,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Covers reports whether the grid was built for the given geometry, so callers
// can reuse it across frames until the area changes.
func (g *SpatialGrid) Covers(originX, originY, width, height, cellSize float64) bool {
	return g.originX == originX && g.originY == originY && g.cellSize == cellSize &&
		g.cols == max(1, int(math.Ceil(width/cellSize))) &&
		g.rows == max(1, int(math.Ceil(height/cellSize)))
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighbourhood
// around the given position.
// If fn returns true, iteration stops early (useful for "find first" queries).
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for _, r := range g.neighbours(row, g.rows) {
		if r < 0 {
			continue
		}
		rowOffset := r * g.cols
		for _, c := range g.neighbours(col, g.cols) {
			if c < 0 {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// neighbours returns the three cell coordinates around i along an axis of n
// cells. Entries outside the grid are -1.
func (g *SpatialGrid) neighbours(i, n int) [3]int {
	out := [3]int{i - 1, i, i + 1}
	for k, v := range out {
		if v < 0 || v >= n {
			out[k] = -1
		}
	}
	return out
}

// posToCell converts coordinates to grid cell coordinates.
// Clamps to valid range to handle edge cases with floating point.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.originX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((y - g.originY) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
