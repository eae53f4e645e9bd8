package backend

import "github.com/dshills/rpncalc/internal/renderer/core"

// ScreenBuffer is a double buffer of cells. Frames are drawn into the back
// buffer and only cells that differ from the front buffer are flushed to
// the backend.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{width: width, height: height, fullRedraw: true}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = make([][]core.Cell, sb.height)
	sb.back = make([][]core.Cell, sb.height)
	for y := 0; y < sb.height; y++ {
		sb.front[y] = make([]core.Cell, sb.width)
		sb.back[y] = make([]core.Cell, sb.width)
		for x := 0; x < sb.width; x++ {
			sb.front[y][x] = core.EmptyCell()
			sb.back[y][x] = core.EmptyCell()
		}
	}
}

// Resize reallocates the buffer. The next Flush redraws every cell.
func (sb *ScreenBuffer) Resize(width, height int) {
	if width == sb.width && height == sb.height {
		return
	}
	sb.width = width
	sb.height = height
	sb.allocate()
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell sets a cell in the back buffer.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < sb.width && y >= 0 && y < sb.height {
		sb.back[y][x] = cell
	}
}

// GetCell returns a cell from the back buffer.
func (sb *ScreenBuffer) GetCell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// Clear blanks the back buffer.
func (sb *ScreenBuffer) Clear() {
	empty := core.EmptyCell()
	for y := range sb.back {
		for x := range sb.back[y] {
			sb.back[y][x] = empty
		}
	}
}

// MarkFullRedraw forces every cell to be flushed next time.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// DiffChange is one cell that needs to be written to the display.
type DiffChange struct {
	X, Y int
	Cell core.Cell
}

// ComputeDiff returns the cells that differ between the back and front
// buffers, or every cell after a resize or MarkFullRedraw.
func (sb *ScreenBuffer) ComputeDiff() []DiffChange {
	var changes []DiffChange
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.fullRedraw || sb.back[y][x] != sb.front[y][x] {
				changes = append(changes, DiffChange{X: x, Y: y, Cell: sb.back[y][x]})
			}
		}
	}
	return changes
}

// Sync copies the back buffer to the front buffer.
func (sb *ScreenBuffer) Sync() {
	for y := 0; y < sb.height; y++ {
		copy(sb.front[y], sb.back[y])
	}
	sb.fullRedraw = false
}

// Flush writes the changed cells to b, syncs the buffers and returns the
// number of cells written.
func (sb *ScreenBuffer) Flush(b Backend) int {
	changes := sb.ComputeDiff()
	for _, c := range changes {
		b.SetCell(c.X, c.Y, c.Cell)
	}
	sb.Sync()
	return len(changes)
}
