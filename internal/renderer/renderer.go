package renderer

import (
	"sync"

	"github.com/dshills/rpncalc/internal/renderer/backend"
	"github.com/dshills/rpncalc/internal/renderer/core"
)

// Renderer draws laid out calculator lines onto a backend.
//
// Row 0 holds the window title. The remaining rows show the lines,
// scrolled so the last line (where typing happens) stays visible.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend
	screen  *backend.ScreenBuffer
	theme   Theme
	width   int
	height  int

	// Top line shown after the last draw.
	scroll int
}

// New creates a renderer for the backend.
func New(b backend.Backend, theme Theme) *Renderer {
	w, h := b.Size()
	return &Renderer{
		backend: b,
		screen:  backend.NewScreenBuffer(w, h),
		theme:   theme,
		width:   w,
		height:  h,
	}
}

// SetTheme replaces the theme used by later draws.
func (r *Renderer) SetTheme(t Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = t
}

// Resize updates the drawing area. The next Draw repaints every cell.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
	r.height = height
	r.screen.Resize(width, height)
}

// Invalidate makes the next Draw repaint every cell.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.MarkFullRedraw()
}

// Scroll returns the index of the first line shown by the last draw.
func (r *Renderer) Scroll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scroll
}

// Draw draws the title, the lines and the pending input, which is appended
// to the last line. The cursor is left after the input. Only cells that
// changed since the previous draw reach the backend.
func (r *Renderer) Draw(title string, lines []Line, input string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	if r.width <= 0 || r.height <= 0 {
		return
	}

	r.drawTitle(title)

	rows := r.height - 1
	if len(lines) == 0 {
		lines = []Line{{Kind: LinePrompt}}
	}
	r.scroll = 0
	if len(lines) > rows {
		r.scroll = len(lines) - rows
	}

	cursorX, cursorY := 0, 1
	for i := r.scroll; i < len(lines); i++ {
		y := 1 + i - r.scroll
		if y >= r.height {
			break
		}
		l := lines[i]
		x := r.drawText(0, y, l.Text, r.theme.Style(l.Kind))
		if i == len(lines)-1 {
			x = r.drawText(x, y, input, r.theme.Text)
			cursorX, cursorY = x, y
		}
	}

	if cursorX >= r.width {
		cursorX = r.width - 1
	}
	r.screen.Flush(r.backend)
	r.backend.ShowCursor(cursorX, cursorY)
	r.backend.Show()
}

func (r *Renderer) drawTitle(title string) {
	style := r.theme.Title
	for x := 0; x < r.width; x++ {
		r.screen.SetCell(x, 0, core.Cell{Rune: ' ', Width: 1, Style: style})
	}
	start := (r.width - core.StringWidth(title)) / 2
	if start < 0 {
		start = 0
	}
	r.drawText(start, 0, title, style)
}

// drawText draws s starting at column x and returns the column after it.
// Text past the right edge is clipped.
func (r *Renderer) drawText(x, y int, s string, style core.Style) int {
	for _, c := range core.CellsFromString(s, style) {
		if x >= r.width {
			return x
		}
		if c.IsContinuation() {
			c.Style = style
		}
		r.screen.SetCell(x, y, c)
		x++
	}
	return x
}
