package games

import "sync"

// Cell is one drawable unit of a surface
type Cell struct {
	Ch    rune   `json:"ch"`
	Color string `json:"color,omitempty"`
}

// Surface is the drawing target handed to a game at setup. Coordinates are
// column-major: x to the right, y downward.
type Surface interface {
	Size() (w, h int)
	Clear()
	Set(x, y int, cell Cell)
}

// Frame is a snapshotable cell buffer. Presentation layers (TUI blit, SSE
// frame events) read it between ticks.
type Frame struct {
	mu    sync.RWMutex
	w, h  int
	cells []Cell
}

// Ensure Frame implements Surface
var _ Surface = (*Frame)(nil)

// NewFrame creates a frame buffer of the given dimensions
func NewFrame(w, h int) *Frame {
	return &Frame{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
	}
}

func (f *Frame) Size() (int, int) {
	return f.w, f.h
}

func (f *Frame) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cells {
		f.cells[i] = Cell{}
	}
}

func (f *Frame) Set(x, y int, cell Cell) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells[y*f.w+x] = cell
}

// At returns the cell at the given coordinates
func (f *Frame) At(x, y int) Cell {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return Cell{}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cells[y*f.w+x]
}

// Snapshot returns a row-major copy of the buffer
func (f *Frame) Snapshot() [][]Cell {
	f.mu.RLock()
	defer f.mu.RUnlock()
	rows := make([][]Cell, f.h)
	for y := 0; y < f.h; y++ {
		row := make([]Cell, f.w)
		copy(row, f.cells[y*f.w:(y+1)*f.w])
		rows[y] = row
	}
	return rows
}

// NopSurface discards all drawing. Used in headless tests.
type NopSurface struct {
	W, H int
}

var _ Surface = NopSurface{}

func (s NopSurface) Size() (int, int)        { return s.W, s.H }
func (s NopSurface) Clear()                  {}
func (s NopSurface) Set(x, y int, cell Cell) {}
