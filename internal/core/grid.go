package core

// Faction identifies the group occupying a cell. Dead marks an unoccupied
// cell; None is only ever returned by out-of-bounds reads and must never be
// stored in a grid.
type Faction int8

const (
	// None is the sentinel returned when probing a coordinate outside the
	// grid. It is not a dead cell and must be excluded from neighbor counts.
	None Faction = -1
	// Dead marks an unoccupied cell.
	Dead Faction = 0
)

// FactionGrid stores a 2D grid of faction ids in row-major order. Dimensions
// are fixed for the lifetime of the grid.
type FactionGrid struct {
	Rows, Cols int
	data       []Faction
}

// NewFactionGrid allocates a dead grid with the given dimensions.
func NewFactionGrid(rows, cols int) *FactionGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &FactionGrid{Rows: rows, Cols: cols, data: make([]Faction, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FactionGrid) Cells() []Faction { return g.data }

// Index returns the linear slice index for (row, col).
func (g *FactionGrid) Index(row, col int) int { return row*g.Cols + col }

// RowCol converts a linear index back into (row, col).
func (g *FactionGrid) RowCol(idx int) (int, int) { return idx / g.Cols, idx % g.Cols }

// At returns the faction at (row, col), or None when the coordinate lies
// outside the grid.
func (g *FactionGrid) At(row, col int) Faction {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return None
	}
	return g.data[row*g.Cols+col]
}

// Set writes the faction at (row, col). Out-of-bounds writes are ignored.
func (g *FactionGrid) Set(row, col int, f Faction) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	g.data[row*g.Cols+col] = f
}

// Clone returns an independent copy of the grid.
func (g *FactionGrid) Clone() *FactionGrid {
	c := &FactionGrid{Rows: g.Rows, Cols: g.Cols, data: make([]Faction, len(g.data))}
	copy(c.data, g.data)
	return c
}

// CopyFrom overwrites this grid's cells with those of src. Dimensions must
// match; mismatched grids are left untouched.
func (g *FactionGrid) CopyFrom(src *FactionGrid) {
	if src == nil || src.Rows != g.Rows || src.Cols != g.Cols {
		return
	}
	copy(g.data, src.data)
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *FactionGrid) Equal(o *FactionGrid) bool {
	if o == nil || g.Rows != o.Rows || g.Cols != o.Cols {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Clear fills the grid with Dead.
func (g *FactionGrid) Clear() {
	for i := range g.data {
		g.data[i] = Dead
	}
}
