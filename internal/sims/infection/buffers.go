package infection

import "goi/internal/core"

// buffers owns the two generation grids. Workers only ever see the pointers
// published for a single generation, and Swap runs strictly between the
// completion barrier and the next release, so no retired buffer is reachable
// from two owners at once.
type buffers struct {
	cur *core.FactionGrid
	nxt *core.FactionGrid
}

// newBuffers copies the caller's start grid into the current buffer and
// allocates a dead next buffer of the same dimensions.
func newBuffers(start *core.FactionGrid) *buffers {
	return &buffers{
		cur: start.Clone(),
		nxt: core.NewFactionGrid(start.Rows, start.Cols),
	}
}

// Current returns the read-only grid for the generation being computed.
func (b *buffers) Current() *core.FactionGrid { return b.cur }

// Next returns the write-only grid for the generation being computed.
func (b *buffers) Next() *core.FactionGrid { return b.nxt }

// Swap promotes next to current and recycles the old current grid as the
// upcoming next buffer. Every cell of next is written exactly once per
// generation, so the recycled grid needs no clearing.
func (b *buffers) Swap() {
	b.cur, b.nxt = b.nxt, b.cur
}
