package infection

import "goi/internal/core"

// MaxFactions bounds the faction id space, including the dead faction 0.
// Live faction ids occupy [1, MaxFactions).
const MaxFactions = 10

// birthable reports whether a dead cell with n same-faction neighbors is born.
func birthable(n int) bool { return n == 3 }

// survivable reports whether a live cell with n friendly neighbors survives.
func survivable(n int) bool { return n == 2 || n == 3 }

// contested reports whether n hostile neighbors kill a live cell in combat.
func contested(n int) bool { return n > 0 }

// nextState computes the next faction of the cell at (row, col) from the
// current grid and an optional invasion overlay (nil when no invasion is
// scheduled). The second return value reports whether the transition counts
// toward the combat death toll; under- and overpopulation deaths do not.
func nextState(cur, overlay *core.FactionGrid, row, col int) (core.Faction, bool) {
	cellFaction := cur.At(row, col)

	// An invasion overrides every other rule. Landing on an occupied cell is
	// a combat death regardless of the invader's faction.
	if overlay != nil {
		if invader := overlay.At(row, col); invader != core.Dead {
			return invader, cellFaction != core.Dead
		}
	}

	// Count occupants per faction over the 3x3 block centered on the cell.
	// Out-of-bounds probes return None and are excluded; the cell itself is
	// included here and subtracted afterwards.
	var counts [MaxFactions]int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if f := cur.At(row+dy, col+dx); f >= core.Dead {
				counts[f]++
			}
		}
	}
	counts[cellFaction]--

	if cellFaction == core.Dead {
		// Scan factions in ascending order; the last one satisfying the
		// birth predicate claims the cell, so the highest qualifying id wins
		// ties. Preserved deliberately, see DESIGN.md.
		next := core.Dead
		for f := core.Dead + 1; f < MaxFactions; f++ {
			if birthable(counts[f]) {
				next = f
			}
		}
		return next, false
	}

	hostile := 0
	for f := core.Dead + 1; f < MaxFactions; f++ {
		if f == cellFaction {
			continue
		}
		hostile += counts[f]
	}
	if contested(hostile) {
		return core.Dead, true
	}
	if !survivable(counts[cellFaction]) {
		return core.Dead, false
	}
	return cellFaction, false
}
