package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Faction returns a random live faction id in [1, factions).
func (r *RNG) Faction(factions int) Faction {
	if factions <= 1 {
		return Dead
	}
	return Faction(1 + r.r.IntN(factions-1))
}

// FillFactions populates the grid with random occupants: each cell becomes a
// live faction in [1, factions) with probability density, otherwise Dead.
func FillFactions(r *RNG, g *FactionGrid, factions int, density float64) {
	cells := g.Cells()
	for i := range cells {
		if r.r.Float64() < density {
			cells[i] = r.Faction(factions)
		} else {
			cells[i] = Dead
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
