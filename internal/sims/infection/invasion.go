package infection

import (
	"fmt"

	"goi/internal/core"
)

// Schedule holds scripted invasions: for each scheduled generation, an
// overlay grid of forced faction assignments (Dead meaning "no invasion at
// this cell"). Overlays apply to exactly one generation each and are consumed
// in ascending generation order.
type Schedule struct {
	generations []int
	plans       []*core.FactionGrid
	cursor      int
}

// NewSchedule builds a Schedule from parallel lists of generation numbers and
// overlay grids. The plans are deep-copied; the caller keeps ownership of its
// slices and grids. Generations must be strictly ascending and >= 1, and all
// plans must match the given dimensions with faction ids in range.
func NewSchedule(generations []int, plans []*core.FactionGrid, rows, cols int) (*Schedule, error) {
	if len(generations) != len(plans) {
		return nil, fmt.Errorf("infection: %d invasion generations but %d plans", len(generations), len(plans))
	}
	s := &Schedule{
		generations: make([]int, len(generations)),
		plans:       make([]*core.FactionGrid, len(plans)),
	}
	prev := 0
	for i, gen := range generations {
		if gen <= prev {
			return nil, fmt.Errorf("infection: invasion generations must be strictly ascending, got %d after %d", gen, prev)
		}
		prev = gen
		plan := plans[i]
		if plan == nil || plan.Rows != rows || plan.Cols != cols {
			return nil, fmt.Errorf("infection: invasion plan %d does not match world dimensions %dx%d", i, rows, cols)
		}
		for _, f := range plan.Cells() {
			if f < core.Dead || f >= MaxFactions {
				return nil, fmt.Errorf("infection: invasion plan %d contains faction %d outside [0, %d)", i, f, MaxFactions)
			}
		}
		s.generations[i] = gen
		s.plans[i] = plan.Clone()
	}
	return s, nil
}

// Len returns the number of scheduled invasions.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.generations)
}

// Last returns the highest scheduled generation, or 0 for an empty schedule.
func (s *Schedule) Last() int {
	if s == nil || len(s.generations) == 0 {
		return 0
	}
	return s.generations[len(s.generations)-1]
}

// remaining returns the number of invasions not yet consumed.
func (s *Schedule) remaining() int {
	if s == nil {
		return 0
	}
	return len(s.generations) - s.cursor
}

// overlayFor returns the overlay scheduled for the given generation, or nil.
// Calls must be made with ascending generation numbers; each overlay is
// handed out once and then abandoned to the collector.
func (s *Schedule) overlayFor(gen int) *core.FactionGrid {
	if s == nil || s.cursor >= len(s.generations) {
		return nil
	}
	if s.generations[s.cursor] != gen {
		return nil
	}
	plan := s.plans[s.cursor]
	s.plans[s.cursor] = nil
	s.cursor++
	return plan
}

// clone returns an unconsumed copy. The engine consumes a clone per run so a
// caller-held Schedule can drive any number of runs.
func (s *Schedule) clone() *Schedule {
	if s == nil {
		return nil
	}
	c := &Schedule{
		generations: s.generations,
		plans:       make([]*core.FactionGrid, len(s.plans)),
	}
	for i, p := range s.plans {
		if p != nil {
			c.plans[i] = p.Clone()
		}
	}
	return c
}
