package infection

import (
	"testing"

	"goi/internal/core"
)

// place writes cells given as (row, col, faction) triples.
func place(g *core.FactionGrid, cells ...[3]int) {
	for _, c := range cells {
		g.Set(c[0], c[1], core.Faction(c[2]))
	}
}

func TestBirthOnExactlyThreeNeighbors(t *testing.T) {
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{0, 0, 2}, [3]int{0, 1, 2}, [3]int{0, 2, 2})

	next, fought := nextState(g, nil, 1, 1)
	if next != 2 {
		t.Fatalf("dead cell with 3 neighbors of faction 2 became %d, expected 2", next)
	}
	if fought {
		t.Fatal("birth must not count toward the death toll")
	}
}

func TestNoBirthBelowThreeNeighbors(t *testing.T) {
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{0, 0, 2}, [3]int{0, 1, 2})

	if next, _ := nextState(g, nil, 1, 1); next != core.Dead {
		t.Fatalf("dead cell with 2 neighbors became %d, expected Dead", next)
	}
}

func TestBirthTieBreakHighestFactionWins(t *testing.T) {
	// 3 neighbors of faction 1 and 3 of faction 3 around a dead center: the
	// ascending scan overwrites, so the higher id claims the cell.
	g := core.NewFactionGrid(3, 3)
	place(g,
		[3]int{0, 0, 1}, [3]int{0, 1, 1}, [3]int{0, 2, 1},
		[3]int{2, 0, 3}, [3]int{2, 1, 3}, [3]int{2, 2, 3},
	)

	next, fought := nextState(g, nil, 1, 1)
	if next != 3 {
		t.Fatalf("tie between factions 1 and 3 resolved to %d, expected 3", next)
	}
	if fought {
		t.Fatal("birth must not count toward the death toll")
	}
}

func TestCombatDeathOnAnyHostileNeighbor(t *testing.T) {
	// Two friendly neighbors would normally mean survival; one hostile
	// neighbor overrides that.
	g := core.NewFactionGrid(3, 3)
	place(g,
		[3]int{1, 1, 1},
		[3]int{1, 0, 1}, [3]int{1, 2, 1},
		[3]int{0, 1, 2},
	)

	next, fought := nextState(g, nil, 1, 1)
	if next != core.Dead {
		t.Fatalf("contested cell became %d, expected Dead", next)
	}
	if !fought {
		t.Fatal("combat death must count toward the death toll")
	}
}

func TestUnderpopulationDeathWithoutToll(t *testing.T) {
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{1, 1, 1}, [3]int{1, 0, 1})

	next, fought := nextState(g, nil, 1, 1)
	if next != core.Dead {
		t.Fatalf("lonely cell became %d, expected Dead", next)
	}
	if fought {
		t.Fatal("underpopulation death must not count toward the death toll")
	}
}

func TestOverpopulationDeathWithoutToll(t *testing.T) {
	g := core.NewFactionGrid(3, 3)
	place(g,
		[3]int{1, 1, 1},
		[3]int{0, 0, 1}, [3]int{0, 1, 1}, [3]int{0, 2, 1}, [3]int{1, 0, 1},
	)

	next, fought := nextState(g, nil, 1, 1)
	if next != core.Dead {
		t.Fatalf("crowded cell became %d, expected Dead", next)
	}
	if fought {
		t.Fatal("overpopulation death must not count toward the death toll")
	}
}

func TestSurvivalWithTwoOrThreeFriendlyNeighbors(t *testing.T) {
	for _, friendly := range []int{2, 3} {
		g := core.NewFactionGrid(3, 3)
		place(g, [3]int{1, 1, 1})
		neighbors := [][3]int{{0, 0, 1}, {0, 1, 1}, {0, 2, 1}}
		place(g, neighbors[:friendly]...)

		next, fought := nextState(g, nil, 1, 1)
		if next != 1 {
			t.Fatalf("cell with %d friendly neighbors became %d, expected 1", friendly, next)
		}
		if fought {
			t.Fatal("survival must not touch the death toll")
		}
	}
}

func TestInvasionOverridesAllRules(t *testing.T) {
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{1, 1, 1}, [3]int{1, 0, 1}, [3]int{1, 2, 1})
	overlay := core.NewFactionGrid(3, 3)
	overlay.Set(1, 1, 4)

	next, fought := nextState(g, overlay, 1, 1)
	if next != 4 {
		t.Fatalf("invaded cell became %d, expected 4", next)
	}
	if !fought {
		t.Fatal("invading an occupied cell must count toward the death toll")
	}
}

func TestSameFactionInvasionStillCountsTowardToll(t *testing.T) {
	// The contract checks prior occupancy only, not faction equality.
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{1, 1, 2})
	overlay := core.NewFactionGrid(3, 3)
	overlay.Set(1, 1, 2)

	next, fought := nextState(g, overlay, 1, 1)
	if next != 2 {
		t.Fatalf("invaded cell became %d, expected 2", next)
	}
	if !fought {
		t.Fatal("same-faction invasion of an occupied cell must count toward the death toll")
	}
}

func TestInvasionOfEmptyCellWithoutToll(t *testing.T) {
	g := core.NewFactionGrid(3, 3)
	overlay := core.NewFactionGrid(3, 3)
	overlay.Set(1, 1, 3)

	next, fought := nextState(g, overlay, 1, 1)
	if next != 3 {
		t.Fatalf("invaded empty cell became %d, expected 3", next)
	}
	if fought {
		t.Fatal("invading an empty cell must not count toward the death toll")
	}
}

func TestDeadOverlayCellFallsThroughToRules(t *testing.T) {
	// A Dead overlay value means "no invasion here", not "clear the cell".
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{1, 1, 1}, [3]int{1, 0, 1}, [3]int{1, 2, 1})
	overlay := core.NewFactionGrid(3, 3)

	next, fought := nextState(g, overlay, 1, 1)
	if next != 1 {
		t.Fatalf("cell under a dead overlay became %d, expected 1", next)
	}
	if fought {
		t.Fatal("no combat occurred")
	}
}

func TestCornerCellExcludesOutOfBoundsNeighbors(t *testing.T) {
	// The corner sees only 3 in-bounds neighbors; filling them all births the
	// corner, and the 5 out-of-bounds probes contribute nothing.
	g := core.NewFactionGrid(3, 3)
	place(g, [3]int{0, 1, 2}, [3]int{1, 0, 2}, [3]int{1, 1, 2})

	next, _ := nextState(g, nil, 0, 0)
	if next != 2 {
		t.Fatalf("corner with 3 in-bounds neighbors became %d, expected 2", next)
	}

	// A corner cell of a fully occupied grid has exactly 3 friendly
	// neighbors and survives; counting the border as anything else would
	// change that.
	full := core.NewFactionGrid(2, 2)
	for i := range full.Cells() {
		full.Cells()[i] = 1
	}
	next, fought := nextState(full, nil, 0, 0)
	if next != 1 || fought {
		t.Fatalf("corner of a full 2x2 grid became %d (fought=%v), expected survival", next, fought)
	}
}
