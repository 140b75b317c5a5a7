package infection

import (
	"fmt"
	"testing"

	"goi/internal/core"
)

func randomWorld(rows, cols int, seed int64) *core.FactionGrid {
	g := core.NewFactionGrid(rows, cols)
	core.FillFactions(core.NewRNG(seed), g, 4, 0.3)
	return g
}

// runSequential drives the reference World over the same start grid and
// schedule and returns its final grid and toll.
func runSequential(generations int, start *core.FactionGrid, sched *Schedule) (*core.FactionGrid, int) {
	cfg := DefaultConfig()
	cfg.Rows = start.Rows
	cfg.Cols = start.Cols
	w := NewWithConfig(cfg)
	if sched != nil {
		w.SetSchedule(sched)
	}
	w.SetStart(start)
	for i := 0; i < generations; i++ {
		w.Step()
	}
	return w.Grid().Clone(), w.DeathToll()
}

// runParallel captures the final grid through the observer hook.
func runParallel(t *testing.T, threads, generations int, start *core.FactionGrid, sched *Schedule) (*core.FactionGrid, int) {
	t.Helper()
	final := start.Clone()
	toll, err := Run(threads, generations, start, sched,
		WithObserver(func(s Snapshot) {
			if s.Generation == generations {
				final = s.Grid.Clone()
			}
		}))
	if err != nil {
		t.Fatalf("Run(threads=%d): %v", threads, err)
	}
	return final, toll
}

func testSchedule(t *testing.T, rows, cols int) *Schedule {
	t.Helper()
	invA := core.NewFactionGrid(rows, cols)
	invA.Set(1, 1, 3)
	invA.Set(1, 2, 3)
	invA.Set(2, 1, 3)
	invB := core.NewFactionGrid(rows, cols)
	invB.Set(rows-1, cols-1, 2)
	s, err := NewSchedule([]int{3, 7}, []*core.FactionGrid{invA, invB}, rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunMatchesSequentialReference(t *testing.T) {
	const rows, cols, generations = 12, 9, 20
	for seed := int64(1); seed <= 5; seed++ {
		start := randomWorld(rows, cols, seed)
		sched := testSchedule(t, rows, cols)
		wantGrid, wantToll := runSequential(generations, start, sched)

		for _, threads := range []int{1, 2, 3, 4, 7, 16} {
			gotGrid, gotToll := runParallel(t, threads, generations, start, sched)
			if gotToll != wantToll {
				t.Fatalf("seed %d, %d threads: toll %d, sequential reference %d", seed, threads, gotToll, wantToll)
			}
			if !gotGrid.Equal(wantGrid) {
				t.Fatalf("seed %d, %d threads: final grid differs from sequential reference", seed, threads)
			}
		}
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	const rows, cols, generations = 16, 16, 30
	start := randomWorld(rows, cols, 99)

	refGrid, refToll := runParallel(t, 1, generations, start, nil)
	for _, threads := range []int{2, 4, 5, 8, 13} {
		grid, toll := runParallel(t, threads, generations, start, nil)
		if toll != refToll {
			t.Fatalf("%d threads: toll %d, expected %d", threads, toll, refToll)
		}
		if !grid.Equal(refGrid) {
			t.Fatalf("%d threads: final grid differs from single-threaded run", threads)
		}
	}
}

func TestRunZeroGenerations(t *testing.T) {
	start := randomWorld(6, 6, 7)
	calls := 0
	toll, err := Run(4, 0, start, nil, WithObserver(func(Snapshot) { calls++ }))
	if err != nil {
		t.Fatal(err)
	}
	if toll != 0 {
		t.Fatalf("toll = %d after 0 generations, expected 0", toll)
	}
	if calls != 0 {
		t.Fatalf("observer ran %d times for a 0-generation run", calls)
	}
}

func TestRunDoesNotMutateCallerState(t *testing.T) {
	const rows, cols = 8, 8
	start := randomWorld(rows, cols, 21)
	startCopy := start.Clone()

	inv := core.NewFactionGrid(rows, cols)
	inv.Set(0, 0, 5)
	invCopy := inv.Clone()
	sched, err := NewSchedule([]int{2}, []*core.FactionGrid{inv}, rows, cols)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Run(3, 10, start, sched); err != nil {
		t.Fatal(err)
	}
	if !start.Equal(startCopy) {
		t.Fatal("Run mutated the caller's start grid")
	}
	if !inv.Equal(invCopy) {
		t.Fatal("Run mutated the caller's invasion plan")
	}

	// The same schedule value must drive a second run identically.
	gridA, tollA := runParallel(t, 2, 10, start, sched)
	gridB, tollB := runParallel(t, 4, 10, start, sched)
	if tollA != tollB || !gridA.Equal(gridB) {
		t.Fatal("reusing a schedule across runs changed the outcome")
	}
}

// TestBlinkerEvolution pins the end-to-end single-faction behavior to the
// exact predicates: the ends of a 3-cell line have one friendly neighbor and
// die of underpopulation, the center keeps two and survives, and the cells
// above and below the center see exactly three and are born. The line
// therefore flips orientation each generation and no death is ever a combat
// death.
func TestBlinkerEvolution(t *testing.T) {
	start := core.NewFactionGrid(3, 3)
	place(start, [3]int{1, 0, 1}, [3]int{1, 1, 1}, [3]int{1, 2, 1})

	vertical := core.NewFactionGrid(3, 3)
	place(vertical, [3]int{0, 1, 1}, [3]int{1, 1, 1}, [3]int{2, 1, 1})

	for _, threads := range []int{1, 3} {
		grid, toll := runParallel(t, threads, 1, start, nil)
		if !grid.Equal(vertical) {
			t.Fatalf("%d threads: generation 1 is not the vertical line", threads)
		}
		if toll != 0 {
			t.Fatalf("%d threads: toll = %d for a single-faction world, expected 0", threads, toll)
		}

		grid, toll = runParallel(t, threads, 2, start, nil)
		if !grid.Equal(start) {
			t.Fatalf("%d threads: generation 2 did not return to the horizontal line", threads)
		}
		if toll != 0 {
			t.Fatalf("%d threads: toll = %d, expected 0", threads, toll)
		}
	}
}

func TestRunObserverSeesEveryGeneration(t *testing.T) {
	start := randomWorld(6, 6, 3)
	var seen []int
	tollPrev := -1
	_, err := Run(2, 15, start, nil, WithObserver(func(s Snapshot) {
		seen = append(seen, s.Generation)
		if s.DeathToll < tollPrev {
			t.Fatalf("death toll decreased from %d to %d", tollPrev, s.DeathToll)
		}
		tollPrev = s.DeathToll
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 15 {
		t.Fatalf("observer ran %d times, expected 15", len(seen))
	}
	for i, gen := range seen {
		if gen != i+1 {
			t.Fatalf("observation %d was generation %d, expected %d", i, gen, i+1)
		}
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	start := randomWorld(4, 4, 1)
	if _, err := Run(0, 5, start, nil); err == nil {
		t.Fatal("expected error for 0 threads")
	}
	if _, err := Run(17, 5, start, nil); err == nil {
		t.Fatal("expected error for more threads than cells")
	}
	if _, err := Run(2, -1, start, nil); err == nil {
		t.Fatal("expected error for negative generations")
	}
	if _, err := Run(2, 5, nil, nil); err == nil {
		t.Fatal("expected error for nil start grid")
	}

	bad := core.NewFactionGrid(4, 4)
	bad.Cells()[3] = MaxFactions
	if _, err := Run(2, 5, bad, nil); err == nil {
		t.Fatal("expected error for out-of-range faction in start grid")
	}

	late, err := NewSchedule([]int{9}, []*core.FactionGrid{core.NewFactionGrid(4, 4)}, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(2, 5, start, late); err == nil {
		t.Fatal("expected error for an invasion beyond the last generation")
	}
}

func TestCombatTollCountsEveryDeath(t *testing.T) {
	// Two hostile blocks side by side: every cell on the contact line sees at
	// least one hostile neighbor and dies in combat on generation 1.
	g := core.NewFactionGrid(2, 4)
	place(g,
		[3]int{0, 0, 1}, [3]int{0, 1, 1}, [3]int{1, 0, 1}, [3]int{1, 1, 1},
		[3]int{0, 2, 2}, [3]int{0, 3, 2}, [3]int{1, 2, 2}, [3]int{1, 3, 2},
	)
	// Columns 1 and 2 touch the enemy; columns 0 and 3 see only friends.
	_, toll := runParallel(t, 2, 1, g, nil)
	if toll != 4 {
		t.Fatalf("toll = %d, expected 4 combat deaths on the contact line", toll)
	}
}

func TestSplitRangeCoversAllCells(t *testing.T) {
	for _, tc := range [][2]int{{12, 1}, {12, 3}, {12, 5}, {7, 3}, {9, 9}} {
		total, workers := tc[0], tc[1]
		ranges := splitRange(total, workers)
		if len(ranges) != workers {
			t.Fatalf("splitRange(%d,%d) produced %d ranges", total, workers, len(ranges))
		}
		next := 0
		for i, r := range ranges {
			if r[0] != next {
				t.Fatalf("splitRange(%d,%d): range %d starts at %d, expected %d", total, workers, i, r[0], next)
			}
			if r[1] < r[0] {
				t.Fatalf("splitRange(%d,%d): range %d is inverted", total, workers, i)
			}
			next = r[1]
		}
		if next != total {
			t.Fatalf("splitRange(%d,%d) covers [0,%d), expected [0,%d)", total, workers, next, total)
		}
	}
}

func BenchmarkRun(b *testing.B) {
	start := randomWorld(128, 128, 42)
	for _, threads := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("threads-%d", threads), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Run(threads, 20, start, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
