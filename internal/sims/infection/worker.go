package infection

import (
	"goi/internal/core"
)

// generation is the state the orchestrator publishes to every worker before
// releasing it: the buffers for one generation plus the generation index.
// Workers treat all three grids as read-only except for their own index range
// of next.
type generation struct {
	index   int
	current *core.FactionGrid
	next    *core.FactionGrid
	overlay *core.FactionGrid // nil when no invasion this generation
}

// worker owns an immutable contiguous range of linear cell indices. It is
// created once before the first generation and lives for the whole run.
//
// The release channel doubles as the publication slot and the release signal:
// a worker blocked on receive is idle, and it can only ever observe fully
// published generation state because the orchestrator sends the record as one
// value. Closing the channel terminates the worker after the last generation.
type worker struct {
	id       int
	startIdx int
	endIdx   int

	release chan generation
	barrier *core.Barrier
	toll    *deathToll
}

// run is the worker goroutine body: wait for release, compute the assigned
// slice, rendezvous at the barrier, repeat until the channel closes.
func (w *worker) run() {
	for gen := range w.release {
		w.compute(gen)
		w.barrier.Wait()
	}
}

// compute evaluates the worker's cell range for one generation. The toll is
// the only shared state written here; next is partitioned by disjoint ranges.
func (w *worker) compute(gen generation) {
	for i := w.startIdx; i < w.endIdx; i++ {
		row, col := gen.current.RowCol(i)
		next, fought := nextState(gen.current, gen.overlay, row, col)
		gen.next.Set(row, col, next)
		if fought {
			w.toll.Add(1)
		}
	}
}

// splitRange partitions [0, total) into contiguous per-worker ranges: a floor
// split with the last worker absorbing the remainder. Every index belongs to
// exactly one range.
func splitRange(total, workers int) [][2]int {
	ranges := make([][2]int, workers)
	size := total / workers
	index := 0
	for i := 0; i < workers-1; i++ {
		end := index + size
		if end > total {
			end = total
		}
		ranges[i] = [2]int{index, end}
		index = end
	}
	ranges[workers-1] = [2]int{index, total}
	return ranges
}
