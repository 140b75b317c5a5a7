package infection

import (
	"fmt"
	"sync"

	"goi/internal/core"
)

// Snapshot is handed to the per-generation observer after a generation has
// completed and the buffers have been swapped. The grid is only valid for the
// duration of the call; observers that retain state must clone it.
type Snapshot struct {
	Generation int
	Grid       *core.FactionGrid
	DeathToll  int
}

// Option configures a Run.
type Option func(*runOptions)

type runOptions struct {
	observer func(Snapshot)
}

// WithObserver installs a hook invoked after every completed generation. The
// hook is purely observational and runs on the orchestrator goroutine, so the
// workers are all idle while it executes.
func WithObserver(fn func(Snapshot)) Option {
	return func(o *runOptions) { o.observer = fn }
}

// Run simulates the given number of generations on a fixed pool of worker
// goroutines and returns the total combat death toll. The caller's start grid
// and schedule are copied, never mutated or retained. The final grid and toll
// are identical for every worker count.
//
// The synchronization protocol per generation: publish (current, next,
// overlay, index) to every worker's slot, which is also the release signal;
// rendezvous with all workers at the completion barrier; retire the overlay
// and swap buffers. Workers are created once before generation 1 and joined
// after the last generation.
func Run(threads, generations int, start *core.FactionGrid, sched *Schedule, opts ...Option) (int, error) {
	if start == nil || start.Rows <= 0 || start.Cols <= 0 {
		return 0, fmt.Errorf("infection: start grid must be non-empty")
	}
	if generations < 0 {
		return 0, fmt.Errorf("infection: generation count %d is negative", generations)
	}
	total := start.Rows * start.Cols
	if threads < 1 {
		return 0, fmt.Errorf("infection: thread count %d is below 1", threads)
	}
	if threads > total {
		return 0, fmt.Errorf("infection: %d threads for %d cells", threads, total)
	}
	for _, f := range start.Cells() {
		if f < core.Dead || f >= MaxFactions {
			return 0, fmt.Errorf("infection: start grid contains faction %d outside [0, %d)", f, MaxFactions)
		}
	}
	if last := sched.Last(); last > generations {
		return 0, fmt.Errorf("infection: invasion scheduled for generation %d but the run stops at %d", last, generations)
	}

	var options runOptions
	for _, opt := range opts {
		opt(&options)
	}

	toll := &deathToll{}
	if generations == 0 {
		return toll.Value(), nil
	}

	bufs := newBuffers(start)
	pending := sched.clone()

	// One extra barrier party for the orchestrator: its arrival is the signal
	// that every cell of next has been written and the swap is safe.
	barrier := core.NewBarrier(threads + 1)
	workers := make([]*worker, threads)
	var group sync.WaitGroup
	for i, r := range splitRange(total, threads) {
		w := &worker{
			id:       i,
			startIdx: r[0],
			endIdx:   r[1],
			release:  make(chan generation, 1),
			barrier:  barrier,
			toll:     toll,
		}
		workers[i] = w
		group.Add(1)
		go func() {
			defer group.Done()
			w.run()
		}()
	}

	for gen := 1; gen <= generations; gen++ {
		overlay := pending.overlayFor(gen)
		state := generation{
			index:   gen,
			current: bufs.Current(),
			next:    bufs.Next(),
			overlay: overlay,
		}
		for _, w := range workers {
			w.release <- state
		}
		barrier.Wait()
		// All workers are at the barrier or already idle: the overlay is dead
		// and the buffers can change hands.
		bufs.Swap()
		if options.observer != nil {
			options.observer(Snapshot{
				Generation: gen,
				Grid:       bufs.Current(),
				DeathToll:  toll.Value(),
			})
		}
	}

	for _, w := range workers {
		close(w.release)
	}
	group.Wait()

	return toll.Value(), nil
}
