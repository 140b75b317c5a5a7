package core

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestBarrierCyclesStayInLockstep(t *testing.T) {
	const workers = 4
	const cycles = 200

	b := NewBarrier(workers + 1)
	var counter atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				counter.Add(1)
				b.Wait()
				b.Wait() // second phase: wait for the check before the next increment
			}
		}()
	}

	for c := 0; c < cycles; c++ {
		b.Wait()
		if got := counter.Load(); got != int64(workers*(c+1)) {
			t.Fatalf("cycle %d: counter = %d, expected %d", c, got, workers*(c+1))
		}
		b.Wait()
	}
	wg.Wait()
}

func TestBarrierSingleParty(t *testing.T) {
	b := NewBarrier(1)
	// Must never block.
	for i := 0; i < 10; i++ {
		b.Wait()
	}
	if b.Parties() != 1 {
		t.Fatalf("Parties() = %d, expected 1", b.Parties())
	}
}
