package core

import "sync"

// Barrier is a reusable rendezvous point for a fixed set of participants.
// Wait blocks until every participant has arrived, then releases them all and
// resets for the next cycle. A Barrier must not be copied after first use.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int
	phase   uint64
}

// NewBarrier constructs a barrier for the given number of participants.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		parties = 1
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Parties returns the number of participants the barrier waits for.
func (b *Barrier) Parties() int { return b.parties }

// Wait blocks the caller until all participants have called Wait for the
// current cycle. The last arrival advances the phase and wakes the rest.
func (b *Barrier) Wait() {
	b.mu.Lock()
	phase := b.phase
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.phase++
		b.cond.Broadcast()
	} else {
		// Guard against spurious wakeups: only the phase change matters.
		for phase == b.phase {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}
