package infection

import "sync"

// deathToll accumulates combat deaths across all workers. It is the only
// piece of simulation state with concurrent writers, so it is the only one
// behind a lock; the release signal and the completion barrier use separate
// primitives on purpose.
type deathToll struct {
	mu sync.Mutex
	n  int
}

// Add records combat deaths. Safe for concurrent use.
func (t *deathToll) Add(n int) {
	if n == 0 {
		return
	}
	t.mu.Lock()
	t.n += n
	t.mu.Unlock()
}

// Reset clears the toll for a fresh run.
func (t *deathToll) Reset() {
	t.mu.Lock()
	t.n = 0
	t.mu.Unlock()
}

// Value returns the accumulated toll.
func (t *deathToll) Value() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}
