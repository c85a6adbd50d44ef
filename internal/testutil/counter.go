// Package testutil provides shared fixtures and conformance suites for
// slabkit's container and allocator tests.
package testutil

// Tally counts how many Counters bound to it have been released.
type Tally struct {
	released int
}

// New returns a Counter that reports to t.
func (t *Tally) New() Counter { return Counter{tally: t} }

// Released returns the number of Release calls seen so far.
func (t *Tally) Released() int { return t.released }

// Counter is an element type whose destruction is observable. The zero
// Counter is not bound to a tally and releases silently.
type Counter struct {
	tally *Tally
}

// Release records one destruction.
func (c Counter) Release() {
	if c.tally != nil {
		c.tally.released++
	}
}
