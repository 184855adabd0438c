package input

import "time"

// ClickCounter detects double clicks: two clicks on the same target within
// Interval. It never decides whether a press was a drag.
type ClickCounter struct {
	Interval time.Duration

	target string
	at     time.Time
}

// NewClickCounter returns a counter with the given double click interval.
func NewClickCounter(interval time.Duration) *ClickCounter {
	return &ClickCounter{Interval: interval}
}

// Click records a click on target at t and reports whether it completes a
// double click. A completed double click starts a new sequence.
func (c *ClickCounter) Click(target string, t time.Time) bool {
	if c.target == target && !c.at.IsZero() && t.Sub(c.at) <= c.Interval {
		c.Reset()
		return true
	}
	c.target = target
	c.at = t
	return false
}

// Reset forgets the previous click.
func (c *ClickCounter) Reset() {
	c.target = ""
	c.at = time.Time{}
}
