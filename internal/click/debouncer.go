// Package click rate-limits level-triggered click gestures into discrete
// click events.
package click

import "time"

// DefaultInterval is the minimum gap between two emitted clicks.
const DefaultInterval = 300 * time.Millisecond

// Debouncer admits at most one click per interval. It is not safe for
// concurrent use; it belongs to a single session.
type Debouncer struct {
	interval time.Duration
	last     time.Time
}

// New creates a Debouncer. A non-positive interval admits every click.
func New(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Try calls emit if more than the interval has elapsed since the last
// successful click. It reports whether emit was called successfully.
// The timestamp only advances when emit returns nil.
func (d *Debouncer) Try(now time.Time, emit func() error) (bool, error) {
	if !d.last.IsZero() && now.Sub(d.last) <= d.interval {
		return false, nil
	}
	if err := emit(); err != nil {
		return false, err
	}
	d.last = now
	return true, nil
}

// Last returns the time of the last successful click, or the zero time.
func (d *Debouncer) Last() time.Time {
	return d.last
}

// Interval returns the configured interval.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Reset forgets the last click.
func (d *Debouncer) Reset() {
	d.last = time.Time{}
}
