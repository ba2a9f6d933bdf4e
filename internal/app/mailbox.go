package app

import (
	"sync"
	"sync/atomic"
)

// Mailbox is a one-slot handoff of the latest snapshot from the frame loop
// to overlay readers. Publish never blocks; an unread snapshot is
// overwritten and counted as dropped.
type Mailbox struct {
	mu      sync.Mutex
	pending *Snapshot
	latest  Snapshot
	has     bool
	seq     uint64
	drops   uint64
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Publish stores snap, replacing any unread snapshot.
func (m *Mailbox) Publish(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil {
		atomic.AddUint64(&m.drops, 1)
	}
	m.pending = &snap
	m.latest = snap
	m.has = true
	m.seq++
}

// Take returns the unread snapshot, if any, and marks it read.
func (m *Mailbox) Take() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return Snapshot{}, false
	}
	snap := *m.pending
	m.pending = nil
	return snap, true
}

// Latest returns the most recent snapshot without consuming it.
func (m *Mailbox) Latest() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.has
}

// Seq returns the number of snapshots published so far.
func (m *Mailbox) Seq() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq
}

// Drops returns how many snapshots were overwritten unread.
func (m *Mailbox) Drops() uint64 {
	return atomic.LoadUint64(&m.drops)
}
