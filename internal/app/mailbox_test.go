package app

import (
	"sync"
	"testing"
)

func TestMailbox_Overwrite(t *testing.T) {
	m := NewMailbox()

	if _, ok := m.Take(); ok {
		t.Fatal("empty mailbox should have nothing to take")
	}
	if _, ok := m.Latest(); ok {
		t.Fatal("empty mailbox should have no latest")
	}

	m.Publish(Snapshot{Frame: 1})
	m.Publish(Snapshot{Frame: 2})

	snap, ok := m.Take()
	if !ok || snap.Frame != 2 {
		t.Errorf("Take() = %d, %v; want frame 2", snap.Frame, ok)
	}
	if _, ok := m.Take(); ok {
		t.Error("second Take() should find nothing")
	}
	if m.Drops() != 1 {
		t.Errorf("Drops() = %d, want 1", m.Drops())
	}

	latest, ok := m.Latest()
	if !ok || latest.Frame != 2 {
		t.Errorf("Latest() = %d, %v; want frame 2", latest.Frame, ok)
	}
	if m.Seq() != 2 {
		t.Errorf("Seq() = %d, want 2", m.Seq())
	}
}

func TestMailbox_Concurrent(t *testing.T) {
	m := NewMailbox()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	taken := 0
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if _, ok := m.Take(); ok {
				taken++
			}
		}
	}()

	for i := 0; i < n; i++ {
		m.Publish(Snapshot{Frame: int64(i)})
	}
	wg.Wait()

	if _, ok := m.Take(); ok {
		taken++
	}
	if uint64(taken)+m.Drops() != n {
		t.Errorf("taken %d + dropped %d != published %d", taken, m.Drops(), n)
	}
}
