package cursor

import "sync"

// MockDevice is an in-memory Pointer and Display for tests.
// It records every position update and click.
type MockDevice struct {
	mu       sync.Mutex
	x, y     int
	monitors []Rect

	positionErr error
	setErr      error
	clickErr    error
	monitorsErr error

	moves  [][2]int
	clicks []Button
}

// NewMockDevice creates a device with the cursor at (x, y).
func NewMockDevice(x, y int, monitors ...Rect) *MockDevice {
	return &MockDevice{x: x, y: y, monitors: monitors}
}

// Position implements Pointer.
func (d *MockDevice) Position() (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.positionErr != nil {
		return 0, 0, d.positionErr
	}
	return d.x, d.y, nil
}

// SetPosition implements Pointer.
func (d *MockDevice) SetPosition(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.setErr != nil {
		return d.setErr
	}
	d.x, d.y = x, y
	d.moves = append(d.moves, [2]int{x, y})
	return nil
}

// Click implements Pointer.
func (d *MockDevice) Click(b Button) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clickErr != nil {
		return d.clickErr
	}
	d.clicks = append(d.clicks, b)
	return nil
}

// Monitors implements Display.
func (d *MockDevice) Monitors() ([]Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.monitorsErr != nil {
		return nil, d.monitorsErr
	}
	out := make([]Rect, len(d.monitors))
	copy(out, d.monitors)
	return out, nil
}

// SetMonitors replaces the monitor layout.
func (d *MockDevice) SetMonitors(monitors ...Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.monitors = monitors
}

// Warp moves the cursor without recording an update, as if the user moved
// the physical mouse.
func (d *MockDevice) Warp(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.x, d.y = x, y
}

// SetErrors configures failures for Position, SetPosition, Click and Monitors.
// Nil clears a failure.
func (d *MockDevice) SetErrors(position, set, click, monitors error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.positionErr = position
	d.setErr = set
	d.clickErr = click
	d.monitorsErr = monitors
}

// Moves returns the recorded SetPosition calls.
func (d *MockDevice) Moves() [][2]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][2]int, len(d.moves))
	copy(out, d.moves)
	return out
}

// Clicks returns the recorded clicks.
func (d *MockDevice) Clicks() []Button {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Button, len(d.clicks))
	copy(out, d.clicks)
	return out
}
