// Package pointer drives the operating system cursor through robotgo.
package pointer

import (
	"errors"
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/ayusman/airmouse/internal/cursor"
)

// ErrNoDisplays is returned when the platform reports no monitors.
var ErrNoDisplays = errors.New("no displays reported")

// backend is the subset of robotgo the Device uses.
type backend interface {
	Location() (int, int)
	Move(x, y int)
	Click(button string)
	DisplaysNum() int
	DisplayBounds(i int) (x, y, w, h int)
}

type robotgoBackend struct{}

func (robotgoBackend) Location() (int, int) { return robotgo.Location() }
func (robotgoBackend) Move(x, y int) { robotgo.Move(x, y) }
func (robotgoBackend) Click(button string) { robotgo.Click(button) }
func (robotgoBackend) DisplaysNum() int { return robotgo.DisplaysNum() }
func (robotgoBackend) DisplayBounds(i int) (int, int, int, int) {
	return robotgo.GetDisplayBounds(i)
}

// Device implements cursor.Pointer and cursor.Display for the local desktop.
type Device struct {
	b backend
}

// New creates a Device backed by robotgo.
func New() *Device {
	return &Device{b: robotgoBackend{}}
}

// Position returns the current cursor position in virtual-desktop pixels.
func (d *Device) Position() (x, y int, err error) {
	defer recoverInto(&err, "position")
	x, y = d.b.Location()
	return x, y, nil
}

// SetPosition moves the cursor to an absolute position.
func (d *Device) SetPosition(x, y int) (err error) {
	defer recoverInto(&err, "move")
	d.b.Move(x, y)
	return nil
}

// Click emits a single press/release of the given button.
func (d *Device) Click(b cursor.Button) (err error) {
	defer recoverInto(&err, "click")
	switch b {
	case cursor.ButtonLeft:
		d.b.Click("left")
	case cursor.ButtonRight:
		d.b.Click("right")
	default:
		return fmt.Errorf("unknown button %v", b)
	}
	return nil
}

// Monitors enumerates the attached displays in platform order.
func (d *Device) Monitors() (monitors []cursor.Rect, err error) {
	defer recoverInto(&err, "monitors")

	n := d.b.DisplaysNum()
	if n <= 0 {
		return nil, ErrNoDisplays
	}

	monitors = make([]cursor.Rect, 0, n)
	for i := 0; i < n; i++ {
		x, y, w, h := d.b.DisplayBounds(i)
		r := cursor.Rect{X: x, Y: y, Width: w, Height: h}
		if r.Empty() {
			continue
		}
		monitors = append(monitors, r)
	}
	if len(monitors) == 0 {
		return nil, ErrNoDisplays
	}
	return monitors, nil
}

// recoverInto turns a panic from the native layer into an error.
func recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: native call panicked: %v", op, r)
	}
}
