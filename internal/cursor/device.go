// Package cursor conditions a tracked fingertip into smoothed absolute
// cursor positions.
package cursor

import "errors"

// Boundary errors. The pipeline never aborts on these; it skips the frame.
var (
	ErrPointer = errors.New("pointer device unavailable")
	ErrDisplay = errors.New("display geometry unavailable")
)

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// String returns "left" or "right".
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Pointer is the OS pointer capability.
type Pointer interface {
	// Position returns the absolute cursor position in device pixels.
	Position() (x, y int, err error)

	// SetPosition moves the cursor to an absolute position.
	SetPosition(x, y int) error

	// Click presses and releases a button at the current position.
	Click(b Button) error
}

// Display enumerates monitor rectangles. Results are volatile and are
// re-queried on every use.
type Display interface {
	Monitors() ([]Rect, error)
}
