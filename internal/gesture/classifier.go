package gesture

import "fmt"

// DefaultHysteresisFrames is how many consecutive frames a candidate must
// hold before it becomes the stable label.
const DefaultHysteresisFrames = 3

// Label is a stable gesture label.
type Label int

const (
	None Label = iota
	Move
	LeftClick
	RightClick
	Palm
)

var labelNames = [...]string{
	None:       "none",
	Move:       "move",
	LeftClick:  "left_click",
	RightClick: "right_click",
	Palm:       "palm",
}

// String returns the display name of the label.
func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("label(%d)", int(l))
	}
	return labelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel returns the label with the given display name.
func ParseLabel(s string) (Label, error) {
	for i, name := range labelNames {
		if name == s {
			return Label(i), nil
		}
	}
	return None, fmt.Errorf("unknown gesture label %q", s)
}

// IsClick reports whether the label requests a click.
func (l Label) IsClick() bool {
	return l == LeftClick || l == RightClick
}

// priority lists labels from highest to lowest precedence.
var priority = [...]Label{Palm, LeftClick, RightClick, Move, None}

// Counters is a snapshot of the per-label consecutive-frame counters.
type Counters map[Label]int

// Classifier debounces per-frame finger states into a stable label.
// It is level-triggered: Advance returns the current stable label every frame.
// Not safe for concurrent use; one Classifier belongs to one session.
type Classifier struct {
	threshold int
	counts    [len(labelNames)]int
	last      Label
}

// NewClassifier creates a Classifier that switches label after
// hysteresisFrames consecutive frames.
func NewClassifier(hysteresisFrames int) *Classifier {
	return &Classifier{
		threshold: hysteresisFrames,
		last:      None,
	}
}

// Advance feeds one frame to the classifier and returns the stable label.
// A nil state means no hand was detected; it counts as the none candidate.
func (c *Classifier) Advance(state *FingerState) Label {
	var s FingerState
	if state != nil {
		s = *state
	}

	c.bump(Palm, s.PalmOpen)
	c.bump(LeftClick, s.PinchLeft)
	c.bump(RightClick, s.PinchRight)
	c.bump(Move, s.Index && !(s.PinchLeft || s.PinchRight || s.PalmOpen))
	c.bump(None, !(s.PalmOpen || s.PinchLeft || s.PinchRight || s.Index))

	for _, l := range priority {
		if c.counts[l] >= c.threshold {
			c.last = l
			break
		}
	}

	return c.last
}

// Label returns the current stable label without advancing.
func (c *Classifier) Label() Label {
	return c.last
}

// Counters returns a copy of the candidate counters.
func (c *Classifier) Counters() Counters {
	out := make(Counters, len(c.counts))
	for i, n := range c.counts {
		out[Label(i)] = n
	}
	return out
}

func (c *Classifier) bump(l Label, hit bool) {
	if hit {
		c.counts[l]++
	} else {
		c.counts[l] = 0
	}
}
