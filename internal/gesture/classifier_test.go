package gesture

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ayusman/airmouse/internal/detector"
)

// run feeds states to a fresh classifier and returns the emitted labels.
func run(threshold int, states ...*FingerState) []Label {
	c := NewClassifier(threshold)
	out := make([]Label, 0, len(states))
	for _, s := range states {
		out = append(out, c.Advance(s))
	}
	return out
}

func repeat(s *FingerState, n int) []*FingerState {
	out := make([]*FingerState, n)
	for i := range out {
		out[i] = s
	}
	return out
}

var (
	moveState  = &FingerState{Index: true}
	palmState  = &FingerState{Index: true, Middle: true, Ring: true, PalmOpen: true}
	leftState  = &FingerState{Index: true, PinchLeft: true}
	rightState = &FingerState{PinchRight: true}
	idleState  = &FingerState{}
)

func TestClassifier_InitialLabel(t *testing.T) {
	c := NewClassifier(DefaultHysteresisFrames)
	if c.Label() != None {
		t.Errorf("initial label = %v, want none", c.Label())
	}
}

func TestClassifier_Hysteresis(t *testing.T) {
	const n = DefaultHysteresisFrames

	t.Run("n-1 frames never switch", func(t *testing.T) {
		states := append(repeat(moveState, n-1), idleState)
		got := run(n, states...)
		want := []Label{None, None, None}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("n frames switch", func(t *testing.T) {
		got := run(n, repeat(moveState, n)...)
		want := []Label{None, None, Move}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("interrupted run restarts the count", func(t *testing.T) {
		states := []*FingerState{moveState, moveState, palmState, moveState, moveState, moveState}
		got := run(n, states...)
		want := []Label{None, None, None, None, None, Move}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("label holds through flicker", func(t *testing.T) {
		states := append(repeat(moveState, n), leftState, moveState, leftState, leftState)
		got := run(n, states...)
		want := []Label{None, None, Move, Move, Move, Move, Move}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})

	for _, threshold := range []int{1, 2, 5, 8} {
		threshold := threshold
		t.Run("threshold sweep", func(t *testing.T) {
			short := run(threshold, append(repeat(palmState, threshold-1), idleState)...)
			for i, l := range short[:threshold-1] {
				if l != None {
					t.Errorf("threshold %d frame %d: got %v before reaching threshold", threshold, i, l)
				}
			}

			full := run(threshold, repeat(palmState, threshold)...)
			if full[len(full)-1] != Palm {
				t.Errorf("threshold %d: got %v after %d frames, want palm", threshold, full[len(full)-1], threshold)
			}
		})
	}
}

func TestClassifier_Priority(t *testing.T) {
	t.Run("palm beats left pinch on the same frame", func(t *testing.T) {
		both := &FingerState{Index: true, Middle: true, Ring: true, PalmOpen: true, PinchLeft: true}
		got := run(3, repeat(both, 3)...)
		if got[2] != Palm {
			t.Errorf("got %v, want palm", got[2])
		}
	})

	t.Run("left beats right", func(t *testing.T) {
		both := &FingerState{PinchLeft: true, PinchRight: true}
		got := run(3, repeat(both, 3)...)
		if got[2] != LeftClick {
			t.Errorf("got %v, want left_click", got[2])
		}
	})

	t.Run("pinch suppresses move", func(t *testing.T) {
		got := run(3, repeat(leftState, 5)...)
		want := []Label{None, None, LeftClick, LeftClick, LeftClick}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("lower priority waits while higher counter is behind", func(t *testing.T) {
		// Right pinch starts first; left pinch joins later. Right reaches
		// the threshold first and wins until left catches up.
		states := []*FingerState{
			rightState,
			rightState,
			{PinchLeft: true, PinchRight: true},
			{PinchLeft: true, PinchRight: true},
			{PinchLeft: true, PinchRight: true},
		}
		got := run(3, states...)
		want := []Label{None, None, RightClick, RightClick, LeftClick}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestClassifier_MissingPose(t *testing.T) {
	c := NewClassifier(2)
	c.Advance(moveState)
	c.Advance(moveState)
	if c.Label() != Move {
		t.Fatalf("setup: label = %v, want move", c.Label())
	}

	c.Advance(nil)
	if c.Label() != Move {
		t.Errorf("one missing frame should not switch, got %v", c.Label())
	}
	c.Advance(nil)
	if c.Label() != None {
		t.Errorf("two missing frames should switch to none, got %v", c.Label())
	}

	counters := c.Counters()
	if counters[None] != 2 || counters[Move] != 0 {
		t.Errorf("unexpected counters: %v", counters)
	}
}

func TestClassifier_Poses(t *testing.T) {
	e := NewEvaluator(DefaultEvaluatorConfig())

	classify := func(pose detector.HandLandmarks, frames int) Label {
		c := NewClassifier(DefaultHysteresisFrames)
		var l Label
		for i := 0; i < frames; i++ {
			s := e.Evaluate(&pose)
			l = c.Advance(&s)
		}
		return l
	}

	t.Run("index straight and others flexed ends at move", func(t *testing.T) {
		if got := classify(detector.MovePose(), DefaultHysteresisFrames); got != Move {
			t.Errorf("got %v, want move", got)
		}
	})

	t.Run("coincident thumb and index tips ends at left click", func(t *testing.T) {
		if got := classify(detector.LeftPinchPose(), DefaultHysteresisFrames); got != LeftClick {
			t.Errorf("got %v, want left_click", got)
		}
	})

	t.Run("right pinch", func(t *testing.T) {
		if got := classify(detector.RightPinchPose(), DefaultHysteresisFrames); got != RightClick {
			t.Errorf("got %v, want right_click", got)
		}
	})

	t.Run("palm", func(t *testing.T) {
		if got := classify(detector.PalmPose(), DefaultHysteresisFrames); got != Palm {
			t.Errorf("got %v, want palm", got)
		}
	})
}

func TestLabel_Text(t *testing.T) {
	for _, l := range []Label{None, Move, LeftClick, RightClick, Palm} {
		parsed, err := ParseLabel(l.String())
		if err != nil {
			t.Fatalf("ParseLabel(%q) error = %v", l.String(), err)
		}
		if parsed != l {
			t.Errorf("ParseLabel(%q) = %v", l.String(), parsed)
		}
	}

	if _, err := ParseLabel("wave"); err == nil {
		t.Error("expected error for unknown label")
	}

	data, err := json.Marshal(map[string]Label{"gesture": RightClick})
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	if string(data) != `{"gesture":"right_click"}` {
		t.Errorf("marshal = %s", data)
	}

	if got := Label(42).String(); got != "label(42)" {
		t.Errorf("out of range label String() = %q", got)
	}
}
