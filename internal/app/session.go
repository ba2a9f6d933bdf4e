package app

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/airmouse/internal/click"
	"github.com/ayusman/airmouse/internal/config"
	"github.com/ayusman/airmouse/internal/cursor"
	"github.com/ayusman/airmouse/internal/detector"
	"github.com/ayusman/airmouse/internal/geometry"
	"github.com/ayusman/airmouse/internal/gesture"
)

// Device is the OS pointer plus display enumeration.
type Device interface {
	cursor.Pointer
	cursor.Display
}

// Frame is one captured frame after hand detection.
type Frame struct {
	Index int64
	Time  time.Time
	Hand  *detector.HandLandmarks // nil when no hand was detected
}

// Outcome describes what a session did with one frame.
type Outcome struct {
	FrameIndex int64
	Time       time.Time

	// Stale is set when the frame arrived out of order and was dropped.
	Stale bool

	Label   gesture.Label
	Changed bool // label differs from the previous frame
	Mode    cursor.Mode
	Cursor  cursor.Result

	// Clicked is set when a click was injected on this frame.
	Clicked *cursor.Button

	Diagnostics *gesture.Diagnostics

	// Err is the boundary failure of this frame, if any. It has already
	// been logged.
	Err error
}

// Session owns all per-tracking-session state: classifier counters, cursor
// filter state and the click timestamp. It is driven by a single goroutine.
type Session struct {
	id        string
	evaluator *gesture.Evaluator
	class     *gesture.Classifier
	pipeline  *cursor.Pipeline
	debouncer *click.Debouncer
	device    Device

	started   time.Time
	lastIndex int64
	hasIndex  bool
	last      Outcome
	clicks    int
	frames    int
}

// NewSession creates a session from cfg. The config is read once here.
func NewSession(cfg config.Config, device Device) *Session {
	return &Session{
		id:        uuid.New().String(),
		evaluator: gesture.NewEvaluator(cfg.EvaluatorConfig()),
		class:     gesture.NewClassifier(cfg.HysteresisFrames),
		pipeline:  cursor.NewPipeline(cfg.CursorParams(), device, device),
		debouncer: click.New(cfg.ClickInterval()),
		device:    device,
		started:   time.Now(),
		last:      Outcome{Label: gesture.None},
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Label returns the current stable label.
func (s *Session) Label() gesture.Label {
	return s.class.Label()
}

// Process advances the session by one frame. Boundary failures are logged
// and reported on the outcome; they never stop the session.
func (s *Session) Process(f Frame) Outcome {
	if f.Time.IsZero() {
		f.Time = time.Now()
	}

	if s.hasIndex && f.Index <= s.lastIndex {
		return Outcome{FrameIndex: f.Index, Time: f.Time, Stale: true, Label: s.class.Label()}
	}
	s.lastIndex = f.Index
	s.hasIndex = true
	s.frames++

	prev := s.class.Label()
	out := Outcome{FrameIndex: f.Index, Time: f.Time}

	if f.Hand == nil {
		out.Label = s.class.Advance(nil)
		out.Mode = cursor.ModeIdle
		out.Cursor, out.Err = s.pipeline.Update(geometry.Point{}, cursor.ModeIdle)
	} else {
		state := s.evaluator.Evaluate(f.Hand)
		diag := s.evaluator.Diagnostics(f.Hand)
		out.Diagnostics = &diag

		out.Label = s.class.Advance(&state)
		out.Mode = cursor.ModeForLabel(out.Label)
		out.Cursor, out.Err = s.pipeline.Update(f.Hand.Point(detector.IndexTip), out.Mode)

		if out.Label.IsClick() {
			out.Clicked, out.Err = s.click(f.Time, buttonFor(out.Label))
		}
	}

	out.Changed = out.Label != prev
	if out.Err != nil {
		log.Printf("session %s: frame %d: %v", s.id, f.Index, out.Err)
	}

	s.last = out
	return out
}

func (s *Session) click(now time.Time, b cursor.Button) (*cursor.Button, error) {
	ok, err := s.debouncer.Try(now, func() error {
		return s.device.Click(b)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: click %v: %w", cursor.ErrPointer, b, err)
	}
	if !ok {
		return nil, nil
	}
	s.clicks++
	return &b, nil
}

func buttonFor(l gesture.Label) cursor.Button {
	if l == gesture.RightClick {
		return cursor.ButtonRight
	}
	return cursor.ButtonLeft
}

// Snapshot describes the session for overlays. It is computed from the
// last processed frame and never feeds back into control.
type Snapshot struct {
	SessionID   string           `json:"session_id"`
	Started     time.Time        `json:"started"`
	Frame       int64            `json:"frame"`
	Time        time.Time        `json:"time"`
	Gesture     gesture.Label    `json:"gesture"`
	HandPresent bool             `json:"hand_present"`
	Frozen      bool             `json:"frozen"`
	CursorX     int              `json:"cursor_x"`
	CursorY     int              `json:"cursor_y"`
	Moved       bool             `json:"moved"`
	Clicks      int              `json:"clicks"`
	Frames      int              `json:"frames"`
	Counters    gesture.Counters `json:"counters"`
	Metrics     map[string]any   `json:"metrics,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// Snapshot returns the overlay view of the last processed frame.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:   s.id,
		Started:     s.started,
		Frame:       s.last.FrameIndex,
		Time:        s.last.Time,
		Gesture:     s.class.Label(),
		HandPresent: s.last.Diagnostics != nil,
		Frozen:      s.pipeline.Frozen(),
		CursorX:     s.last.Cursor.X,
		CursorY:     s.last.Cursor.Y,
		Moved:       s.last.Cursor.Moved,
		Clicks:      s.clicks,
		Frames:      s.frames,
		Counters:    s.class.Counters(),
	}
	if s.last.Diagnostics != nil {
		snap.Metrics = s.last.Diagnostics.Map()
	}
	if s.last.Err != nil {
		snap.Error = s.last.Err.Error()
	}
	return snap
}
