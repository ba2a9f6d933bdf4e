// Package gesture turns hand landmarks into a debounced gesture label.
package gesture

import (
	"math"

	"github.com/ayusman/airmouse/internal/detector"
	"github.com/ayusman/airmouse/internal/geometry"
)

// Default evaluator thresholds.
const (
	DefaultExtendAngle          = 50.0 // degrees
	DefaultPinchThreshold       = 0.06 // thumb tip to index tip
	DefaultMiddlePinchThreshold = 0.07 // thumb tip to middle tip
)

// joint is the (base, mid, tip) landmark triple whose angle at mid decides
// whether a finger counts as extended.
type joint struct {
	base, mid, tip int
}

var (
	indexJoint  = joint{detector.IndexMCP, detector.IndexPIP, detector.IndexTip}
	middleJoint = joint{detector.MiddleMCP, detector.MiddlePIP, detector.MiddleTip}
	ringJoint   = joint{detector.RingMCP, detector.RingPIP, detector.RingTip}
	pinkyJoint  = joint{detector.PinkyMCP, detector.PinkyPIP, detector.PinkyTip}
)

// EvaluatorConfig holds the geometric thresholds for finger classification.
type EvaluatorConfig struct {
	ExtendAngle          float64
	PinchThreshold       float64
	MiddlePinchThreshold float64
}

// DefaultEvaluatorConfig returns the stock thresholds.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		ExtendAngle:          DefaultExtendAngle,
		PinchThreshold:       DefaultPinchThreshold,
		MiddlePinchThreshold: DefaultMiddlePinchThreshold,
	}
}

// FingerState is the per-frame finger classification. It is only valid for
// the frame it was computed from.
type FingerState struct {
	Index      bool
	Middle     bool
	Ring       bool
	Pinky      bool
	PalmOpen   bool
	PinchLeft  bool
	PinchRight bool
}

// Evaluator classifies fingers of a single pose. It holds no per-frame state.
type Evaluator struct {
	cfg EvaluatorConfig
}

// NewEvaluator creates an Evaluator with the given thresholds.
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// IsExtended reports whether the angle at mid is below the extension threshold.
func (e *Evaluator) IsExtended(hand *detector.HandLandmarks, base, mid, tip int) bool {
	return jointAngle(hand, joint{base, mid, tip}) < e.cfg.ExtendAngle
}

// Evaluate computes the finger state for hand.
func (e *Evaluator) Evaluate(hand *detector.HandLandmarks) FingerState {
	s := FingerState{
		Index:  e.extended(hand, indexJoint),
		Middle: e.extended(hand, middleJoint),
		Ring:   e.extended(hand, ringJoint),
		Pinky:  e.extended(hand, pinkyJoint),
	}

	s.PalmOpen = countTrue(s.Index, s.Middle, s.Ring, s.Pinky) >= 3
	s.PinchLeft = thumbDistance(hand, detector.IndexTip) < e.cfg.PinchThreshold
	s.PinchRight = thumbDistance(hand, detector.MiddleTip) < e.cfg.MiddlePinchThreshold

	return s
}

// Diagnostics holds raw measurements for debug overlays. It is never fed
// back into classification.
type Diagnostics struct {
	AngleIndex       float64 `json:"angle_index"`
	AngleMiddle      float64 `json:"angle_middle"`
	PinchThumbIndex  float64 `json:"pinch_thumb_index"`
	PinchThumbMiddle float64 `json:"pinch_thumb_middle"`
	IndexExtended    bool    `json:"index_ext"`
	MiddleExtended   bool    `json:"middle_ext"`
	PalmOpen         bool    `json:"palm_open"`
}

// Diagnostics measures hand for overlay display.
func (e *Evaluator) Diagnostics(hand *detector.HandLandmarks) Diagnostics {
	s := e.Evaluate(hand)
	return Diagnostics{
		AngleIndex:       round(jointAngle(hand, indexJoint), 1),
		AngleMiddle:      round(jointAngle(hand, middleJoint), 1),
		PinchThumbIndex:  round(thumbDistance(hand, detector.IndexTip), 3),
		PinchThumbMiddle: round(thumbDistance(hand, detector.MiddleTip), 3),
		IndexExtended:    s.Index,
		MiddleExtended:   s.Middle,
		PalmOpen:         s.PalmOpen,
	}
}

// Map returns the diagnostics keyed the way overlays expect them.
func (d Diagnostics) Map() map[string]any {
	return map[string]any{
		"angle_index":        d.AngleIndex,
		"angle_middle":       d.AngleMiddle,
		"pinch_thumb_index":  d.PinchThumbIndex,
		"pinch_thumb_middle": d.PinchThumbMiddle,
		"index_ext":          d.IndexExtended,
		"middle_ext":         d.MiddleExtended,
		"palm_open":          d.PalmOpen,
	}
}

func (e *Evaluator) extended(hand *detector.HandLandmarks, j joint) bool {
	return jointAngle(hand, j) < e.cfg.ExtendAngle
}

func jointAngle(hand *detector.HandLandmarks, j joint) float64 {
	return geometry.Angle(hand.Point(j.base), hand.Point(j.mid), hand.Point(j.tip))
}

func thumbDistance(hand *detector.HandLandmarks, tip int) float64 {
	return geometry.Distance(hand.Point(detector.ThumbTip), hand.Point(tip))
}

func countTrue(vals ...bool) int {
	n := 0
	for _, v := range vals {
		if v {
			n++
		}
	}
	return n
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
