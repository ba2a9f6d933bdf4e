package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect once any queued
// results are used up.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Enqueue appends per-call results. Each Detect call pops one entry; a nil
// entry means no hand in that frame.
func (m *MockDetector) Enqueue(results ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, results...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the next queued result, the pre-configured hands, or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger layout used by the preset poses. Each finger has its MCP at baseY
// and its PIP straight above it at pipY.
var fingerX = [4]float64{0.58, 0.50, 0.42, 0.34} // index, middle, ring, pinky

const (
	baseY = 0.65
	pipY  = 0.60
)

// Tip placements relative to the PIP joint. A folded tip points back at the
// MCP (0° at the PIP, reads as extended); a straight tip continues the line
// (180° at the PIP, reads as flexed).
const (
	foldedTipY   = pipY + 0.04
	straightTipY = pipY - 0.05
)

// buildPose assembles a right-hand pose. ext marks which of index, middle,
// ring, pinky are placed so that they read as extended.
func buildPose(ext [4]bool) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.46, Y: 0.85}

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.80}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.74}
	lm.Points[ThumbIP] = Point3D{X: 0.67, Y: 0.67}
	lm.Points[ThumbTip] = Point3D{X: 0.72, Y: 0.60}

	for f := 0; f < 4; f++ {
		mcp := IndexMCP + f*4
		x := fingerX[f]

		tipY := straightTipY
		if ext[f] {
			tipY = foldedTipY
		}

		lm.Points[mcp] = Point3D{X: x, Y: baseY}
		lm.Points[mcp+1] = Point3D{X: x, Y: pipY}
		lm.Points[mcp+2] = Point3D{X: x, Y: (pipY + tipY) / 2}
		lm.Points[mcp+3] = Point3D{X: x, Y: tipY}
	}

	return lm
}

// IdlePose returns a pose with no finger extended and no pinch.
func IdlePose() HandLandmarks {
	return buildPose([4]bool{})
}

// MovePose returns a pose with only the index finger extended.
func MovePose() HandLandmarks {
	return buildPose([4]bool{true, false, false, false})
}

// PalmPose returns a pose with index, middle and ring extended.
func PalmPose() HandLandmarks {
	return buildPose([4]bool{true, true, true, false})
}

// LeftPinchPose returns MovePose with the thumb tip on the index tip.
func LeftPinchPose() HandLandmarks {
	lm := MovePose()
	lm.Points[ThumbTip] = lm.Points[IndexTip]
	return lm
}

// RightPinchPose returns IdlePose with the thumb tip on the middle tip.
func RightPinchPose() HandLandmarks {
	lm := IdlePose()
	lm.Points[ThumbTip] = lm.Points[MiddleTip]
	return lm
}

// Shifted returns a copy of h with every landmark translated by (dx, dy).
// Geometry relations are preserved, so the gesture stays the same.
func Shifted(h HandLandmarks, dx, dy float64) HandLandmarks {
	out := h
	for i := range out.Points {
		out.Points[i].X += dx
		out.Points[i].Y += dy
	}
	return out
}

// Poses maps pose names used by scripted tests to their constructors.
var Poses = map[string]func() HandLandmarks{
	"idle":        IdlePose,
	"move":        MovePose,
	"palm":        PalmPose,
	"left_pinch":  LeftPinchPose,
	"right_pinch": RightPinchPose,
}
