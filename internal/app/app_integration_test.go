package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/airmouse/internal/capture"
	"github.com/ayusman/airmouse/internal/config"
	"github.com/ayusman/airmouse/internal/cursor"
	"github.com/ayusman/airmouse/internal/detector"
	"github.com/ayusman/airmouse/internal/gesture"
)

func newTestApp(t *testing.T) (*App, *detector.MockDetector, *capture.MockCamera, *cursor.MockDevice) {
	t.Helper()

	a := New(Config{Filter: config.Default(), Camera: capture.DefaultOptions()})

	det := detector.NewMockDetector()
	cam := capture.NewBlankCamera(64, 48)
	dev := cursor.NewMockDevice(960, 540, testScreen)

	a.SetDetector(det)
	a.SetCamera(cam)
	a.SetDevice(dev)
	return a, det, cam, dev
}

func TestApp_Step(t *testing.T) {
	a, det, cam, dev := newTestApp(t)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s := NewSession(a.Filter(), dev)

	move := detector.MovePose()
	det.Enqueue(
		[]detector.HandLandmarks{move},
		nil,
		[]detector.HandLandmarks{move, detector.PalmPose()},
	)

	for i := int64(0); i < 3; i++ {
		if _, ok := a.step(s, i, epoch.Add(time.Duration(i)*frameStep)); !ok {
			t.Fatalf("step %d did not reach the session", i)
		}
	}

	snap, ok := a.Snapshot()
	if !ok {
		t.Fatal("no snapshot published")
	}
	if snap.Frame != 2 || snap.SessionID != s.ID() {
		t.Errorf("snapshot frame %d session %s", snap.Frame, snap.SessionID)
	}
	// The second hand is ignored, so the third frame is a move frame.
	if snap.Counters[gesture.Move] != 1 {
		t.Errorf("move counter = %d, want 1", snap.Counters[gesture.Move])
	}
	if a.Mailbox().Drops() != 2 {
		t.Errorf("Drops() = %d, want 2 with no reader", a.Mailbox().Drops())
	}
}

func TestApp_StepSkipsFailedFrames(t *testing.T) {
	a, det, cam, dev := newTestApp(t)
	cam.Open()
	s := NewSession(a.Filter(), dev)

	cam.SetReadError(errors.New("device unplugged"))
	if _, ok := a.step(s, 0, epoch); ok {
		t.Error("a failed read must not reach the session")
	}
	cam.SetReadError(nil)

	det.SetError(errors.New("detector crashed"))
	if _, ok := a.step(s, 0, epoch); ok {
		t.Error("a failed detection must not reach the session")
	}
	det.SetError(nil)

	if _, ok := a.Snapshot(); ok {
		t.Error("no snapshot should be published for skipped frames")
	}
	if _, ok := a.step(s, 0, epoch); !ok {
		t.Error("frame after recovery should be processed")
	}
}

func TestApp_FrameLoop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, det, _, dev := newTestApp(t)
	det.SetHands([]detector.HandLandmarks{detector.MovePose()})

	var mu sync.Mutex
	var changes []gesture.Label
	a.OnGesture(func(l gesture.Label) {
		mu.Lock()
		changes = append(changes, l)
		mu.Unlock()
	})

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !a.Running() {
		t.Error("Running() should be true after Start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap, ok := a.Snapshot(); ok && snap.Gesture == gesture.Move {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	first, _ := a.Snapshot()

	a.Stop()
	if a.Running() {
		t.Error("Running() should be false after Stop")
	}

	if first.Gesture != gesture.Move {
		t.Fatalf("gesture = %v, want move", first.Gesture)
	}
	mu.Lock()
	if len(changes) == 0 || changes[0] != gesture.Move {
		t.Errorf("OnGesture changes = %v, want move first", changes)
	}
	mu.Unlock()
	if len(dev.Clicks()) != 0 {
		t.Error("move must not click")
	}

	// A restart begins a new session.
	if err := a.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	deadline = time.Now().Add(2 * time.Second)
	var second Snapshot
	for time.Now().Before(deadline) {
		if snap, ok := a.Snapshot(); ok && snap.SessionID != first.SessionID {
			second = snap
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	a.Stop()

	if second.SessionID == "" {
		t.Error("restart should publish snapshots from a new session")
	}
}

func TestApp_Disabled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, det, cam, _ := newTestApp(t)
	det.SetHands([]detector.HandLandmarks{detector.MovePose()})
	a.SetEnabled(false)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	a.Stop()

	if cam.Reads() != 0 {
		t.Errorf("disabled app read %d frames", cam.Reads())
	}
	if _, ok := a.Snapshot(); ok {
		t.Error("disabled app should not publish snapshots")
	}
}
