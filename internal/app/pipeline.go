package app

import (
	"log"
	"time"

	"github.com/ayusman/airmouse/internal/capture"
	"github.com/ayusman/airmouse/internal/detector"
)

// runFrameLoop drives one session at the camera rate until stopCh closes.
//
// Per tick:
// 1. Skip if processing is disabled
// 2. Read a frame (already mirrored by the camera)
// 3. Detect hands and keep the primary one
// 4. Advance the session with the next frame index
// 5. Publish the snapshot and report label changes
func (a *App) runFrameLoop(s *Session, fps int, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var index int64
	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			out, ok := a.step(s, index, now)
			if !ok {
				continue
			}
			index++

			if out.Changed {
				a.mu.RLock()
				fn := a.onGesture
				a.mu.RUnlock()
				if fn != nil {
					fn(out.Label)
				}
			}
		}
	}
}

// step captures, detects and processes one frame. It reports false when
// no frame reached the session.
func (a *App) step(s *Session, index int64, now time.Time) (Outcome, bool) {
	a.mu.RLock()
	cam, det := a.camera, a.detector
	a.mu.RUnlock()

	frame, err := cam.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		return Outcome{}, false
	}

	hands, err := det.Detect(frame)
	frame.Close()
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return Outcome{}, false
	}

	out := s.Process(Frame{
		Index: index,
		Time:  now,
		Hand:  detector.Primary(hands),
	})
	a.mailbox.Publish(s.Snapshot())

	return out, true
}
