// Package app wires camera, hand detection and the cursor session into the
// airmouse frame loop.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/airmouse/internal/capture"
	"github.com/ayusman/airmouse/internal/config"
	"github.com/ayusman/airmouse/internal/detector"
	"github.com/ayusman/airmouse/internal/gesture"
	"github.com/ayusman/airmouse/internal/pointer"
)

// Config holds configuration options for the application.
type Config struct {
	// Filter is read once at the start of each session.
	Filter config.Config

	Camera capture.Options
}

// App owns the frame loop. Session state is only touched by the loop
// goroutine; readers observe it through the snapshot mailbox.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	device   Device
	mailbox  *Mailbox

	mu        sync.RWMutex
	enabled   bool
	session   *Session
	stopCh    chan struct{}
	doneCh    chan struct{}
	onGesture func(gesture.Label)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.Camera),
		device:  pointer.New(),
		mailbox: NewMailbox(),
		enabled: true,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled pauses or resumes frame processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera. It must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetDevice replaces the pointer device. It takes effect at the next Start.
func (a *App) SetDevice(d Device) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.device = d
}

// SetFilter replaces the filter configuration. It takes effect at the next
// Start.
func (a *App) SetFilter(cfg config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config.Filter = cfg
}

// Filter returns the filter configuration for new sessions.
func (a *App) Filter() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config.Filter
}

// OnGesture registers a callback for stable label changes. It runs on the
// frame loop goroutine and must not block.
func (a *App) OnGesture(fn func(gesture.Label)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onGesture = fn
}

// Start opens the camera and begins the frame loop with a fresh session.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.session = NewSession(a.config.Filter, a.device)
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runFrameLoop(a.session, a.camera.FPS(), a.stopCh, a.doneCh)

	log.Printf("Frame loop started (session %s)", a.session.ID())
	return nil
}

// Stop halts the frame loop and drops the session.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.session = nil
	log.Println("Frame loop stopped")
}

// Running reports whether the frame loop is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// Mailbox returns the snapshot mailbox written by the frame loop.
func (a *App) Mailbox() *Mailbox {
	return a.mailbox
}

// Snapshot returns the latest published snapshot.
func (a *App) Snapshot() (Snapshot, bool) {
	return a.mailbox.Latest()
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
