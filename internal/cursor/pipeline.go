package cursor

import (
	"fmt"
	"math"

	"github.com/ayusman/airmouse/internal/geometry"
	"github.com/ayusman/airmouse/internal/gesture"
)

// Pipeline defaults.
const (
	DefaultSensitivity = 3.0
	DefaultAccel       = 2.0
	DefaultDeadzone    = 0.03
	DefaultSmooth      = 0.6
	DefaultScale       = 40.0
	DefaultStability   = 0.995
)

// Params holds the pipeline tunables.
type Params struct {
	Sensitivity float64
	Accel       float64
	Deadzone    float64
	Smooth      float64
	UseKalman   bool

	// Scale converts filtered velocity to pixels per frame.
	Scale float64

	// Stability is the weight kept by the drift-corrected center each
	// frame; the remainder pulls it toward the current fingertip.
	Stability float64

	Kalman KalmanParams
}

// DefaultParams returns the stock pipeline tuning.
func DefaultParams() Params {
	return Params{
		Sensitivity: DefaultSensitivity,
		Accel:       DefaultAccel,
		Deadzone:    DefaultDeadzone,
		Smooth:      DefaultSmooth,
		Scale:       DefaultScale,
		Stability:   DefaultStability,
		Kalman:      DefaultKalmanParams(),
	}
}

// Mode is the per-frame directive derived from the gesture label.
type Mode int

const (
	// ModeIdle unfreezes without moving.
	ModeIdle Mode = iota
	// ModeActive moves the cursor.
	ModeActive
	// ModeFrozen suspends motion but keeps filter state warm.
	ModeFrozen
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeActive:
		return "active"
	case ModeFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeForLabel maps a gesture label to a pipeline directive.
func ModeForLabel(l gesture.Label) Mode {
	switch l {
	case gesture.Move:
		return ModeActive
	case gesture.Palm, gesture.LeftClick, gesture.RightClick:
		return ModeFrozen
	default:
		return ModeIdle
	}
}

// Result describes one Update call.
type Result struct {
	// Moved is set when a new absolute position was applied.
	Moved bool
	X, Y  int

	// Velocity is the filtered velocity for this frame.
	Velocity geometry.Point

	// BoundsStale is set when monitor resolution fell back to the last
	// known bounds.
	BoundsStale bool
}

// Pipeline is the drift-correcting joystick filter. One Pipeline belongs to
// one session and is not safe for concurrent use.
type Pipeline struct {
	params  Params
	pointer Pointer
	display Display
	kalman  *Kalman

	center    geometry.Point
	hasCenter bool
	prevV     geometry.Point
	frozen    bool
	bounds    Rect
}

// NewPipeline creates a Pipeline. The first monitor reported by display
// seeds the bounds used until a better match is found.
func NewPipeline(params Params, pointer Pointer, display Display) *Pipeline {
	p := &Pipeline{
		params:  params,
		pointer: pointer,
		display: display,
		kalman:  NewKalman(params.Kalman),
	}

	if display != nil {
		if monitors, err := display.Monitors(); err == nil && len(monitors) > 0 {
			p.bounds = monitors[0]
		}
	}

	return p
}

// Update advances the pipeline by one frame.
//
// Frozen and idle directives never touch center, velocity or Kalman state.
// An active directive runs the full filter; the first active sample after
// construction or Reset only seeds the center. Boundary failures skip the
// position update and are returned wrapped in ErrPointer or ErrDisplay;
// filter state is kept.
func (p *Pipeline) Update(pt geometry.Point, mode Mode) (Result, error) {
	switch mode {
	case ModeFrozen:
		p.frozen = true
		return Result{}, nil
	case ModeIdle:
		p.frozen = false
		return Result{}, nil
	}
	p.frozen = false

	var res Result

	cx, cy, posErr := p.pointer.Position()
	if posErr == nil {
		res.BoundsStale = !p.resolveBounds(cx, cy)
	} else {
		res.BoundsStale = true
	}

	if !p.hasCenter {
		p.center = pt
		p.hasCenter = true
		return res, nil
	}

	res.Velocity = p.velocity(pt)

	if posErr != nil {
		return res, fmt.Errorf("%w: query position: %w", ErrPointer, posErr)
	}
	if p.bounds.Empty() {
		return res, fmt.Errorf("%w: no monitor bounds", ErrDisplay)
	}

	x := clampAxis(float64(cx)+res.Velocity.X*p.params.Scale, p.bounds.Width)
	y := clampAxis(float64(cy)+res.Velocity.Y*p.params.Scale, p.bounds.Height)

	if err := p.pointer.SetPosition(x, y); err != nil {
		return res, fmt.Errorf("%w: set position: %w", ErrPointer, err)
	}

	res.Moved = true
	res.X, res.Y = x, y
	return res, nil
}

// velocity runs drift correction through smoothing and returns the
// filtered velocity.
func (p *Pipeline) velocity(pt geometry.Point) geometry.Point {
	s := p.params.Stability
	p.center.X = p.center.X*s + pt.X*(1-s)
	p.center.Y = p.center.Y*s + pt.Y*(1-s)

	dx := pt.X - p.center.X
	dy := -(pt.Y - p.center.Y) // vertical axis inverted

	rawX := p.shape(p.deadzone(dx))
	rawY := p.shape(p.deadzone(dy))

	k := p.params.Smooth
	v := geometry.Point{
		X: p.prevV.X*k + rawX*(1-k),
		Y: p.prevV.Y*k + rawY*(1-k),
	}
	p.prevV = v

	if p.params.UseKalman {
		v.X, v.Y = p.kalman.Step(v.X, v.Y)
	}

	return v
}

func (p *Pipeline) deadzone(d float64) float64 {
	if math.Abs(d) < p.params.Deadzone {
		return 0
	}
	return d
}

// shape applies the cubic response curve and deflection-scaled acceleration.
func (p *Pipeline) shape(d float64) float64 {
	return d * d * d * p.params.Sensitivity * (math.Abs(d)*p.params.Accel + 1)
}

// resolveBounds picks the monitor under the cursor. It reports false when
// the last known bounds had to be kept.
func (p *Pipeline) resolveBounds(x, y int) bool {
	if p.display == nil {
		return false
	}
	monitors, err := p.display.Monitors()
	if err != nil {
		return false
	}
	// An empty rect never contains a point, so it doubles as "no match".
	m := ResolveMonitor(x, y, monitors, Rect{})
	if m.Empty() {
		return false
	}
	p.bounds = m
	return true
}

func clampAxis(v float64, dim int) int {
	v = math.Max(0, math.Min(float64(dim-1), v))
	return int(v)
}

// Reset discards center, velocity and Kalman state.
func (p *Pipeline) Reset() {
	p.center = geometry.Point{}
	p.hasCenter = false
	p.prevV = geometry.Point{}
	p.frozen = false
	p.kalman.Reset()
}

// Center returns the drift-corrected center and whether it is initialized.
func (p *Pipeline) Center() (geometry.Point, bool) {
	return p.center, p.hasCenter
}

// Velocity returns the last smoothed velocity before Kalman filtering.
func (p *Pipeline) Velocity() geometry.Point {
	return p.prevV
}

// Frozen reports whether the last directive froze the cursor.
func (p *Pipeline) Frozen() bool {
	return p.frozen
}

// Bounds returns the monitor bounds currently used for clamping.
func (p *Pipeline) Bounds() Rect {
	return p.bounds
}
