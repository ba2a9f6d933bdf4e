package cursor

// KalmanParams configures the scalar velocity filter.
type KalmanParams struct {
	Q  float64 // process noise
	R  float64 // measurement noise
	P0 float64 // initial covariance
}

// DefaultKalmanParams returns the stock filter tuning.
func DefaultKalmanParams() KalmanParams {
	return KalmanParams{Q: 0.01, R: 0.3, P0: 1.0}
}

// Kalman is a scalar recursive estimator applied to each velocity axis.
// Both axes share one covariance and gain but keep separate estimates;
// no cross-axis correlation is modeled.
type Kalman struct {
	params KalmanParams
	px, py float64
	p      float64
}

// NewKalman creates a filter with zero estimates and covariance P0.
func NewKalman(params KalmanParams) *Kalman {
	return &Kalman{params: params, p: params.P0}
}

// Step feeds one velocity measurement and returns the filtered estimate.
func (k *Kalman) Step(vx, vy float64) (float64, float64) {
	pPred := k.p + k.params.Q
	gain := pPred / (pPred + k.params.R)

	k.px += gain * (vx - k.px)
	k.py += gain * (vy - k.py)
	k.p = (1 - gain) * pPred

	return k.px, k.py
}

// Covariance returns the current shared covariance.
func (k *Kalman) Covariance() float64 {
	return k.p
}

// Reset restores the initial state.
func (k *Kalman) Reset() {
	k.px, k.py = 0, 0
	k.p = k.params.P0
}
