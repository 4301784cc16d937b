package integrator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// DefaultSamples is the number of evaluation points spread over the requested span.
const DefaultSamples = 10000

// Fehlberg tableau. Only k1, k3, k4 and k5 enter the update; k2 and k6 are
// evaluated because the later stages depend on them.
const (
	c2, c3, c4, c5, c6 = 1 / 4.0, 3 / 8.0, 12 / 13.0, 1.0, 1 / 2.0

	a21 = 1 / 4.0

	a31, a32 = 3 / 32.0, 9 / 32.0

	a41, a42, a43 = 1932 / 2197.0, -7200 / 2197.0, 7296 / 2197.0

	a51, a52, a53, a54 = 439 / 216.0, -8.0, 3680 / 513.0, -845 / 4104.0

	a61, a62, a63, a64, a65 = -8 / 27.0, 2.0, -3544 / 2565.0, 1859 / 4104.0, -11 / 40.0

	b1, b3, b4, b5 = 25 / 216.0, 1408 / 2565.0, 2197 / 4101.0, -1 / 5.0
)

// RKF45 is a fixed step integrator using the Runge-Kutta-Fehlberg stages.
// There is no error estimate and no step adaptation: the span [T0, Tf] is
// split into Samples equally spaced points and a single step is taken from each.
type RKF45 struct {
	T0, Tf     float64    // Integration span.
	Samples    int        // Number of evaluation points in the span.
	Integrator Integrable // What is to be integrated.
}

// NewRKF45 returns a new RKF45 integrator instance.
func NewRKF45(t0, tf float64, samples int, inte Integrable) *RKF45 {
	if samples < 2 {
		panic("config Samples must be at least 2")
	}
	if inte == nil {
		panic("config Integrator may not be nil")
	}
	return &RKF45{T0: t0, Tf: tf, Samples: samples, Integrator: inte}
}

// Evaluations returns the evaluation points of this integrator.
func (r *RKF45) Evaluations() []float64 {
	return floats.Span(make([]float64, r.Samples), r.T0, r.Tf)
}

// Solve solves the configured RKF45.
// Returns the number of steps performed and the time reached, or an error if
// the integrable returned a derivative of the wrong dimension.
func (r *RKF45) Solve() (uint64, float64, error) {
	tEval := r.Evaluations()
	h := tEval[1] - tEval[0]

	iterNum := uint64(0)
	ti := tEval[0]
	for _, t := range tEval {
		if r.Integrator.Stop(t) {
			break
		}
		state := r.Integrator.GetState()
		dim := len(state)
		k := make([][]float64, 6)
		tState := make([]float64, dim)

		eval := func(stage int, at float64, s []float64) error {
			fDot := r.Integrator.Func(at, s)
			if len(fDot) != dim {
				return fmt.Errorf("stage k%d @ t=%g: derivative has %d components, state has %d", stage+1, at, len(fDot), dim)
			}
			k[stage] = floats.ScaleTo(make([]float64, dim), h, fDot)
			return nil
		}

		if err := eval(0, t, state); err != nil {
			return iterNum, ti, err
		}

		floats.AddScaledTo(tState, state, a21, k[0])
		if err := eval(1, t+c2*h, tState); err != nil {
			return iterNum, ti, err
		}

		floats.AddScaledTo(tState, state, a31, k[0])
		floats.AddScaled(tState, a32, k[1])
		if err := eval(2, t+c3*h, tState); err != nil {
			return iterNum, ti, err
		}

		floats.AddScaledTo(tState, state, a41, k[0])
		floats.AddScaled(tState, a42, k[1])
		floats.AddScaled(tState, a43, k[2])
		if err := eval(3, t+c4*h, tState); err != nil {
			return iterNum, ti, err
		}

		floats.AddScaledTo(tState, state, a51, k[0])
		floats.AddScaled(tState, a52, k[1])
		floats.AddScaled(tState, a53, k[2])
		floats.AddScaled(tState, a54, k[3])
		if err := eval(4, t+c5*h, tState); err != nil {
			return iterNum, ti, err
		}

		floats.AddScaledTo(tState, state, a61, k[0])
		floats.AddScaled(tState, a62, k[1])
		floats.AddScaled(tState, a63, k[2])
		floats.AddScaled(tState, a64, k[3])
		floats.AddScaled(tState, a65, k[4])
		if err := eval(5, t+c6*h, tState); err != nil {
			return iterNum, ti, err
		}

		newState := make([]float64, dim)
		floats.AddScaledTo(newState, state, b1, k[0])
		floats.AddScaled(newState, b3, k[2])
		floats.AddScaled(newState, b4, k[3])
		floats.AddScaled(newState, b5, k[4])

		ti = t + h
		r.Integrator.SetState(ti, newState)
		iterNum++ // Don't forget to increment the number of iterations.
	}

	return iterNum, ti, nil
}
