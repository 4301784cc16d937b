package inspiral

import (
	"math"
)

/* Handles the integration of the orbital decay. */

// evolution is the integrator.Integrable of a BinarySystem.
// The trajectory is stored in km and seconds and rescaled by the caller.
type evolution struct {
	model   Peters
	state   []float64 // [a, e]
	traj    Trajectory
	runaway bool // Set when a stage of the current step probed a runaway state.
}

func newEvolution(model Peters, a0, e0 float64, samples int) *evolution {
	return &evolution{
		model: model,
		state: []float64{a0, e0},
		traj: Trajectory{
			T:      make([]float64, 0, samples),
			A:      make([]float64, 0, samples),
			E:      make([]float64, 0, samples),
			Reason: Completed,
		},
	}
}

// isRunaway returns whether [a, e] is a merged or numerically broken state.
func isRunaway(a, e float64) bool {
	if math.IsNaN(a) || math.IsNaN(e) || math.IsInf(a, 0) || math.IsInf(e, 0) {
		return true
	}
	return e >= 1 || a <= 0
}

// GetState implements the integrator.Integrable interface.
func (ev *evolution) GetState() []float64 {
	return ev.state
}

// SetState implements the integrator.Integrable interface.
func (ev *evolution) SetState(t float64, s []float64) {
	ev.state = s
}

// Stop implements the integrator.Integrable interface.
// A state which is not a runaway is recorded as the sample at t.
func (ev *evolution) Stop(t float64) bool {
	a, e := ev.state[0], ev.state[1]
	if ev.runaway || isRunaway(a, e) {
		// The state reached by a step whose stages crossed into the runaway region is meaningless.
		ev.traj.Reason = MergedEarly
		return true
	}
	ev.traj.T = append(ev.traj.T, t)
	ev.traj.A = append(ev.traj.A, a)
	ev.traj.E = append(ev.traj.E, e)
	return false
}

// Func implements the integrator.Integrable interface.
func (ev *evolution) Func(t float64, s []float64) []float64 {
	if isRunaway(s[0], s[1]) {
		ev.runaway = true
	}
	return ev.model.Derivatives(t, s)
}
