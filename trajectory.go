package inspiral

// Termination defines why an evolution stopped.
type Termination uint8

const (
	// Completed means every requested sample was computed.
	Completed Termination = iota + 1
	// MergedEarly means a runaway state (e >= 1 or a <= 0) was reached before the end of the span.
	MergedEarly
)

func (r Termination) String() string {
	switch r {
	case Completed:
		return "completed"
	case MergedEarly:
		return "merged early"
	}
	panic("cannot stringify unknown termination")
}

// Trajectory is the sampled evolution of a binary. T is in gigayears, A in solar radii.
// All three slices have the same length, which is shorter than the sample budget
// only if Reason is MergedEarly.
type Trajectory struct {
	T, A, E []float64
	Reason  Termination
}

// Len returns the number of samples.
func (tr Trajectory) Len() int {
	return len(tr.T)
}

// Merged returns whether the integration stopped on a runaway state.
func (tr Trajectory) Merged() bool {
	return tr.Reason == MergedEarly
}

// Final returns the last sample, ok is false if the trajectory is empty.
func (tr Trajectory) Final() (t, a, e float64, ok bool) {
	n := tr.Len()
	if n == 0 {
		return 0, 0, 0, false
	}
	return tr.T[n-1], tr.A[n-1], tr.E[n-1], true
}

// Sample is one point of a Trajectory.
type Sample struct {
	T, A, E float64
}

// At returns the i-th sample.
func (tr Trajectory) At(i int) Sample {
	return Sample{tr.T[i], tr.A[i], tr.E[i]}
}
