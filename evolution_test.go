package inspiral

import (
	"math"
	"testing"

	"github.com/ChristopherRabotin/inspiral/integrator"
)

func TestIsRunaway(t *testing.T) {
	for _, s := range [][2]float64{{0, 0.5}, {-1, 0.5}, {1, 1}, {1, 1.2}, {math.NaN(), 0}, {1, math.NaN()}, {math.Inf(1), 0}} {
		if !isRunaway(s[0], s[1]) {
			t.Fatalf("%v is a runaway state", s)
		}
	}
	for _, s := range [][2]float64{{1e-9, 0}, {1, 0.999}, {1e6, 0.274}, {1, -0.1}} {
		if isRunaway(s[0], s[1]) {
			t.Fatalf("%v is not a runaway state", s)
		}
	}
}

func TestEvolutionStagedRunaway(t *testing.T) {
	ev := newEvolution(NewPeters(1), 10, 0.5, 10)
	if ev.Stop(0) {
		t.Fatal("stopped on a valid state")
	}
	ev.Func(0, []float64{-1, 0.5}) // A stage probing past the merger.
	ev.SetState(1, []float64{1e9, 0.5})
	if !ev.Stop(1) {
		t.Fatal("did not stop after a runaway stage")
	}
	if ev.traj.Len() != 1 || ev.traj.Reason != MergedEarly {
		t.Fatalf("unexpected trajectory: %d samples, %s", ev.traj.Len(), ev.traj.Reason)
	}
}

func TestEvolutionEmpty(t *testing.T) {
	// The constructor refuses such states, the integration alone does not.
	for _, s := range [][2]float64{{0, 0.1}, {-5, 0.1}, {10, 1}} {
		ev := newEvolution(NewPeters(1), s[0], s[1], 100)
		iterNum, _, err := integrator.NewRKF45(0, 1, 100, ev).Solve()
		if err != nil {
			t.Fatal(err)
		}
		if iterNum != 0 || ev.traj.Len() != 0 || ev.traj.Reason != MergedEarly {
			t.Fatalf("%v: expected an empty merged trajectory, got %d samples (%s)", s, ev.traj.Len(), ev.traj.Reason)
		}
		if _, _, _, ok := ev.traj.Final(); ok {
			t.Fatal("empty trajectory has a final sample")
		}
	}
}

func TestTermination(t *testing.T) {
	if Completed.String() != "completed" || MergedEarly.String() != "merged early" {
		t.Fatal("incorrect termination names")
	}
	assertPanic(t, func() {
		_ = Termination(0).String()
	})
}

// unguarded records every state and only stops on a merged current state.
// NaN states are recorded, and stage probes are never inspected.
type unguarded struct {
	model Peters
	state []float64
	traj  Trajectory
}

func (u *unguarded) GetState() []float64 { return u.state }
func (u *unguarded) SetState(t float64, s []float64) { u.state = s }
func (u *unguarded) Func(t float64, s []float64) []float64 {
	return u.model.Derivatives(t, s)
}
func (u *unguarded) Stop(t float64) bool {
	a, e := u.state[0], u.state[1]
	if a <= 0 || e >= 1 {
		u.traj.Reason = MergedEarly
		return true
	}
	u.traj.T = append(u.traj.T, t)
	u.traj.A = append(u.traj.A, a)
	u.traj.E = append(u.traj.E, e)
	return false
}

func TestEvolutionPrefixOfUnguarded(t *testing.T) {
	const samples = 10000
	cases := []struct {
		b      *BinarySystem
		span   float64 // in coalescence times
		broken bool    // the unguarded tail is expected to be unphysical
	}{
		{psr(t), 1, true},
		{newQuietBinary(t, 1.33, 1.35, 3.28, 0), 1, true},
		{psr(t), 0.5, false},
		{newQuietBinary(t, 10, 8, 20, 0.5), 0.5, false},
		{newQuietBinary(t, 1.4, 1.4, 0.01, 0.99), 100, false},
	}
	for _, c := range cases {
		tf := GigayearsToSeconds(c.b.CoalescenceTime() * c.span)

		ev := newEvolution(c.b.Model(), c.b.A0(), c.b.E0(), samples)
		if _, _, err := integrator.NewRKF45(0, tf, samples, ev).Solve(); err != nil {
			t.Fatal(err)
		}
		u := &unguarded{model: c.b.Model(), state: []float64{c.b.A0(), c.b.E0()}}
		if _, _, err := integrator.NewRKF45(0, tf, samples, u).Solve(); err != nil {
			t.Fatal(err)
		}

		n := ev.traj.Len()
		if n > u.traj.Len() {
			t.Fatalf("%s: %d guarded samples but only %d unguarded", c.b, n, u.traj.Len())
		}
		for i := 0; i < n; i++ {
			if ev.traj.T[i] != u.traj.T[i] || ev.traj.A[i] != u.traj.A[i] || ev.traj.E[i] != u.traj.E[i] {
				t.Fatalf("%s: sample %d differs: (%g, %g, %g) vs (%g, %g, %g)", c.b, i,
					ev.traj.T[i], ev.traj.A[i], ev.traj.E[i], u.traj.T[i], u.traj.A[i], u.traj.E[i])
			}
		}
		if ev.traj.Reason == Completed && n != u.traj.Len() {
			t.Fatalf("%s: completed with %d samples, unguarded has %d", c.b, n, u.traj.Len())
		}
		if !c.broken {
			continue
		}
		if ev.traj.Reason != MergedEarly || n == u.traj.Len() {
			t.Fatalf("%s: expected the guard to drop a tail (%s, %d vs %d samples)", c.b, ev.traj.Reason, n, u.traj.Len())
		}
		// Whatever the guard dropped is not a physical continuation.
		unphysical := false
		for i := n; i < u.traj.Len(); i++ {
			a, e := u.traj.A[i], u.traj.E[i]
			if math.IsNaN(a) || math.IsNaN(e) || math.IsInf(a, 0) || math.IsInf(e, 0) || a > u.traj.A[i-1] {
				unphysical = true
				break
			}
		}
		if !unphysical {
			t.Fatalf("%s: the dropped tail %v looks physical", c.b, u.traj.A[n:])
		}
	}
}
