package inspiral

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ChristopherRabotin/inspiral/integrator"
	kitlog "github.com/go-kit/kit/log"
)

// Keys of the auxiliary terms carried by a BinarySystem.
const (
	WeightKey          = "weight"
	EvolutionAgeKey    = "evolution_age"
	RejuvenationAgeKey = "rejuvenation_age"
)

var (
	loggerMu sync.RWMutex
	// All binaries share one writer so that concurrent evolutions never interleave lines.
	pkgLogger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
)

// SetLogger sets the logger of the binaries created from now on.
// Use kitlog.NewNopLogger() to silence them.
func SetLogger(l kitlog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	pkgLogger = l
}

func packageLogger() kitlog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return pkgLogger
}

// BinarySystem is a gravitationally bound pair of stars which loses orbital
// energy and angular momentum to gravitational radiation.
// Its physical parameters never change after construction.
type BinarySystem struct {
	m1, m2 float64 // kg
	a0     float64 // km
	e0     float64
	β      float64 // km^4/s
	// Bookkeeping for population studies, unused by the integration.
	weight, evolutionAge, rejuvenationAge float64
	da, de                                Term
	samples                               int
	logger                                kitlog.Logger
}

// NewBinarySystem returns a new binary from the masses (solar masses), the
// initial semimajor axis (solar radii) and the initial eccentricity.
// The extra terms may set the weight (default 1), the evolution_age and the
// rejuvenation_age (default 0); any other key is ignored.
func NewBinarySystem(m1, m2, a0, e0 float64, extra map[string]float64) (*BinarySystem, error) {
	if !(e0 >= 0 && e0 < 1) {
		return nil, fmt.Errorf("%w (e0=%g)", ErrEccentricity, e0)
	}
	if !(m1 > 0 && m2 > 0) || math.IsInf(m1, 0) || math.IsInf(m2, 0) {
		return nil, fmt.Errorf("%w (m1=%g, m2=%g)", ErrMass, m1, m2)
	}
	if !(a0 > 0) || math.IsInf(a0, 0) {
		return nil, fmt.Errorf("%w (a0=%g)", ErrSemimajorAxis, a0)
	}
	b := &BinarySystem{
		m1:      SolarMassesToKg(m1),
		m2:      SolarMassesToKg(m2),
		a0:      SolarRadiiToKm(a0),
		e0:      e0,
		weight:  1,
		samples: inspiralConfig().Samples,
	}
	if w, ok := extra[WeightKey]; ok {
		b.weight = w
	}
	b.evolutionAge = extra[EvolutionAgeKey]
	b.rejuvenationAge = extra[RejuvenationAgeKey]
	b.β = (64 / 5.) * G * G * G * b.m1 * b.m2 * (b.m1 + b.m2) / math.Pow(C, 5)
	b.logger = kitlog.With(packageLogger(), "binary", b.String())
	return b, nil
}

// NewBinarySystemFromPeriod is the same as NewBinarySystem with the orbital
// period instead of the semimajor axis.
func NewBinarySystemFromPeriod(m1, m2 float64, period time.Duration, e0 float64, extra map[string]float64) (*BinarySystem, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w (period=%s)", ErrSemimajorAxis, period)
	}
	return NewBinarySystem(m1, m2, SemimajorAxisFromPeriod(m1, m2, period), e0, extra)
}

// M1 returns the primary mass in kg.
func (b *BinarySystem) M1() float64 { return b.m1 }

// M2 returns the secondary mass in kg.
func (b *BinarySystem) M2() float64 { return b.m2 }

// A0 returns the initial semimajor axis in km.
func (b *BinarySystem) A0() float64 { return b.a0 }

// E0 returns the initial eccentricity.
func (b *BinarySystem) E0() float64 { return b.e0 }

// Beta returns the radiation constant in km^4/s.
func (b *BinarySystem) Beta() float64 { return b.β }

// Weight returns the relative population weight.
func (b *BinarySystem) Weight() float64 { return b.weight }

// EvolutionAge returns the evolution age bookkeeping term.
func (b *BinarySystem) EvolutionAge() float64 { return b.evolutionAge }

// RejuvenationAge returns the rejuvenation age bookkeeping term.
func (b *BinarySystem) RejuvenationAge() float64 { return b.rejuvenationAge }

// Samples returns the number of evaluation points used by EvolveUntil.
func (b *BinarySystem) Samples() int { return b.samples }

// Param returns a parameter by name, in internal units.
func (b *BinarySystem) Param(name string) (float64, error) {
	switch name {
	case "beta":
		return b.β, nil
	case "m1":
		return b.m1, nil
	case "m2":
		return b.m2, nil
	case "a0":
		return b.a0, nil
	case "e0":
		return b.e0, nil
	case WeightKey:
		return b.weight, nil
	case EvolutionAgeKey:
		return b.evolutionAge, nil
	case RejuvenationAgeKey:
		return b.rejuvenationAge, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

func (b *BinarySystem) String() string {
	return fmt.Sprintf("m1=%.3fM☉ m2=%.3fM☉ a0=%.3fR☉ e0=%.3f", b.m1/SolarMass, b.m2/SolarMass, KmToSolarRadii(b.a0), b.e0)
}

// CoalescenceTime returns the time to coalescence in gigayears.
// This is the approximation from Nyadzani & Razzaque (arXiv:1905.06086, eq. 10)
// of the numerical result of Peters (1964).
func (b *BinarySystem) CoalescenceTime() float64 {
	circ := math.Pow(b.a0, 4) / (4 * b.β)
	divisor := math.Pow(1-math.Pow(b.e0, 7/4.), 1/5.) * (1 + 121/304.*b.e0*b.e0)
	return SecondsToGigayears(circ * math.Pow(1-b.e0*b.e0, 7/2.) / divisor)
}

// WithTerm returns a copy of this binary where the kind of derivative has the
// additional term fn. A previous term of the same kind is replaced.
func (b *BinarySystem) WithTerm(kind TermKind, fn TermFunc) (*BinarySystem, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w (kind=%s)", ErrNilTerm, kind)
	}
	nb := *b
	switch kind {
	case DaTerm:
		nb.da = Term{fn}
	case DeTerm:
		nb.de = Term{fn}
	default:
		return nil, fmt.Errorf("%w (kind=%s)", ErrTermKind, kind)
	}
	return &nb, nil
}

// WithSamples returns a copy of this binary which evolves over n evaluation points.
func (b *BinarySystem) WithSamples(n int) (*BinarySystem, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w (samples=%d)", ErrSamples, n)
	}
	nb := *b
	nb.samples = n
	return &nb, nil
}

// WithLogger returns a copy of this binary logging to the provided logger.
func (b *BinarySystem) WithLogger(logger kitlog.Logger) *BinarySystem {
	nb := *b
	nb.logger = logger
	return &nb
}

// Model returns the coupled ODE model of this binary, including its additional terms.
func (b *BinarySystem) Model() Peters {
	return Peters{β: b.β, da: b.da, de: b.de}
}

// EvolveUntil integrates the orbit from t0 to tf (in seconds).
// The returned time is in gigayears and the semimajor axis in solar radii.
func (b *BinarySystem) EvolveUntil(t0, tf float64) Trajectory {
	b.logger.Log("level", "info", "subsys", "inspiral", "status", "evolving", "from(Gyr)", SecondsToGigayears(t0), "to(Gyr)", SecondsToGigayears(tf), "samples", b.samples)
	ev := newEvolution(b.Model(), b.a0, b.e0, b.samples)
	if _, _, err := integrator.NewRKF45(t0, tf, b.samples, ev).Solve(); err != nil {
		// Peters.Derivatives always matches the state dimension.
		panic(fmt.Errorf("evolution of %s: %w", b, err))
	}
	traj := ev.traj
	for i := range traj.T {
		traj.T[i] = SecondsToGigayears(traj.T[i])
		traj.A[i] = KmToSolarRadii(traj.A[i])
	}
	if traj.Merged() {
		b.logger.Log("level", "notice", "subsys", "inspiral", "status", "finished", "reason", traj.Reason, "samples", traj.Len())
	} else {
		b.logger.Log("level", "info", "subsys", "inspiral", "status", "finished", "reason", traj.Reason, "samples", traj.Len())
	}
	return traj
}

// EvolveUntilMerger integrates the orbit over its coalescence time.
func (b *BinarySystem) EvolveUntilMerger() Trajectory {
	return b.EvolveUntil(0, GigayearsToSeconds(b.CoalescenceTime()))
}

// Circularizes returns whether the orbit becomes circular before merging.
// This is a naive check: the final eccentricity must be close to zero and the
// final semimajor axis large enough for the binary not to have plunged.
func (b *BinarySystem) Circularizes() bool {
	_, a, e, ok := b.EvolveUntilMerger().Final()
	if !ok {
		return false
	}
	conf := inspiralConfig()
	return math.Abs(e) <= conf.EccTolerance && a > conf.MinSMA
}
