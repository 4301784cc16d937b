package inspiral

import (
	"fmt"
	"math"
)

/* Peters (1964) orbit averaged decay of a binary through quadrupole radiation. */

// Dadt returns da/dt in km/s for a semimajor axis a (km) and eccentricity e.
func Dadt(t, a, e, β float64) float64 {
	e2 := e * e
	initial := -β / (a * a * a * math.Pow(1-e2, 7/2.))
	return initial * (1 + 73/24.*e2 + 37/96.*e2*e2)
}

// Dedt returns de/dt in s^-1 for a semimajor axis a (km) and eccentricity e.
func Dedt(t, a, e, β float64) float64 {
	initial := -19 / 12. * β / (a * a * a * a * math.Pow(1-e*e, 5/2.))
	return initial * (e + 121/304.*e*e*e)
}

// TermFunc is an additional right hand side term of either da/dt or de/dt.
// It must not hold shared mutable state if the system is evolved concurrently.
type TermFunc func(t, a, e float64) float64

// TermKind defines which derivative a TermFunc adds to.
type TermKind uint8

const (
	// DaTerm adds to da/dt (km/s).
	DaTerm TermKind = iota + 1
	// DeTerm adds to de/dt (s^-1).
	DeTerm
)

func (k TermKind) String() string {
	switch k {
	case DaTerm:
		return "da"
	case DeTerm:
		return "de"
	}
	return fmt.Sprintf("TermKind(%d)", k)
}

// TermKindFromString returns the term kind from its name ("da" or "de").
func TermKindFromString(s string) (TermKind, error) {
	switch s {
	case "da":
		return DaTerm, nil
	case "de":
		return DeTerm, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrTermKind, s)
}

// Term is either the no-op term (zero value) or a custom TermFunc.
type Term struct {
	fn TermFunc
}

// IsCustom returns whether this term holds a function.
func (tm Term) IsCustom() bool {
	return tm.fn != nil
}

// Eval returns the value of the term, zero for the no-op term.
func (tm Term) Eval(t, a, e float64) float64 {
	if tm.fn == nil {
		return 0
	}
	return tm.fn(t, a, e)
}

// Peters is the coupled [a, e] model with its optional additional terms.
type Peters struct {
	β      float64
	da, de Term
}

// NewPeters returns the model for a radiation constant β and no additional terms.
func NewPeters(β float64) Peters {
	return Peters{β: β}
}

// Dadt returns da/dt including the additional da term.
func (p Peters) Dadt(t, a, e float64) float64 {
	return Dadt(t, a, e, p.β) + p.da.Eval(t, a, e)
}

// Dedt returns de/dt including the additional de term.
func (p Peters) Dedt(t, a, e float64) float64 {
	return Dedt(t, a, e, p.β) + p.de.Eval(t, a, e)
}

// Derivatives returns [da/dt, de/dt] for y = [a, e].
func (p Peters) Derivatives(t float64, y []float64) []float64 {
	return []float64{p.Dadt(t, y[0], y[1]), p.Dedt(t, y[0], y[1])}
}
