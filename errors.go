package inspiral

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every validation error of a binary system.
var ErrInvalidParameter = errors.New("invalid binary parameter")

var (
	// ErrEccentricity is returned when the eccentricity is not in [0, 1).
	ErrEccentricity = fmt.Errorf("%w: eccentricity must be in [0, 1)", ErrInvalidParameter)
	// ErrMass is returned when either mass is not strictly positive.
	ErrMass = fmt.Errorf("%w: masses must be strictly positive", ErrInvalidParameter)
	// ErrSemimajorAxis is returned when the semimajor axis is not strictly positive.
	ErrSemimajorAxis = fmt.Errorf("%w: semimajor axis must be strictly positive", ErrInvalidParameter)
	// ErrTermKind is returned when attaching a term which is neither da nor de.
	ErrTermKind = fmt.Errorf("%w: term kind must be da or de", ErrInvalidParameter)
	// ErrNilTerm is returned when attaching a nil term function.
	ErrNilTerm = fmt.Errorf("%w: term function may not be nil", ErrInvalidParameter)
	// ErrSamples is returned when requesting fewer than two samples.
	ErrSamples = fmt.Errorf("%w: at least two samples are needed", ErrInvalidParameter)
	// ErrUnknownParameter is returned by Param for names it does not know.
	ErrUnknownParameter = errors.New("unknown parameter")
)
