package inspiral

import (
	"math"
	"time"
)

// Physical constants. Distances are in km, masses in kg and times in seconds.
const (
	// G is the gravitational constant in km^3 kg^-1 s^-2.
	G = 6.67430e-20
	// C is the speed of light in km/s.
	C = 299792.458
	// SolarMass is the mass of the Sun in kg.
	SolarMass = 1.989e30
	// SolarRadius is the nominal radius of the Sun in km.
	SolarRadius = 695700.0
	// SecondsPerYear is the length of a Julian year.
	SecondsPerYear = 31557600.0
	// SecondsPerGigayear is 1e9 Julian years.
	SecondsPerGigayear = SecondsPerYear * 1e9
	daysPerYear        = 365.25
)

// SolarMassesToKg converts a mass in solar masses to kg.
func SolarMassesToKg(m float64) float64 {
	return m * SolarMass
}

// SolarRadiiToKm converts a distance in solar radii to km.
func SolarRadiiToKm(r float64) float64 {
	return r * SolarRadius
}

// KmToSolarRadii converts a distance in km to solar radii.
func KmToSolarRadii(d float64) float64 {
	return d / SolarRadius
}

// SecondsToGigayears converts a duration in seconds to gigayears.
func SecondsToGigayears(s float64) float64 {
	return s / SecondsPerGigayear
}

// GigayearsToSeconds converts a duration in gigayears to seconds.
func GigayearsToSeconds(gy float64) float64 {
	return gy * SecondsPerGigayear
}

// SemimajorAxisFromPeriod returns the semimajor axis in solar radii of a binary
// of masses m1 and m2 (in solar masses) with the provided orbital period (Kepler's third law).
func SemimajorAxisFromPeriod(m1, m2 float64, period time.Duration) float64 {
	μ := G * (SolarMassesToKg(m1) + SolarMassesToKg(m2))
	T := period.Seconds()
	return KmToSolarRadii(math.Cbrt(μ * T * T / (4 * math.Pi * math.Pi)))
}

// PeriodFromSemimajorAxis is the inverse of SemimajorAxisFromPeriod.
func PeriodFromSemimajorAxis(m1, m2, a float64) time.Duration {
	μ := G * (SolarMassesToKg(m1) + SolarMassesToKg(m2))
	aKm := SolarRadiiToKm(a)
	T := 2 * math.Pi * math.Sqrt(aKm*aKm*aKm/μ)
	return time.Duration(T * float64(time.Second))
}
