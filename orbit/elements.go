// Package orbit evaluates two-body Keplerian orbits into ecliptic positions.
package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/kepler"
)

const (
	// J2000 is the default epoch, 2000-01-01 12:00 TT.
	J2000 = 2451545.0

	// DaysPerYear is the Julian year used by Kepler's third law in AU/year units.
	DaysPerYear = 365.25

	// MaxSemiMajorAxis bounds a to the outer edge of a plausible solar system.
	MaxSemiMajorAxis = 1e5

	// Epochs must lie in the same Julian Date band as the simulated clock.
	minEpoch = 0
	maxEpoch = 2e7
)

var (
	ErrInvalidElements = fault.Configuration("invalid orbital elements")
	ErrNonFinite       = fault.Divergence("non-finite value in orbit evaluation")
)

// ElementError names the offending field of a rejected Params.
type ElementError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%v: %s = %v: %s", ErrInvalidElements, e.Field, e.Value, e.Reason)
}

func (e *ElementError) Unwrap() error { return ErrInvalidElements }

// Params are raw orbital elements as found in a dataset. Angles are in
// degrees. MeanMotion (deg/day) and Epoch (JD) are optional: zero selects
// the Kepler's third law value and J2000 respectively.
type Params struct {
	SemiMajorAxis       float64 // a, AU
	Eccentricity        float64 // e
	Inclination         float64 // i
	AscendingNode       float64 // Ω
	ArgumentOfPeriapsis float64 // ω
	MeanAnomalyAtEpoch  float64 // M₀
	MeanMotion          float64 // n, deg/day
	Epoch               float64 // JD
}

// Elements is a validated, immutable set of orbital elements.
// The zero value is not usable; build one with New.
type Elements struct {
	a, e          float64
	i, node, peri float64 // radians
	m0            float64 // degrees
	n             float64 // deg/day
	epoch         float64
	derived       bool
}

// New validates p and returns the elements it describes.
func New(p Params) (Elements, error) {
	if err := validate(p); err != nil {
		return Elements{}, err
	}

	el := Elements{
		a:     p.SemiMajorAxis,
		e:     p.Eccentricity,
		i:     deg2rad(p.Inclination),
		node:  deg2rad(p.AscendingNode),
		peri:  deg2rad(p.ArgumentOfPeriapsis),
		m0:    p.MeanAnomalyAtEpoch,
		n:     p.MeanMotion,
		epoch: p.Epoch,
	}
	if el.epoch == 0 {
		el.epoch = J2000
	}
	if el.n == 0 {
		el.n = ThirdLawMeanMotion(el.a)
		el.derived = true
	}
	return el, nil
}

// MustNew is New for static tables known to be valid; it panics otherwise.
func MustNew(p Params) Elements {
	el, err := New(p)
	if err != nil {
		panic(err)
	}
	return el
}

func validate(p Params) error {
	var errs []error
	reject := func(field string, v float64, reason string) {
		errs = append(errs, &ElementError{Field: field, Value: v, Reason: reason})
	}

	switch a := p.SemiMajorAxis; {
	case !fault.Finite(a):
		reject("semi-major axis", a, "not finite")
	case a <= 0:
		reject("semi-major axis", a, "must be positive")
	case a > MaxSemiMajorAxis:
		reject("semi-major axis", a, fmt.Sprintf("exceeds %g AU", float64(MaxSemiMajorAxis)))
	}

	if !kepler.ValidEccentricity(p.Eccentricity) {
		reject("eccentricity", p.Eccentricity, "only closed orbits (0 <= e < 1) are supported")
	}

	angles := []struct {
		name string
		v    float64
	}{
		{"inclination", p.Inclination},
		{"ascending node", p.AscendingNode},
		{"argument of periapsis", p.ArgumentOfPeriapsis},
		{"mean anomaly at epoch", p.MeanAnomalyAtEpoch},
	}
	for _, ang := range angles {
		if !fault.Finite(ang.v) {
			reject(ang.name, ang.v, "not finite")
		}
	}

	if n := p.MeanMotion; n != 0 && (!fault.Finite(n) || n < 0) {
		reject("mean motion", n, "must be finite and positive when given")
	}

	if ep := p.Epoch; ep != 0 && (!fault.Finite(ep) || ep < minEpoch || ep > maxEpoch) {
		reject("epoch", ep, "outside the Julian Date band")
	}

	return errors.Join(errs...)
}

// ThirdLawMeanMotion returns the heliocentric mean motion in deg/day for a
// semi-major axis in AU: 360 / (a^1.5 · 365.25).
func ThirdLawMeanMotion(a float64) float64 {
	return 360.0 / (math.Pow(a, 1.5) * DaysPerYear)
}

func (el Elements) SemiMajorAxis() float64 { return el.a }
func (el Elements) Eccentricity() float64  { return el.e }
func (el Elements) Epoch() float64         { return el.epoch }

// MeanMotion returns n in deg/day, supplied or derived.
func (el Elements) MeanMotion() float64 { return el.n }

// MeanMotionDerived reports whether n came from Kepler's third law.
func (el Elements) MeanMotionDerived() bool { return el.derived }

// Period returns the orbital period in days.
func (el Elements) Period() float64 { return 360.0 / el.n }

// Periapsis returns the closest distance to the focus, a(1-e).
func (el Elements) Periapsis() float64 { return el.a * (1 - el.e) }

// Apoapsis returns the farthest distance from the focus, a(1+e).
func (el Elements) Apoapsis() float64 { return el.a * (1 + el.e) }

func deg2rad(d float64) float64 {
	return unit.AngleFromDeg(d).Rad()
}

// Valid reports whether el was built by New. A zero Elements is not valid.
func (el Elements) Valid() bool { return el.n > 0 }
