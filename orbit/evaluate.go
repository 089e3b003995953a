package orbit

import (
	"fmt"
	"math"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/kepler"
	"github.com/echoflaresat/orrery/vectors"
)

// MeanAnomalyAt returns the mean anomaly in degrees, normalized to [0, 360),
// at Julian Date jd.
func (el Elements) MeanAnomalyAt(jd float64) float64 {
	return kepler.NormalizeDegrees(el.m0 + el.n*(jd-el.epoch))
}

// State is the set of intermediates of one evaluation, exposed for
// diagnostics and tests.
type State struct {
	MeanAnomaly      float64 // degrees, [0, 360)
	EccentricAnomaly float64 // radians
	TrueAnomaly      float64 // radians
	Radius           float64 // AU
	Position         vectors.Vec3
}

// Position returns the position at Julian Date jd relative to the focus
// the orbit is defined around, in the ecliptic frame.
func (el Elements) Position(jd float64) (vectors.Vec3, error) {
	st, err := el.StateAt(jd)
	if err != nil {
		return vectors.Vec3{}, err
	}
	return st.Position, nil
}

// StateAt evaluates the orbit at jd and returns every intermediate.
// A non-finite intermediate is an error; nothing is substituted.
func (el Elements) StateAt(jd float64) (State, error) {
	if !el.Valid() {
		return State{}, fmt.Errorf("%w: elements were not built with orbit.New", ErrInvalidElements)
	}
	if err := fault.Check(ErrNonFinite, "julian date", jd); err != nil {
		return State{}, err
	}

	M := el.MeanAnomalyAt(jd)
	if err := fault.Check(ErrNonFinite, "mean anomaly", M); err != nil {
		return State{}, err
	}

	E, err := kepler.Solve(M, el.e)
	if err != nil {
		return State{}, err
	}

	e := el.e
	nu := 2.0 * math.Atan2(
		math.Sqrt(1.0+e)*math.Sin(E/2.0),
		math.Sqrt(1.0-e)*math.Cos(E/2.0),
	)
	if err := fault.Check(ErrNonFinite, "true anomaly", nu); err != nil {
		return State{}, err
	}

	r := el.a * (1.0 - e*e) / (1.0 + e*math.Cos(nu))
	if err := fault.Check(ErrNonFinite, "radius", r); err != nil {
		return State{}, err
	}

	// In the orbital plane, periapsis on +X.
	p := vectors.Vec3{X: r * math.Cos(nu), Y: r * math.Sin(nu)}

	// ω about Z, then i about X, then Ω about Z.
	p = p.RotateZ(el.peri).RotateX(el.i).RotateZ(el.node)
	if err := fault.CheckVec(ErrNonFinite, "ecliptic position", p); err != nil {
		return State{}, err
	}

	return State{
		MeanAnomaly:      M,
		EccentricAnomaly: E,
		TrueAnomaly:      nu,
		Radius:           r,
		Position:         p,
	}, nil
}
