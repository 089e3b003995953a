// Package kepler solves Kepler's equation M = E - e·sin(E) for closed orbits.
package kepler

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/orrery/fault"
)

const (
	// Tolerance is the largest accepted residual |E - e·sin(E) - M|, in radians.
	Tolerance = 1e-10

	// MaxIterations caps the Newton-Raphson loop.
	MaxIterations = 100

	// DerivativeEpsilon is the smallest accepted |1 - e·cos(E)|.
	DerivativeEpsilon = 1e-12

	// highEccentricity is where the seed switches from M to π.
	highEccentricity = 0.8
)

var (
	ErrInvalidEccentricity  = fault.Configuration("eccentricity must be finite and in [0, 1)")
	ErrInvalidMeanAnomaly   = fault.Configuration("mean anomaly must be finite")
	ErrDegenerateDerivative = fault.Divergence("kepler derivative 1 - e·cos(E) vanished")
	ErrNotConverged         = fault.Divergence("kepler solver did not converge")
)

// ConvergenceError describes a solve that hit MaxIterations.
type ConvergenceError struct {
	MeanAnomaly  float64 // radians, normalized
	Eccentricity float64
	Last         float64 // last eccentric anomaly estimate, radians
	Residual     float64
	Iterations   int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v: M=%.15g e=%.15g E=%.15g residual=%.3g after %d iterations",
		ErrNotConverged, e.MeanAnomaly, e.Eccentricity, e.Last, e.Residual, e.Iterations)
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }

// ValidEccentricity reports whether e describes a closed orbit.
func ValidEccentricity(e float64) bool {
	return fault.Finite(e) && e >= 0 && e < 1
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := unit.PMod(deg, 360)
	// PMod can round up to exactly 360 for tiny negative inputs.
	if d >= 360 {
		d = 0
	}
	return d
}

// MeanAnomalyRadians normalizes a mean anomaly given in degrees and converts it to radians.
func MeanAnomalyRadians(meanAnomalyDeg float64) float64 {
	return unit.AngleFromDeg(NormalizeDegrees(meanAnomalyDeg)).Rad()
}

// Solve returns the eccentric anomaly E in radians for mean anomaly
// meanAnomalyDeg (degrees, any finite value) and eccentricity e.
//
// Failure to converge is returned as an error, never as an approximate value.
func Solve(meanAnomalyDeg, e float64) (float64, error) {
	if !ValidEccentricity(e) {
		return 0, fmt.Errorf("%w: e=%v", ErrInvalidEccentricity, e)
	}
	if !fault.Finite(meanAnomalyDeg) {
		return 0, fmt.Errorf("%w: M=%v", ErrInvalidMeanAnomaly, meanAnomalyDeg)
	}

	M := MeanAnomalyRadians(meanAnomalyDeg)
	return newton(M, e, seed(M, e))
}

// seed picks the starting estimate; from E = M the iteration converges
// poorly for very elongated orbits.
func seed(M, e float64) float64 {
	if e > highEccentricity {
		return math.Pi
	}
	return M
}

func newton(M, e, E float64) (float64, error) {
	var residual float64
	for i := 0; i < MaxIterations; i++ {
		residual = E - e*math.Sin(E) - M
		if math.Abs(residual) < Tolerance {
			return E, nil
		}

		d := 1.0 - e*math.Cos(E)
		if math.Abs(d) <= DerivativeEpsilon {
			return 0, fmt.Errorf("%w: e=%.17g E=%.17g derivative=%.3g", ErrDegenerateDerivative, e, E, d)
		}
		E -= residual / d

		if !fault.Finite(E) {
			return 0, fmt.Errorf("%w: non-finite estimate at iteration %d", ErrNotConverged, i+1)
		}
	}

	return 0, &ConvergenceError{
		MeanAnomaly:  M,
		Eccentricity: e,
		Last:         E,
		Residual:     residual,
		Iterations:   MaxIterations,
	}
}
