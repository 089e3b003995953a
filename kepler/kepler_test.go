package kepler

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	mkepler "github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/unit"

	"github.com/echoflaresat/orrery/fault"
)

func residual(E, e, M float64) float64 {
	return math.Abs(E - e*math.Sin(E) - M)
}

func TestSolveResidual(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	eccentricities := []float64{0, 1e-9, 0.0167, 0.2056, 0.5, 0.79, 0.8, 0.80001, 0.95, 0.99, 0.9999, 0.999998}

	for _, e := range eccentricities {
		for k := 0; k < 500; k++ {
			Mdeg := rng.Float64()*720 - 360
			E, err := Solve(Mdeg, e)
			if err != nil {
				t.Fatalf("Solve(%v, %v): %v", Mdeg, e, err)
			}
			M := MeanAnomalyRadians(Mdeg)
			if r := residual(E, e, M); r >= 1e-9 {
				t.Fatalf("Solve(%v, %v) residual %g", Mdeg, e, r)
			}
		}
	}
}

func TestSolveEdgeAnomalies(t *testing.T) {
	cases := []struct {
		name string
		M    float64
	}{
		{"zero", 0},
		{"tiny", 1e-9},
		{"half turn", 180},
		{"just below full turn", 359.9999999},
		{"negative", -45},
		{"large positive", 1e7 + 33.5},
		{"large negative", -987654.321},
	}

	for _, c := range cases {
		for _, e := range []float64{0, 0.3, 0.85, 0.999999 - 1e-9} {
			t.Run(c.name, func(t *testing.T) {
				E, err := Solve(c.M, e)
				if err != nil {
					t.Fatalf("Solve(%v, %v): %v", c.M, e, err)
				}
				if r := residual(E, e, MeanAnomalyRadians(c.M)); r >= 1e-9 {
					t.Fatalf("Solve(%v, %v) residual %g", c.M, e, r)
				}
			})
		}
	}
}

func TestSolveCircularIsIdentity(t *testing.T) {
	for _, Mdeg := range []float64{0, 1, 45.5, 90, 179.99, 180, 270, 359.5, -10, 725} {
		E, err := Solve(Mdeg, 0)
		if err != nil {
			t.Fatalf("Solve(%v, 0): %v", Mdeg, err)
		}
		if want := MeanAnomalyRadians(Mdeg); E != want {
			t.Errorf("Solve(%v, 0) = %.17g, want exactly %.17g", Mdeg, E, want)
		}
	}
}

func TestSolveAgreesWithMeeus(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for k := 0; k < 200; k++ {
		e := rng.Float64() * 0.99
		Mdeg := rng.Float64() * 360
		E, err := Solve(Mdeg, e)
		if err != nil {
			t.Fatalf("Solve(%v, %v): %v", Mdeg, e, err)
		}
		ref := mkepler.Kepler3(e, unit.AngleFromDeg(Mdeg)).Rad()
		diff := math.Remainder(E-ref, 2*math.Pi)
		if math.Abs(diff) > 1e-8 {
			t.Fatalf("Solve(%v, %v) = %v, meeus Kepler3 = %v", Mdeg, e, E, ref)
		}
	}
}

func TestSolveRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		M, e float64
		want error
	}{
		{"e = 1", 10, 1, ErrInvalidEccentricity},
		{"e > 1", 10, 1.5, ErrInvalidEccentricity},
		{"e < 0", 10, -0.1, ErrInvalidEccentricity},
		{"e NaN", 10, math.NaN(), ErrInvalidEccentricity},
		{"M NaN", math.NaN(), 0.1, ErrInvalidMeanAnomaly},
		{"M Inf", math.Inf(1), 0.1, ErrInvalidMeanAnomaly},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Solve(c.M, c.e)
			if !errors.Is(err, c.want) {
				t.Fatalf("Solve(%v, %v) error = %v, want %v", c.M, c.e, err, c.want)
			}
			if !fault.IsConfiguration(err) {
				t.Fatalf("error %v is not a configuration error", err)
			}
		})
	}
}

func TestNewtonDegenerateDerivativeFailsLoudly(t *testing.T) {
	// One ulp below 1: at E = 0 the derivative is far below DerivativeEpsilon.
	e := math.Nextafter(1, 0)
	_, err := newton(1e-3, e, 0)
	if !errors.Is(err, ErrDegenerateDerivative) {
		t.Fatalf("newton error = %v, want %v", err, ErrDegenerateDerivative)
	}
	if !fault.IsDivergence(err) {
		t.Fatalf("error %v is not a divergence error", err)
	}
}

func TestSolveNearParabolic(t *testing.T) {
	e := math.Nextafter(1, 0)
	E, err := Solve(1e-6, e)
	if err != nil {
		t.Fatalf("Solve near e = 1: %v", err)
	}
	if r := residual(E, e, MeanAnomalyRadians(1e-6)); r >= Tolerance {
		t.Fatalf("residual %g", r)
	}
}

func TestConvergenceErrorUnwraps(t *testing.T) {
	err := error(&ConvergenceError{MeanAnomaly: 1, Eccentricity: 0.5, Iterations: MaxIterations})
	if !errors.Is(err, ErrNotConverged) {
		t.Fatal("ConvergenceError should unwrap to ErrNotConverged")
	}
	var ce *ConvergenceError
	if !errors.As(err, &ce) || ce.Iterations != MaxIterations {
		t.Fatalf("errors.As failed: %v", err)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
		{-0.5, 359.5},
		{1e7 + 33.5, 33.5},
	}
	for _, c := range cases {
		if got := NormalizeDegrees(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if got := NormalizeDegrees(-1e-300); got < 0 || got >= 360 {
		t.Errorf("NormalizeDegrees(-1e-300) = %v, out of [0, 360)", got)
	}
}
