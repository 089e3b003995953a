package orbit

import (
	"errors"
	"math"
	"testing"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/vectors"
)

var earthLike = Params{
	SemiMajorAxis:       1.0,
	Eccentricity:        0.0167,
	Inclination:         0,
	AscendingNode:       -11.26,
	ArgumentOfPeriapsis: 102.94,
	MeanAnomalyAtEpoch:  100.46,
	Epoch:               2451545.0,
}

func TestEarthLikeAtEpoch(t *testing.T) {
	el, err := New(earthLike)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p, err := el.Position(earthLike.Epoch)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}

	r := p.Norm()
	if r < 0.983 || r > 1.017 {
		t.Fatalf("distance %v AU outside perihelion/aphelion bound", r)
	}
	if r < el.Periapsis()-1e-12 || r > el.Apoapsis()+1e-12 {
		t.Fatalf("distance %v outside [%v, %v]", r, el.Periapsis(), el.Apoapsis())
	}
	if math.Abs(p.Z) > 1e-12 {
		t.Fatalf("zero inclination orbit left the ecliptic: z = %v", p.Z)
	}
}

func TestDistanceStaysWithinApsides(t *testing.T) {
	cases := []struct {
		name string
		p    Params
	}{
		{"earth-like", earthLike},
		{"mercury-like", Params{SemiMajorAxis: 0.387, Eccentricity: 0.2056, Inclination: 7.0, AscendingNode: 48.3, ArgumentOfPeriapsis: 29.1, MeanAnomalyAtEpoch: 174.8}},
		{"comet-like", Params{SemiMajorAxis: 17.8, Eccentricity: 0.967, Inclination: 162.3, AscendingNode: 58.4, ArgumentOfPeriapsis: 111.3, MeanAnomalyAtEpoch: 38.4}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			el := MustNew(c.p)
			period := el.Period()
			for k := 0; k < 400; k++ {
				jd := J2000 + period*float64(k)/400
				st, err := el.StateAt(jd)
				if err != nil {
					t.Fatalf("StateAt(%v): %v", jd, err)
				}
				r := st.Position.Norm()
				if math.Abs(r-st.Radius) > 1e-9*c.p.SemiMajorAxis {
					t.Fatalf("|position| %v != radius %v", r, st.Radius)
				}
				if r < el.Periapsis()*(1-1e-12) || r > el.Apoapsis()*(1+1e-12) {
					t.Fatalf("distance %v outside [%v, %v]", r, el.Periapsis(), el.Apoapsis())
				}
			}
		})
	}
}

func TestPeriodicity(t *testing.T) {
	for _, p := range []Params{
		earthLike,
		{SemiMajorAxis: 5.2029, Eccentricity: 0.0484, Inclination: 1.3044, AscendingNode: 100.47, ArgumentOfPeriapsis: -85.75, MeanAnomalyAtEpoch: 19.67},
		{SemiMajorAxis: 39.48, Eccentricity: 0.2488, Inclination: 17.14, AscendingNode: 110.3, ArgumentOfPeriapsis: 113.76, MeanAnomalyAtEpoch: 14.86},
	} {
		el := MustNew(p)
		if !el.MeanMotionDerived() {
			t.Fatal("mean motion should be derived from a")
		}
		wantPeriod := math.Pow(p.SemiMajorAxis, 1.5) * DaysPerYear
		if math.Abs(el.Period()-wantPeriod) > 1e-9*wantPeriod {
			t.Fatalf("Period = %v, want %v", el.Period(), wantPeriod)
		}

		for _, t0 := range []float64{J2000, J2000 + 1234.5, 2415020.5} {
			p0, err := el.Position(t0)
			if err != nil {
				t.Fatal(err)
			}
			p1, err := el.Position(t0 + el.Period())
			if err != nil {
				t.Fatal(err)
			}
			if d := vectors.Distance(p0, p1); d > 1e-9*p.SemiMajorAxis {
				t.Fatalf("a=%v: positions one period apart differ by %v AU", p.SemiMajorAxis, d)
			}
		}
	}
}

func TestCircularOrbitGeometry(t *testing.T) {
	el := MustNew(Params{SemiMajorAxis: 2, MeanAnomalyAtEpoch: 90})

	p, err := el.Position(J2000)
	if err != nil {
		t.Fatal(err)
	}
	// e = 0 and no rotation: M = 90° puts the body on +Y at radius a.
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-2) > 1e-12 || p.Z != 0 {
		t.Fatalf("Position = %+v, want (0, 2, 0)", p)
	}

	quarter := el.Period() / 4
	p, err = el.Position(J2000 + quarter)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.X+2) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Fatalf("Position after a quarter period = %+v, want (-2, 0, 0)", p)
	}
}

func TestInclinationTiltsAboutNodeLine(t *testing.T) {
	// Ω = 0, ω = 0, i = 90°: a quarter turn past the node the body sits on +Z.
	el := MustNew(Params{SemiMajorAxis: 1, Inclination: 90, MeanAnomalyAtEpoch: 90})
	p, err := el.Position(J2000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.Z-1) > 1e-12 || math.Abs(p.X) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Fatalf("Position = %+v, want (0, 0, 1)", p)
	}
}

func TestSuppliedMeanMotionWins(t *testing.T) {
	// Moon-like: a is tiny in AU, so the heliocentric third-law rate would be absurd.
	p := Params{SemiMajorAxis: 0.00257, Eccentricity: 0.0549, MeanMotion: 360 / 27.321661}
	el := MustNew(p)
	if el.MeanMotionDerived() {
		t.Fatal("supplied mean motion should not be flagged as derived")
	}
	if el.MeanMotion() != p.MeanMotion {
		t.Fatalf("MeanMotion = %v, want %v", el.MeanMotion(), p.MeanMotion)
	}
	if math.Abs(el.Period()-27.321661) > 1e-9 {
		t.Fatalf("Period = %v", el.Period())
	}
}

func TestDefaultEpoch(t *testing.T) {
	el := MustNew(Params{SemiMajorAxis: 1})
	if el.Epoch() != J2000 {
		t.Fatalf("Epoch = %v, want %v", el.Epoch(), J2000)
	}
	if got := el.MeanAnomalyAt(J2000); got != 0 {
		t.Fatalf("MeanAnomalyAt(epoch) = %v, want 0", got)
	}
}

func TestNewRejectsInvalidElements(t *testing.T) {
	valid := earthLike
	cases := []struct {
		name   string
		mutate func(p *Params)
		field  string
	}{
		{"zero a", func(p *Params) { p.SemiMajorAxis = 0 }, "semi-major axis"},
		{"negative a", func(p *Params) { p.SemiMajorAxis = -1 }, "semi-major axis"},
		{"huge a", func(p *Params) { p.SemiMajorAxis = 1e9 }, "semi-major axis"},
		{"NaN a", func(p *Params) { p.SemiMajorAxis = math.NaN() }, "semi-major axis"},
		{"parabolic", func(p *Params) { p.Eccentricity = 1 }, "eccentricity"},
		{"hyperbolic", func(p *Params) { p.Eccentricity = 1.2 }, "eccentricity"},
		{"negative e", func(p *Params) { p.Eccentricity = -0.01 }, "eccentricity"},
		{"Inf inclination", func(p *Params) { p.Inclination = math.Inf(-1) }, "inclination"},
		{"NaN node", func(p *Params) { p.AscendingNode = math.NaN() }, "ascending node"},
		{"NaN periapsis", func(p *Params) { p.ArgumentOfPeriapsis = math.NaN() }, "argument of periapsis"},
		{"Inf mean anomaly", func(p *Params) { p.MeanAnomalyAtEpoch = math.Inf(1) }, "mean anomaly at epoch"},
		{"negative mean motion", func(p *Params) { p.MeanMotion = -1 }, "mean motion"},
		{"epoch out of band", func(p *Params) { p.Epoch = -5 }, "epoch"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := valid
			c.mutate(&p)
			_, err := New(p)
			if !errors.Is(err, ErrInvalidElements) {
				t.Fatalf("New error = %v, want %v", err, ErrInvalidElements)
			}
			if !fault.IsConfiguration(err) {
				t.Fatalf("error %v is not a configuration error", err)
			}
			var ee *ElementError
			if !errors.As(err, &ee) || ee.Field != c.field {
				t.Fatalf("error %v does not name field %q", err, c.field)
			}
		})
	}
}

func TestZeroElementsAreNotEvaluated(t *testing.T) {
	var el Elements
	if _, err := el.Position(J2000); !errors.Is(err, ErrInvalidElements) {
		t.Fatalf("zero Elements evaluated: err = %v", err)
	}
}

func TestNonFiniteInstantIsDivergence(t *testing.T) {
	el := MustNew(earthLike)
	_, err := el.Position(math.NaN())
	if !errors.Is(err, ErrNonFinite) || !fault.IsDivergence(err) {
		t.Fatalf("Position(NaN) error = %v", err)
	}
}

func TestDeterministic(t *testing.T) {
	el := MustNew(earthLike)
	a, err := el.Position(2460000.123)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < 10; k++ {
		b, _ := el.Position(2460000.123)
		if a != b {
			t.Fatalf("evaluation not bit-identical: %+v != %+v", a, b)
		}
	}
}
