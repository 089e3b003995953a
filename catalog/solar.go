// Package catalog holds the static body roster of the solar system.
//
// Planet elements are the JPL approximate Keplerian elements valid
// 1800-2050 at J2000, with ω = ϖ - Ω and M₀ = L - ϖ. Moon elements are
// mean elements relative to their planet, with mean motion from the
// sidereal period.
package catalog

import (
	"github.com/echoflaresat/orrery/orbit"
	"github.com/echoflaresat/orrery/system"
)

func elements(p orbit.Params) *orbit.Elements {
	el := orbit.MustNew(p)
	return &el
}

// moon returns elements for a satellite with sidereal period in days.
func moon(a, e, i, node, peri, m0, period float64) *orbit.Elements {
	return elements(orbit.Params{
		SemiMajorAxis:       a,
		Eccentricity:        e,
		Inclination:         i,
		AscendingNode:       node,
		ArgumentOfPeriapsis: peri,
		MeanAnomalyAtEpoch:  m0,
		MeanMotion:          360 / period,
	})
}

func planet(a, e, i, node, peri, m0 float64) *orbit.Elements {
	return elements(orbit.Params{
		SemiMajorAxis:       a,
		Eccentricity:        e,
		Inclination:         i,
		AscendingNode:       node,
		ArgumentOfPeriapsis: peri,
		MeanAnomalyAtEpoch:  m0,
	})
}

// SolarSystem returns the Sun, the eight planets, Pluto, Ceres and the
// major moons. Each call returns a fresh slice.
func SolarSystem() []system.BodySpec {
	return []system.BodySpec{
		{Name: "Sun", Kind: system.Star, Radius: 695700, RotationPeriod: 609.12, AxialTilt: 7.25},

		{Name: "Mercury", Kind: system.Planet, Radius: 2439.7, RotationPeriod: 1407.6, AxialTilt: 0.034,
			Orbit: planet(0.38709927, 0.20563593, 7.00497902, 48.33076593, 29.12703035, 174.79252722)},
		// Retrograde rotation is carried by the sign of the period.
		{Name: "Venus", Kind: system.Planet, Radius: 6051.8, RotationPeriod: -5832.5, AxialTilt: 2.64,
			Orbit: planet(0.72333566, 0.00677672, 3.39467605, 76.67984255, 54.92262463, 50.37663232)},
		{Name: "Earth", Kind: system.Planet, Radius: 6371, RotationPeriod: 23.9345, AxialTilt: 23.44,
			Orbit: planet(1.00000261, 0.01671123, -0.00001531, 0, 102.93768193, 357.52688973)},
		{Name: "Mars", Kind: system.Planet, Radius: 3389.5, RotationPeriod: 24.6229, AxialTilt: 25.19,
			Orbit: planet(1.52371034, 0.09339410, 1.84969142, 49.55953891, -73.5031685, 19.39019754)},
		{Name: "Jupiter", Kind: system.Planet, Radius: 69911, RotationPeriod: 9.925, AxialTilt: 3.13,
			Orbit: planet(5.20288700, 0.04838624, 1.30439695, 100.47390909, -85.74542926, 19.66796068)},
		{Name: "Saturn", Kind: system.Planet, Radius: 58232, RotationPeriod: 10.656, AxialTilt: 26.73,
			Orbit: planet(9.53667594, 0.05386179, 2.48599187, 113.66242448, -21.06354617, -42.64463408)},
		{Name: "Uranus", Kind: system.Planet, Radius: 25362, RotationPeriod: -17.24, AxialTilt: 82.23,
			Orbit: planet(19.18916464, 0.04725744, 0.77263783, 74.01692503, 96.93735127, 142.28382821)},
		{Name: "Neptune", Kind: system.Planet, Radius: 24622, RotationPeriod: 16.11, AxialTilt: 28.32,
			Orbit: planet(30.06992276, 0.00859048, 1.77004347, 131.78422574, -86.81946347, -100.08479196)},

		{Name: "Pluto", Kind: system.DwarfPlanet, Radius: 1188.3, RotationPeriod: -153.2928, AxialTilt: 57.47,
			Orbit: planet(39.48211675, 0.24882730, 17.14001206, 110.30393684, 113.76497945, 14.86012204)},
		{Name: "Ceres", Kind: system.DwarfPlanet, Radius: 469.7, RotationPeriod: 9.074, AxialTilt: 4,
			Orbit: elements(orbit.Params{
				SemiMajorAxis:       2.7691651,
				Eccentricity:        0.0760090,
				Inclination:         10.59407,
				AscendingNode:       80.30553,
				ArgumentOfPeriapsis: 73.59764,
				MeanAnomalyAtEpoch:  77.37209,
				Epoch:               2459000.5,
			})},

		{Name: "Moon", Kind: system.Moon, Radius: 1737.4, AxialTilt: 6.68, Parent: "Earth", TidallyLocked: true,
			Orbit: moon(0.00256955529, 0.0549, 5.145, 125.08, 318.15, 135.27, 27.321661)},

		{Name: "Phobos", Kind: system.Moon, Radius: 11.267, Parent: "Mars", TidallyLocked: true,
			Orbit: moon(6.2675e-5, 0.0151, 1.075, 207.78, 150.057, 91.059, 0.31891023)},
		{Name: "Deimos", Kind: system.Moon, Radius: 6.2, Parent: "Mars", TidallyLocked: true,
			Orbit: moon(1.56842e-4, 0.00033, 1.788, 24.525, 260.729, 325.329, 1.26244)},

		{Name: "Io", Kind: system.Moon, Radius: 1821.6, Parent: "Jupiter", TidallyLocked: true,
			Orbit: moon(2.81889e-3, 0.0041, 0.05, 43.977, 84.129, 342.021, 1.769137786)},
		{Name: "Europa", Kind: system.Moon, Radius: 1560.8, Parent: "Jupiter", TidallyLocked: true,
			Orbit: moon(4.48558e-3, 0.009, 0.47, 219.106, 88.970, 171.016, 3.551181)},
		{Name: "Ganymede", Kind: system.Moon, Radius: 2634.1, Parent: "Jupiter", TidallyLocked: true,
			Orbit: moon(7.15518e-3, 0.0013, 0.20, 63.552, 192.417, 317.540, 7.15455296)},
		{Name: "Callisto", Kind: system.Moon, Radius: 2410.3, Parent: "Jupiter", TidallyLocked: true,
			Orbit: moon(1.258507e-2, 0.0074, 0.192, 298.848, 52.643, 181.408, 16.6890184)},

		{Name: "Titan", Kind: system.Moon, Radius: 2574.7, Parent: "Saturn", TidallyLocked: true,
			Orbit: moon(8.16769e-3, 0.0288, 0.34854, 28.060, 180.532, 163.310, 15.945)},

		{Name: "Charon", Kind: system.Moon, Radius: 606, Parent: "Pluto", TidallyLocked: true,
			Orbit: moon(1.30959e-4, 0.0002, 0.080, 223.046, 146.106, 131.07, 6.3872304)},
	}
}
