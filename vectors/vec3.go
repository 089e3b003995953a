// Package vectors holds the Cartesian vector type shared by the orbit
// pipeline and the body hierarchy.
package vectors

import "math"

// Vec3 is a position or direction in the ecliptic frame.
// Positions are in astronomical units.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o. A child's world position is its parent's plus its
// scaled orbital offset.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o, the displacement from o to v.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s. Distance factors stretch offsets in AU this way.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns ||v||; for a position, its distance from the frame origin in AU.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the direction of v, or the zero vector when v is zero.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// Lerp returns v*(1-t) + o*t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Scale(1.0 - t).Add(o.Scale(t))
}

// RotateZ rotates v about the Z axis by theta radians.
func (v Vec3) RotateZ(theta float64) Vec3 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

// RotateX rotates v about the X axis by theta radians.
func (v Vec3) RotateX(theta float64) Vec3 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vec3{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
}

// Distance returns ||a - b||.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Norm()
}
