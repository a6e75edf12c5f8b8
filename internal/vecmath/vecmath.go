// Package vecmath provides the planar vector and angle helpers the
// trajectory core builds on. It plays the role the teacher's math.go
// plays for 3-D heliocentric mechanics, specialized to 2-D since every
// orbit, burn and guidance computation in this simulator is planar.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

const epsilon = 1e-12

// Norm returns the Euclidean length of v.
func Norm(v r2.Vec) float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns the unit vector of v, or the zero vector if v is ~zero.
func Unit(v r2.Vec) r2.Vec {
	n := Norm(v)
	if floats.EqualWithinAbs(n, 0, epsilon) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Sign returns 1 or -1, treating zero as positive (matches the teacher's
// math.go Sign, which never returns exactly 0).
func Sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, epsilon) {
		return 1
	}
	return v / math.Abs(v)
}

// Cross returns the scalar (z-component) 2-D cross product a x b.
func Cross(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Rotate rotates v by angle radians counter-clockwise.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Perpendicular returns v rotated +90 degrees (left-hand perpendicular).
func Perpendicular(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Angle returns the angle of v from the positive X axis, in [-pi, pi].
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// WrapAngle reduces a to the range [0, 2*pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// ShortestArc returns the signed shortest angular distance from `from` to
// `to`, in (-pi, pi].
func ShortestArc(from, to float64) float64 {
	d := WrapAngle(to - from)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// Deg2rad converts degrees to radians.
func Deg2rad(a float64) float64 { return a * math.Pi / 180 }

// Rad2deg converts radians to degrees.
func Rad2deg(a float64) float64 { return a * 180 / math.Pi }
