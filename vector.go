package fzx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vector is the 2D vector of the linear algebra library. Everything in the
// package works in single precision.
type Vector = mgl32.Vec2

var (
	VectorZero = Vector{}
	VectorUp   = Vector{0, -1}
	VectorDown = Vector{0, 1}
)

func Vec(x, y float32) Vector {
	return Vector{x, y}
}

// Cross is the 2D cross product analog. It returns the z component of the
// 3D cross product of the two vectors extended with z = 0.
func Cross(a, b Vector) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossSV returns s x v, the velocity of point v on a body spinning at s.
func CrossSV(s float32, v Vector) Vector {
	return Vector{-s * v[1], s * v[0]}
}

func Perp(v Vector) Vector {
	return Vector{-v[1], v[0]}
}

func ReversePerp(v Vector) Vector {
	return Vector{v[1], -v[0]}
}

func LengthSq(v Vector) float32 {
	return v[0]*v[0] + v[1]*v[1]
}

func Distance(a, b Vector) float32 {
	return a.Sub(b).Len()
}

func DistanceSq(a, b Vector) float32 {
	return LengthSq(a.Sub(b))
}

// Normalize returns the unit vector of v, or the zero vector when v is too
// short to have a direction.
func Normalize(v Vector) Vector {
	l := v.Len()
	if l < Epsilon {
		return Vector{}
	}
	return v.Mul(1 / l)
}

func Lerp(a, b Vector, t float32) Vector {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func Near(a, b Vector, dist float32) bool {
	return DistanceSq(a, b) < dist*dist
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(p, a, b Vector) Vector {
	delta := a.Sub(b)
	d := LengthSq(delta)
	if d < Epsilon*Epsilon {
		return a
	}
	t := mgl32.Clamp(delta.Dot(p.Sub(b))/d, 0, 1)
	return b.Add(delta.Mul(t))
}

// Rotate rotates v by the given angle in degrees.
func Rotate(v Vector, degrees float32) Vector {
	if degrees == 0 {
		return v
	}
	return mgl32.Rotate2D(mgl32.DegToRad(degrees)).Mul2x1(v)
}

func ForAngle(degrees float32) Vector {
	rad := mgl32.DegToRad(degrees)
	return Vector{math32.Cos(rad), math32.Sin(rad)}
}

func Clamp(f, min, max float32) float32 {
	return mgl32.Clamp(f, min, max)
}

func Clamp01(f float32) float32 {
	return mgl32.Clamp(f, 0, 1)
}

func LerpF(f1, f2, t float32) float32 {
	return f1*(1-t) + f2*t
}
