package fzx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places local shape geometry in the world: scale, then rotate
// (degrees, counter-clockwise in a y-up frame), then translate by
// Position+Offset.
type Transform struct {
	Position Vector
	Offset   Vector
	Scale    Vector
	Rotation float32
}

func NewTransformIdentity() Transform {
	return Transform{Scale: Vector{1, 1}}
}

func NewTransform(position Vector, rotation float32) Transform {
	return Transform{Position: position, Scale: Vector{1, 1}, Rotation: NormalizeDegrees(rotation)}
}

// Matrix returns the homogeneous matrix of the transform.
func (t Transform) Matrix() mgl32.Mat3 {
	origin := t.Origin()
	return mgl32.Translate2D(origin[0], origin[1]).
		Mul3(mgl32.HomogRotate2D(mgl32.DegToRad(t.Rotation))).
		Mul3(mgl32.Scale2D(t.Scale[0], t.Scale[1]))
}

// Origin is where the local origin lands in the world.
func (t Transform) Origin() Vector {
	return t.Position.Add(t.Offset)
}

// Apply maps local points to world points. It allocates a fresh slice.
func (t Transform) Apply(points []Vector) []Vector {
	m := t.Matrix()
	out := make([]Vector, len(points))
	for i, p := range points {
		out[i] = m.Mul3x1(p.Vec3(1)).Vec2()
	}
	return out
}

// Point maps a single local point to the world.
func (t Transform) Point(p Vector) Vector {
	return t.Matrix().Mul3x1(p.Vec3(1)).Vec2()
}

// Vect maps a local direction to the world, ignoring translation.
func (t Transform) Vect(v Vector) Vector {
	return Rotate(Vector{v[0] * t.Scale[0], v[1] * t.Scale[1]}, t.Rotation)
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
