package fzx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinCircleSegments     = 3
	DefaultCircleSegments = 24
)

// NewCircle creates a circle shape. segments only affects the vertex
// outline handed to renderers and is raised to at least 3.
func NewCircle(radius float32, segments int) Shape {
	if segments < MinCircleSegments {
		segments = MinCircleSegments
	}
	return Shape{
		kind:     ShapeCircle,
		radius:   math32.Abs(radius),
		segments: segments,
	}
}

func circleVerts(radius float32, segments int) []Vector {
	verts := make([]Vector, segments)
	step := 2 * math32.Pi / float32(segments)
	for i := range verts {
		a := step * float32(i)
		verts[i] = Vector{radius * math32.Cos(a), radius * math32.Sin(a)}
	}
	return verts
}

// circleScale is the factor applied to a circle radius by a non-uniform
// scale. Circles stay circles, so the larger axis wins.
func circleScale(scale Vector) float32 {
	return math32.Max(abs(scale[0]), abs(scale[1]))
}

func AreaForCircle(r1, r2 float32) float32 {
	return math32.Pi * math32.Abs(r1*r1-r2*r2)
}

// MomentForCircle is the moment of a hollow circle with inner radius r1 and
// outer radius r2. A solid disc passes r1 = 0.
func MomentForCircle(m, r1, r2 float32) float32 {
	return m * (r1*r1 + r2*r2) / 2
}

func abs(f float32) float32 {
	return mgl32.Abs(f)
}
