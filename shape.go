package fzx

import (
	"fmt"
	"slices"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
	NumShapes
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// Shape is an immutable geometry descriptor in local space. It is either a
// circle (radius plus a tessellation count used only for drawing) or a
// convex polygon with counter-clockwise vertices.
type Shape struct {
	kind ShapeKind

	radius   float32
	segments int

	verts []Vector
	// width and height when built by NewBox, used for the closed form moment
	box Vector
}

func (s Shape) Kind() ShapeKind {
	return s.kind
}

func (s Shape) Radius() float32 {
	return s.radius
}

func (s Shape) Segments() int {
	return s.segments
}

// Vertices returns the local vertex list. Circles return their tessellated
// outline. The slice is shared and must not be modified.
func (s Shape) Vertices() []Vector {
	if s.kind == ShapeCircle {
		return circleVerts(s.radius, s.segments)
	}
	return s.verts
}

// Degenerate reports whether the detector has nothing to work with.
func (s Shape) Degenerate() bool {
	if s.kind == ShapeCircle {
		return s.radius <= 0
	}
	return len(s.verts) < 3
}

// Area of the shape scaled by scale.
func (s Shape) Area(scale Vector) float32 {
	switch s.kind {
	case ShapeCircle:
		return AreaForCircle(0, s.radius*circleScale(scale))
	case ShapePolygon:
		return AreaForPoly(scaleVerts(s.verts, scale))
	}
	return 0
}

// Moment returns the moment of inertia about the centroid for the given
// mass, with the shape scaled by scale. Non-positive mass yields 0.
func (s Shape) Moment(mass float32, scale Vector) float32 {
	if mass <= 0 || s.Degenerate() {
		return 0
	}
	switch s.kind {
	case ShapeCircle:
		return MomentForCircle(mass, 0, s.radius*circleScale(scale))
	case ShapePolygon:
		if s.box != (Vector{}) {
			return MomentForBox(mass, s.box[0]*abs(scale[0]), s.box[1]*abs(scale[1]))
		}
		verts := scaleVerts(s.verts, scale)
		return MomentForPoly(mass, verts, CentroidForPoly(verts).Mul(-1))
	}
	return 0
}

func (s Shape) String() string {
	if s.kind == ShapeCircle {
		return fmt.Sprintf("Circle{r: %v}", s.radius)
	}
	return fmt.Sprintf("Polygon{%d verts}", len(s.verts))
}

func scaleVerts(verts []Vector, scale Vector) []Vector {
	out := make([]Vector, len(verts))
	for i, v := range verts {
		out[i] = Vector{v[0] * scale[0], v[1] * scale[1]}
	}
	if scale[0]*scale[1] < 0 {
		slices.Reverse(out)
	}
	return out
}
