package fzx

import (
	"slices"

	"github.com/chewxy/math32"
)

// NewPolygon creates a convex polygon from an arbitrary point cloud. The
// points are reduced to their convex hull in counter-clockwise order, which
// also drops duplicate and collinear points. Fewer than three surviving
// points produce a degenerate shape that never collides. The hull is
// shifted so its centroid sits on the local origin, which is the point
// bodies rotate about.
func NewPolygon(verts []Vector) Shape {
	hull := ConvexHull(verts, Epsilon)
	centroid := CentroidForPoly(hull)
	for i := range hull {
		hull[i] = hull[i].Sub(centroid)
	}
	return Shape{
		kind:  ShapePolygon,
		verts: hull,
	}
}

// NewBox creates a w by h rectangle centered on the origin.
func NewBox(w, h float32) Shape {
	hw, hh := math32.Abs(w)/2, math32.Abs(h)/2
	s := Shape{
		kind: ShapePolygon,
		verts: []Vector{
			{-hw, -hh},
			{hw, -hh},
			{hw, hh},
			{-hw, hh},
		},
		box: Vector{2 * hw, 2 * hh},
	}
	if hw == 0 || hh == 0 {
		s.verts = nil
		s.box = Vector{}
	}
	return s
}

// NewRegularPolygon creates a polygon with sides vertices on a circle of the
// given radius.
func NewRegularPolygon(radius float32, sides int) Shape {
	if sides < 3 {
		sides = 3
	}
	return NewPolygon(circleVerts(radius, sides))
}

// ConvexHull returns the convex hull of verts in counter-clockwise order
// using the monotone chain method. Points closer than tol to the hull
// boundary line are discarded.
func ConvexHull(verts []Vector, tol float32) []Vector {
	if len(verts) < 3 {
		return slices.Clone(verts)
	}
	pts := slices.Clone(verts)
	slices.SortFunc(pts, func(a, b Vector) int {
		if a[0] != b[0] {
			if a[0] < b[0] {
				return -1
			}
			return 1
		}
		if a[1] < b[1] {
			return -1
		}
		if a[1] > b[1] {
			return 1
		}
		return 0
	})

	hull := make([]Vector, 0, 2*len(pts))
	turn := func(o, a, b Vector) float32 {
		return Cross(a.Sub(o), b.Sub(o))
	}
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= tol {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= tol {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		return nil
	}
	return hull
}

// AreaForPoly returns the signed area of a polygon. Counter-clockwise
// winding is positive.
func AreaForPoly(verts []Vector) float32 {
	var area float32
	for i, v1 := range verts {
		v2 := verts[(i+1)%len(verts)]
		area += Cross(v1, v2)
	}
	return area / 2
}

func CentroidForPoly(verts []Vector) Vector {
	var sum float32
	var vsum Vector
	for i, v1 := range verts {
		v2 := verts[(i+1)%len(verts)]
		cross := Cross(v1, v2)
		sum += cross
		vsum = vsum.Add(v1.Add(v2).Mul(cross))
	}
	if math32.Abs(sum) < Epsilon {
		return averagePoint(verts)
	}
	return vsum.Mul(1 / (3 * sum))
}

// MomentForPoly returns the moment of a solid polygon of mass m whose
// vertices are shifted by offset.
func MomentForPoly(m float32, verts []Vector, offset Vector) float32 {
	var sum1, sum2 float32
	for i := range verts {
		v1 := verts[i].Add(offset)
		v2 := verts[(i+1)%len(verts)].Add(offset)
		a := Cross(v2, v1)
		b := v1.Dot(v1) + v1.Dot(v2) + v2.Dot(v2)
		sum1 += a * b
		sum2 += a
	}
	if math32.Abs(sum2) < Epsilon {
		return 0
	}
	return (m * sum1) / (6 * sum2)
}

func MomentForBox(m, w, h float32) float32 {
	return m * (w*w + h*h) / 12
}

func averagePoint(verts []Vector) Vector {
	if len(verts) == 0 {
		return Vector{}
	}
	var sum Vector
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float32(len(verts)))
}
