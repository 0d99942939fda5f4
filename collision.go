package fzx

import "github.com/chewxy/math32"

// CollisionResult is the narrow phase outcome for an ordered pair (A, B).
// Normal points from A toward B, MTV = -Normal*Penetration moves A out of B.
// Manifold fields are only filled when IsPhysicsColliding is set.
type CollisionResult struct {
	IsColliding        bool
	IsPhysicsColliding bool

	MTV         Vector
	Normal      Vector
	Penetration float32
	Contacts    []Vector
}

// Flip returns the result as seen from B.
func (r CollisionResult) Flip() CollisionResult {
	r.MTV = r.MTV.Mul(-1)
	r.Normal = r.Normal.Mul(-1)
	return r
}

type CollisionFunc func(a, b *Geometry) CollisionResult

// BuiltinCollisionFuncs is indexed by a.Kind + b.Kind*NumShapes.
var BuiltinCollisionFuncs = [NumShapes * NumShapes]CollisionFunc{
	CircleToCircle,
	PolyToCircle,
	CircleToPoly,
	PolyToPoly,
}

// Detect tests two collidables in their current world placement. A manifold
// is produced only when both are attached to bodies.
func Detect(a, b *Collidable) CollisionResult {
	ga, gb := a.Geometry(), b.Geometry()
	return Collide(&ga, &gb, a.HasBody() && b.HasBody())
}

// Collide runs the narrow phase on two world space geometries. Degenerate
// input never collides. Touching shapes collide with zero penetration.
func Collide(a, b *Geometry, manifold bool) CollisionResult {
	if a.Degenerate() || b.Degenerate() || a.Kind >= NumShapes || b.Kind >= NumShapes {
		return CollisionResult{}
	}
	res := BuiltinCollisionFuncs[a.Kind+b.Kind*NumShapes](a, b)
	if !res.IsColliding || !manifold {
		return CollisionResult{IsColliding: res.IsColliding}
	}
	res.IsPhysicsColliding = true
	return res
}

func CircleToCircle(a, b *Geometry) CollisionResult {
	delta := b.Center.Sub(a.Center)
	rsum := a.Radius + b.Radius
	dist2 := LengthSq(delta)
	if dist2 > rsum*rsum {
		return CollisionResult{}
	}

	dist := math32.Sqrt(dist2)
	n := Vector{1, 0}
	if dist >= Epsilon {
		n = delta.Mul(1 / dist)
	}
	pen := rsum - dist

	return CollisionResult{
		IsColliding: true,
		MTV:         n.Mul(-pen),
		Normal:      n,
		Penetration: pen,
		// halfway between the two surfaces
		Contacts: []Vector{a.Center.Add(n.Mul(a.Radius - pen/2))},
	}
}

func PolyToCircle(a, b *Geometry) CollisionResult {
	return CircleToPoly(b, a).Flip()
}

func CircleToPoly(circle, poly *Geometry) CollisionResult {
	c, r := circle.Center, circle.Radius
	edges := Edges(poly.Verts)

	// n points out of the polygon toward the side the circle leaves through
	var n Vector
	var pen float32

	if pointInPolygon(c, poly.Verts) {
		pen = INFINITY
		for _, e := range edges {
			if e.Degenerate() {
				continue
			}
			en := e.Normal()
			depth := r - en.Dot(c.Sub(e.P1))
			if depth < pen {
				pen, n = depth, en
			}
		}
		if pen == INFINITY {
			return CollisionResult{}
		}
	} else {
		minDist2 := INFINITY
		var closest Vector
		var closestEdge Edge
		for _, e := range edges {
			if e.Degenerate() {
				continue
			}
			p := e.ClosestPoint(c)
			if d2 := DistanceSq(p, c); d2 < minDist2 {
				minDist2, closest, closestEdge = d2, p, e
			}
		}
		if minDist2 > r*r {
			return CollisionResult{}
		}
		dist := math32.Sqrt(minDist2)
		if dist < Epsilon {
			n = closestEdge.Normal()
		} else {
			n = c.Sub(closest).Mul(1 / dist)
		}
		pen = r - dist
	}

	return CollisionResult{
		IsColliding: true,
		MTV:         n.Mul(pen),
		Normal:      n.Mul(-1),
		Penetration: pen,
		Contacts:    []Vector{c.Sub(n.Mul(r))},
	}
}

// PolyToPoly is a separating axis test over the edge normals of both
// polygons followed by reference/incident edge clipping for contacts.
func PolyToPoly(a, b *Geometry) CollisionResult {
	var axis Vector
	minOverlap := INFINITY

	test := func(verts []Vector) bool {
		for _, e := range Edges(verts) {
			if e.Degenerate() {
				continue
			}
			n := e.Normal()
			minA, maxA := project(a.Verts, n)
			minB, maxB := project(b.Verts, n)
			if minB-maxA > Epsilon || minA-maxB > Epsilon {
				return false
			}
			o := math32.Min(maxA-minB, maxB-minA)
			if o < minOverlap-Epsilon || (o <= minOverlap+Epsilon && axisLess(n, axis)) {
				minOverlap, axis = math32.Min(o, minOverlap), canonicalAxis(n)
			}
		}
		return true
	}
	if !test(a.Verts) || !test(b.Verts) {
		return CollisionResult{}
	}
	if minOverlap == INFINITY {
		return CollisionResult{}
	}

	if axis.Dot(b.Center.Sub(a.Center)) < 0 {
		axis = axis.Mul(-1)
	}
	_, maxA := project(a.Verts, axis)
	minB, _ := project(b.Verts, axis)
	pen := math32.Max(maxA-minB, 0)

	return CollisionResult{
		IsColliding: true,
		MTV:         axis.Mul(-pen),
		Normal:      axis,
		Penetration: pen,
		Contacts:    polyContacts(a, b, axis),
	}
}

func project(verts []Vector, axis Vector) (min, max float32) {
	min, max = INFINITY, -INFINITY
	for _, v := range verts {
		p := v.Dot(axis)
		min = math32.Min(min, p)
		max = math32.Max(max, p)
	}
	return min, max
}

// canonicalAxis flips n so that the same line always has the same sign,
// making axis selection independent of argument order.
func canonicalAxis(n Vector) Vector {
	if n[0] < -Epsilon || (math32.Abs(n[0]) <= Epsilon && n[1] < 0) {
		return n.Mul(-1)
	}
	return n
}

func axisLess(n, current Vector) bool {
	if current == (Vector{}) {
		return true
	}
	n = canonicalAxis(n)
	if math32.Abs(n[0]-current[0]) > Epsilon {
		return n[0] > current[0]
	}
	return n[1] > current[1]
}

// bestEdge returns the non-degenerate edge whose outward normal is most
// aligned with dir.
func bestEdge(verts []Vector, dir Vector) (Edge, float32, bool) {
	var best Edge
	bestDot := -INFINITY
	for _, e := range Edges(verts) {
		if e.Degenerate() {
			continue
		}
		if d := e.Normal().Dot(dir); d > bestDot {
			best, bestDot = e, d
		}
	}
	return best, bestDot, bestDot > -INFINITY
}

// polyContacts builds the contact set for a colliding polygon pair.
// n points from a toward b.
func polyContacts(a, b *Geometry, n Vector) []Vector {
	if points := clipContacts(a.Verts, b.Verts, n); len(points) > 0 {
		return points
	}

	var points []Vector
	for _, v := range b.Verts {
		if len(points) < MaxContacts && pointInPolygon(v, a.Verts) {
			points = append(points, v)
		}
	}
	for _, v := range a.Verts {
		if len(points) < MaxContacts && pointInPolygon(v, b.Verts) {
			points = append(points, v)
		}
	}
	if len(points) > 0 {
		return points
	}
	return []Vector{Lerp(a.Center, b.Center, 0.5)}
}

// clipContacts clips the incident edge against the side planes of the
// reference edge and keeps the points lying behind the reference face.
func clipContacts(a, b []Vector, n Vector) []Vector {
	ea, da, okA := bestEdge(a, n)
	eb, db, okB := bestEdge(b, n.Mul(-1))
	if !okA || !okB {
		return nil
	}
	ref, inc := ea, eb
	if db > da+Epsilon {
		ref, inc = eb, ea
	}

	t := Normalize(ref.Direction())
	cp := clip(inc.P1, inc.P2, t, t.Dot(ref.P1))
	if len(cp) < 2 {
		return nil
	}
	cp = clip(cp[0], cp[1], t.Mul(-1), -t.Dot(ref.P2))
	if len(cp) < 2 {
		return nil
	}

	refN := ref.Normal()
	face := refN.Dot(ref.P1)
	points := cp[:0]
	for _, p := range cp {
		if refN.Dot(p)-face <= Epsilon {
			points = append(points, p)
		}
	}
	return points
}

// clip keeps the part of segment v1 v2 with n.p >= o.
func clip(v1, v2, n Vector, o float32) []Vector {
	points := make([]Vector, 0, 2)
	d1 := n.Dot(v1) - o
	d2 := n.Dot(v2) - o
	if d1 >= 0 {
		points = append(points, v1)
	}
	if d2 >= 0 {
		points = append(points, v2)
	}
	if d1*d2 < 0 {
		u := d1 / (d1 - d2)
		points = append(points, v1.Add(v2.Sub(v1).Mul(u)))
	}
	return points
}
