package fzx

import "slices"

// CollisionInfo is the per step collision record of a Collidable. MTVs and
// contact points are kept per neighbor: MTV[other] is the displacement that
// moves this object out of other.
type CollisionInfo struct {
	IsColliding bool
	Colliders   []ColliderID

	IsPhysicsColliding bool
	PhysicsColliders   []ColliderID
	MTV                map[ColliderID]Vector
	Contacts           map[ColliderID][]Vector
}

func (info *CollisionInfo) reset() {
	info.IsColliding = false
	info.IsPhysicsColliding = false
	info.Colliders = info.Colliders[:0]
	info.PhysicsColliders = info.PhysicsColliders[:0]
	clear(info.MTV)
	clear(info.Contacts)
}

// record stores the result of testing against other. mtv must already be
// expressed from this object's point of view.
func (info *CollisionInfo) record(other ColliderID, physics bool, mtv Vector, contacts []Vector) {
	info.IsColliding = true
	info.Colliders = append(info.Colliders, other)
	if !physics {
		return
	}
	if info.MTV == nil {
		info.MTV = map[ColliderID]Vector{}
		info.Contacts = map[ColliderID][]Vector{}
	}
	info.IsPhysicsColliding = true
	info.PhysicsColliders = append(info.PhysicsColliders, other)
	info.MTV[other] = mtv
	info.Contacts[other] = contacts
}

// TotalMTV sums the MTVs against every physics neighbor.
func (info *CollisionInfo) TotalMTV() Vector {
	var total Vector
	for _, id := range info.PhysicsColliders {
		total = total.Add(info.MTV[id])
	}
	return total
}

// Collidable is a shape placed in the world, optionally driven by a body.
// It is the unit the spatial index and the narrow phase work on.
type Collidable struct {
	id   ColliderID
	body BodyID

	shape     Shape
	Transform Transform
	Filter    ShapeFilter

	UserData interface{}

	info CollisionInfo

	// world geometry resolved at the start of the current step
	geom Geometry
}

// NewCollidable creates a collidable that is not yet registered anywhere.
func NewCollidable(shape Shape, transform Transform) *Collidable {
	if transform.Scale == (Vector{}) {
		transform.Scale = Vector{1, 1}
	}
	return &Collidable{
		shape:     shape,
		Transform: transform,
		Filter:    ShapeFilterAll,
	}
}

func (c *Collidable) ID() ColliderID {
	return c.id
}

func (c *Collidable) Shape() Shape {
	return c.shape
}

// Body returns the handle of the body driving c, if any.
func (c *Collidable) Body() (BodyID, bool) {
	return c.body, c.body.Valid()
}

// HasBody reports whether c takes part in physical response. Collidables
// without a body are sensors.
func (c *Collidable) HasBody() bool {
	return c.body.Valid()
}

// Info returns the collision record of the last step.
func (c *Collidable) Info() *CollisionInfo {
	return &c.info
}

// WorldVertices returns the current world space outline.
func (c *Collidable) WorldVertices() []Vector {
	return c.Transform.Apply(c.shape.Vertices())
}

// Bounds returns the current world space bounding box.
func (c *Collidable) Bounds() AABB {
	return c.Geometry().BB
}

// Center returns the circle center or the polygon centroid in world space.
func (c *Collidable) Center() Vector {
	return c.Geometry().Center
}

// ContainsPoint reports whether p lies inside or on the outline.
func (c *Collidable) ContainsPoint(p Vector) bool {
	return c.Geometry().ContainsPoint(p)
}

// Geometry resolves the shape into world space using the current transform.
func (c *Collidable) Geometry() Geometry {
	return NewGeometry(c.shape, c.Transform)
}

// Geometry is a shape resolved into world space.
type Geometry struct {
	Kind   ShapeKind
	Center Vector
	Radius float32
	Verts  []Vector
	BB     AABB
}

func NewGeometry(shape Shape, xf Transform) Geometry {
	g := Geometry{Kind: shape.kind}
	switch shape.kind {
	case ShapeCircle:
		g.Center = xf.Origin()
		g.Radius = shape.radius * circleScale(xf.Scale)
		g.BB = NewAABBForCircle(g.Center, g.Radius)
	case ShapePolygon:
		g.Verts = xf.Apply(shape.verts)
		if xf.Scale[0]*xf.Scale[1] < 0 {
			// mirroring turns the winding clockwise
			slices.Reverse(g.Verts)
		}
		g.Center = CentroidForPoly(g.Verts)
		g.BB = AABBForPoints(g.Verts)
	}
	return g
}

// Degenerate geometry never collides.
func (g Geometry) Degenerate() bool {
	if g.Kind == ShapeCircle {
		return g.Radius <= 0
	}
	return len(g.Verts) < 3
}

func (g Geometry) ContainsPoint(p Vector) bool {
	if g.Kind == ShapeCircle {
		return DistanceSq(p, g.Center) <= g.Radius*g.Radius
	}
	return pointInPolygon(p, g.Verts)
}

// pointInPolygon is a crossing number test. Points on an edge count as
// inside.
func pointInPolygon(p Vector, verts []Vector) bool {
	if len(verts) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(verts)-1; i < len(verts); j, i = i, i+1 {
		a, b := verts[i], verts[j]
		if DistanceSq(ClosestPointOnSegment(p, a, b), p) <= Epsilon*Epsilon {
			return true
		}
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := (b[0]-a[0])*(p[1]-a[1])/(b[1]-a[1]) + a[0]
			if p[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}
