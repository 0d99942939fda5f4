package fzx

import (
	"fmt"

	"github.com/chewxy/math32"
)

// AABB is an axis aligned bounding box stored as center and half extents.
type AABB struct {
	Center Vector
	HW, HH float32
}

func NewAABB(center Vector, hw, hh float32) AABB {
	return AABB{Center: center, HW: math32.Abs(hw), HH: math32.Abs(hh)}
}

func NewAABBForExtents(min, max Vector) AABB {
	return AABB{
		Center: Vector{(min[0] + max[0]) / 2, (min[1] + max[1]) / 2},
		HW:     math32.Abs(max[0]-min[0]) / 2,
		HH:     math32.Abs(max[1]-min[1]) / 2,
	}
}

func NewAABBForCircle(p Vector, r float32) AABB {
	return NewAABB(p, r, r)
}

// AABBForPoints returns the tightest box around points. An empty list yields
// a zero sized box at the origin.
func AABBForPoints(points []Vector) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min[0] = math32.Min(min[0], p[0])
		min[1] = math32.Min(min[1], p[1])
		max[0] = math32.Max(max[0], p[0])
		max[1] = math32.Max(max[1], p[1])
	}
	return NewAABBForExtents(min, max)
}

func (bb AABB) Min() Vector {
	return Vector{bb.Center[0] - bb.HW, bb.Center[1] - bb.HH}
}

func (bb AABB) Max() Vector {
	return Vector{bb.Center[0] + bb.HW, bb.Center[1] + bb.HH}
}

// ContainsPoint reports whether v lies inside bb or on its boundary.
func (bb AABB) ContainsPoint(v Vector) bool {
	min, max := bb.Min(), bb.Max()
	return min[0] <= v[0] && max[0] >= v[0] && min[1] <= v[1] && max[1] >= v[1]
}

// Contains reports whether other lies completely inside bb.
func (bb AABB) Contains(other AABB) bool {
	min, max := bb.Min(), bb.Max()
	omin, omax := other.Min(), other.Max()
	return min[0] <= omin[0] && max[0] >= omax[0] && min[1] <= omin[1] && max[1] >= omax[1]
}

// Intersects treats touching boxes as intersecting.
func (bb AABB) Intersects(other AABB) bool {
	return math32.Abs(bb.Center[0]-other.Center[0]) <= bb.HW+other.HW &&
		math32.Abs(bb.Center[1]-other.Center[1]) <= bb.HH+other.HH
}

func (bb AABB) Merge(other AABB) AABB {
	min, max := bb.Min(), bb.Max()
	omin, omax := other.Min(), other.Max()
	return NewAABBForExtents(
		Vector{math32.Min(min[0], omin[0]), math32.Min(min[1], omin[1])},
		Vector{math32.Max(max[0], omax[0]), math32.Max(max[1], omax[1])},
	)
}

// Expand grows bb to include v.
func (bb AABB) Expand(v Vector) AABB {
	min, max := bb.Min(), bb.Max()
	return NewAABBForExtents(
		Vector{math32.Min(min[0], v[0]), math32.Min(min[1], v[1])},
		Vector{math32.Max(max[0], v[0]), math32.Max(max[1], v[1])},
	)
}

func (bb AABB) Area() float32 {
	return 4 * bb.HW * bb.HH
}

// MergedArea is the area of the box bounding both bb and other.
func (bb AABB) MergedArea(other AABB) float32 {
	return bb.Merge(other).Area()
}

// Proximity is the Manhattan distance between the centers, doubled.
func (bb AABB) Proximity(other AABB) float32 {
	return 2 * (math32.Abs(bb.Center[0]-other.Center[0]) + math32.Abs(bb.Center[1]-other.Center[1]))
}

// Quadrants splits bb into four equal boxes: north west, north east,
// south west, south east.
func (bb AABB) Quadrants() [4]AABB {
	hw, hh := bb.HW/2, bb.HH/2
	c := bb.Center
	return [4]AABB{
		NewAABB(Vector{c[0] - hw, c[1] - hh}, hw, hh),
		NewAABB(Vector{c[0] + hw, c[1] - hh}, hw, hh),
		NewAABB(Vector{c[0] - hw, c[1] + hh}, hw, hh),
		NewAABB(Vector{c[0] + hw, c[1] + hh}, hw, hh),
	}
}

// Vertices returns the corners in counter-clockwise order.
func (bb AABB) Vertices() []Vector {
	min, max := bb.Min(), bb.Max()
	return []Vector{min, {max[0], min[1]}, max, {min[0], max[1]}}
}

func (bb AABB) String() string {
	return fmt.Sprintf("AABB{center: %v, hw: %v, hh: %v}", bb.Center, bb.HW, bb.HH)
}
