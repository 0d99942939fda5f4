package fzx

// ShapeFilter decides which collidables are allowed to collide.
type ShapeFilter struct {
	// Two objects with the same non-zero group never collide.
	Group uint
	// Categories is the bitmask of categories this object belongs to.
	Categories uint
	// Mask is the bitmask of categories this object collides with.
	Mask uint
}

const (
	NoGroup       uint = 0
	AllCategories uint = ^uint(0)
)

var ShapeFilterAll = ShapeFilter{NoGroup, AllCategories, AllCategories}
var ShapeFilterNone = ShapeFilter{NoGroup, ^AllCategories, ^AllCategories}

// Reject reports whether a and b must not be tested against each other.
func (a ShapeFilter) Reject(b ShapeFilter) bool {
	return (a.Group != 0 && a.Group == b.Group) ||
		(a.Categories&b.Mask) == 0 ||
		(b.Categories&a.Mask) == 0
}
