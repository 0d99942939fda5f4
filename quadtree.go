package fzx

const (
	DefaultQuadTreeCapacity = 8
	DefaultQuadTreeMaxDepth = 6
)

// QuadTree is a bounded region quadtree. An object lives in the shallowest
// node whose region fully contains its bounds. Objects straddling a child
// boundary, or lying outside the board altogether, stay at the parent.
type QuadTree struct {
	tracked

	root     *quadNode
	board    AABB
	capacity int
	maxDepth int
}

type quadNode struct {
	region   AABB
	depth    int
	objects  []*Collidable
	children *[4]*quadNode
}

func NewQuadTree(board AABB, capacity, maxDepth int, bbfunc SpatialIndexBB) *QuadTree {
	if capacity < 1 {
		capacity = DefaultQuadTreeCapacity
	}
	if maxDepth < 0 {
		maxDepth = DefaultQuadTreeMaxDepth
	}
	return &QuadTree{
		tracked:  newTracked(bbfunc),
		root:     &quadNode{region: board},
		board:    board,
		capacity: capacity,
		maxDepth: maxDepth,
	}
}

func (tree *QuadTree) Board() AABB {
	return tree.board
}

func (tree *QuadTree) Insert(obj *Collidable) {
	bb, ok := tree.add(obj)
	if !ok {
		return
	}
	tree.root.insert(tree, obj, bb)
}

func (tree *QuadTree) Remove(obj *Collidable) bool {
	bb, ok := tree.drop(obj)
	if !ok {
		return false
	}
	if !tree.root.remove(tree, obj, bb) {
		// filed under bounds that no longer match the tree layout
		tree.root.removeAny(tree, obj)
	}
	return true
}

func (tree *QuadTree) Rebuild() {
	tree.refresh()
	tree.root = &quadNode{region: tree.board}
	for i, obj := range tree.objects {
		tree.root.insert(tree, obj, tree.bounds[i])
	}
}

func (tree *QuadTree) Clear() {
	tree.clear()
	tree.root = &quadNode{region: tree.board}
}

func (tree *QuadTree) Query(bb AABB, f SpatialIndexIterator) {
	tree.root.query(tree, bb, f)
}

func (tree *QuadTree) Retrieve(obj *Collidable, f SpatialIndexIterator) {
	tree.root.query(tree, tree.boundsOf(obj), func(other *Collidable) {
		if other != obj {
			f(other)
		}
	})
}

// EachNode visits every node region with its depth, parents first.
func (tree *QuadTree) EachNode(f func(region AABB, depth, count int)) {
	tree.root.each(f)
}

// Depth returns the depth of the deepest node.
func (tree *QuadTree) Depth() int {
	depth := 0
	tree.root.each(func(_ AABB, d, _ int) {
		depth = max(depth, d)
	})
	return depth
}

func (n *quadNode) childIndex(bb AABB) int {
	if n.children == nil {
		return -1
	}
	for i, child := range n.children {
		if child.region.Contains(bb) {
			return i
		}
	}
	return -1
}

func (n *quadNode) subdivide() {
	var children [4]*quadNode
	for i, region := range n.region.Quadrants() {
		children[i] = &quadNode{region: region, depth: n.depth + 1}
	}
	n.children = &children
}

func (n *quadNode) insert(tree *QuadTree, obj *Collidable, bb AABB) {
	if i := n.childIndex(bb); i >= 0 {
		n.children[i].insert(tree, obj, bb)
		return
	}
	n.objects = append(n.objects, obj)

	if n.children != nil || len(n.objects) <= tree.capacity || n.depth >= tree.maxDepth {
		return
	}
	n.subdivide()
	kept := n.objects[:0]
	for _, o := range n.objects {
		ob := tree.boundsOf(o)
		if i := n.childIndex(ob); i >= 0 {
			n.children[i].insert(tree, o, ob)
		} else {
			kept = append(kept, o)
		}
	}
	clear(n.objects[len(kept):])
	n.objects = kept
}

func (n *quadNode) remove(tree *QuadTree, obj *Collidable, bb AABB) bool {
	if i := n.childIndex(bb); i >= 0 && n.children[i].remove(tree, obj, bb) {
		n.tryMerge(tree)
		return true
	}
	if n.removeLocal(obj) {
		n.tryMerge(tree)
		return true
	}
	return false
}

func (n *quadNode) removeAny(tree *QuadTree, obj *Collidable) bool {
	if n.removeLocal(obj) {
		n.tryMerge(tree)
		return true
	}
	if n.children == nil {
		return false
	}
	for _, child := range n.children {
		if child.removeAny(tree, obj) {
			n.tryMerge(tree)
			return true
		}
	}
	return false
}

func (n *quadNode) removeLocal(obj *Collidable) bool {
	for i, o := range n.objects {
		if o == obj {
			last := len(n.objects) - 1
			n.objects[i] = n.objects[last]
			n.objects[last] = nil
			n.objects = n.objects[:last]
			return true
		}
	}
	return false
}

// tryMerge collapses leaf children back into n when everything fits.
func (n *quadNode) tryMerge(tree *QuadTree) {
	if n.children == nil {
		return
	}
	total := len(n.objects)
	for _, child := range n.children {
		if child.children != nil {
			return
		}
		total += len(child.objects)
	}
	if total > tree.capacity {
		return
	}
	for _, child := range n.children {
		n.objects = append(n.objects, child.objects...)
	}
	n.children = nil
}

func (n *quadNode) query(tree *QuadTree, bb AABB, f SpatialIndexIterator) {
	// the root also holds objects outside the board
	if n.depth > 0 && !n.region.Intersects(bb) {
		return
	}
	for _, o := range n.objects {
		if tree.boundsOf(o).Intersects(bb) {
			f(o)
		}
	}
	if n.children == nil {
		return
	}
	for _, child := range n.children {
		child.query(tree, bb, f)
	}
}

func (n *quadNode) each(f func(region AABB, depth, count int)) {
	f(n.region, n.depth, len(n.objects))
	if n.children == nil {
		return
	}
	for _, child := range n.children {
		child.each(f)
	}
}
