package fzx

// BBTree is a dynamic bounding volume tree. Leaves hold one object each and
// inner nodes bound their two children. Insertion descends toward the
// child whose area grows least.
type BBTree struct {
	tracked

	leaves map[*Collidable]*Node
	root   *Node

	pooledNodes *Node
}

type Node struct {
	obj    *Collidable
	bb     AABB
	parent *Node

	a, b *Node
}

func NewBBTree(bbfunc SpatialIndexBB) *BBTree {
	return &BBTree{
		tracked: newTracked(bbfunc),
		leaves:  map[*Collidable]*Node{},
	}
}

func (node *Node) IsLeaf() bool {
	return node.obj != nil
}

func (tree *BBTree) Insert(obj *Collidable) {
	bb, ok := tree.add(obj)
	if !ok {
		return
	}
	leaf := tree.NewLeaf(obj, bb)
	tree.leaves[obj] = leaf
	tree.root = tree.SubtreeInsert(tree.root, leaf)
}

func (tree *BBTree) Remove(obj *Collidable) bool {
	if _, ok := tree.drop(obj); !ok {
		return false
	}
	leaf := tree.leaves[obj]
	delete(tree.leaves, obj)
	tree.root = tree.SubtreeRemove(tree.root, leaf)
	tree.NodeRecycle(leaf)
	return true
}

func (tree *BBTree) Rebuild() {
	tree.refresh()
	tree.recycleSubtree(tree.root)
	tree.root = nil
	clear(tree.leaves)
	for i, obj := range tree.objects {
		leaf := tree.NewLeaf(obj, tree.bounds[i])
		tree.leaves[obj] = leaf
		tree.root = tree.SubtreeInsert(tree.root, leaf)
	}
}

func (tree *BBTree) Clear() {
	tree.clear()
	tree.recycleSubtree(tree.root)
	tree.root = nil
	clear(tree.leaves)
}

func (tree *BBTree) Query(bb AABB, f SpatialIndexIterator) {
	if tree.root != nil {
		tree.root.query(bb, nil, f)
	}
}

func (tree *BBTree) Retrieve(obj *Collidable, f SpatialIndexIterator) {
	if tree.root != nil {
		tree.root.query(tree.boundsOf(obj), obj, f)
	}
}

// Height returns the number of levels, zero for an empty tree.
func (tree *BBTree) Height() int {
	return tree.root.height()
}

func (node *Node) height() int {
	if node == nil {
		return 0
	}
	if node.IsLeaf() {
		return 1
	}
	return 1 + max(node.a.height(), node.b.height())
}

func (node *Node) query(bb AABB, skip *Collidable, f SpatialIndexIterator) {
	if !node.bb.Intersects(bb) {
		return
	}
	if node.IsLeaf() {
		if node.obj != skip {
			f(node.obj)
		}
		return
	}
	node.a.query(bb, skip, f)
	node.b.query(bb, skip, f)
}

func (tree *BBTree) SubtreeInsert(subtree *Node, leaf *Node) *Node {
	if subtree == nil {
		return leaf
	}
	if subtree.IsLeaf() {
		return tree.NewNode(leaf, subtree)
	}

	cost_a := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	cost_b := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if cost_a == cost_b {
		cost_a = subtree.a.bb.Proximity(leaf.bb)
		cost_b = subtree.b.bb.Proximity(leaf.bb)
	}

	if cost_b < cost_a {
		NodeSetB(subtree, tree.SubtreeInsert(subtree.b, leaf))
	} else {
		NodeSetA(subtree, tree.SubtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

// SubtreeRemove unlinks leaf and returns the new subtree root. The parent
// of leaf is replaced by leaf's sibling.
func (tree *BBTree) SubtreeRemove(subtree *Node, leaf *Node) *Node {
	if leaf == subtree {
		return nil
	}
	parent := leaf.parent
	sibling := parent.other(leaf)
	if parent == subtree {
		sibling.parent = nil
		tree.NodeRecycle(parent)
		return sibling
	}

	grand := parent.parent
	if grand.a == parent {
		NodeSetA(grand, sibling)
	} else {
		NodeSetB(grand, sibling)
	}
	tree.NodeRecycle(parent)
	for node := grand; node != nil; node = node.parent {
		node.bb = node.a.bb.Merge(node.b.bb)
	}
	return subtree
}

func (node *Node) other(child *Node) *Node {
	if node.a == child {
		return node.b
	}
	return node.a
}

func (tree *BBTree) NewNode(a, b *Node) *Node {
	node := tree.NodeFromPool()
	node.obj = nil
	node.bb = a.bb.Merge(b.bb)
	node.parent = nil

	NodeSetA(node, a)
	NodeSetB(node, b)
	return node
}

func NodeSetA(node, value *Node) {
	node.a = value
	value.parent = node
}

func NodeSetB(node, value *Node) {
	node.b = value
	value.parent = node
}

func (tree *BBTree) NewLeaf(obj *Collidable, bb AABB) *Node {
	node := tree.NodeFromPool()
	node.obj = obj
	node.bb = bb
	node.parent = nil
	node.a, node.b = nil, nil
	return node
}

func (tree *BBTree) NodeFromPool() *Node {
	node := tree.pooledNodes

	if node != nil {
		tree.pooledNodes = node.parent
		node.parent = nil
		return node
	}

	// Pool is exhausted make more
	for i := 0; i < 32; i++ {
		tree.NodeRecycle(&Node{})
	}

	node = tree.pooledNodes
	tree.pooledNodes = node.parent
	node.parent = nil
	return node
}

func (tree *BBTree) NodeRecycle(node *Node) {
	*node = Node{parent: tree.pooledNodes}
	tree.pooledNodes = node
}

func (tree *BBTree) recycleSubtree(node *Node) {
	if node == nil {
		return
	}
	if !node.IsLeaf() {
		tree.recycleSubtree(node.a)
		tree.recycleSubtree(node.b)
	}
	tree.NodeRecycle(node)
}
