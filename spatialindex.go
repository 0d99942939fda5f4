package fzx

type SpatialIndexBB func(obj *Collidable) AABB
type SpatialIndexIterator func(obj *Collidable)

// SpatialIndexer is a broad phase structure. Objects are located by the
// bounds reported by the index's SpatialIndexBB at insertion or rebuild time.
type SpatialIndexer interface {
	Count() int
	Each(f SpatialIndexIterator)
	Contains(obj *Collidable) bool
	Insert(obj *Collidable)
	Remove(obj *Collidable) bool
	// Rebuild drops the structure and reinserts every tracked object with
	// fresh bounds.
	Rebuild()
	// Retrieve visits each other object whose bounds overlap obj's bounds,
	// each at most once.
	Retrieve(obj *Collidable, f SpatialIndexIterator)
	// Query visits each object whose bounds overlap bb, each at most once.
	Query(bb AABB, f SpatialIndexIterator)
	Clear()
}

func CollidableBB(obj *Collidable) AABB {
	return obj.Bounds()
}

// tracked is the ordered object set shared by the index implementations.
type tracked struct {
	bbfunc  SpatialIndexBB
	objects []*Collidable
	bounds  []AABB
	index   map[*Collidable]int
}

func newTracked(bbfunc SpatialIndexBB) tracked {
	if bbfunc == nil {
		bbfunc = CollidableBB
	}
	return tracked{bbfunc: bbfunc, index: map[*Collidable]int{}}
}

func (t *tracked) Count() int {
	return len(t.objects)
}

func (t *tracked) Contains(obj *Collidable) bool {
	_, ok := t.index[obj]
	return ok
}

func (t *tracked) Each(f SpatialIndexIterator) {
	for _, obj := range t.objects {
		f(obj)
	}
}

// add starts tracking obj and returns its bounds. ok is false when obj was
// already tracked.
func (t *tracked) add(obj *Collidable) (AABB, bool) {
	if _, ok := t.index[obj]; ok {
		return AABB{}, false
	}
	bb := t.bbfunc(obj)
	t.index[obj] = len(t.objects)
	t.objects = append(t.objects, obj)
	t.bounds = append(t.bounds, bb)
	return bb, true
}

// drop stops tracking obj and returns the bounds it was filed under.
func (t *tracked) drop(obj *Collidable) (AABB, bool) {
	i, ok := t.index[obj]
	if !ok {
		return AABB{}, false
	}
	bb := t.bounds[i]
	last := len(t.objects) - 1
	t.objects[i], t.bounds[i] = t.objects[last], t.bounds[last]
	t.index[t.objects[i]] = i
	t.objects[last] = nil
	t.objects, t.bounds = t.objects[:last], t.bounds[:last]
	delete(t.index, obj)
	return bb, true
}

func (t *tracked) boundsOf(obj *Collidable) AABB {
	if i, ok := t.index[obj]; ok {
		return t.bounds[i]
	}
	return t.bbfunc(obj)
}

func (t *tracked) refresh() {
	for i, obj := range t.objects {
		t.bounds[i] = t.bbfunc(obj)
	}
}

func (t *tracked) clear() {
	clear(t.objects)
	t.objects = t.objects[:0]
	t.bounds = t.bounds[:0]
	clear(t.index)
}
