package fzx

// handle addresses a slot of an arena. The generation changes whenever the
// slot is recycled so stale handles stop resolving. The zero handle is
// never valid.
type handle struct {
	index      uint32
	generation uint32
}

func (h handle) Valid() bool {
	return h.generation != 0
}

// ColliderID is a handle to a Collidable registered with a Space.
type ColliderID struct{ handle }

// BodyID is a handle to a RigidBody registered with a Space.
type BodyID struct{ handle }

// Index is stable for the life of the object and unique among live objects.
func (id ColliderID) Index() uint32 { return id.index }

func (id BodyID) Index() uint32 { return id.index }

// arena is an index addressed pool with free slot reuse.
type arena[T any] struct {
	items       []*T
	generations []uint32
	free        []uint32
	count       int
}

func (a *arena[T]) insert(item *T) handle {
	a.count++
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.items[index] = item
		return handle{index, a.generations[index]}
	}
	a.items = append(a.items, item)
	a.generations = append(a.generations, 1)
	return handle{uint32(len(a.items) - 1), 1}
}

func (a *arena[T]) get(h handle) *T {
	if !h.Valid() || int(h.index) >= len(a.items) || a.generations[h.index] != h.generation {
		return nil
	}
	return a.items[h.index]
}

func (a *arena[T]) remove(h handle) *T {
	item := a.get(h)
	if item == nil {
		return nil
	}
	a.items[h.index] = nil
	a.generations[h.index]++
	if a.generations[h.index] == 0 {
		a.generations[h.index] = 1
	}
	a.free = append(a.free, h.index)
	a.count--
	return item
}

// each visits live items in index order.
func (a *arena[T]) each(f func(h handle, item *T)) {
	for i, item := range a.items {
		if item != nil {
			f(handle{uint32(i), a.generations[i]}, item)
		}
	}
}

func (a *arena[T]) len() int {
	return a.count
}
