package fzx

import "github.com/chewxy/math32"

const (
	DefaultCellSize = 64

	// objects spanning more cells than this are checked by every query
	// instead of being hashed
	maxHashCells = 1024
)

// SpaceHash is a uniform grid keyed by cell coordinate. An object is filed
// in every cell its bounds touch.
type SpaceHash struct {
	tracked

	celldim  float32
	cells    map[uint64][]*Collidable
	oversize []*Collidable

	stamp  uint32
	stamps map[*Collidable]uint32
}

func NewSpaceHash(celldim float32, bbfunc SpatialIndexBB) *SpaceHash {
	if celldim <= 0 {
		celldim = DefaultCellSize
	}
	return &SpaceHash{
		tracked: newTracked(bbfunc),
		celldim: celldim,
		cells:   map[uint64][]*Collidable{},
		stamps:  map[*Collidable]uint32{},
	}
}

func cellKey(x, y int32) uint64 {
	return uint64(uint32(x))<<32 | uint64(uint32(y))
}

func (hash *SpaceHash) cellRange(bb AABB) (x0, y0, x1, y1 int32) {
	min, max := bb.Min(), bb.Max()
	inv := 1 / hash.celldim
	return int32(math32.Floor(min[0] * inv)), int32(math32.Floor(min[1] * inv)),
		int32(math32.Floor(max[0] * inv)), int32(math32.Floor(max[1] * inv))
}

func spans(x0, y0, x1, y1 int32) int64 {
	return (int64(x1) - int64(x0) + 1) * (int64(y1) - int64(y0) + 1)
}

func (hash *SpaceHash) hashObject(obj *Collidable, bb AABB) {
	x0, y0, x1, y1 := hash.cellRange(bb)
	if spans(x0, y0, x1, y1) > maxHashCells {
		hash.oversize = append(hash.oversize, obj)
		return
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			key := cellKey(x, y)
			hash.cells[key] = append(hash.cells[key], obj)
		}
	}
}

func (hash *SpaceHash) unhashObject(obj *Collidable, bb AABB) {
	x0, y0, x1, y1 := hash.cellRange(bb)
	if spans(x0, y0, x1, y1) > maxHashCells {
		hash.oversize = removeCollidable(hash.oversize, obj)
		return
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			key := cellKey(x, y)
			if bin := removeCollidable(hash.cells[key], obj); len(bin) > 0 {
				hash.cells[key] = bin
			} else {
				delete(hash.cells, key)
			}
		}
	}
}

func removeCollidable(list []*Collidable, obj *Collidable) []*Collidable {
	for i, o := range list {
		if o == obj {
			last := len(list) - 1
			list[i] = list[last]
			list[last] = nil
			return list[:last]
		}
	}
	return list
}

func (hash *SpaceHash) Insert(obj *Collidable) {
	bb, ok := hash.add(obj)
	if !ok {
		return
	}
	hash.hashObject(obj, bb)
}

func (hash *SpaceHash) Remove(obj *Collidable) bool {
	bb, ok := hash.drop(obj)
	if !ok {
		return false
	}
	hash.unhashObject(obj, bb)
	delete(hash.stamps, obj)
	return true
}

func (hash *SpaceHash) Rebuild() {
	hash.refresh()
	clear(hash.cells)
	clear(hash.oversize)
	hash.oversize = hash.oversize[:0]
	for i, obj := range hash.objects {
		hash.hashObject(obj, hash.bounds[i])
	}
}

func (hash *SpaceHash) Clear() {
	hash.clear()
	clear(hash.cells)
	clear(hash.stamps)
	hash.oversize = hash.oversize[:0]
}

func (hash *SpaceHash) Query(bb AABB, f SpatialIndexIterator) {
	hash.query(bb, nil, f)
}

func (hash *SpaceHash) Retrieve(obj *Collidable, f SpatialIndexIterator) {
	hash.query(hash.boundsOf(obj), obj, f)
}

func (hash *SpaceHash) query(bb AABB, skip *Collidable, f SpatialIndexIterator) {
	hash.stamp++
	visit := func(o *Collidable) {
		if o == skip || hash.stamps[o] == hash.stamp {
			return
		}
		hash.stamps[o] = hash.stamp
		if hash.boundsOf(o).Intersects(bb) {
			f(o)
		}
	}

	x0, y0, x1, y1 := hash.cellRange(bb)
	if spans(x0, y0, x1, y1) > maxHashCells {
		// cheaper to scan everything than to walk the cells
		for _, o := range hash.objects {
			visit(o)
		}
		return
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for _, o := range hash.cells[cellKey(x, y)] {
				visit(o)
			}
		}
	}
	for _, o := range hash.oversize {
		visit(o)
	}
}

// CellCount returns the number of occupied cells.
func (hash *SpaceHash) CellCount() int {
	return len(hash.cells)
}
