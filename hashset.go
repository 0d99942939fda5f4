package fzx

type HashValue uint64

// HashPair is the order independent key of an unordered collidable pair.
func HashPair(a, b ColliderID) HashValue {
	lo, hi := a.index, b.index
	if lo > hi {
		lo, hi = hi, lo
	}
	return HashValue(lo)<<32 | HashValue(hi)
}

// HashSet is a set of hash values, cleared and refilled every step.
type HashSet struct {
	table map[HashValue]struct{}
}

func NewHashSet() *HashSet {
	return &HashSet{table: map[HashValue]struct{}{}}
}

func (set *HashSet) Count() int {
	return len(set.table)
}

// Insert adds hash and reports whether it was not already present.
func (set *HashSet) Insert(hash HashValue) bool {
	if _, ok := set.table[hash]; ok {
		return false
	}
	set.table[hash] = struct{}{}
	return true
}

func (set *HashSet) Contains(hash HashValue) bool {
	_, ok := set.table[hash]
	return ok
}

func (set *HashSet) Remove(hash HashValue) {
	delete(set.table, hash)
}

func (set *HashSet) Clear() {
	clear(set.table)
}
