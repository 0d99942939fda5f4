package fzx

import "testing"

func TestHashPair(t *testing.T) {
	a := ColliderID{handle{3, 1}}
	b := ColliderID{handle{7, 2}}
	if HashPair(a, b) != HashPair(b, a) {
		t.Error("Expected pair hash to ignore order")
	}
	if HashPair(a, b) == HashPair(a, ColliderID{handle{8, 1}}) {
		t.Error("Expected different pairs to hash differently")
	}
}

func TestHashSet(t *testing.T) {
	set := NewHashSet()
	if !set.Insert(1) {
		t.Error("Expected first insert to report new")
	}
	if set.Insert(1) {
		t.Error("Expected duplicate insert to report existing")
	}
	if set.Count() != 1 {
		t.Errorf("Expected 1, got %d", set.Count())
	}
	set.Insert(2)
	set.Remove(1)
	if set.Contains(1) || !set.Contains(2) {
		t.Error("Remove removed the wrong value")
	}
	set.Clear()
	if set.Count() != 0 {
		t.Errorf("Expected empty set, got %d", set.Count())
	}
}
