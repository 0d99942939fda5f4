package fzx

import (
	"testing"

	"github.com/chewxy/math32"
)

func assertNear(t *testing.T, name string, got, want, tol float32) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func assertVectorNear(t *testing.T, name string, got, want Vector, tol float32) {
	t.Helper()
	if math32.Abs(got[0]-want[0]) > tol || math32.Abs(got[1]-want[1]) > tol {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func TestVector_Normalize(t *testing.T) {
	u := Normalize(Vector{})
	if u[0] != 0 || u[1] != 0 {
		t.Errorf("Expected zero vector, got %v", u)
	}
	assertVectorNear(t, "unit", Normalize(Vec(3, 4)), Vec(0.6, 0.8), 1e-6)
}

func TestVector_Cross(t *testing.T) {
	if c := Cross(Vec(1, 0), Vec(0, 1)); c != 1 {
		t.Errorf("Expected 1, got %v", c)
	}
	if c := Cross(Vec(0, 1), Vec(1, 0)); c != -1 {
		t.Errorf("Expected -1, got %v", c)
	}
	// w x r must agree with the 3D cross product of (0,0,w) and r.
	assertVectorNear(t, "cross sv", CrossSV(2, Vec(1, 0)), Vec(0, 2), 1e-6)
}

func TestVector_ClosestPointOnSegment(t *testing.T) {
	tests := []struct {
		name string
		p    Vector
		want Vector
	}{
		{"above middle", Vec(5, 3), Vec(5, 0)},
		{"before start", Vec(-2, 1), Vec(0, 0)},
		{"past end", Vec(14, -1), Vec(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, Vec(0, 0), Vec(10, 0))
			assertVectorNear(t, tt.name, got, tt.want, 1e-5)
		})
	}
}

func TestVector_Rotate(t *testing.T) {
	assertVectorNear(t, "90", Rotate(Vec(1, 0), 90), Vec(0, 1), 1e-6)
	assertVectorNear(t, "180", Rotate(Vec(1, 0), 180), Vec(-1, 0), 1e-6)
	assertVectorNear(t, "0", Rotate(Vec(2, 3), 0), Vec(2, 3), 0)
}
