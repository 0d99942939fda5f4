package fzx

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestShapeCircleArea(t *testing.T) {
	circle := NewCircle(2, 0)
	assertNear(t, "area", circle.Area(Vec(1, 1)), 4*math32.Pi, 1e-5)
	assertNear(t, "scaled area", circle.Area(Vec(1, 3)), 36*math32.Pi, 1e-4)
	if circle.Segments() != MinCircleSegments {
		t.Fatalf("segments = %d", circle.Segments())
	}
	if n := len(NewCircle(2, 16).Vertices()); n != 16 {
		t.Fatalf("outline has %d vertices", n)
	}
}

func TestShapeBox(t *testing.T) {
	box := NewBox(4, 2)
	assertNear(t, "area", box.Area(Vec(1, 1)), 8, 1e-6)
	assertNear(t, "scaled area", box.Area(Vec(2, 2)), 32, 1e-5)
	assertNear(t, "signed area", AreaForPoly(box.Vertices()), 8, 1e-6)
	assertNear(t, "mirrored area", box.Area(Vec(-1, 1)), 8, 1e-6)
	if !NewBox(0, 2).Degenerate() {
		t.Fatal("zero width box should be degenerate")
	}
}

func TestNewPolygon_Recenters(t *testing.T) {
	poly := NewPolygon([]Vector{{10, 10}, {14, 10}, {14, 12}, {10, 12}})
	assertVectorNear(t, "centroid", CentroidForPoly(poly.Vertices()), Vector{}, 1e-5)
	assertNear(t, "area", poly.Area(Vec(1, 1)), 8, 1e-5)
	assertNear(t, "mirrored area", poly.Area(Vec(1, -2)), 16, 1e-4)
	assertNear(t, "mirrored moment", poly.Moment(1, Vec(-1, 1)), poly.Moment(1, Vec(1, 1)), 1e-4)
}

func TestConvexHull(t *testing.T) {
	points := []Vector{
		{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 2}, {1, 0}, {0.5, 1.5},
	}
	hull := ConvexHull(points, Epsilon)
	if len(hull) != 4 {
		t.Fatalf("hull = %v", hull)
	}
	if AreaForPoly(hull) <= 0 {
		t.Fatal("hull should wind counter-clockwise")
	}

	if ConvexHull([]Vector{{0, 0}, {1, 1}, {2, 2}}, Epsilon) != nil {
		t.Fatal("collinear points have no hull")
	}
	if !NewPolygon([]Vector{{0, 0}, {1, 1}, {2, 2}}).Degenerate() {
		t.Fatal("collinear polygon should be degenerate")
	}

	line := NewPolygon([]Vector{{0, 0}, {4, 0}})
	if !line.Degenerate() {
		t.Fatal("two point polygon should be degenerate")
	}
	if m := line.Moment(1, Vec(1, 1)); m != 0 {
		t.Errorf("two point polygon moment = %v", m)
	}
	if m := MomentForPoly(1, []Vector{{0, 0}, {4, 0}}, Vector{}); m != 0 {
		t.Errorf("MomentForPoly of a segment = %v", m)
	}
}

func TestNewRegularPolygon(t *testing.T) {
	hex := NewRegularPolygon(10, 6)
	if n := len(hex.Vertices()); n != 6 {
		t.Fatalf("hexagon has %d vertices", n)
	}
	want := 3 * math32.Sqrt(3) / 2 * 100
	assertNear(t, "area", hex.Area(Vec(1, 1)), want, 1e-2)
}

func TestMomentForPoly_MatchesBox(t *testing.T) {
	box := NewBox(6, 4)
	got := MomentForPoly(2, box.Vertices(), Vector{})
	assertNear(t, "moment", got, MomentForBox(2, 6, 4), 1e-3)
}
