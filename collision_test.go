package fzx

import (
	"testing"

	"github.com/chewxy/math32"
)

func geometry(shape Shape, pos Vector, rotation float32) *Geometry {
	g := NewGeometry(shape, NewTransform(pos, rotation))
	return &g
}

func TestCircleToCircle(t *testing.T) {
	const r1, r2 = 1, 2
	tests := []struct {
		name      string
		d         float32
		colliding bool
	}{
		{"coincident", 0, true},
		{"deep", 0.5, true},
		{"shallow", 2.9, true},
		{"touching", 3, true},
		{"apart", 3.1, false},
		{"far", 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := geometry(NewCircle(r1, 0), Vec(0, 0), 0)
			b := geometry(NewCircle(r2, 0), Vec(tt.d, 0), 0)
			res := Collide(a, b, true)
			if res.IsColliding != tt.colliding {
				t.Fatalf("IsColliding = %v, want %v", res.IsColliding, tt.colliding)
			}
			if !tt.colliding {
				return
			}
			assertNear(t, "mtv length", res.MTV.Len(), r1+r2-tt.d, 1e-5)
			if res.MTV[0] > 0 {
				t.Errorf("Expected MTV to push A away from B, got %v", res.MTV)
			}
			if len(res.Contacts) != 1 {
				t.Fatalf("Expected 1 contact, got %d", len(res.Contacts))
			}
		})
	}
}

func TestCircleToCircle_ContactMidway(t *testing.T) {
	a := geometry(NewCircle(1, 0), Vec(0, 0), 0)
	b := geometry(NewCircle(1, 0), Vec(1.5, 0), 0)
	res := Collide(a, b, true)
	assertVectorNear(t, "contact", res.Contacts[0], Vec(0.75, 0), 1e-5)
	assertVectorNear(t, "normal", res.Normal, Vec(1, 0), 1e-6)
}

func TestCircleToPoly(t *testing.T) {
	box := NewBox(2, 2)
	tests := []struct {
		name      string
		center    Vector
		colliding bool
		mtv       Vector
		contact   Vector
	}{
		{"outside right", Vec(1.25, 0), true, Vec(0.25, 0), Vec(0.75, 0)},
		{"outside top", Vec(0, -1.4), true, Vec(0, -0.1), Vec(0, -0.9)},
		{"center inside pushes through nearest face", Vec(0.8, 0), true, Vec(0.7, 0), Vec(0.3, 0)},
		{"center on edge", Vec(1, 0), true, Vec(0.5, 0), Vec(0.5, 0)},
		{"touching", Vec(1.5, 0), true, Vec(0, 0), Vec(1, 0)},
		{"apart", Vec(1.6, 0), false, Vector{}, Vector{}},
		{"near corner but apart", Vec(1.4, 1.4), false, Vector{}, Vector{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			circle := geometry(NewCircle(0.5, 0), tt.center, 0)
			poly := geometry(box, Vec(0, 0), 0)
			res := Collide(circle, poly, true)
			if res.IsColliding != tt.colliding {
				t.Fatalf("IsColliding = %v, want %v", res.IsColliding, tt.colliding)
			}
			if !tt.colliding {
				return
			}
			assertVectorNear(t, "mtv", res.MTV, tt.mtv, 1e-5)
			assertVectorNear(t, "contact", res.Contacts[0], tt.contact, 1e-5)

			flipped := Collide(poly, circle, true)
			if !flipped.IsColliding {
				t.Fatal("Expected reversed order to collide")
			}
			assertVectorNear(t, "reversed mtv", flipped.MTV, tt.mtv.Mul(-1), 1e-5)
		})
	}
}

func TestCircleToPoly_Mirrored(t *testing.T) {
	for _, scale := range []Vector{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}} {
		xf := NewTransformIdentity()
		xf.Scale = scale
		g := NewGeometry(NewBox(100, 100), xf)
		if AreaForPoly(g.Verts) <= 0 {
			t.Errorf("scale %v: world vertices are not counter-clockwise", scale)
		}

		circle := geometry(NewCircle(10, 0), Vec(45, 0), 0)
		res := Collide(circle, &g, true)
		if !res.IsColliding {
			t.Fatalf("scale %v: expected a collision", scale)
		}
		assertNear(t, "penetration", res.Penetration, 15, 1e-4)
		assertVectorNear(t, "mtv", res.MTV, Vec(15, 0), 1e-4)
	}
}

func TestPolyToPoly_Mirrored(t *testing.T) {
	tri := NewPolygon([]Vector{{0, 0}, {40, 0}, {0, 20}})
	plain := geometry(tri, Vec(0, 0), 0)
	xf := NewTransformIdentity()
	xf.Scale = Vec(-1, 1)
	mirrored := NewGeometry(tri, xf)

	box := geometry(NewBox(10, 10), Vec(0, -4), 0)
	want := Collide(plain, box, true)
	got := Collide(&mirrored, box, true)
	if !want.IsColliding || !got.IsColliding {
		t.Fatal("Expected both to collide")
	}
	if got.Penetration < 0 {
		t.Fatalf("negative penetration %v", got.Penetration)
	}
	if got.MTV[1] <= 0 {
		t.Errorf("Expected MTV to push the triangle down, got %v", got.MTV)
	}
}

func TestPolyToPoly_Boundary(t *testing.T) {
	box := NewBox(1, 1)
	tests := []struct {
		name      string
		offset    Vector
		colliding bool
		pen       float32
	}{
		{"same center", Vec(0, 0), true, 1},
		{"half overlap", Vec(0.5, 0), true, 0.5},
		{"just inside", Vec(1-1e-3, 0), true, 1e-3},
		{"touching full width", Vec(1, 0), true, 0},
		{"touching full height", Vec(0, 1), true, 0},
		{"just outside", Vec(1+1e-3, 0), false, 0},
		{"diagonal apart", Vec(1.01, 1.01), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := geometry(box, Vec(0, 0), 0)
			b := geometry(box, tt.offset, 0)
			res := Collide(a, b, true)
			if res.IsColliding != tt.colliding {
				t.Fatalf("IsColliding = %v, want %v", res.IsColliding, tt.colliding)
			}
			if !tt.colliding {
				return
			}
			assertNear(t, "penetration", res.Penetration, tt.pen, 1e-4)
			if len(res.Contacts) == 0 {
				t.Error("Expected contacts for a colliding pair")
			}
		})
	}
}

func TestPolyToPoly_Symmetry(t *testing.T) {
	shapes := []Shape{
		NewBox(2, 2),
		NewBox(3, 1),
		NewRegularPolygon(1.2, 3),
		NewRegularPolygon(1, 5),
		NewPolygon([]Vector{{0, 0}, {2, 0}, {2.5, 1}, {0.5, 1.5}}),
	}
	for i, sa := range shapes {
		for j, sb := range shapes {
			for step := 0; step < 12; step++ {
				angle := float32(step) * 30
				offset := Vec(math32.Cos(float32(step)*0.7)*2.1, math32.Sin(float32(step)*1.3)*1.7)
				a := geometry(sa, Vec(0, 0), angle)
				b := geometry(sb, offset, 17+angle/2)

				ab := Collide(a, b, true)
				ba := Collide(b, a, true)
				if ab.IsColliding != ba.IsColliding {
					t.Fatalf("shapes %d,%d step %d: asymmetric result %v vs %v", i, j, step, ab.IsColliding, ba.IsColliding)
				}
				if !ab.IsColliding {
					continue
				}
				if len(ab.Contacts) == 0 || len(ba.Contacts) == 0 {
					t.Errorf("shapes %d,%d step %d: colliding pair without contacts", i, j, step)
				}
				assertNear(t, "penetration", ab.Penetration, ba.Penetration, 1e-4)
				centers := b.Center.Sub(a.Center)
				if ab.Penetration > 1e-3 && math32.Abs(ab.Normal.Dot(centers)) > 1e-3 {
					assertVectorNear(t, "antiparallel mtv", ab.MTV.Add(ba.MTV), Vector{}, 1e-4)
				}
			}
		}
	}
}

func TestPolyToPoly_ClippedContacts(t *testing.T) {
	a := geometry(NewBox(2, 2), Vec(0, 0), 0)
	b := geometry(NewBox(2, 2), Vec(1.5, 0.5), 0)
	res := Collide(a, b, true)
	if !res.IsColliding {
		t.Fatal("Expected collision")
	}
	assertVectorNear(t, "mtv", res.MTV, Vec(-0.5, 0), 1e-5)
	assertVectorNear(t, "normal", res.Normal, Vec(1, 0), 1e-5)
	if len(res.Contacts) != 2 {
		t.Fatalf("Expected 2 clipped contacts, got %v", res.Contacts)
	}
	for _, p := range res.Contacts {
		assertNear(t, "contact x", p[0], 0.5, 1e-5)
		if p[1] < -0.5-1e-5 || p[1] > 1+1e-5 {
			t.Errorf("contact %v outside the overlap region", p)
		}
	}
}

func TestPolyToPoly_MTVSeparates(t *testing.T) {
	a := geometry(NewBox(2, 1), Vec(0, 0), 10)
	b := geometry(NewRegularPolygon(1, 6), Vec(1.2, 0.6), 0)
	res := Collide(a, b, true)
	if !res.IsColliding {
		t.Fatal("Expected collision")
	}
	moved := geometry(NewBox(2, 1), res.MTV.Mul(1.01), 10)
	if again := Collide(moved, b, true); again.IsColliding && again.Penetration > 1e-3 {
		t.Errorf("Expected MTV to separate the shapes, penetration still %v", again.Penetration)
	}
}

func TestCollide_Degenerate(t *testing.T) {
	line := NewPolygon([]Vector{{0, 0}, {1, 0}, {2, 0}})
	if !line.Degenerate() {
		t.Fatal("Expected collinear points to give a degenerate polygon")
	}
	tests := []struct {
		name string
		a, b Shape
	}{
		{"collinear polygon", line, NewBox(2, 2)},
		{"empty polygon", NewPolygon(nil), NewBox(2, 2)},
		{"zero box", NewBox(0, 2), NewCircle(1, 0)},
		{"zero circle", NewCircle(0, 0), NewBox(2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Collide(geometry(tt.a, Vec(0, 0), 0), geometry(tt.b, Vec(0, 0), 0), true)
			if res.IsColliding {
				t.Errorf("Expected degenerate shape not to collide")
			}
		})
	}
}

func TestDetect_Sensor(t *testing.T) {
	a := NewCollidable(NewCircle(1, 0), NewTransform(Vec(0, 0), 0))
	b := NewCollidable(NewBox(2, 2), NewTransform(Vec(1, 0), 0))
	res := Detect(a, b)
	if !res.IsColliding {
		t.Fatal("Expected sensors to report overlap")
	}
	if res.IsPhysicsColliding || len(res.Contacts) != 0 || res.MTV != (Vector{}) {
		t.Errorf("Expected no manifold for sensors, got %+v", res)
	}

	a.body = BodyID{handle{0, 1}}
	b.body = BodyID{handle{1, 1}}
	res = Detect(a, b)
	if !res.IsPhysicsColliding || len(res.Contacts) == 0 {
		t.Errorf("Expected a manifold between two bodies, got %+v", res)
	}
}
