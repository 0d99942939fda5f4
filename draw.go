package fzx

// Draw flags
const (
	DRAW_SHAPES           = 1 << 0
	DRAW_BOUNDS           = 1 << 1
	DRAW_COLLISION_POINTS = 1 << 2
	DRAW_INDEX            = 1 << 3
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

var (
	ColorStatic   = FColor{0.5, 0.5, 0.5, 1}
	ColorDynamic  = FColor{0.3, 0.6, 1, 1}
	ColorSleeping = FColor{0.2, 0.3, 0.5, 1}
	ColorSensor   = FColor{1, 0.8, 0.2, 1}
	ColorContact  = FColor{1, 0, 0, 1}
	ColorIndex    = FColor{0.2, 0.8, 0.2, 0.5}
)

// Drawer renders debug output. Coordinates are world space.
type Drawer interface {
	DrawCircle(pos Vector, angle, radius float32, outline, fill FColor, data interface{})
	DrawSegment(a, b Vector, fill FColor, data interface{})
	DrawPolygon(verts []Vector, outline, fill FColor, data interface{})
	DrawDot(size float32, pos Vector, fill FColor, data interface{})

	Flags() int
	OutlineColor() FColor
	ShapeColor(col *Collidable, body *RigidBody, data interface{}) FColor
	Data() interface{}
}

// DefaultShapeColor colors by body state.
func DefaultShapeColor(col *Collidable, body *RigidBody) FColor {
	switch {
	case body == nil:
		return ColorSensor
	case body.IsStatic():
		return ColorStatic
	case body.IsSleeping():
		return ColorSleeping
	}
	return ColorDynamic
}

func DrawShape(col *Collidable, body *RigidBody, options Drawer) {
	data := options.Data()
	outline := options.OutlineColor()
	fill := options.ShapeColor(col, body, data)

	geom := col.Geometry()
	switch geom.Kind {
	case ShapeCircle:
		options.DrawCircle(geom.Center, col.Transform.Rotation, geom.Radius, outline, fill, data)
	case ShapePolygon:
		options.DrawPolygon(geom.Verts, outline, fill, data)
	default:
		panic("Unknown shape type")
	}
}

func drawBB(bb AABB, color FColor, options Drawer) {
	verts := bb.Vertices()
	data := options.Data()
	for i := range verts {
		options.DrawSegment(verts[i], verts[(i+1)%len(verts)], color, data)
	}
}

func DrawSpace(space *Space, options Drawer) {
	flags := options.Flags()

	if flags&DRAW_INDEX != 0 {
		if tree, ok := space.Index().(*QuadTree); ok {
			tree.EachNode(func(region AABB, _, _ int) {
				drawBB(region, ColorIndex, options)
			})
		}
	}

	if flags&DRAW_SHAPES != 0 {
		space.EachCollidable(func(col *Collidable) {
			DrawShape(col, space.BodyOf(col), options)
		})
	}

	if flags&DRAW_BOUNDS != 0 {
		space.EachCollidable(func(col *Collidable) {
			drawBB(col.Bounds(), options.OutlineColor(), options)
		})
	}

	if flags&DRAW_COLLISION_POINTS != 0 {
		data := options.Data()
		space.EachArbiter(func(arb *Arbiter) {
			n := arb.Normal()
			for _, p := range arb.Contacts() {
				options.DrawSegment(p.Sub(n.Mul(4)), p.Add(n.Mul(4)), ColorContact, data)
				options.DrawDot(2, p, ColorContact, data)
			}
		})
	}
}
