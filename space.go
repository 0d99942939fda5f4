package fzx

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Space is a physics world. It owns the bodies and collidables, the broad
// phase index and the configuration. Spaces are independent of each other
// and must be used from one goroutine at a time.
type Space struct {
	cfg    Config
	logger *log.Logger

	gravity Vector
	solver  solverParams

	bodies      arena[RigidBody]
	collidables arena[Collidable]

	index    SpatialIndexer
	pairs    *HashSet
	contacts ContactBuffer

	stamp  uint
	time   float32
	locked int
	stats  Stats
}

// Stats describes the last step.
type Stats struct {
	Steps       uint
	Time        float32
	Bodies      int
	Awake       int
	Sleeping    int
	Static      int
	Collidables int
	// unique candidate pairs handed to the narrow phase
	Candidates int
	// pairs whose shapes overlap
	Colliding int
	// pairs resolved by the solver
	Arbiters int
	Contacts int
	Woken    int
	Slept    int
}

// NewSpace creates an empty world. A nil cfg uses DefaultConfig.
func NewSpace(cfg *Config) (*Space, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	space := &Space{
		cfg:     *cfg,
		logger:  discardLogger(),
		gravity: cfg.GravityVector(),
		solver: solverParams{
			baumgarte:   cfg.Solver.Baumgarte,
			slop:        cfg.Solver.Slop,
			restThresh:  cfg.Solver.RestitutionThreshold,
			wakeImpulse: cfg.Solver.WakeImpulse,
		},
		pairs: NewHashSet(),
	}

	bbfunc := func(c *Collidable) AABB {
		c.geom = c.Geometry()
		return c.geom.BB
	}
	switch cfg.BroadPhase {
	case BroadPhaseGrid:
		space.index = NewSpaceHash(cfg.Grid.CellSize, bbfunc)
	case BroadPhaseBBTree:
		space.index = NewBBTree(bbfunc)
	default:
		space.index = NewQuadTree(cfg.BoardAABB(), cfg.QuadTree.Capacity, cfg.QuadTree.MaxDepth, bbfunc)
	}
	return space, nil
}

func (space *Space) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = discardLogger()
	}
	space.logger = logger
}

func (space *Space) Logger() *log.Logger {
	return space.logger
}

// Config returns a copy of the settings the space was created with.
func (space *Space) Config() *Config {
	cfg := space.cfg
	return &cfg
}

func (space *Space) Gravity() Vector {
	return space.gravity
}

func (space *Space) SetGravity(gravity Vector) {
	space.gravity = gravity
}

// Index exposes the broad phase, for debug drawing.
func (space *Space) Index() SpatialIndexer {
	return space.index
}

func (space *Space) Lock() {
	space.locked++
}

func (space *Space) Unlock() {
	space.locked--
	if space.locked < 0 {
		panic("Space lock underflow")
	}
}

func (space *Space) IsLocked() bool {
	return space.locked > 0
}

func (space *Space) assertUnlocked() {
	if space.locked > 0 {
		panic("This operation cannot be done safely during a call to Step() or during a query")
	}
}

// AddBody creates a body with its collidable and registers both.
func (space *Space) AddBody(shape Shape, xf Transform, opts BodyOptions) *RigidBody {
	space.assertUnlocked()

	col := NewCollidable(shape, xf)
	if opts.Filter != (ShapeFilter{}) {
		col.Filter = opts.Filter
	}
	body := NewRigidBody(col, opts)
	body.id = BodyID{space.bodies.insert(body)}
	col.body = body.id
	space.register(col)
	return body
}

// AddStaticBody is AddBody with infinite mass and the configured defaults.
func (space *Space) AddStaticBody(shape Shape, xf Transform) *RigidBody {
	return space.AddBody(shape, xf, space.cfg.StaticOptions())
}

// AddDynamicBody is AddBody with the configured defaults.
func (space *Space) AddDynamicBody(shape Shape, xf Transform, mass float32) *RigidBody {
	return space.AddBody(shape, xf, space.cfg.BodyOptions(mass))
}

// AddCollidable registers a collidable without a body. It reports overlaps
// but never takes part in collision response.
func (space *Space) AddCollidable(shape Shape, xf Transform, filter ShapeFilter) *Collidable {
	space.assertUnlocked()

	col := NewCollidable(shape, xf)
	if filter != (ShapeFilter{}) {
		col.Filter = filter
	}
	space.register(col)
	return col
}

func (space *Space) register(col *Collidable) {
	col.id = ColliderID{space.collidables.insert(col)}
	space.index.Insert(col)

	if col.shape.Degenerate() {
		space.logger.Debug("degenerate shape will never collide", "collidable", col.id.index, "shape", col.shape)
	}
	if _, isTree := space.index.(*QuadTree); isTree && !space.cfg.BoardAABB().Intersects(col.geom.BB) {
		space.logger.Warn("collidable outside the board", "collidable", col.id.index, "bounds", col.geom.BB)
	}
}

// RemoveBody removes the body and its collidable.
func (space *Space) RemoveBody(id BodyID) bool {
	space.assertUnlocked()

	body := space.bodies.remove(id.handle)
	if body == nil {
		return false
	}
	col := body.collider
	space.wakeNeighbors(col)
	space.index.Remove(col)
	space.collidables.remove(col.id.handle)
	col.body = BodyID{}
	return true
}

// wakeNeighbors wakes the bodies col was resting against in the last step.
func (space *Space) wakeNeighbors(col *Collidable) {
	for _, id := range col.info.PhysicsColliders {
		other := space.collidables.get(id.handle)
		if other == nil {
			continue
		}
		if body := space.BodyOf(other); body != nil && body.IsSleeping() {
			body.WakeUp()
			space.logger.Debug("woke body", "body", body.id.index, "removed", col.id.index)
		}
	}
}

// RemoveCollidable removes a collidable. Removing the collidable of a body
// removes the body as well.
func (space *Space) RemoveCollidable(id ColliderID) bool {
	space.assertUnlocked()

	col := space.collidables.get(id.handle)
	if col == nil {
		return false
	}
	if col.HasBody() {
		return space.RemoveBody(col.body)
	}
	space.index.Remove(col)
	space.collidables.remove(id.handle)
	return true
}

func (space *Space) Body(id BodyID) *RigidBody {
	return space.bodies.get(id.handle)
}

func (space *Space) Collidable(id ColliderID) *Collidable {
	return space.collidables.get(id.handle)
}

// BodyOf returns the body driving col, or nil for sensors.
func (space *Space) BodyOf(col *Collidable) *RigidBody {
	if !col.HasBody() {
		return nil
	}
	return space.bodies.get(col.body.handle)
}

func (space *Space) BodyCount() int {
	return space.bodies.len()
}

func (space *Space) CollidableCount() int {
	return space.collidables.len()
}

// EachBody visits bodies in creation order, reusing freed slots.
func (space *Space) EachBody(f func(body *RigidBody)) {
	space.bodies.each(func(_ handle, body *RigidBody) { f(body) })
}

func (space *Space) EachCollidable(f func(col *Collidable)) {
	space.collidables.each(func(_ handle, col *Collidable) { f(col) })
}

// EachArbiter visits the physics pairs of the last step.
func (space *Space) EachArbiter(f func(arb *Arbiter)) {
	space.contacts.Each(f)
}

func (space *Space) Stats() Stats {
	return space.stats
}

// Step advances the world by dt seconds: rebuild the broad phase, detect
// collisions, integrate forces, resolve contacts, integrate velocities.
func (space *Space) Step(dt float32) {
	if dt <= 0 {
		return
	}
	space.stamp++
	space.time += dt
	space.stats = Stats{Steps: space.stats.Steps + 1, Time: space.time}

	space.Lock()
	defer space.Unlock()

	space.collide()

	space.EachBody(func(body *RigidBody) {
		if !body.movable() {
			return
		}
		body.ApplyForce(space.gravity.Mul(body.m*body.GravityScale), Vector{})
		body.IntegrateForces(dt)
	})

	space.contacts.Each(func(arb *Arbiter) {
		if woke := arb.Solve(space.solver); woke != nil {
			space.stats.Woken++
			space.logger.Debug("body woken by impact", "body", woke.id.index, "impulse", arb.jnAcc)
		}
	})

	sleep := space.cfg.Sleep
	space.EachBody(func(body *RigidBody) {
		if !body.movable() {
			return
		}
		// unsupported bodies keep falling even when momentarily slow
		supported := body.collider.info.IsPhysicsColliding || body.GravityScale == 0 || LengthSq(space.gravity) == 0
		if supported && body.updateSleep(dt, sleep.LinearThreshold, sleep.AngularThreshold, sleep.Time) {
			space.stats.Slept++
			space.logger.Debug("body asleep", "body", body.id.index, "position", body.Position())
		}
		body.IntegrateVelocities(dt)
	})

	space.EachBody(func(body *RigidBody) {
		space.stats.Bodies++
		switch {
		case body.static:
			space.stats.Static++
		case body.sleeping:
			space.stats.Sleeping++
		default:
			space.stats.Awake++
		}
	})
	space.stats.Collidables = space.collidables.len()

	space.logger.Debug("step",
		"step", space.stamp,
		"candidates", space.stats.Candidates,
		"colliding", space.stats.Colliding,
		"arbiters", space.stats.Arbiters,
		"awake", space.stats.Awake,
		"sleeping", space.stats.Sleeping,
	)
}

// collide rebuilds the broad phase and fills every collision record and the
// contact buffer for this step.
func (space *Space) collide() {
	space.pairs.Clear()
	space.contacts.reset()
	space.EachCollidable(func(col *Collidable) {
		col.info.reset()
	})

	space.index.Rebuild()

	space.EachCollidable(func(a *Collidable) {
		space.index.Retrieve(a, func(b *Collidable) {
			if !space.pairs.Insert(HashPair(a.id, b.id)) {
				return
			}
			if b.id.index < a.id.index {
				space.collidePair(b, a)
			} else {
				space.collidePair(a, b)
			}
		})
	})
}

func (space *Space) collidePair(a, b *Collidable) {
	if a.Filter.Reject(b.Filter) {
		return
	}
	body_a, body_b := space.BodyOf(a), space.BodyOf(b)
	physics := body_a != nil && body_b != nil
	if physics && body_a.static && body_b.static {
		return
	}

	space.stats.Candidates++
	res := Collide(&a.geom, &b.geom, physics)
	if !res.IsColliding {
		return
	}
	space.stats.Colliding++

	a.info.record(b.id, res.IsPhysicsColliding, res.MTV, res.Contacts)
	b.info.record(a.id, res.IsPhysicsColliding, res.MTV.Mul(-1), res.Contacts)

	if res.IsPhysicsColliding && (body_a.movable() || body_b.movable()) {
		space.contacts.push(a, b, body_a, body_b, res)
		space.stats.Arbiters++
		space.stats.Contacts += len(res.Contacts)
	}
}

// reindex brings the broad phase up to date before a query. Transforms
// may be edited freely between steps, so bounds are always refreshed.
func (space *Space) reindex() {
	space.index.Rebuild()
}

// PointQuery visits every collidable containing p.
func (space *Space) PointQuery(p Vector, filter ShapeFilter, f func(col *Collidable)) {
	space.reindex()
	space.Lock()
	defer space.Unlock()

	space.index.Query(NewAABB(p, 0, 0), func(col *Collidable) {
		if !col.Filter.Reject(filter) && col.geom.ContainsPoint(p) {
			f(col)
		}
	})
}

// BBQuery visits every collidable whose bounds overlap bb.
func (space *Space) BBQuery(bb AABB, filter ShapeFilter, f func(col *Collidable)) {
	space.reindex()
	space.Lock()
	defer space.Unlock()

	space.index.Query(bb, func(col *Collidable) {
		if !col.Filter.Reject(filter) {
			f(col)
		}
	})
}

// ShapeQuery visits every collidable overlapping shape placed at xf. The
// results carry a manifold seen from the query shape. It reports whether
// anything was hit.
func (space *Space) ShapeQuery(shape Shape, xf Transform, f func(col *Collidable, res CollisionResult)) bool {
	space.reindex()
	space.Lock()
	defer space.Unlock()

	if xf.Scale == (Vector{}) {
		xf.Scale = Vector{1, 1}
	}
	query := NewGeometry(shape, xf)
	hit := false
	space.index.Query(query.BB, func(col *Collidable) {
		res := Collide(&query, &col.geom, true)
		if !res.IsColliding {
			return
		}
		hit = true
		if f != nil {
			f(col, res)
		}
	})
	return hit
}

func (space *Space) String() string {
	return fmt.Sprintf("Space{bodies: %d, collidables: %d, step: %d}", space.bodies.len(), space.collidables.len(), space.stamp)
}
