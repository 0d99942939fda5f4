package fzx

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// velocities below these are snapped to zero after integration
	LinearSnap2 = 1e-4
	AngularSnap = 1e-4
)

// BodyOptions describes a body at creation time.
type BodyOptions struct {
	// Mass <= 0 makes the body static.
	Mass   float32
	Static bool

	Restitution    float32
	Friction       float32
	LinearDamping  float32
	AngularDamping float32
	GravityScale   float32

	CanSleep bool
	Filter   ShapeFilter
}

// RigidBody drives the transform of its Collidable. Static bodies have
// infinite mass and never move.
type RigidBody struct {
	id       BodyID
	collider *Collidable

	// mass and its inverse
	m     float32
	m_inv float32

	// moment of inertia and its inverse
	i     float32
	i_inv float32

	static bool

	// linear and angular (radians/s) velocity
	v Vector
	w float32

	// per step acceleration accumulators
	acc    Vector
	angAcc float32

	Restitution    float32
	Friction       float32
	LinearDamping  float32
	AngularDamping float32
	GravityScale   float32

	canSleep bool
	sleeping bool
	idleTime float32

	UserData interface{}
}

// NewRigidBody attaches a body to collider. The moment of inertia is derived
// from the shape scaled by the collider's transform.
func NewRigidBody(collider *Collidable, opts BodyOptions) *RigidBody {
	body := &RigidBody{
		collider:       collider,
		Restitution:    Clamp01(opts.Restitution),
		Friction:       Clamp01(opts.Friction),
		LinearDamping:  math32.Max(opts.LinearDamping, 0),
		AngularDamping: math32.Max(opts.AngularDamping, 0),
		GravityScale:   opts.GravityScale,
		canSleep:       opts.CanSleep,
	}
	body.SetMass(opts.Mass)
	if opts.Static {
		body.SetStatic()
	}
	return body
}

func (body *RigidBody) String() string {
	return fmt.Sprint("RigidBody ", body.id.index)
}

func (body *RigidBody) ID() BodyID {
	return body.id
}

func (body *RigidBody) Collidable() *Collidable {
	return body.collider
}

// SetMass sets the mass and recomputes the moment of inertia. Non-positive
// mass turns the body static.
func (body *RigidBody) SetMass(mass float32) {
	if mass <= 0 {
		body.SetStatic()
		return
	}
	body.static = false
	body.m = mass
	body.m_inv = 1 / mass
	body.SetMoment(body.collider.shape.Moment(mass, body.collider.Transform.Scale))
}

// SetMoment overrides the moment of inertia. Zero disables rotation.
func (body *RigidBody) SetMoment(moment float32) {
	if body.static || moment <= 0 {
		body.i, body.i_inv = 0, 0
		return
	}
	body.i = moment
	body.i_inv = 1 / moment
}

func (body *RigidBody) SetStatic() {
	body.static = true
	body.m, body.m_inv = 0, 0
	body.i, body.i_inv = 0, 0
	body.v, body.w = Vector{}, 0
	body.acc, body.angAcc = Vector{}, 0
	body.sleeping = false
}

func (body *RigidBody) Mass() float32 {
	return body.m
}

func (body *RigidBody) Moment() float32 {
	return body.i
}

func (body *RigidBody) IsStatic() bool {
	return body.static
}

func (body *RigidBody) IsSleeping() bool {
	return body.sleeping
}

func (body *RigidBody) CanSleep() bool {
	return body.canSleep
}

func (body *RigidBody) SetCanSleep(canSleep bool) {
	body.canSleep = canSleep
	if !canSleep {
		body.WakeUp()
	}
}

// movable reports whether the body integrates and accepts impulses.
func (body *RigidBody) movable() bool {
	return !body.static && !body.sleeping
}

// Center is the point the body rotates about in world space.
func (body *RigidBody) Center() Vector {
	return body.collider.Transform.Origin()
}

func (body *RigidBody) Position() Vector {
	return body.collider.Transform.Position
}

func (body *RigidBody) SetPosition(position Vector) {
	body.collider.Transform.Position = position
	body.WakeUp()
}

// Rotation in degrees, within [0, 360).
func (body *RigidBody) Rotation() float32 {
	return body.collider.Transform.Rotation
}

func (body *RigidBody) SetRotation(degrees float32) {
	body.collider.Transform.Rotation = NormalizeDegrees(degrees)
	body.WakeUp()
}

func (body *RigidBody) Velocity() Vector {
	return body.v
}

func (body *RigidBody) SetVelocity(v Vector) {
	if body.static {
		return
	}
	body.WakeUp()
	body.v = v
}

// AngularVelocity in radians per second.
func (body *RigidBody) AngularVelocity() float32 {
	return body.w
}

func (body *RigidBody) SetAngularVelocity(w float32) {
	if body.static {
		return
	}
	body.WakeUp()
	body.w = w
}

// ApplyForce accumulates force applied at r, an offset from the body
// center. Static and sleeping bodies ignore it.
func (body *RigidBody) ApplyForce(force, r Vector) {
	if !body.movable() {
		return
	}
	body.acc = body.acc.Add(force.Mul(body.m_inv))
	if r != (Vector{}) {
		body.angAcc += Cross(r, force) * body.i_inv
	}
}

func (body *RigidBody) ApplyForceAtWorldPoint(force, point Vector) {
	body.ApplyForce(force, point.Sub(body.Center()))
}

func (body *RigidBody) ApplyTorque(torque float32) {
	if !body.movable() {
		return
	}
	body.angAcc += torque * body.i_inv
}

// ApplyImpulse changes velocity immediately. r is the offset from the body
// center. Static and sleeping bodies ignore it.
func (body *RigidBody) ApplyImpulse(impulse, r Vector) {
	if !body.movable() {
		return
	}
	apply_impulse(body, impulse, r)
}

func (body *RigidBody) ApplyImpulseAtWorldPoint(impulse, point Vector) {
	body.ApplyImpulse(impulse, point.Sub(body.Center()))
}

func (body *RigidBody) VelocityAtWorldPoint(point Vector) Vector {
	return body.v.Add(CrossSV(body.w, point.Sub(body.Center())))
}

// IntegrateForces advances velocity by the accumulated accelerations and
// applies damping. Accumulators are cleared even when the body cannot move.
func (body *RigidBody) IntegrateForces(dt float32) {
	defer func() {
		body.acc, body.angAcc = Vector{}, 0
	}()
	if !body.movable() || dt <= 0 {
		return
	}

	body.v = body.v.Add(body.acc.Mul(dt))
	body.w += body.angAcc * dt

	body.v = body.v.Mul(1 / (1 + body.LinearDamping*dt))
	body.w *= 1 / (1 + body.AngularDamping*dt)

	if LengthSq(body.v) < LinearSnap2 {
		body.v = Vector{}
	}
	if math32.Abs(body.w) < AngularSnap {
		body.w = 0
	}
}

// IntegrateVelocities moves the body by its velocity.
func (body *RigidBody) IntegrateVelocities(dt float32) {
	if !body.movable() || dt <= 0 {
		return
	}
	xf := &body.collider.Transform
	xf.Position = xf.Position.Add(body.v.Mul(dt))
	xf.Rotation = NormalizeDegrees(xf.Rotation + mgl32.RadToDeg(body.w*dt))
}

// Sleep zeroes the velocity and suspends integration until woken.
func (body *RigidBody) Sleep() {
	if body.static {
		return
	}
	body.sleeping = true
	body.v, body.w = Vector{}, 0
	body.acc, body.angAcc = Vector{}, 0
}

func (body *RigidBody) WakeUp() {
	body.sleeping = false
	body.idleTime = 0
}

// updateSleep puts the body to sleep once it stayed below both thresholds
// for sleepTime seconds. It reports whether the body fell asleep.
func (body *RigidBody) updateSleep(dt, linear, angular, sleepTime float32) bool {
	if !body.canSleep || !body.movable() {
		return false
	}
	if LengthSq(body.v) >= linear*linear || math32.Abs(body.w) >= angular {
		body.idleTime = 0
		return false
	}
	body.idleTime += dt
	if body.idleTime < sleepTime {
		return false
	}
	body.Sleep()
	return true
}

func (body *RigidBody) KineticEnergy() float32 {
	return (body.m*LengthSq(body.v) + body.i*body.w*body.w) / 2
}

func apply_impulse(body *RigidBody, j, r Vector) {
	body.v = body.v.Add(j.Mul(body.m_inv))
	if body.i_inv > 0 {
		body.w += body.i_inv * Cross(r, j)
	}
}
