package fzx

import (
	"testing"

	"github.com/chewxy/math32"
)

const size = 32

func newTestBody(shape Shape, opts BodyOptions) *RigidBody {
	return NewRigidBody(NewCollidable(shape, NewTransform(Vec(10, 10), 0)), opts)
}

func TestRigidBody_Inertia(t *testing.T) {
	box := newTestBody(NewBox(size, size), BodyOptions{Mass: 3})
	assertNear(t, "box moment", box.Moment(), 3*(size*size+size*size)/12, 1e-2)

	circle := newTestBody(NewCircle(5, 0), BodyOptions{Mass: 2})
	assertNear(t, "circle moment", circle.Moment(), 2*25/2, 1e-4)

	// a square built from points matches the closed form
	poly := newTestBody(NewPolygon([]Vector{{0, 0}, {size, 0}, {size, size}, {0, size}}), BodyOptions{Mass: 3})
	assertNear(t, "polygon moment", poly.Moment(), box.Moment(), 1)

	scaled := NewRigidBody(NewCollidable(NewCircle(5, 0), Transform{Scale: Vec(2, 1)}), BodyOptions{Mass: 2})
	assertNear(t, "scaled circle moment", scaled.Moment(), 2*100/2, 1e-3)
}

func TestRigidBody_Static(t *testing.T) {
	body := newTestBody(NewBox(size, size), BodyOptions{Mass: 0})
	if !body.IsStatic() || body.Mass() != 0 || body.Moment() != 0 {
		t.Fatal("zero mass should make a static body")
	}
	body.ApplyForce(Vec(100, 0), Vec(1, 1))
	body.ApplyImpulse(Vec(100, 0), Vec(1, 1))
	body.ApplyTorque(10)
	body.SetVelocity(Vec(1, 1))
	body.IntegrateForces(dt)
	body.IntegrateVelocities(dt)
	if body.Position() != Vec(10, 10) || body.Velocity() != (Vector{}) || body.AngularVelocity() != 0 {
		t.Fatal("static body moved")
	}
	body.Sleep()
	if body.IsSleeping() {
		t.Fatal("static bodies never sleep")
	}

	body.SetMass(2)
	if body.IsStatic() || body.Moment() <= 0 {
		t.Fatal("positive mass should make the body dynamic")
	}
}

func TestRigidBody_ApplyForce(t *testing.T) {
	body := newTestBody(NewBox(2, 2), BodyOptions{Mass: 2})
	body.ApplyForce(Vec(4, 0), Vector{})
	body.IntegrateForces(0.5)
	assertVectorNear(t, "velocity", body.Velocity(), Vec(1, 0), 1e-6)
	if body.AngularVelocity() != 0 {
		t.Fatal("force through the center should not spin the body")
	}

	// accumulators are cleared after integration
	body.IntegrateForces(0.5)
	assertVectorNear(t, "velocity", body.Velocity(), Vec(1, 0), 1e-6)

	body.ApplyForceAtWorldPoint(Vec(0, 6), body.Center().Add(Vec(1, 0)))
	body.IntegrateForces(1)
	assertNear(t, "angular velocity", body.AngularVelocity(), 6/body.Moment(), 1e-5)
}

func TestRigidBody_ApplyImpulse(t *testing.T) {
	body := newTestBody(NewCircle(1, 0), BodyOptions{Mass: 4})
	body.ApplyImpulse(Vec(0, 8), Vec(1, 0))
	assertVectorNear(t, "velocity", body.Velocity(), Vec(0, 2), 1e-6)
	assertNear(t, "angular velocity", body.AngularVelocity(), 8/body.Moment(), 1e-5)

	point := body.Center().Add(Vec(1, 0))
	want := Vec(0, 2+body.AngularVelocity())
	assertVectorNear(t, "point velocity", body.VelocityAtWorldPoint(point), want, 1e-5)

	// zero inertia keeps the linear response
	body.SetMoment(0)
	body.SetAngularVelocity(0)
	body.ApplyImpulse(Vec(4, 0), Vec(0, 1))
	assertVectorNear(t, "velocity", body.Velocity(), Vec(1, 2), 1e-6)
	if body.AngularVelocity() != 0 {
		t.Fatal("body without inertia should not rotate")
	}
}

func TestRigidBody_Damping(t *testing.T) {
	body := newTestBody(NewCircle(1, 0), BodyOptions{Mass: 1, LinearDamping: 1, AngularDamping: 1})
	body.SetVelocity(Vec(10, 0))
	body.SetAngularVelocity(4)
	body.IntegrateForces(1)
	assertVectorNear(t, "velocity", body.Velocity(), Vec(5, 0), 1e-5)
	assertNear(t, "angular velocity", body.AngularVelocity(), 2, 1e-5)
}

func TestRigidBody_Snap(t *testing.T) {
	body := newTestBody(NewCircle(1, 0), BodyOptions{Mass: 1})
	body.SetVelocity(Vec(0.005, 0))
	body.SetAngularVelocity(5e-5)
	body.IntegrateForces(dt)
	if body.Velocity() != (Vector{}) || body.AngularVelocity() != 0 {
		t.Fatalf("tiny velocities should snap to zero, got %v %v", body.Velocity(), body.AngularVelocity())
	}
}

func TestRigidBody_IntegrateVelocities(t *testing.T) {
	body := newTestBody(NewBox(2, 2), BodyOptions{Mass: 1})
	body.SetVelocity(Vec(6, -3))
	body.SetAngularVelocity(-math32.Pi)
	body.IntegrateVelocities(1)
	assertVectorNear(t, "position", body.Position(), Vec(16, 7), 1e-5)
	// -180 degrees normalizes into [0, 360)
	assertNear(t, "rotation", body.Rotation(), 180, 1e-3)

	body.SetRotation(-90)
	assertNear(t, "rotation", body.Rotation(), 270, 1e-4)
}

func TestRigidBody_Sleep(t *testing.T) {
	body := newTestBody(NewCircle(1, 0), BodyOptions{Mass: 1, CanSleep: true})
	body.SetVelocity(Vec(1, 0))
	if body.updateSleep(0.5, 5, 0.1, 1) {
		t.Fatal("slept before the idle time elapsed")
	}
	if !body.updateSleep(0.5, 5, 0.1, 1) {
		t.Fatal("should sleep after the idle time")
	}
	if body.Velocity() != (Vector{}) {
		t.Fatal("sleeping zeroes velocity")
	}

	// sleeping bodies ignore forces and do not move
	body.ApplyImpulse(Vec(10, 0), Vector{})
	body.IntegrateVelocities(1)
	if body.Position() != Vec(10, 10) {
		t.Fatal("sleeping body moved")
	}

	body.WakeUp()
	body.SetVelocity(Vec(10, 0))
	if body.updateSleep(10, 5, 0.1, 1) {
		t.Fatal("fast body should stay awake")
	}

	body.SetCanSleep(false)
	body.SetVelocity(Vector{})
	if body.updateSleep(10, 5, 0.1, 0) {
		t.Fatal("body that cannot sleep fell asleep")
	}
}

func TestRigidBody_KineticEnergy(t *testing.T) {
	body := newTestBody(NewCircle(2, 0), BodyOptions{Mass: 2})
	body.SetVelocity(Vec(3, 4))
	body.SetAngularVelocity(1)
	assertNear(t, "energy", body.KineticEnergy(), 25+body.Moment()/2, 1e-4)
}

func TestNewRigidBody_ClampsCoefficients(t *testing.T) {
	body := newTestBody(NewCircle(1, 0), BodyOptions{Mass: 1, Restitution: 3, Friction: -1, LinearDamping: -2})
	if body.Restitution != 1 || body.Friction != 0 || body.LinearDamping != 0 {
		t.Fatalf("coefficients not clamped: %v %v %v", body.Restitution, body.Friction, body.LinearDamping)
	}
}
