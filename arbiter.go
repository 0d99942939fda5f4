package fzx

import "github.com/chewxy/math32"

// Arbiter is the manifold of one unique physics pair for the current step.
type Arbiter struct {
	a, b           *Collidable
	body_a, body_b *RigidBody

	// n points from a toward b
	n           Vector
	penetration float32
	contacts    []Vector

	// total normal impulse applied this step
	jnAcc float32
}

// solverParams are the tunables of contact resolution.
type solverParams struct {
	baumgarte   float32
	slop        float32
	restThresh  float32
	wakeImpulse float32
}

func (arb *Arbiter) Bodies() (*RigidBody, *RigidBody) {
	return arb.body_a, arb.body_b
}

func (arb *Arbiter) Collidables() (*Collidable, *Collidable) {
	return arb.a, arb.b
}

func (arb *Arbiter) Normal() Vector {
	return arb.n
}

func (arb *Arbiter) Penetration() float32 {
	return arb.penetration
}

func (arb *Arbiter) Contacts() []Vector {
	return arb.contacts
}

// TotalImpulse is the normal impulse the pair exchanged this step.
func (arb *Arbiter) TotalImpulse() float32 {
	return arb.jnAcc
}

// invMass returns the inverse mass and inertia the solver sees for body.
func invMass(body *RigidBody) (float32, float32) {
	if !body.movable() {
		return 0, 0
	}
	return body.m_inv, body.i_inv
}

// solvePoints returns where impulses are applied. A face contact is solved
// at the middle of its manifold so both points share the impulse.
func (arb *Arbiter) solvePoints() []Vector {
	if len(arb.contacts) < 2 {
		return arb.contacts
	}
	return []Vector{averagePoint(arb.contacts)}
}

// wakeSleeper wakes a sleeping body of the pair when the impulse it would
// take as a dynamic body is large enough. Below the threshold the sleeper
// keeps acting as a static body. It returns the woken body, if any.
func (arb *Arbiter) wakeSleeper(p solverParams) *RigidBody {
	a, b := arb.body_a, arb.body_b
	var sleeper *RigidBody
	switch {
	case a.sleeping && b.movable():
		sleeper = a
	case b.sleeping && a.movable():
		sleeper = b
	default:
		return nil
	}

	ima, iia := a.m_inv, a.i_inv
	imb, iib := b.m_inv, b.i_inv
	e := math32.Min(a.Restitution, b.Restitution)
	for _, cp := range arb.solvePoints() {
		ra, rb := cp.Sub(a.Center()), cp.Sub(b.Center())
		vn := relative_velocity(a, b, ra, rb).Dot(arb.n)
		if vn > -SeparatingVelocity {
			continue
		}
		k := effectiveMass(ima, iia, imb, iib, ra, rb, arb.n)
		if k < Epsilon {
			continue
		}
		if -(1+e)*vn/k >= p.wakeImpulse {
			sleeper.WakeUp()
			return sleeper
		}
	}
	return nil
}

// Solve applies normal and friction impulses at every contact point, then
// Baumgarte positional correction once for the pair.
func (arb *Arbiter) Solve(p solverParams) *RigidBody {
	a, b := arb.body_a, arb.body_b
	if a == nil || b == nil || (!a.movable() && !b.movable()) {
		return nil
	}
	if arb.penetration*arb.penetration < MTVEpsilon2 || LengthSq(arb.n) < MTVEpsilon2 {
		return nil
	}

	woke := arb.wakeSleeper(p)

	ima, iia := invMass(a)
	imb, iib := invMass(b)
	if ima+imb == 0 {
		return woke
	}

	// the lesser restitution between two moving bodies, otherwise the
	// moving body's own
	var e float32
	switch {
	case ima > 0 && imb > 0:
		e = math32.Min(a.Restitution, b.Restitution)
	case ima > 0:
		e = a.Restitution
	default:
		e = b.Restitution
	}
	mu := math32.Sqrt(a.Friction * b.Friction)
	n := arb.n

	for _, cp := range arb.solvePoints() {
		ra, rb := cp.Sub(a.Center()), cp.Sub(b.Center())

		vr := relative_velocity(a, b, ra, rb)
		vn := vr.Dot(n)
		if vn > -SeparatingVelocity {
			continue
		}

		k := effectiveMass(ima, iia, imb, iib, ra, rb, n)
		if k < Epsilon {
			continue
		}

		restitution := e
		if speed := math32.Abs(vn); speed < p.restThresh {
			restitution = LerpF(0, e, speed/p.restThresh)
		}
		jn := -(1 + restitution) * vn / k
		apply_impulses(a, b, ima, iia, imb, iib, ra, rb, n.Mul(jn))
		arb.jnAcc += jn

		// friction against the remaining tangential slip
		vr = relative_velocity(a, b, ra, rb)
		t := Normalize(vr.Sub(n.Mul(vr.Dot(n))))
		if t == (Vector{}) {
			continue
		}
		kt := effectiveMass(ima, iia, imb, iib, ra, rb, t)
		if kt < Epsilon {
			continue
		}
		jt := Clamp(-vr.Dot(t)/kt, -mu*jn, mu*jn)
		apply_impulses(a, b, ima, iia, imb, iib, ra, rb, t.Mul(jt))
	}

	correction := p.baumgarte * math32.Max(arb.penetration-p.slop, 0)
	if correction > 0 {
		total := ima + imb
		if ima > 0 {
			xf := &a.collider.Transform
			xf.Position = xf.Position.Sub(n.Mul(correction * ima / total))
		}
		if imb > 0 {
			xf := &b.collider.Transform
			xf.Position = xf.Position.Add(n.Mul(correction * imb / total))
		}
	}
	return woke
}

// effectiveMass is the inverse of the mass seen along n at the contact.
func effectiveMass(ima, iia, imb, iib float32, ra, rb, n Vector) float32 {
	rna, rnb := Cross(ra, n), Cross(rb, n)
	return ima + imb + rna*rna*iia + rnb*rnb*iib
}

// relative_velocity is the velocity of b relative to a at the contact.
func relative_velocity(a, b *RigidBody, ra, rb Vector) Vector {
	va := a.v.Add(CrossSV(a.w, ra))
	vb := b.v.Add(CrossSV(b.w, rb))
	return vb.Sub(va)
}

// apply_impulses applies j to b and -j to a using the solver's view of
// their masses.
func apply_impulses(a, b *RigidBody, ima, iia, imb, iib float32, ra, rb, j Vector) {
	if ima > 0 {
		a.v = a.v.Sub(j.Mul(ima))
		a.w -= iia * Cross(ra, j)
	}
	if imb > 0 {
		b.v = b.v.Add(j.Mul(imb))
		b.w += iib * Cross(rb, j)
	}
}
