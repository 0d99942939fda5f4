package fzx

// ContactBuffer holds the arbiters of one step. Storage is reused across
// steps so a steady scene does not allocate per pair.
type ContactBuffer struct {
	arbiters []Arbiter
}

// reset empties the buffer for the next step.
func (buf *ContactBuffer) reset() {
	clear(buf.arbiters)
	buf.arbiters = buf.arbiters[:0]
}

// push records a physics pair.
func (buf *ContactBuffer) push(a, b *Collidable, body_a, body_b *RigidBody, res CollisionResult) {
	buf.arbiters = append(buf.arbiters, Arbiter{
		a:           a,
		b:           b,
		body_a:      body_a,
		body_b:      body_b,
		n:           res.Normal,
		penetration: res.Penetration,
		contacts:    res.Contacts,
	})
}

func (buf *ContactBuffer) Count() int {
	return len(buf.arbiters)
}

// Each visits every arbiter in the order pairs were found.
func (buf *ContactBuffer) Each(f func(arb *Arbiter)) {
	for i := range buf.arbiters {
		f(&buf.arbiters[i])
	}
}
