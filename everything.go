package fzx

import "github.com/chewxy/math32"

const (
	// Epsilon is the geometric tolerance used for overlap tests and to
	// reject near-zero edges, normals and MTVs.
	Epsilon = 1e-6

	// MTVEpsilon2 is the squared MTV length below which a contact carries no
	// usable direction.
	MTVEpsilon2 = 1e-8

	// SeparatingVelocity is the normal relative velocity above which a
	// contact is treated as separating.
	SeparatingVelocity = 1e-4

	// MaxContacts is the largest manifold the narrow phase produces.
	MaxContacts = 2
)

var INFINITY = math32.Inf(1)
