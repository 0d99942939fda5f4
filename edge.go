package fzx

// Edge is a directed polygon edge from P1 to P2.
type Edge struct {
	P1, P2 Vector
}

func (e Edge) Direction() Vector {
	return e.P2.Sub(e.P1)
}

func (e Edge) Length() float32 {
	return e.Direction().Len()
}

// Degenerate reports whether the edge is too short to define a normal.
func (e Edge) Degenerate() bool {
	return LengthSq(e.Direction()) < Epsilon*Epsilon
}

// Normal returns the unit outward normal of an edge of a counter-clockwise
// polygon, or the zero vector for a degenerate edge.
func (e Edge) Normal() Vector {
	return Normalize(ReversePerp(e.Direction()))
}

func (e Edge) ClosestPoint(p Vector) Vector {
	return ClosestPointOnSegment(p, e.P1, e.P2)
}

// Edges returns the closed ring of edges of a vertex list.
func Edges(verts []Vector) []Edge {
	if len(verts) < 2 {
		return nil
	}
	edges := make([]Edge, len(verts))
	for i := range verts {
		edges[i] = Edge{verts[i], verts[(i+1)%len(verts)]}
	}
	return edges
}
