// Package graph maintains a proximity graph over a set of drifting points.
//
// A Graph owns an ordered slice of points and recomputes its Connections from
// scratch after every mutation. Connectivity is decided by an injected
// ConnectionFunc, optionally narrowed by a CandidateFinder broad phase.
// Nothing in this package returns an error: malformed input is absorbed as a
// no-op.
package graph

// Options configures a new Graph.
type Options struct {
	Points       []*Point
	ConnectionFn ConnectionFunc
	Candidates   CandidateFinder
}

// Graph is a set of points plus the connectivity relation between them.
// It is not safe for concurrent use; a single host loop drives it.
type Graph struct {
	points      []*Point
	connections *Connections
	connect     ConnectionFunc
	candidates  CandidateFinder
}

// New creates a graph from opts and computes its initial connections.
func New(opts Options) *Graph {
	g := &Graph{
		points:     make([]*Point, 0, len(opts.Points)),
		connect:    opts.ConnectionFn,
		candidates: opts.Candidates,
	}
	if g.connect == nil {
		g.connect = AlwaysConnected
	}
	for _, p := range opts.Points {
		if p != nil {
			g.points = append(g.points, p)
		}
	}
	g.calculateConnections()
	return g
}

// Len returns the number of points.
func (g *Graph) Len() int {
	return len(g.points)
}

// AddPoint appends p and recomputes connections.
func (g *Graph) AddPoint(p *Point) {
	if p == nil {
		return
	}
	g.points = append(g.points, p)
	g.calculateConnections()
}

// RemovePoint drops every occurrence of p, keeping the order of the rest.
func (g *Graph) RemovePoint(p *Point) {
	g.filter(func(el *Point) bool {
		return el != p
	})
	g.calculateConnections()
}

// RemovePointsByCriteria keeps only the points for which keep returns true.
// The slice is filtered in one pass and connections are rebuilt once.
func (g *Graph) RemovePointsByCriteria(keep func(*Point) bool) {
	if keep != nil {
		g.filter(keep)
	}
	g.calculateConnections()
}

// Move advances every point one step and recomputes connections.
func (g *Graph) Move() {
	for _, p := range g.points {
		p.Move()
	}
	g.calculateConnections()
}

// Tick moves every point and then culls those rejected by keep.
func (g *Graph) Tick(keep func(*Point) bool) {
	for _, p := range g.points {
		p.Move()
	}
	g.RemovePointsByCriteria(keep)
}

// Points returns the points in insertion order. The slice is a copy; the
// points themselves are live and keep moving with the graph.
func (g *Graph) Points() []*Point {
	out := make([]*Point, len(g.points))
	copy(out, g.points)
	return out
}

// Connections returns the relation computed after the last mutation.
func (g *Graph) Connections() *Connections {
	return g.connections
}

// filter rebuilds the point slice in place, leaving it untouched when
// nothing is removed.
func (g *Graph) filter(keep func(*Point) bool) {
	kept := g.points[:0:0]
	removed := false
	for _, p := range g.points {
		if keep(p) {
			kept = append(kept, p)
		} else {
			removed = true
		}
	}
	if removed {
		g.points = kept
	}
}

// calculateConnections evaluates each unordered pair once, as
// connect(points[hi], points[lo]), and stores the result symmetrically.
func (g *Graph) calculateConnections() {
	n := len(g.points)
	var pairs []Pair

	if n > 1 {
		if g.candidates != nil {
			seen := make(map[Pair]struct{})
			for _, c := range g.candidates.Candidates(g.points) {
				c = NewPair(c.I, c.J)
				if c.I == c.J || c.I < 0 || c.J >= n {
					continue
				}
				if _, ok := seen[c]; ok {
					continue
				}
				seen[c] = struct{}{}
				if g.connect(g.points[c.J], g.points[c.I]) {
					pairs = append(pairs, c)
				}
			}
		} else {
			for outer := 1; outer < n; outer++ {
				for inner := 0; inner < outer; inner++ {
					if g.connect(g.points[outer], g.points[inner]) {
						pairs = append(pairs, Pair{I: inner, J: outer})
					}
				}
			}
		}
	}

	g.connections = newConnections(n, pairs)
}
