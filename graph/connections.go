package graph

import "sort"

// Pair is an unordered pair of point indices, normalised so that I < J.
type Pair struct {
	I, J int
}

// NewPair returns the normalised pair for indices a and b.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{I: a, J: b}
}

// Connections is the connectivity relation over a graph's point indices.
// It is built once per recompute and never mutated afterwards, so a value
// handed out by Graph.Connections stays consistent even after the graph moves on.
type Connections struct {
	n     int
	set   map[Pair]struct{}
	pairs []Pair
	adj   [][]int
}

func newConnections(n int, pairs []Pair) *Connections {
	c := &Connections{
		n:     n,
		set:   make(map[Pair]struct{}, len(pairs)),
		pairs: make([]Pair, 0, len(pairs)),
	}
	for _, p := range pairs {
		p = NewPair(p.I, p.J)
		if p.I == p.J || p.I < 0 || p.J >= n {
			continue
		}
		if _, ok := c.set[p]; ok {
			continue
		}
		c.set[p] = struct{}{}
		c.pairs = append(c.pairs, p)
	}
	sort.Slice(c.pairs, func(a, b int) bool {
		if c.pairs[a].I != c.pairs[b].I {
			return c.pairs[a].I < c.pairs[b].I
		}
		return c.pairs[a].J < c.pairs[b].J
	})

	// Walking the sorted pairs leaves every adjacency list ascending
	c.adj = make([][]int, n)
	for _, p := range c.pairs {
		c.adj[p.I] = append(c.adj[p.I], p.J)
		c.adj[p.J] = append(c.adj[p.J], p.I)
	}
	return c
}

// Len returns the side length of the relation, which equals the point count.
func (c *Connections) Len() int {
	return c.n
}

// Count returns the number of connected pairs.
func (c *Connections) Count() int {
	return len(c.pairs)
}

// Connected reports whether points i and j are linked. The relation is
// symmetric; the diagonal and out-of-range indices are always false.
func (c *Connections) Connected(i, j int) bool {
	if i == j || i < 0 || j < 0 || i >= c.n || j >= c.n {
		return false
	}
	_, ok := c.set[NewPair(i, j)]
	return ok
}

// Pairs returns the connected pairs sorted by (I, J).
func (c *Connections) Pairs() []Pair {
	out := make([]Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// Degree returns the number of points connected to point i.
func (c *Connections) Degree(i int) int {
	if i < 0 || i >= c.n {
		return 0
	}
	return len(c.adj[i])
}

// Neighbors returns the indices connected to point i in ascending order,
// or nil if there are none.
func (c *Connections) Neighbors(i int) []int {
	if i < 0 || i >= c.n || len(c.adj[i]) == 0 {
		return nil
	}
	out := make([]int, len(c.adj[i]))
	copy(out, c.adj[i])
	return out
}

// Matrix builds a fully symmetric n×n view of the relation.
func (c *Connections) Matrix() [][]bool {
	m := make([][]bool, c.n)
	for i := range m {
		m[i] = make([]bool, c.n)
	}
	for _, p := range c.pairs {
		m[p.I][p.J] = true
		m[p.J][p.I] = true
	}
	return m
}
